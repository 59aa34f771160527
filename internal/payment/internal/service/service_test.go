// Copyright 2023 ecodeclub
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package service

import (
	"context"
	"testing"

	"github.com/ecodeclub/ecommerce/internal/payment/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/payment/internal/event"
	"github.com/ecodeclub/ecommerce/internal/payment/internal/repository"
	"github.com/ecodeclub/ecommerce/internal/payment/internal/service/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeMethodRepo struct {
	repository.MethodRepository
	methods map[int64]domain.Method
}

func (f *fakeMethodRepo) FindByID(_ context.Context, id int64) (domain.Method, error) {
	m, ok := f.methods[id]
	if !ok {
		return domain.Method{}, gorm.ErrRecordNotFound
	}
	return m, nil
}

type fakeProducer struct {
	events []event.PaymentStatusEvent
}

func (f *fakeProducer) Produce(_ context.Context, evt event.PaymentStatusEvent) error {
	f.events = append(f.events, evt)
	return nil
}

func newRedirectRegistry() *gateway.Registry {
	registry := gateway.NewRegistry()
	registry.Register(domain.KindRedirect, gateway.NewRedirect("https://pay.example.com/checkout"))
	return registry
}

func TestService_GenerateRedirectURL(t *testing.T) {
	t.Parallel()
	repo := &fakeMethodRepo{methods: map[int64]domain.Method{
		1: {ID: 1, StoreID: 1, Kind: domain.KindRedirect, Name: "收银台", Active: true},
		2: {ID: 2, StoreID: 1, Kind: domain.KindRedirect, Name: "已下线", Active: false},
		3: {ID: 3, StoreID: 1, Kind: "carrier_pigeon", Active: true},
	}}
	svc := NewService(repo, newRedirectRegistry(), &fakeProducer{})

	t.Run("按订单号拼出收银台地址", func(t *testing.T) {
		t.Parallel()
		url, err := svc.GenerateRedirectURL(context.Background(), 1, domain.OrderRef{
			OrderID:    10,
			Identifier: "A1B2C3D4",
		})
		require.NoError(t, err)
		assert.Equal(t, "https://pay.example.com/checkout/A1B2C3D4", url)
	})

	t.Run("停用的支付方式不可用", func(t *testing.T) {
		t.Parallel()
		_, err := svc.GenerateRedirectURL(context.Background(), 2, domain.OrderRef{Identifier: "A1B2C3D4"})
		assert.ErrorIs(t, err, ErrMethodUnavailable)
	})

	t.Run("未注册的网关类型报错", func(t *testing.T) {
		t.Parallel()
		_, err := svc.GenerateRedirectURL(context.Background(), 3, domain.OrderRef{Identifier: "A1B2C3D4"})
		assert.ErrorIs(t, err, ErrUnknownKind)
	})
}

func TestService_HandleCallback(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		rawStatus  string
		wantStatus domain.Status
	}{
		{name: "支付成功", rawStatus: "paid", wantStatus: domain.StatusPaid},
		{name: "已冻结待请款", rawStatus: "authorized", wantStatus: domain.StatusAwaitingAuthorization},
		{name: "结果未定", rawStatus: "pending", wantStatus: domain.StatusAwaitingConfirmation},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			producer := &fakeProducer{}
			svc := NewService(&fakeMethodRepo{}, newRedirectRegistry(), producer)
			err := svc.HandleCallback(context.Background(), domain.KindRedirect, "A1B2C3D4", tc.rawStatus)
			require.NoError(t, err)
			require.Len(t, producer.events, 1)
			assert.Equal(t, event.PaymentStatusEvent{
				OrderIdentifier: "A1B2C3D4",
				Status:          tc.wantStatus.ToUint8(),
			}, producer.events[0])
		})
	}

	t.Run("无法识别的状态不产生事件", func(t *testing.T) {
		t.Parallel()
		producer := &fakeProducer{}
		svc := NewService(&fakeMethodRepo{}, newRedirectRegistry(), producer)
		err := svc.HandleCallback(context.Background(), domain.KindRedirect, "A1B2C3D4", "exploded")
		assert.ErrorIs(t, err, gateway.ErrUnknownStatus)
		assert.Empty(t, producer.events)
	})

	t.Run("未注册的网关类型报错", func(t *testing.T) {
		t.Parallel()
		svc := NewService(&fakeMethodRepo{}, newRedirectRegistry(), &fakeProducer{})
		err := svc.HandleCallback(context.Background(), "carrier_pigeon", "A1B2C3D4", "paid")
		assert.ErrorIs(t, err, ErrUnknownKind)
	})
}
