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

	"github.com/ecodeclub/ecommerce/internal/shipping/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/shipping/internal/repository"
	"github.com/ecodeclub/ecommerce/internal/shipping/internal/service/strategy"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	res, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return res
}

type fakeShippingRepo struct {
	repository.ShippingRepository
	methods   map[int64]domain.Method
	shipments []domain.Shipment
}

func (f *fakeShippingRepo) FindMethodByID(_ context.Context, id int64) (domain.Method, error) {
	m, ok := f.methods[id]
	if !ok {
		return domain.Method{}, domainNotFound
	}
	return m, nil
}

func (f *fakeShippingRepo) CreateShipment(_ context.Context, s domain.Shipment) (int64, error) {
	id := int64(len(f.shipments) + 1)
	s.ID = id
	f.shipments = append(f.shipments, s)
	return id, nil
}

var domainNotFound = assert.AnError

func newTestService(methods map[int64]domain.Method) (Service, *fakeShippingRepo) {
	repo := &fakeShippingRepo{methods: methods}
	registry := strategy.NewRegistry()
	registry.Register(domain.KindFlatRate, strategy.NewFlatRate(repo, strategy.NoopLabelRenderer{}))
	return NewService(repo, registry), repo
}

func TestService_CalculateCost(t *testing.T) {
	t.Parallel()

	t.Run("固定运费叠加免邮覆盖", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(map[int64]domain.Method{
			1: {
				ID:                      1,
				Kind:                    domain.KindFlatRate,
				Rate:                    d("10.00"),
				FreeShippingAboveAmount: decimal.NewNullDecimal(d("75.00")),
				Active:                  true,
			},
		})
		got, err := svc.CalculateCost(context.Background(), 1, domain.Package{}, domain.Destination{}, d("80.00"))
		require.NoError(t, err)
		assert.True(t, got.Cost.Equal(d("10")))
		assert.True(t, got.Discount.Equal(d("10")))
		assert.True(t, got.Total.IsZero())
	})

	t.Run("未注册的种类返回ErrUnknownKind", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(map[int64]domain.Method{
			2: {ID: 2, Kind: "carrier_pigeon", Active: true},
		})
		_, err := svc.CalculateCost(context.Background(), 2, domain.Package{}, domain.Destination{}, d("10.00"))
		assert.ErrorIs(t, err, strategy.ErrUnknownKind)
	})

	t.Run("停用的配送方式报错", func(t *testing.T) {
		t.Parallel()
		svc, _ := newTestService(map[int64]domain.Method{
			3: {ID: 3, Kind: domain.KindFlatRate, Rate: d("5.00"), Active: false},
		})
		_, err := svc.CalculateCost(context.Background(), 3, domain.Package{}, domain.Destination{}, d("10.00"))
		assert.Error(t, err)
	})
}

func TestService_GenerateShipment(t *testing.T) {
	t.Parallel()
	svc, repo := newTestService(map[int64]domain.Method{
		1: {ID: 1, Kind: domain.KindFlatRate, Rate: d("10.00"), Active: true},
	})
	shipment, err := svc.GenerateShipment(context.Background(), domain.OrderRef{
		OrderID:    100,
		Identifier: "AB12CD34",
		MethodID:   1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), shipment.OrderID)
	assert.Equal(t, domain.KindFlatRate, shipment.Kind)
	assert.True(t, shipment.Rate.Equal(d("10")))
	require.Len(t, repo.shipments, 1)
}
