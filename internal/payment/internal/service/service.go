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
	"errors"
	"fmt"

	"github.com/ecodeclub/ecommerce/internal/payment/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/payment/internal/event"
	"github.com/ecodeclub/ecommerce/internal/payment/internal/repository"
	"github.com/ecodeclub/ecommerce/internal/payment/internal/service/gateway"
)

var (
	ErrMethodUnavailable = errors.New("支付方式不可用")
	ErrUnknownKind       = gateway.ErrUnknownKind
)

//go:generate mockgen -source=./service.go -package=paymentmocks -destination=../../mocks/payment.mock.go -typed Service
type Service interface {
	ListAvailableMethods(ctx context.Context, storeID int64) ([]domain.Method, error)
	FindMethodByID(ctx context.Context, id int64) (domain.Method, error)
	// CreateMethod 创建前校验网关类型已注册
	CreateMethod(ctx context.Context, m domain.Method) (int64, error)
	// GenerateRedirectURL 生成买家完成支付要跳转的地址
	GenerateRedirectURL(ctx context.Context, methodID int64, ref domain.OrderRef) (string, error)
	// HandleCallback 网关回调入口, 翻译状态后发布支付结果事件
	HandleCallback(ctx context.Context, kind, orderIdentifier, rawStatus string) error
}

func NewService(repo repository.MethodRepository,
	registry *gateway.Registry,
	producer event.PaymentStatusEventProducer) Service {
	return &service{
		repo:     repo,
		registry: registry,
		producer: producer,
	}
}

type service struct {
	repo     repository.MethodRepository
	registry *gateway.Registry
	producer event.PaymentStatusEventProducer
}

func (s *service) ListAvailableMethods(ctx context.Context, storeID int64) ([]domain.Method, error) {
	return s.repo.FindActiveByStore(ctx, storeID)
}

func (s *service) FindMethodByID(ctx context.Context, id int64) (domain.Method, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) CreateMethod(ctx context.Context, m domain.Method) (int64, error) {
	if _, ok := s.registry.Get(m.Kind); !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownKind, m.Kind)
	}
	return s.repo.Create(ctx, m)
}

func (s *service) GenerateRedirectURL(ctx context.Context, methodID int64, ref domain.OrderRef) (string, error) {
	method, err := s.repo.FindByID(ctx, methodID)
	if err != nil {
		return "", fmt.Errorf("查找支付方式失败: %w", err)
	}
	if !method.Active {
		return "", fmt.Errorf("%w: %d", ErrMethodUnavailable, methodID)
	}
	g, ok := s.registry.Get(method.Kind)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, method.Kind)
	}
	return g.RedirectURL(ctx, ref)
}

func (s *service) HandleCallback(ctx context.Context, kind, orderIdentifier, rawStatus string) error {
	g, ok := s.registry.Get(kind)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	status, err := g.CallbackStatus(rawStatus)
	if err != nil {
		return err
	}
	return s.producer.Produce(ctx, event.PaymentStatusEvent{
		OrderIdentifier: orderIdentifier,
		Status:          status.ToUint8(),
	})
}
