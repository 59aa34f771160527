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
	"fmt"

	"github.com/ecodeclub/ecommerce/internal/shipping/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/shipping/internal/repository"
	"github.com/ecodeclub/ecommerce/internal/shipping/internal/service/strategy"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=./service.go -package=shippingmocks -destination=../../mocks/shipping.mock.go -typed Service
type Service interface {
	FindMethodByID(ctx context.Context, id int64) (domain.Method, error)
	FindActiveMethods(ctx context.Context, storeID int64) ([]domain.Method, error)
	CreateMethod(ctx context.Context, m domain.Method) (int64, error)
	// CalculateCost 先按策略算原始运费, 再做满额免邮覆盖
	CalculateCost(ctx context.Context, methodID int64, pkg domain.Package, dest domain.Destination, cartTotal decimal.Decimal) (domain.Cost, error)
	// GenerateShipment 为已支付订单生成运单, 由订单支付事件触发
	GenerateShipment(ctx context.Context, ref domain.OrderRef) (domain.Shipment, error)
	FindShipmentByOrderID(ctx context.Context, orderID int64) (domain.Shipment, error)
}

func NewService(repo repository.ShippingRepository, registry *strategy.Registry) Service {
	return &service{repo: repo, registry: registry}
}

type service struct {
	repo     repository.ShippingRepository
	registry *strategy.Registry
}

func (s *service) FindMethodByID(ctx context.Context, id int64) (domain.Method, error) {
	return s.repo.FindMethodByID(ctx, id)
}

func (s *service) FindActiveMethods(ctx context.Context, storeID int64) ([]domain.Method, error) {
	return s.repo.FindActiveMethods(ctx, storeID)
}

func (s *service) CreateMethod(ctx context.Context, m domain.Method) (int64, error) {
	if _, ok := s.registry.Get(m.Kind); !ok {
		return 0, fmt.Errorf("%w: %s", strategy.ErrUnknownKind, m.Kind)
	}
	return s.repo.CreateMethod(ctx, m)
}

func (s *service) CalculateCost(ctx context.Context, methodID int64, pkg domain.Package, dest domain.Destination, cartTotal decimal.Decimal) (domain.Cost, error) {
	method, err := s.repo.FindMethodByID(ctx, methodID)
	if err != nil {
		return domain.Cost{}, fmt.Errorf("查找配送方式失败: %w", err)
	}
	if !method.Active {
		return domain.Cost{}, fmt.Errorf("配送方式不可用: %d", methodID)
	}
	st, ok := s.registry.Get(method.Kind)
	if !ok {
		return domain.Cost{}, fmt.Errorf("%w: %s", strategy.ErrUnknownKind, method.Kind)
	}
	cost, err := st.CalculateCost(ctx, method, pkg, dest)
	if err != nil {
		return domain.Cost{}, err
	}
	return method.ApplyFreeShipping(cost, cartTotal), nil
}

func (s *service) GenerateShipment(ctx context.Context, ref domain.OrderRef) (domain.Shipment, error) {
	method, err := s.repo.FindMethodByID(ctx, ref.MethodID)
	if err != nil {
		return domain.Shipment{}, fmt.Errorf("查找配送方式失败: %w", err)
	}
	st, ok := s.registry.Get(method.Kind)
	if !ok {
		return domain.Shipment{}, fmt.Errorf("%w: %s", strategy.ErrUnknownKind, method.Kind)
	}
	return st.GenerateShipment(ctx, method, ref)
}

func (s *service) FindShipmentByOrderID(ctx context.Context, orderID int64) (domain.Shipment, error) {
	return s.repo.FindShipmentByOrderID(ctx, orderID)
}
