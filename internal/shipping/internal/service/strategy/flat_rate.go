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

package strategy

import (
	"context"
	"fmt"

	"github.com/ecodeclub/ecommerce/internal/shipping/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/shipping/internal/repository"
	"github.com/gotomicro/ego/core/elog"
	"github.com/shopspring/decimal"
)

// LabelRenderer 渲染面单, 失败不影响运单本身
type LabelRenderer interface {
	Render(ctx context.Context, shipment domain.Shipment) error
}

// FlatRate 整单一口价运费
type FlatRate struct {
	repo     repository.ShippingRepository
	renderer LabelRenderer
	logger   *elog.Component
}

func NewFlatRate(repo repository.ShippingRepository, renderer LabelRenderer) *FlatRate {
	return &FlatRate{
		repo:     repo,
		renderer: renderer,
		logger:   elog.DefaultLogger,
	}
}

func (f *FlatRate) CalculateCost(_ context.Context, method domain.Method, _ domain.Package, _ domain.Destination) (domain.Cost, error) {
	return domain.Cost{
		Cost:     method.Rate,
		Discount: decimal.Zero,
		Total:    method.Rate,
	}, nil
}

func (f *FlatRate) GenerateShipment(ctx context.Context, method domain.Method, ref domain.OrderRef) (domain.Shipment, error) {
	shipment := domain.Shipment{
		OrderID:  ref.OrderID,
		MethodID: method.ID,
		Kind:     method.Kind,
		Rate:     method.Rate,
	}
	id, err := f.repo.CreateShipment(ctx, shipment)
	if err != nil {
		return domain.Shipment{}, fmt.Errorf("创建运单失败: %w", err)
	}
	shipment.ID = id
	if method.GenerateLabel && f.renderer != nil {
		if err := f.renderer.Render(ctx, shipment); err != nil {
			f.logger.Error("渲染面单失败",
				elog.FieldErr(err),
				elog.Int64("oid", ref.OrderID))
		}
	}
	return shipment, nil
}

// NoopLabelRenderer 不渲染面单的占位实现
type NoopLabelRenderer struct{}

func (NoopLabelRenderer) Render(_ context.Context, _ domain.Shipment) error {
	return nil
}
