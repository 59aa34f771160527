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
	"errors"

	"github.com/ecodeclub/ecommerce/internal/shipping/internal/domain"
)

// ErrUnknownKind 配送方式种类没有注册对应的策略
var ErrUnknownKind = errors.New("未知的配送方式种类")

// Strategy 按配送方式种类注册的策略实现
type Strategy interface {
	// CalculateCost 计算原始运费, 免邮覆盖由调用方在此之后做
	CalculateCost(ctx context.Context, method domain.Method, pkg domain.Package, dest domain.Destination) (domain.Cost, error)
	// GenerateShipment 为已支付订单生成运单
	GenerateShipment(ctx context.Context, method domain.Method, ref domain.OrderRef) (domain.Shipment, error)
}

type Registry struct {
	strategies map[string]Strategy
}

func NewRegistry() *Registry {
	return &Registry{
		strategies: make(map[string]Strategy),
	}
}

func (r *Registry) Register(kind string, s Strategy) {
	r.strategies[kind] = s
}

func (r *Registry) Get(kind string) (Strategy, bool) {
	s, ok := r.strategies[kind]
	return s, ok
}
