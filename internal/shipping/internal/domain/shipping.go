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

package domain

import "github.com/shopspring/decimal"

const (
	// KindFlatRate 固定运费
	KindFlatRate = "flat_rate"
)

type Method struct {
	ID      int64
	StoreID int64
	// Kind 决定走哪个策略实现
	Kind string
	Name string
	// Rate 基础运费, 具体解释由策略决定
	Rate decimal.Decimal
	// FreeShippingAboveAmount 购物车总额超过该值即免运费, Valid=false 表示不提供
	FreeShippingAboveAmount decimal.NullDecimal
	GenerateLabel           bool
	Active                  bool
}

// ApplyFreeShipping 在原始运费算完之后做免邮覆盖, 顺序不可颠倒
func (m Method) ApplyFreeShipping(c Cost, cartTotal decimal.Decimal) Cost {
	if !m.FreeShippingAboveAmount.Valid {
		return c
	}
	if cartTotal.GreaterThan(m.FreeShippingAboveAmount.Decimal) {
		c.Discount = c.Cost
		c.Total = decimal.Zero
	}
	return c
}

type Cost struct {
	Cost     decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

type Shipment struct {
	ID           int64
	OrderID      int64
	MethodID     int64
	Kind         string
	Rate         decimal.Decimal
	TrackingCode string
	Ctime        int64
	Utime        int64
}

// Package 待配送包裹概要, 由购物车行汇总而来
type Package struct {
	Lines []PackageLine
}

type PackageLine struct {
	VariantID int64
	Quantity  int64
	// Weight 单件重量, 千克
	Weight decimal.Decimal
}

// Destination 目的地概要, 避免对地址模块的反向依赖
type Destination struct {
	Country    string
	Region     string
	PostalCode string
}

// OrderRef 生成运单所需的订单概要
type OrderRef struct {
	OrderID    int64
	Identifier string
	MethodID   int64
}
