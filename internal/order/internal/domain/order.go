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

type Status uint8

const (
	StatusPaymentPending Status = iota + 1
	StatusAwaitingPaymentConfirmation
	StatusAwaitingPaymentAuthorization
	StatusPaid
	StatusShipmentGenerated
	StatusShipped
	StatusDelivered
	StatusCancelled
)

func (s Status) ToUint8() uint8 {
	return uint8(s)
}

// Cancelable 买家还能主动取消的状态
func (s Status) Cancelable() bool {
	switch s {
	case StatusPaymentPending, StatusAwaitingPaymentConfirmation, StatusAwaitingPaymentAuthorization:
		return true
	default:
		return false
	}
}

// Order 下单时刻的不可变快照。
// 优惠券和金额全部冗余进来, 之后改券改价都不影响历史订单
type Order struct {
	ID      int64
	StoreID int64
	UID     int64
	// Identifier 对外展示的订单号
	Identifier string
	// CartID 来源购物车, 支付结果要回写它的状态
	CartID int64
	Status Status

	CouponID     int64
	CouponCode   string
	CouponType   uint8
	CouponMode   uint8
	CouponAmount decimal.Decimal

	ShippingMethodID int64
	PaymentMethodID  int64

	Subtotal             decimal.Decimal
	Discount             decimal.Decimal
	ShippingCost         decimal.Decimal
	ShippingCostDiscount decimal.Decimal
	ShippingCostTotal    decimal.Decimal
	Total                decimal.Decimal

	ShippingAddress Address
	BillingAddress  Address

	Lines []Line

	DatePlaced int64
	DatePaid   int64
	Ctime      int64
	Utime      int64
}

// Address 订单持有的地址副本, 与用户地址簿脱钩
type Address struct {
	ID         int64
	Name       string
	Line1      string
	Line2      string
	City       string
	Region     string
	PostalCode string
	Country    string
	Phone      string
}

type Line struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	VariantID   int64
	SKU         string
	ProductName string
	VariantName string
	Quantity    int64
	// UnitPrice 原始单价, UnitDiscount 按行摊派的单件优惠
	UnitPrice             decimal.Decimal
	UnitDiscount          decimal.Decimal
	UnitPriceWithDiscount decimal.Decimal
	Total                 decimal.Decimal
	Weight                decimal.Decimal
	Width                 decimal.Decimal
	Height                decimal.Decimal
	Depth                 decimal.Decimal
	Attrs                 string
	Thumbnail             string
}
