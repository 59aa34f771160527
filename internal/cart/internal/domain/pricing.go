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

import (
	"github.com/ecodeclub/ecommerce/internal/pkg/money"
	"github.com/ecodeclub/ecommerce/internal/promotion"
	"github.com/ecodeclub/ecommerce/internal/shipping"
	"github.com/ecodeclub/ekit/slice"
	"github.com/shopspring/decimal"
)

type Totals struct {
	Subtotal decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal
}

type TotalsWithShipping struct {
	Totals
	ShippingCost         decimal.Decimal
	ShippingCostDiscount decimal.Decimal
	ShippingCostTotal    decimal.Decimal
}

func (c Cart) PricedLines() []promotion.PricedLine {
	return slice.Map(c.Lines, func(idx int, src Line) promotion.PricedLine {
		return promotion.PricedLine{
			VariantID:   src.VariantID,
			Quantity:    src.Quantity,
			UnitPrice:   src.UnitPrice,
			CategoryIDs: src.CategoryIDs,
		}
	})
}

func (c Cart) Subtotal() decimal.Decimal {
	return promotion.Subtotal(c.PricedLines())
}

// Discount 优惠金额。券的活动性校验在取购物车时做过, 这里不再重复
func (c Cart) Discount(coupon *promotion.Coupon) decimal.Decimal {
	if coupon == nil {
		return money.Zero()
	}
	return coupon.DiscountForCart(c.PricedLines())
}

// ItemDiscount 单件优惠金额
func (c Cart) ItemDiscount(coupon *promotion.Coupon, line Line) decimal.Decimal {
	if coupon == nil {
		return money.Zero()
	}
	pl := promotion.PricedLine{
		VariantID:   line.VariantID,
		Quantity:    line.Quantity,
		UnitPrice:   line.UnitPrice,
		CategoryIDs: line.CategoryIDs,
	}
	return coupon.DiscountForLine(pl, c.Subtotal(), c.Discount(coupon))
}

func (c Cart) CalcTotals(coupon *promotion.Coupon) Totals {
	subtotal := c.Subtotal()
	discount := c.Discount(coupon)
	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Total:    subtotal.Sub(discount),
	}
}

// CalcTotalsWithShipping 总价 = 小计 - 优惠 + 运费实收
func (c Cart) CalcTotalsWithShipping(coupon *promotion.Coupon, shippingCost shipping.Cost) TotalsWithShipping {
	totals := c.CalcTotals(coupon)
	totals.Total = totals.Subtotal.Sub(totals.Discount).Add(shippingCost.Total)
	return TotalsWithShipping{
		Totals:               totals,
		ShippingCost:         shippingCost.Cost,
		ShippingCostDiscount: shippingCost.Discount,
		ShippingCostTotal:    shippingCost.Total,
	}
}

// ShippingPackage 汇总成配送模块需要的包裹概要
func (c Cart) ShippingPackage() shipping.Package {
	return shipping.Package{
		Lines: slice.Map(c.Lines, func(idx int, src Line) shipping.PackageLine {
			return shipping.PackageLine{
				VariantID: src.VariantID,
				Quantity:  src.Quantity,
				Weight:    src.Weight,
			}
		}),
	}
}
