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
	"testing"

	"github.com/ecodeclub/ecommerce/internal/promotion"
	"github.com/ecodeclub/ecommerce/internal/shipping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(s string) decimal.Decimal {
	res, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return res
}

func TestCart_Subtotal(t *testing.T) {
	t.Parallel()
	cart := Cart{
		Lines: []Line{
			{VariantID: 1, Quantity: 2, UnitPrice: d("19.99")},
			{VariantID: 2, Quantity: 1, UnitPrice: d("5.00")},
		},
	}
	assert.True(t, cart.Subtotal().Equal(d("44.98")), "got %s", cart.Subtotal())
	assert.True(t, Cart{}.Subtotal().IsZero())
}

func TestCart_CalcTotals(t *testing.T) {
	t.Parallel()
	cart := Cart{
		Lines: []Line{
			{VariantID: 1, Quantity: 2, UnitPrice: d("50.00")},
		},
	}

	t.Run("无券时折扣为零", func(t *testing.T) {
		t.Parallel()
		totals := cart.CalcTotals(nil)
		assert.True(t, totals.Subtotal.Equal(d("100")))
		assert.True(t, totals.Discount.IsZero())
		assert.True(t, totals.Total.Equal(d("100")))
	})

	t.Run("固定金额券", func(t *testing.T) {
		t.Parallel()
		coupon := &promotion.Coupon{Mode: promotion.ModeFixed, Amount: d("30.00")}
		totals := cart.CalcTotals(coupon)
		assert.True(t, totals.Discount.Equal(d("30")))
		assert.True(t, totals.Total.Equal(d("70")))
	})

	t.Run("固定金额超过小计时封顶", func(t *testing.T) {
		t.Parallel()
		coupon := &promotion.Coupon{Mode: promotion.ModeFixed, Amount: d("150.00")}
		totals := cart.CalcTotals(coupon)
		assert.True(t, totals.Discount.Equal(d("100")))
		assert.True(t, totals.Total.IsZero())
	})
}

func TestCart_CalcTotalsWithShipping(t *testing.T) {
	t.Parallel()
	cart := Cart{
		Lines: []Line{
			{VariantID: 1, Quantity: 1, UnitPrice: d("80.00")},
		},
	}

	t.Run("总价等于小计减优惠加运费实收", func(t *testing.T) {
		t.Parallel()
		cost := shipping.Cost{Cost: d("10.00"), Discount: d("0"), Total: d("10.00")}
		totals := cart.CalcTotalsWithShipping(nil, cost)
		assert.True(t, totals.Total.Equal(d("90")), "got %s", totals.Total)
		assert.True(t, totals.ShippingCostTotal.Equal(d("10")))
	})

	t.Run("满额免邮后运费不计入总价", func(t *testing.T) {
		t.Parallel()
		method := shipping.Method{
			Rate:                    d("10.00"),
			FreeShippingAboveAmount: decimal.NewNullDecimal(d("75.00")),
		}
		raw := shipping.Cost{Cost: method.Rate, Total: method.Rate}
		cost := method.ApplyFreeShipping(raw, cart.Subtotal())
		totals := cart.CalcTotalsWithShipping(nil, cost)
		assert.True(t, totals.ShippingCostDiscount.Equal(d("10")))
		assert.True(t, totals.ShippingCostTotal.IsZero())
		assert.True(t, totals.Total.Equal(d("80")), "got %s", totals.Total)
	})
}

func TestOwner_OpenKey(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "store:3:uid:42", Owner{StoreID: 3, UID: 42}.OpenKey())
	assert.Equal(t, "store:3:token:abc", Owner{StoreID: 3, Token: "abc"}.OpenKey())
	assert.True(t, Owner{StoreID: 3, Token: "abc"}.Anonymous())
	assert.False(t, Owner{StoreID: 3, UID: 42}.Anonymous())
}
