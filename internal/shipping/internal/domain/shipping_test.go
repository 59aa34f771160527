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

func TestMethod_ApplyFreeShipping(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name         string
		method       Method
		cartTotal    string
		wantDiscount string
		wantTotal    string
	}{
		{
			name: "超过阈值免运费",
			method: Method{
				Rate:                    d("10.00"),
				FreeShippingAboveAmount: decimal.NewNullDecimal(d("75.00")),
			},
			cartTotal:    "80.00",
			wantDiscount: "10",
			wantTotal:    "0",
		},
		{
			name: "恰好等于阈值不免",
			method: Method{
				Rate:                    d("10.00"),
				FreeShippingAboveAmount: decimal.NewNullDecimal(d("75.00")),
			},
			cartTotal:    "75.00",
			wantDiscount: "0",
			wantTotal:    "10",
		},
		{
			name: "不设阈值原样返回",
			method: Method{
				Rate: d("10.00"),
			},
			cartTotal:    "999.00",
			wantDiscount: "0",
			wantTotal:    "10",
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			raw := Cost{Cost: tc.method.Rate, Discount: decimal.Zero, Total: tc.method.Rate}
			got := tc.method.ApplyFreeShipping(raw, d(tc.cartTotal))
			assert.True(t, got.Cost.Equal(tc.method.Rate))
			assert.True(t, got.Discount.Equal(d(tc.wantDiscount)), "discount %s", got.Discount)
			assert.True(t, got.Total.Equal(d(tc.wantTotal)), "total %s", got.Total)
		})
	}
}
