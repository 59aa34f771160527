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
	"time"

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

func TestNormalizeCode(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		code    string
		want    string
		wantErr error
	}{
		{name: "小写转大写", code: "summer10", want: "SUMMER10"},
		{name: "首尾空白去掉", code: "  promo ", want: "PROMO"},
		{name: "中间空白非法", code: "pro mo", wantErr: ErrInvalidCode},
		{name: "空串非法", code: "   ", wantErr: ErrInvalidCode},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := NormalizeCode(tc.code)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCoupon_IsValid(t *testing.T) {
	t.Parallel()
	now := time.Now().UnixMilli()
	day := int64(24 * time.Hour / time.Millisecond)
	testCases := []struct {
		name   string
		coupon Coupon
		want   bool
	}{
		{
			name:   "启用且无限制",
			coupon: Coupon{Active: true},
			want:   true,
		},
		{
			name:   "未启用",
			coupon: Coupon{Active: false},
			want:   false,
		},
		{
			name:   "还没生效",
			coupon: Coupon{Active: true, ValidFrom: now + day},
			want:   false,
		},
		{
			name:   "已过期",
			coupon: Coupon{Active: true, ValidUntil: now - day},
			want:   false,
		},
		{
			name:   "处于有效期内",
			coupon: Coupon{Active: true, ValidFrom: now - day, ValidUntil: now + day},
			want:   true,
		},
		{
			name:   "限额已用完",
			coupon: Coupon{Active: true, UsageLimit: 3, TimesUsed: 3},
			want:   false,
		},
		{
			name:   "限额未用完",
			coupon: Coupon{Active: true, UsageLimit: 3, TimesUsed: 2},
			want:   true,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.coupon.IsValid(now))
		})
	}
}

func TestCoupon_DiscountForCart(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name   string
		coupon Coupon
		lines  []PricedLine
		want   string
	}{
		{
			name:   "固定金额超过小计时封顶",
			coupon: Coupon{Mode: ModeFixed, Amount: d("150.00")},
			lines: []PricedLine{
				{Quantity: 2, UnitPrice: d("50.00")},
			},
			want: "100",
		},
		{
			name:   "固定金额小于小计",
			coupon: Coupon{Mode: ModeFixed, Amount: d("30.00")},
			lines: []PricedLine{
				{Quantity: 1, UnitPrice: d("80.00")},
			},
			want: "30",
		},
		{
			name:   "百分比无类目限制",
			coupon: Coupon{Mode: ModePercentage, Amount: d("10")},
			lines: []PricedLine{
				{Quantity: 1, UnitPrice: d("50.00")},
				{Quantity: 1, UnitPrice: d("30.00")},
			},
			want: "8",
		},
		{
			name:   "百分比类目限制只算命中行",
			coupon: Coupon{Mode: ModePercentage, Amount: d("10"), CategoryIDs: []int64{7}},
			lines: []PricedLine{
				{Quantity: 1, UnitPrice: d("50.00"), CategoryIDs: []int64{7}},
				{Quantity: 1, UnitPrice: d("30.00"), CategoryIDs: []int64{9}},
			},
			want: "5",
		},
		{
			name:   "类目限制无命中行返回零",
			coupon: Coupon{Mode: ModePercentage, Amount: d("10"), CategoryIDs: []int64{7}},
			lines: []PricedLine{
				{Quantity: 2, UnitPrice: d("30.00"), CategoryIDs: []int64{9}},
			},
			want: "0",
		},
		{
			name:   "空车固定金额折扣为零",
			coupon: Coupon{Mode: ModeFixed, Amount: d("20.00")},
			lines:  nil,
			want:   "0",
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := tc.coupon.DiscountForCart(tc.lines)
			assert.True(t, got.Equal(d(tc.want)), "got %s want %s", got, tc.want)
		})
	}
}

func TestCoupon_DiscountForLine(t *testing.T) {
	t.Parallel()

	t.Run("固定金额按单价占比分摊", func(t *testing.T) {
		t.Parallel()
		coupon := Coupon{Mode: ModeFixed, Amount: d("10.00")}
		lines := []PricedLine{
			{Quantity: 1, UnitPrice: d("60.00")},
			{Quantity: 1, UnitPrice: d("40.00")},
		}
		subtotal := Subtotal(lines)
		total := coupon.DiscountForCart(lines)
		got0 := coupon.DiscountForLine(lines[0], subtotal, total)
		got1 := coupon.DiscountForLine(lines[1], subtotal, total)
		assert.True(t, got0.Equal(d("6")), "got %s", got0)
		assert.True(t, got1.Equal(d("4")), "got %s", got1)
	})

	t.Run("分摊之和等于整单折扣", func(t *testing.T) {
		t.Parallel()
		coupon := Coupon{Mode: ModeFixed, Amount: d("25.00")}
		lines := []PricedLine{
			{Quantity: 2, UnitPrice: d("12.50")},
			{Quantity: 1, UnitPrice: d("25.00")},
			{Quantity: 3, UnitPrice: d("16.50")},
		}
		subtotal := Subtotal(lines)
		total := coupon.DiscountForCart(lines)
		sum := decimal.Zero
		for _, l := range lines {
			perUnit := coupon.DiscountForLine(l, subtotal, total)
			sum = sum.Add(perUnit.Mul(decimal.NewFromInt(l.Quantity)))
		}
		diff := sum.Sub(total).Abs()
		assert.True(t, diff.LessThan(d("0.01")), "sum %s total %s", sum, total)
	})

	t.Run("百分比直接按行单价计算", func(t *testing.T) {
		t.Parallel()
		coupon := Coupon{Mode: ModePercentage, Amount: d("20")}
		line := PricedLine{Quantity: 3, UnitPrice: d("15.00")}
		got := coupon.DiscountForLine(line, d("45.00"), d("9.00"))
		assert.True(t, got.Equal(d("3")), "got %s", got)
	})

	t.Run("百分比类目不命中返回零", func(t *testing.T) {
		t.Parallel()
		coupon := Coupon{Mode: ModePercentage, Amount: d("20"), CategoryIDs: []int64{1}}
		line := PricedLine{Quantity: 1, UnitPrice: d("15.00"), CategoryIDs: []int64{2}}
		got := coupon.DiscountForLine(line, d("15.00"), d("0"))
		assert.True(t, got.IsZero())
	})

	t.Run("小计为零时分摊为零", func(t *testing.T) {
		t.Parallel()
		coupon := Coupon{Mode: ModeFixed, Amount: d("10.00")}
		line := PricedLine{Quantity: 1, UnitPrice: d("0")}
		got := coupon.DiscountForLine(line, d("0"), d("0"))
		assert.True(t, got.IsZero())
	})
}
