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
	"errors"
	"strings"

	"github.com/ecodeclub/ecommerce/internal/pkg/money"
	"github.com/shopspring/decimal"
)

var ErrInvalidCode = errors.New("优惠码格式非法")

type Type uint8

func (t Type) ToUint8() uint8 {
	return uint8(t)
}

const (
	// TypeOrderTotal 整单优惠, 目前唯一的类型
	TypeOrderTotal Type = 1
)

type Mode uint8

func (m Mode) ToUint8() uint8 {
	return uint8(m)
}

const (
	ModeFixed      Mode = 1 // 固定金额
	ModePercentage Mode = 2 // 百分比
)

type Coupon struct {
	ID   int64
	Name string
	// Code 全大写存储, 查找时对输入做同样归一化
	Code   string
	Type   Type
	Mode   Mode
	Amount decimal.Decimal
	// UsageLimit 0 表示不限次
	UsageLimit       int64
	TimesUsed        int64
	TimesAddedToCart int64
	AutoAssign       bool
	AutoGenerated    bool
	Active           bool
	// ValidFrom ValidUntil 毫秒时间戳, 0 表示不设界
	ValidFrom  int64
	ValidUntil int64
	// CategoryIDs 非空时优惠只作用于命中类目的行
	CategoryIDs []int64
}

// NormalizeCode 去掉首尾空白并转大写, 中间含空白即非法
func NormalizeCode(code string) (string, error) {
	code = strings.TrimSpace(code)
	if code == "" || strings.ContainsAny(code, " \t\n\r") {
		return "", ErrInvalidCode
	}
	return strings.ToUpper(code), nil
}

// IsValid 活动判定: 启用, 处于有效期内, 且未用完限额
func (c Coupon) IsValid(now int64) bool {
	if !c.Active {
		return false
	}
	if c.ValidFrom > 0 && c.ValidFrom > now {
		return false
	}
	if c.ValidUntil > 0 && c.ValidUntil < now {
		return false
	}
	if c.UsageLimit > 0 && c.TimesUsed >= c.UsageLimit {
		return false
	}
	return true
}

func (c Coupon) restricted() bool {
	return len(c.CategoryIDs) > 0
}

func (c Coupon) matches(line PricedLine) bool {
	if !c.restricted() {
		return true
	}
	for _, cid := range line.CategoryIDs {
		for _, id := range c.CategoryIDs {
			if cid == id {
				return true
			}
		}
	}
	return false
}

// PricedLine 参与优惠计算的一行, 由购物车水合商品信息后传入
type PricedLine struct {
	VariantID   int64
	Quantity    int64
	UnitPrice   decimal.Decimal
	CategoryIDs []int64
}

func (l PricedLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}

func Subtotal(lines []PricedLine) decimal.Decimal {
	res := money.Zero()
	for _, l := range lines {
		res = res.Add(l.Total())
	}
	return res
}

// DiscountForCart 计算整单优惠金额。
// 固定金额封顶在小计, 类目限定但无命中行时返回零而不是报错
func (c Coupon) DiscountForCart(lines []PricedLine) decimal.Decimal {
	subtotal := Subtotal(lines)
	switch c.Mode {
	case ModePercentage:
		if !c.restricted() {
			return money.Percent(subtotal, c.Amount)
		}
		res := money.Zero()
		for _, l := range lines {
			if c.matches(l) {
				res = res.Add(money.Percent(l.Total(), c.Amount))
			}
		}
		return res
	case ModeFixed:
		return money.Min(c.Amount, subtotal)
	default:
		return money.Zero()
	}
}

// DiscountForLine 计算单件优惠金额。
// 固定金额按行单价占小计的比例分摊, 百分比直接按行单价计算
func (c Coupon) DiscountForLine(line PricedLine, subtotal, totalDiscount decimal.Decimal) decimal.Decimal {
	switch c.Mode {
	case ModePercentage:
		if !c.matches(line) {
			return money.Zero()
		}
		return money.Percent(line.UnitPrice, c.Amount)
	case ModeFixed:
		// 空车分摊没有意义, 直接归零
		if subtotal.IsZero() {
			return money.Zero()
		}
		return totalDiscount.Mul(line.UnitPrice).Div(subtotal)
	default:
		return money.Zero()
	}
}
