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

// Package money 金额运算辅助函数。所有金额一律使用 decimal, 不允许出现浮点数
package money

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// Zero 返回零金额
func Zero() decimal.Decimal {
	return decimal.Zero
}

// Percent 按百分比计算 amount 的一部分, pct 为百分数, 例如 10 表示 10%
func Percent(amount decimal.Decimal, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}

// Min 返回两者中较小的金额
func Min(a decimal.Decimal, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// Round2 四舍五入到分, 仅在落库边界调用, 中间计算不做舍入
func Round2(a decimal.Decimal) decimal.Decimal {
	return a.Round(2)
}
