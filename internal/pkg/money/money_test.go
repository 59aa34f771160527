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

package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPercent(t *testing.T) {
	testCases := []struct {
		name     string
		amount   string
		pct      string
		expected string
	}{
		{
			name:     "整数百分比",
			amount:   "100.00",
			pct:      "10",
			expected: "10",
		},
		{
			name:     "不整除也不损失精度",
			amount:   "0.10",
			pct:      "33",
			expected: "0.033",
		},
		{
			name:     "零金额",
			amount:   "0",
			pct:      "50",
			expected: "0",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Percent(decimal.RequireFromString(tc.amount), decimal.RequireFromString(tc.pct))
			assert.True(t, decimal.RequireFromString(tc.expected).Equal(got), got.String())
		})
	}
}

func TestPercentIdempotent(t *testing.T) {
	amount := decimal.RequireFromString("79.99")
	pct := decimal.RequireFromString("15")
	first := Percent(amount, pct)
	for i := 0; i < 100; i++ {
		assert.True(t, first.Equal(Percent(amount, pct)))
	}
}

func TestMin(t *testing.T) {
	a := decimal.RequireFromString("100.00")
	b := decimal.RequireFromString("150.00")
	assert.True(t, Min(a, b).Equal(a))
	assert.True(t, Min(b, a).Equal(a))
	assert.True(t, Min(a, a).Equal(a))
}

func TestRound2(t *testing.T) {
	assert.Equal(t, "10.57", Round2(decimal.RequireFromString("10.565")).String())
	assert.Equal(t, "10.56", Round2(decimal.RequireFromString("10.564")).String())
}
