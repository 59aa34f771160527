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

	"github.com/stretchr/testify/assert"
)

func TestProduct_CanPurchase(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name    string
		product Product
		want    bool
	}{
		{
			name:    "上架且开放购买",
			product: Product{Active: true, PurchasingEnabled: true},
			want:    true,
		},
		{
			name:    "上架但关闭购买",
			product: Product{Active: true, PurchasingEnabled: false},
			want:    false,
		},
		{
			name:    "未上架",
			product: Product{Active: false, PurchasingEnabled: true},
			want:    false,
		},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, tc.product.CanPurchase())
		})
	}
}

func TestProduct_InAnyCategory(t *testing.T) {
	t.Parallel()
	p := Product{CategoryIDs: []int64{3, 7}}
	assert.True(t, p.InAnyCategory([]int64{7, 9}))
	assert.False(t, p.InAnyCategory([]int64{1, 2}))
	assert.False(t, p.InAnyCategory(nil))
	assert.False(t, Product{}.InAnyCategory([]int64{3}))
}
