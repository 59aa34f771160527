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

type Product struct {
	ID          int64
	StoreID     int64
	Name        string
	Slug        string
	Description string
	// Active 商品是否上架
	Active bool
	// PurchasingEnabled 是否开放购买, 上架但不可购买时只做展示
	PurchasingEnabled bool
	// PreviewEnabled 未上架时是否允许预览
	PreviewEnabled bool
	// Price 单价, 所有变体共用
	Price       decimal.Decimal
	CategoryIDs []int64
	Variants    []Variant
}

// CanPurchase 购买资格判定, 加购和下单共用
func (p Product) CanPurchase() bool {
	return p.Active && p.PurchasingEnabled
}

// InAnyCategory 商品是否命中给定类目之一, 类目限定优惠券用
func (p Product) InAnyCategory(ids []int64) bool {
	for _, cid := range p.CategoryIDs {
		for _, id := range ids {
			if cid == id {
				return true
			}
		}
	}
	return false
}

type Variant struct {
	ID        int64
	ProductID int64
	SKU       string
	Name      string
	// Active 变体是否可售, 商品上架但单个变体可以单独下架
	Active bool
	Stock  int64
	// Weight 单位千克
	Weight decimal.Decimal
	Width  decimal.Decimal
	Height decimal.Decimal
	Depth  decimal.Decimal
	Attrs  string
	// Image 变体主图, CDN绝对路径, 可为空
	Image string
}

// VariantInfo 变体连同所属商品, 购物车和下单据此取价与校验
type VariantInfo struct {
	Variant Variant
	// Product 不含 Variants
	Product Product
}
