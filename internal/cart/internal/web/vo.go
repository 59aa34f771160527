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

package web

import (
	"github.com/ecodeclub/ecommerce/internal/cart/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/promotion"
	"github.com/ecodeclub/ekit/slice"
)

type AddToCartReq struct {
	VariantID int64 `json:"variantId"`
}

type ModifyCartLineReq struct {
	VariantID int64 `json:"variantId"`
	Quantity  int64 `json:"quantity"`
}

type UpdateCartCouponReq struct {
	// Code 为空表示摘除优惠券
	Code string `json:"code"`
}

type DetailReq struct{}

type MergeReq struct {
	Token string `json:"token"`
}

type Cart struct {
	ID         int64  `json:"id"`
	Status     uint8  `json:"status"`
	CouponCode string `json:"couponCode,omitempty"`
	Lines      []Line `json:"lines,omitempty"`
	Subtotal   string `json:"subtotal"`
	Discount   string `json:"discount"`
	Total      string `json:"total"`
	// Removed 库存校验中被删掉的变体ID
	Removed []int64 `json:"removed,omitempty"`
}

type Line struct {
	VariantID    int64  `json:"variantId"`
	SKU          string `json:"sku"`
	ProductName  string `json:"productName"`
	VariantName  string `json:"variantName"`
	Quantity     int64  `json:"quantity"`
	UnitPrice    string `json:"unitPrice"`
	ItemDiscount string `json:"itemDiscount"`
	Total        string `json:"total"`
	Image        string `json:"image,omitempty"`
}

func toCartVO(c domain.Cart, coupon *promotion.Coupon) Cart {
	totals := c.CalcTotals(coupon)
	res := Cart{
		ID:       c.ID,
		Status:   c.Status.ToUint8(),
		Subtotal: totals.Subtotal.StringFixed(2),
		Discount: totals.Discount.StringFixed(2),
		Total:    totals.Total.StringFixed(2),
		Lines: slice.Map(c.Lines, func(idx int, src domain.Line) Line {
			return Line{
				VariantID:    src.VariantID,
				SKU:          src.SKU,
				ProductName:  src.ProductName,
				VariantName:  src.VariantName,
				Quantity:     src.Quantity,
				UnitPrice:    src.UnitPrice.StringFixed(2),
				ItemDiscount: c.ItemDiscount(coupon, src).StringFixed(2),
				Total:        src.Total().StringFixed(2),
				Image:        src.Image,
			}
		}),
	}
	if coupon != nil {
		res.CouponCode = coupon.Code
	}
	return res
}
