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
	"github.com/ecodeclub/ecommerce/internal/promotion/internal/domain"
	"github.com/shopspring/decimal"
)

type CouponSaveReq struct {
	Coupon Coupon `json:"coupon"`
}

type CouponSaveResp struct {
	ID int64 `json:"id"`
}

type ListCouponsReq struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type ListCouponsResp struct {
	Coupons []Coupon `json:"coupons,omitempty"`
	Total   int64    `json:"total,omitempty"`
}

type Coupon struct {
	ID               int64   `json:"id,omitempty"`
	Name             string  `json:"name"`
	Code             string  `json:"code"`
	Type             uint8   `json:"type"`
	Mode             uint8   `json:"mode"`
	Amount           string  `json:"amount"`
	UsageLimit       int64   `json:"usageLimit,omitempty"`
	TimesUsed        int64   `json:"timesUsed"`
	TimesAddedToCart int64   `json:"timesAddedToCart"`
	AutoAssign       bool    `json:"autoAssign"`
	Active           bool    `json:"active"`
	ValidFrom        int64   `json:"validFrom,omitempty"`
	ValidUntil       int64   `json:"validUntil,omitempty"`
	CategoryIDs      []int64 `json:"categoryIds,omitempty"`
}

func toCouponVO(c domain.Coupon) Coupon {
	return Coupon{
		ID:               c.ID,
		Name:             c.Name,
		Code:             c.Code,
		Type:             c.Type.ToUint8(),
		Mode:             c.Mode.ToUint8(),
		Amount:           c.Amount.StringFixed(2),
		UsageLimit:       c.UsageLimit,
		TimesUsed:        c.TimesUsed,
		TimesAddedToCart: c.TimesAddedToCart,
		AutoAssign:       c.AutoAssign,
		Active:           c.Active,
		ValidFrom:        c.ValidFrom,
		ValidUntil:       c.ValidUntil,
		CategoryIDs:      c.CategoryIDs,
	}
}

func (c Coupon) toDomain() domain.Coupon {
	amount, _ := decimal.NewFromString(c.Amount)
	return domain.Coupon{
		ID:          c.ID,
		Name:        c.Name,
		Code:        c.Code,
		Type:        domain.Type(c.Type),
		Mode:        domain.Mode(c.Mode),
		Amount:      amount,
		UsageLimit:  c.UsageLimit,
		AutoAssign:  c.AutoAssign,
		Active:      c.Active,
		ValidFrom:   c.ValidFrom,
		ValidUntil:  c.ValidUntil,
		CategoryIDs: c.CategoryIDs,
	}
}
