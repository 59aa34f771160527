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
	"github.com/ecodeclub/ecommerce/internal/product/internal/domain"
	"github.com/ecodeclub/ekit/slice"
)

type SlugReq struct {
	Slug string `json:"slug"`
}

type ListReq struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type ProductListResp struct {
	Products []Product `json:"products,omitempty"`
	Total    int64     `json:"total,omitempty"`
}

type Product struct {
	ID                int64     `json:"id"`
	Name              string    `json:"name"`
	Slug              string    `json:"slug"`
	Desc              string    `json:"desc"`
	Price             string    `json:"price"`
	PurchasingEnabled bool      `json:"purchasingEnabled"`
	Variants          []Variant `json:"variants,omitempty"`
}

type Variant struct {
	ID    int64  `json:"id"`
	SKU   string `json:"sku"`
	Name  string `json:"name"`
	Stock int64  `json:"stock"`
	Attrs string `json:"attrs,omitempty"`
	Image string `json:"image"`
}

func newProduct(p domain.Product) Product {
	return Product{
		ID:                p.ID,
		Name:              p.Name,
		Slug:              p.Slug,
		Desc:              p.Description,
		Price:             p.Price.StringFixed(2),
		PurchasingEnabled: p.PurchasingEnabled,
		Variants: slice.Map(p.Variants, func(idx int, src domain.Variant) Variant {
			return Variant{
				ID:    src.ID,
				SKU:   src.SKU,
				Name:  src.Name,
				Stock: src.Stock,
				Attrs: src.Attrs,
				Image: src.Image,
			}
		}),
	}
}

func newProducts(ps []domain.Product) []Product {
	return slice.Map(ps, func(idx int, src domain.Product) Product {
		return newProduct(src)
	})
}
