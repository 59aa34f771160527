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

package repository

import (
	"context"
	"database/sql"

	"github.com/ecodeclub/ecommerce/internal/product/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/product/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ekit/sqlx"
)

type ProductRepository interface {
	FindByID(ctx context.Context, id int64) (domain.Product, error)
	FindBySlug(ctx context.Context, storeID int64, slug string) (domain.Product, error)
	List(ctx context.Context, storeID int64, offset, limit int) ([]domain.Product, error)
	Count(ctx context.Context, storeID int64) (int64, error)
	FindVariantInfosByIDs(ctx context.Context, ids []int64) ([]domain.VariantInfo, error)
	CreateProduct(ctx context.Context, p domain.Product) (int64, error)
	CreateVariant(ctx context.Context, v domain.Variant) (int64, error)
}

func NewProductRepository(d dao.ProductDAO) ProductRepository {
	return &productRepository{d: d}
}

type productRepository struct {
	d dao.ProductDAO
}

func (r *productRepository) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	p, err := r.d.FindByID(ctx, id)
	if err != nil {
		return domain.Product{}, err
	}
	return r.hydrate(ctx, p)
}

func (r *productRepository) FindBySlug(ctx context.Context, storeID int64, slug string) (domain.Product, error) {
	p, err := r.d.FindBySlug(ctx, storeID, slug)
	if err != nil {
		return domain.Product{}, err
	}
	return r.hydrate(ctx, p)
}

func (r *productRepository) hydrate(ctx context.Context, p dao.Product) (domain.Product, error) {
	vs, err := r.d.FindVariantsByProductID(ctx, p.Id)
	if err != nil {
		return domain.Product{}, err
	}
	res := r.toDomain(p)
	res.Variants = slice.Map(vs, func(idx int, src dao.ProductVariant) domain.Variant {
		return r.variantToDomain(src)
	})
	return res, nil
}

func (r *productRepository) List(ctx context.Context, storeID int64, offset, limit int) ([]domain.Product, error) {
	ps, err := r.d.List(ctx, storeID, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(ps, func(idx int, src dao.Product) domain.Product {
		return r.toDomain(src)
	}), nil
}

func (r *productRepository) Count(ctx context.Context, storeID int64) (int64, error) {
	return r.d.Count(ctx, storeID)
}

// FindVariantInfosByIDs 批量取变体及所属商品, 返回顺序与查库顺序一致, 缺失的ID直接忽略
func (r *productRepository) FindVariantInfosByIDs(ctx context.Context, ids []int64) ([]domain.VariantInfo, error) {
	vs, err := r.d.FindVariantsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	pids := slice.Map(vs, func(idx int, src dao.ProductVariant) int64 {
		return src.ProductId
	})
	ps, err := r.d.FindByIDs(ctx, pids)
	if err != nil {
		return nil, err
	}
	pm := make(map[int64]dao.Product, len(ps))
	for _, p := range ps {
		pm[p.Id] = p
	}
	res := make([]domain.VariantInfo, 0, len(vs))
	for _, v := range vs {
		p, ok := pm[v.ProductId]
		if !ok {
			continue
		}
		res = append(res, domain.VariantInfo{
			Variant: r.variantToDomain(v),
			Product: r.toDomain(p),
		})
	}
	return res, nil
}

func (r *productRepository) CreateProduct(ctx context.Context, p domain.Product) (int64, error) {
	return r.d.CreateProduct(ctx, r.toEntity(p))
}

func (r *productRepository) CreateVariant(ctx context.Context, v domain.Variant) (int64, error) {
	return r.d.CreateVariant(ctx, r.variantToEntity(v))
}

func (r *productRepository) toDomain(p dao.Product) domain.Product {
	return domain.Product{
		ID:                p.Id,
		StoreID:           p.StoreId,
		Name:              p.Name,
		Slug:              p.Slug,
		Description:       p.Description,
		Active:            p.Active,
		PurchasingEnabled: p.PurchasingEnabled,
		PreviewEnabled:    p.PreviewEnabled,
		Price:             p.Price,
		CategoryIDs:       p.CategoryIds.Val,
	}
}

func (r *productRepository) toEntity(p domain.Product) dao.Product {
	return dao.Product{
		Id:                p.ID,
		StoreId:           p.StoreID,
		Slug:              p.Slug,
		Name:              p.Name,
		Description:       p.Description,
		Active:            p.Active,
		PurchasingEnabled: p.PurchasingEnabled,
		PreviewEnabled:    p.PreviewEnabled,
		Price:             p.Price,
		CategoryIds: sqlx.JsonColumn[[]int64]{
			Val:   p.CategoryIDs,
			Valid: len(p.CategoryIDs) > 0,
		},
	}
}

func (r *productRepository) variantToDomain(v dao.ProductVariant) domain.Variant {
	return domain.Variant{
		ID:        v.Id,
		ProductID: v.ProductId,
		SKU:       v.SKU,
		Name:      v.Name,
		Active:    v.Active,
		Stock:     v.Stock,
		Weight:    v.Weight,
		Width:     v.Width,
		Height:    v.Height,
		Depth:     v.Depth,
		Attrs:     v.Attrs.String,
		Image:     v.Image,
	}
}

func (r *productRepository) variantToEntity(v domain.Variant) dao.ProductVariant {
	return dao.ProductVariant{
		Id:        v.ID,
		ProductId: v.ProductID,
		SKU:       v.SKU,
		Name:      v.Name,
		Active:    v.Active,
		Stock:     v.Stock,
		Weight:    v.Weight,
		Width:     v.Width,
		Height:    v.Height,
		Depth:     v.Depth,
		Attrs:     sql.NullString{String: v.Attrs, Valid: v.Attrs != ""},
		Image:     v.Image,
	}
}
