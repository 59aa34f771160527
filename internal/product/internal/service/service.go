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

package service

import (
	"context"

	"github.com/ecodeclub/ecommerce/internal/product/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/product/internal/repository"
)

//go:generate mockgen -source=./service.go -package=productmocks -destination=../../mocks/product.mock.go -typed Service
type Service interface {
	FindByID(ctx context.Context, id int64) (domain.Product, error)
	FindBySlug(ctx context.Context, storeID int64, slug string) (domain.Product, error)
	List(ctx context.Context, storeID int64, offset, limit int) ([]domain.Product, int64, error)
	// FindVariantInfosByIDs 购物车水合与下单快照的唯一取数入口
	FindVariantInfosByIDs(ctx context.Context, ids []int64) ([]domain.VariantInfo, error)
	CreateProduct(ctx context.Context, p domain.Product) (int64, error)
	CreateVariant(ctx context.Context, v domain.Variant) (int64, error)
}

func NewService(repo repository.ProductRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.ProductRepository
}

func (s *service) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) FindBySlug(ctx context.Context, storeID int64, slug string) (domain.Product, error) {
	return s.repo.FindBySlug(ctx, storeID, slug)
}

func (s *service) List(ctx context.Context, storeID int64, offset, limit int) ([]domain.Product, int64, error) {
	ps, err := s.repo.List(ctx, storeID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx, storeID)
	if err != nil {
		return nil, 0, err
	}
	return ps, total, nil
}

func (s *service) FindVariantInfosByIDs(ctx context.Context, ids []int64) ([]domain.VariantInfo, error) {
	return s.repo.FindVariantInfosByIDs(ctx, ids)
}

func (s *service) CreateProduct(ctx context.Context, p domain.Product) (int64, error) {
	return s.repo.CreateProduct(ctx, p)
}

func (s *service) CreateVariant(ctx context.Context, v domain.Variant) (int64, error) {
	return s.repo.CreateVariant(ctx, v)
}
