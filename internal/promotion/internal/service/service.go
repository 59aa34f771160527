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
	"fmt"
	"time"

	"github.com/ecodeclub/ecommerce/internal/promotion/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/promotion/internal/repository"
)

//go:generate mockgen -source=./service.go -package=promotionmocks -destination=../../mocks/promotion.mock.go -typed Service
type Service interface {
	// FindByCode 对输入做归一化之后按码查找
	FindByCode(ctx context.Context, code string) (domain.Coupon, error)
	FindByID(ctx context.Context, id int64) (domain.Coupon, error)
	// LatestActiveAutoAssign 最近创建的可用自动附加优惠券
	LatestActiveAutoAssign(ctx context.Context) (domain.Coupon, error)
	// MarkAddedToCart 优惠券被附加到购物车时的原子计数
	MarkAddedToCart(ctx context.Context, id int64) error
	// MarkUsed 支付确认时的原子计数
	MarkUsed(ctx context.Context, id int64) error
	Create(ctx context.Context, c domain.Coupon) (int64, error)
	List(ctx context.Context, offset, limit int) ([]domain.Coupon, int64, error)
}

func NewService(repo repository.CouponRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.CouponRepository
}

func (s *service) FindByCode(ctx context.Context, code string) (domain.Coupon, error) {
	normalized, err := domain.NormalizeCode(code)
	if err != nil {
		return domain.Coupon{}, fmt.Errorf("优惠码 %q 非法: %w", code, err)
	}
	return s.repo.FindByCode(ctx, normalized)
}

func (s *service) FindByID(ctx context.Context, id int64) (domain.Coupon, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) LatestActiveAutoAssign(ctx context.Context) (domain.Coupon, error) {
	return s.repo.LatestActiveAutoAssign(ctx, time.Now().UnixMilli())
}

func (s *service) MarkAddedToCart(ctx context.Context, id int64) error {
	return s.repo.IncrTimesAddedToCart(ctx, id)
}

func (s *service) MarkUsed(ctx context.Context, id int64) error {
	return s.repo.IncrTimesUsed(ctx, id)
}

func (s *service) Create(ctx context.Context, c domain.Coupon) (int64, error) {
	normalized, err := domain.NormalizeCode(c.Code)
	if err != nil {
		return 0, err
	}
	c.Code = normalized
	return s.repo.Create(ctx, c)
}

func (s *service) List(ctx context.Context, offset, limit int) ([]domain.Coupon, int64, error) {
	cs, err := s.repo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}
	return cs, total, nil
}
