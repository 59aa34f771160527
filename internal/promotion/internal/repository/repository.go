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

	"github.com/ecodeclub/ecommerce/internal/promotion/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/promotion/internal/repository/cache"
	"github.com/ecodeclub/ecommerce/internal/promotion/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ekit/sqlx"
	"github.com/gotomicro/ego/core/elog"
)

type CouponRepository interface {
	FindByID(ctx context.Context, id int64) (domain.Coupon, error)
	FindByCode(ctx context.Context, code string) (domain.Coupon, error)
	LatestActiveAutoAssign(ctx context.Context, now int64) (domain.Coupon, error)
	Create(ctx context.Context, c domain.Coupon) (int64, error)
	List(ctx context.Context, offset, limit int) ([]domain.Coupon, error)
	Count(ctx context.Context) (int64, error)
	IncrTimesAddedToCart(ctx context.Context, id int64) error
	IncrTimesUsed(ctx context.Context, id int64) error
}

func NewCouponRepository(d dao.CouponDAO, c cache.CouponCache) CouponRepository {
	return &couponRepository{
		d:      d,
		cache:  c,
		logger: elog.DefaultLogger,
	}
}

type couponRepository struct {
	d      dao.CouponDAO
	cache  cache.CouponCache
	logger *elog.Component
}

func (r *couponRepository) FindByID(ctx context.Context, id int64) (domain.Coupon, error) {
	c, err := r.d.FindByID(ctx, id)
	if err != nil {
		return domain.Coupon{}, err
	}
	return r.toDomain(c), nil
}

func (r *couponRepository) FindByCode(ctx context.Context, code string) (domain.Coupon, error) {
	c, err := r.d.FindByCode(ctx, code)
	if err != nil {
		return domain.Coupon{}, err
	}
	return r.toDomain(c), nil
}

func (r *couponRepository) LatestActiveAutoAssign(ctx context.Context, now int64) (domain.Coupon, error) {
	cached, err := r.cache.GetAutoAssign(ctx)
	// 缓存命中也要复核有效性, 避免过期的优惠券在 TTL 内继续发放
	if err == nil && cached.IsValid(now) {
		return cached, nil
	}
	c, err := r.d.LatestActiveAutoAssign(ctx, now)
	if err != nil {
		return domain.Coupon{}, err
	}
	res := r.toDomain(c)
	if err := r.cache.SetAutoAssign(ctx, res); err != nil {
		r.logger.Error("缓存自动发放优惠券失败", elog.FieldErr(err))
	}
	return res, nil
}

func (r *couponRepository) Create(ctx context.Context, c domain.Coupon) (int64, error) {
	return r.d.Create(ctx, r.toEntity(c))
}

func (r *couponRepository) List(ctx context.Context, offset, limit int) ([]domain.Coupon, error) {
	cs, err := r.d.List(ctx, offset, limit)
	if err != nil {
		return nil, err
	}
	return slice.Map(cs, func(idx int, src dao.Coupon) domain.Coupon {
		return r.toDomain(src)
	}), nil
}

func (r *couponRepository) Count(ctx context.Context) (int64, error) {
	return r.d.Count(ctx)
}

func (r *couponRepository) IncrTimesAddedToCart(ctx context.Context, id int64) error {
	return r.d.IncrTimesAddedToCart(ctx, id)
}

func (r *couponRepository) IncrTimesUsed(ctx context.Context, id int64) error {
	return r.d.IncrTimesUsed(ctx, id)
}

func (r *couponRepository) toDomain(c dao.Coupon) domain.Coupon {
	return domain.Coupon{
		ID:               c.Id,
		Name:             c.Name,
		Code:             c.Code,
		Type:             domain.Type(c.Type),
		Mode:             domain.Mode(c.Mode),
		Amount:           c.Amount,
		UsageLimit:       c.UsageLimit.Int64,
		TimesUsed:        c.TimesUsed,
		TimesAddedToCart: c.TimesAddedToCart,
		AutoAssign:       c.AutoAssign,
		AutoGenerated:    c.AutoGenerated,
		Active:           c.Active,
		ValidFrom:        c.ValidFrom,
		ValidUntil:       c.ValidUntil,
		CategoryIDs:      c.CategoryIds.Val,
	}
}

func (r *couponRepository) toEntity(c domain.Coupon) dao.Coupon {
	return dao.Coupon{
		Id:               c.ID,
		Name:             c.Name,
		Code:             c.Code,
		Type:             c.Type.ToUint8(),
		Mode:             c.Mode.ToUint8(),
		Amount:           c.Amount,
		UsageLimit:       sql.NullInt64{Int64: c.UsageLimit, Valid: c.UsageLimit > 0},
		TimesUsed:        c.TimesUsed,
		TimesAddedToCart: c.TimesAddedToCart,
		AutoAssign:       c.AutoAssign,
		AutoGenerated:    c.AutoGenerated,
		Active:           c.Active,
		ValidFrom:        c.ValidFrom,
		ValidUntil:       c.ValidUntil,
		CategoryIds: sqlx.JsonColumn[[]int64]{
			Val:   c.CategoryIDs,
			Valid: len(c.CategoryIDs) > 0,
		},
	}
}
