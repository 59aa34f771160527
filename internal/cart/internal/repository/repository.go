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
	"errors"

	"github.com/ecodeclub/ecommerce/internal/cart/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/cart/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
)

type CartRepository interface {
	FindByID(ctx context.Context, id int64) (domain.Cart, error)
	FindOpenByKey(ctx context.Context, openKey string) (domain.Cart, error)
	CreateOpen(ctx context.Context, c domain.Cart) (domain.Cart, error)
	UpdateCoupon(ctx context.Context, cartID, couponID int64) error
	AssignOwner(ctx context.Context, cartID, uid int64, openKey string) error

	CreateLine(ctx context.Context, cartID, variantID, quantity int64) error
	IncrLineQuantity(ctx context.Context, cartID, variantID int64) error
	LineExists(ctx context.Context, cartID, variantID int64) (bool, error)
	SetLineQuantity(ctx context.Context, cartID, variantID, quantity int64) error
	DeleteLine(ctx context.Context, cartID, variantID int64) error
	DeleteLinesByVariantIDs(ctx context.Context, cartID int64, variantIDs []int64) error

	MarkAwaitingPayment(ctx context.Context, cartID int64) error
	MarkPaid(ctx context.Context, cartID int64) error
	MarkReplaced(ctx context.Context, cartID int64) error
	MarkCanceled(ctx context.Context, cartID int64) error
	Reopen(ctx context.Context, cartID int64, openKey string) error
	CancelOtherOpen(ctx context.Context, storeID, uid, exceptID int64) error
}

func NewCartRepository(d dao.CartDAO) CartRepository {
	return &cartRepository{d: d}
}

type cartRepository struct {
	d dao.CartDAO
}

func (r *cartRepository) FindByID(ctx context.Context, id int64) (domain.Cart, error) {
	c, err := r.d.FindByID(ctx, id)
	if err != nil {
		return domain.Cart{}, err
	}
	return r.withLines(ctx, c)
}

func (r *cartRepository) FindOpenByKey(ctx context.Context, openKey string) (domain.Cart, error) {
	c, err := r.d.FindOpenByKey(ctx, openKey)
	if err != nil {
		return domain.Cart{}, err
	}
	return r.withLines(ctx, c)
}

func (r *cartRepository) withLines(ctx context.Context, c dao.Cart) (domain.Cart, error) {
	lines, err := r.d.FindLines(ctx, c.Id)
	if err != nil {
		return domain.Cart{}, err
	}
	res := r.toDomain(c)
	res.Lines = slice.Map(lines, func(idx int, src dao.CartLine) domain.Line {
		return domain.Line{
			ID:        src.Id,
			CartID:    src.CartId,
			VariantID: src.VariantId,
			Quantity:  src.Quantity,
		}
	})
	return res, nil
}

func (r *cartRepository) CreateOpen(ctx context.Context, c domain.Cart) (domain.Cart, error) {
	owner := c.Owner()
	created, err := r.d.CreateOpen(ctx, dao.Cart{
		StoreId:  c.StoreID,
		Uid:      c.UID,
		Token:    c.Token,
		CouponId: c.CouponID,
		OpenKey:  sql.NullString{String: owner.OpenKey(), Valid: true},
	})
	if err != nil {
		return domain.Cart{}, err
	}
	return r.toDomain(created), nil
}

func (r *cartRepository) UpdateCoupon(ctx context.Context, cartID, couponID int64) error {
	return r.d.UpdateCoupon(ctx, cartID, couponID)
}

func (r *cartRepository) AssignOwner(ctx context.Context, cartID, uid int64, openKey string) error {
	return r.d.AssignOwner(ctx, cartID, uid, openKey)
}

func (r *cartRepository) CreateLine(ctx context.Context, cartID, variantID, quantity int64) error {
	return r.d.CreateLine(ctx, cartID, variantID, quantity)
}

func (r *cartRepository) IncrLineQuantity(ctx context.Context, cartID, variantID int64) error {
	return r.d.IncrLineQuantity(ctx, cartID, variantID)
}

func (r *cartRepository) LineExists(ctx context.Context, cartID, variantID int64) (bool, error) {
	_, err := r.d.FindLine(ctx, cartID, variantID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, dao.ErrLineNotFound) {
		return false, nil
	}
	return false, err
}

func (r *cartRepository) SetLineQuantity(ctx context.Context, cartID, variantID, quantity int64) error {
	return r.d.SetLineQuantity(ctx, cartID, variantID, quantity)
}

func (r *cartRepository) DeleteLine(ctx context.Context, cartID, variantID int64) error {
	return r.d.DeleteLine(ctx, cartID, variantID)
}

func (r *cartRepository) DeleteLinesByVariantIDs(ctx context.Context, cartID int64, variantIDs []int64) error {
	return r.d.DeleteLinesByVariantIDs(ctx, cartID, variantIDs)
}

func (r *cartRepository) MarkAwaitingPayment(ctx context.Context, cartID int64) error {
	return r.d.MarkAwaitingPayment(ctx, cartID)
}

func (r *cartRepository) MarkPaid(ctx context.Context, cartID int64) error {
	return r.d.MarkPaid(ctx, cartID)
}

func (r *cartRepository) MarkReplaced(ctx context.Context, cartID int64) error {
	return r.d.MarkReplaced(ctx, cartID)
}

func (r *cartRepository) MarkCanceled(ctx context.Context, cartID int64) error {
	return r.d.MarkCanceled(ctx, cartID)
}

func (r *cartRepository) Reopen(ctx context.Context, cartID int64, openKey string) error {
	return r.d.Reopen(ctx, cartID, openKey)
}

func (r *cartRepository) CancelOtherOpen(ctx context.Context, storeID, uid, exceptID int64) error {
	return r.d.CancelOtherOpen(ctx, storeID, uid, exceptID)
}

func (r *cartRepository) toDomain(c dao.Cart) domain.Cart {
	return domain.Cart{
		ID:       c.Id,
		StoreID:  c.StoreId,
		UID:      c.Uid,
		Token:    c.Token,
		Status:   domain.Status(c.Status),
		CouponID: c.CouponId,
		Ctime:    c.Ctime,
		Utime:    c.Utime,
	}
}
