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
	"testing"

	"github.com/ecodeclub/ecommerce/internal/cart/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/cart/internal/repository"
	"github.com/ecodeclub/ecommerce/internal/product"
	"github.com/ecodeclub/ecommerce/internal/promotion"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func d(s string) decimal.Decimal {
	res, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return res
}

type fakeCartRepo struct {
	repository.CartRepository
	nextID int64
	carts  map[int64]*domain.Cart
	byKey  map[string]int64
	lines  map[int64][]domain.Line
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{
		carts: make(map[int64]*domain.Cart),
		byKey: make(map[string]int64),
		lines: make(map[int64][]domain.Line),
	}
}

func (f *fakeCartRepo) FindOpenByKey(_ context.Context, openKey string) (domain.Cart, error) {
	id, ok := f.byKey[openKey]
	if !ok {
		return domain.Cart{}, gorm.ErrRecordNotFound
	}
	return f.snapshot(id), nil
}

func (f *fakeCartRepo) FindByID(_ context.Context, id int64) (domain.Cart, error) {
	if _, ok := f.carts[id]; !ok {
		return domain.Cart{}, gorm.ErrRecordNotFound
	}
	return f.snapshot(id), nil
}

func (f *fakeCartRepo) snapshot(id int64) domain.Cart {
	c := *f.carts[id]
	c.Lines = make([]domain.Line, 0, len(f.lines[id]))
	for _, l := range f.lines[id] {
		c.Lines = append(c.Lines, domain.Line{
			ID:        l.ID,
			CartID:    l.CartID,
			VariantID: l.VariantID,
			Quantity:  l.Quantity,
		})
	}
	return c
}

func (f *fakeCartRepo) CreateOpen(_ context.Context, c domain.Cart) (domain.Cart, error) {
	key := c.Owner().OpenKey()
	if id, ok := f.byKey[key]; ok {
		return f.snapshot(id), nil
	}
	f.nextID++
	c.ID = f.nextID
	c.Status = domain.StatusOpen
	f.carts[c.ID] = &c
	f.byKey[key] = c.ID
	return c, nil
}

func (f *fakeCartRepo) UpdateCoupon(_ context.Context, cartID, couponID int64) error {
	f.carts[cartID].CouponID = couponID
	return nil
}

func (f *fakeCartRepo) AssignOwner(_ context.Context, cartID, uid int64, openKey string) error {
	c := f.carts[cartID]
	delete(f.byKey, c.Owner().OpenKey())
	c.UID = uid
	c.Token = ""
	f.byKey[openKey] = cartID
	return nil
}

func (f *fakeCartRepo) CreateLine(_ context.Context, cartID, variantID, quantity int64) error {
	f.lines[cartID] = append(f.lines[cartID], domain.Line{
		ID:        int64(len(f.lines[cartID]) + 1),
		CartID:    cartID,
		VariantID: variantID,
		Quantity:  quantity,
	})
	return nil
}

func (f *fakeCartRepo) IncrLineQuantity(ctx context.Context, cartID, variantID int64) error {
	for i := range f.lines[cartID] {
		if f.lines[cartID][i].VariantID == variantID {
			f.lines[cartID][i].Quantity++
			return nil
		}
	}
	return f.CreateLine(ctx, cartID, variantID, 1)
}

func (f *fakeCartRepo) LineExists(_ context.Context, cartID, variantID int64) (bool, error) {
	for _, l := range f.lines[cartID] {
		if l.VariantID == variantID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeCartRepo) SetLineQuantity(_ context.Context, cartID, variantID, quantity int64) error {
	for i := range f.lines[cartID] {
		if f.lines[cartID][i].VariantID == variantID {
			f.lines[cartID][i].Quantity = quantity
		}
	}
	return nil
}

func (f *fakeCartRepo) DeleteLine(_ context.Context, cartID, variantID int64) error {
	return f.DeleteLinesByVariantIDs(nil, cartID, []int64{variantID})
}

func (f *fakeCartRepo) DeleteLinesByVariantIDs(_ context.Context, cartID int64, variantIDs []int64) error {
	drop := make(map[int64]bool, len(variantIDs))
	for _, id := range variantIDs {
		drop[id] = true
	}
	kept := f.lines[cartID][:0]
	for _, l := range f.lines[cartID] {
		if !drop[l.VariantID] {
			kept = append(kept, l)
		}
	}
	f.lines[cartID] = kept
	return nil
}

func (f *fakeCartRepo) MarkReplaced(_ context.Context, cartID int64) error {
	return f.setStatus(cartID, domain.StatusReplaced)
}

func (f *fakeCartRepo) MarkCanceled(_ context.Context, cartID int64) error {
	return f.setStatus(cartID, domain.StatusCanceled)
}

func (f *fakeCartRepo) MarkAwaitingPayment(_ context.Context, cartID int64) error {
	if f.carts[cartID].Status != domain.StatusOpen {
		return nil
	}
	return f.setStatus(cartID, domain.StatusAwaitingPayment)
}

func (f *fakeCartRepo) MarkPaid(_ context.Context, cartID int64) error {
	st := f.carts[cartID].Status
	if st == domain.StatusCanceled || st == domain.StatusPaid {
		return nil
	}
	return f.setStatus(cartID, domain.StatusPaid)
}

func (f *fakeCartRepo) setStatus(cartID int64, status domain.Status) error {
	c := f.carts[cartID]
	delete(f.byKey, c.Owner().OpenKey())
	c.Status = status
	return nil
}

func (f *fakeCartRepo) CancelOtherOpen(_ context.Context, storeID, uid, exceptID int64) error {
	for id, c := range f.carts {
		if id != exceptID && c.StoreID == storeID && c.UID == uid && c.Status == domain.StatusOpen {
			_ = f.setStatus(id, domain.StatusCanceled)
		}
	}
	return nil
}

type fakeProductSvc struct {
	product.Service
	infos map[int64]product.VariantInfo
}

func (f *fakeProductSvc) FindVariantInfosByIDs(_ context.Context, ids []int64) ([]product.VariantInfo, error) {
	res := make([]product.VariantInfo, 0, len(ids))
	for _, id := range ids {
		if info, ok := f.infos[id]; ok {
			res = append(res, info)
		}
	}
	return res, nil
}

type fakePromotionSvc struct {
	promotion.Service
	coupons    map[int64]promotion.Coupon
	autoAssign *promotion.Coupon
	addedToCnt map[int64]int
}

func (f *fakePromotionSvc) FindByID(_ context.Context, id int64) (promotion.Coupon, error) {
	c, ok := f.coupons[id]
	if !ok {
		return promotion.Coupon{}, gorm.ErrRecordNotFound
	}
	return c, nil
}

func (f *fakePromotionSvc) FindByCode(_ context.Context, code string) (promotion.Coupon, error) {
	normalized, err := promotion.NormalizeCode(code)
	if err != nil {
		return promotion.Coupon{}, err
	}
	for _, c := range f.coupons {
		if c.Code == normalized {
			return c, nil
		}
	}
	return promotion.Coupon{}, gorm.ErrRecordNotFound
}

func (f *fakePromotionSvc) LatestActiveAutoAssign(_ context.Context) (promotion.Coupon, error) {
	if f.autoAssign == nil {
		return promotion.Coupon{}, gorm.ErrRecordNotFound
	}
	return *f.autoAssign, nil
}

func (f *fakePromotionSvc) MarkAddedToCart(_ context.Context, id int64) error {
	if f.addedToCnt == nil {
		f.addedToCnt = make(map[int64]int)
	}
	f.addedToCnt[id]++
	return nil
}

func purchasableInfo(variantID, stock int64, price string) product.VariantInfo {
	return product.VariantInfo{
		Variant: product.Variant{ID: variantID, ProductID: variantID * 10, Active: true, Stock: stock},
		Product: product.Product{
			ID:                variantID * 10,
			Active:            true,
			PurchasingEnabled: true,
			Price:             d(price),
		},
	}
}

func newTestService(repo *fakeCartRepo, products *fakeProductSvc, promos *fakePromotionSvc) Service {
	return NewService(repo, products, promos)
}

func TestService_GetOrCreateActiveCart(t *testing.T) {
	t.Parallel()

	t.Run("没有开放车时返回未落库的空车", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(newFakeCartRepo(), &fakeProductSvc{}, &fakePromotionSvc{})
		cart, err := svc.GetOrCreateActiveCart(context.Background(), domain.Owner{StoreID: 1, UID: 7})
		require.NoError(t, err)
		assert.Zero(t, cart.ID)
		assert.Equal(t, domain.StatusOpen, cart.Status)
	})

	t.Run("自动附加最新的自动发放券", func(t *testing.T) {
		t.Parallel()
		auto := promotion.Coupon{ID: 11, Code: "WELCOME", Active: true, AutoAssign: true}
		svc := newTestService(newFakeCartRepo(), &fakeProductSvc{},
			&fakePromotionSvc{coupons: map[int64]promotion.Coupon{11: auto}, autoAssign: &auto})
		cart, err := svc.GetOrCreateActiveCart(context.Background(), domain.Owner{StoreID: 1, UID: 7})
		require.NoError(t, err)
		assert.Equal(t, int64(11), cart.CouponID)
	})

	t.Run("失效的券在取车时被摘除", func(t *testing.T) {
		t.Parallel()
		repo := newFakeCartRepo()
		expired := promotion.Coupon{ID: 9, Active: false}
		created, err := repo.CreateOpen(context.Background(), domain.Cart{StoreID: 1, UID: 7, CouponID: 9})
		require.NoError(t, err)
		svc := newTestService(repo, &fakeProductSvc{},
			&fakePromotionSvc{coupons: map[int64]promotion.Coupon{9: expired}})
		cart, err := svc.GetOrCreateActiveCart(context.Background(), domain.Owner{StoreID: 1, UID: 7})
		require.NoError(t, err)
		assert.Equal(t, created.ID, cart.ID)
		assert.Zero(t, cart.CouponID)
	})
}

func TestService_AddToCart(t *testing.T) {
	t.Parallel()

	t.Run("第一次加购创建购物车和行", func(t *testing.T) {
		t.Parallel()
		repo := newFakeCartRepo()
		products := &fakeProductSvc{infos: map[int64]product.VariantInfo{
			100: purchasableInfo(100, 5, "19.99"),
		}}
		svc := newTestService(repo, products, &fakePromotionSvc{})
		owner := domain.Owner{StoreID: 1, UID: 7}

		cart, err := svc.AddToCart(context.Background(), owner, 100, false)
		require.NoError(t, err)
		require.Len(t, cart.Lines, 1)
		assert.Equal(t, int64(1), cart.Lines[0].Quantity)

		cart, err = svc.AddToCart(context.Background(), owner, 100, false)
		require.NoError(t, err)
		require.Len(t, cart.Lines, 1)
		assert.Equal(t, int64(2), cart.Lines[0].Quantity)
		assert.True(t, cart.Lines[0].UnitPrice.Equal(d("19.99")))
	})

	t.Run("未知变体报校验错误", func(t *testing.T) {
		t.Parallel()
		svc := newTestService(newFakeCartRepo(), &fakeProductSvc{}, &fakePromotionSvc{})
		_, err := svc.AddToCart(context.Background(), domain.Owner{StoreID: 1, UID: 7}, 999, false)
		assert.ErrorIs(t, err, ErrUnknownVariant)
	})

	t.Run("不可购买的商品加不进来", func(t *testing.T) {
		t.Parallel()
		info := purchasableInfo(100, 5, "19.99")
		info.Product.PurchasingEnabled = false
		svc := newTestService(newFakeCartRepo(),
			&fakeProductSvc{infos: map[int64]product.VariantInfo{100: info}},
			&fakePromotionSvc{})
		_, err := svc.AddToCart(context.Background(), domain.Owner{StoreID: 1, UID: 7}, 100, false)
		assert.ErrorIs(t, err, ErrNotPurchasable)
	})

	t.Run("没库存的变体加不进来, 也不会留下购物车行", func(t *testing.T) {
		t.Parallel()
		repo := newFakeCartRepo()
		svc := newTestService(repo,
			&fakeProductSvc{infos: map[int64]product.VariantInfo{100: purchasableInfo(100, 0, "19.99")}},
			&fakePromotionSvc{})
		owner := domain.Owner{StoreID: 1, UID: 7}
		_, err := svc.AddToCart(context.Background(), owner, 100, false)
		assert.ErrorIs(t, err, ErrNotPurchasable)
		_, err = repo.FindOpenByKey(context.Background(), owner.OpenKey())
		assert.Error(t, err, "校验失败就不该落库")
	})

	t.Run("下架的变体加不进来", func(t *testing.T) {
		t.Parallel()
		info := purchasableInfo(100, 5, "19.99")
		info.Variant.Active = false
		svc := newTestService(newFakeCartRepo(),
			&fakeProductSvc{infos: map[int64]product.VariantInfo{100: info}},
			&fakePromotionSvc{})
		_, err := svc.AddToCart(context.Background(), domain.Owner{StoreID: 1, UID: 7}, 100, false)
		assert.ErrorIs(t, err, ErrNotPurchasable)
	})

	t.Run("员工可以加购开了预览的未上架商品", func(t *testing.T) {
		t.Parallel()
		info := purchasableInfo(100, 5, "19.99")
		info.Product.Active = false
		info.Product.PreviewEnabled = true
		svc := newTestService(newFakeCartRepo(),
			&fakeProductSvc{infos: map[int64]product.VariantInfo{100: info}},
			&fakePromotionSvc{})
		owner := domain.Owner{StoreID: 1, UID: 7}

		_, err := svc.AddToCart(context.Background(), owner, 100, false)
		assert.ErrorIs(t, err, ErrNotPurchasable)

		cart, err := svc.AddToCart(context.Background(), owner, 100, true)
		require.NoError(t, err)
		require.Len(t, cart.Lines, 1)
	})
}

func TestService_ModifyCartLine(t *testing.T) {
	t.Parallel()
	owner := domain.Owner{StoreID: 1, UID: 7}
	products := &fakeProductSvc{infos: map[int64]product.VariantInfo{
		100: purchasableInfo(100, 5, "10.00"),
	}}

	newCartWithLine := func(t *testing.T) (*fakeCartRepo, Service) {
		t.Helper()
		repo := newFakeCartRepo()
		svc := newTestService(repo, products, &fakePromotionSvc{})
		_, err := svc.AddToCart(context.Background(), owner, 100, false)
		require.NoError(t, err)
		return repo, svc
	}

	t.Run("改数量", func(t *testing.T) {
		t.Parallel()
		_, svc := newCartWithLine(t)
		cart, err := svc.ModifyCartLine(context.Background(), owner, 100, 3)
		require.NoError(t, err)
		require.Len(t, cart.Lines, 1)
		assert.Equal(t, int64(3), cart.Lines[0].Quantity)
	})

	t.Run("数量为零删行", func(t *testing.T) {
		t.Parallel()
		_, svc := newCartWithLine(t)
		cart, err := svc.ModifyCartLine(context.Background(), owner, 100, 0)
		require.NoError(t, err)
		assert.Empty(t, cart.Lines)
	})

	t.Run("负数是校验错误", func(t *testing.T) {
		t.Parallel()
		_, svc := newCartWithLine(t)
		_, err := svc.ModifyCartLine(context.Background(), owner, 100, -1)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	})

	t.Run("未知行是校验错误", func(t *testing.T) {
		t.Parallel()
		_, svc := newCartWithLine(t)
		_, err := svc.ModifyCartLine(context.Background(), owner, 999, 2)
		assert.ErrorIs(t, err, ErrLineNotFound)
	})
}

func TestService_UpdateCartCoupon(t *testing.T) {
	t.Parallel()
	owner := domain.Owner{StoreID: 1, UID: 7}

	t.Run("有效券附加成功并计数", func(t *testing.T) {
		t.Parallel()
		promos := &fakePromotionSvc{coupons: map[int64]promotion.Coupon{
			5: {ID: 5, Code: "SAVE10", Active: true},
		}}
		svc := newTestService(newFakeCartRepo(), &fakeProductSvc{}, promos)
		cart, err := svc.UpdateCartCoupon(context.Background(), owner, "save10")
		require.NoError(t, err)
		assert.Equal(t, int64(5), cart.CouponID)
		assert.Equal(t, 1, promos.addedToCnt[5])
	})

	t.Run("失效的券是校验错误", func(t *testing.T) {
		t.Parallel()
		promos := &fakePromotionSvc{coupons: map[int64]promotion.Coupon{
			5: {ID: 5, Code: "SAVE10", Active: false},
		}}
		svc := newTestService(newFakeCartRepo(), &fakeProductSvc{}, promos)
		_, err := svc.UpdateCartCoupon(context.Background(), owner, "SAVE10")
		assert.ErrorIs(t, err, ErrCouponNotApplicable)
	})

	t.Run("自动发放券不接受手工输码", func(t *testing.T) {
		t.Parallel()
		promos := &fakePromotionSvc{coupons: map[int64]promotion.Coupon{
			5: {ID: 5, Code: "BULK0001", Active: true, AutoGenerated: true},
		}}
		svc := newTestService(newFakeCartRepo(), &fakeProductSvc{}, promos)
		_, err := svc.UpdateCartCoupon(context.Background(), owner, "BULK0001")
		assert.ErrorIs(t, err, ErrCouponNotApplicable)
	})
}

func TestService_MergeOnLogin(t *testing.T) {
	t.Parallel()
	const (
		storeID = int64(1)
		uid     = int64(7)
		token   = "anon-token"
	)
	products := &fakeProductSvc{infos: map[int64]product.VariantInfo{
		100: purchasableInfo(100, 5, "10.00"),
		200: purchasableInfo(200, 5, "20.00"),
		300: purchasableInfo(300, 0, "30.00"), // 没库存
	}}

	t.Run("两辆都在时数量取大不取和", func(t *testing.T) {
		t.Parallel()
		repo := newFakeCartRepo()
		svc := newTestService(repo, products, &fakePromotionSvc{})
		ctx := context.Background()

		anonCart, err := repo.CreateOpen(ctx, domain.Cart{StoreID: storeID, Token: token})
		require.NoError(t, err)
		require.NoError(t, repo.CreateLine(ctx, anonCart.ID, 100, 3))
		require.NoError(t, repo.CreateLine(ctx, anonCart.ID, 200, 1))
		require.NoError(t, repo.CreateLine(ctx, anonCart.ID, 300, 2))

		userCart, err := repo.CreateOpen(ctx, domain.Cart{StoreID: storeID, UID: uid})
		require.NoError(t, err)
		require.NoError(t, repo.CreateLine(ctx, userCart.ID, 100, 1))

		merged, err := svc.MergeOnLogin(ctx, storeID, uid, token)
		require.NoError(t, err)
		assert.Equal(t, userCart.ID, merged.ID)

		qty := make(map[int64]int64, len(merged.Lines))
		for _, l := range merged.Lines {
			qty[l.VariantID] = l.Quantity
		}
		// 100: max(3,1)=3 而不是 4; 200 照搬; 300 没库存被丢弃
		assert.Equal(t, int64(3), qty[100])
		assert.Equal(t, int64(1), qty[200])
		assert.NotContains(t, qty, int64(300))

		assert.Equal(t, domain.StatusReplaced, repo.carts[anonCart.ID].Status)
	})

	t.Run("只有匿名车时直接改归属", func(t *testing.T) {
		t.Parallel()
		repo := newFakeCartRepo()
		svc := newTestService(repo, products, &fakePromotionSvc{})
		ctx := context.Background()

		anonCart, err := repo.CreateOpen(ctx, domain.Cart{StoreID: storeID, Token: token})
		require.NoError(t, err)
		require.NoError(t, repo.CreateLine(ctx, anonCart.ID, 100, 2))
		require.NoError(t, repo.CreateLine(ctx, anonCart.ID, 300, 1))

		merged, err := svc.MergeOnLogin(ctx, storeID, uid, token)
		require.NoError(t, err)
		assert.Equal(t, anonCart.ID, merged.ID)
		assert.Equal(t, uid, merged.UID)
		require.Len(t, merged.Lines, 1)
		assert.Equal(t, int64(100), merged.Lines[0].VariantID)
	})
}

func TestService_VerifyLinesStock(t *testing.T) {
	t.Parallel()
	repo := newFakeCartRepo()
	inactiveProduct := purchasableInfo(200, 5, "20.00")
	inactiveProduct.Product.Active = false
	inactiveVariant := purchasableInfo(400, 5, "40.00")
	inactiveVariant.Variant.Active = false
	products := &fakeProductSvc{infos: map[int64]product.VariantInfo{
		100: purchasableInfo(100, 5, "10.00"),
		200: inactiveProduct,
		300: purchasableInfo(300, 1, "30.00"),
		400: inactiveVariant,
	}}
	svc := newTestService(repo, products, &fakePromotionSvc{})
	ctx := context.Background()

	cart, err := repo.CreateOpen(ctx, domain.Cart{StoreID: 1, UID: 7})
	require.NoError(t, err)
	require.NoError(t, repo.CreateLine(ctx, cart.ID, 100, 2))
	require.NoError(t, repo.CreateLine(ctx, cart.ID, 200, 1))
	require.NoError(t, repo.CreateLine(ctx, cart.ID, 300, 3)) // 库存只有1
	require.NoError(t, repo.CreateLine(ctx, cart.ID, 400, 1))

	hydrated, err := svc.FindByID(ctx, cart.ID)
	require.NoError(t, err)
	removed, err := svc.VerifyLinesStock(ctx, hydrated, false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{200, 300, 400}, removed)

	remaining, err := svc.FindByID(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, remaining.Lines, 1)
	assert.Equal(t, int64(100), remaining.Lines[0].VariantID)
}
