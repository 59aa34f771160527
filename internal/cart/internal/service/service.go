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
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/ecommerce/internal/cart/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/cart/internal/repository"
	"github.com/ecodeclub/ecommerce/internal/product"
	"github.com/ecodeclub/ecommerce/internal/promotion"
	"github.com/gotomicro/ego/core/elog"
)

var (
	ErrInvalidQuantity     = errors.New("数量非法")
	ErrUnknownVariant      = errors.New("商品变体不存在")
	ErrNotPurchasable      = errors.New("商品当前不可购买")
	ErrLineNotFound        = errors.New("购物车中没有这一行")
	ErrCouponNotApplicable = errors.New("优惠券不可用")
)

//go:generate mockgen -source=./service.go -package=cartmocks -destination=../../mocks/cart.mock.go -typed Service
type Service interface {
	// GetOrCreateActiveCart 取开放态购物车, 没有则返回一个未落库的空车。
	// 取车时校验已附加的优惠券, 失效即摘除; 无券时尽力附加最新的自动发放券
	GetOrCreateActiveCart(ctx context.Context, owner domain.Owner) (domain.Cart, error)
	// AddToCart 加购前走完整的购买资格校验, 员工可以加购开了预览的未上架商品
	AddToCart(ctx context.Context, owner domain.Owner, variantID int64, isStaff bool) (domain.Cart, error)
	// ModifyCartLine 数量为0删行, 负数与未知行都是校验错误
	ModifyCartLine(ctx context.Context, owner domain.Owner, variantID, quantity int64) (domain.Cart, error)
	// UpdateCartCoupon 空码表示摘除
	UpdateCartCoupon(ctx context.Context, owner domain.Owner, code string) (domain.Cart, error)
	// MergeOnLogin 登录时把匿名车并入用户车, 数量取大不取和
	MergeOnLogin(ctx context.Context, storeID, uid int64, token string) (domain.Cart, error)
	// VerifyLinesStock 删掉不再可购的行, 返回被删的变体ID
	VerifyLinesStock(ctx context.Context, cart domain.Cart, isStaff bool) ([]int64, error)
	FindByID(ctx context.Context, id int64) (domain.Cart, error)
	// CouponFor 购物车附加的优惠券, 没有时返回nil
	CouponFor(ctx context.Context, cart domain.Cart) (*promotion.Coupon, error)
	MarkAwaitingPayment(ctx context.Context, cartID int64) error
	MarkPaid(ctx context.Context, cartID int64) error
	// Reopen 回到开放态, 同一归属已有开放车时不动
	Reopen(ctx context.Context, cart domain.Cart) error
}

func NewService(repo repository.CartRepository,
	productSvc product.Service,
	promotionSvc promotion.Service) Service {
	return &service{
		repo:         repo,
		productSvc:   productSvc,
		promotionSvc: promotionSvc,
		logger:       elog.DefaultLogger,
	}
}

type service struct {
	repo         repository.CartRepository
	productSvc   product.Service
	promotionSvc promotion.Service
	logger       *elog.Component
}

func (s *service) GetOrCreateActiveCart(ctx context.Context, owner domain.Owner) (domain.Cart, error) {
	cart, err := s.repo.FindOpenByKey(ctx, owner.OpenKey())
	if err != nil {
		// 未落库的空车, 加第一行时才会真正创建
		cart = domain.Cart{
			StoreID: owner.StoreID,
			UID:     owner.UID,
			Token:   owner.Token,
			Status:  domain.StatusOpen,
		}
	}
	if err := s.hydrate(ctx, &cart); err != nil {
		return domain.Cart{}, err
	}
	now := time.Now().UnixMilli()
	if cart.CouponID != 0 {
		coupon, cerr := s.promotionSvc.FindByID(ctx, cart.CouponID)
		if cerr != nil || !coupon.IsValid(now) {
			if cart.ID != 0 {
				if derr := s.repo.UpdateCoupon(ctx, cart.ID, 0); derr != nil {
					return domain.Cart{}, derr
				}
			}
			cart.CouponID = 0
		}
	}
	if cart.CouponID == 0 {
		// 尽力而为, 没有自动发放券就算了
		coupon, cerr := s.promotionSvc.LatestActiveAutoAssign(ctx)
		if cerr == nil {
			cart.CouponID = coupon.ID
			if cart.ID != 0 {
				if derr := s.repo.UpdateCoupon(ctx, cart.ID, coupon.ID); derr != nil {
					return domain.Cart{}, derr
				}
			}
		}
	}
	return cart, nil
}

func (s *service) AddToCart(ctx context.Context, owner domain.Owner, variantID int64, isStaff bool) (domain.Cart, error) {
	infos, err := s.productSvc.FindVariantInfosByIDs(ctx, []int64{variantID})
	if err != nil {
		return domain.Cart{}, err
	}
	if len(infos) == 0 {
		return domain.Cart{}, fmt.Errorf("%w: %d", ErrUnknownVariant, variantID)
	}
	if !purchasable(infos[0], 1, isStaff) {
		return domain.Cart{}, fmt.Errorf("%w: %d", ErrNotPurchasable, variantID)
	}
	cart, err := s.GetOrCreateActiveCart(ctx, owner)
	if err != nil {
		return domain.Cart{}, err
	}
	cart, err = s.ensureSaved(ctx, cart)
	if err != nil {
		return domain.Cart{}, err
	}
	if err = s.repo.IncrLineQuantity(ctx, cart.ID, variantID); err != nil {
		return domain.Cart{}, err
	}
	return s.FindByID(ctx, cart.ID)
}

func (s *service) ModifyCartLine(ctx context.Context, owner domain.Owner, variantID, quantity int64) (domain.Cart, error) {
	if quantity < 0 {
		return domain.Cart{}, fmt.Errorf("%w: %d", ErrInvalidQuantity, quantity)
	}
	cart, err := s.repo.FindOpenByKey(ctx, owner.OpenKey())
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%w: 变体 %d", ErrLineNotFound, variantID)
	}
	exists, err := s.repo.LineExists(ctx, cart.ID, variantID)
	if err != nil {
		return domain.Cart{}, err
	}
	if !exists {
		return domain.Cart{}, fmt.Errorf("%w: 变体 %d", ErrLineNotFound, variantID)
	}
	if quantity == 0 {
		err = s.repo.DeleteLine(ctx, cart.ID, variantID)
	} else {
		err = s.repo.SetLineQuantity(ctx, cart.ID, variantID, quantity)
	}
	if err != nil {
		return domain.Cart{}, err
	}
	return s.FindByID(ctx, cart.ID)
}

func (s *service) UpdateCartCoupon(ctx context.Context, owner domain.Owner, code string) (domain.Cart, error) {
	cart, err := s.GetOrCreateActiveCart(ctx, owner)
	if err != nil {
		return domain.Cart{}, err
	}
	cart, err = s.ensureSaved(ctx, cart)
	if err != nil {
		return domain.Cart{}, err
	}
	if code == "" {
		if err = s.repo.UpdateCoupon(ctx, cart.ID, 0); err != nil {
			return domain.Cart{}, err
		}
		return s.FindByID(ctx, cart.ID)
	}
	coupon, err := s.promotionSvc.FindByCode(ctx, code)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("%w: %q", ErrCouponNotApplicable, code)
	}
	// 自动发放券只走自动附加, 不接受手工输码
	if coupon.AutoGenerated {
		return domain.Cart{}, fmt.Errorf("%w: %q", ErrCouponNotApplicable, code)
	}
	if !coupon.IsValid(time.Now().UnixMilli()) {
		return domain.Cart{}, fmt.Errorf("%w: %q", ErrCouponNotApplicable, code)
	}
	if err = s.repo.UpdateCoupon(ctx, cart.ID, coupon.ID); err != nil {
		return domain.Cart{}, err
	}
	if err = s.promotionSvc.MarkAddedToCart(ctx, coupon.ID); err != nil {
		s.logger.Error("优惠券加购计数失败",
			elog.FieldErr(err),
			elog.Int64("couponID", coupon.ID))
	}
	return s.FindByID(ctx, cart.ID)
}

func (s *service) MergeOnLogin(ctx context.Context, storeID, uid int64, token string) (domain.Cart, error) {
	anon := domain.Owner{StoreID: storeID, Token: token}
	user := domain.Owner{StoreID: storeID, UID: uid}
	anonCart, anonErr := s.repo.FindOpenByKey(ctx, anon.OpenKey())
	userCart, userErr := s.repo.FindOpenByKey(ctx, user.OpenKey())

	if anonErr != nil {
		// 没有匿名车, 无需合并
		if userErr != nil {
			return s.GetOrCreateActiveCart(ctx, user)
		}
		return s.FindByID(ctx, userCart.ID)
	}

	if err := s.hydrate(ctx, &anonCart); err != nil {
		return domain.Cart{}, err
	}

	if userErr != nil {
		// 只有匿名车: 直接改归属, 丢掉无库存的行
		if err := s.repo.CancelOtherOpen(ctx, storeID, uid, anonCart.ID); err != nil {
			return domain.Cart{}, err
		}
		if err := s.repo.AssignOwner(ctx, anonCart.ID, uid, user.OpenKey()); err != nil {
			return domain.Cart{}, err
		}
		stockless := s.stocklessVariantIDs(anonCart)
		if err := s.repo.DeleteLinesByVariantIDs(ctx, anonCart.ID, stockless); err != nil {
			return domain.Cart{}, err
		}
		return s.FindByID(ctx, anonCart.ID)
	}

	// 两辆都在: 匿名车标记被替换, 行并入用户车, 数量取大
	if err := s.repo.MarkReplaced(ctx, anonCart.ID); err != nil {
		return domain.Cart{}, err
	}
	userQty := make(map[int64]int64, len(userCart.Lines))
	for _, l := range userCart.Lines {
		userQty[l.VariantID] = l.Quantity
	}
	for _, l := range anonCart.Lines {
		if l.Stock <= 0 {
			continue
		}
		existing, ok := userQty[l.VariantID]
		switch {
		case !ok:
			if err := s.repo.CreateLine(ctx, userCart.ID, l.VariantID, l.Quantity); err != nil {
				return domain.Cart{}, err
			}
		case l.Quantity > existing:
			if err := s.repo.SetLineQuantity(ctx, userCart.ID, l.VariantID, l.Quantity); err != nil {
				return domain.Cart{}, err
			}
		}
	}
	if err := s.repo.CancelOtherOpen(ctx, storeID, uid, userCart.ID); err != nil {
		return domain.Cart{}, err
	}
	return s.FindByID(ctx, userCart.ID)
}

func (s *service) VerifyLinesStock(ctx context.Context, cart domain.Cart, isStaff bool) ([]int64, error) {
	if len(cart.Lines) == 0 {
		return nil, nil
	}
	variantIDs := make([]int64, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		variantIDs = append(variantIDs, l.VariantID)
	}
	infos, err := s.productSvc.FindVariantInfosByIDs(ctx, variantIDs)
	if err != nil {
		return nil, err
	}
	byVariant := make(map[int64]product.VariantInfo, len(infos))
	for _, info := range infos {
		byVariant[info.Variant.ID] = info
	}
	var removed []int64
	for _, l := range cart.Lines {
		info, ok := byVariant[l.VariantID]
		if !ok || !purchasable(info, l.Quantity, isStaff) {
			removed = append(removed, l.VariantID)
		}
	}
	if err := s.repo.DeleteLinesByVariantIDs(ctx, cart.ID, removed); err != nil {
		return nil, err
	}
	return removed, nil
}

func (s *service) FindByID(ctx context.Context, id int64) (domain.Cart, error) {
	cart, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Cart{}, err
	}
	if err = s.hydrate(ctx, &cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (s *service) CouponFor(ctx context.Context, cart domain.Cart) (*promotion.Coupon, error) {
	if cart.CouponID == 0 {
		return nil, nil
	}
	coupon, err := s.promotionSvc.FindByID(ctx, cart.CouponID)
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (s *service) MarkAwaitingPayment(ctx context.Context, cartID int64) error {
	return s.repo.MarkAwaitingPayment(ctx, cartID)
}

func (s *service) MarkPaid(ctx context.Context, cartID int64) error {
	return s.repo.MarkPaid(ctx, cartID)
}

func (s *service) Reopen(ctx context.Context, cart domain.Cart) error {
	openKey := cart.Owner().OpenKey()
	if _, err := s.repo.FindOpenByKey(ctx, openKey); err == nil {
		// 已经有一辆开放车, 不抢
		return nil
	}
	return s.repo.Reopen(ctx, cart.ID, openKey)
}

func (s *service) ensureSaved(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	if cart.ID != 0 {
		return cart, nil
	}
	return s.repo.CreateOpen(ctx, cart)
}

func (s *service) stocklessVariantIDs(cart domain.Cart) []int64 {
	var res []int64
	for _, l := range cart.Lines {
		if l.Stock <= 0 {
			res = append(res, l.VariantID)
		}
	}
	return res
}

// hydrate 给行补上商品当前数据, 变体已消失的行保持原样, 等库存校验去收拾
func (s *service) hydrate(ctx context.Context, cart *domain.Cart) error {
	if len(cart.Lines) == 0 {
		return nil
	}
	variantIDs := make([]int64, 0, len(cart.Lines))
	for _, l := range cart.Lines {
		variantIDs = append(variantIDs, l.VariantID)
	}
	infos, err := s.productSvc.FindVariantInfosByIDs(ctx, variantIDs)
	if err != nil {
		return err
	}
	byVariant := make(map[int64]product.VariantInfo, len(infos))
	for _, info := range infos {
		byVariant[info.Variant.ID] = info
	}
	for i := range cart.Lines {
		info, ok := byVariant[cart.Lines[i].VariantID]
		if !ok {
			continue
		}
		cart.Lines[i].UnitPrice = info.Product.Price
		cart.Lines[i].ProductID = info.Product.ID
		cart.Lines[i].ProductName = info.Product.Name
		cart.Lines[i].VariantName = info.Variant.Name
		cart.Lines[i].SKU = info.Variant.SKU
		cart.Lines[i].CategoryIDs = info.Product.CategoryIDs
		cart.Lines[i].Stock = info.Variant.Stock
		cart.Lines[i].Weight = info.Variant.Weight
		cart.Lines[i].Width = info.Variant.Width
		cart.Lines[i].Height = info.Variant.Height
		cart.Lines[i].Depth = info.Variant.Depth
		cart.Lines[i].Attrs = info.Variant.Attrs
		cart.Lines[i].Image = info.Variant.Image
	}
	return nil
}

// purchasable 购买资格: 开放购买, 商品和变体都可售或员工预览, 库存够数
func purchasable(info product.VariantInfo, quantity int64, isStaff bool) bool {
	p := info.Product
	if !p.PurchasingEnabled {
		return false
	}
	if (!p.Active || !info.Variant.Active) && !(p.PreviewEnabled && isStaff) {
		return false
	}
	return quantity > 0 && info.Variant.Stock >= quantity
}
