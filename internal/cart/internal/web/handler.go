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
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/ecodeclub/ecommerce/internal/cart/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/cart/internal/service"
	"github.com/ecodeclub/ecommerce/internal/pkg/ectx"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
	"github.com/lithammer/shortuuid/v4"
)

const (
	// cartTokenCookie 匿名购物车的归属凭证, 登录后用它发起合并
	cartTokenCookie = "cart_token"
	cartTokenMaxAge = 30 * 24 * 3600
)

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

// PublicRoutes 匿名买家的购物车入口, 归属凭证是 cookie 而非登录态
func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/cart/guest")
	g.POST("/add", ginx.B[AddToCartReq](h.GuestAddToCart))
	g.POST("/line/modify", ginx.B[ModifyCartLineReq](h.GuestModifyCartLine))
	g.POST("/coupon/update", ginx.B[UpdateCartCouponReq](h.GuestUpdateCartCoupon))
	g.POST("/detail", ginx.B[DetailReq](h.GuestDetail))
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/cart")
	g.POST("/add", ginx.BS[AddToCartReq](h.AddToCart))
	g.POST("/line/modify", ginx.BS[ModifyCartLineReq](h.ModifyCartLine))
	g.POST("/coupon/update", ginx.BS[UpdateCartCouponReq](h.UpdateCartCoupon))
	g.POST("/detail", ginx.BS[DetailReq](h.Detail))
	g.POST("/merge", ginx.BS[MergeReq](h.Merge))
}

func (h *Handler) AddToCart(ctx *ginx.Context, req AddToCartReq, sess session.Session) (ginx.Result, error) {
	owner, err := h.owner(ctx.Request.Context(), sess)
	if err != nil {
		return systemErrorResult, err
	}
	cart, err := h.svc.AddToCart(ctx.Request.Context(), owner, req.VariantID, h.isStaff(sess))
	if err != nil {
		if isValidationError(err) {
			return validationErrorResult, err
		}
		return systemErrorResult, fmt.Errorf("加入购物车失败: %w", err)
	}
	return h.cartResult(ctx.Request.Context(), cart)
}

func (h *Handler) GuestAddToCart(ctx *ginx.Context, req AddToCartReq) (ginx.Result, error) {
	owner, err := h.guestOwner(ctx)
	if err != nil {
		return systemErrorResult, err
	}
	cart, err := h.svc.AddToCart(ctx.Request.Context(), owner, req.VariantID, false)
	if err != nil {
		if isValidationError(err) {
			return validationErrorResult, err
		}
		return systemErrorResult, fmt.Errorf("加入购物车失败: %w", err)
	}
	return h.cartResult(ctx.Request.Context(), cart)
}

func (h *Handler) GuestModifyCartLine(ctx *ginx.Context, req ModifyCartLineReq) (ginx.Result, error) {
	owner, err := h.guestOwner(ctx)
	if err != nil {
		return systemErrorResult, err
	}
	cart, err := h.svc.ModifyCartLine(ctx.Request.Context(), owner, req.VariantID, req.Quantity)
	if err != nil {
		if isValidationError(err) {
			return validationErrorResult, err
		}
		return systemErrorResult, fmt.Errorf("修改购物车行失败: %w", err)
	}
	return h.cartResult(ctx.Request.Context(), cart)
}

func (h *Handler) GuestUpdateCartCoupon(ctx *ginx.Context, req UpdateCartCouponReq) (ginx.Result, error) {
	owner, err := h.guestOwner(ctx)
	if err != nil {
		return systemErrorResult, err
	}
	cart, err := h.svc.UpdateCartCoupon(ctx.Request.Context(), owner, req.Code)
	if err != nil {
		if isValidationError(err) {
			return validationErrorResult, err
		}
		return systemErrorResult, fmt.Errorf("更新优惠券失败: %w", err)
	}
	return h.cartResult(ctx.Request.Context(), cart)
}

func (h *Handler) GuestDetail(ctx *ginx.Context, _ DetailReq) (ginx.Result, error) {
	owner, err := h.guestOwner(ctx)
	if err != nil {
		return systemErrorResult, err
	}
	cart, err := h.svc.GetOrCreateActiveCart(ctx.Request.Context(), owner)
	if err != nil {
		return systemErrorResult, fmt.Errorf("获取购物车失败: %w", err)
	}
	return h.cartResult(ctx.Request.Context(), cart)
}

func (h *Handler) ModifyCartLine(ctx *ginx.Context, req ModifyCartLineReq, sess session.Session) (ginx.Result, error) {
	owner, err := h.owner(ctx.Request.Context(), sess)
	if err != nil {
		return systemErrorResult, err
	}
	cart, err := h.svc.ModifyCartLine(ctx.Request.Context(), owner, req.VariantID, req.Quantity)
	if err != nil {
		if isValidationError(err) {
			return validationErrorResult, err
		}
		return systemErrorResult, fmt.Errorf("修改购物车行失败: %w", err)
	}
	return h.cartResult(ctx.Request.Context(), cart)
}

func (h *Handler) UpdateCartCoupon(ctx *ginx.Context, req UpdateCartCouponReq, sess session.Session) (ginx.Result, error) {
	owner, err := h.owner(ctx.Request.Context(), sess)
	if err != nil {
		return systemErrorResult, err
	}
	cart, err := h.svc.UpdateCartCoupon(ctx.Request.Context(), owner, req.Code)
	if err != nil {
		if isValidationError(err) {
			return validationErrorResult, err
		}
		return systemErrorResult, fmt.Errorf("更新优惠券失败: %w", err)
	}
	return h.cartResult(ctx.Request.Context(), cart)
}

func (h *Handler) Detail(ctx *ginx.Context, _ DetailReq, sess session.Session) (ginx.Result, error) {
	owner, err := h.owner(ctx.Request.Context(), sess)
	if err != nil {
		return systemErrorResult, err
	}
	cart, err := h.svc.GetOrCreateActiveCart(ctx.Request.Context(), owner)
	if err != nil {
		return systemErrorResult, fmt.Errorf("获取购物车失败: %w", err)
	}
	return h.cartResult(ctx.Request.Context(), cart)
}

// Merge 登录后把匿名购物车并入用户购物车
func (h *Handler) Merge(ctx *ginx.Context, req MergeReq, sess session.Session) (ginx.Result, error) {
	owner, err := h.owner(ctx.Request.Context(), sess)
	if err != nil {
		return systemErrorResult, err
	}
	cart, err := h.svc.MergeOnLogin(ctx.Request.Context(), owner.StoreID, owner.UID, req.Token)
	if err != nil {
		return systemErrorResult, fmt.Errorf("合并购物车失败: %w", err)
	}
	return h.cartResult(ctx.Request.Context(), cart)
}

func (h *Handler) owner(ctx context.Context, sess session.Session) (domain.Owner, error) {
	sid, ok := ectx.StoreIDFromCtx(ctx)
	if !ok {
		return domain.Owner{}, fmt.Errorf("请求上下文中缺少店铺ID")
	}
	return domain.Owner{
		StoreID: sid,
		UID:     sess.Claims().Uid,
	}, nil
}

// guestOwner 从 cookie 取匿名凭证, 没有就签发一个新的
func (h *Handler) guestOwner(ctx *ginx.Context) (domain.Owner, error) {
	sid, ok := ectx.StoreIDFromCtx(ctx.Request.Context())
	if !ok {
		return domain.Owner{}, fmt.Errorf("请求上下文中缺少店铺ID")
	}
	token, err := ctx.Context.Cookie(cartTokenCookie)
	if err != nil || token == "" {
		if err != nil && !errors.Is(err, http.ErrNoCookie) {
			return domain.Owner{}, err
		}
		token = shortuuid.New()
		ctx.SetCookie(cartTokenCookie, token, cartTokenMaxAge, "/", "", false, true)
	}
	return domain.Owner{
		StoreID: sid,
		Token:   token,
	}, nil
}

func (h *Handler) isStaff(sess session.Session) bool {
	return sess.Claims().Get("isStaff").StringOrDefault("") == "true"
}

func (h *Handler) cartResult(ctx context.Context, cart domain.Cart) (ginx.Result, error) {
	coupon, err := h.svc.CouponFor(ctx, cart)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: toCartVO(cart, coupon),
	}, nil
}

func isValidationError(err error) bool {
	return errors.Is(err, service.ErrInvalidQuantity) ||
		errors.Is(err, service.ErrUnknownVariant) ||
		errors.Is(err, service.ErrNotPurchasable) ||
		errors.Is(err, service.ErrLineNotFound) ||
		errors.Is(err, service.ErrCouponNotApplicable)
}
