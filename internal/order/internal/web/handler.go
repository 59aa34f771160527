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

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/ecommerce/internal/order/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/order/internal/service"
	"github.com/ecodeclub/ecommerce/internal/payment"
	"github.com/ecodeclub/ecommerce/internal/pkg/ectx"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc        service.Service
	paymentSvc payment.Service
	cache      ecache.Cache
}

func NewHandler(svc service.Service, paymentSvc payment.Service, cache ecache.Cache) *Handler {
	return &Handler{svc: svc, paymentSvc: paymentSvc, cache: cache}
}

func (h *Handler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/order")
	g.POST("/place", ginx.BS[PlaceOrderReq](h.PlaceOrder))
	g.POST("/status", ginx.BS[OrderStatusReq](h.OrderStatus))
	g.POST("/list", ginx.BS[ListOrdersReq](h.ListOrders))
	g.POST("/detail", ginx.BS[OrderDetailReq](h.OrderDetail))
	g.POST("/cancel", ginx.BS[CancelOrderReq](h.CancelOrder))
}

func (h *Handler) PublicRoutes(_ *gin.Engine) {}

// PlaceOrder 下单并返回支付跳转地址
func (h *Handler) PlaceOrder(ctx *ginx.Context, req PlaceOrderReq, sess session.Session) (ginx.Result, error) {
	if err := h.checkRequestID(ctx.Request.Context(), req.RequestID); err != nil {
		return systemErrorResult, fmt.Errorf("请求ID错误: %w", err)
	}

	storeID, ok := ectx.StoreIDFromCtx(ctx.Request.Context())
	if !ok {
		return systemErrorResult, fmt.Errorf("请求上下文中缺少店铺ID")
	}

	order, err := h.svc.PlaceOrder(ctx.Request.Context(), service.PlaceOrderInput{
		StoreID:           storeID,
		UID:               sess.Claims().Uid,
		IsStaff:           h.isStaff(sess),
		ShippingAddressID: req.ShippingAddressID,
		BillingAddressID:  req.BillingAddressID,
		ShippingMethodID:  req.ShippingMethodID,
		PaymentMethodID:   req.PaymentMethodID,
	})
	if err != nil {
		if isValidationError(err) {
			return validationErrorResult, err
		}
		return systemErrorResult, fmt.Errorf("下单失败: %w", err)
	}

	redirectURL, err := h.paymentSvc.GenerateRedirectURL(ctx.Request.Context(), req.PaymentMethodID, payment.OrderRef{
		OrderID:    order.ID,
		Identifier: order.Identifier,
		UID:        order.UID,
		Total:      order.Total,
	})
	if err != nil {
		return systemErrorResult, fmt.Errorf("生成支付跳转地址失败: %w", err)
	}

	return ginx.Result{
		Data: PlaceOrderResp{
			OrderIdentifier: order.Identifier,
			RedirectURL:     redirectURL,
		},
	}, nil
}

// checkRequestID 同一个请求ID只允许创建一次订单
func (h *Handler) checkRequestID(ctx context.Context, requestID string) error {
	if requestID == "" {
		return fmt.Errorf("请求ID为空")
	}
	key := fmt.Sprintf("order:place:%s", requestID)
	val := h.cache.Get(ctx, key)
	if !val.KeyNotFound() {
		return fmt.Errorf("重复请求")
	}
	if err := h.cache.Set(ctx, key, requestID, 0); err != nil {
		return fmt.Errorf("缓存请求ID失败: %w", err)
	}
	return nil
}

func (h *Handler) OrderStatus(ctx *ginx.Context, req OrderStatusReq, sess session.Session) (ginx.Result, error) {
	order, err := h.svc.FindByUIDAndIdentifier(ctx.Request.Context(), sess.Claims().Uid, req.OrderIdentifier)
	if err != nil {
		return systemErrorResult, fmt.Errorf("订单未找到: %w", err)
	}
	return ginx.Result{
		Data: OrderStatusResp{
			Status: order.Status.ToUint8(),
		},
	}, nil
}

func (h *Handler) ListOrders(ctx *ginx.Context, req ListOrdersReq, sess session.Session) (ginx.Result, error) {
	orders, total, err := h.svc.List(ctx.Request.Context(), req.Offset, req.Limit, sess.Claims().Uid)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListOrdersResp{
			Total: total,
			Orders: slice.Map(orders, func(idx int, src domain.Order) Order {
				return toOrderVO(src, false)
			}),
		},
	}, nil
}

func (h *Handler) OrderDetail(ctx *ginx.Context, req OrderDetailReq, sess session.Session) (ginx.Result, error) {
	order, err := h.svc.FindByUIDAndIdentifier(ctx.Request.Context(), sess.Claims().Uid, req.OrderIdentifier)
	if err != nil {
		return systemErrorResult, fmt.Errorf("订单未找到: %w", err)
	}
	return ginx.Result{
		Data: OrderDetailResp{
			Order: toOrderVO(order, true),
		},
	}, nil
}

func (h *Handler) CancelOrder(ctx *ginx.Context, req CancelOrderReq, sess session.Session) (ginx.Result, error) {
	err := h.svc.CancelOrder(ctx.Request.Context(), sess.Claims().Uid, req.OrderIdentifier)
	if err != nil {
		if isValidationError(err) {
			return validationErrorResult, err
		}
		return systemErrorResult, fmt.Errorf("取消订单失败: %w", err)
	}
	return ginx.Result{Msg: "OK"}, nil
}

func (h *Handler) isStaff(sess session.Session) bool {
	return sess.Claims().Get("isStaff").StringOrDefault("") == "true"
}

func isValidationError(err error) bool {
	return errors.Is(err, service.ErrEmptyCart) ||
		errors.Is(err, service.ErrAddressNotOwned) ||
		errors.Is(err, service.ErrShippingMethodUnavailable) ||
		errors.Is(err, service.ErrCouponExpired) ||
		errors.Is(err, service.ErrLinesRemoved) ||
		errors.Is(err, service.ErrNotCancelable)
}
