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
	"errors"
	"fmt"

	"github.com/ecodeclub/ecommerce/internal/payment/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/payment/internal/service"
	"github.com/ecodeclub/ecommerce/internal/payment/internal/service/gateway"
	"github.com/ecodeclub/ecommerce/internal/pkg/ectx"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
)

var _ ginx.Handler = &Handler{}

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/payment")
	g.POST("/method/list", ginx.B[ListMethodsReq](h.ListMethods))
	// 网关回调, 调用方是网关而非买家
	g.POST("/callback", ginx.B[CallbackReq](h.Callback))
}

func (h *Handler) PrivateRoutes(_ *gin.Engine) {}

type ListMethodsReq struct{}

func (h *Handler) ListMethods(ctx *ginx.Context, _ ListMethodsReq) (ginx.Result, error) {
	storeID, ok := ectx.StoreIDFromCtx(ctx.Request.Context())
	if !ok {
		return systemErrorResult, fmt.Errorf("请求中没有商店信息")
	}
	methods, err := h.svc.ListAvailableMethods(ctx.Request.Context(), storeID)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListMethodsResp{
			Methods: slice.Map(methods, func(idx int, src domain.Method) Method {
				return Method{
					ID:   src.ID,
					Kind: src.Kind,
					Name: src.Name,
				}
			}),
		},
	}, nil
}

func (h *Handler) Callback(ctx *ginx.Context, req CallbackReq) (ginx.Result, error) {
	err := h.svc.HandleCallback(ctx.Request.Context(), req.Kind, req.OrderIdentifier, req.Status)
	if errors.Is(err, service.ErrUnknownKind) || errors.Is(err, gateway.ErrUnknownStatus) {
		return validationErrorResult, fmt.Errorf("处理支付回调失败: %w", err)
	}
	if err != nil {
		return systemErrorResult, fmt.Errorf("处理支付回调失败: %w", err)
	}
	return ginx.Result{Msg: "OK"}, nil
}
