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
	"fmt"

	"github.com/ecodeclub/ecommerce/internal/pkg/ectx"
	"github.com/ecodeclub/ecommerce/internal/product/internal/service"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc service.Service
}

func NewHandler(svc service.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) PublicRoutes(server *gin.Engine) {
	g := server.Group("/product")
	g.POST("/list", ginx.B[ListReq](h.List))
	g.POST("/detail", ginx.B[SlugReq](h.Detail))
}

func (h *Handler) List(ctx *ginx.Context, req ListReq) (ginx.Result, error) {
	sid, ok := ectx.StoreIDFromCtx(ctx.Request.Context())
	if !ok {
		return systemErrorResult, fmt.Errorf("请求上下文中缺少店铺ID")
	}
	ps, total, err := h.svc.List(ctx.Request.Context(), sid, req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询商品列表失败: %w", err)
	}
	return ginx.Result{
		Data: ProductListResp{
			Products: newProducts(ps),
			Total:    total,
		},
	}, nil
}

func (h *Handler) Detail(ctx *ginx.Context, req SlugReq) (ginx.Result, error) {
	sid, ok := ectx.StoreIDFromCtx(ctx.Request.Context())
	if !ok {
		return systemErrorResult, fmt.Errorf("请求上下文中缺少店铺ID")
	}
	p, err := h.svc.FindBySlug(ctx.Request.Context(), sid, req.Slug)
	if err != nil {
		return systemErrorResult, fmt.Errorf("查询商品详情失败: %w", err)
	}
	// 未上架且未开预览的商品对外不可见
	if !p.Active && !p.PreviewEnabled {
		return systemErrorResult, fmt.Errorf("商品不可见: %s", req.Slug)
	}
	return ginx.Result{
		Data: newProduct(p),
	}, nil
}
