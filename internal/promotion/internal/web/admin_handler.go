package web

import (
	"errors"
	"fmt"

	"github.com/ecodeclub/ecommerce/internal/promotion/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/promotion/internal/service"
	"github.com/ecodeclub/ekit/slice"
	"github.com/ecodeclub/ginx"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc service.Service
}

func NewAdminHandler(svc service.Service) *AdminHandler {
	return &AdminHandler{
		svc: svc,
	}
}

func (h *AdminHandler) PrivateRoutes(server *gin.Engine) {
	g := server.Group("/coupon")
	g.POST("/save", ginx.B[CouponSaveReq](h.Save))
	g.POST("/list", ginx.B[ListCouponsReq](h.List))
}

func (h *AdminHandler) Save(ctx *ginx.Context, req CouponSaveReq) (ginx.Result, error) {
	id, err := h.svc.Create(ctx.Request.Context(), req.Coupon.toDomain())
	if errors.Is(err, domain.ErrInvalidCode) {
		return validationErrorResult, fmt.Errorf("创建优惠券失败: %w", err)
	}
	if err != nil {
		return systemErrorResult, fmt.Errorf("创建优惠券失败: %w", err)
	}
	return ginx.Result{
		Data: CouponSaveResp{ID: id},
	}, nil
}

func (h *AdminHandler) List(ctx *ginx.Context, req ListCouponsReq) (ginx.Result, error) {
	cs, total, err := h.svc.List(ctx.Request.Context(), req.Offset, req.Limit)
	if err != nil {
		return systemErrorResult, err
	}
	return ginx.Result{
		Data: ListCouponsResp{
			Total: total,
			Coupons: slice.Map(cs, func(idx int, src domain.Coupon) Coupon {
				return toCouponVO(src)
			}),
		},
	}, nil
}
