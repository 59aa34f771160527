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
	"net/http"

	"github.com/ecodeclub/ecommerce/internal/pkg/ectx"
	"github.com/ecodeclub/ecommerce/internal/store/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/core/elog"
)

// CheckStoreBuilder 按请求的 Host 解析出店铺, 注入请求上下文。
// 解析不到店铺的请求直接拒绝, 后面的 handler 不用再判空
type CheckStoreBuilder struct {
	svc    service.Service
	logger *elog.Component
}

func NewCheckStoreBuilder(svc service.Service) *CheckStoreBuilder {
	return &CheckStoreBuilder{
		svc:    svc,
		logger: elog.DefaultLogger,
	}
}

func (b *CheckStoreBuilder) Build() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		host := ctx.Request.Host
		st, err := b.svc.FindByHostname(ctx.Request.Context(), host)
		if err != nil {
			b.logger.Error("未找到请求域名对应的店铺",
				elog.FieldErr(err),
				elog.String("host", host))
			ctx.AbortWithStatus(http.StatusNotFound)
			return
		}
		newCtx := ectx.CtxWithStoreID(ctx.Request.Context(), st.ID)
		ctx.Request = ctx.Request.WithContext(newCtx)
	}
}
