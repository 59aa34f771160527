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
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ecodeclub/ecommerce/internal/cart/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/cart/internal/service"
	"github.com/ecodeclub/ecommerce/internal/pkg/ectx"
	"github.com/ecodeclub/ecommerce/internal/promotion"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCartSvc struct {
	service.Service
	gotOwner   domain.Owner
	gotStaff   bool
	gotVariant int64
}

func (f *fakeCartSvc) AddToCart(_ context.Context, owner domain.Owner, variantID int64, isStaff bool) (domain.Cart, error) {
	f.gotOwner = owner
	f.gotStaff = isStaff
	f.gotVariant = variantID
	return domain.Cart{ID: 1, StoreID: owner.StoreID, Token: owner.Token, Status: domain.StatusOpen}, nil
}

func (f *fakeCartSvc) GetOrCreateActiveCart(_ context.Context, owner domain.Owner) (domain.Cart, error) {
	f.gotOwner = owner
	return domain.Cart{StoreID: owner.StoreID, Token: owner.Token, Status: domain.StatusOpen}, nil
}

func (f *fakeCartSvc) CouponFor(_ context.Context, _ domain.Cart) (*promotion.Coupon, error) {
	return nil, nil
}

func newGuestServer(svc service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	server := gin.New()
	server.Use(func(ctx *gin.Context) {
		ctx.Request = ctx.Request.WithContext(
			ectx.CtxWithStoreID(ctx.Request.Context(), 1))
	})
	NewHandler(svc).PublicRoutes(server)
	return server
}

func cartTokenFromResp(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == cartTokenCookie {
			return c.Value
		}
	}
	return ""
}

func TestHandler_GuestAddToCart(t *testing.T) {
	t.Parallel()

	t.Run("没有凭证时签发cookie并以它为归属", func(t *testing.T) {
		t.Parallel()
		svc := &fakeCartSvc{}
		server := newGuestServer(svc)

		req := httptest.NewRequest(http.MethodPost, "/cart/guest/add",
			strings.NewReader(`{"variantId":100}`))
		req.Header.Set("Content-Type", "application/json")
		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		token := cartTokenFromResp(recorder.Result())
		require.NotEmpty(t, token)
		assert.Equal(t, domain.Owner{StoreID: 1, Token: token}, svc.gotOwner)
		assert.Equal(t, int64(100), svc.gotVariant)
		assert.False(t, svc.gotStaff)
	})

	t.Run("带凭证时沿用cookie不重新签发", func(t *testing.T) {
		t.Parallel()
		svc := &fakeCartSvc{}
		server := newGuestServer(svc)

		req := httptest.NewRequest(http.MethodPost, "/cart/guest/add",
			strings.NewReader(`{"variantId":100}`))
		req.Header.Set("Content-Type", "application/json")
		req.AddCookie(&http.Cookie{Name: cartTokenCookie, Value: "tok-abc"})
		recorder := httptest.NewRecorder()
		server.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, cartTokenFromResp(recorder.Result()))
		assert.Equal(t, domain.Owner{StoreID: 1, Token: "tok-abc"}, svc.gotOwner)
	})
}

func TestHandler_GuestDetail(t *testing.T) {
	t.Parallel()
	svc := &fakeCartSvc{}
	server := newGuestServer(svc)

	req := httptest.NewRequest(http.MethodPost, "/cart/guest/detail",
		strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: cartTokenCookie, Value: "tok-abc"})
	recorder := httptest.NewRecorder()
	server.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, domain.Owner{StoreID: 1, Token: "tok-abc"}, svc.gotOwner)
	assert.Contains(t, recorder.Body.String(), `"subtotal":"0.00"`)
}
