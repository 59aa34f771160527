package ioc

import (
	"net/http"
	"strings"

	"github.com/ecodeclub/ecommerce/internal/cart"
	"github.com/ecodeclub/ecommerce/internal/order"
	"github.com/ecodeclub/ecommerce/internal/payment"
	"github.com/ecodeclub/ecommerce/internal/product"
	"github.com/ecodeclub/ecommerce/internal/store"
	"github.com/ecodeclub/ginx/session"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gotomicro/ego/server/egin"
)

func initGinxServer(sp session.Provider,
	storeMw *store.CheckStoreBuilder,
	productHdl *product.Handler,
	paymentHdl *payment.Handler,
	cartHdl *cart.Handler,
	orderHdl *order.Handler,
) *egin.Component {
	session.SetDefaultProvider(sp)
	res := egin.Load("web").Build()
	res.Use(cors.New(cors.Config{
		ExposeHeaders:    []string{"X-Refresh-Token", "X-Access-Token"},
		AllowCredentials: true,
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		AllowOriginFunc: func(origin string) bool {
			if strings.HasPrefix(origin, "http://localhost") {
				return true
			}
			// 只允许各店铺自己的域名过来
			return strings.Contains(origin, "meoying.com")
		},
	}))
	res.GET("/hello", func(ctx *gin.Context) {
		ctx.String(http.StatusOK, "hello, world!")
	})
	// 按请求域名解析店铺, 后面所有路由都依赖它
	res.Use(storeMw.Build())
	productHdl.PublicRoutes(res.Engine)
	paymentHdl.PublicRoutes(res.Engine)
	// 匿名买家凭 cart_token cookie 用购物车, 不要求登录
	cartHdl.PublicRoutes(res.Engine)
	// 登录校验
	res.Use(session.CheckLoginMiddleware())
	cartHdl.PrivateRoutes(res.Engine)
	orderHdl.PrivateRoutes(res.Engine)
	return res
}
