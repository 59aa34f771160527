//go:build wireinject

package ioc

import (
	"github.com/ecodeclub/ecommerce/internal/address"
	"github.com/ecodeclub/ecommerce/internal/cart"
	"github.com/ecodeclub/ecommerce/internal/order"
	"github.com/ecodeclub/ecommerce/internal/payment"
	"github.com/ecodeclub/ecommerce/internal/product"
	"github.com/ecodeclub/ecommerce/internal/promotion"
	"github.com/ecodeclub/ecommerce/internal/shipping"
	"github.com/ecodeclub/ecommerce/internal/store"
	"github.com/google/wire"
)

var BaseSet = wire.NewSet(InitDB, InitCache, InitRedis, InitMQ)

func InitApp() (*App, error) {
	wire.Build(wire.Struct(new(App), "*"),
		BaseSet,
		store.InitModule,
		wire.FieldsOf(new(*store.Module), "Middleware"),
		product.InitModule,
		wire.FieldsOf(new(*product.Module), "Hdl"),
		promotion.InitModule,
		wire.FieldsOf(new(*promotion.Module), "AdminHdl"),
		shipping.InitModule,
		address.InitModule,
		cart.InitModule,
		wire.FieldsOf(new(*cart.Module), "Hdl"),
		payment.InitModule,
		wire.FieldsOf(new(*payment.Module), "Hdl"),
		order.InitModule,
		wire.FieldsOf(new(*order.Module), "Hdl", "Consumer"),
		initConsumers,
		InitSession,
		initGinxServer,
		InitAdminServer,
	)
	return new(App), nil
}
