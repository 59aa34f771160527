package ioc

import (
	"context"

	"github.com/ecodeclub/ecommerce/internal/order"
	"github.com/gotomicro/ego/server/egin"
)

type App struct {
	Web       *egin.Component
	Admin     AdminServer
	Consumers []Consumer
}

type Consumer interface {
	Start(ctx context.Context)
}

func initConsumers(c *order.PaymentStatusConsumer) []Consumer {
	return []Consumer{c}
}
