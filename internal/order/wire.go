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

//go:build wireinject

package order

import (
	"sync"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/ecommerce/internal/address"
	"github.com/ecodeclub/ecommerce/internal/cart"
	"github.com/ecodeclub/ecommerce/internal/order/internal/consumer"
	"github.com/ecodeclub/ecommerce/internal/order/internal/event"
	"github.com/ecodeclub/ecommerce/internal/order/internal/repository"
	"github.com/ecodeclub/ecommerce/internal/order/internal/repository/dao"
	"github.com/ecodeclub/ecommerce/internal/order/internal/service"
	"github.com/ecodeclub/ecommerce/internal/order/internal/web"
	"github.com/ecodeclub/ecommerce/internal/payment"
	"github.com/ecodeclub/ecommerce/internal/pkg/identifier"
	"github.com/ecodeclub/ecommerce/internal/product"
	"github.com/ecodeclub/ecommerce/internal/shipping"
	"github.com/ecodeclub/mq-api"
	"github.com/ego-component/egorm"
	"github.com/google/wire"
)

func InitModule(db *egorm.Component,
	q mq.MQ,
	ec ecache.Cache,
	cartModule *cart.Module,
	addressModule *address.Module,
	shippingModule *shipping.Module,
	paymentModule *payment.Module,
	productModule *product.Module) (*Module, error) {
	wire.Build(
		InitTablesOnce,
		identifier.NewGenerator,
		repository.NewOrderRepository,
		event.NewOrderEventProducer,
		consumer.NewPaymentStatusConsumer,
		service.NewService,
		web.NewHandler,
		wire.FieldsOf(new(*cart.Module), "Svc"),
		wire.FieldsOf(new(*address.Module), "Svc"),
		wire.FieldsOf(new(*shipping.Module), "Svc"),
		wire.FieldsOf(new(*payment.Module), "Svc"),
		wire.FieldsOf(new(*product.Module), "Tg"),
		wire.Struct(new(Module), "*"),
	)
	return new(Module), nil
}

var once = &sync.Once{}

func InitTablesOnce(db *egorm.Component) dao.OrderDAO {
	once.Do(func() {
		_ = dao.InitTables(db)
	})
	return dao.NewOrderGORMDAO(db)
}
