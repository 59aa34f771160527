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

package order

import (
	"github.com/ecodeclub/ecommerce/internal/order/internal/consumer"
	"github.com/ecodeclub/ecommerce/internal/order/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/order/internal/event"
	"github.com/ecodeclub/ecommerce/internal/order/internal/service"
	"github.com/ecodeclub/ecommerce/internal/order/internal/web"
)

type (
	Handler               = web.Handler
	Service               = service.Service
	Order                 = domain.Order
	Line                  = domain.Line
	Address               = domain.Address
	Status                = domain.Status
	PlaceOrderInput       = service.PlaceOrderInput
	OrderEvent            = event.OrderEvent
	PaymentStatusConsumer = consumer.PaymentStatusConsumer
)

const (
	StatusPaymentPending               = domain.StatusPaymentPending
	StatusAwaitingPaymentConfirmation  = domain.StatusAwaitingPaymentConfirmation
	StatusAwaitingPaymentAuthorization = domain.StatusAwaitingPaymentAuthorization
	StatusPaid                         = domain.StatusPaid
	StatusShipmentGenerated            = domain.StatusShipmentGenerated
	StatusShipped                      = domain.StatusShipped
	StatusDelivered                    = domain.StatusDelivered
	StatusCancelled                    = domain.StatusCancelled

	OrderEventName = event.OrderEventName
)

var (
	ErrEmptyCart                 = service.ErrEmptyCart
	ErrAddressNotOwned           = service.ErrAddressNotOwned
	ErrShippingMethodUnavailable = service.ErrShippingMethodUnavailable
	ErrCouponExpired             = service.ErrCouponExpired
	ErrLinesRemoved              = service.ErrLinesRemoved
	ErrNotCancelable             = service.ErrNotCancelable
	ErrOrderNotFound             = service.ErrOrderNotFound
)

type Module struct {
	Svc Service
	Hdl *Handler
	// Consumer 支付结果事件的消费者, 由装配层启动
	Consumer *PaymentStatusConsumer
}
