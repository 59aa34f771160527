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

package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ecodeclub/ecommerce/internal/order/internal/service"
	"github.com/ecodeclub/ecommerce/internal/payment"
	"github.com/ecodeclub/mq-api"
	"github.com/gotomicro/ego/core/elog"
)

// PaymentStatusConsumer 消费支付网关的回调结果, 驱动订单状态机
type PaymentStatusConsumer struct {
	svc      service.Service
	consumer mq.Consumer
	logger   *elog.Component
}

func NewPaymentStatusConsumer(svc service.Service, q mq.MQ) (*PaymentStatusConsumer, error) {
	const groupID = "order"
	consumer, err := q.Consumer(payment.PaymentStatusEventName, groupID)
	if err != nil {
		return nil, err
	}
	return &PaymentStatusConsumer{
		svc:      svc,
		consumer: consumer,
		logger:   elog.DefaultLogger,
	}, nil
}

func (c *PaymentStatusConsumer) Start(ctx context.Context) {
	go func() {
		for {
			er := c.Consume(ctx)
			if er != nil {
				c.logger.Error("消费支付结果事件失败", elog.FieldErr(er))
			}
		}
	}()
}

func (c *PaymentStatusConsumer) Consume(ctx context.Context) error {
	msg, err := c.consumer.Consume(ctx)
	if err != nil {
		return fmt.Errorf("获取消息失败: %w", err)
	}

	var evt payment.PaymentStatusEvent
	err = json.Unmarshal(msg.Value, &evt)
	if err != nil {
		return fmt.Errorf("解析消息失败: %w", err)
	}

	switch payment.Status(evt.Status) {
	case payment.StatusPaid:
		err = c.svc.OrderPaid(ctx, evt.OrderIdentifier)
	case payment.StatusAwaitingAuthorization:
		err = c.svc.OrderAwaitingPaymentAuthorization(ctx, evt.OrderIdentifier)
	case payment.StatusAwaitingConfirmation:
		err = c.svc.OrderAwaitingPaymentConfirmation(ctx, evt.OrderIdentifier)
	default:
		c.logger.Warn("未知的支付结果状态",
			elog.String("order_identifier", evt.OrderIdentifier),
			elog.Any("status", evt.Status))
		return nil
	}
	if err != nil {
		c.logger.Error("处理支付结果事件失败",
			elog.FieldErr(err),
			elog.String("order_identifier", evt.OrderIdentifier),
			elog.Any("status", evt.Status))
	}
	return err
}
