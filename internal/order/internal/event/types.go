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

package event

const OrderEventName = "order_events"

const (
	KindOrderPaid                = "order_paid"
	KindShipmentGenerated        = "shipment_generated"
	KindShipmentGenerationFailed = "shipment_generation_failed"
)

// OrderEvent 订单侧对外广播的事件, 邮件通知之类的下游自己消费
type OrderEvent struct {
	Kind            string `json:"kind"`
	OrderIdentifier string `json:"order_identifier"`
	UID             int64  `json:"uid"`
}
