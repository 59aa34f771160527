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

const PaymentStatusEventName = "payment_status_events"

// PaymentStatusEvent 网关回调产生的支付结果。
// 只带订单号和状态, 订单侧拿着订单号自己查详情
type PaymentStatusEvent struct {
	OrderIdentifier string `json:"order_identifier"`
	Status          uint8  `json:"status"`
}
