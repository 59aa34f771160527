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

package domain

import "github.com/shopspring/decimal"

// KindRedirect 跳转式网关: 买家被带到网关页面完成支付,
// 网关再通过回调通知结果
const KindRedirect = "redirect"

// Status 网关回调里携带的支付结果
type Status uint8

const (
	StatusPaid Status = iota + 1
	// StatusAwaitingAuthorization 款项已冻结, 等待商家请款
	StatusAwaitingAuthorization
	// StatusAwaitingConfirmation 网关已受理, 结果未定
	StatusAwaitingConfirmation
)

func (s Status) ToUint8() uint8 {
	return uint8(s)
}

// Method 商店启用的一种支付方式
type Method struct {
	ID      int64
	StoreID int64
	Kind    string
	Name    string
	Active  bool
	Ctime   int64
	Utime   int64
}

// OrderRef 待支付订单的引用, 避免依赖订单模块
type OrderRef struct {
	OrderID    int64
	Identifier string
	UID        int64
	Total      decimal.Decimal
}
