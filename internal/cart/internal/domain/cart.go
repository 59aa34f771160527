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

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type Status uint8

func (s Status) ToUint8() uint8 {
	return uint8(s)
}

const (
	StatusOpen            Status = 1 // 进行中
	StatusAwaitingPayment Status = 2 // 待支付
	StatusPaid            Status = 3 // 已支付
	StatusCanceled        Status = 4 // 已取消
	StatusReplaced        Status = 5 // 被合并替换
)

// Owner 购物车归属: 登录用户或匿名令牌, 二选一
type Owner struct {
	StoreID int64
	UID     int64
	Token   string
}

func (o Owner) Anonymous() bool {
	return o.UID == 0
}

// OpenKey 开放态唯一键。库里对它建唯一索引,
// 同一归属并发创建时只有一个能赢, 输家按键重查即可
func (o Owner) OpenKey() string {
	if o.Anonymous() {
		return fmt.Sprintf("store:%d:token:%s", o.StoreID, o.Token)
	}
	return fmt.Sprintf("store:%d:uid:%d", o.StoreID, o.UID)
}

type Cart struct {
	ID      int64
	StoreID int64
	UID     int64
	Token   string
	Status  Status
	// CouponID 0 表示未附加优惠券
	CouponID int64
	// Lines 插入序, 已水合商品信息
	Lines []Line
	Ctime int64
	Utime int64
}

func (c Cart) Owner() Owner {
	return Owner{StoreID: c.StoreID, UID: c.UID, Token: c.Token}
}

// Line 购物车行。水合字段来自商品模块的当前数据,
// 单价不落库, 商品调价即时反映到未结算的购物车
type Line struct {
	ID        int64
	CartID    int64
	VariantID int64
	Quantity  int64

	UnitPrice   decimal.Decimal
	ProductID   int64
	ProductName string
	VariantName string
	SKU         string
	CategoryIDs []int64
	Stock       int64
	Weight      decimal.Decimal
	Width       decimal.Decimal
	Height      decimal.Decimal
	Depth       decimal.Decimal
	Attrs       string
	Image       string
}

func (l Line) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(l.Quantity))
}
