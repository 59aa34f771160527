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

package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/ecache"
	"github.com/ecodeclub/ecommerce/internal/promotion/internal/domain"
)

// 自动发放的优惠券变更频率很低, 短 TTL 换掉高频的 DB 查询,
// 有效性在使用方仍然会重新校验
const autoAssignExpiration = time.Minute

var ErrKeyNotFound = errors.New("缓存中没找到对应的 key")

type CouponCache interface {
	SetAutoAssign(ctx context.Context, c domain.Coupon) error
	GetAutoAssign(ctx context.Context) (domain.Coupon, error)
}

type couponCache struct {
	ec ecache.Cache
}

func NewCouponCache(ec ecache.Cache) CouponCache {
	return &couponCache{
		ec: &ecache.NamespaceCache{
			C:         ec,
			Namespace: "promotion:",
		},
	}
}

func (c *couponCache) SetAutoAssign(ctx context.Context, coupon domain.Coupon) error {
	data, err := json.Marshal(coupon)
	if err != nil {
		return fmt.Errorf("序列化优惠券失败: %w", err)
	}
	return c.ec.Set(ctx, c.autoAssignKey(), string(data), autoAssignExpiration)
}

func (c *couponCache) GetAutoAssign(ctx context.Context) (domain.Coupon, error) {
	val := c.ec.Get(ctx, c.autoAssignKey())
	if val.KeyNotFound() {
		return domain.Coupon{}, ErrKeyNotFound
	}
	if val.Err != nil {
		return domain.Coupon{}, fmt.Errorf("查询缓存出错: %w", val.Err)
	}
	var coupon domain.Coupon
	err := json.Unmarshal([]byte(val.Val.(string)), &coupon)
	if err != nil {
		return domain.Coupon{}, fmt.Errorf("反序列化优惠券失败: %w", err)
	}
	return coupon, nil
}

func (c *couponCache) autoAssignKey() string {
	return "auto_assign:latest"
}
