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

package ectx

import (
	"context"
)

type storeCtxKeyType struct{}

var storeCtxKey = storeCtxKeyType{}

func CtxWithStoreID(ctx context.Context, storeID int64) context.Context {
	return context.WithValue(ctx, storeCtxKey, storeID)
}

// StoreIDFromCtx 从请求上下文中取出店铺ID, 由店铺中间件在路由之前注入
func StoreIDFromCtx(ctx context.Context) (int64, bool) {
	val, ok := ctx.Value(storeCtxKey).(int64)
	return val, ok
}
