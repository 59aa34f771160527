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

// Store 站点维度的租户, 商品、购物车、订单、优惠券都挂在某个 Store 之下
type Store struct {
	ID       int64
	Name     string
	Hostname string
	// Currency ISO 4217 代码, 单店铺单币种
	Currency string
	Ctime    int64
	Utime    int64
}
