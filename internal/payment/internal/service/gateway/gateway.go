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

package gateway

import (
	"context"
	"errors"

	"github.com/ecodeclub/ecommerce/internal/payment/internal/domain"
)

var (
	ErrUnknownKind   = errors.New("未注册的支付网关类型")
	ErrUnknownStatus = errors.New("无法识别的回调状态")
)

// Gateway 一种支付网关的接入方式。
// 新的网关实现注册进 Registry 即可, 其余代码不用动
type Gateway interface {
	// RedirectURL 买家完成支付要跳转的地址
	RedirectURL(ctx context.Context, ref domain.OrderRef) (string, error)
	// CallbackStatus 把网关回调里的原始状态翻译成统一状态
	CallbackStatus(raw string) (domain.Status, error)
}

type Registry struct {
	gateways map[string]Gateway
}

func NewRegistry() *Registry {
	return &Registry{gateways: make(map[string]Gateway)}
}

func (r *Registry) Register(kind string, g Gateway) {
	r.gateways[kind] = g
}

func (r *Registry) Get(kind string) (Gateway, bool) {
	g, ok := r.gateways[kind]
	return g, ok
}
