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
	"fmt"
	"strings"

	"github.com/ecodeclub/ecommerce/internal/payment/internal/domain"
)

// Redirect 最简单的跳转式网关: 按订单号拼出收银台地址,
// 收银台页面支付完成后网关回调带回结果
type Redirect struct {
	baseURL string
}

func NewRedirect(baseURL string) *Redirect {
	return &Redirect{baseURL: strings.TrimRight(baseURL, "/")}
}

func (r *Redirect) RedirectURL(_ context.Context, ref domain.OrderRef) (string, error) {
	if ref.Identifier == "" {
		return "", fmt.Errorf("订单号为空")
	}
	return fmt.Sprintf("%s/%s", r.baseURL, ref.Identifier), nil
}

func (r *Redirect) CallbackStatus(raw string) (domain.Status, error) {
	switch raw {
	case "paid":
		return domain.StatusPaid, nil
	case "authorized":
		return domain.StatusAwaitingAuthorization, nil
	case "pending":
		return domain.StatusAwaitingConfirmation, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
	}
}
