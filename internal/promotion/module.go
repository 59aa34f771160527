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

package promotion

import (
	"github.com/ecodeclub/ecommerce/internal/promotion/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/promotion/internal/service"
	"github.com/ecodeclub/ecommerce/internal/promotion/internal/web"
)

type (
	AdminHandler = web.AdminHandler
	Service      = service.Service
	Coupon       = domain.Coupon
	PricedLine   = domain.PricedLine
	Type         = domain.Type
	Mode         = domain.Mode
)

const (
	TypeOrderTotal = domain.TypeOrderTotal
	ModeFixed      = domain.ModeFixed
	ModePercentage = domain.ModePercentage
)

var (
	ErrInvalidCode = domain.ErrInvalidCode

	NormalizeCode = domain.NormalizeCode
	Subtotal      = domain.Subtotal
)

type Module struct {
	Svc      Service
	AdminHdl *AdminHandler
}
