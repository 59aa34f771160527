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

package shipping

import (
	"github.com/ecodeclub/ecommerce/internal/shipping/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/shipping/internal/service"
	"github.com/ecodeclub/ecommerce/internal/shipping/internal/service/strategy"
)

type (
	Service     = service.Service
	Method      = domain.Method
	Cost        = domain.Cost
	Shipment    = domain.Shipment
	Package     = domain.Package
	PackageLine = domain.PackageLine
	Destination = domain.Destination
	OrderRef    = domain.OrderRef
)

const KindFlatRate = domain.KindFlatRate

var ErrUnknownKind = strategy.ErrUnknownKind

type Module struct {
	Svc Service
}
