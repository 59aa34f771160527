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

package web

import (
	"github.com/ecodeclub/ecommerce/internal/order/internal/domain"
	"github.com/ecodeclub/ekit/slice"
)

type PlaceOrderReq struct {
	// RequestID 客户端生成, 用于创建订单的幂等去重
	RequestID         string `json:"requestId"`
	ShippingAddressID int64  `json:"shippingAddressId"`
	BillingAddressID  int64  `json:"billingAddressId"`
	ShippingMethodID  int64  `json:"shippingMethodId"`
	PaymentMethodID   int64  `json:"paymentMethodId"`
}

type PlaceOrderResp struct {
	OrderIdentifier string `json:"orderIdentifier"`
	// RedirectURL 买家完成支付要跳转的地址
	RedirectURL string `json:"redirectUrl"`
}

type OrderStatusReq struct {
	OrderIdentifier string `json:"orderIdentifier"`
}

type OrderStatusResp struct {
	Status uint8 `json:"status"`
}

type ListOrdersReq struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type ListOrdersResp struct {
	Total  int64   `json:"total"`
	Orders []Order `json:"orders"`
}

type OrderDetailReq struct {
	OrderIdentifier string `json:"orderIdentifier"`
}

type OrderDetailResp struct {
	Order Order `json:"order"`
}

type CancelOrderReq struct {
	OrderIdentifier string `json:"orderIdentifier"`
}

type Order struct {
	Identifier           string      `json:"identifier"`
	Status               uint8       `json:"status"`
	CouponCode           string      `json:"couponCode,omitempty"`
	Subtotal             string      `json:"subtotal"`
	Discount             string      `json:"discount"`
	ShippingCost         string      `json:"shippingCost"`
	ShippingCostDiscount string      `json:"shippingCostDiscount"`
	ShippingCostTotal    string      `json:"shippingCostTotal"`
	Total                string      `json:"total"`
	ShippingAddress      *Address    `json:"shippingAddress,omitempty"`
	BillingAddress       *Address    `json:"billingAddress,omitempty"`
	Lines                []OrderLine `json:"lines"`
	DatePlaced           int64       `json:"datePlaced"`
	DatePaid             int64       `json:"datePaid,omitempty"`
}

type OrderLine struct {
	SKU                   string `json:"sku"`
	ProductName           string `json:"productName"`
	VariantName           string `json:"variantName"`
	Quantity              int64  `json:"quantity"`
	UnitPrice             string `json:"unitPrice"`
	UnitDiscount          string `json:"unitDiscount"`
	UnitPriceWithDiscount string `json:"unitPriceWithDiscount"`
	Total                 string `json:"total"`
	Thumbnail             string `json:"thumbnail,omitempty"`
}

type Address struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Phone      string `json:"phone,omitempty"`
}

func toOrderVO(order domain.Order, withAddresses bool) Order {
	vo := Order{
		Identifier:           order.Identifier,
		Status:               order.Status.ToUint8(),
		CouponCode:           order.CouponCode,
		Subtotal:             order.Subtotal.StringFixed(2),
		Discount:             order.Discount.StringFixed(2),
		ShippingCost:         order.ShippingCost.StringFixed(2),
		ShippingCostDiscount: order.ShippingCostDiscount.StringFixed(2),
		ShippingCostTotal:    order.ShippingCostTotal.StringFixed(2),
		Total:                order.Total.StringFixed(2),
		DatePlaced:           order.DatePlaced,
		DatePaid:             order.DatePaid,
		Lines: slice.Map(order.Lines, func(idx int, src domain.Line) OrderLine {
			return OrderLine{
				SKU:                   src.SKU,
				ProductName:           src.ProductName,
				VariantName:           src.VariantName,
				Quantity:              src.Quantity,
				UnitPrice:             src.UnitPrice.StringFixed(2),
				UnitDiscount:          src.UnitDiscount.StringFixed(2),
				UnitPriceWithDiscount: src.UnitPriceWithDiscount.StringFixed(2),
				Total:                 src.Total.StringFixed(2),
				Thumbnail:             src.Thumbnail,
			}
		}),
	}
	if withAddresses {
		vo.ShippingAddress = toAddressVO(order.ShippingAddress)
		vo.BillingAddress = toAddressVO(order.BillingAddress)
	}
	return vo
}

func toAddressVO(addr domain.Address) *Address {
	return &Address{
		Name:       addr.Name,
		Line1:      addr.Line1,
		Line2:      addr.Line2,
		City:       addr.City,
		Region:     addr.Region,
		PostalCode: addr.PostalCode,
		Country:    addr.Country,
		Phone:      addr.Phone,
	}
}
