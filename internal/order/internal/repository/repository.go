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

package repository

import (
	"context"

	"github.com/ecodeclub/ecommerce/internal/order/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/order/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
)

type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) (domain.Order, error)
	FindByIdentifier(ctx context.Context, identifier string) (domain.Order, error)
	FindByUIDAndIdentifier(ctx context.Context, uid int64, identifier string) (domain.Order, error)
	List(ctx context.Context, offset, limit int, uid int64) ([]domain.Order, error)
	Total(ctx context.Context, uid int64) (int64, error)
	MarkPaid(ctx context.Context, orderID, couponID int64) error
	SetStatusIfNotIn(ctx context.Context, orderID int64, status domain.Status, forbidden []domain.Status) (bool, error)
	SetStatus(ctx context.Context, orderID int64, status domain.Status) error
}

func NewOrderRepository(d dao.OrderDAO) OrderRepository {
	return &orderRepository{d: d}
}

type orderRepository struct {
	d dao.OrderDAO
}

func (o *orderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	addrs := []dao.OrderAddress{
		o.toAddressEntity(order.ShippingAddress, dao.AddressKindShipping),
		o.toAddressEntity(order.BillingAddress, dao.AddressKindBilling),
	}
	lines := slice.Map(order.Lines, func(idx int, src domain.Line) dao.OrderLine {
		return o.toLineEntity(src)
	})
	oid, err := o.d.CreateOrder(ctx, o.toEntity(order), addrs, lines)
	if err != nil {
		return domain.Order{}, err
	}
	order.ID = oid
	return order, nil
}

func (o *orderRepository) FindByIdentifier(ctx context.Context, identifier string) (domain.Order, error) {
	order, err := o.d.FindByIdentifier(ctx, identifier)
	if err != nil {
		return domain.Order{}, err
	}
	return o.assemble(ctx, order)
}

func (o *orderRepository) FindByUIDAndIdentifier(ctx context.Context, uid int64, identifier string) (domain.Order, error) {
	order, err := o.d.FindByUIDAndIdentifier(ctx, uid, identifier)
	if err != nil {
		return domain.Order{}, err
	}
	return o.assemble(ctx, order)
}

func (o *orderRepository) assemble(ctx context.Context, order dao.Order) (domain.Order, error) {
	lines, err := o.d.FindLinesByOrderID(ctx, order.Id)
	if err != nil {
		return domain.Order{}, err
	}
	addrs, err := o.d.FindAddressesByOrderID(ctx, order.Id)
	if err != nil {
		return domain.Order{}, err
	}
	return o.toDomain(order, lines, addrs), nil
}

func (o *orderRepository) List(ctx context.Context, offset, limit int, uid int64) ([]domain.Order, error) {
	orders, err := o.d.List(ctx, offset, limit, uid)
	if err != nil {
		return nil, err
	}
	res := make([]domain.Order, 0, len(orders))
	for _, order := range orders {
		lines, err := o.d.FindLinesByOrderID(ctx, order.Id)
		if err != nil {
			return nil, err
		}
		res = append(res, o.toDomain(order, lines, nil))
	}
	return res, nil
}

func (o *orderRepository) Total(ctx context.Context, uid int64) (int64, error) {
	return o.d.Count(ctx, uid)
}

func (o *orderRepository) MarkPaid(ctx context.Context, orderID, couponID int64) error {
	return o.d.MarkPaid(ctx, orderID, couponID)
}

func (o *orderRepository) SetStatusIfNotIn(ctx context.Context, orderID int64, status domain.Status, forbidden []domain.Status) (bool, error) {
	return o.d.SetStatusIfNotIn(ctx, orderID, status.ToUint8(),
		slice.Map(forbidden, func(idx int, src domain.Status) uint8 {
			return src.ToUint8()
		}))
}

func (o *orderRepository) SetStatus(ctx context.Context, orderID int64, status domain.Status) error {
	return o.d.SetStatus(ctx, orderID, status.ToUint8())
}

func (o *orderRepository) toEntity(order domain.Order) dao.Order {
	return dao.Order{
		Id:                   order.ID,
		StoreId:              order.StoreID,
		Uid:                  order.UID,
		Identifier:           order.Identifier,
		CartId:               order.CartID,
		Status:               order.Status.ToUint8(),
		CouponId:             order.CouponID,
		CouponCode:           order.CouponCode,
		CouponType:           order.CouponType,
		CouponMode:           order.CouponMode,
		CouponAmount:         order.CouponAmount,
		ShippingMethodId:     order.ShippingMethodID,
		PaymentMethodId:      order.PaymentMethodID,
		Subtotal:             order.Subtotal,
		Discount:             order.Discount,
		ShippingCost:         order.ShippingCost,
		ShippingCostDiscount: order.ShippingCostDiscount,
		ShippingCostTotal:    order.ShippingCostTotal,
		Total:                order.Total,
		DatePlaced:           order.DatePlaced,
		DatePaid:             order.DatePaid,
	}
}

func (o *orderRepository) toLineEntity(line domain.Line) dao.OrderLine {
	return dao.OrderLine{
		ProductId:             line.ProductID,
		VariantId:             line.VariantID,
		Sku:                   line.SKU,
		ProductName:           line.ProductName,
		VariantName:           line.VariantName,
		Quantity:              line.Quantity,
		UnitPrice:             line.UnitPrice,
		UnitDiscount:          line.UnitDiscount,
		UnitPriceWithDiscount: line.UnitPriceWithDiscount,
		Total:                 line.Total,
		Weight:                line.Weight,
		Width:                 line.Width,
		Height:                line.Height,
		Depth:                 line.Depth,
		Attrs:                 line.Attrs,
		Thumbnail:             line.Thumbnail,
	}
}

func (o *orderRepository) toAddressEntity(addr domain.Address, kind uint8) dao.OrderAddress {
	return dao.OrderAddress{
		Kind:       kind,
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

func (o *orderRepository) toDomain(order dao.Order, lines []dao.OrderLine, addrs []dao.OrderAddress) domain.Order {
	res := domain.Order{
		ID:                   order.Id,
		StoreID:              order.StoreId,
		UID:                  order.Uid,
		Identifier:           order.Identifier,
		CartID:               order.CartId,
		Status:               domain.Status(order.Status),
		CouponID:             order.CouponId,
		CouponCode:           order.CouponCode,
		CouponType:           order.CouponType,
		CouponMode:           order.CouponMode,
		CouponAmount:         order.CouponAmount,
		ShippingMethodID:     order.ShippingMethodId,
		PaymentMethodID:      order.PaymentMethodId,
		Subtotal:             order.Subtotal,
		Discount:             order.Discount,
		ShippingCost:         order.ShippingCost,
		ShippingCostDiscount: order.ShippingCostDiscount,
		ShippingCostTotal:    order.ShippingCostTotal,
		Total:                order.Total,
		DatePlaced:           order.DatePlaced,
		DatePaid:             order.DatePaid,
		Ctime:                order.Ctime,
		Utime:                order.Utime,
		Lines: slice.Map(lines, func(idx int, src dao.OrderLine) domain.Line {
			return o.toLineDomain(src)
		}),
	}
	for _, addr := range addrs {
		switch addr.Kind {
		case dao.AddressKindShipping:
			res.ShippingAddress = o.toAddressDomain(addr)
		case dao.AddressKindBilling:
			res.BillingAddress = o.toAddressDomain(addr)
		}
	}
	return res
}

func (o *orderRepository) toLineDomain(line dao.OrderLine) domain.Line {
	return domain.Line{
		ID:                    line.Id,
		OrderID:               line.OrderId,
		ProductID:             line.ProductId,
		VariantID:             line.VariantId,
		SKU:                   line.Sku,
		ProductName:           line.ProductName,
		VariantName:           line.VariantName,
		Quantity:              line.Quantity,
		UnitPrice:             line.UnitPrice,
		UnitDiscount:          line.UnitDiscount,
		UnitPriceWithDiscount: line.UnitPriceWithDiscount,
		Total:                 line.Total,
		Weight:                line.Weight,
		Width:                 line.Width,
		Height:                line.Height,
		Depth:                 line.Depth,
		Attrs:                 line.Attrs,
		Thumbnail:             line.Thumbnail,
	}
}

func (o *orderRepository) toAddressDomain(addr dao.OrderAddress) domain.Address {
	return domain.Address{
		ID:         addr.Id,
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
