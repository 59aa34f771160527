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

	"github.com/ecodeclub/ecommerce/internal/shipping/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/shipping/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
)

type ShippingRepository interface {
	FindMethodByID(ctx context.Context, id int64) (domain.Method, error)
	FindActiveMethods(ctx context.Context, storeID int64) ([]domain.Method, error)
	CreateMethod(ctx context.Context, m domain.Method) (int64, error)
	CreateShipment(ctx context.Context, s domain.Shipment) (int64, error)
	FindShipmentByOrderID(ctx context.Context, orderID int64) (domain.Shipment, error)
}

func NewShippingRepository(d dao.ShippingDAO) ShippingRepository {
	return &shippingRepository{d: d}
}

type shippingRepository struct {
	d dao.ShippingDAO
}

func (r *shippingRepository) FindMethodByID(ctx context.Context, id int64) (domain.Method, error) {
	m, err := r.d.FindMethodByID(ctx, id)
	if err != nil {
		return domain.Method{}, err
	}
	return r.methodToDomain(m), nil
}

func (r *shippingRepository) FindActiveMethods(ctx context.Context, storeID int64) ([]domain.Method, error) {
	ms, err := r.d.FindActiveMethods(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return slice.Map(ms, func(idx int, src dao.ShippingMethod) domain.Method {
		return r.methodToDomain(src)
	}), nil
}

func (r *shippingRepository) CreateMethod(ctx context.Context, m domain.Method) (int64, error) {
	return r.d.CreateMethod(ctx, dao.ShippingMethod{
		Id:                      m.ID,
		StoreId:                 m.StoreID,
		Kind:                    m.Kind,
		Name:                    m.Name,
		Rate:                    m.Rate,
		FreeShippingAboveAmount: m.FreeShippingAboveAmount,
		GenerateLabel:           m.GenerateLabel,
		Active:                  m.Active,
	})
}

func (r *shippingRepository) CreateShipment(ctx context.Context, s domain.Shipment) (int64, error) {
	return r.d.CreateShipment(ctx, dao.Shipment{
		Id:           s.ID,
		OrderId:      s.OrderID,
		MethodId:     s.MethodID,
		Kind:         s.Kind,
		Rate:         s.Rate,
		TrackingCode: s.TrackingCode,
	})
}

func (r *shippingRepository) FindShipmentByOrderID(ctx context.Context, orderID int64) (domain.Shipment, error) {
	s, err := r.d.FindShipmentByOrderID(ctx, orderID)
	if err != nil {
		return domain.Shipment{}, err
	}
	return domain.Shipment{
		ID:           s.Id,
		OrderID:      s.OrderId,
		MethodID:     s.MethodId,
		Kind:         s.Kind,
		Rate:         s.Rate,
		TrackingCode: s.TrackingCode,
		Ctime:        s.Ctime,
		Utime:        s.Utime,
	}, nil
}

func (r *shippingRepository) methodToDomain(m dao.ShippingMethod) domain.Method {
	return domain.Method{
		ID:                      m.Id,
		StoreID:                 m.StoreId,
		Kind:                    m.Kind,
		Name:                    m.Name,
		Rate:                    m.Rate,
		FreeShippingAboveAmount: m.FreeShippingAboveAmount,
		GenerateLabel:           m.GenerateLabel,
		Active:                  m.Active,
	}
}
