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

	"github.com/ecodeclub/ecommerce/internal/payment/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/payment/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
)

type MethodRepository interface {
	Create(ctx context.Context, m domain.Method) (int64, error)
	FindByID(ctx context.Context, id int64) (domain.Method, error)
	FindActiveByStore(ctx context.Context, storeID int64) ([]domain.Method, error)
}

func NewMethodRepository(d dao.PaymentMethodDAO) MethodRepository {
	return &methodRepository{d: d}
}

type methodRepository struct {
	d dao.PaymentMethodDAO
}

func (m *methodRepository) Create(ctx context.Context, method domain.Method) (int64, error) {
	return m.d.Create(ctx, m.toEntity(method))
}

func (m *methodRepository) FindByID(ctx context.Context, id int64) (domain.Method, error) {
	res, err := m.d.FindByID(ctx, id)
	if err != nil {
		return domain.Method{}, err
	}
	return m.toDomain(res), nil
}

func (m *methodRepository) FindActiveByStore(ctx context.Context, storeID int64) ([]domain.Method, error) {
	res, err := m.d.FindActiveByStore(ctx, storeID)
	if err != nil {
		return nil, err
	}
	return slice.Map(res, func(idx int, src dao.PaymentMethod) domain.Method {
		return m.toDomain(src)
	}), nil
}

func (m *methodRepository) toEntity(method domain.Method) dao.PaymentMethod {
	return dao.PaymentMethod{
		Id:      method.ID,
		StoreId: method.StoreID,
		Kind:    method.Kind,
		Name:    method.Name,
		Active:  method.Active,
	}
}

func (m *methodRepository) toDomain(method dao.PaymentMethod) domain.Method {
	return domain.Method{
		ID:      method.Id,
		StoreID: method.StoreId,
		Kind:    method.Kind,
		Name:    method.Name,
		Active:  method.Active,
		Ctime:   method.Ctime,
		Utime:   method.Utime,
	}
}
