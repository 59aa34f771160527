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

	"github.com/ecodeclub/ecommerce/internal/address/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/address/internal/repository/dao"
	"github.com/ecodeclub/ekit/slice"
)

type AddressRepository interface {
	FindByIDAndUID(ctx context.Context, id, uid int64) (domain.Address, error)
	FindByUID(ctx context.Context, uid int64) ([]domain.Address, error)
	Create(ctx context.Context, a domain.Address) (int64, error)
	Delete(ctx context.Context, id, uid int64) error
}

func NewAddressRepository(d dao.AddressDAO) AddressRepository {
	return &addressRepository{d: d}
}

type addressRepository struct {
	d dao.AddressDAO
}

func (r *addressRepository) FindByIDAndUID(ctx context.Context, id, uid int64) (domain.Address, error) {
	res, err := r.d.FindByIDAndUID(ctx, id, uid)
	if err != nil {
		return domain.Address{}, err
	}
	return r.toDomain(res), nil
}

func (r *addressRepository) FindByUID(ctx context.Context, uid int64) ([]domain.Address, error) {
	res, err := r.d.FindByUID(ctx, uid)
	if err != nil {
		return nil, err
	}
	return slice.Map(res, func(idx int, src dao.Address) domain.Address {
		return r.toDomain(src)
	}), nil
}

func (r *addressRepository) Create(ctx context.Context, a domain.Address) (int64, error) {
	return r.d.Create(ctx, r.toEntity(a))
}

func (r *addressRepository) Delete(ctx context.Context, id, uid int64) error {
	return r.d.Delete(ctx, id, uid)
}

func (r *addressRepository) toDomain(a dao.Address) domain.Address {
	return domain.Address{
		ID:         a.Id,
		UID:        a.Uid,
		Name:       a.Name,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		Region:     a.Region,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Phone:      a.Phone,
		Ctime:      a.Ctime,
		Utime:      a.Utime,
	}
}

func (r *addressRepository) toEntity(a domain.Address) dao.Address {
	return dao.Address{
		Id:         a.ID,
		Uid:        a.UID,
		Name:       a.Name,
		Line1:      a.Line1,
		Line2:      a.Line2,
		City:       a.City,
		Region:     a.Region,
		PostalCode: a.PostalCode,
		Country:    a.Country,
		Phone:      a.Phone,
	}
}
