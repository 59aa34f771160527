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

	"github.com/ecodeclub/ecommerce/internal/store/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/store/internal/repository/dao"
)

type StoreRepository interface {
	FindByID(ctx context.Context, id int64) (domain.Store, error)
	FindByHostname(ctx context.Context, hostname string) (domain.Store, error)
	Create(ctx context.Context, s domain.Store) (int64, error)
}

func NewStoreRepository(d dao.StoreDAO) StoreRepository {
	return &storeRepository{d: d}
}

type storeRepository struct {
	d dao.StoreDAO
}

func (s *storeRepository) FindByID(ctx context.Context, id int64) (domain.Store, error) {
	res, err := s.d.FindByID(ctx, id)
	if err != nil {
		return domain.Store{}, err
	}
	return s.toDomain(res), nil
}

func (s *storeRepository) FindByHostname(ctx context.Context, hostname string) (domain.Store, error) {
	res, err := s.d.FindByHostname(ctx, hostname)
	if err != nil {
		return domain.Store{}, err
	}
	return s.toDomain(res), nil
}

func (s *storeRepository) Create(ctx context.Context, st domain.Store) (int64, error) {
	return s.d.Create(ctx, dao.Store{
		Name:     st.Name,
		Hostname: st.Hostname,
		Currency: st.Currency,
	})
}

func (s *storeRepository) toDomain(st dao.Store) domain.Store {
	return domain.Store{
		ID:       st.Id,
		Name:     st.Name,
		Hostname: st.Hostname,
		Currency: st.Currency,
		Ctime:    st.Ctime,
		Utime:    st.Utime,
	}
}
