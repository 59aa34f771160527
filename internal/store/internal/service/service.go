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

package service

import (
	"context"

	"github.com/ecodeclub/ecommerce/internal/store/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/store/internal/repository"
)

//go:generate mockgen -source=./service.go -package=storemocks -destination=../../mocks/store.mock.go -typed Service
type Service interface {
	FindByID(ctx context.Context, id int64) (domain.Store, error)
	FindByHostname(ctx context.Context, hostname string) (domain.Store, error)
	Create(ctx context.Context, s domain.Store) (int64, error)
}

func NewService(repo repository.StoreRepository) Service {
	return &service{repo: repo}
}

type service struct {
	repo repository.StoreRepository
}

func (s *service) FindByID(ctx context.Context, id int64) (domain.Store, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *service) FindByHostname(ctx context.Context, hostname string) (domain.Store, error) {
	return s.repo.FindByHostname(ctx, hostname)
}

func (s *service) Create(ctx context.Context, st domain.Store) (int64, error) {
	return s.repo.Create(ctx, st)
}
