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

package dao

import (
	"context"
	"time"

	"github.com/ego-component/egorm"
	"gorm.io/gorm"
)

var ErrStoreNotFound = gorm.ErrRecordNotFound

type StoreDAO interface {
	FindByID(ctx context.Context, id int64) (Store, error)
	FindByHostname(ctx context.Context, hostname string) (Store, error)
	Create(ctx context.Context, s Store) (int64, error)
}

type StoreGORMDAO struct {
	db *egorm.Component
}

func NewStoreGORMDAO(db *egorm.Component) StoreDAO {
	return &StoreGORMDAO{db: db}
}

func (d *StoreGORMDAO) FindByID(ctx context.Context, id int64) (Store, error) {
	var res Store
	err := d.db.WithContext(ctx).First(&res, "id = ?", id).Error
	return res, err
}

func (d *StoreGORMDAO) FindByHostname(ctx context.Context, hostname string) (Store, error) {
	var res Store
	err := d.db.WithContext(ctx).First(&res, "hostname = ?", hostname).Error
	return res, err
}

func (d *StoreGORMDAO) Create(ctx context.Context, s Store) (int64, error) {
	now := time.Now().UnixMilli()
	s.Ctime, s.Utime = now, now
	err := d.db.WithContext(ctx).Create(&s).Error
	return s.Id, err
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Store{})
}

type Store struct {
	Id       int64  `gorm:"primaryKey;autoIncrement;comment:店铺自增ID"`
	Name     string `gorm:"type:varchar(255);not null;comment:店铺名称"`
	Hostname string `gorm:"type:varchar(255);not null;uniqueIndex:uniq_hostname;comment:店铺域名"`
	Currency string `gorm:"type:varchar(8);not null;comment:币种, ISO 4217"`
	Ctime    int64
	Utime    int64
}
