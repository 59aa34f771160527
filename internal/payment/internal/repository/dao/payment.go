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

var ErrMethodNotFound = gorm.ErrRecordNotFound

type PaymentMethodDAO interface {
	Create(ctx context.Context, m PaymentMethod) (int64, error)
	FindByID(ctx context.Context, id int64) (PaymentMethod, error)
	FindActiveByStore(ctx context.Context, storeID int64) ([]PaymentMethod, error)
}

func NewPaymentMethodGORMDAO(db *egorm.Component) PaymentMethodDAO {
	return &gormPaymentMethodDAO{db: db}
}

type gormPaymentMethodDAO struct {
	db *egorm.Component
}

func (g *gormPaymentMethodDAO) Create(ctx context.Context, m PaymentMethod) (int64, error) {
	now := time.Now().UnixMilli()
	m.Ctime, m.Utime = now, now
	err := g.db.WithContext(ctx).Create(&m).Error
	return m.Id, err
}

func (g *gormPaymentMethodDAO) FindByID(ctx context.Context, id int64) (PaymentMethod, error) {
	var res PaymentMethod
	err := g.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

func (g *gormPaymentMethodDAO) FindActiveByStore(ctx context.Context, storeID int64) ([]PaymentMethod, error) {
	var res []PaymentMethod
	err := g.db.WithContext(ctx).
		Where("store_id = ? AND active = ?", storeID, true).
		Order("id ASC").
		Find(&res).Error
	return res, err
}

type PaymentMethod struct {
	Id      int64  `gorm:"primaryKey;autoIncrement;comment:支付方式自增ID"`
	StoreId int64  `gorm:"not null;index:idx_store_id;comment:商店ID"`
	Kind    string `gorm:"type:varchar(63);not null;comment:网关类型"`
	Name    string `gorm:"type:varchar(255);not null;comment:展示名称"`
	Active  bool   `gorm:"not null;default:true;comment:是否启用"`
	Ctime   int64
	Utime   int64
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&PaymentMethod{})
}
