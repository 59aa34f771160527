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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrMethodNotFound   = gorm.ErrRecordNotFound
	ErrShipmentNotFound = gorm.ErrRecordNotFound
)

type ShippingDAO interface {
	FindMethodByID(ctx context.Context, id int64) (ShippingMethod, error)
	FindActiveMethods(ctx context.Context, storeID int64) ([]ShippingMethod, error)
	CreateMethod(ctx context.Context, m ShippingMethod) (int64, error)
	CreateShipment(ctx context.Context, s Shipment) (int64, error)
	FindShipmentByOrderID(ctx context.Context, orderID int64) (Shipment, error)
}

type ShippingGORMDAO struct {
	db *egorm.Component
}

func NewShippingGORMDAO(db *egorm.Component) ShippingDAO {
	return &ShippingGORMDAO{db: db}
}

func (d *ShippingGORMDAO) FindMethodByID(ctx context.Context, id int64) (ShippingMethod, error) {
	var res ShippingMethod
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

func (d *ShippingGORMDAO) FindActiveMethods(ctx context.Context, storeID int64) ([]ShippingMethod, error) {
	var res []ShippingMethod
	err := d.db.WithContext(ctx).
		Where("store_id = ? AND active = ?", storeID, true).
		Order("id ASC").
		Find(&res).Error
	return res, err
}

func (d *ShippingGORMDAO) CreateMethod(ctx context.Context, m ShippingMethod) (int64, error) {
	now := time.Now()
	m.Ctime, m.Utime = now.UnixMilli(), now.UnixMilli()
	err := d.db.WithContext(ctx).Create(&m).Error
	return m.Id, err
}

func (d *ShippingGORMDAO) CreateShipment(ctx context.Context, s Shipment) (int64, error) {
	now := time.Now()
	s.Ctime, s.Utime = now.UnixMilli(), now.UnixMilli()
	err := d.db.WithContext(ctx).Create(&s).Error
	return s.Id, err
}

func (d *ShippingGORMDAO) FindShipmentByOrderID(ctx context.Context, orderID int64) (Shipment, error) {
	var res Shipment
	err := d.db.WithContext(ctx).Where("order_id = ?", orderID).First(&res).Error
	return res, err
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&ShippingMethod{}, &Shipment{})
}

type ShippingMethod struct {
	Id                      int64               `gorm:"primaryKey;autoIncrement;comment:配送方式自增ID"`
	StoreId                 int64               `gorm:"not null;index:idx_store_id;comment:所属店铺ID"`
	Kind                    string              `gorm:"type:varchar(64);not null;comment:策略种类, 如 flat_rate"`
	Name                    string              `gorm:"type:varchar(255);not null;comment:配送方式名称"`
	Rate                    decimal.Decimal     `gorm:"type:decimal(10,2);not null;default:0;comment:基础运费"`
	FreeShippingAboveAmount decimal.NullDecimal `gorm:"type:decimal(10,2);comment:满额免邮阈值,NULL表示不提供"`
	GenerateLabel           bool                `gorm:"not null;default:false;comment:是否生成面单"`
	Active                  bool                `gorm:"not null;default:true;comment:是否可用"`
	Ctime                   int64
	Utime                   int64
}

type Shipment struct {
	Id           int64           `gorm:"primaryKey;autoIncrement;comment:运单自增ID"`
	OrderId      int64           `gorm:"not null;uniqueIndex:uniq_shipment_order;comment:所属订单ID, 一单一运单"`
	MethodId     int64           `gorm:"not null;comment:使用的配送方式ID"`
	Kind         string          `gorm:"type:varchar(64);not null;comment:策略种类快照"`
	Rate         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0;comment:运费快照"`
	TrackingCode string          `gorm:"type:varchar(255);not null;default:'';comment:物流单号, 可为空"`
	Ctime        int64
	Utime        int64
}
