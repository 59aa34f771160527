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

var ErrAddressNotFound = gorm.ErrRecordNotFound

type AddressDAO interface {
	FindByIDAndUID(ctx context.Context, id, uid int64) (Address, error)
	FindByUID(ctx context.Context, uid int64) ([]Address, error)
	Create(ctx context.Context, a Address) (int64, error)
	Delete(ctx context.Context, id, uid int64) error
}

type AddressGORMDAO struct {
	db *egorm.Component
}

func NewAddressGORMDAO(db *egorm.Component) AddressDAO {
	return &AddressGORMDAO{db: db}
}

func (d *AddressGORMDAO) FindByIDAndUID(ctx context.Context, id, uid int64) (Address, error) {
	var res Address
	err := d.db.WithContext(ctx).First(&res, "id = ? AND uid = ?", id, uid).Error
	return res, err
}

func (d *AddressGORMDAO) FindByUID(ctx context.Context, uid int64) ([]Address, error) {
	var res []Address
	err := d.db.WithContext(ctx).Order("id ASC").Find(&res, "uid = ?", uid).Error
	return res, err
}

func (d *AddressGORMDAO) Create(ctx context.Context, a Address) (int64, error) {
	now := time.Now().UnixMilli()
	a.Ctime, a.Utime = now, now
	err := d.db.WithContext(ctx).Create(&a).Error
	return a.Id, err
}

func (d *AddressGORMDAO) Delete(ctx context.Context, id, uid int64) error {
	return d.db.WithContext(ctx).Delete(&Address{}, "id = ? AND uid = ?", id, uid).Error
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Address{})
}

type Address struct {
	Id         int64  `gorm:"primaryKey;autoIncrement;comment:地址自增ID"`
	Uid        int64  `gorm:"not null;index:idx_uid;comment:所属用户ID"`
	Name       string `gorm:"type:varchar(255);not null;comment:收件人"`
	Line1      string `gorm:"type:varchar(255);not null;comment:地址第一行"`
	Line2      string `gorm:"type:varchar(255);not null;comment:地址第二行"`
	City       string `gorm:"type:varchar(255);not null;comment:城市"`
	Region     string `gorm:"type:varchar(255);not null;comment:省/州"`
	PostalCode string `gorm:"type:varchar(32);not null;comment:邮编"`
	Country    string `gorm:"type:varchar(2);not null;comment:国家, ISO 3166-1 alpha-2"`
	Phone      string `gorm:"type:varchar(32);not null;comment:联系电话"`
	Ctime      int64
	Utime      int64
}
