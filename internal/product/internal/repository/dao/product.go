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
	"database/sql"
	"time"

	"github.com/ecodeclub/ekit/sqlx"
	"github.com/ego-component/egorm"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = gorm.ErrRecordNotFound
	ErrVariantNotFound = gorm.ErrRecordNotFound
)

type ProductDAO interface {
	FindByID(ctx context.Context, id int64) (Product, error)
	FindBySlug(ctx context.Context, storeID int64, slug string) (Product, error)
	FindByIDs(ctx context.Context, ids []int64) ([]Product, error)
	List(ctx context.Context, storeID int64, offset, limit int) ([]Product, error)
	Count(ctx context.Context, storeID int64) (int64, error)
	FindVariantByID(ctx context.Context, id int64) (ProductVariant, error)
	FindVariantsByIDs(ctx context.Context, ids []int64) ([]ProductVariant, error)
	FindVariantsByProductID(ctx context.Context, pid int64) ([]ProductVariant, error)
	CreateProduct(ctx context.Context, p Product) (int64, error)
	CreateVariant(ctx context.Context, v ProductVariant) (int64, error)
}

type ProductGORMDAO struct {
	db *egorm.Component
}

func NewProductGORMDAO(db *egorm.Component) ProductDAO {
	return &ProductGORMDAO{db: db}
}

func (d *ProductGORMDAO) FindByID(ctx context.Context, id int64) (Product, error) {
	var res Product
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindBySlug(ctx context.Context, storeID int64, slug string) (Product, error) {
	var res Product
	err := d.db.WithContext(ctx).
		Where("store_id = ? AND slug = ?", storeID, slug).
		First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindByIDs(ctx context.Context, ids []int64) ([]Product, error) {
	var res []Product
	err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&res).Error
	return res, err
}

func (d *ProductGORMDAO) List(ctx context.Context, storeID int64, offset, limit int) ([]Product, error) {
	var res []Product
	err := d.db.WithContext(ctx).
		Where("store_id = ? AND active = ?", storeID, true).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (d *ProductGORMDAO) Count(ctx context.Context, storeID int64) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&Product{}).
		Where("store_id = ? AND active = ?", storeID, true).
		Count(&count).Error
	return count, err
}

func (d *ProductGORMDAO) FindVariantByID(ctx context.Context, id int64) (ProductVariant, error) {
	var res ProductVariant
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindVariantsByIDs(ctx context.Context, ids []int64) ([]ProductVariant, error) {
	var res []ProductVariant
	err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&res).Error
	return res, err
}

func (d *ProductGORMDAO) FindVariantsByProductID(ctx context.Context, pid int64) ([]ProductVariant, error) {
	var res []ProductVariant
	err := d.db.WithContext(ctx).
		Where("product_id = ?", pid).
		Order("id ASC").
		Find(&res).Error
	return res, err
}

func (d *ProductGORMDAO) CreateProduct(ctx context.Context, p Product) (int64, error) {
	now := time.Now()
	p.Ctime, p.Utime = now.UnixMilli(), now.UnixMilli()
	err := d.db.WithContext(ctx).Create(&p).Error
	return p.Id, err
}

func (d *ProductGORMDAO) CreateVariant(ctx context.Context, v ProductVariant) (int64, error) {
	now := time.Now()
	v.Ctime, v.Utime = now.UnixMilli(), now.UnixMilli()
	err := d.db.WithContext(ctx).Create(&v).Error
	return v.Id, err
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Product{}, &ProductVariant{})
}

type Product struct {
	Id                int64                    `gorm:"primaryKey;autoIncrement;comment:商品自增ID"`
	StoreId           int64                    `gorm:"not null;uniqueIndex:uniq_store_slug;comment:所属店铺ID"`
	Slug              string                   `gorm:"type:varchar(255);not null;uniqueIndex:uniq_store_slug;comment:商品slug, 店铺内唯一"`
	Name              string                   `gorm:"type:varchar(255);not null;comment:商品名称"`
	Description       string                   `gorm:"not null;comment:商品描述"`
	Active            bool                     `gorm:"not null;default:false;comment:是否上架"`
	PurchasingEnabled bool                     `gorm:"not null;default:true;comment:是否开放购买"`
	PreviewEnabled    bool                     `gorm:"not null;default:false;comment:未上架时是否允许预览"`
	Price             decimal.Decimal          `gorm:"type:decimal(10,2);not null;comment:单价"`
	CategoryIds       sqlx.JsonColumn[[]int64] `gorm:"type:varchar(1024);comment:类目ID列表,JSON格式"`
	Ctime             int64
	Utime             int64
}

type ProductVariant struct {
	Id        int64           `gorm:"primaryKey;autoIncrement;comment:变体自增ID"`
	ProductId int64           `gorm:"not null;index:idx_product_id;comment:所属商品ID"`
	SKU       string          `gorm:"column:sku;type:varchar(255);not null;uniqueIndex:uniq_variant_sku;comment:变体SKU"`
	Name      string          `gorm:"type:varchar(255);not null;comment:变体名称"`
	Active    bool            `gorm:"not null;default:true;comment:变体是否可售"`
	Stock     int64           `gorm:"not null;default:0;comment:库存数量"`
	Weight    decimal.Decimal `gorm:"type:decimal(10,3);not null;default:0;comment:重量, 千克"`
	Width     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0;comment:宽, 厘米"`
	Height    decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0;comment:高, 厘米"`
	Depth     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0;comment:长, 厘米"`
	Attrs     sql.NullString  `gorm:"comment:变体销售属性,JSON格式"`
	Image     string          `gorm:"type:varchar(512);not null;default:'';comment:变体主图,CDN绝对路径"`
	Ctime     int64
	Utime     int64
}
