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

var ErrCouponNotFound = gorm.ErrRecordNotFound

type CouponDAO interface {
	FindByID(ctx context.Context, id int64) (Coupon, error)
	FindByCode(ctx context.Context, code string) (Coupon, error)
	LatestActiveAutoAssign(ctx context.Context, now int64) (Coupon, error)
	Create(ctx context.Context, c Coupon) (int64, error)
	List(ctx context.Context, offset, limit int) ([]Coupon, error)
	Count(ctx context.Context) (int64, error)
	IncrTimesAddedToCart(ctx context.Context, id int64) error
	IncrTimesUsed(ctx context.Context, id int64) error
}

type CouponGORMDAO struct {
	db *egorm.Component
}

func NewCouponGORMDAO(db *egorm.Component) CouponDAO {
	return &CouponGORMDAO{db: db}
}

func (d *CouponGORMDAO) FindByID(ctx context.Context, id int64) (Coupon, error) {
	var res Coupon
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

// FindByCode 入库时已全大写, 这里再做一次大小写不敏感兜底
func (d *CouponGORMDAO) FindByCode(ctx context.Context, code string) (Coupon, error) {
	var res Coupon
	err := d.db.WithContext(ctx).Where("UPPER(code) = UPPER(?)", code).First(&res).Error
	return res, err
}

func (d *CouponGORMDAO) LatestActiveAutoAssign(ctx context.Context, now int64) (Coupon, error) {
	var res Coupon
	err := d.db.WithContext(ctx).
		Where("auto_assign = ? AND active = ?", true, true).
		Where("(valid_from = 0 OR valid_from <= ?) AND (valid_until = 0 OR valid_until >= ?)", now, now).
		Where("usage_limit IS NULL OR times_used < usage_limit").
		Order("ctime DESC").
		First(&res).Error
	return res, err
}

func (d *CouponGORMDAO) Create(ctx context.Context, c Coupon) (int64, error) {
	now := time.Now()
	c.Ctime, c.Utime = now.UnixMilli(), now.UnixMilli()
	err := d.db.WithContext(ctx).Create(&c).Error
	return c.Id, err
}

func (d *CouponGORMDAO) List(ctx context.Context, offset, limit int) ([]Coupon, error) {
	var res []Coupon
	err := d.db.WithContext(ctx).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (d *CouponGORMDAO) Count(ctx context.Context) (int64, error) {
	var count int64
	err := d.db.WithContext(ctx).Model(&Coupon{}).Count(&count).Error
	return count, err
}

func (d *CouponGORMDAO) IncrTimesAddedToCart(ctx context.Context, id int64) error {
	return d.db.WithContext(ctx).Model(&Coupon{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"times_added_to_cart": gorm.Expr("times_added_to_cart + 1"),
			"utime":               time.Now().UnixMilli(),
		}).Error
}

// IncrTimesUsed 原子自增, 并发支付同一优惠券时不会丢更新
func (d *CouponGORMDAO) IncrTimesUsed(ctx context.Context, id int64) error {
	return d.db.WithContext(ctx).Model(&Coupon{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"times_used": gorm.Expr("times_used + 1"),
			"utime":      time.Now().UnixMilli(),
		}).Error
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Coupon{})
}

type Coupon struct {
	Id               int64                    `gorm:"primaryKey;autoIncrement;comment:优惠券自增ID"`
	Name             string                   `gorm:"type:varchar(255);not null;comment:优惠券名称"`
	Code             string                   `gorm:"type:varchar(64);not null;uniqueIndex:uniq_coupon_code;comment:优惠码, 全大写"`
	Type             uint8                    `gorm:"type:tinyint unsigned;not null;default:1;comment:类型 1=整单优惠"`
	Mode             uint8                    `gorm:"type:tinyint unsigned;not null;default:1;comment:方式 1=固定金额 2=百分比"`
	Amount           decimal.Decimal          `gorm:"type:decimal(10,2);not null;comment:金额或百分比"`
	UsageLimit       sql.NullInt64            `gorm:"comment:使用次数上限,NULL表示不限"`
	TimesUsed        int64                    `gorm:"not null;default:0;comment:已使用次数"`
	TimesAddedToCart int64                    `gorm:"not null;default:0;comment:被加入购物车次数"`
	AutoAssign       bool                     `gorm:"not null;default:false;index:idx_auto_assign;comment:是否自动附加到新购物车"`
	AutoGenerated    bool                     `gorm:"not null;default:false;comment:是否批量生成"`
	Active           bool                     `gorm:"not null;default:true;comment:是否启用"`
	ValidFrom        int64                    `gorm:"not null;default:0;comment:生效时间,毫秒,0表示不限"`
	ValidUntil       int64                    `gorm:"not null;default:0;comment:失效时间,毫秒,0表示不限"`
	CategoryIds      sqlx.JsonColumn[[]int64] `gorm:"type:varchar(1024);comment:限定类目ID列表,JSON格式"`
	Ctime            int64
	Utime            int64
}
