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
	"errors"
	"time"

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrCartNotFound = gorm.ErrRecordNotFound
	ErrLineNotFound = gorm.ErrRecordNotFound
)

const (
	statusOpen            uint8 = 1
	statusAwaitingPayment uint8 = 2
	statusPaid            uint8 = 3
	statusCanceled        uint8 = 4
	statusReplaced        uint8 = 5
)

type CartDAO interface {
	FindByID(ctx context.Context, id int64) (Cart, error)
	FindOpenByKey(ctx context.Context, openKey string) (Cart, error)
	// CreateOpen 创建开放态购物车。并发撞唯一键时输家直接改为按键查询
	CreateOpen(ctx context.Context, c Cart) (Cart, error)
	UpdateCoupon(ctx context.Context, cartID, couponID int64) error
	AssignOwner(ctx context.Context, cartID, uid int64, openKey string) error

	FindLines(ctx context.Context, cartID int64) ([]CartLine, error)
	CreateLine(ctx context.Context, cartID, variantID, quantity int64) error
	IncrLineQuantity(ctx context.Context, cartID, variantID int64) error
	FindLine(ctx context.Context, cartID, variantID int64) (CartLine, error)
	SetLineQuantity(ctx context.Context, cartID, variantID, quantity int64) error
	DeleteLine(ctx context.Context, cartID, variantID int64) error
	DeleteLinesByVariantIDs(ctx context.Context, cartID int64, variantIDs []int64) error

	MarkAwaitingPayment(ctx context.Context, cartID int64) error
	MarkPaid(ctx context.Context, cartID int64) error
	MarkReplaced(ctx context.Context, cartID int64) error
	MarkCanceled(ctx context.Context, cartID int64) error
	// Reopen 回到开放态并抢回唯一键, 已有别的开放车时报唯一键冲突
	Reopen(ctx context.Context, cartID int64, openKey string) error
	CancelOtherOpen(ctx context.Context, storeID, uid, exceptID int64) error
}

type CartGORMDAO struct {
	db *egorm.Component
}

func NewCartGORMDAO(db *egorm.Component) CartDAO {
	return &CartGORMDAO{db: db}
}

func (d *CartGORMDAO) FindByID(ctx context.Context, id int64) (Cart, error) {
	var res Cart
	err := d.db.WithContext(ctx).Where("id = ?", id).First(&res).Error
	return res, err
}

func (d *CartGORMDAO) FindOpenByKey(ctx context.Context, openKey string) (Cart, error) {
	var res Cart
	err := d.db.WithContext(ctx).Where("open_key = ?", openKey).First(&res).Error
	return res, err
}

func (d *CartGORMDAO) CreateOpen(ctx context.Context, c Cart) (Cart, error) {
	now := time.Now().UnixMilli()
	c.Ctime, c.Utime = now, now
	c.Status = statusOpen
	err := d.db.WithContext(ctx).Create(&c).Error
	if d.isMySQLUniqueIndexError(err) {
		return d.FindOpenByKey(ctx, c.OpenKey.String)
	}
	return c, err
}

func (d *CartGORMDAO) UpdateCoupon(ctx context.Context, cartID, couponID int64) error {
	return d.db.WithContext(ctx).Model(&Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]any{
			"coupon_id": couponID,
			"utime":     time.Now().UnixMilli(),
		}).Error
}

func (d *CartGORMDAO) AssignOwner(ctx context.Context, cartID, uid int64, openKey string) error {
	return d.db.WithContext(ctx).Model(&Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]any{
			"uid":      uid,
			"token":    "",
			"open_key": openKey,
			"utime":    time.Now().UnixMilli(),
		}).Error
}

func (d *CartGORMDAO) FindLines(ctx context.Context, cartID int64) ([]CartLine, error) {
	var res []CartLine
	err := d.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("id ASC").
		Find(&res).Error
	return res, err
}

func (d *CartGORMDAO) CreateLine(ctx context.Context, cartID, variantID, quantity int64) error {
	now := time.Now().UnixMilli()
	return d.db.WithContext(ctx).Create(&CartLine{
		CartId:    cartID,
		VariantId: variantID,
		Quantity:  quantity,
		Ctime:     now,
		Utime:     now,
	}).Error
}

// IncrLineQuantity 同款加一, 不存在则插入数量为一的新行
func (d *CartGORMDAO) IncrLineQuantity(ctx context.Context, cartID, variantID int64) error {
	now := time.Now().UnixMilli()
	return d.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "cart_id"}, {Name: "variant_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity": gorm.Expr("quantity + 1"),
			"utime":    now,
		}),
	}).Create(&CartLine{
		CartId:    cartID,
		VariantId: variantID,
		Quantity:  1,
		Ctime:     now,
		Utime:     now,
	}).Error
}

func (d *CartGORMDAO) FindLine(ctx context.Context, cartID, variantID int64) (CartLine, error) {
	var res CartLine
	err := d.db.WithContext(ctx).
		Where("cart_id = ? AND variant_id = ?", cartID, variantID).
		First(&res).Error
	return res, err
}

func (d *CartGORMDAO) SetLineQuantity(ctx context.Context, cartID, variantID, quantity int64) error {
	return d.db.WithContext(ctx).Model(&CartLine{}).
		Where("cart_id = ? AND variant_id = ?", cartID, variantID).
		Updates(map[string]any{
			"quantity": quantity,
			"utime":    time.Now().UnixMilli(),
		}).Error
}

func (d *CartGORMDAO) DeleteLine(ctx context.Context, cartID, variantID int64) error {
	return d.db.WithContext(ctx).
		Where("cart_id = ? AND variant_id = ?", cartID, variantID).
		Delete(&CartLine{}).Error
}

func (d *CartGORMDAO) DeleteLinesByVariantIDs(ctx context.Context, cartID int64, variantIDs []int64) error {
	if len(variantIDs) == 0 {
		return nil
	}
	return d.db.WithContext(ctx).
		Where("cart_id = ? AND variant_id IN ?", cartID, variantIDs).
		Delete(&CartLine{}).Error
}

// MarkAwaitingPayment 仅从开放态迁移, 其余状态不动
func (d *CartGORMDAO) MarkAwaitingPayment(ctx context.Context, cartID int64) error {
	return d.db.WithContext(ctx).Model(&Cart{}).
		Where("id = ? AND status = ?", cartID, statusOpen).
		Updates(map[string]any{
			"status":   statusAwaitingPayment,
			"open_key": gorm.Expr("NULL"),
			"utime":    time.Now().UnixMilli(),
		}).Error
}

// MarkPaid 已取消或已支付时不动
func (d *CartGORMDAO) MarkPaid(ctx context.Context, cartID int64) error {
	return d.db.WithContext(ctx).Model(&Cart{}).
		Where("id = ? AND status NOT IN ?", cartID, []uint8{statusCanceled, statusPaid}).
		Updates(map[string]any{
			"status":   statusPaid,
			"open_key": gorm.Expr("NULL"),
			"utime":    time.Now().UnixMilli(),
		}).Error
}

func (d *CartGORMDAO) MarkReplaced(ctx context.Context, cartID int64) error {
	return d.setStatus(ctx, cartID, statusReplaced)
}

func (d *CartGORMDAO) MarkCanceled(ctx context.Context, cartID int64) error {
	return d.setStatus(ctx, cartID, statusCanceled)
}

func (d *CartGORMDAO) setStatus(ctx context.Context, cartID int64, status uint8) error {
	return d.db.WithContext(ctx).Model(&Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]any{
			"status":   status,
			"open_key": gorm.Expr("NULL"),
			"utime":    time.Now().UnixMilli(),
		}).Error
}

func (d *CartGORMDAO) Reopen(ctx context.Context, cartID int64, openKey string) error {
	err := d.db.WithContext(ctx).Model(&Cart{}).
		Where("id = ?", cartID).
		Updates(map[string]any{
			"status":   statusOpen,
			"open_key": openKey,
			"utime":    time.Now().UnixMilli(),
		}).Error
	return err
}

func (d *CartGORMDAO) CancelOtherOpen(ctx context.Context, storeID, uid, exceptID int64) error {
	return d.db.WithContext(ctx).Model(&Cart{}).
		Where("store_id = ? AND uid = ? AND status = ? AND id <> ?", storeID, uid, statusOpen, exceptID).
		Updates(map[string]any{
			"status":   statusCanceled,
			"open_key": gorm.Expr("NULL"),
			"utime":    time.Now().UnixMilli(),
		}).Error
}

func (d *CartGORMDAO) isMySQLUniqueIndexError(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		const uniqueIndexErrNo uint16 = 1062
		if me.Number == uniqueIndexErrNo {
			return true
		}
	}
	return false
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Cart{}, &CartLine{})
}

type Cart struct {
	Id      int64  `gorm:"primaryKey;autoIncrement;comment:购物车自增ID"`
	StoreId int64  `gorm:"not null;index:idx_store_uid;comment:所属店铺ID"`
	Uid     int64  `gorm:"not null;default:0;index:idx_store_uid;comment:所属用户ID, 0表示匿名"`
	Token   string `gorm:"type:varchar(64);not null;default:'';comment:匿名令牌"`
	Status  uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:状态 1=进行中 2=待支付 3=已支付 4=已取消 5=被替换"`
	// OpenKey 仅开放态非空, 唯一索引保证同一归属只有一辆开放车
	OpenKey  sql.NullString `gorm:"type:varchar(128);uniqueIndex:uniq_open_key;comment:开放态唯一键"`
	CouponId int64          `gorm:"not null;default:0;comment:附加的优惠券ID, 0表示没有"`
	Ctime    int64
	Utime    int64
}

type CartLine struct {
	Id        int64 `gorm:"primaryKey;autoIncrement;comment:购物车行自增ID"`
	CartId    int64 `gorm:"not null;uniqueIndex:uniq_cart_variant;comment:所属购物车ID"`
	VariantId int64 `gorm:"not null;uniqueIndex:uniq_cart_variant;comment:商品变体ID"`
	Quantity  int64 `gorm:"not null;comment:数量, 至少为1"`
	Ctime     int64
	Utime     int64
}
