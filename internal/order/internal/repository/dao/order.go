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
	"errors"
	"time"

	"github.com/ego-component/egorm"
	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrOrderNotFound = gorm.ErrRecordNotFound
	// ErrDuplicateIdentifier 订单号撞上唯一索引, 调用方换个号重试
	ErrDuplicateIdentifier = errors.New("订单号重复")
	// ErrStatusNotChanged 状态守卫没放行, 一般表示重复的事件
	ErrStatusNotChanged = errors.New("订单状态未变更")
)

const (
	statusPaymentPending               uint8 = 1
	statusAwaitingPaymentConfirmation  uint8 = 2
	statusAwaitingPaymentAuthorization uint8 = 3
	statusPaid                         uint8 = 4
	statusShipmentGenerated            uint8 = 5
	statusShipped                      uint8 = 6
	statusDelivered                    uint8 = 7
	statusCancelled                    uint8 = 8
)

const (
	AddressKindShipping uint8 = 1
	AddressKindBilling  uint8 = 2
)

type OrderDAO interface {
	CreateOrder(ctx context.Context, o Order, addrs []OrderAddress, lines []OrderLine) (int64, error)
	FindByIdentifier(ctx context.Context, identifier string) (Order, error)
	FindByUIDAndIdentifier(ctx context.Context, uid int64, identifier string) (Order, error)
	FindLinesByOrderID(ctx context.Context, orderID int64) ([]OrderLine, error)
	FindAddressesByOrderID(ctx context.Context, orderID int64) ([]OrderAddress, error)
	List(ctx context.Context, offset, limit int, uid int64) ([]Order, error)
	Count(ctx context.Context, uid int64) (int64, error)
	// MarkPaid 单个事务: 状态守卫放行后扣库存、累计券的使用次数。
	// 守卫没放行时返回 ErrStatusNotChanged, 不产生任何副作用
	MarkPaid(ctx context.Context, orderID int64, couponID int64) error
	// SetStatusIfNotIn 状态不在禁区时更新, 返回是否真的更新了
	SetStatusIfNotIn(ctx context.Context, orderID int64, status uint8, forbidden []uint8) (bool, error)
	SetStatus(ctx context.Context, orderID int64, status uint8) error
}

func NewOrderGORMDAO(db *egorm.Component) OrderDAO {
	return &gormOrderDAO{db: db}
}

type gormOrderDAO struct {
	db *egorm.Component
}

func (g *gormOrderDAO) CreateOrder(ctx context.Context, o Order, addrs []OrderAddress, lines []OrderLine) (int64, error) {
	now := time.Now().UnixMilli()
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		o.Ctime, o.Utime = now, now
		if err := tx.Create(&o).Error; err != nil {
			if isMySQLUniqueIndexError(err) {
				return ErrDuplicateIdentifier
			}
			return err
		}
		for i := range addrs {
			addrs[i].OrderId = o.Id
			addrs[i].Ctime, addrs[i].Utime = now, now
		}
		if err := tx.Create(&addrs).Error; err != nil {
			return err
		}
		for i := range lines {
			lines[i].OrderId = o.Id
			lines[i].Ctime, lines[i].Utime = now, now
		}
		return tx.Create(&lines).Error
	})
	if err != nil {
		return 0, err
	}
	return o.Id, nil
}

func (g *gormOrderDAO) FindByIdentifier(ctx context.Context, identifier string) (Order, error) {
	var res Order
	err := g.db.WithContext(ctx).Where("identifier = ?", identifier).First(&res).Error
	return res, err
}

func (g *gormOrderDAO) FindByUIDAndIdentifier(ctx context.Context, uid int64, identifier string) (Order, error) {
	var res Order
	err := g.db.WithContext(ctx).
		Where("uid = ? AND identifier = ?", uid, identifier).
		First(&res).Error
	return res, err
}

func (g *gormOrderDAO) FindLinesByOrderID(ctx context.Context, orderID int64) ([]OrderLine, error) {
	var res []OrderLine
	err := g.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&res).Error
	return res, err
}

func (g *gormOrderDAO) FindAddressesByOrderID(ctx context.Context, orderID int64) ([]OrderAddress, error) {
	var res []OrderAddress
	err := g.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Find(&res).Error
	return res, err
}

func (g *gormOrderDAO) List(ctx context.Context, offset, limit int, uid int64) ([]Order, error) {
	var res []Order
	err := g.db.WithContext(ctx).
		Where("uid = ?", uid).
		Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&res).Error
	return res, err
}

func (g *gormOrderDAO) Count(ctx context.Context, uid int64) (int64, error) {
	var res int64
	err := g.db.WithContext(ctx).Model(&Order{}).
		Where("uid = ?", uid).
		Count(&res).Error
	return res, err
}

func (g *gormOrderDAO) MarkPaid(ctx context.Context, orderID int64, couponID int64) error {
	now := time.Now().UnixMilli()
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 状态守卫同时就是幂等保障: 并发的已支付事件只有一个能改到行
		res := tx.Model(&Order{}).
			Where("id = ? AND status IN ?", orderID, []uint8{
				statusPaymentPending,
				statusAwaitingPaymentConfirmation,
				statusAwaitingPaymentAuthorization,
			}).
			Updates(map[string]any{
				"status":    statusPaid,
				"date_paid": now,
				"utime":     now,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStatusNotChanged
		}
		var lines []OrderLine
		if err := tx.Where("order_id = ?", orderID).Find(&lines).Error; err != nil {
			return err
		}
		for _, line := range lines {
			err := tx.Table("product_variants").
				Where("id = ?", line.VariantId).
				Updates(map[string]any{
					"stock": gorm.Expr("stock - ?", line.Quantity),
					"utime": now,
				}).Error
			if err != nil {
				return err
			}
		}
		if couponID != 0 {
			err := tx.Table("coupons").
				Where("id = ?", couponID).
				Updates(map[string]any{
					"times_used": gorm.Expr("times_used + 1"),
					"utime":      now,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (g *gormOrderDAO) SetStatusIfNotIn(ctx context.Context, orderID int64, status uint8, forbidden []uint8) (bool, error) {
	res := g.db.WithContext(ctx).Model(&Order{}).
		Where("id = ? AND status NOT IN ?", orderID, forbidden).
		Updates(map[string]any{
			"status": status,
			"utime":  time.Now().UnixMilli(),
		})
	return res.RowsAffected > 0, res.Error
}

func (g *gormOrderDAO) SetStatus(ctx context.Context, orderID int64, status uint8) error {
	return g.db.WithContext(ctx).Model(&Order{}).
		Where("id = ?", orderID).
		Updates(map[string]any{
			"status": status,
			"utime":  time.Now().UnixMilli(),
		}).Error
}

const uniqueIndexErrNo uint16 = 1062

func isMySQLUniqueIndexError(err error) bool {
	var me *mysql.MySQLError
	if errors.As(err, &me) {
		return me.Number == uniqueIndexErrNo
	}
	return false
}

type Order struct {
	Id         int64  `gorm:"primaryKey;autoIncrement;comment:订单自增ID"`
	StoreId    int64  `gorm:"not null;index:idx_store_id;comment:商店ID"`
	Uid        int64  `gorm:"not null;index:idx_uid;comment:买家ID"`
	Identifier string `gorm:"type:varchar(16);not null;uniqueIndex:uniq_order_identifier;comment:对外订单号"`
	CartId     int64  `gorm:"not null;comment:来源购物车ID"`
	Status     uint8  `gorm:"type:tinyint unsigned;not null;default:1;comment:订单状态 1=待支付 2=待支付确认 3=待支付请款 4=已支付 5=已生成运单 6=已发货 7=已送达 8=已取消"`

	CouponId     int64           `gorm:"not null;default:0;comment:优惠券ID, 0表示未用券"`
	CouponCode   string          `gorm:"type:varchar(63);not null;default:'';comment:券码快照"`
	CouponType   uint8           `gorm:"type:tinyint unsigned;not null;default:0;comment:券类型快照"`
	CouponMode   uint8           `gorm:"type:tinyint unsigned;not null;default:0;comment:券模式快照"`
	CouponAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0;comment:券面额快照"`

	ShippingMethodId int64 `gorm:"not null;default:0;comment:配送方式ID"`
	PaymentMethodId  int64 `gorm:"not null;default:0;comment:支付方式ID"`

	Subtotal             decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:商品小计"`
	Discount             decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:优惠金额"`
	ShippingCost         decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:运费原价"`
	ShippingCostDiscount decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:运费减免"`
	ShippingCostTotal    decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:运费实收"`
	Total                decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:订单总价"`

	DatePlaced int64 `gorm:"not null;comment:下单时间"`
	DatePaid   int64 `gorm:"comment:支付时间, 0表示未支付"`
	Ctime      int64
	Utime      int64
}

func (Order) TableName() string {
	return "orders"
}

type OrderLine struct {
	Id          int64  `gorm:"primaryKey;autoIncrement;comment:订单行自增ID"`
	OrderId     int64  `gorm:"not null;index:idx_order_id;comment:订单自增ID"`
	ProductId   int64  `gorm:"not null;comment:商品ID"`
	VariantId   int64  `gorm:"not null;index:idx_variant_id;comment:变体ID"`
	Sku         string `gorm:"type:varchar(63);not null;comment:SKU快照"`
	ProductName string `gorm:"type:varchar(255);not null;comment:商品名快照"`
	VariantName string `gorm:"type:varchar(255);not null;comment:变体描述快照"`
	Quantity    int64  `gorm:"not null;comment:购买数量"`

	UnitPrice             decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:原始单价"`
	UnitDiscount          decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:单件优惠"`
	UnitPriceWithDiscount decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:优惠后单价"`
	Total                 decimal.Decimal `gorm:"type:decimal(10,2);not null;comment:行总价"`

	Weight decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0;comment:单件重量, 千克"`
	Width  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0;comment:宽, 厘米"`
	Height decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0;comment:高, 厘米"`
	Depth  decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0;comment:长, 厘米"`
	Attrs  string          `gorm:"type:text;comment:变体属性快照, JSON"`

	Thumbnail string `gorm:"type:varchar(511);not null;default:'';comment:缩略图地址, 可为空"`
	Ctime     int64
	Utime     int64
}

func (OrderLine) TableName() string {
	return "order_lines"
}

type OrderAddress struct {
	Id         int64  `gorm:"primaryKey;autoIncrement;comment:订单地址自增ID"`
	OrderId    int64  `gorm:"not null;index:idx_order_id;comment:订单自增ID"`
	Kind       uint8  `gorm:"type:tinyint unsigned;not null;comment:地址用途 1=收货 2=账单"`
	Name       string `gorm:"type:varchar(255);not null;comment:收件人"`
	Line1      string `gorm:"type:varchar(255);not null;comment:地址行1"`
	Line2      string `gorm:"type:varchar(255);not null;default:'';comment:地址行2"`
	City       string `gorm:"type:varchar(127);not null;comment:城市"`
	Region     string `gorm:"type:varchar(127);not null;default:'';comment:省/州"`
	PostalCode string `gorm:"type:varchar(31);not null;comment:邮编"`
	Country    string `gorm:"type:varchar(2);not null;comment:国家二字码"`
	Phone      string `gorm:"type:varchar(31);not null;default:'';comment:联系电话"`
	Ctime      int64
	Utime      int64
}

func (OrderAddress) TableName() string {
	return "order_addresses"
}

func InitTables(db *egorm.Component) error {
	return db.AutoMigrate(&Order{}, &OrderLine{}, &OrderAddress{})
}
