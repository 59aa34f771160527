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
	"errors"
	"fmt"
	"time"

	"github.com/ecodeclub/ecommerce/internal/address"
	"github.com/ecodeclub/ecommerce/internal/cart"
	"github.com/ecodeclub/ecommerce/internal/order/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/order/internal/event"
	"github.com/ecodeclub/ecommerce/internal/order/internal/repository"
	"github.com/ecodeclub/ecommerce/internal/order/internal/repository/dao"
	"github.com/ecodeclub/ecommerce/internal/pkg/identifier"
	"github.com/ecodeclub/ecommerce/internal/product"
	"github.com/ecodeclub/ecommerce/internal/promotion"
	"github.com/ecodeclub/ecommerce/internal/shipping"
	"github.com/gotomicro/ego/core/elog"
	"golang.org/x/sync/errgroup"
)

var (
	ErrEmptyCart                 = errors.New("购物车是空的")
	ErrAddressNotOwned           = errors.New("地址不存在或不属于当前用户")
	ErrShippingMethodUnavailable = errors.New("配送方式不可用")
	ErrCouponExpired             = errors.New("优惠券已失效, 已从购物车移除")
	ErrLinesRemoved              = errors.New("部分商品已不可购买, 已从购物车移除")
	ErrNotCancelable             = errors.New("订单当前状态不可取消")
	ErrOrderNotFound             = dao.ErrOrderNotFound
)

// thumbnailSpec 订单行缩略图的裁剪规格
const thumbnailSpec = "fill-200x200"

// 订单号撞唯一索引的重试次数
const maxIdentifierAttempts = 3

type PlaceOrderInput struct {
	StoreID           int64
	UID               int64
	IsStaff           bool
	ShippingAddressID int64
	BillingAddressID  int64
	ShippingMethodID  int64
	PaymentMethodID   int64
}

//go:generate mockgen -source=./service.go -package=ordermocks -destination=../../mocks/order.mock.go -typed Service
type Service interface {
	// PlaceOrder 校验前置条件后在单个事务里落单。
	// 不扣库存、不累计券的使用次数、不生成运单, 都等已支付事件
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (domain.Order, error)
	FindByUIDAndIdentifier(ctx context.Context, uid int64, orderIdentifier string) (domain.Order, error)
	List(ctx context.Context, offset, limit int, uid int64) ([]domain.Order, int64, error)
	// CancelOrder 买家主动取消, 只允许未支付的状态
	CancelOrder(ctx context.Context, uid int64, orderIdentifier string) error

	// OrderPaid 幂等: 重复的已支付事件不产生第二次副作用
	OrderPaid(ctx context.Context, orderIdentifier string) error
	OrderAwaitingPaymentAuthorization(ctx context.Context, orderIdentifier string) error
	OrderAwaitingPaymentConfirmation(ctx context.Context, orderIdentifier string) error
	// OrderShipmentGenerated 幂等的状态推进
	OrderShipmentGenerated(ctx context.Context, orderIdentifier string) error
	// OrderCancelled 无条件置为已取消, 不回滚库存和券
	OrderCancelled(ctx context.Context, orderIdentifier string) error
}

func NewService(repo repository.OrderRepository,
	cartSvc cart.Service,
	addressSvc address.Service,
	shippingSvc shipping.Service,
	tg product.ThumbnailGenerator,
	idGen *identifier.Generator,
	producer event.OrderEventProducer) Service {
	return &service{
		repo:        repo,
		cartSvc:     cartSvc,
		addressSvc:  addressSvc,
		shippingSvc: shippingSvc,
		tg:          tg,
		idGen:       idGen,
		producer:    producer,
		logger:      elog.DefaultLogger,
	}
}

type service struct {
	repo        repository.OrderRepository
	cartSvc     cart.Service
	addressSvc  address.Service
	shippingSvc shipping.Service
	tg          product.ThumbnailGenerator
	idGen       *identifier.Generator
	producer    event.OrderEventProducer
	logger      *elog.Component
}

func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (domain.Order, error) {
	owner := cart.Owner{StoreID: input.StoreID, UID: input.UID}
	c, err := s.cartSvc.GetOrCreateActiveCart(ctx, owner)
	if err != nil {
		return domain.Order{}, fmt.Errorf("获取购物车失败: %w", err)
	}
	if c.ID == 0 || len(c.Lines) == 0 {
		return domain.Order{}, ErrEmptyCart
	}

	shipAddr, err := s.addressSvc.FindByIDAndUID(ctx, input.ShippingAddressID, input.UID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%w: 收货地址 %d", ErrAddressNotOwned, input.ShippingAddressID)
	}
	billAddr, err := s.addressSvc.FindByIDAndUID(ctx, input.BillingAddressID, input.UID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("%w: 账单地址 %d", ErrAddressNotOwned, input.BillingAddressID)
	}

	method, err := s.shippingSvc.FindMethodByID(ctx, input.ShippingMethodID)
	if err != nil || !method.Active {
		return domain.Order{}, fmt.Errorf("%w: %d", ErrShippingMethodUnavailable, input.ShippingMethodID)
	}

	coupon, err := s.cartSvc.CouponFor(ctx, c)
	if err != nil {
		return domain.Order{}, fmt.Errorf("查找购物车优惠券失败: %w", err)
	}
	if coupon != nil && !coupon.IsValid(time.Now().UnixMilli()) {
		// 失效的券先摘掉再中止, 买家下次提交时不会再被它挡住
		if _, derr := s.cartSvc.UpdateCartCoupon(ctx, owner, ""); derr != nil {
			s.logger.Error("摘除失效优惠券失败",
				elog.FieldErr(derr),
				elog.Int64("cartID", c.ID))
		}
		return domain.Order{}, fmt.Errorf("%w: %s", ErrCouponExpired, coupon.Code)
	}

	removed, err := s.cartSvc.VerifyLinesStock(ctx, c, input.IsStaff)
	if err != nil {
		return domain.Order{}, fmt.Errorf("校验库存失败: %w", err)
	}
	if len(removed) > 0 {
		return domain.Order{}, fmt.Errorf("%w: %v", ErrLinesRemoved, removed)
	}

	cost, err := s.shippingSvc.CalculateCost(ctx, method.ID, c.ShippingPackage(), shipping.Destination{
		Country:    shipAddr.Country,
		Region:     shipAddr.Region,
		PostalCode: shipAddr.PostalCode,
	}, c.CalcTotals(coupon).Total)
	if err != nil {
		return domain.Order{}, fmt.Errorf("计算运费失败: %w", err)
	}

	order := s.buildOrder(ctx, input, c, coupon, shipAddr, billAddr, cost)
	for attempt := 1; ; attempt++ {
		order, err = s.repo.Create(ctx, order)
		if err == nil {
			break
		}
		if !errors.Is(err, dao.ErrDuplicateIdentifier) || attempt >= maxIdentifierAttempts {
			return domain.Order{}, fmt.Errorf("创建订单失败: %w", err)
		}
		order.Identifier = s.idGen.Generate()
	}

	if err = s.cartSvc.MarkAwaitingPayment(ctx, c.ID); err != nil {
		s.logger.Error("购物车转入待支付失败",
			elog.FieldErr(err),
			elog.Int64("cartID", c.ID))
	}
	return order, nil
}

func (s *service) buildOrder(ctx context.Context,
	input PlaceOrderInput,
	c cart.Cart,
	coupon *promotion.Coupon,
	shipAddr, billAddr address.Address,
	cost shipping.Cost) domain.Order {
	totals := c.CalcTotalsWithShipping(coupon, cost)
	order := domain.Order{
		StoreID:              input.StoreID,
		UID:                  input.UID,
		Identifier:           s.idGen.Generate(),
		CartID:               c.ID,
		Status:               domain.StatusPaymentPending,
		ShippingMethodID:     input.ShippingMethodID,
		PaymentMethodID:      input.PaymentMethodID,
		Subtotal:             totals.Subtotal,
		Discount:             totals.Discount,
		ShippingCost:         totals.ShippingCost,
		ShippingCostDiscount: totals.ShippingCostDiscount,
		ShippingCostTotal:    totals.ShippingCostTotal,
		Total:                totals.Total,
		ShippingAddress:      s.cloneAddress(shipAddr),
		BillingAddress:       s.cloneAddress(billAddr),
		DatePlaced:           time.Now().UnixMilli(),
	}
	if coupon != nil {
		order.CouponID = coupon.ID
		order.CouponCode = coupon.Code
		order.CouponType = coupon.Type.ToUint8()
		order.CouponMode = coupon.Mode.ToUint8()
		order.CouponAmount = coupon.Amount
	}
	order.Lines = make([]domain.Line, 0, len(c.Lines))
	for _, line := range c.Lines {
		unitDiscount := c.ItemDiscount(coupon, line)
		order.Lines = append(order.Lines, domain.Line{
			ProductID:             line.ProductID,
			VariantID:             line.VariantID,
			SKU:                   line.SKU,
			ProductName:           line.ProductName,
			VariantName:           line.VariantName,
			Quantity:              line.Quantity,
			UnitPrice:             line.UnitPrice,
			UnitDiscount:          unitDiscount,
			UnitPriceWithDiscount: line.UnitPrice.Sub(unitDiscount),
			Total:                 line.Total(),
			Weight:                line.Weight,
			Width:                 line.Width,
			Height:                line.Height,
			Depth:                 line.Depth,
			Attrs:                 line.Attrs,
			Thumbnail:             s.thumbnail(ctx, line.Image),
		})
	}
	return order
}

func (s *service) cloneAddress(src address.Address) domain.Address {
	return domain.Address{
		Name:       src.Name,
		Line1:      src.Line1,
		Line2:      src.Line2,
		City:       src.City,
		Region:     src.Region,
		PostalCode: src.PostalCode,
		Country:    src.Country,
		Phone:      src.Phone,
	}
}

// thumbnail 失败只留空, 不挡下单
func (s *service) thumbnail(ctx context.Context, image string) string {
	res, err := s.tg.Generate(ctx, image, thumbnailSpec)
	if err != nil {
		if !errors.Is(err, product.ErrImageNotFound) {
			s.logger.Warn("生成订单行缩略图失败",
				elog.FieldErr(err),
				elog.String("image", image))
		}
		return ""
	}
	return res
}

func (s *service) FindByUIDAndIdentifier(ctx context.Context, uid int64, orderIdentifier string) (domain.Order, error) {
	return s.repo.FindByUIDAndIdentifier(ctx, uid, orderIdentifier)
}

func (s *service) List(ctx context.Context, offset, limit int, uid int64) ([]domain.Order, int64, error) {
	var (
		eg     errgroup.Group
		orders []domain.Order
		total  int64
	)
	eg.Go(func() error {
		var err error
		orders, err = s.repo.List(ctx, offset, limit, uid)
		return err
	})
	eg.Go(func() error {
		var err error
		total, err = s.repo.Total(ctx, uid)
		return err
	})
	return orders, total, eg.Wait()
}

func (s *service) CancelOrder(ctx context.Context, uid int64, orderIdentifier string) error {
	order, err := s.repo.FindByUIDAndIdentifier(ctx, uid, orderIdentifier)
	if err != nil {
		return fmt.Errorf("查找订单失败: %w", err)
	}
	if !order.Status.Cancelable() {
		return fmt.Errorf("%w: %s", ErrNotCancelable, orderIdentifier)
	}
	if err = s.repo.SetStatus(ctx, order.ID, domain.StatusCancelled); err != nil {
		return err
	}
	s.reopenCart(ctx, order)
	return nil
}

// reopenCart 取消未支付的订单后把购物车还给买家, 尽力而为
func (s *service) reopenCart(ctx context.Context, order domain.Order) {
	if order.CartID == 0 {
		return
	}
	c, err := s.cartSvc.FindByID(ctx, order.CartID)
	if err != nil {
		s.logger.Warn("查找订单来源购物车失败",
			elog.FieldErr(err),
			elog.Int64("cartID", order.CartID))
		return
	}
	if err = s.cartSvc.Reopen(ctx, c); err != nil {
		s.logger.Warn("重新打开购物车失败",
			elog.FieldErr(err),
			elog.Int64("cartID", order.CartID))
	}
}

func (s *service) OrderPaid(ctx context.Context, orderIdentifier string) error {
	order, err := s.repo.FindByIdentifier(ctx, orderIdentifier)
	if err != nil {
		return fmt.Errorf("订单未找到: %w", err)
	}
	err = s.repo.MarkPaid(ctx, order.ID, order.CouponID)
	if errors.Is(err, dao.ErrStatusNotChanged) {
		// 重复的已支付事件
		return nil
	}
	if err != nil {
		return fmt.Errorf("标记订单已支付失败: %w", err)
	}

	if order.ShippingMethodID != 0 {
		s.generateShipment(ctx, order)
	}

	if order.CartID != 0 {
		if err = s.cartSvc.MarkPaid(ctx, order.CartID); err != nil {
			s.logger.Error("购物车转入已支付失败",
				elog.FieldErr(err),
				elog.Int64("cartID", order.CartID))
		}
	}

	s.produce(ctx, event.OrderEvent{
		Kind:            event.KindOrderPaid,
		OrderIdentifier: order.Identifier,
		UID:             order.UID,
	})
	return nil
}

// generateShipment 运单生成失败不回滚支付, 只广播失败事件
func (s *service) generateShipment(ctx context.Context, order domain.Order) {
	_, err := s.shippingSvc.GenerateShipment(ctx, shipping.OrderRef{
		OrderID:    order.ID,
		Identifier: order.Identifier,
		MethodID:   order.ShippingMethodID,
	})
	if err != nil {
		s.logger.Error("生成运单失败",
			elog.FieldErr(err),
			elog.String("order_identifier", order.Identifier))
		s.produce(ctx, event.OrderEvent{
			Kind:            event.KindShipmentGenerationFailed,
			OrderIdentifier: order.Identifier,
			UID:             order.UID,
		})
		return
	}
	if err = s.OrderShipmentGenerated(ctx, order.Identifier); err != nil {
		s.logger.Error("推进订单到已生成运单失败",
			elog.FieldErr(err),
			elog.String("order_identifier", order.Identifier))
	}
}

func (s *service) OrderAwaitingPaymentAuthorization(ctx context.Context, orderIdentifier string) error {
	return s.awaitPayment(ctx, orderIdentifier, domain.StatusAwaitingPaymentAuthorization)
}

func (s *service) OrderAwaitingPaymentConfirmation(ctx context.Context, orderIdentifier string) error {
	return s.awaitPayment(ctx, orderIdentifier, domain.StatusAwaitingPaymentConfirmation)
}

// awaitPayment 已支付及之后的状态不允许退回待支付
func (s *service) awaitPayment(ctx context.Context, orderIdentifier string, status domain.Status) error {
	order, err := s.repo.FindByIdentifier(ctx, orderIdentifier)
	if err != nil {
		return fmt.Errorf("订单未找到: %w", err)
	}
	_, err = s.repo.SetStatusIfNotIn(ctx, order.ID, status, []domain.Status{
		domain.StatusPaid,
		domain.StatusShipmentGenerated,
		domain.StatusShipped,
		domain.StatusDelivered,
		domain.StatusCancelled,
	})
	if err != nil {
		return err
	}
	if order.CartID != 0 {
		if err = s.cartSvc.MarkAwaitingPayment(ctx, order.CartID); err != nil {
			s.logger.Error("购物车转入待支付失败",
				elog.FieldErr(err),
				elog.Int64("cartID", order.CartID))
		}
	}
	return nil
}

func (s *service) OrderShipmentGenerated(ctx context.Context, orderIdentifier string) error {
	order, err := s.repo.FindByIdentifier(ctx, orderIdentifier)
	if err != nil {
		return fmt.Errorf("订单未找到: %w", err)
	}
	changed, err := s.repo.SetStatusIfNotIn(ctx, order.ID, domain.StatusShipmentGenerated, []domain.Status{
		domain.StatusShipmentGenerated,
		domain.StatusShipped,
		domain.StatusDelivered,
		domain.StatusCancelled,
	})
	if err != nil {
		return err
	}
	if changed {
		s.produce(ctx, event.OrderEvent{
			Kind:            event.KindShipmentGenerated,
			OrderIdentifier: order.Identifier,
			UID:             order.UID,
		})
	}
	return nil
}

func (s *service) OrderCancelled(ctx context.Context, orderIdentifier string) error {
	order, err := s.repo.FindByIdentifier(ctx, orderIdentifier)
	if err != nil {
		return fmt.Errorf("订单未找到: %w", err)
	}
	return s.repo.SetStatus(ctx, order.ID, domain.StatusCancelled)
}

func (s *service) produce(ctx context.Context, evt event.OrderEvent) {
	if err := s.producer.Produce(ctx, evt); err != nil {
		s.logger.Error("发布订单事件失败",
			elog.FieldErr(err),
			elog.String("kind", evt.Kind),
			elog.String("order_identifier", evt.OrderIdentifier))
	}
}
