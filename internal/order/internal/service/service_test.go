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
	"testing"

	"github.com/ecodeclub/ecommerce/internal/address"
	"github.com/ecodeclub/ecommerce/internal/cart"
	"github.com/ecodeclub/ecommerce/internal/order/internal/domain"
	"github.com/ecodeclub/ecommerce/internal/order/internal/event"
	"github.com/ecodeclub/ecommerce/internal/order/internal/repository"
	"github.com/ecodeclub/ecommerce/internal/order/internal/repository/dao"
	"github.com/ecodeclub/ecommerce/internal/pkg/identifier"
	"github.com/ecodeclub/ecommerce/internal/promotion"
	"github.com/ecodeclub/ecommerce/internal/shipping"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func d(s string) decimal.Decimal {
	res, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return res
}

type fakeOrderRepo struct {
	repository.OrderRepository
	nextID int64
	orders map[int64]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[int64]*domain.Order)}
}

func (f *fakeOrderRepo) Create(_ context.Context, order domain.Order) (domain.Order, error) {
	for _, o := range f.orders {
		if o.Identifier == order.Identifier {
			return domain.Order{}, dao.ErrDuplicateIdentifier
		}
	}
	f.nextID++
	order.ID = f.nextID
	f.orders[order.ID] = &order
	return order, nil
}

func (f *fakeOrderRepo) FindByIdentifier(_ context.Context, identifier string) (domain.Order, error) {
	for _, o := range f.orders {
		if o.Identifier == identifier {
			return *o, nil
		}
	}
	return domain.Order{}, gorm.ErrRecordNotFound
}

func (f *fakeOrderRepo) FindByUIDAndIdentifier(_ context.Context, uid int64, identifier string) (domain.Order, error) {
	for _, o := range f.orders {
		if o.Identifier == identifier && o.UID == uid {
			return *o, nil
		}
	}
	return domain.Order{}, gorm.ErrRecordNotFound
}

func (f *fakeOrderRepo) MarkPaid(_ context.Context, orderID, _ int64) error {
	o := f.orders[orderID]
	switch o.Status {
	case domain.StatusPaymentPending,
		domain.StatusAwaitingPaymentConfirmation,
		domain.StatusAwaitingPaymentAuthorization:
		o.Status = domain.StatusPaid
		return nil
	default:
		return dao.ErrStatusNotChanged
	}
}

func (f *fakeOrderRepo) SetStatusIfNotIn(_ context.Context, orderID int64, status domain.Status, forbidden []domain.Status) (bool, error) {
	o := f.orders[orderID]
	for _, fb := range forbidden {
		if o.Status == fb {
			return false, nil
		}
	}
	o.Status = status
	return true, nil
}

func (f *fakeOrderRepo) SetStatus(_ context.Context, orderID int64, status domain.Status) error {
	f.orders[orderID].Status = status
	return nil
}

type fakeCartSvc struct {
	cart.Service
	cart              cart.Cart
	coupon            *promotion.Coupon
	removedOnVerify   []int64
	detachedCoupon    bool
	awaitingPaymentID int64
	paidID            int64
}

func (f *fakeCartSvc) GetOrCreateActiveCart(_ context.Context, _ cart.Owner) (cart.Cart, error) {
	return f.cart, nil
}

func (f *fakeCartSvc) CouponFor(_ context.Context, _ cart.Cart) (*promotion.Coupon, error) {
	return f.coupon, nil
}

func (f *fakeCartSvc) UpdateCartCoupon(_ context.Context, _ cart.Owner, code string) (cart.Cart, error) {
	if code == "" {
		f.detachedCoupon = true
		f.coupon = nil
	}
	return f.cart, nil
}

func (f *fakeCartSvc) VerifyLinesStock(_ context.Context, _ cart.Cart, _ bool) ([]int64, error) {
	return f.removedOnVerify, nil
}

func (f *fakeCartSvc) MarkAwaitingPayment(_ context.Context, cartID int64) error {
	f.awaitingPaymentID = cartID
	return nil
}

func (f *fakeCartSvc) MarkPaid(_ context.Context, cartID int64) error {
	f.paidID = cartID
	return nil
}

func (f *fakeCartSvc) FindByID(_ context.Context, _ int64) (cart.Cart, error) {
	return f.cart, nil
}

func (f *fakeCartSvc) Reopen(_ context.Context, _ cart.Cart) error {
	return nil
}

type fakeAddressSvc struct {
	address.Service
	addrs map[int64]address.Address
}

func (f *fakeAddressSvc) FindByIDAndUID(_ context.Context, id, uid int64) (address.Address, error) {
	addr, ok := f.addrs[id]
	if !ok || addr.UID != uid {
		return address.Address{}, gorm.ErrRecordNotFound
	}
	return addr, nil
}

type fakeShippingSvc struct {
	shipping.Service
	methods       map[int64]shipping.Method
	cost          shipping.Cost
	shipmentErr   error
	generatedRefs []shipping.OrderRef
}

func (f *fakeShippingSvc) FindMethodByID(_ context.Context, id int64) (shipping.Method, error) {
	m, ok := f.methods[id]
	if !ok {
		return shipping.Method{}, gorm.ErrRecordNotFound
	}
	return m, nil
}

func (f *fakeShippingSvc) CalculateCost(_ context.Context, _ int64, _ shipping.Package, _ shipping.Destination, _ decimal.Decimal) (shipping.Cost, error) {
	return f.cost, nil
}

func (f *fakeShippingSvc) GenerateShipment(_ context.Context, ref shipping.OrderRef) (shipping.Shipment, error) {
	if f.shipmentErr != nil {
		return shipping.Shipment{}, f.shipmentErr
	}
	f.generatedRefs = append(f.generatedRefs, ref)
	return shipping.Shipment{OrderID: ref.OrderID}, nil
}

type fakeThumbnailGenerator struct{}

func (f *fakeThumbnailGenerator) Generate(_ context.Context, image string, spec string) (string, error) {
	if image == "" {
		return "", assert.AnError
	}
	return image + "?" + spec, nil
}

type fakeProducer struct {
	events []event.OrderEvent
}

func (f *fakeProducer) Produce(_ context.Context, evt event.OrderEvent) error {
	f.events = append(f.events, evt)
	return nil
}

func (f *fakeProducer) kinds() []string {
	res := make([]string, 0, len(f.events))
	for _, evt := range f.events {
		res = append(res, evt.Kind)
	}
	return res
}

type testEnv struct {
	repo     *fakeOrderRepo
	cartSvc  *fakeCartSvc
	shipping *fakeShippingSvc
	producer *fakeProducer
	svc      Service
}

func newTestEnv(cartSvc *fakeCartSvc) *testEnv {
	repo := newFakeOrderRepo()
	shippingSvc := &fakeShippingSvc{
		methods: map[int64]shipping.Method{
			5: {ID: 5, StoreID: 1, Kind: shipping.KindFlatRate, Active: true, Rate: d("10.00")},
			6: {ID: 6, StoreID: 1, Kind: shipping.KindFlatRate, Active: false},
		},
		cost: shipping.Cost{Cost: d("10.00"), Discount: d("0"), Total: d("10.00")},
	}
	addressSvc := &fakeAddressSvc{addrs: map[int64]address.Address{
		20: {ID: 20, UID: 7, Name: "张三", Line1: "某路1号", City: "上海", PostalCode: "200000", Country: "CN"},
		21: {ID: 21, UID: 7, Name: "张三", Line1: "某路2号", City: "上海", PostalCode: "200000", Country: "CN"},
		30: {ID: 30, UID: 99, Name: "别人", Line1: "别处", City: "北京", PostalCode: "100000", Country: "CN"},
	}}
	producer := &fakeProducer{}
	svc := NewService(repo, cartSvc, addressSvc, shippingSvc,
		&fakeThumbnailGenerator{}, identifier.NewGenerator(), producer)
	return &testEnv{
		repo:     repo,
		cartSvc:  cartSvc,
		shipping: shippingSvc,
		producer: producer,
		svc:      svc,
	}
}

func testCart() cart.Cart {
	return cart.Cart{
		ID:      3,
		StoreID: 1,
		UID:     7,
		Status:  cart.StatusOpen,
		Lines: []cart.Line{
			{VariantID: 100, Quantity: 2, UnitPrice: d("30.00"), SKU: "SKU-100", ProductName: "咖啡豆", Image: "img/beans.jpg"},
			{VariantID: 200, Quantity: 1, UnitPrice: d("40.00"), SKU: "SKU-200", ProductName: "手冲壶"},
		},
	}
}

func placeInput() PlaceOrderInput {
	return PlaceOrderInput{
		StoreID:           1,
		UID:               7,
		ShippingAddressID: 20,
		BillingAddressID:  21,
		ShippingMethodID:  5,
		PaymentMethodID:   9,
	}
}

func TestService_PlaceOrder(t *testing.T) {
	t.Parallel()

	t.Run("落单快照包含金额、地址和按行摊派的优惠", func(t *testing.T) {
		t.Parallel()
		coupon := &promotion.Coupon{
			ID:     11,
			Code:   "SAVE10",
			Type:   promotion.TypeOrderTotal,
			Mode:   promotion.ModeFixed,
			Amount: d("10.00"),
			Active: true,
		}
		env := newTestEnv(&fakeCartSvc{cart: testCart(), coupon: coupon})

		order, err := env.svc.PlaceOrder(context.Background(), placeInput())
		require.NoError(t, err)

		assert.Len(t, order.Identifier, 8)
		assert.Equal(t, domain.StatusPaymentPending, order.Status)
		assert.True(t, order.Subtotal.Equal(d("100")), "got %s", order.Subtotal)
		assert.True(t, order.Discount.Equal(d("10")))
		assert.True(t, order.ShippingCostTotal.Equal(d("10")))
		assert.True(t, order.Total.Equal(d("100")), "got %s", order.Total)

		assert.Equal(t, "SAVE10", order.CouponCode)
		assert.Equal(t, int64(11), order.CouponID)

		require.Len(t, order.Lines, 2)
		// 100元小计里 60 元的行分走 10*60/100/2=3 每件
		assert.True(t, order.Lines[0].UnitDiscount.Equal(d("3")), "got %s", order.Lines[0].UnitDiscount)
		assert.True(t, order.Lines[0].UnitPriceWithDiscount.Equal(d("27")))
		assert.Equal(t, "img/beans.jpg?fill-200x200", order.Lines[0].Thumbnail)
		assert.Empty(t, order.Lines[1].Thumbnail)

		assert.Equal(t, "某路1号", order.ShippingAddress.Line1)
		assert.Equal(t, "某路2号", order.BillingAddress.Line1)

		// 购物车转入待支付
		assert.Equal(t, int64(3), env.cartSvc.awaitingPaymentID)
	})

	t.Run("失效的券摘除后中止且不落单", func(t *testing.T) {
		t.Parallel()
		expired := &promotion.Coupon{ID: 11, Code: "GONE", Active: false}
		env := newTestEnv(&fakeCartSvc{cart: testCart(), coupon: expired})

		_, err := env.svc.PlaceOrder(context.Background(), placeInput())
		assert.ErrorIs(t, err, ErrCouponExpired)
		assert.True(t, env.cartSvc.detachedCoupon)
		assert.Empty(t, env.repo.orders)
	})

	t.Run("库存校验删了行就中止", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(&fakeCartSvc{cart: testCart(), removedOnVerify: []int64{200}})
		_, err := env.svc.PlaceOrder(context.Background(), placeInput())
		assert.ErrorIs(t, err, ErrLinesRemoved)
		assert.Empty(t, env.repo.orders)
	})

	t.Run("别人的地址不能用", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(&fakeCartSvc{cart: testCart()})
		input := placeInput()
		input.ShippingAddressID = 30
		_, err := env.svc.PlaceOrder(context.Background(), input)
		assert.ErrorIs(t, err, ErrAddressNotOwned)
	})

	t.Run("停用的配送方式不可用", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(&fakeCartSvc{cart: testCart()})
		input := placeInput()
		input.ShippingMethodID = 6
		_, err := env.svc.PlaceOrder(context.Background(), input)
		assert.ErrorIs(t, err, ErrShippingMethodUnavailable)
	})

	t.Run("空购物车不能下单", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(&fakeCartSvc{cart: cart.Cart{ID: 3}})
		_, err := env.svc.PlaceOrder(context.Background(), placeInput())
		assert.ErrorIs(t, err, ErrEmptyCart)
	})
}

func TestService_OrderPaid(t *testing.T) {
	t.Parallel()

	place := func(t *testing.T, env *testEnv) domain.Order {
		t.Helper()
		order, err := env.svc.PlaceOrder(context.Background(), placeInput())
		require.NoError(t, err)
		return order
	}

	t.Run("扣库存计券数生成运单并广播", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(&fakeCartSvc{cart: testCart()})
		order := place(t, env)

		require.NoError(t, env.svc.OrderPaid(context.Background(), order.Identifier))

		got, err := env.repo.FindByIdentifier(context.Background(), order.Identifier)
		require.NoError(t, err)
		// 运单成功生成后状态继续推进
		assert.Equal(t, domain.StatusShipmentGenerated, got.Status)
		require.Len(t, env.shipping.generatedRefs, 1)
		assert.Equal(t, order.Identifier, env.shipping.generatedRefs[0].Identifier)
		assert.Equal(t, int64(3), env.cartSvc.paidID)
		assert.Equal(t, []string{event.KindShipmentGenerated, event.KindOrderPaid}, env.producer.kinds())
	})

	t.Run("重复的已支付事件是空操作", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(&fakeCartSvc{cart: testCart()})
		order := place(t, env)

		require.NoError(t, env.svc.OrderPaid(context.Background(), order.Identifier))
		firstEvents := len(env.producer.events)
		firstShipments := len(env.shipping.generatedRefs)

		require.NoError(t, env.svc.OrderPaid(context.Background(), order.Identifier))
		assert.Equal(t, firstEvents, len(env.producer.events))
		assert.Equal(t, firstShipments, len(env.shipping.generatedRefs))
	})

	t.Run("运单失败不回滚支付只广播失败事件", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(&fakeCartSvc{cart: testCart()})
		env.shipping.shipmentErr = assert.AnError
		order := place(t, env)

		require.NoError(t, env.svc.OrderPaid(context.Background(), order.Identifier))

		got, err := env.repo.FindByIdentifier(context.Background(), order.Identifier)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusPaid, got.Status)
		assert.Equal(t, []string{event.KindShipmentGenerationFailed, event.KindOrderPaid}, env.producer.kinds())
	})
}

func TestService_StatusEvents(t *testing.T) {
	t.Parallel()

	t.Run("已支付的订单不会退回待支付", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(&fakeCartSvc{cart: testCart()})
		order, err := env.svc.PlaceOrder(context.Background(), placeInput())
		require.NoError(t, err)
		require.NoError(t, env.svc.OrderPaid(context.Background(), order.Identifier))

		require.NoError(t, env.svc.OrderAwaitingPaymentConfirmation(context.Background(), order.Identifier))
		got, err := env.repo.FindByIdentifier(context.Background(), order.Identifier)
		require.NoError(t, err)
		assert.NotEqual(t, domain.StatusAwaitingPaymentConfirmation, got.Status)
	})

	t.Run("取消不回滚库存和券", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(&fakeCartSvc{cart: testCart()})
		order, err := env.svc.PlaceOrder(context.Background(), placeInput())
		require.NoError(t, err)

		require.NoError(t, env.svc.OrderCancelled(context.Background(), order.Identifier))
		got, err := env.repo.FindByIdentifier(context.Background(), order.Identifier)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, got.Status)
	})
}

func TestService_CancelOrder(t *testing.T) {
	t.Parallel()
	env := newTestEnv(&fakeCartSvc{cart: testCart()})
	order, err := env.svc.PlaceOrder(context.Background(), placeInput())
	require.NoError(t, err)

	require.NoError(t, env.svc.CancelOrder(context.Background(), 7, order.Identifier))

	// 已取消之后不能再取消
	err = env.svc.CancelOrder(context.Background(), 7, order.Identifier)
	assert.ErrorIs(t, err, ErrNotCancelable)
}
