package order

import (
	"context"
	"errors"
	"testing"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/pkg/circuitbreaker"
)

// =========================================
// 内存Fake:不依赖数据库测试用例编排逻辑
// =========================================

// errDBDown 模拟数据库层故障
var errDBDown = errors.New("数据库连接中断")

type fakeTx struct{}

func (fakeTx) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeCustomerRepo struct {
	customers map[uint]*customer.Customer // key: userID
}

func (f *fakeCustomerRepo) Create(ctx context.Context, c *customer.Customer) error { return nil }
func (f *fakeCustomerRepo) FindByID(ctx context.Context, id uint) (*customer.Customer, error) {
	for _, c := range f.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, customer.ErrCustomerNotFound
}
func (f *fakeCustomerRepo) FindByUserID(ctx context.Context, userID uint) (*customer.Customer, error) {
	c, ok := f.customers[userID]
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	return c, nil
}
func (f *fakeCustomerRepo) Update(ctx context.Context, c *customer.Customer) error { return nil }

type fakeAddressRepo struct {
	addresses map[uint]*customer.Address
}

func (f *fakeAddressRepo) Create(ctx context.Context, a *customer.Address) error { return nil }
func (f *fakeAddressRepo) FindByID(ctx context.Context, id uint) (*customer.Address, error) {
	a, ok := f.addresses[id]
	if !ok {
		return nil, customer.ErrAddressNotFound
	}
	return a, nil
}
func (f *fakeAddressRepo) ListByCustomer(ctx context.Context, customerID uint) ([]*customer.Address, error) {
	return nil, nil
}
func (f *fakeAddressRepo) Update(ctx context.Context, a *customer.Address) error { return nil }
func (f *fakeAddressRepo) Delete(ctx context.Context, id uint) error             { return nil }

type fakeBookRepo struct {
	books      map[uint]*book.Book
	failLockID uint // 锁到该书时报错,模拟事务中途失败
	locks      int
}

func (f *fakeBookRepo) Create(ctx context.Context, b *book.Book) error { return nil }
func (f *fakeBookRepo) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	b, ok := f.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}
func (f *fakeBookRepo) FindByIDs(ctx context.Context, ids []uint) (map[uint]*book.Book, error) {
	result := make(map[uint]*book.Book)
	for _, id := range ids {
		if b, ok := f.books[id]; ok {
			result[id] = b
		}
	}
	return result, nil
}
func (f *fakeBookRepo) FindByISBN(ctx context.Context, isbn string) (*book.Book, error) {
	return nil, book.ErrBookNotFound
}
func (f *fakeBookRepo) Update(ctx context.Context, b *book.Book) error { return nil }
func (f *fakeBookRepo) Delete(ctx context.Context, id uint) error      { return nil }
func (f *fakeBookRepo) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}
func (f *fakeBookRepo) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	f.locks++
	if f.failLockID != 0 && id == f.failLockID {
		return nil, errDBDown
	}
	return f.FindByID(ctx, id)
}

type fakeCartRepo struct {
	carts map[string]*cart.Cart
}

func (f *fakeCartRepo) Create(ctx context.Context, c *cart.Cart) error {
	f.carts[c.ID] = c
	return nil
}
func (f *fakeCartRepo) FindByID(ctx context.Context, id string) (*cart.Cart, error) {
	c, ok := f.carts[id]
	if !ok {
		return nil, cart.ErrCartNotFound
	}
	return c, nil
}
func (f *fakeCartRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.carts[id]; !ok {
		return cart.ErrCartNotFound
	}
	delete(f.carts, id)
	return nil
}
func (f *fakeCartRepo) UpsertItem(ctx context.Context, cartID string, bookID uint, quantity int) (*cart.Item, error) {
	return nil, nil
}
func (f *fakeCartRepo) FindItem(ctx context.Context, cartID string, itemID uint) (*cart.Item, error) {
	return nil, cart.ErrItemNotFound
}
func (f *fakeCartRepo) UpdateItemQuantity(ctx context.Context, cartID string, itemID uint, quantity int) error {
	return nil
}
func (f *fakeCartRepo) RemoveItem(ctx context.Context, cartID string, itemID uint) error {
	return nil
}

type fakeOrderRepo struct {
	orders      []*order.Order
	failCreates int   // 前N次Create返回订单号冲突
	failErr     error // 非空时Create直接报该错,模拟落库失败
	creates     int
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *order.Order) error {
	f.creates++
	if f.failErr != nil {
		return f.failErr
	}
	if f.creates <= f.failCreates {
		return order.ErrOrderNoDuplicate
	}
	o.ID = uint(len(f.orders) + 1)
	f.orders = append(f.orders, o)
	return nil
}
func (f *fakeOrderRepo) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	for _, o := range f.orders {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, order.ErrOrderNotFound
}
func (f *fakeOrderRepo) FindByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	for _, o := range f.orders {
		if o.OrderNo == orderNo {
			return o, nil
		}
	}
	return nil, order.ErrOrderNotFound
}
func (f *fakeOrderRepo) ListByCustomer(ctx context.Context, customerID uint, page, pageSize int) ([]*order.Order, int64, error) {
	return f.orders, int64(len(f.orders)), nil
}
func (f *fakeOrderRepo) UpdatePaymentStatus(ctx context.Context, o *order.Order) error { return nil }
func (f *fakeOrderRepo) ExistsByBook(ctx context.Context, bookID uint) (bool, error) {
	return false, nil
}

// newPlaceOrderFixture 构造标准测试场景:
// 客户(userID=1, customerID=100),两本书各999分,购物车2+3本
func newPlaceOrderFixture() (*PlaceOrderUseCase, *fakeCartRepo, *fakeOrderRepo, *fakeBookRepo, string) {
	customerRepo := &fakeCustomerRepo{customers: map[uint]*customer.Customer{
		1: {ID: 100, UserID: 1},
	}}
	addressRepo := &fakeAddressRepo{addresses: map[uint]*customer.Address{}}
	bookRepo := &fakeBookRepo{books: map[uint]*book.Book{
		10: {ID: 10, Title: "Go程序设计", Price: 999, Stock: 50},
		20: {ID: 20, Title: "数据库系统概念", Price: 999, Stock: 50},
	}}

	c := cart.NewCart()
	c.Items = []*cart.Item{
		{ID: 1, CartID: c.ID, BookID: 10, Quantity: 2},
		{ID: 2, CartID: c.ID, BookID: 20, Quantity: 3},
	}
	cartRepo := &fakeCartRepo{carts: map[string]*cart.Cart{c.ID: c}}
	orderRepo := &fakeOrderRepo{}

	uc := NewPlaceOrderUseCase(
		orderRepo, cartRepo, bookRepo, customerRepo, addressRepo,
		fakeTx{}, nil, circuitbreaker.New("test", circuitbreaker.Config{}),
	)
	return uc, cartRepo, orderRepo, bookRepo, c.ID
}

func TestPlaceOrder(t *testing.T) {
	t.Run("正常下单", func(t *testing.T) {
		uc, cartRepo, orderRepo, _, cartID := newPlaceOrderFixture()

		view, err := uc.Execute(context.Background(), PlaceOrderRequest{UserID: 1, CartID: cartID})
		if err != nil {
			t.Fatalf("下单失败: %v", err)
		}

		// 9.99元 × (2+3) = 49.95元 = 4995分
		if view.TotalAmount != 4995 {
			t.Errorf("订单总额应为4995分, 实际: %d", view.TotalAmount)
		}
		if view.PaymentStatus != "P" {
			t.Errorf("初始支付状态应为P, 实际: %s", view.PaymentStatus)
		}
		if len(view.Items) != 2 {
			t.Errorf("订单明细应为2条, 实际: %d", len(view.Items))
		}

		// 购物车转换后即删除
		if _, err := cartRepo.FindByID(context.Background(), cartID); err != cart.ErrCartNotFound {
			t.Error("下单成功后购物车应被删除")
		}
		if len(orderRepo.orders) != 1 {
			t.Errorf("应落库1笔订单, 实际: %d", len(orderRepo.orders))
		}
	})

	t.Run("价格冻结", func(t *testing.T) {
		uc, _, orderRepo, bookRepo, cartID := newPlaceOrderFixture()

		view, err := uc.Execute(context.Background(), PlaceOrderRequest{UserID: 1, CartID: cartID})
		if err != nil {
			t.Fatalf("下单失败: %v", err)
		}

		// 下单后涨价,历史订单快照不变
		bookRepo.books[10].Price = 99900
		bookRepo.books[20].Price = 99900

		o, err := orderRepo.FindByOrderNo(context.Background(), view.OrderNo)
		if err != nil {
			t.Fatalf("查询订单失败: %v", err)
		}
		if o.TotalAmount != 4995 {
			t.Errorf("改价后订单总额应保持4995分, 实际: %d", o.TotalAmount)
		}
		for _, item := range o.Items {
			if item.UnitPrice != 999 {
				t.Errorf("明细快照单价应保持999分, 实际: %d", item.UnitPrice)
			}
		}
	})

	t.Run("空购物车拒绝下单", func(t *testing.T) {
		uc, cartRepo, orderRepo, _, _ := newPlaceOrderFixture()

		empty := cart.NewCart()
		cartRepo.carts[empty.ID] = empty

		_, err := uc.Execute(context.Background(), PlaceOrderRequest{UserID: 1, CartID: empty.ID})
		if err != cart.ErrEmptyCart {
			t.Errorf("空购物车应返回ErrEmptyCart, 实际: %v", err)
		}
		if len(orderRepo.orders) != 0 {
			t.Error("空购物车不应产生订单")
		}
		// 转换失败,购物车保留
		if _, err := cartRepo.FindByID(context.Background(), empty.ID); err != nil {
			t.Error("下单失败后购物车应保留")
		}
	})

	t.Run("购物车不存在", func(t *testing.T) {
		uc, _, _, _, _ := newPlaceOrderFixture()

		_, err := uc.Execute(context.Background(), PlaceOrderRequest{UserID: 1, CartID: "no-such-cart"})
		if err != cart.ErrCartNotFound {
			t.Errorf("应返回ErrCartNotFound, 实际: %v", err)
		}
	})

	t.Run("订单号冲突换号重试", func(t *testing.T) {
		uc, _, orderRepo, _, cartID := newPlaceOrderFixture()
		orderRepo.failCreates = 2 // 前两次冲突,第三次成功

		view, err := uc.Execute(context.Background(), PlaceOrderRequest{UserID: 1, CartID: cartID})
		if err != nil {
			t.Fatalf("重试后应下单成功: %v", err)
		}
		if orderRepo.creates != 3 {
			t.Errorf("应尝试3次Create, 实际: %d", orderRepo.creates)
		}
		if view.OrderNo == "" {
			t.Error("订单号不能为空")
		}
	})

	t.Run("订单号重试耗尽", func(t *testing.T) {
		uc, cartRepo, orderRepo, _, cartID := newPlaceOrderFixture()
		orderRepo.failCreates = maxOrderNoRetries // 全部冲突

		_, err := uc.Execute(context.Background(), PlaceOrderRequest{UserID: 1, CartID: cartID})
		if err != order.ErrOrderNoExhausted {
			t.Errorf("重试耗尽应返回ErrOrderNoExhausted, 实际: %v", err)
		}
		// 失败后购物车保留
		if _, err := cartRepo.FindByID(context.Background(), cartID); err != nil {
			t.Error("下单失败后购物车应保留")
		}
	})

	t.Run("锁价中途失败整体放弃", func(t *testing.T) {
		uc, cartRepo, orderRepo, bookRepo, cartID := newPlaceOrderFixture()
		bookRepo.failLockID = 20 // 第一本锁价成功,第二本失败

		_, err := uc.Execute(context.Background(), PlaceOrderRequest{UserID: 1, CartID: cartID})
		if err != errDBDown {
			t.Errorf("锁价失败应原样返回错误, 实际: %v", err)
		}
		if bookRepo.locks != 2 {
			t.Errorf("应在第2次锁价时失败, 实际锁了%d次", bookRepo.locks)
		}
		// 事务内任何一步失败,整单放弃:不建单、购物车原样保留
		if orderRepo.creates != 0 {
			t.Errorf("锁价失败后不应尝试建单, 实际Create了%d次", orderRepo.creates)
		}
		if _, err := cartRepo.FindByID(context.Background(), cartID); err != nil {
			t.Error("下单失败后购物车应保留")
		}
	})

	t.Run("建单落库失败不重试", func(t *testing.T) {
		uc, cartRepo, orderRepo, _, cartID := newPlaceOrderFixture()
		orderRepo.failErr = errDBDown

		_, err := uc.Execute(context.Background(), PlaceOrderRequest{UserID: 1, CartID: cartID})
		if err != errDBDown {
			t.Errorf("落库失败应原样返回错误, 实际: %v", err)
		}
		// 只有订单号冲突才换号重试,其他错误立即放弃
		if orderRepo.creates != 1 {
			t.Errorf("非冲突错误不应重试, 实际Create了%d次", orderRepo.creates)
		}
		if _, err := cartRepo.FindByID(context.Background(), cartID); err != nil {
			t.Error("下单失败后购物车应保留")
		}
	})

	t.Run("他人地址拒绝使用", func(t *testing.T) {
		uc, _, _, _, cartID := newPlaceOrderFixture()
		addrID := uint(7)
		uc.addressRepo.(*fakeAddressRepo).addresses[addrID] = &customer.Address{
			ID: addrID, CustomerID: 999, Street: "某街", City: "某市",
		}

		_, err := uc.Execute(context.Background(), PlaceOrderRequest{
			UserID: 1, CartID: cartID, AddressID: &addrID,
		})
		if err != customer.ErrAddressNotOwned {
			t.Errorf("他人地址应返回ErrAddressNotOwned, 实际: %v", err)
		}
	})
}

func TestUpdatePayment(t *testing.T) {
	newFixture := func() (*UpdatePaymentUseCase, *fakeOrderRepo) {
		customerRepo := &fakeCustomerRepo{customers: map[uint]*customer.Customer{
			1: {ID: 100, UserID: 1},
		}}
		orderRepo := &fakeOrderRepo{}
		o, _ := order.NewOrder("ORD-ABCDEF1234", 100, nil, []order.Item{
			{BookID: 10, BookTitle: "Go程序设计", Quantity: 1, UnitPrice: 999},
		})
		_ = orderRepo.Create(context.Background(), o)

		uc := NewUpdatePaymentUseCase(orderRepo, customerRepo, nil,
			circuitbreaker.New("test", circuitbreaker.Config{}))
		return uc, orderRepo
	}

	t.Run("待支付到支付成功", func(t *testing.T) {
		uc, _ := newFixture()
		view, err := uc.Execute(context.Background(), UpdatePaymentRequest{
			UserID: 1, OrderNo: "ORD-ABCDEF1234", Status: "C",
		})
		if err != nil {
			t.Fatalf("流转失败: %v", err)
		}
		if view.PaymentStatus != "C" {
			t.Errorf("状态应为C, 实际: %s", view.PaymentStatus)
		}
	})

	t.Run("终态不可回退", func(t *testing.T) {
		uc, orderRepo := newFixture()
		orderRepo.orders[0].PaymentStatus = order.PaymentStatusComplete

		_, err := uc.Execute(context.Background(), UpdatePaymentRequest{
			UserID: 1, OrderNo: "ORD-ABCDEF1234", Status: "P",
		})
		if err != order.ErrInvalidStatusTransition {
			t.Errorf("终态回退应返回ErrInvalidStatusTransition, 实际: %v", err)
		}
	})

	t.Run("非法状态值", func(t *testing.T) {
		uc, _ := newFixture()
		_, err := uc.Execute(context.Background(), UpdatePaymentRequest{
			UserID: 1, OrderNo: "ORD-ABCDEF1234", Status: "X",
		})
		if err != order.ErrInvalidPaymentStatus {
			t.Errorf("非法状态应返回ErrInvalidPaymentStatus, 实际: %v", err)
		}
	})

	t.Run("他人订单不可操作", func(t *testing.T) {
		uc, orderRepo := newFixture()
		orderRepo.orders[0].CustomerID = 999

		_, err := uc.Execute(context.Background(), UpdatePaymentRequest{
			UserID: 1, OrderNo: "ORD-ABCDEF1234", Status: "C",
		})
		if err != order.ErrOrderNotFound {
			t.Errorf("他人订单应返回ErrOrderNotFound, 实际: %v", err)
		}
	})
}
