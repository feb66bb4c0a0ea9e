package order

import (
	"context"
	"log"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/pkg/circuitbreaker"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// maxOrderNoRetries 订单号冲突时的最大换号次数
// 10位hex的碰撞概率极低,连续5次冲突基本只会发生在逻辑缺陷时
const maxOrderNoRetries = 5

// EventPublisher 订单事件发布接口(pkg/mq.Publisher实现)
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// TxManager 事务接口(mysql.TxManager实现,接口定义在使用方便于Mock)
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// PlaceOrderUseCase 购物车转订单用例(本系统最核心的用例)
// 设计说明:
// 1. 事务保证原子性:冻结价格、建单、清购物车要么全成功要么全回滚
// 2. 价格冻结:逐本SELECT FOR UPDATE锁行后取价,改价与下单互斥,
//    订单明细里的UnitPrice从此不再变化
// 3. 订单号:唯一索引兜底+有限重试,重试耗尽返回明确错误
// 4. 下单事件在事务提交后通过MQ发布,经熔断器保护,失败只记日志
type PlaceOrderUseCase struct {
	orderRepo    order.Repository
	cartRepo     cart.Repository
	bookRepo     book.Repository
	customerRepo customer.Repository
	addressRepo  customer.AddressRepository
	txManager    TxManager
	publisher    EventPublisher // 可为nil(MQ未启用)
	breaker      *circuitbreaker.Breaker
}

// NewPlaceOrderUseCase 创建下单用例
func NewPlaceOrderUseCase(
	orderRepo order.Repository,
	cartRepo cart.Repository,
	bookRepo book.Repository,
	customerRepo customer.Repository,
	addressRepo customer.AddressRepository,
	txManager TxManager,
	publisher EventPublisher,
	breaker *circuitbreaker.Breaker,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		orderRepo:    orderRepo,
		cartRepo:     cartRepo,
		bookRepo:     bookRepo,
		customerRepo: customerRepo,
		addressRepo:  addressRepo,
		txManager:    txManager,
		publisher:    publisher,
		breaker:      breaker,
	}
}

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	UserID    uint   // 从JWT提取
	CartID    string // 要转换的购物车
	AddressID *uint  // 收货地址(可选)
}

// OrderItemView 订单明细视图
type OrderItemView struct {
	BookID    uint   `json:"book_id"`
	BookTitle string `json:"book_title"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"` // 冻结单价(分)
	Subtotal  int64  `json:"subtotal"`
}

// OrderView 订单视图
type OrderView struct {
	ID            uint             `json:"id"`
	OrderNo       string           `json:"order_no"`
	PaymentStatus string           `json:"payment_status"`
	TotalAmount   int64            `json:"total_amount"` // 冻结总额(分)
	AddressID     *uint            `json:"address_id,omitempty"`
	Items         []*OrderItemView `json:"items"`
	PlacedAt      string           `json:"placed_at"`
}

// Execute 执行下单
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, req PlaceOrderRequest) (*OrderView, error) {
	// 1. 定位客户档案
	c, err := uc.customerRepo.FindByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	// 2. 校验收货地址归属(传了才校验)
	if req.AddressID != nil {
		addr, err := uc.addressRepo.FindByID(ctx, *req.AddressID)
		if err != nil {
			return nil, err
		}
		if !addr.IsOwnedBy(c.ID) {
			return nil, customer.ErrAddressNotOwned
		}
	}

	// 3. 事务:冻结价格→建单→清购物车
	var placed *order.Order
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		ct, err := uc.cartRepo.FindByID(txCtx, req.CartID)
		if err != nil {
			return err
		}
		if ct.IsEmpty() {
			return cart.ErrEmptyCart
		}

		// 锁行取价:改价事务与下单事务互斥,快照价是一致的时点价
		items := make([]order.Item, len(ct.Items))
		for i, item := range ct.Items {
			b, err := uc.bookRepo.LockByID(txCtx, item.BookID)
			if err != nil {
				return err
			}
			items[i] = order.Item{
				BookID:    b.ID,
				BookTitle: b.Title,
				Quantity:  item.Quantity,
				UnitPrice: b.Price,
			}
		}

		// 订单号冲突时换号重试,整个事务不回滚(INSERT失败不污染事务)
		for attempt := 0; ; attempt++ {
			o, err := order.NewOrder(order.GenerateOrderNo(), c.ID, req.AddressID, items)
			if err != nil {
				return err
			}
			err = uc.orderRepo.Create(txCtx, o)
			if err == nil {
				placed = o
				break
			}
			if err != order.ErrOrderNoDuplicate {
				return err
			}
			if attempt+1 >= maxOrderNoRetries {
				return order.ErrOrderNoExhausted
			}
		}

		// 转换成功后购物车即作废
		return uc.cartRepo.Delete(txCtx, req.CartID)
	})
	if err != nil {
		return nil, err
	}

	metrics.ObserveOrderPlaced(placed.TotalAmount)

	// 4. 事务已提交,发布下单事件(尽力而为)
	uc.publishPlaced(ctx, placed)

	return toOrderView(placed), nil
}

// orderPlacedEvent 下单事件载荷
type orderPlacedEvent struct {
	OrderNo     string `json:"order_no"`
	CustomerID  uint   `json:"customer_id"`
	TotalAmount int64  `json:"total_amount"`
	PlacedAt    string `json:"placed_at"`
}

// publishPlaced 发布order.created事件
// MQ故障时熔断器快速失败,下单主流程不受影响
func (uc *PlaceOrderUseCase) publishPlaced(ctx context.Context, o *order.Order) {
	if uc.publisher == nil {
		return
	}

	event := orderPlacedEvent{
		OrderNo:     o.OrderNo,
		CustomerID:  o.CustomerID,
		TotalAmount: o.TotalAmount,
		PlacedAt:    o.PlacedAt.Format("2006-01-02 15:04:05"),
	}

	err := uc.breaker.Execute(func() error {
		return uc.publisher.Publish(ctx, "order.created", event)
	})
	if err != nil {
		log.Printf("发布下单事件失败 order_no=%s: %v", o.OrderNo, err)
	}
}

// toOrderView 领域实体 → 视图
func toOrderView(o *order.Order) *OrderView {
	items := make([]*OrderItemView, len(o.Items))
	for i, item := range o.Items {
		items[i] = &OrderItemView{
			BookID:    item.BookID,
			BookTitle: item.BookTitle,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal(),
		}
	}

	return &OrderView{
		ID:            o.ID,
		OrderNo:       o.OrderNo,
		PaymentStatus: string(o.PaymentStatus),
		TotalAmount:   o.TotalAmount,
		AddressID:     o.AddressID,
		Items:         items,
		PlacedAt:      o.PlacedAt.Format("2006-01-02 15:04:05"),
	}
}
