package order

import (
	"context"
	"log"

	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/pkg/circuitbreaker"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// UpdatePaymentUseCase 支付状态流转用例
// 状态机校验在实体层:Pending可流转到Complete/Failed,两者为终态
type UpdatePaymentUseCase struct {
	orderRepo    order.Repository
	customerRepo customer.Repository
	publisher    EventPublisher // 可为nil
	breaker      *circuitbreaker.Breaker
}

// NewUpdatePaymentUseCase 创建支付状态用例
func NewUpdatePaymentUseCase(
	orderRepo order.Repository,
	customerRepo customer.Repository,
	publisher EventPublisher,
	breaker *circuitbreaker.Breaker,
) *UpdatePaymentUseCase {
	return &UpdatePaymentUseCase{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		publisher:    publisher,
		breaker:      breaker,
	}
}

// UpdatePaymentRequest 支付状态请求
type UpdatePaymentRequest struct {
	UserID  uint
	OrderNo string
	Status  string // P/C/F
}

// Execute 执行支付状态流转
func (uc *UpdatePaymentUseCase) Execute(ctx context.Context, req UpdatePaymentRequest) (*OrderView, error) {
	c, err := uc.customerRepo.FindByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	o, err := uc.orderRepo.FindByOrderNo(ctx, req.OrderNo)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(c.ID) {
		return nil, order.ErrOrderNotFound
	}

	if err := o.TransitionTo(order.PaymentStatus(req.Status)); err != nil {
		return nil, err
	}

	if err := uc.orderRepo.UpdatePaymentStatus(ctx, o); err != nil {
		return nil, err
	}

	metrics.ObservePaymentStatusChange(string(o.PaymentStatus))
	uc.publishStatusChanged(ctx, o)

	return toOrderView(o), nil
}

// paymentChangedEvent 支付状态变更事件载荷
type paymentChangedEvent struct {
	OrderNo       string `json:"order_no"`
	CustomerID    uint   `json:"customer_id"`
	PaymentStatus string `json:"payment_status"`
}

// publishStatusChanged 发布order.payment_updated事件(尽力而为)
func (uc *UpdatePaymentUseCase) publishStatusChanged(ctx context.Context, o *order.Order) {
	if uc.publisher == nil {
		return
	}

	event := paymentChangedEvent{
		OrderNo:       o.OrderNo,
		CustomerID:    o.CustomerID,
		PaymentStatus: string(o.PaymentStatus),
	}

	err := uc.breaker.Execute(func() error {
		return uc.publisher.Publish(ctx, "order.payment_updated", event)
	})
	if err != nil {
		log.Printf("发布支付状态事件失败 order_no=%s: %v", o.OrderNo, err)
	}
}
