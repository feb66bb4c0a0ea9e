package order

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/domain/order"
)

// GetOrderUseCase 订单详情用例
type GetOrderUseCase struct {
	orderRepo    order.Repository
	customerRepo customer.Repository
}

// NewGetOrderUseCase 创建详情用例
func NewGetOrderUseCase(orderRepo order.Repository, customerRepo customer.Repository) *GetOrderUseCase {
	return &GetOrderUseCase{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
	}
}

// Execute 按订单号查询订单
// 归属校验:只能看自己的订单;他人订单一律NotFound,不暴露存在性
func (uc *GetOrderUseCase) Execute(ctx context.Context, userID uint, orderNo string) (*OrderView, error) {
	c, err := uc.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	o, err := uc.orderRepo.FindByOrderNo(ctx, orderNo)
	if err != nil {
		return nil, err
	}
	if !o.IsOwnedBy(c.ID) {
		return nil, order.ErrOrderNotFound
	}

	return toOrderView(o), nil
}
