package order

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/domain/order"
)

// ListOrdersUseCase 订单列表用例
type ListOrdersUseCase struct {
	orderRepo    order.Repository
	customerRepo customer.Repository
}

// NewListOrdersUseCase 创建列表用例
func NewListOrdersUseCase(orderRepo order.Repository, customerRepo customer.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
	}
}

// ListOrdersResponse 列表响应
type ListOrdersResponse struct {
	Orders []*OrderView `json:"orders"`
	Total  int64        `json:"total"`
}

// Execute 分页查询当前客户的订单(按下单时间倒序)
func (uc *ListOrdersUseCase) Execute(ctx context.Context, userID uint, page, pageSize int) (*ListOrdersResponse, error) {
	c, err := uc.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	orders, total, err := uc.orderRepo.ListByCustomer(ctx, c.ID, page, pageSize)
	if err != nil {
		return nil, err
	}

	views := make([]*OrderView, len(orders))
	for i, o := range orders {
		views[i] = toOrderView(o)
	}

	return &ListOrdersResponse{Orders: views, Total: total}, nil
}
