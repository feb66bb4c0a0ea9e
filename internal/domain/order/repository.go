package order

import (
	"context"
)

// Repository 订单仓储接口
type Repository interface {
	// Create 创建订单(含全部明细,单条INSERT事务内完成)
	// 订单号命中UNIQUE索引时返回ErrOrderNoDuplicate,由调用方换号重试
	Create(ctx context.Context, order *Order) error

	// FindByID 根据ID查找订单(含明细)
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByOrderNo 根据订单号查找订单(含明细)
	FindByOrderNo(ctx context.Context, orderNo string) (*Order, error)

	// ListByCustomer 分页查询客户订单(按下单时间倒序)
	ListByCustomer(ctx context.Context, customerID uint, page, pageSize int) ([]*Order, int64, error)

	// UpdatePaymentStatus 持久化支付状态(状态机校验在实体层完成)
	UpdatePaymentStatus(ctx context.Context, order *Order) error

	// ExistsByBook 图书是否被任意订单明细引用(删书前检查)
	ExistsByBook(ctx context.Context, bookID uint) (bool, error)
}
