package customer

import (
	"context"
)

// Repository 客户仓储接口
type Repository interface {
	// Create 创建客户档案(注册事务内调用)
	Create(ctx context.Context, customer *Customer) error

	// FindByID 根据ID查找客户
	FindByID(ctx context.Context, id uint) (*Customer, error)

	// FindByUserID 根据用户ID查找客户档案
	FindByUserID(ctx context.Context, userID uint) (*Customer, error)

	// Update 更新客户档案
	Update(ctx context.Context, customer *Customer) error
}

// AddressRepository 收货地址仓储接口
type AddressRepository interface {
	Create(ctx context.Context, address *Address) error
	FindByID(ctx context.Context, id uint) (*Address, error)
	ListByCustomer(ctx context.Context, customerID uint) ([]*Address, error)
	Update(ctx context.Context, address *Address) error
	Delete(ctx context.Context, id uint) error
}
