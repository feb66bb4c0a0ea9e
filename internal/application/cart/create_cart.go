package cart

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// CreateCartUseCase 创建购物车用例
// 购物车匿名创建,返回的UUID由前端保存,后续操作凭ID进行
type CreateCartUseCase struct {
	cartRepo cart.Repository
}

// NewCreateCartUseCase 创建用例
func NewCreateCartUseCase(cartRepo cart.Repository) *CreateCartUseCase {
	return &CreateCartUseCase{cartRepo: cartRepo}
}

// CreateCartResponse 创建响应
type CreateCartResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"created_at"`
}

// Execute 创建空购物车
func (uc *CreateCartUseCase) Execute(ctx context.Context) (*CreateCartResponse, error) {
	c := cart.NewCart()

	err := uc.cartRepo.Create(ctx, c)
	metrics.ObserveCartOperation("create", err)
	if err != nil {
		return nil, err
	}

	return &CreateCartResponse{
		ID:        c.ID,
		CreatedAt: c.CreatedAt.Format("2006-01-02 15:04:05"),
	}, nil
}
