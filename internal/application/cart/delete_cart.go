package cart

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// DeleteCartUseCase 删除购物车用例
// 条目由数据库级联删除,不会留下孤儿行
type DeleteCartUseCase struct {
	cartRepo cart.Repository
}

// NewDeleteCartUseCase 创建删除用例
func NewDeleteCartUseCase(cartRepo cart.Repository) *DeleteCartUseCase {
	return &DeleteCartUseCase{cartRepo: cartRepo}
}

// Execute 执行删除
func (uc *DeleteCartUseCase) Execute(ctx context.Context, cartID string) error {
	err := uc.cartRepo.Delete(ctx, cartID)
	metrics.ObserveCartOperation("delete", err)
	return err
}
