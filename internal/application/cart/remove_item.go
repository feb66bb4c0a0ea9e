package cart

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// RemoveItemUseCase 删除条目用例
// 删除不存在的条目返回ErrItemNotFound(不做幂等吞错,
// 前端据此感知本地状态与服务端已经不同步)
type RemoveItemUseCase struct {
	cartRepo cart.Repository
}

// NewRemoveItemUseCase 创建删除用例
func NewRemoveItemUseCase(cartRepo cart.Repository) *RemoveItemUseCase {
	return &RemoveItemUseCase{cartRepo: cartRepo}
}

// Execute 执行删除
func (uc *RemoveItemUseCase) Execute(ctx context.Context, cartID string, itemID uint) error {
	if _, err := uc.cartRepo.FindByID(ctx, cartID); err != nil {
		metrics.ObserveCartOperation("remove_item", err)
		return err
	}

	err := uc.cartRepo.RemoveItem(ctx, cartID, itemID)
	metrics.ObserveCartOperation("remove_item", err)
	return err
}
