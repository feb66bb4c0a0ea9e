package cart

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// UpdateItemUseCase 修改条目数量用例(覆盖语义)
type UpdateItemUseCase struct {
	cartRepo cart.Repository
}

// NewUpdateItemUseCase 创建修改用例
func NewUpdateItemUseCase(cartRepo cart.Repository) *UpdateItemUseCase {
	return &UpdateItemUseCase{cartRepo: cartRepo}
}

// UpdateItemRequest 修改请求
type UpdateItemRequest struct {
	CartID   string
	ItemID   uint
	Quantity int
}

// Execute 执行修改
// 数量必须>=1;数量归零的语义由RemoveItem承担,不在这里隐式删除
func (uc *UpdateItemUseCase) Execute(ctx context.Context, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := uc.execute(ctx, req)
	metrics.ObserveCartOperation("update_item", err)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *UpdateItemUseCase) execute(ctx context.Context, req UpdateItemRequest) (*ItemResponse, error) {
	if req.Quantity < 1 {
		return nil, cart.ErrInvalidQuantity
	}

	if err := uc.cartRepo.UpdateItemQuantity(ctx, req.CartID, req.ItemID, req.Quantity); err != nil {
		return nil, err
	}

	item, err := uc.cartRepo.FindItem(ctx, req.CartID, req.ItemID)
	if err != nil {
		return nil, err
	}

	return &ItemResponse{
		ID:       item.ID,
		CartID:   item.CartID,
		BookID:   item.BookID,
		Quantity: item.Quantity,
	}, nil
}
