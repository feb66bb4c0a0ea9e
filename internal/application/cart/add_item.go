package cart

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// AddItemUseCase 加购用例
// 合并语义:同一本书重复加购时数量累加,不产生重复条目;
// 并发安全由仓储的唯一索引upsert保证
type AddItemUseCase struct {
	cartRepo cart.Repository
	bookRepo book.Repository
}

// NewAddItemUseCase 创建加购用例
func NewAddItemUseCase(cartRepo cart.Repository, bookRepo book.Repository) *AddItemUseCase {
	return &AddItemUseCase{
		cartRepo: cartRepo,
		bookRepo: bookRepo,
	}
}

// AddItemRequest 加购请求
type AddItemRequest struct {
	CartID   string
	BookID   uint
	Quantity int
}

// ItemResponse 条目响应(返回合并后的数量)
type ItemResponse struct {
	ID       uint   `json:"id"`
	CartID   string `json:"cart_id"`
	BookID   uint   `json:"book_id"`
	Quantity int    `json:"quantity"`
}

// Execute 执行加购
func (uc *AddItemUseCase) Execute(ctx context.Context, req AddItemRequest) (*ItemResponse, error) {
	item, err := uc.execute(ctx, req)
	metrics.ObserveCartOperation("add_item", err)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (uc *AddItemUseCase) execute(ctx context.Context, req AddItemRequest) (*ItemResponse, error) {
	if req.Quantity < 1 {
		return nil, cart.ErrInvalidQuantity
	}

	// 先校验两端资源,保证错误语义明确(购物车/图书哪个不存在)
	if _, err := uc.cartRepo.FindByID(ctx, req.CartID); err != nil {
		return nil, err
	}
	if _, err := uc.bookRepo.FindByID(ctx, req.BookID); err != nil {
		return nil, err
	}

	item, err := uc.cartRepo.UpsertItem(ctx, req.CartID, req.BookID, req.Quantity)
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
