package cart

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
)

// GetCartUseCase 查询购物车用例
// 设计说明:购物车不存价格,金额一律按图书当前价实时计算;
// 图书改价后再看购物车,小计和总额自动跟着变(价格冻结发生在下单时刻)
type GetCartUseCase struct {
	cartRepo cart.Repository
	bookRepo book.Repository
}

// NewGetCartUseCase 创建查询用例
func NewGetCartUseCase(cartRepo cart.Repository, bookRepo book.Repository) *GetCartUseCase {
	return &GetCartUseCase{
		cartRepo: cartRepo,
		bookRepo: bookRepo,
	}
}

// CartItemView 购物车条目视图
type CartItemView struct {
	ID        uint   `json:"id"`
	BookID    uint   `json:"book_id"`
	BookTitle string `json:"book_title"`
	UnitPrice int64  `json:"unit_price"` // 当前单价(分)
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"` // 小计(分)
}

// CartView 购物车视图
type CartView struct {
	ID          string          `json:"id"`
	Items       []*CartItemView `json:"items"`
	TotalAmount int64           `json:"total_amount"` // 总额(分)
	CreatedAt   string          `json:"created_at"`
}

// Execute 查询购物车(含实时计价)
func (uc *GetCartUseCase) Execute(ctx context.Context, cartID string) (*CartView, error) {
	c, err := uc.cartRepo.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}

	bookIDs := make([]uint, len(c.Items))
	for i, item := range c.Items {
		bookIDs[i] = item.BookID
	}
	books, err := uc.bookRepo.FindByIDs(ctx, bookIDs)
	if err != nil {
		return nil, err
	}

	view := &CartView{
		ID:        c.ID,
		Items:     make([]*CartItemView, 0, len(c.Items)),
		CreatedAt: c.CreatedAt.Format("2006-01-02 15:04:05"),
	}

	for _, item := range c.Items {
		b, ok := books[item.BookID]
		if !ok {
			// 外键CASCADE保证条目随图书删除,走到这里说明数据不一致
			return nil, cart.ErrPriceMissing
		}
		subtotal := b.Price * int64(item.Quantity)
		view.Items = append(view.Items, &CartItemView{
			ID:        item.ID,
			BookID:    item.BookID,
			BookTitle: b.Title,
			UnitPrice: b.Price,
			Quantity:  item.Quantity,
			Subtotal:  subtotal,
		})
		view.TotalAmount += subtotal
	}

	return view, nil
}
