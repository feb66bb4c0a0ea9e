package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/order"
)

// ManageBookUseCase 图书管理用例(更新/删除)
type ManageBookUseCase struct {
	bookRepo  book.Repository
	orderRepo order.Repository
}

// NewManageBookUseCase 创建管理用例
func NewManageBookUseCase(bookRepo book.Repository, orderRepo order.Repository) *ManageBookUseCase {
	return &ManageBookUseCase{
		bookRepo:  bookRepo,
		orderRepo: orderRepo,
	}
}

// UpdateBookRequest 更新请求(零值表示不修改)
type UpdateBookRequest struct {
	BookID      uint
	Title       string
	Description string
	Price       int64  // 0表示不修改
	Stock       *int   // nil表示不修改(库存0是合法值)
	AuthorID    uint   // 0表示不修改
	GenreID     uint   // 0表示不修改
	CoverURL    string
}

// Update 更新图书
// 改价只影响后续购物车展示和下单,历史订单的快照价不变
func (uc *ManageBookUseCase) Update(ctx context.Context, req UpdateBookRequest) (*BookDetail, error) {
	b, err := uc.bookRepo.FindByID(ctx, req.BookID)
	if err != nil {
		return nil, err
	}

	b.UpdateInfo(req.Title, req.Description, req.CoverURL)
	b.Reclassify(req.AuthorID, req.GenreID)
	if req.Price != 0 {
		if err := b.UpdatePrice(req.Price); err != nil {
			return nil, err
		}
	}
	if req.Stock != nil {
		if err := b.UpdateStock(*req.Stock); err != nil {
			return nil, err
		}
	}

	if err := uc.bookRepo.Update(ctx, b); err != nil {
		return nil, err
	}

	return &BookDetail{
		ID:          b.ID,
		Title:       b.Title,
		Description: b.Description,
		ISBN:        b.ISBN,
		Price:       b.Price,
		Stock:       b.Stock,
		AuthorID:    b.AuthorID,
		GenreID:     b.GenreID,
		CoverURL:    b.CoverURL,
	}, nil
}

// Delete 删除图书
// 业务规则:被订单明细引用的图书不可删除(订单快照需要回溯);
// 先查引用给出友好错误,外键RESTRICT做最终兜底
func (uc *ManageBookUseCase) Delete(ctx context.Context, bookID uint) error {
	if _, err := uc.bookRepo.FindByID(ctx, bookID); err != nil {
		return err
	}

	referenced, err := uc.orderRepo.ExistsByBook(ctx, bookID)
	if err != nil {
		return err
	}
	if referenced {
		return book.ErrBookReferenced
	}

	return uc.bookRepo.Delete(ctx, bookID)
}
