package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// ListBooksUseCase 图书列表用例
type ListBooksUseCase struct {
	bookRepo book.Repository
}

// NewListBooksUseCase 创建列表用例
func NewListBooksUseCase(bookRepo book.Repository) *ListBooksUseCase {
	return &ListBooksUseCase{bookRepo: bookRepo}
}

// ListBooksRequest 列表请求
type ListBooksRequest struct {
	Page     int
	PageSize int
	Keyword  string
	GenreID  uint
	AuthorID uint
	SortBy   string
}

// BookSummary 列表项
type BookSummary struct {
	ID       uint   `json:"id"`
	Title    string `json:"title"`
	ISBN     string `json:"isbn,omitempty"`
	Price    int64  `json:"price"`
	Stock    int    `json:"stock"`
	AuthorID uint   `json:"author_id"`
	GenreID  uint   `json:"genre_id"`
	CoverURL string `json:"cover_url,omitempty"`
}

// ListBooksResponse 列表响应
type ListBooksResponse struct {
	Books []*BookSummary `json:"books"`
	Total int64          `json:"total"`
}

// Execute 执行查询
// 页码和页大小做边界收敛,避免恶意大分页拖垮数据库
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	books, total, err := uc.bookRepo.List(ctx, book.ListParams{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		GenreID:  req.GenreID,
		AuthorID: req.AuthorID,
		SortBy:   req.SortBy,
	})
	if err != nil {
		return nil, err
	}

	summaries := make([]*BookSummary, len(books))
	for i, b := range books {
		summaries[i] = &BookSummary{
			ID:       b.ID,
			Title:    b.Title,
			ISBN:     b.ISBN,
			Price:    b.Price,
			Stock:    b.Stock,
			AuthorID: b.AuthorID,
			GenreID:  b.GenreID,
			CoverURL: b.CoverURL,
		}
	}

	return &ListBooksResponse{Books: summaries, Total: total}, nil
}
