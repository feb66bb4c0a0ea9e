package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// PublishBookUseCase 上架图书用例
type PublishBookUseCase struct {
	bookRepo   book.Repository
	authorRepo book.AuthorRepository
	genreRepo  book.GenreRepository
}

// NewPublishBookUseCase 创建上架用例
func NewPublishBookUseCase(
	bookRepo book.Repository,
	authorRepo book.AuthorRepository,
	genreRepo book.GenreRepository,
) *PublishBookUseCase {
	return &PublishBookUseCase{
		bookRepo:   bookRepo,
		authorRepo: authorRepo,
		genreRepo:  genreRepo,
	}
}

// PublishBookRequest 上架请求(Price单位:分)
type PublishBookRequest struct {
	Title       string
	Description string
	ISBN        string
	Price       int64
	Stock       int
	AuthorID    uint
	GenreID     uint
	CoverURL    string
}

// PublishBookResponse 上架响应
type PublishBookResponse struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
	ISBN  string `json:"isbn,omitempty"`
	Price int64  `json:"price"`
	Stock int    `json:"stock"`
}

// Execute 执行上架
// 业务规则:作者/分类必须已存在;ISBN非空时格式合法且全局唯一
func (uc *PublishBookUseCase) Execute(ctx context.Context, req PublishBookRequest) (*PublishBookResponse, error) {
	if err := book.ValidateISBN(req.ISBN); err != nil {
		return nil, err
	}

	if _, err := uc.authorRepo.FindByID(ctx, req.AuthorID); err != nil {
		return nil, err
	}
	if _, err := uc.genreRepo.FindByID(ctx, req.GenreID); err != nil {
		return nil, err
	}

	b, err := book.NewBook(
		req.Title,
		req.Description,
		book.NormalizeISBN(req.ISBN),
		req.Price,
		req.Stock,
		req.AuthorID,
		req.GenreID,
		req.CoverURL,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.bookRepo.Create(ctx, b); err != nil {
		return nil, err
	}

	return &PublishBookResponse{
		ID:    b.ID,
		Title: b.Title,
		ISBN:  b.ISBN,
		Price: b.Price,
		Stock: b.Stock,
	}, nil
}
