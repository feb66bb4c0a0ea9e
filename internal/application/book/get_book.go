package book

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/review"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
)

// GetBookUseCase 图书详情用例
// 详情附带评分汇总:优先读Redis缓存,未命中回源数据库并回填
type GetBookUseCase struct {
	bookRepo    book.Repository
	reviewRepo  review.Repository
	ratingCache *redis.RatingCache
}

// NewGetBookUseCase 创建详情用例
func NewGetBookUseCase(
	bookRepo book.Repository,
	reviewRepo review.Repository,
	ratingCache *redis.RatingCache,
) *GetBookUseCase {
	return &GetBookUseCase{
		bookRepo:    bookRepo,
		reviewRepo:  reviewRepo,
		ratingCache: ratingCache,
	}
}

// BookDetail 图书详情
type BookDetail struct {
	ID            uint    `json:"id"`
	Title         string  `json:"title"`
	Description   string  `json:"description"`
	ISBN          string  `json:"isbn,omitempty"`
	Price         int64   `json:"price"`
	Stock         int     `json:"stock"`
	AuthorID      uint    `json:"author_id"`
	GenreID       uint    `json:"genre_id"`
	CoverURL      string  `json:"cover_url,omitempty"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int64   `json:"total_reviews"`
}

// Execute 查询图书详情
func (uc *GetBookUseCase) Execute(ctx context.Context, bookID uint) (*BookDetail, error) {
	b, err := uc.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	rating := uc.lookupRating(ctx, bookID)

	return &BookDetail{
		ID:            b.ID,
		Title:         b.Title,
		Description:   b.Description,
		ISBN:          b.ISBN,
		Price:         b.Price,
		Stock:         b.Stock,
		AuthorID:      b.AuthorID,
		GenreID:       b.GenreID,
		CoverURL:      b.CoverURL,
		AverageRating: rating.Average,
		TotalReviews:  rating.Count,
	}, nil
}

// lookupRating 读取评分汇总
// 缓存和数据库都失败时降级为零值,评分展示不阻断详情页
func (uc *GetBookUseCase) lookupRating(ctx context.Context, bookID uint) *review.Rating {
	if cached, err := uc.ratingCache.Get(ctx, bookID); err == nil && cached != nil {
		return cached
	}

	rating, err := uc.reviewRepo.RatingByBook(ctx, bookID)
	if err != nil {
		return &review.Rating{}
	}

	_ = uc.ratingCache.Set(ctx, bookID, rating)
	return rating
}
