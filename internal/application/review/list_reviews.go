package review

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/review"
)

// ListReviewsUseCase 书评列表用例
type ListReviewsUseCase struct {
	reviewRepo review.Repository
	bookRepo   book.Repository
}

// NewListReviewsUseCase 创建书评列表用例
func NewListReviewsUseCase(reviewRepo review.Repository, bookRepo book.Repository) *ListReviewsUseCase {
	return &ListReviewsUseCase{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
	}
}

// ListReviewsResponse 书评列表响应
type ListReviewsResponse struct {
	Reviews       []*ReviewResponse `json:"reviews"`
	Total         int64             `json:"total"`
	AverageRating float64           `json:"average_rating"`
}

// Execute 查询图书的书评列表(附平均分)
func (uc *ListReviewsUseCase) Execute(ctx context.Context, bookID uint, page, pageSize int) (*ListReviewsResponse, error) {
	if _, err := uc.bookRepo.FindByID(ctx, bookID); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	reviews, total, err := uc.reviewRepo.ListByBook(ctx, bookID, page, pageSize)
	if err != nil {
		return nil, err
	}

	rating, err := uc.reviewRepo.RatingByBook(ctx, bookID)
	if err != nil {
		return nil, err
	}

	resp := make([]*ReviewResponse, len(reviews))
	for i, rv := range reviews {
		resp[i] = toReviewResponse(rv)
	}

	return &ListReviewsResponse{
		Reviews:       resp,
		Total:         total,
		AverageRating: rating.Average,
	}, nil
}
