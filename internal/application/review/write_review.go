package review

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/review"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
)

// WriteReviewUseCase 发表书评用例
// 同一用户对同一本书重复提交走upsert覆盖旧评,不报重复错误
type WriteReviewUseCase struct {
	reviewRepo  review.Repository
	bookRepo    book.Repository
	ratingCache *redis.RatingCache
}

// NewWriteReviewUseCase 创建书评用例
func NewWriteReviewUseCase(
	reviewRepo review.Repository,
	bookRepo book.Repository,
	ratingCache *redis.RatingCache,
) *WriteReviewUseCase {
	return &WriteReviewUseCase{
		reviewRepo:  reviewRepo,
		bookRepo:    bookRepo,
		ratingCache: ratingCache,
	}
}

// WriteReviewRequest 书评请求
type WriteReviewRequest struct {
	UserID      uint
	BookID      uint
	Score       int
	Description string
	ImageURL    string
}

// ReviewResponse 书评响应
type ReviewResponse struct {
	ID          uint   `json:"id"`
	UserID      uint   `json:"user_id"`
	BookID      uint   `json:"book_id"`
	Score       int    `json:"score"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// Execute 发表或更新书评
func (uc *WriteReviewUseCase) Execute(ctx context.Context, req WriteReviewRequest) (*ReviewResponse, error) {
	if _, err := uc.bookRepo.FindByID(ctx, req.BookID); err != nil {
		return nil, err
	}

	rv, err := review.NewReview(req.UserID, req.BookID, req.Score, req.Description, req.ImageURL)
	if err != nil {
		return nil, err
	}

	if err := uc.reviewRepo.Upsert(ctx, rv); err != nil {
		return nil, err
	}

	// 评分变了,主动失效缓存;失败不阻断(短TTL兜底)
	_ = uc.ratingCache.Invalidate(ctx, req.BookID)

	return toReviewResponse(rv), nil
}

func toReviewResponse(rv *review.Review) *ReviewResponse {
	return &ReviewResponse{
		ID:          rv.ID,
		UserID:      rv.UserID,
		BookID:      rv.BookID,
		Score:       rv.Score,
		Description: rv.Description,
		ImageURL:    rv.ImageURL,
		CreatedAt:   rv.CreatedAt.Format("2006-01-02 15:04:05"),
	}
}
