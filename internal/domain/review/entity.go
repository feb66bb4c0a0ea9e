package review

import (
	"time"
)

// Review 书评实体
// 设计说明:
// 1. (UserID, BookID)唯一:同一用户对同一本书只保留一条书评,重复提交视为更新
// 2. Score取值1-5,由工厂方法校验
type Review struct {
	ID          uint
	UserID      uint   // 评论用户ID
	BookID      uint   // 图书ID
	Score       int    // 评分(1-5)
	Description string // 评论内容
	ImageURL    string // 晒图URL(可选)
	CreatedAt   time.Time
}

// NewReview 创建书评(工厂方法)
func NewReview(userID, bookID uint, score int, description, imageURL string) (*Review, error) {
	if score < 1 || score > 5 {
		return nil, ErrInvalidScore
	}
	return &Review{
		UserID:      userID,
		BookID:      bookID,
		Score:       score,
		Description: description,
		ImageURL:    imageURL,
		CreatedAt:   time.Now(),
	}, nil
}

// Revise 修改已有书评(重复提交时的更新语义)
func (r *Review) Revise(score int, description, imageURL string) error {
	if score < 1 || score > 5 {
		return ErrInvalidScore
	}
	r.Score = score
	r.Description = description
	if imageURL != "" {
		r.ImageURL = imageURL
	}
	return nil
}

// Rating 图书评分汇总
type Rating struct {
	Average float64 // 平均分(保留1位小数)
	Count   int64   // 书评总数
}
