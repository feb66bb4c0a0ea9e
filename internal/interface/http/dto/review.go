package dto

// WriteReviewRequest HTTP发表书评请求
// 同一用户对同一本书重复提交视为修改
type WriteReviewRequest struct {
	Score       int    `json:"score" binding:"required,min=1,max=5" example:"5"`
	Description string `json:"description" binding:"omitempty,max=2000" example:"内容扎实,示例丰富"`
	ImageURL    string `json:"image_url" binding:"omitempty,url,max=500"`
}

// ReviewResponse HTTP书评响应
type ReviewResponse struct {
	ID          uint   `json:"id" example:"1"`
	UserID      uint   `json:"user_id" example:"1"`
	BookID      uint   `json:"book_id" example:"1"`
	Score       int    `json:"score" example:"5"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	CreatedAt   string `json:"created_at" example:"2024-01-15 10:30:00"`
}

// ListReviewsResponse HTTP书评列表响应(附平均分)
type ListReviewsResponse struct {
	Reviews       []*ReviewResponse `json:"reviews"`
	Total         int64             `json:"total" example:"12"`
	AverageRating float64           `json:"average_rating" example:"4.5"`
}
