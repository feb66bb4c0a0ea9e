package dto

// PublishBookRequest HTTP上架请求
// 价格以"元"的字符串传入(如"59.00"),边界层转成分,
// 避免前端直接操作分单位出错
type PublishBookRequest struct {
	Title       string `json:"title" binding:"required,max=200" example:"Go语言实战"`
	Description string `json:"description" binding:"max=5000" example:"一本关于Go语言的实战书籍"`
	ISBN        string `json:"isbn" binding:"omitempty,max=20" example:"9787115428028"`
	PriceYuan   string `json:"price_yuan" binding:"required" example:"59.00"`
	Stock       int    `json:"stock" binding:"min=0" example:"100"`
	AuthorID    uint   `json:"author_id" binding:"required" example:"1"`
	GenreID     uint   `json:"genre_id" binding:"required" example:"1"`
	CoverURL    string `json:"cover_url" binding:"omitempty,url,max=500" example:"https://example.com/cover.jpg"`
}

// UpdateBookRequest HTTP更新图书请求
// 所有字段可选;Stock用指针区分"不修改"和"改为0"
type UpdateBookRequest struct {
	Title       string `json:"title" binding:"omitempty,max=200" example:"Go语言实战(第2版)"`
	Description string `json:"description" binding:"omitempty,max=5000"`
	PriceYuan   string `json:"price_yuan" binding:"omitempty" example:"69.00"`
	Stock       *int   `json:"stock" binding:"omitempty,min=0" example:"50"`
	AuthorID    uint   `json:"author_id" binding:"omitempty" example:"1"`
	GenreID     uint   `json:"genre_id" binding:"omitempty" example:"2"`
	CoverURL    string `json:"cover_url" binding:"omitempty,url,max=500"`
}

// BookDetailResponse HTTP图书详情响应(附书评统计)
type BookDetailResponse struct {
	ID            uint    `json:"id" example:"1"`
	Title         string  `json:"title" example:"Go语言实战"`
	Description   string  `json:"description,omitempty"`
	ISBN          string  `json:"isbn,omitempty" example:"9787115428028"`
	Price         int64   `json:"price" example:"5900"`       // 价格(分)
	PriceYuan     string  `json:"price_yuan" example:"59.00"` // 价格(元),方便前端显示
	Stock         int     `json:"stock" example:"100"`
	AuthorID      uint    `json:"author_id" example:"1"`
	GenreID       uint    `json:"genre_id" example:"1"`
	CoverURL      string  `json:"cover_url,omitempty"`
	AverageRating float64 `json:"average_rating" example:"4.5"`
	TotalReviews  int64   `json:"total_reviews" example:"12"`
}

// BookListItem HTTP图书列表项(不含Description,减少传输量)
type BookListItem struct {
	ID        uint   `json:"id" example:"1"`
	Title     string `json:"title" example:"Go语言实战"`
	ISBN      string `json:"isbn,omitempty" example:"9787115428028"`
	Price     int64  `json:"price" example:"5900"`
	PriceYuan string `json:"price_yuan" example:"59.00"`
	Stock     int    `json:"stock" example:"100"`
	AuthorID  uint   `json:"author_id" example:"1"`
	GenreID   uint   `json:"genre_id" example:"1"`
	CoverURL  string `json:"cover_url,omitempty"`
}

// ListBooksRequest HTTP图书列表请求(query参数)
type ListBooksRequest struct {
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
	Keyword  string `form:"keyword" binding:"omitempty,max=100" example:"Go"`
	GenreID  uint   `form:"genre_id" binding:"omitempty" example:"1"`
	AuthorID uint   `form:"author_id" binding:"omitempty" example:"1"`
	SortBy   string `form:"sort_by" binding:"omitempty,oneof=price_asc price_desc created_at_desc" example:"created_at_desc"`
}

// =========================================
// 作者/分类DTO
// =========================================

// CreateAuthorRequest HTTP创建作者请求
type CreateAuthorRequest struct {
	Name     string `json:"name" binding:"required,max=100" example:"威廉·肯尼迪"`
	Bio      string `json:"bio" binding:"omitempty,max=2000"`
	ImageURL string `json:"image_url" binding:"omitempty,url,max=500"`
}

// AuthorResponse HTTP作者响应
type AuthorResponse struct {
	ID        uint   `json:"id" example:"1"`
	Name      string `json:"name" example:"威廉·肯尼迪"`
	Bio       string `json:"bio,omitempty"`
	ShortBio  string `json:"short_bio,omitempty"`
	ImageURL  string `json:"image_url,omitempty"`
	BookCount int64  `json:"book_count,omitempty" example:"3"`
}

// CreateGenreRequest HTTP创建分类请求
// slug留空时由标题自动生成
type CreateGenreRequest struct {
	Title string `json:"title" binding:"required,max=100" example:"编程技术"`
	Slug  string `json:"slug" binding:"omitempty,max=100" example:"programming"`
}

// SetFeaturedBookRequest HTTP设置分类推荐图书请求
type SetFeaturedBookRequest struct {
	BookID uint `json:"book_id" binding:"required" example:"1"`
}

// GenreResponse HTTP分类响应
type GenreResponse struct {
	ID             uint   `json:"id" example:"1"`
	Title          string `json:"title" example:"编程技术"`
	Slug           string `json:"slug" example:"programming"`
	FeaturedBookID *uint  `json:"featured_book_id,omitempty" example:"1"`
}
