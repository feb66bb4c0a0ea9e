package book

import (
	"time"
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. ISBN可选,非空时由数据库UNIQUE索引保证唯一
// 3. AuthorID/GenreID只保存外键,不跨聚合持有完整对象
type Book struct {
	ID          uint
	Title       string // 书名
	Description string // 图书描述
	ISBN        string // ISBN号(可为空;13位)
	Price       int64  // 价格(单位:分,1元=100分)
	Stock       int    // 库存数量
	AuthorID    uint   // 作者ID
	GenreID     uint   // 分类ID
	CoverURL    string // 封面图片URL
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewBook 创建新图书(工厂方法)
// price单位为分,必须>0;stock不能为负
func NewBook(title, description, isbn string, price int64, stock int, authorID, genreID uint, coverURL string) (*Book, error) {
	if title == "" {
		return nil, ErrInvalidTitle
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}
	now := time.Now()
	return &Book{
		Title:       title,
		Description: description,
		ISBN:        isbn,
		Price:       price,
		Stock:       stock,
		AuthorID:    authorID,
		GenreID:     genreID,
		CoverURL:    coverURL,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdatePrice 更新价格(领域行为)
// 业务规则:价格必须>0
func (b *Book) UpdatePrice(newPrice int64) error {
	if newPrice <= 0 {
		return ErrInvalidPrice
	}
	b.Price = newPrice
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateStock 更新库存(领域行为)
// 业务规则:库存不能为负数
func (b *Book) UpdateStock(newStock int) error {
	if newStock < 0 {
		return ErrInvalidStock
	}
	b.Stock = newStock
	b.UpdatedAt = time.Now()
	return nil
}

// UpdateInfo 更新图书基本信息(空值表示不修改)
func (b *Book) UpdateInfo(title, description, coverURL string) {
	if title != "" {
		b.Title = title
	}
	if description != "" {
		b.Description = description
	}
	if coverURL != "" {
		b.CoverURL = coverURL
	}
	b.UpdatedAt = time.Now()
}

// Reclassify 调整图书的作者/分类归属(0表示不修改)
func (b *Book) Reclassify(authorID, genreID uint) {
	if authorID != 0 {
		b.AuthorID = authorID
	}
	if genreID != 0 {
		b.GenreID = genreID
	}
	b.UpdatedAt = time.Now()
}

// Author 作者实体
// 独立聚合:图书通过AuthorID引用,删除作者会级联删除其图书
type Author struct {
	ID        uint
	Name      string // 作者名
	Bio       string // 作者简介
	ImageURL  string // 作者照片URL
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewAuthor 创建作者(工厂方法)
func NewAuthor(name, bio, imageURL string) (*Author, error) {
	if name == "" {
		return nil, ErrInvalidAuthorName
	}
	now := time.Now()
	return &Author{
		Name:      name,
		Bio:       bio,
		ImageURL:  imageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// ShortBio 列表场景用的简介截断(前100个字符)
func (a *Author) ShortBio() string {
	const max = 100
	runes := []rune(a.Bio)
	if len(runes) <= max {
		return a.Bio
	}
	return string(runes[:max]) + "..."
}

// Genre 图书分类实体
// Slug为URL友好的唯一标识,创建时若为空则由Title自动生成
type Genre struct {
	ID             uint
	Title          string // 分类名
	Slug           string // URL标识(唯一)
	FeaturedBookID *uint  // 推荐图书ID(图书删除后置NULL)
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewGenre 创建分类(工厂方法)
// slug为空时根据title自动生成
func NewGenre(title, slug string) (*Genre, error) {
	if title == "" {
		return nil, ErrInvalidGenreTitle
	}
	if slug == "" {
		slug = Slugify(title)
	}
	now := time.Now()
	return &Genre{
		Title:     title,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// SetFeaturedBook 设置分类的推荐图书
func (g *Genre) SetFeaturedBook(bookID uint) {
	g.FeaturedBookID = &bookID
	g.UpdatedAt = time.Now()
}
