package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置)
// domain层定义接口,infrastructure层实现,便于Mock测试
type Repository interface {
	// Create 创建图书
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByIDs 批量查找图书(下单/购物车取价用,返回以ID为键的映射)
	FindByIDs(ctx context.Context, ids []uint) (map[uint]*Book, error)

	// FindByISBN 根据ISBN查找图书
	FindByISBN(ctx context.Context, isbn string) (*Book, error)

	// Update 更新图书信息
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书
	// 图书已被订单明细引用时返回ErrBookReferenced
	Delete(ctx context.Context, id uint) error

	// List 分页查询图书列表
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// LockByID 悲观锁查询图书(SELECT FOR UPDATE)
	// 下单冻结价格时锁定行,防止读取到未提交的改价
	LockByID(ctx context.Context, id uint) (*Book, error)
}

// ListParams 图书列表查询参数
type ListParams struct {
	Page     int    // 页码(从1开始)
	PageSize int    // 每页数量
	Keyword  string // 搜索关键词(匹配书名、描述)
	GenreID  uint   // 按分类过滤(0表示不过滤)
	AuthorID uint   // 按作者过滤(0表示不过滤)
	SortBy   string // 排序(price_asc, price_desc, created_at_desc)
}

// AuthorRepository 作者仓储接口
type AuthorRepository interface {
	Create(ctx context.Context, author *Author) error
	FindByID(ctx context.Context, id uint) (*Author, error)
	Update(ctx context.Context, author *Author) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, page, pageSize int) ([]*Author, int64, error)
}

// GenreRepository 分类仓储接口
type GenreRepository interface {
	Create(ctx context.Context, genre *Genre) error
	FindByID(ctx context.Context, id uint) (*Genre, error)
	FindBySlug(ctx context.Context, slug string) (*Genre, error)
	Update(ctx context.Context, genre *Genre) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context) ([]*Genre, error)
}
