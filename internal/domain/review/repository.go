package review

import (
	"context"
)

// Repository 书评仓储接口
type Repository interface {
	// Upsert 创建或更新书评
	// (UserID, BookID)已存在时更新原记录,依赖数据库唯一索引保证原子性
	Upsert(ctx context.Context, review *Review) error

	// FindByUserAndBook 查找用户对某本书的书评
	FindByUserAndBook(ctx context.Context, userID, bookID uint) (*Review, error)

	// ListByBook 分页查询图书的书评(按创建时间倒序)
	ListByBook(ctx context.Context, bookID uint, page, pageSize int) ([]*Review, int64, error)

	// RatingByBook 汇总图书评分(平均分+总数,无书评时平均分为0)
	RatingByBook(ctx context.Context, bookID uint) (*Rating, error)

	// Delete 删除书评(仅限本人)
	Delete(ctx context.Context, id, userID uint) error
}
