package cart

import (
	"context"
)

// Repository 购物车仓储接口
// 设计说明:
// 1. 条目操作直接落库而非"读聚合-改内存-整体保存",
//    配合(cart_id, book_id)唯一索引实现并发安全的合并加购
// 2. Delete级联删除条目(数据库ON DELETE CASCADE)
type Repository interface {
	// Create 创建购物车
	Create(ctx context.Context, cart *Cart) error

	// FindByID 根据ID查找购物车(含全部条目)
	FindByID(ctx context.Context, id string) (*Cart, error)

	// Delete 删除购物车及其全部条目
	Delete(ctx context.Context, id string) error

	// UpsertItem 加购:条目不存在则插入,已存在则累加数量
	// 基于唯一索引的原子upsert,并发加购同一本书不会产生重复行
	// 返回合并后的条目
	UpsertItem(ctx context.Context, cartID string, bookID uint, quantity int) (*Item, error)

	// FindItem 查找购物车内的指定条目
	FindItem(ctx context.Context, cartID string, itemID uint) (*Item, error)

	// UpdateItemQuantity 覆盖条目数量
	UpdateItemQuantity(ctx context.Context, cartID string, itemID uint, quantity int) error

	// RemoveItem 删除条目,条目不存在返回ErrItemNotFound
	RemoveItem(ctx context.Context, cartID string, itemID uint) error
}
