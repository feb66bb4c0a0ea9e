package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// cartRepository 购物车仓储实现(MySQL)
// 设计说明:
// 1. 条目操作直接落库,不走"读聚合-改内存-整体保存",
//    避免并发请求覆盖彼此的修改
// 2. 条目操作一律带cart_id条件,防止跨购物车操纵他人条目
type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

// Create 创建购物车
func (r *cartRepository) Create(ctx context.Context, c *cart.Cart) error {
	model := &CartModel{
		ID:        c.ID,
		CreatedAt: c.CreatedAt,
	}
	if err := getDB(ctx, r.db).Omit("Items").Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建购物车失败")
	}
	return nil
}

// FindByID 根据ID查找购物车(Preload全部条目)
func (r *cartRepository) FindByID(ctx context.Context, id string) (*cart.Cart, error) {
	var model CartModel
	err := getDB(ctx, r.db).Preload("Items").First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}
	return toCartEntity(&model), nil
}

// Delete 删除购物车
// 条目由外键ON DELETE CASCADE级联删除
func (r *cartRepository) Delete(ctx context.Context, id string) error {
	result := getDB(ctx, r.db).Delete(&CartModel{}, "id = ?", id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrCartNotFound
	}
	return nil
}

// UpsertItem 加购:不存在则插入,已存在则累加数量
// INSERT ... ON DUPLICATE KEY UPDATE quantity = quantity + VALUES(quantity)
// 依赖(cart_id, book_id)唯一索引,并发加购同一本书时数量正确累加
func (r *cartRepository) UpsertItem(ctx context.Context, cartID string, bookID uint, quantity int) (*cart.Item, error) {
	db := getDB(ctx, r.db)

	model := &CartItemModel{
		CartID:   cartID,
		BookID:   bookID,
		Quantity: quantity,
	}

	err := db.Omit("Cart", "Book").
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cart_id"}, {Name: "book_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("quantity + VALUES(quantity)"),
			}),
		}).
		Create(model).Error
	if err != nil {
		if isForeignKeyError(err) {
			// cart_id或book_id无对应父行
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "加入购物车失败")
	}

	// 命中更新分支时model里的数量是本次增量,按唯一键回读合并结果
	var merged CartItemModel
	if err := db.Where("cart_id = ? AND book_id = ?", cartID, bookID).First(&merged).Error; err != nil {
		return nil, apperrors.Wrap(err, "读取购物车条目失败")
	}

	return toCartItemEntity(&merged), nil
}

// FindItem 查找购物车内的指定条目
func (r *cartRepository) FindItem(ctx context.Context, cartID string, itemID uint) (*cart.Item, error) {
	var model CartItemModel
	err := getDB(ctx, r.db).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, cart.ErrItemNotFound
		}
		return nil, apperrors.Wrap(err, "查询购物车条目失败")
	}
	return toCartItemEntity(&model), nil
}

// UpdateItemQuantity 覆盖条目数量
// RowsAffected判存在性依赖DSN的clientFoundRows=true:
// 按命中行数统计,数量写成原值的幂等更新才不会被当作条目不存在
func (r *cartRepository) UpdateItemQuantity(ctx context.Context, cartID string, itemID uint, quantity int) error {
	result := getDB(ctx, r.db).Model(&CartItemModel{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Update("quantity", quantity)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新购物车条目失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrItemNotFound
	}
	return nil
}

// RemoveItem 删除条目,条目不在该购物车中返回ErrItemNotFound
func (r *cartRepository) RemoveItem(ctx context.Context, cartID string, itemID uint) error {
	result := getDB(ctx, r.db).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&CartItemModel{})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除购物车条目失败")
	}
	if result.RowsAffected == 0 {
		return cart.ErrItemNotFound
	}
	return nil
}

// toCartEntity GORM模型 → 领域实体
func toCartEntity(m *CartModel) *cart.Cart {
	items := make([]*cart.Item, len(m.Items))
	for i := range m.Items {
		items[i] = toCartItemEntity(&m.Items[i])
	}
	return &cart.Cart{
		ID:        m.ID,
		Items:     items,
		CreatedAt: m.CreatedAt,
	}
}

// toCartItemEntity GORM模型 → 领域实体
func toCartItemEntity(m *CartItemModel) *cart.Item {
	return &cart.Item{
		ID:       m.ID,
		CartID:   m.CartID,
		BookID:   m.BookID,
		Quantity: m.Quantity,
	}
}
