package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/order"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// orderRepository 订单仓储实现(MySQL)
// Order与OrderItem是聚合关系,创建时一起保存,查询时Preload避免N+1
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单(含明细)
// 订单号命中UNIQUE索引时返回ErrOrderNoDuplicate,调用方换号重试;
// 必须在事务中调用,与删除购物车同一事务提交
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := toOrderModel(o)

	// Omit关联父对象,Items由foreignKey自动联动插入
	err := getDB(ctx, r.db).Omit("Customer", "Address").Create(model).Error
	if err != nil {
		if isDuplicateError(err) {
			return order.ErrOrderNoDuplicate
		}
		return apperrors.Wrap(err, "创建订单失败")
	}

	// 回填自增ID
	o.ID = model.ID
	for i := range o.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}
	return nil
}

// FindByID 根据ID查找订单(含明细)
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).Preload("Items").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// FindByOrderNo 根据订单号查找订单(含明细)
func (r *orderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	var model OrderModel
	err := getDB(ctx, r.db).Preload("Items").Where("order_no = ?", orderNo).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// ListByCustomer 分页查询客户订单(按下单时间倒序)
func (r *orderRepository) ListByCustomer(ctx context.Context, customerID uint, page, pageSize int) ([]*order.Order, int64, error) {
	var models []OrderModel
	var total int64

	query := getDB(ctx, r.db).Model(&OrderModel{}).Where("customer_id = ?", customerID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Preload("Items").
		Order("placed_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

// UpdatePaymentStatus 持久化支付状态
// 只更新payment_status与updated_at,总金额和明细不可变
func (r *orderRepository) UpdatePaymentStatus(ctx context.Context, o *order.Order) error {
	result := getDB(ctx, r.db).Model(&OrderModel{}).Where("id = ?", o.ID).Updates(map[string]interface{}{
		"payment_status": string(o.PaymentStatus),
		"updated_at":     o.UpdatedAt,
	})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新支付状态失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// ExistsByBook 图书是否被任意订单明细引用
func (r *orderRepository) ExistsByBook(ctx context.Context, bookID uint) (bool, error) {
	var count int64
	err := getDB(ctx, r.db).Model(&OrderItemModel{}).
		Where("book_id = ?", bookID).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询订单明细失败")
	}
	return count > 0, nil
}

// toOrderModel 领域实体 → GORM模型
func toOrderModel(o *order.Order) *OrderModel {
	items := make([]OrderItemModel, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemModel{
			ID:        item.ID,
			OrderID:   item.OrderID,
			BookID:    item.BookID,
			BookTitle: item.BookTitle,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	return &OrderModel{
		ID:            o.ID,
		OrderNo:       o.OrderNo,
		CustomerID:    o.CustomerID,
		AddressID:     o.AddressID,
		PaymentStatus: string(o.PaymentStatus),
		TotalAmount:   o.TotalAmount,
		Items:         items,
		PlacedAt:      o.PlacedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

// toOrderEntity GORM模型 → 领域实体
func toOrderEntity(m *OrderModel) *order.Order {
	items := make([]order.Item, len(m.Items))
	for i, item := range m.Items {
		items[i] = order.Item{
			ID:        item.ID,
			OrderID:   item.OrderID,
			BookID:    item.BookID,
			BookTitle: item.BookTitle,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}

	return &order.Order{
		ID:            m.ID,
		OrderNo:       m.OrderNo,
		CustomerID:    m.CustomerID,
		AddressID:     m.AddressID,
		PaymentStatus: order.PaymentStatus(m.PaymentStatus),
		TotalAmount:   m.TotalAmount,
		Items:         items,
		PlacedAt:      m.PlacedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
