package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/customer"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// customerRepository 客户档案仓储实现(MySQL)
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建客户仓储
func NewCustomerRepository(db *gorm.DB) customer.Repository {
	return &customerRepository{db: db}
}

// Create 创建客户档案(注册事务内调用)
func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	model := toCustomerModel(c)

	// Omit关联:UserID已就位,不需要GORM联动保存User
	if err := getDB(ctx, r.db).Omit("User").Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建客户档案失败")
	}

	c.ID = model.ID
	return nil
}

// FindByID 根据ID查找客户
func (r *customerRepository) FindByID(ctx context.Context, id uint) (*customer.Customer, error) {
	var model CustomerModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "查询客户失败")
	}
	return toCustomerEntity(&model), nil
}

// FindByUserID 根据用户ID查找客户档案
func (r *customerRepository) FindByUserID(ctx context.Context, userID uint) (*customer.Customer, error) {
	var model CustomerModel
	err := getDB(ctx, r.db).Where("user_id = ?", userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "查询客户失败")
	}
	return toCustomerEntity(&model), nil
}

// Update 更新客户档案
func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	result := getDB(ctx, r.db).Model(&CustomerModel{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
		"phone":      c.Phone,
		"birth_date": c.BirthDate,
		"updated_at": c.UpdatedAt,
	})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新客户档案失败")
	}
	if result.RowsAffected == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

// addressRepository 收货地址仓储实现(MySQL)
type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository 创建地址仓储
func NewAddressRepository(db *gorm.DB) customer.AddressRepository {
	return &addressRepository{db: db}
}

// Create 创建收货地址
func (r *addressRepository) Create(ctx context.Context, a *customer.Address) error {
	model := toAddressModel(a)
	if err := getDB(ctx, r.db).Omit("Customer").Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建收货地址失败")
	}
	a.ID = model.ID
	return nil
}

// FindByID 根据ID查找地址
func (r *addressRepository) FindByID(ctx context.Context, id uint) (*customer.Address, error) {
	var model AddressModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrAddressNotFound
		}
		return nil, apperrors.Wrap(err, "查询收货地址失败")
	}
	return toAddressEntity(&model), nil
}

// ListByCustomer 查询客户的全部收货地址
func (r *addressRepository) ListByCustomer(ctx context.Context, customerID uint) ([]*customer.Address, error) {
	var models []AddressModel
	err := getDB(ctx, r.db).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询收货地址失败")
	}

	addresses := make([]*customer.Address, len(models))
	for i := range models {
		addresses[i] = toAddressEntity(&models[i])
	}
	return addresses, nil
}

// Update 更新收货地址
func (r *addressRepository) Update(ctx context.Context, a *customer.Address) error {
	result := getDB(ctx, r.db).Model(&AddressModel{}).Where("id = ?", a.ID).Updates(map[string]interface{}{
		"street":     a.Street,
		"city":       a.City,
		"updated_at": a.UpdatedAt,
	})
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新收货地址失败")
	}
	if result.RowsAffected == 0 {
		return customer.ErrAddressNotFound
	}
	return nil
}

// Delete 删除收货地址
// 引用它的订单由外键SET NULL自动解除关联
func (r *addressRepository) Delete(ctx context.Context, id uint) error {
	result := getDB(ctx, r.db).Delete(&AddressModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除收货地址失败")
	}
	if result.RowsAffected == 0 {
		return customer.ErrAddressNotFound
	}
	return nil
}

// toCustomerModel 领域实体 → GORM模型
func toCustomerModel(c *customer.Customer) *CustomerModel {
	return &CustomerModel{
		ID:        c.ID,
		UserID:    c.UserID,
		Phone:     c.Phone,
		BirthDate: c.BirthDate,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// toCustomerEntity GORM模型 → 领域实体
func toCustomerEntity(m *CustomerModel) *customer.Customer {
	return &customer.Customer{
		ID:        m.ID,
		UserID:    m.UserID,
		Phone:     m.Phone,
		BirthDate: m.BirthDate,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// toAddressModel 领域实体 → GORM模型
func toAddressModel(a *customer.Address) *AddressModel {
	return &AddressModel{
		ID:         a.ID,
		CustomerID: a.CustomerID,
		Street:     a.Street,
		City:       a.City,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// toAddressEntity GORM模型 → 领域实体
func toAddressEntity(m *AddressModel) *customer.Address {
	return &customer.Address{
		ID:         m.ID,
		CustomerID: m.CustomerID,
		Street:     m.Street,
		City:       m.City,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}
