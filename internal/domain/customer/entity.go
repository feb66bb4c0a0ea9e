package customer

import (
	"time"
)

// Customer 客户档案实体(聚合根)
// 设计说明:
// 1. 与User一对一:User负责登录凭证,Customer负责购物侧档案
// 2. 注册时与User在同一事务内创建,保证两者同生同灭
// 3. 订单通过CustomerID关联,客户存在已下订单时禁止删除(数据库RESTRICT)
type Customer struct {
	ID        uint
	UserID    uint       // 关联用户ID(唯一)
	Phone     string     // 联系电话
	BirthDate *time.Time // 出生日期(可选)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCustomer 创建客户档案(工厂方法)
func NewCustomer(userID uint, phone string, birthDate *time.Time) *Customer {
	now := time.Now()
	return &Customer{
		UserID:    userID,
		Phone:     phone,
		BirthDate: birthDate,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateProfile 更新档案(空值表示不修改)
func (c *Customer) UpdateProfile(phone string, birthDate *time.Time) {
	if phone != "" {
		c.Phone = phone
	}
	if birthDate != nil {
		c.BirthDate = birthDate
	}
	c.UpdatedAt = time.Now()
}

// Address 收货地址实体
// 属于Customer聚合,删除客户时级联删除
// 订单通过AddressID弱引用快照地址,地址删除后订单侧置NULL
type Address struct {
	ID         uint
	CustomerID uint
	Street     string
	City       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewAddress 创建收货地址(工厂方法)
func NewAddress(customerID uint, street, city string) (*Address, error) {
	if street == "" || city == "" {
		return nil, ErrInvalidAddress
	}
	now := time.Now()
	return &Address{
		CustomerID: customerID,
		Street:     street,
		City:       city,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// Update 更新地址(空值表示不修改)
func (a *Address) Update(street, city string) {
	if street != "" {
		a.Street = street
	}
	if city != "" {
		a.City = city
	}
	a.UpdatedAt = time.Now()
}

// IsOwnedBy 校验地址归属,防止使用他人地址下单
func (a *Address) IsOwnedBy(customerID uint) bool {
	return a.CustomerID == customerID
}
