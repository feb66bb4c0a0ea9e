package user

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/domain/user"
)

// TxManager 事务接口(mysql.TxManager实现,接口定义在使用方便于Mock)
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// RegisterUseCase 用户注册用例
// 设计说明:
// 1. 注册同时创建User(登录凭证)和Customer(购物档案),
//    两者在同一事务内落库,不会出现有账号没档案的半成品
// 2. 邮箱唯一性由数据库索引保证,冲突由Repository转换为ErrEmailDuplicate
type RegisterUseCase struct {
	userService  user.Service
	userRepo     user.Repository
	customerRepo customer.Repository
	txManager    TxManager
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(
	userService user.Service,
	userRepo user.Repository,
	customerRepo customer.Repository,
	txManager TxManager,
) *RegisterUseCase {
	return &RegisterUseCase{
		userService:  userService,
		userRepo:     userRepo,
		customerRepo: customerRepo,
		txManager:    txManager,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	BirthDate *time.Time
}

// RegisterResponse 注册响应(不含密码字段)
type RegisterResponse struct {
	ID         uint   `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	CustomerID uint   `json:"customer_id"`
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	// 领域服务完成校验和密码加密,返回未持久化的实体
	u, err := uc.userService.Register(ctx, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}

	var c *customer.Customer
	err = uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		if err := uc.userRepo.Create(txCtx, u); err != nil {
			return err
		}
		c = customer.NewCustomer(u.ID, req.Phone, req.BirthDate)
		return uc.customerRepo.Create(txCtx, c)
	})
	if err != nil {
		return nil, err
	}

	return &RegisterResponse{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		CustomerID: c.ID,
	}, nil
}
