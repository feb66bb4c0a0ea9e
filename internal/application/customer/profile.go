package customer

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/domain/user"
)

// ProfileUseCase 客户档案用例(查询+更新)
type ProfileUseCase struct {
	customerRepo customer.Repository
	userRepo     user.Repository
}

// NewProfileUseCase 创建档案用例
func NewProfileUseCase(customerRepo customer.Repository, userRepo user.Repository) *ProfileUseCase {
	return &ProfileUseCase{
		customerRepo: customerRepo,
		userRepo:     userRepo,
	}
}

// ProfileResponse 客户档案响应
type ProfileResponse struct {
	CustomerID uint   `json:"customer_id"`
	UserID     uint   `json:"user_id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Phone      string `json:"phone"`
	BirthDate  string `json:"birth_date,omitempty"` // YYYY-MM-DD
}

// Get 查询当前用户的客户档案
func (uc *ProfileUseCase) Get(ctx context.Context, userID uint) (*ProfileResponse, error) {
	c, err := uc.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toProfileResponse(c, u), nil
}

// UpdateProfileRequest 更新档案请求(空值表示不修改)
type UpdateProfileRequest struct {
	UserID    uint
	FirstName string
	LastName  string
	Phone     string
	BirthDate *time.Time
}

// Update 更新当前用户的客户档案
func (uc *ProfileUseCase) Update(ctx context.Context, req UpdateProfileRequest) (*ProfileResponse, error) {
	c, err := uc.customerRepo.FindByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}
	u, err := uc.userRepo.FindByID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	c.UpdateProfile(req.Phone, req.BirthDate)
	if err := uc.customerRepo.Update(ctx, c); err != nil {
		return nil, err
	}

	if req.FirstName != "" || req.LastName != "" {
		u.UpdateName(req.FirstName, req.LastName)
		if err := uc.userRepo.Update(ctx, u); err != nil {
			return nil, err
		}
	}

	return toProfileResponse(c, u), nil
}

func toProfileResponse(c *customer.Customer, u *user.User) *ProfileResponse {
	resp := &ProfileResponse{
		CustomerID: c.ID,
		UserID:     u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Phone:      c.Phone,
	}
	if c.BirthDate != nil {
		resp.BirthDate = c.BirthDate.Format("2006-01-02")
	}
	return resp
}
