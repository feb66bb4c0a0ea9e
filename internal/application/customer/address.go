package customer

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/customer"
)

// AddressUseCase 收货地址用例
// 所有操作先按userID定位客户档案,再校验地址归属,防止越权操作他人地址
type AddressUseCase struct {
	customerRepo customer.Repository
	addressRepo  customer.AddressRepository
}

// NewAddressUseCase 创建地址用例
func NewAddressUseCase(customerRepo customer.Repository, addressRepo customer.AddressRepository) *AddressUseCase {
	return &AddressUseCase{
		customerRepo: customerRepo,
		addressRepo:  addressRepo,
	}
}

// AddressResponse 地址响应
type AddressResponse struct {
	ID     uint   `json:"id"`
	Street string `json:"street"`
	City   string `json:"city"`
}

// CreateAddressRequest 创建地址请求
type CreateAddressRequest struct {
	UserID uint
	Street string
	City   string
}

// Create 创建收货地址
func (uc *AddressUseCase) Create(ctx context.Context, req CreateAddressRequest) (*AddressResponse, error) {
	c, err := uc.customerRepo.FindByUserID(ctx, req.UserID)
	if err != nil {
		return nil, err
	}

	addr, err := customer.NewAddress(c.ID, req.Street, req.City)
	if err != nil {
		return nil, err
	}
	if err := uc.addressRepo.Create(ctx, addr); err != nil {
		return nil, err
	}

	return toAddressResponse(addr), nil
}

// List 查询当前客户的全部收货地址
func (uc *AddressUseCase) List(ctx context.Context, userID uint) ([]*AddressResponse, error) {
	c, err := uc.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	addresses, err := uc.addressRepo.ListByCustomer(ctx, c.ID)
	if err != nil {
		return nil, err
	}

	resp := make([]*AddressResponse, len(addresses))
	for i, addr := range addresses {
		resp[i] = toAddressResponse(addr)
	}
	return resp, nil
}

// UpdateAddressRequest 更新地址请求(空值表示不修改)
type UpdateAddressRequest struct {
	UserID    uint
	AddressID uint
	Street    string
	City      string
}

// Update 更新收货地址
func (uc *AddressUseCase) Update(ctx context.Context, req UpdateAddressRequest) (*AddressResponse, error) {
	addr, err := uc.findOwned(ctx, req.UserID, req.AddressID)
	if err != nil {
		return nil, err
	}

	addr.Update(req.Street, req.City)
	if err := uc.addressRepo.Update(ctx, addr); err != nil {
		return nil, err
	}
	return toAddressResponse(addr), nil
}

// Delete 删除收货地址
// 引用该地址的历史订单由外键SET NULL保留
func (uc *AddressUseCase) Delete(ctx context.Context, userID, addressID uint) error {
	if _, err := uc.findOwned(ctx, userID, addressID); err != nil {
		return err
	}
	return uc.addressRepo.Delete(ctx, addressID)
}

// findOwned 查找地址并校验归属
func (uc *AddressUseCase) findOwned(ctx context.Context, userID, addressID uint) (*customer.Address, error) {
	c, err := uc.customerRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	addr, err := uc.addressRepo.FindByID(ctx, addressID)
	if err != nil {
		return nil, err
	}
	if !addr.IsOwnedBy(c.ID) {
		// 返回NotFound而非Forbidden,不暴露他人地址的存在
		return nil, customer.ErrAddressNotFound
	}
	return addr, nil
}

func toAddressResponse(a *customer.Address) *AddressResponse {
	return &AddressResponse{
		ID:     a.ID,
		Street: a.Street,
		City:   a.City,
	}
}
