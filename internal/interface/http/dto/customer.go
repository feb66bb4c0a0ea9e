package dto

// UpdateProfileRequest HTTP更新档案请求
// 空字符串字段表示不修改
type UpdateProfileRequest struct {
	FirstName string `json:"first_name" binding:"omitempty,max=50" example:"三"`
	LastName  string `json:"last_name" binding:"omitempty,max=50" example:"张"`
	Phone     string `json:"phone" binding:"omitempty,max=20" example:"13800138000"`
	BirthDate string `json:"birth_date" binding:"omitempty,datetime=2006-01-02" example:"1990-01-15"`
}

// CreateAddressRequest HTTP创建收货地址请求
type CreateAddressRequest struct {
	Street string `json:"street" binding:"required,max=200" example:"中关村大街1号"`
	City   string `json:"city" binding:"required,max=100" example:"北京"`
}

// UpdateAddressRequest HTTP更新收货地址请求
type UpdateAddressRequest struct {
	Street string `json:"street" binding:"required,max=200" example:"中关村大街1号"`
	City   string `json:"city" binding:"required,max=100" example:"北京"`
}

// AddressResponse HTTP收货地址响应
type AddressResponse struct {
	ID     uint   `json:"id" example:"1"`
	Street string `json:"street" example:"中关村大街1号"`
	City   string `json:"city" example:"北京"`
}
