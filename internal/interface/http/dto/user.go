package dto

// RegisterRequest HTTP注册请求
// 注册同时建立登录账号和购物档案,手机号/生日为档案的可选字段
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email,max=100" example:"alice@example.com"`
	Password  string `json:"password" binding:"required,min=8,max=20" example:"passw0rd1"`
	FirstName string `json:"first_name" binding:"required,max=50" example:"三"`
	LastName  string `json:"last_name" binding:"required,max=50" example:"张"`
	Phone     string `json:"phone" binding:"omitempty,max=20" example:"13800138000"`
	BirthDate string `json:"birth_date" binding:"omitempty,datetime=2006-01-02" example:"1990-01-15"`
}

// RegisterResponse HTTP注册响应(不回传密码)
type RegisterResponse struct {
	ID         uint   `json:"id" example:"1"`
	Email      string `json:"email" example:"alice@example.com"`
	FirstName  string `json:"first_name" example:"三"`
	LastName   string `json:"last_name" example:"张"`
	CustomerID uint   `json:"customer_id" example:"1"`
}

// LoginRequest HTTP登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"alice@example.com"`
	Password string `json:"password" binding:"required" example:"passw0rd1"`
}

// LoginResponse HTTP登录响应
type LoginResponse struct {
	AccessToken  string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIs..."`
	RefreshToken string `json:"refresh_token" example:"eyJhbGciOiJIUzI1NiIs..."`
	ExpiresIn    int64  `json:"expires_in" example:"7200"` // Access Token有效期(秒)
	UserID       uint   `json:"user_id" example:"1"`
	Email        string `json:"email" example:"alice@example.com"`
}
