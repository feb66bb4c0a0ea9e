package user

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshop/pkg/jwt"
)

// LoginUseCase 用户登录用例
// 凭证校验在领域服务完成;登录成功后签发JWT并在Redis记录会话
type LoginUseCase struct {
	userService  user.Service
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewLoginUseCase 创建登录用例
func NewLoginUseCase(
	userService user.Service,
	jwtManager *jwt.Manager,
	sessionStore *redis.SessionStore,
) *LoginUseCase {
	return &LoginUseCase{
		userService:  userService,
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string
	Password string
	ClientIP string
}

// LoginResponse 登录响应
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"` // Access Token有效期(秒)
	UserID       uint   `json:"user_id"`
	Email        string `json:"email"`
}

// Execute 执行登录
func (uc *LoginUseCase) Execute(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	u, err := uc.userService.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}

	tokens, err := uc.jwtManager.GenerateToken(u.ID, u.Email, u.FullName())
	if err != nil {
		return nil, err
	}

	// 会话信息仅用于审计/强制下线,保存失败不阻断登录
	_ = uc.sessionStore.SaveSession(ctx, u.ID, map[string]interface{}{
		"login_at":  time.Now().Format(time.RFC3339),
		"client_ip": req.ClientIP,
	}, uc.jwtManager.RefreshTokenExpire())

	return &LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
		ExpiresIn:    int64(uc.jwtManager.AccessTokenExpire().Seconds()),
		UserID:       u.ID,
		Email:        u.Email,
	}, nil
}
