package user

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshop/pkg/jwt"
)

// LogoutUseCase 用户登出用例
// JWT无状态,登出靠Redis黑名单:Token进黑名单后中间件拒绝后续请求
type LogoutUseCase struct {
	jwtManager   *jwt.Manager
	sessionStore *redis.SessionStore
}

// NewLogoutUseCase 创建登出用例
func NewLogoutUseCase(jwtManager *jwt.Manager, sessionStore *redis.SessionStore) *LogoutUseCase {
	return &LogoutUseCase{
		jwtManager:   jwtManager,
		sessionStore: sessionStore,
	}
}

// Execute 执行登出
// 黑名单TTL取Token剩余有效期,过期自动清理
func (uc *LogoutUseCase) Execute(ctx context.Context, userID uint, token string) error {
	ttl := uc.jwtManager.AccessTokenExpire()
	if claims, err := uc.jwtManager.ParseToken(token); err == nil && claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			ttl = remaining
		}
	}

	if err := uc.sessionStore.AddToBlacklist(ctx, token, ttl); err != nil {
		return err
	}
	return uc.sessionStore.DeleteSession(ctx, userID)
}
