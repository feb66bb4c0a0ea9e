//go:build wireinject
// +build wireinject

// Wire依赖注入定义
// 运行 `wire gen ./cmd/api` 生成wire_gen.go;
// main.go当前使用手动组装,两者保持同一依赖图
package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	appcart "github.com/xiebiao/bookshop/internal/application/cart"
	appcustomer "github.com/xiebiao/bookshop/internal/application/customer"
	apporder "github.com/xiebiao/bookshop/internal/application/order"
	appreview "github.com/xiebiao/bookshop/internal/application/review"
	appuser "github.com/xiebiao/bookshop/internal/application/user"
	"github.com/xiebiao/bookshop/internal/domain/user"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/circuitbreaker"
	"github.com/xiebiao/bookshop/pkg/jwt"
	"github.com/xiebiao/bookshop/pkg/mq"
)

// infrastructureSet 基础设施层依赖
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	redis.NewClient,
)

// repositorySet 仓储层依赖
var repositorySet = wire.NewSet(
	mysql.NewUserRepository,
	mysql.NewCustomerRepository,
	mysql.NewAddressRepository,
	mysql.NewBookRepository,
	mysql.NewAuthorRepository,
	mysql.NewGenreRepository,
	mysql.NewReviewRepository,
	mysql.NewCartRepository,
	mysql.NewOrderRepository,
	mysql.NewTxManager,
	// 用例侧的事务接口由具体TxManager实现
	wire.Bind(new(appuser.TxManager), new(*mysql.TxManager)),
	wire.Bind(new(apporder.TxManager), new(*mysql.TxManager)),
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	user.NewService,
)

// applicationSet 应用层依赖
var applicationSet = wire.NewSet(
	appuser.NewRegisterUseCase,
	appuser.NewLoginUseCase,
	appuser.NewLogoutUseCase,
	appcustomer.NewProfileUseCase,
	appcustomer.NewAddressUseCase,
	appbook.NewPublishBookUseCase,
	appbook.NewListBooksUseCase,
	appbook.NewGetBookUseCase,
	appbook.NewManageBookUseCase,
	appbook.NewCatalogUseCase,
	appreview.NewWriteReviewUseCase,
	appreview.NewListReviewsUseCase,
	appcart.NewCreateCartUseCase,
	appcart.NewGetCartUseCase,
	appcart.NewAddItemUseCase,
	appcart.NewUpdateItemUseCase,
	appcart.NewRemoveItemUseCase,
	appcart.NewDeleteCartUseCase,
	apporder.NewPlaceOrderUseCase,
	apporder.NewGetOrderUseCase,
	apporder.NewListOrdersUseCase,
	apporder.NewUpdatePaymentUseCase,
)

// middlewareSet 中间件与会话依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	provideSessionStore,
	provideRatingCache,
	provideEventPublisher,
	provideMQBreaker,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewUserHandler,
	handler.NewCustomerHandler,
	handler.NewBookHandler,
	handler.NewCatalogHandler,
	handler.NewReviewHandler,
	handler.NewCartHandler,
	handler.NewOrderHandler,
)

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

// provideSessionStore 从Redis客户端创建Session存储
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	return redis.NewSessionStore(client)
}

// provideRatingCache 从Redis客户端创建评分缓存
func provideRatingCache(client *goredis.Client) *redis.RatingCache {
	return redis.NewRatingCache(client)
}

// provideEventPublisher 可选的MQ事件发布者
// MQ关闭时返回nil,用例侧跳过事件发布
func provideEventPublisher(cfg *config.Config) (apporder.EventPublisher, error) {
	if !cfg.MQ.Enabled {
		return nil, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
}

// provideMQBreaker MQ发布链路的熔断器
func provideMQBreaker() *circuitbreaker.Breaker {
	return circuitbreaker.New("mq-publish", circuitbreaker.Config{})
}

// provideGinEngine 创建并配置Gin引擎
func provideGinEngine(
	cfg *config.Config,
	userHandler *handler.UserHandler,
	customerHandler *handler.CustomerHandler,
	bookHandler *handler.BookHandler,
	catalogHandler *handler.CatalogHandler,
	reviewHandler *handler.ReviewHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.Metrics())
	registerRoutes(r, userHandler, customerHandler, bookHandler, catalogHandler, reviewHandler, cartHandler, orderHandler, authMiddleware)
	return r
}

// InitializeApp Wire注入器入口
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		provideGinEngine,
	)
	return nil, nil
}
