package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/xiebiao/bookshop/docs" // swagger文档注册

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
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/mq"
	"github.com/xiebiao/bookshop/pkg/response"
)

// @title           Bookshop API
// @version         1.0
// @description     网上书店后端：图书目录、购物车、订单与书评
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - Redis: %s\n", cfg.Redis.Addr())

	metrics.InitMetrics()

	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		log.Fatalf("初始化Redis失败: %v", err)
	}

	// MQ可选:未部署RabbitMQ时关闭开关,订单事件只记日志
	var publisher apporder.EventPublisher
	if cfg.MQ.Enabled {
		p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange)
		if err != nil {
			log.Fatalf("初始化MQ失败: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	// 依赖注入(手动组装)
	// Repository → Service → UseCase → Handler

	// 基础设施层
	userRepo := mysql.NewUserRepository(db)
	customerRepo := mysql.NewCustomerRepository(db)
	addressRepo := mysql.NewAddressRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	authorRepo := mysql.NewAuthorRepository(db)
	genreRepo := mysql.NewGenreRepository(db)
	reviewRepo := mysql.NewReviewRepository(db)
	cartRepo := mysql.NewCartRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	txManager := mysql.NewTxManager(db)
	sessionStore := redis.NewSessionStore(redisClient)
	ratingCache := redis.NewRatingCache(redisClient)
	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
	mqBreaker := circuitbreaker.New("mq-publish", circuitbreaker.Config{})

	// 领域层
	userService := user.NewService(userRepo)

	// 应用层
	registerUseCase := appuser.NewRegisterUseCase(userService, userRepo, customerRepo, txManager)
	loginUseCase := appuser.NewLoginUseCase(userService, jwtManager, sessionStore)
	logoutUseCase := appuser.NewLogoutUseCase(jwtManager, sessionStore)
	profileUseCase := appcustomer.NewProfileUseCase(customerRepo, userRepo)
	addressUseCase := appcustomer.NewAddressUseCase(customerRepo, addressRepo)
	publishBookUseCase := appbook.NewPublishBookUseCase(bookRepo, authorRepo, genreRepo)
	listBooksUseCase := appbook.NewListBooksUseCase(bookRepo)
	getBookUseCase := appbook.NewGetBookUseCase(bookRepo, reviewRepo, ratingCache)
	manageBookUseCase := appbook.NewManageBookUseCase(bookRepo, orderRepo)
	catalogUseCase := appbook.NewCatalogUseCase(authorRepo, genreRepo, bookRepo)
	writeReviewUseCase := appreview.NewWriteReviewUseCase(reviewRepo, bookRepo, ratingCache)
	listReviewsUseCase := appreview.NewListReviewsUseCase(reviewRepo, bookRepo)
	createCartUseCase := appcart.NewCreateCartUseCase(cartRepo)
	getCartUseCase := appcart.NewGetCartUseCase(cartRepo, bookRepo)
	addItemUseCase := appcart.NewAddItemUseCase(cartRepo, bookRepo)
	updateItemUseCase := appcart.NewUpdateItemUseCase(cartRepo)
	removeItemUseCase := appcart.NewRemoveItemUseCase(cartRepo)
	deleteCartUseCase := appcart.NewDeleteCartUseCase(cartRepo)
	placeOrderUseCase := apporder.NewPlaceOrderUseCase(
		orderRepo, cartRepo, bookRepo, customerRepo, addressRepo,
		txManager, publisher, mqBreaker,
	)
	getOrderUseCase := apporder.NewGetOrderUseCase(orderRepo, customerRepo)
	listOrdersUseCase := apporder.NewListOrdersUseCase(orderRepo, customerRepo)
	updatePaymentUseCase := apporder.NewUpdatePaymentUseCase(orderRepo, customerRepo, publisher, mqBreaker)

	// 接口层
	userHandler := handler.NewUserHandler(registerUseCase, loginUseCase, logoutUseCase)
	customerHandler := handler.NewCustomerHandler(profileUseCase, addressUseCase)
	bookHandler := handler.NewBookHandler(publishBookUseCase, listBooksUseCase, getBookUseCase, manageBookUseCase)
	catalogHandler := handler.NewCatalogHandler(catalogUseCase)
	reviewHandler := handler.NewReviewHandler(writeReviewUseCase, listReviewsUseCase)
	cartHandler := handler.NewCartHandler(
		createCartUseCase, getCartUseCase, addItemUseCase,
		updateItemUseCase, removeItemUseCase, deleteCartUseCase,
	)
	orderHandler := handler.NewOrderHandler(placeOrderUseCase, getOrderUseCase, listOrdersUseCase, updatePaymentUseCase)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	r.Use(middleware.Metrics())

	registerRoutes(r, userHandler, customerHandler, bookHandler, catalogHandler, reviewHandler, cartHandler, orderHandler, authMiddleware)

	// 启动与优雅退出
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("\n🚀 服务启动成功！\n")
		fmt.Printf("   访问地址: http://localhost%s\n", srv.Addr)
		fmt.Printf("   健康检查: http://localhost%s/ping\n", srv.Addr)
		fmt.Printf("   API文档:  http://localhost%s/swagger/index.html\n", srv.Addr)
		fmt.Printf("   指标采集: http://localhost%s/metrics\n", srv.Addr)
		fmt.Printf("\n按Ctrl+C停止服务\n\n")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	<-ctx.Done()
	stop()
	log.Println("收到退出信号，正在关闭服务...")

	// 给在途请求留出收尾时间
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("关闭服务失败: %v", err)
	}
	log.Println("服务已退出")
}

// registerRoutes 注册路由
// 公开接口:图书/目录/书评查询、购物车全部操作、注册登录
// 需登录:下单及订单查询、档案与地址、内容管理类写操作
func registerRoutes(
	r *gin.Engine,
	userHandler *handler.UserHandler,
	customerHandler *handler.CustomerHandler,
	bookHandler *handler.BookHandler,
	catalogHandler *handler.CatalogHandler,
	reviewHandler *handler.ReviewHandler,
	cartHandler *handler.CartHandler,
	orderHandler *handler.OrderHandler,
	authMiddleware *middleware.AuthMiddleware,
) {
	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档(生产环境建议禁用或加访问控制)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")
	{
		// 用户模块
		users := v1.Group("/users")
		{
			users.POST("/register", userHandler.Register)
			users.POST("/login", userHandler.Login)
			users.POST("/logout", authMiddleware.RequireAuth(), userHandler.Logout)
		}

		// 客户档案与收货地址(需要登录)
		customers := v1.Group("/customers")
		customers.Use(authMiddleware.RequireAuth())
		{
			customers.GET("/me", customerHandler.GetProfile)
			customers.PUT("/me", customerHandler.UpdateProfile)
			customers.POST("/me/addresses", customerHandler.CreateAddress)
			customers.GET("/me/addresses", customerHandler.ListAddresses)
			customers.PUT("/me/addresses/:id", customerHandler.UpdateAddress)
			customers.DELETE("/me/addresses/:id", customerHandler.DeleteAddress)
		}

		// 图书模块
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.ListBooks)
			books.GET("/:id", bookHandler.GetBook)
			books.GET("/:id/reviews", reviewHandler.ListReviews)

			books.POST("", authMiddleware.RequireAuth(), bookHandler.PublishBook)
			books.PUT("/:id", authMiddleware.RequireAuth(), bookHandler.UpdateBook)
			books.DELETE("/:id", authMiddleware.RequireAuth(), bookHandler.DeleteBook)
			books.POST("/:id/reviews", authMiddleware.RequireAuth(), reviewHandler.WriteReview)
		}

		// 目录模块(作者/分类)
		authors := v1.Group("/authors")
		{
			authors.GET("", catalogHandler.ListAuthors)
			authors.GET("/:id", catalogHandler.GetAuthor)
			authors.POST("", authMiddleware.RequireAuth(), catalogHandler.CreateAuthor)
			authors.DELETE("/:id", authMiddleware.RequireAuth(), catalogHandler.DeleteAuthor)
		}
		genres := v1.Group("/genres")
		{
			genres.GET("", catalogHandler.ListGenres)
			genres.POST("", authMiddleware.RequireAuth(), catalogHandler.CreateGenre)
			genres.PUT("/:id/featured", authMiddleware.RequireAuth(), catalogHandler.SetFeaturedBook)
			genres.DELETE("/:id", authMiddleware.RequireAuth(), catalogHandler.DeleteGenre)
		}

		// 购物车模块(游客可用,持有UUID即可操作)
		carts := v1.Group("/carts")
		{
			carts.POST("", cartHandler.CreateCart)
			carts.GET("/:id", cartHandler.GetCart)
			carts.DELETE("/:id", cartHandler.DeleteCart)
			carts.POST("/:id/items", cartHandler.AddItem)
			carts.PUT("/:id/items/:item_id", cartHandler.UpdateItem)
			carts.DELETE("/:id/items/:item_id", cartHandler.RemoveItem)
		}

		// 订单模块(全部需要登录)
		orders := v1.Group("/orders")
		orders.Use(authMiddleware.RequireAuth())
		{
			orders.POST("", orderHandler.PlaceOrder)
			orders.GET("", orderHandler.ListOrders)
			orders.GET("/:order_no", orderHandler.GetOrder)
			orders.PUT("/:order_no/payment", orderHandler.UpdatePayment)
		}
	}
}
