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

	appauthor "github.com/xiebiao/bookshop/internal/application/author"
	appbook "github.com/xiebiao/bookshop/internal/application/book"
	appcart "github.com/xiebiao/bookshop/internal/application/cart"
	appcategory "github.com/xiebiao/bookshop/internal/application/category"
	appcheckout "github.com/xiebiao/bookshop/internal/application/checkout"
	appcustomer "github.com/xiebiao/bookshop/internal/application/customer"
	appdashboard "github.com/xiebiao/bookshop/internal/application/dashboard"
	apporder "github.com/xiebiao/bookshop/internal/application/order"
	apprental "github.com/xiebiao/bookshop/internal/application/rental"
	appstaff "github.com/xiebiao/bookshop/internal/application/staff"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/checkout"
	"github.com/xiebiao/bookshop/internal/domain/pricing"
	"github.com/xiebiao/bookshop/internal/domain/staff"
	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/redis"
	httpiface "github.com/xiebiao/bookshop/internal/interface/http"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/jwt"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/mq"
	"github.com/xiebiao/bookshop/pkg/upload"
)

// @title          书店服务API
// @version        1.0
// @description    图书/作者/分类/客户/订单的后台管理接口与购物车、三步结算流程
// @BasePath       /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description 填写 "Bearer {token}"
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	fmt.Printf("✓ 配置加载成功\n")
	fmt.Printf("  - 服务端口: %d\n", cfg.Server.Port)
	fmt.Printf("  - 运行模式: %s\n", cfg.Server.Mode)
	fmt.Printf("  - 数据库: %s:%d/%s\n", cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)
	fmt.Printf("  - 购物车存储: %s\n", cfg.Cart.Store)

	// 2. 注册Prometheus指标(必须在任何请求处理前完成)
	metrics.Init()

	// 3. 初始化数据库连接
	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	// 4. 购物车/结算会话存储
	// memory模式不依赖Redis,单机开发可用;redis模式支持多实例共享
	var (
		cartRepo     cart.Repository
		sessionRepo  checkout.Repository
		sessionStore *redis.SessionStore // 员工会话,仅redis模式可用
	)
	switch cfg.Cart.Store {
	case "redis":
		redisClient, err := redis.NewClient(cfg)
		if err != nil {
			log.Fatalf("初始化Redis失败: %v", err)
		}
		cartRepo = redis.NewCartStore(redisClient, cfg.Cart.SessionTTL)
		sessionRepo = redis.NewCheckoutStore(redisClient, cfg.Cart.SessionTTL)
		sessionStore = redis.NewSessionStore(redisClient)
	default:
		cartRepo = memory.NewCartStore()
		sessionRepo = memory.NewCheckoutStore()
	}

	// 5. 事件发布(未配置MQ地址时不发布)
	var publisher appcheckout.EventPublisher
	if cfg.MQ.URL != "" {
		p, err := mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
		if err != nil {
			log.Fatalf("初始化RabbitMQ失败: %v", err)
		}
		defer p.Close()
		publisher = p
	}

	// 6. 依赖注入(手动组装)
	// Repository ← Service ← UseCase ← Handler
	bookRepo := mysql.NewBookRepository(db)
	authorRepo := mysql.NewAuthorRepository(db)
	categoryRepo := mysql.NewCategoryRepository(db)
	customerRepo := mysql.NewCustomerRepository(db)
	orderRepo := mysql.NewOrderRepository(db)
	rentalRepo := mysql.NewRentalRepository(db)
	staffRepo := mysql.NewStaffRepository(db)

	jwtManager := jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
	staffService := staff.NewService(staffRepo)
	policy := pricing.Policy{
		FreeThreshold: cfg.Shipping.FreeThreshold,
		Fee:           cfg.Shipping.Fee,
	}

	uploadStore, err := upload.NewStore(cfg.Upload.Dir, cfg.Upload.BaseURL, cfg.Upload.MaxSize)
	if err != nil {
		log.Fatalf("初始化上传目录失败: %v", err)
	}

	// 应用层
	bookUC := appbook.NewUseCase(bookRepo, authorRepo, categoryRepo)
	authorUC := appauthor.NewUseCase(authorRepo)
	categoryUC := appcategory.NewUseCase(categoryRepo)
	customerUC := appcustomer.NewUseCase(customerRepo)
	orderUC := apporder.NewUseCase(orderRepo)
	rentalUC := apprental.NewUseCase(rentalRepo, bookRepo)
	cartUC := appcart.NewUseCase(cartRepo, bookRepo, policy)
	checkoutUC := appcheckout.NewUseCase(sessionRepo, cartRepo, policy)
	placeOrderUC := appcheckout.NewPlaceOrderUseCase(
		sessionRepo, cartRepo, bookRepo, customerRepo, orderRepo, policy, publisher,
	)
	registerUC := appstaff.NewRegisterUseCase(staffService)
	loginUC := appstaff.NewLoginUseCase(staffService, jwtManager, sessionStore)
	logoutUC := appstaff.NewLogoutUseCase(sessionStore)
	statsUC := appdashboard.NewStatsUseCase(bookRepo, orderRepo, rentalRepo, customerRepo)

	// 接口层
	handlers := httpiface.Handlers{
		Book:      handler.NewBookHandler(bookUC),
		Author:    handler.NewAuthorHandler(authorUC),
		Category:  handler.NewCategoryHandler(categoryUC),
		Customer:  handler.NewCustomerHandler(customerUC),
		Order:     handler.NewOrderHandler(orderUC),
		Rental:    handler.NewRentalHandler(rentalUC),
		Cart:      handler.NewCartHandler(cartUC),
		Checkout:  handler.NewCheckoutHandler(checkoutUC, placeOrderUC),
		Staff:     handler.NewStaffHandler(registerUC, loginUC, logoutUC),
		Upload:    handler.NewUploadHandler(uploadStore),
		Dashboard: handler.NewDashboardHandler(statsUC),
	}
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, sessionStore)

	r := httpiface.NewRouter(cfg, handlers, authMiddleware)

	// 7. 启动HTTP服务(支持优雅停机)
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		fmt.Printf("\n🚀 服务启动成功: http://localhost%s\n", srv.Addr)
		fmt.Printf("   API文档: http://localhost%s/swagger/index.html\n", srv.Addr)
		fmt.Printf("   指标: http://localhost%s/metrics\n\n", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("启动服务失败: %v", err)
		}
	}()

	<-ctx.Done()
	fmt.Println("\n收到退出信号,正在停止服务...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("停止服务超时: %v", err)
	}
	fmt.Println("服务已停止")
}
