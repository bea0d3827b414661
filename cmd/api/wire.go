//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 运行 `wire gen ./cmd/api` 生成wire_gen.go;
// main.go当前使用手动组装,本文件提供等价的自动组装入口

package main

import (
	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	goredis "github.com/redis/go-redis/v9"

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
	"github.com/xiebiao/bookshop/pkg/mq"
	"github.com/xiebiao/bookshop/pkg/upload"
)

// infrastructureSet 基础设施层
var infrastructureSet = wire.NewSet(
	config.Load,
	mysql.NewDB,
	provideRedisClient,
	provideCartRepository,
	provideCheckoutRepository,
	provideSessionStore,
	providePublisher,
	provideUploadStore,
)

// repositorySet 仓储层
var repositorySet = wire.NewSet(
	mysql.NewBookRepository,
	mysql.NewAuthorRepository,
	mysql.NewCategoryRepository,
	mysql.NewCustomerRepository,
	mysql.NewOrderRepository,
	mysql.NewRentalRepository,
	mysql.NewStaffRepository,
)

// domainSet 领域层
var domainSet = wire.NewSet(
	staff.NewService,
	providePricingPolicy,
)

// applicationSet 应用层
var applicationSet = wire.NewSet(
	appbook.NewUseCase,
	appauthor.NewUseCase,
	appcategory.NewUseCase,
	appcustomer.NewUseCase,
	apporder.NewUseCase,
	apprental.NewUseCase,
	appcart.NewUseCase,
	appcheckout.NewUseCase,
	appcheckout.NewPlaceOrderUseCase,
	appstaff.NewRegisterUseCase,
	appstaff.NewLoginUseCase,
	appstaff.NewLogoutUseCase,
	appdashboard.NewStatsUseCase,
)

// interfaceSet 接口层
var interfaceSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
	handler.NewBookHandler,
	handler.NewAuthorHandler,
	handler.NewCategoryHandler,
	handler.NewCustomerHandler,
	handler.NewOrderHandler,
	handler.NewRentalHandler,
	handler.NewCartHandler,
	handler.NewCheckoutHandler,
	handler.NewStaffHandler,
	handler.NewUploadHandler,
	handler.NewDashboardHandler,
	wire.Struct(new(httpiface.Handlers), "*"),
	httpiface.NewRouter,
)

// provideRedisClient memory模式下返回nil,不强制依赖Redis
func provideRedisClient(cfg *config.Config) (*goredis.Client, error) {
	if cfg.Cart.Store != "redis" {
		return nil, nil
	}
	return redis.NewClient(cfg)
}

func provideCartRepository(cfg *config.Config, client *goredis.Client) cart.Repository {
	if client != nil {
		return redis.NewCartStore(client, cfg.Cart.SessionTTL)
	}
	return memory.NewCartStore()
}

func provideCheckoutRepository(cfg *config.Config, client *goredis.Client) checkout.Repository {
	if client != nil {
		return redis.NewCheckoutStore(client, cfg.Cart.SessionTTL)
	}
	return memory.NewCheckoutStore()
}

// provideSessionStore 员工会话存储,无Redis时返回nil(降级为纯JWT)
func provideSessionStore(client *goredis.Client) *redis.SessionStore {
	if client == nil {
		return nil
	}
	return redis.NewSessionStore(client)
}

// providePublisher MQ地址为空时返回nil接口,禁用事件发布
func providePublisher(cfg *config.Config) (appcheckout.EventPublisher, error) {
	if cfg.MQ.URL == "" {
		return nil, nil
	}
	return mq.NewPublisher(cfg.MQ.URL, cfg.MQ.Exchange, "topic")
}

func provideUploadStore(cfg *config.Config) (*upload.Store, error) {
	return upload.NewStore(cfg.Upload.Dir, cfg.Upload.BaseURL, cfg.Upload.MaxSize)
}

func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpire,
		cfg.JWT.RefreshTokenExpire,
	)
}

func providePricingPolicy(cfg *config.Config) pricing.Policy {
	return pricing.Policy{
		FreeThreshold: cfg.Shipping.FreeThreshold,
		Fee:           cfg.Shipping.Fee,
	}
}

// InitializeApp 构建完整的Gin引擎
func InitializeApp() (*gin.Engine, error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		interfaceSet,
	)
	return nil, nil
}
