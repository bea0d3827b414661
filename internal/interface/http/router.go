package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/bookshop/internal/infrastructure/config"
	"github.com/xiebiao/bookshop/internal/interface/http/handler"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/response"
)

// Handlers 路由所需的全部HTTP处理器
type Handlers struct {
	Book      *handler.BookHandler
	Author    *handler.AuthorHandler
	Category  *handler.CategoryHandler
	Customer  *handler.CustomerHandler
	Order     *handler.OrderHandler
	Rental    *handler.RentalHandler
	Cart      *handler.CartHandler
	Checkout  *handler.CheckoutHandler
	Staff     *handler.StaffHandler
	Upload    *handler.UploadHandler
	Dashboard *handler.DashboardHandler
}

// NewRouter 创建并配置Gin引擎
//
// 路由分两种风格:
//  1. Gateway风格集合接口(/api/books等):裸JSON数组 + X-Total-Count头,
//     兼容react-admin的数据提供者约定
//  2. 本服务自有接口(购物车/结算/员工/仪表盘):统一响应信封(pkg/response)
//
// 店面读接口与购物车/结算全程免登录;后台写操作需要员工Token
func NewRouter(cfg *config.Config, h Handlers, auth *middleware.AuthMiddleware) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Metrics())

	// 健康检查
	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})

	// Prometheus指标
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Swagger文档(swag init生成docs后访问/swagger/index.html)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 上传文件静态托管
	r.Static("/uploads", cfg.Upload.Dir)

	api := r.Group("/api")
	{
		requireAuth := auth.RequireAuth()

		// 图书(读接口与点赞公开,写操作需要登录)
		books := api.Group("/books")
		{
			books.GET("", h.Book.List)
			books.GET("/:id", h.Book.Get)
			books.POST("/:id/like", h.Book.Like)
			books.POST("", requireAuth, h.Book.Create)
			books.PATCH("/:id", requireAuth, h.Book.Patch)
			books.DELETE("/:id", requireAuth, h.Book.Delete)
		}

		// 作者
		authors := api.Group("/authors")
		{
			authors.GET("", h.Author.List)
			authors.GET("/:id", h.Author.Get)
			authors.POST("", requireAuth, h.Author.Create)
			authors.PATCH("/:id", requireAuth, h.Author.Patch)
			authors.DELETE("/:id", requireAuth, h.Author.Delete)
		}

		// 分类
		categories := api.Group("/categories")
		{
			categories.GET("", h.Category.List)
			categories.GET("/:id", h.Category.Get)
			categories.POST("", requireAuth, h.Category.Create)
			categories.PATCH("/:id", requireAuth, h.Category.Patch)
			categories.DELETE("/:id", requireAuth, h.Category.Delete)
		}

		// 客户(含个人信息,整组需要登录)
		customers := api.Group("/customers")
		customers.Use(requireAuth)
		{
			customers.GET("", h.Customer.List)
			customers.GET("/:id", h.Customer.Get)
			customers.POST("", h.Customer.Create)
			customers.PATCH("/:id", h.Customer.Patch)
			customers.DELETE("/:id", h.Customer.Delete)
		}

		// 订单(后台管理,订单由结算流程创建,无POST入口)
		orders := api.Group("/purchase_orders")
		orders.Use(requireAuth)
		{
			orders.GET("", h.Order.List)
			orders.GET("/:id", h.Order.Get)
			orders.PATCH("/:id", h.Order.Patch)
			orders.POST("/:id/cancel", h.Order.Cancel)
		}

		// 租赁单(后台管理,线下流程后台录入,有POST入口)
		rentals := api.Group("/rental_orders")
		rentals.Use(requireAuth)
		{
			rentals.GET("", h.Rental.List)
			rentals.GET("/:id", h.Rental.Get)
			rentals.POST("", h.Rental.Create)
			rentals.PATCH("/:id", h.Rental.Patch)
			rentals.DELETE("/:id", h.Rental.Delete)
		}

		// 购物车(免登录,cart_id由服务端生成)
		cart := api.Group("/cart")
		{
			cart.POST("/items", h.Cart.AddItem)
			cart.GET("/:cart_id", h.Cart.Get)
			cart.DELETE("/:cart_id", h.Cart.Clear)
			cart.PATCH("/:cart_id/items/:book_id", h.Cart.UpdateItem)
			cart.DELETE("/:cart_id/items/:book_id", h.Cart.RemoveItem)
		}

		// 结算向导(免登录)
		checkout := api.Group("/checkout")
		{
			checkout.POST("/:cart_id/start", h.Checkout.Start)
			checkout.GET("/:cart_id", h.Checkout.Get)
			checkout.PUT("/:cart_id/shipping", h.Checkout.SubmitShipping)
			checkout.PUT("/:cart_id/payment", h.Checkout.SubmitPayment)
			checkout.POST("/:cart_id/back", h.Checkout.Back)
			checkout.POST("/:cart_id/submit", h.Checkout.Submit)
		}

		// 员工认证
		staff := api.Group("/staff")
		{
			staff.POST("/register", h.Staff.Register)
			staff.POST("/login", h.Staff.Login)
			staff.POST("/logout", requireAuth, h.Staff.Logout)
			staff.GET("/me", requireAuth, h.Staff.Me)
		}

		// 文件上传
		api.POST("/upload", requireAuth, h.Upload.Upload)

		// 仪表盘
		api.GET("/dashboard/stats", requireAuth, h.Dashboard.Stats)
	}

	return r
}
