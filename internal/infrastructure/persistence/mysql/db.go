package mysql

import (
	"fmt"
	"log"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookshop/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	log.Println("✓ 数据库连接成功")

	// 自动迁移表结构（开发环境）
	// 注意：生产环境应使用专门的迁移工具（如golang-migrate）
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&AuthorModel{},
		&CategoryModel{},
		&BookModel{},
		&BookCategoryModel{},
		&CustomerModel{},
		&OrderModel{},
		&OrderItemModel{},
		&RentalOrderModel{},
		&RentalItemModel{},
		&StaffModel{},
	)
}

// AuthorModel GORM作者模型
type AuthorModel struct {
	ID           uint           `gorm:"primaryKey"`
	Name         string         `gorm:"index;size:100;not null;comment:姓名"`
	Nationality  string         `gorm:"size:50;comment:国籍"`
	ProfileImage string         `gorm:"size:500;comment:头像URL"`
	CreatedAt    time.Time      `gorm:"comment:创建时间"`
	UpdatedAt    time.Time      `gorm:"comment:更新时间"`
	DeletedAt    gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (AuthorModel) TableName() string {
	return "authors"
}

// CategoryModel GORM分类模型
type CategoryModel struct {
	ID          uint           `gorm:"primaryKey"`
	Name        string         `gorm:"uniqueIndex;size:100;not null;comment:分类名"`
	Description string         `gorm:"size:500;comment:分类说明"`
	CreatedAt   time.Time      `gorm:"comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

// BookModel GORM图书模型
// 设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. 分类多对多关系存储在book_categories连接表
// 3. 添加索引优化列表查询性能
type BookModel struct {
	ID            uint           `gorm:"primaryKey"`
	Title         string         `gorm:"index:idx_search;size:200;not null;comment:书名"`
	AuthorID      uint           `gorm:"index;not null;comment:作者ID"`
	PublishedDate time.Time      `gorm:"type:date;comment:出版日期"`
	Price         int64          `gorm:"index:idx_list;not null;comment:价格(分)"`
	Stock         int            `gorm:"default:0;comment:库存数量"`
	Likes         int            `gorm:"default:0;comment:点赞数"`
	CoverURL      string         `gorm:"size:500;comment:封面图片URL"`
	Description   string         `gorm:"type:text;comment:图书描述"`
	CreatedAt     time.Time      `gorm:"index:idx_list;comment:创建时间"`
	UpdatedAt     time.Time      `gorm:"comment:更新时间"`
	DeletedAt     gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (BookModel) TableName() string {
	return "books"
}

// BookCategoryModel 图书-分类连接表
// 手工维护连接表(不用GORM的many2many标签),便于分类包含查询
type BookCategoryModel struct {
	BookID     uint `gorm:"primaryKey;autoIncrement:false;comment:图书ID"`
	CategoryID uint `gorm:"primaryKey;autoIncrement:false;index;comment:分类ID"`
}

func (BookCategoryModel) TableName() string {
	return "book_categories"
}

// CustomerModel GORM客户模型
type CustomerModel struct {
	ID               uint      `gorm:"primaryKey"`
	Name             string    `gorm:"index;size:100;not null;comment:姓名"`
	Email            string    `gorm:"index;size:100;not null;comment:邮箱"`
	Phone            string    `gorm:"size:30;not null;comment:电话"`
	Address          string    `gorm:"size:500;comment:地址"`
	BirthDate        string    `gorm:"size:10;comment:出生日期"`
	Gender           string    `gorm:"size:10;comment:性别"`
	RegistrationDate time.Time `gorm:"comment:注册时间"`
	TotalOrders      int       `gorm:"default:0;comment:累计订单数"`
	CreatedAt        time.Time `gorm:"comment:创建时间"`
	UpdatedAt        time.Time `gorm:"comment:更新时间"`
}

func (CustomerModel) TableName() string {
	return "customers"
}

// OrderModel GORM订单模型
// 设计说明:
// 1. 与OrderItemModel是一对多关系
// 2. OrderNo有唯一索引(业务主键)
// 3. Status使用字符串存储,与接口层状态值一致
type OrderModel struct {
	ID              uint             `gorm:"primaryKey"`
	OrderNo         string           `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	CustomerID      uint             `gorm:"index;not null;comment:客户ID"`
	OrderDate       time.Time        `gorm:"index;comment:下单时间"`
	Status          string           `gorm:"index;size:20;not null;comment:订单状态"`
	TotalAmount     int64            `gorm:"not null;comment:订单总金额(分)"`
	ShippingAddress string           `gorm:"size:500;comment:收货地址"`
	PaymentMethod   string           `gorm:"size:30;comment:支付方式"`
	ShippingFee     int64            `gorm:"default:0;comment:运费(分)"`
	Discount        int64            `gorm:"default:0;comment:折扣(分)"`
	Notes           string           `gorm:"size:500;comment:备注"`
	Items           []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt       time.Time        `gorm:"index;comment:创建时间"`
	UpdatedAt       time.Time        `gorm:"comment:更新时间"`
}

func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型
// 记录下单时的价格快照(UnitPrice字段)
type OrderItemModel struct {
	ID        uint  `gorm:"primaryKey"`
	OrderID   uint  `gorm:"index;not null;comment:订单ID"`
	BookID    uint  `gorm:"index;not null;comment:图书ID"`
	Quantity  int   `gorm:"not null;comment:购买数量"`
	UnitPrice int64 `gorm:"not null;comment:下单时单价(分)"`
	Subtotal  int64 `gorm:"not null;comment:小计(分)"`
}

func (OrderItemModel) TableName() string {
	return "order_items"
}

// RentalOrderModel GORM租赁单模型
// 设计说明:
// 1. 与RentalItemModel是一对多关系
// 2. 日期列使用DATE类型,支持Gateway按日等值过滤
// 3. ActualReturnDate可空(未归还时为NULL)
type RentalOrderModel struct {
	ID               uint              `gorm:"primaryKey"`
	CustomerID       uint              `gorm:"index;not null;comment:客户ID"`
	RentalDate       time.Time         `gorm:"type:date;index;comment:起租日"`
	ReturnDate       time.Time         `gorm:"type:date;comment:约定归还日"`
	ActualReturnDate *time.Time        `gorm:"type:date;comment:实际归还日"`
	Status           string            `gorm:"index;size:20;not null;comment:租赁单状态"`
	TotalAmount      int64             `gorm:"not null;comment:租金总额(分)"`
	Deposit          int64             `gorm:"default:0;comment:押金(分)"`
	LateFee          int64             `gorm:"default:0;comment:逾期费(分)"`
	RentalAddress    string            `gorm:"size:500;comment:租赁地址"`
	Notes            string            `gorm:"size:500;comment:备注"`
	Items            []RentalItemModel `gorm:"foreignKey:RentalOrderID"`
	CreatedAt        time.Time         `gorm:"index;comment:创建时间"`
	UpdatedAt        time.Time         `gorm:"comment:更新时间"`
}

func (RentalOrderModel) TableName() string {
	return "rental_orders"
}

// RentalItemModel GORM租赁明细模型
// 记录起租时的日租金快照(DailyRate字段)
type RentalItemModel struct {
	ID            uint  `gorm:"primaryKey"`
	RentalOrderID uint  `gorm:"index;not null;comment:租赁单ID"`
	BookID        uint  `gorm:"index;not null;comment:图书ID"`
	RentalDays    int   `gorm:"not null;comment:租期天数"`
	DailyRate     int64 `gorm:"not null;comment:日租金(分)"`
	Subtotal      int64 `gorm:"not null;comment:小计(分)"`
}

func (RentalItemModel) TableName() string {
	return "rental_items"
}

// StaffModel GORM员工模型
type StaffModel struct {
	ID           uint           `gorm:"primaryKey"`
	Email        string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Name         string         `gorm:"size:50;not null;comment:姓名"`
	PasswordHash string         `gorm:"size:255;not null;comment:密码(bcrypt加密)"`
	Role         string         `gorm:"size:20;not null;comment:角色"`
	CreatedAt    time.Time      `gorm:"comment:创建时间"`
	UpdatedAt    time.Time      `gorm:"comment:更新时间"`
	DeletedAt    gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

func (StaffModel) TableName() string {
	return "staffs"
}
