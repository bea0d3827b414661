package customer

import (
	"context"
	"time"
)

// ListParams 客户列表查询参数
type ListParams struct {
	Keyword string // 姓名/邮箱关键词
	Email   string // 精确匹配
	SortBy  string
	Order   string
	Start   int
	End     int
}

// Patch 客户部分更新
type Patch struct {
	Name        *string
	Email       *string
	Phone       *string
	Address     *string
	BirthDate   *string
	Gender      *string
	TotalOrders *int
}

// Repository 客户仓储接口
// Delete 供下单补偿流程回滚新建客户档案使用
type Repository interface {
	Create(ctx context.Context, c *Customer) error
	FindByID(ctx context.Context, id uint) (*Customer, error)
	FindByEmail(ctx context.Context, email string) (*Customer, error)
	Patch(ctx context.Context, id uint, p Patch) (*Customer, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]*Customer, int64, error)
	CountSince(ctx context.Context, since time.Time) (int64, error)
}
