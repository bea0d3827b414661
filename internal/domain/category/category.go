package category

import (
	"context"
	"time"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// Category 分类实体
// 图书通过 category_ids 引用多个分类
type Category struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

var (
	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")

	// ErrInvalidName 分类名称不能为空
	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "分类名称不能为空")
)

// ListParams 分类列表查询参数
type ListParams struct {
	Keyword string
	SortBy  string
	Order   string
	Start   int
	End     int
}

// Patch 分类部分更新
type Patch struct {
	Name        *string
	Description *string
}

// Repository 分类仓储接口
type Repository interface {
	Create(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id uint) (*Category, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*Category, error)
	Patch(ctx context.Context, id uint, p Patch) (*Category, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]*Category, int64, error)
}
