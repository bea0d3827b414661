package author

import (
	"context"
	"time"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// Author 作者实体
// 简单引用实体:被Book通过AuthorID引用,不内嵌
type Author struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Nationality  string    `json:"nationality,omitempty"`
	ProfileImage string    `json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
}

// 作者领域错误定义
var (
	// ErrAuthorNotFound 作者不存在
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeAuthorNotFound, "作者不存在")

	// ErrInvalidName 作者姓名不能为空
	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "作者姓名不能为空")
)

// ListParams 作者列表查询参数
type ListParams struct {
	Keyword string // 姓名关键词
	SortBy  string
	Order   string
	Start   int
	End     int
}

// Patch 作者部分更新
type Patch struct {
	Name         *string
	Nationality  *string
	ProfileImage *string
}

// Repository 作者仓储接口
type Repository interface {
	Create(ctx context.Context, a *Author) error
	FindByID(ctx context.Context, id uint) (*Author, error)
	Patch(ctx context.Context, id uint, p Patch) (*Author, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params ListParams) ([]*Author, int64, error)
}
