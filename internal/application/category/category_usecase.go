package category

import (
	"context"
	"strings"

	"github.com/xiebiao/bookshop/internal/domain/category"
)

// UseCase 分类管理用例
type UseCase struct {
	repo category.Repository
}

// NewUseCase 创建分类管理用例
func NewUseCase(repo category.Repository) *UseCase {
	return &UseCase{repo: repo}
}

// Create 创建分类
func (uc *UseCase) Create(ctx context.Context, name, description string) (*category.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, category.ErrInvalidName
	}

	c := &category.Category{
		Name:        name,
		Description: description,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get 查看分类详情
func (uc *UseCase) Get(ctx context.Context, id uint) (*category.Category, error) {
	return uc.repo.FindByID(ctx, id)
}

// List 分类列表
func (uc *UseCase) List(ctx context.Context, params category.ListParams) ([]*category.Category, int64, error) {
	return uc.repo.List(ctx, params)
}

// Patch 部分更新分类
func (uc *UseCase) Patch(ctx context.Context, id uint, p category.Patch) (*category.Category, error) {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return nil, category.ErrInvalidName
	}
	return uc.repo.Patch(ctx, id, p)
}

// Delete 删除分类(图书侧关联同事务清理)
func (uc *UseCase) Delete(ctx context.Context, id uint) error {
	return uc.repo.Delete(ctx, id)
}
