package author

import (
	"context"
	"strings"

	"github.com/xiebiao/bookshop/internal/domain/author"
)

// UseCase 作者管理用例
type UseCase struct {
	repo author.Repository
}

// NewUseCase 创建作者管理用例
func NewUseCase(repo author.Repository) *UseCase {
	return &UseCase{repo: repo}
}

// Create 创建作者
func (uc *UseCase) Create(ctx context.Context, name, nationality, profileImage string) (*author.Author, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, author.ErrInvalidName
	}

	a := &author.Author{
		Name:         name,
		Nationality:  nationality,
		ProfileImage: profileImage,
	}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Get 查看作者详情
func (uc *UseCase) Get(ctx context.Context, id uint) (*author.Author, error) {
	return uc.repo.FindByID(ctx, id)
}

// List 作者列表
func (uc *UseCase) List(ctx context.Context, params author.ListParams) ([]*author.Author, int64, error) {
	return uc.repo.List(ctx, params)
}

// Patch 部分更新作者
func (uc *UseCase) Patch(ctx context.Context, id uint, p author.Patch) (*author.Author, error) {
	if p.Name != nil && strings.TrimSpace(*p.Name) == "" {
		return nil, author.ErrInvalidName
	}
	return uc.repo.Patch(ctx, id, p)
}

// Delete 删除作者
func (uc *UseCase) Delete(ctx context.Context, id uint) error {
	return uc.repo.Delete(ctx, id)
}
