package book

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/author"
	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/category"
)

// UseCase 图书管理用例
// 设计说明:
// 1. 创建/更新时校验作者和分类引用的有效性(跨聚合引用只存ID,用例层负责校验)
// 2. 列表查询直接透传ListParams,过滤(含分类超集过滤)在仓储层完成
type UseCase struct {
	bookRepo     book.Repository
	authorRepo   author.Repository
	categoryRepo category.Repository
}

// NewUseCase 创建图书管理用例
func NewUseCase(bookRepo book.Repository, authorRepo author.Repository, categoryRepo category.Repository) *UseCase {
	return &UseCase{
		bookRepo:     bookRepo,
		authorRepo:   authorRepo,
		categoryRepo: categoryRepo,
	}
}

// CreateRequest 创建图书请求DTO
type CreateRequest struct {
	Title         string
	AuthorID      uint
	CategoryIDs   []uint
	PublishedDate time.Time
	Price         int64 // 价格(分)
	Stock         int
	CoverURL      string
	Description   string
}

// Create 创建图书
func (uc *UseCase) Create(ctx context.Context, req CreateRequest) (*book.Book, error) {
	if err := uc.validateRefs(ctx, &req.AuthorID, req.CategoryIDs); err != nil {
		return nil, err
	}

	b, err := book.New(req.Title, req.AuthorID, req.CategoryIDs, req.PublishedDate, req.Price, req.Stock, req.CoverURL, req.Description)
	if err != nil {
		return nil, err
	}

	if err := uc.bookRepo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// Get 查看图书详情
func (uc *UseCase) Get(ctx context.Context, id uint) (*book.Book, error) {
	return uc.bookRepo.FindByID(ctx, id)
}

// List 图书列表(过滤→排序→分页,total为过滤后总数)
func (uc *UseCase) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	return uc.bookRepo.List(ctx, params)
}

// Patch 部分更新图书
func (uc *UseCase) Patch(ctx context.Context, id uint, p book.Patch) (*book.Book, error) {
	if err := uc.validateRefs(ctx, p.AuthorID, p.CategoryIDs); err != nil {
		return nil, err
	}
	return uc.bookRepo.Patch(ctx, id, p)
}

// Delete 删除图书
func (uc *UseCase) Delete(ctx context.Context, id uint) error {
	return uc.bookRepo.Delete(ctx, id)
}

// Like 点赞,返回更新后的点赞数
func (uc *UseCase) Like(ctx context.Context, id uint) (int, error) {
	return uc.bookRepo.IncrementLikes(ctx, id)
}

// validateRefs 校验作者和分类引用
// authorID为nil表示不校验(Patch未更新该字段)
func (uc *UseCase) validateRefs(ctx context.Context, authorID *uint, categoryIDs []uint) error {
	if authorID != nil && *authorID > 0 {
		if _, err := uc.authorRepo.FindByID(ctx, *authorID); err != nil {
			return err
		}
	}
	if len(categoryIDs) > 0 {
		found, err := uc.categoryRepo.FindByIDs(ctx, categoryIDs)
		if err != nil {
			return err
		}
		seen := make(map[uint]bool, len(found))
		for _, c := range found {
			seen[c.ID] = true
		}
		for _, id := range categoryIDs {
			if !seen[id] {
				return category.ErrCategoryNotFound
			}
		}
	}
	return nil
}
