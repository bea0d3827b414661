package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookshop/internal/domain/book"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// bookSortColumns 图书列表允许的排序列(白名单)
var bookSortColumns = map[string]string{
	"id":             "books.id",
	"title":          "books.title",
	"price":          "books.price",
	"stock":          "books.stock",
	"likes":          "books.likes",
	"published_date": "books.published_date",
	"created_at":     "books.created_at",
}

// bookRepository 图书仓储实现(MySQL)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 分类多对多关系由book_categories连接表手工维护
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书(含分类关联,同一事务)
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := &BookModel{
		Title:         b.Title,
		AuthorID:      b.AuthorID,
		PublishedDate: b.PublishedDate,
		Price:         b.Price,
		Stock:         b.Stock,
		Likes:         b.Likes,
		CoverURL:      b.CoverURL,
		Description:   b.Description,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		return replaceBookCategories(tx, model.ID, b.CategoryIDs)
	})
	if err != nil {
		return apperrors.Wrap(err, "创建图书失败")
	}

	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	b.UpdatedAt = model.UpdatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	db := dbFromContext(ctx, r.db)
	if err := db.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}

	catMap, err := r.loadCategories(db, []uint{model.ID})
	if err != nil {
		return nil, err
	}
	return toBookEntity(&model, catMap[model.ID]), nil
}

// FindByIDs 批量查找图书
// 结算时一次取出购物车涉及的所有图书,避免N+1查询
func (r *bookRepository) FindByIDs(ctx context.Context, ids []uint) ([]*book.Book, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var models []BookModel
	db := dbFromContext(ctx, r.db)
	if err := db.Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "批量查询图书失败")
	}

	bookIDs := make([]uint, len(models))
	for i, m := range models {
		bookIDs[i] = m.ID
	}
	catMap, err := r.loadCategories(db, bookIDs)
	if err != nil {
		return nil, err
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i], catMap[models[i].ID])
	}
	return books, nil
}

// Patch 部分更新图书
// 指针字段为nil表示不更新;CategoryIDs非nil时整体替换分类关联
func (r *bookRepository) Patch(ctx context.Context, id uint, p book.Patch) (*book.Book, error) {
	updates := map[string]interface{}{}
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.AuthorID != nil {
		updates["author_id"] = *p.AuthorID
	}
	if p.PublishedDate != nil {
		updates["published_date"] = *p.PublishedDate
	}
	if p.Price != nil {
		updates["price"] = *p.Price
	}
	if p.Stock != nil {
		updates["stock"] = *p.Stock
	}
	if p.CoverURL != nil {
		updates["cover_url"] = *p.CoverURL
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if len(updates) > 0 {
			result := tx.Model(&BookModel{}).Where("id = ?", id).Updates(updates)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return book.ErrBookNotFound
			}
		} else {
			// 只改分类时也要确认图书存在
			var count int64
			if err := tx.Model(&BookModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return book.ErrBookNotFound
			}
		}
		if p.CategoryIDs != nil {
			return replaceBookCategories(tx, id, p.CategoryIDs)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, book.ErrBookNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "更新图书失败")
	}

	return r.FindByID(ctx, id)
}

// Delete 删除图书(软删除,分类关联一并清理)
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&BookModel{}, id)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除图书失败")
		}
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound
		}
		if err := tx.Where("book_id = ?", id).Delete(&BookCategoryModel{}).Error; err != nil {
			return apperrors.Wrap(err, "清理图书分类关联失败")
		}
		return nil
	})
}

// List 过滤+排序+分页查询
// 分类过滤为超集语义(AND):图书的分类集合必须包含全部给定分类,
// 过滤在排序和分页之前进行,total为过滤后的总数
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var models []BookModel
	var total int64

	db := dbFromContext(ctx, r.db)
	query := db.Model(&BookModel{})

	if params.AuthorID > 0 {
		query = query.Where("author_id = ?", params.AuthorID)
	}
	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("title LIKE ? OR description LIKE ?", keyword, keyword)
	}
	if params.PriceGTE != nil {
		query = query.Where("price >= ?", *params.PriceGTE)
	}
	if params.PriceLTE != nil {
		query = query.Where("price <= ?", *params.PriceLTE)
	}
	if params.StockLTE != nil {
		query = query.Where("stock <= ?", *params.StockLTE)
	}

	// 分类超集过滤:图书必须关联全部给定分类
	if len(params.CategoryIDs) > 0 {
		sub := db.Session(&gorm.Session{NewDB: true}).
			Model(&BookCategoryModel{}).
			Select("book_id").
			Where("category_id IN ?", params.CategoryIDs).
			Group("book_id").
			Having("COUNT(DISTINCT category_id) = ?", len(params.CategoryIDs))
		query = query.Where("books.id IN (?)", sub)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	if oc := orderClause(params.SortBy, params.Order, bookSortColumns); oc != "" {
		query = query.Order(oc)
	} else {
		query = query.Order("books.id ASC")
	}

	query = applyRange(query, params.Start, params.End)

	if err := query.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	bookIDs := make([]uint, len(models))
	for i, m := range models {
		bookIDs[i] = m.ID
	}
	catMap, err := r.loadCategories(db, bookIDs)
	if err != nil {
		return nil, 0, err
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i], catMap[models[i].ID])
	}
	return books, total, nil
}

// DecrementStock 扣减库存(原子操作,在0处截断)
// 用SELECT FOR UPDATE锁行,计算实际可扣减量后再更新,
// 返回实际扣减量供Saga补偿时精确恢复
func (r *bookRepository) DecrementStock(ctx context.Context, id uint, quantity int) (int, error) {
	if quantity <= 0 {
		return 0, book.ErrInvalidQuantity
	}

	var applied int
	// 行锁只在事务内有效,读-截断-写必须在同一个事务里;
	// 上下文已带事务时gorm会降级为SAVEPOINT
	err := dbFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		var model BookModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&model, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return book.ErrBookNotFound
			}
			return apperrors.Wrap(err, "锁定图书失败")
		}

		applied = quantity
		if applied > model.Stock {
			applied = model.Stock
		}
		if applied == 0 {
			return nil
		}

		result := tx.Model(&BookModel{}).
			Where("id = ?", id).
			Update("stock", gorm.Expr("stock - ?", applied))
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "扣减库存失败")
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return applied, nil
}

// IncrementStock 恢复库存(Saga补偿、后台补货)
func (r *bookRepository) IncrementStock(ctx context.Context, id uint, quantity int) error {
	if quantity <= 0 {
		return nil
	}
	db := dbFromContext(ctx, r.db)
	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock + ?", quantity))
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "恢复库存失败")
	}
	if result.RowsAffected == 0 {
		return book.ErrBookNotFound
	}
	return nil
}

// IncrementLikes 点赞计数+1(原子操作),返回更新后的点赞数
func (r *bookRepository) IncrementLikes(ctx context.Context, id uint) (int, error) {
	db := dbFromContext(ctx, r.db)
	result := db.Model(&BookModel{}).
		Where("id = ?", id).
		Update("likes", gorm.Expr("likes + 1"))
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "点赞失败")
	}
	if result.RowsAffected == 0 {
		return 0, book.ErrBookNotFound
	}

	var model BookModel
	if err := db.Select("likes").First(&model, id).Error; err != nil {
		return 0, apperrors.Wrap(err, "查询点赞数失败")
	}
	return model.Likes, nil
}

// Stats 库存统计(仪表盘)
func (r *bookRepository) Stats(ctx context.Context, lowStockThreshold int) (int64, int64, int64, error) {
	db := dbFromContext(ctx, r.db)

	var total int64
	if err := db.Model(&BookModel{}).Count(&total).Error; err != nil {
		return 0, 0, 0, apperrors.Wrap(err, "统计图书总数失败")
	}

	var totalStock struct{ Total int64 }
	if err := db.Model(&BookModel{}).
		Select("COALESCE(SUM(stock), 0) AS total").
		Scan(&totalStock).Error; err != nil {
		return 0, 0, 0, apperrors.Wrap(err, "统计总库存失败")
	}

	var lowStock int64
	if err := db.Model(&BookModel{}).
		Where("stock <= ?", lowStockThreshold).
		Count(&lowStock).Error; err != nil {
		return 0, 0, 0, apperrors.Wrap(err, "统计低库存图书失败")
	}

	return total, totalStock.Total, lowStock, nil
}

// =========================================
// 辅助函数:模型转换与分类关联维护
// =========================================

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel, categoryIDs []uint) *book.Book {
	if categoryIDs == nil {
		categoryIDs = []uint{}
	}
	return &book.Book{
		ID:            model.ID,
		Title:         model.Title,
		AuthorID:      model.AuthorID,
		CategoryIDs:   categoryIDs,
		PublishedDate: model.PublishedDate,
		Price:         model.Price,
		Stock:         model.Stock,
		Likes:         model.Likes,
		CoverURL:      model.CoverURL,
		Description:   model.Description,
		CreatedAt:     model.CreatedAt,
		UpdatedAt:     model.UpdatedAt,
	}
}

// loadCategories 批量加载图书的分类ID映射
func (r *bookRepository) loadCategories(db *gorm.DB, bookIDs []uint) (map[uint][]uint, error) {
	result := make(map[uint][]uint, len(bookIDs))
	if len(bookIDs) == 0 {
		return result, nil
	}
	var rows []BookCategoryModel
	if err := db.Where("book_id IN ?", bookIDs).
		Order("category_id ASC").
		Find(&rows).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询图书分类关联失败")
	}
	for _, row := range rows {
		result[row.BookID] = append(result[row.BookID], row.CategoryID)
	}
	return result, nil
}

// replaceBookCategories 整体替换图书的分类关联
func replaceBookCategories(tx *gorm.DB, bookID uint, categoryIDs []uint) error {
	if err := tx.Where("book_id = ?", bookID).Delete(&BookCategoryModel{}).Error; err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}
	rows := make([]BookCategoryModel, 0, len(categoryIDs))
	seen := make(map[uint]bool, len(categoryIDs))
	for _, cid := range categoryIDs {
		if seen[cid] {
			continue
		}
		seen[cid] = true
		rows = append(rows, BookCategoryModel{BookID: bookID, CategoryID: cid})
	}
	return tx.Create(&rows).Error
}
