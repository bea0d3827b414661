package book

import (
	"time"
)

// Book 图书实体(聚合根)
// 设计说明:
// 1. 价格使用int64存储"分"为单位(避免浮点数精度问题)
// 2. AuthorID/CategoryIDs只保存外部标识,不内嵌Author/Category对象(避免跨聚合引用)
// 3. 库存不变量:Stock永远>=0,下单扣减时在0处截断
type Book struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	AuthorID      uint      `json:"author_id"`
	CategoryIDs   []uint    `json:"category_ids"`
	PublishedDate time.Time `json:"-"`
	Price         int64     `json:"price"` // 价格(分)
	Stock         int       `json:"stock"`
	Likes         int       `json:"likes"`
	CoverURL      string    `json:"cover_image,omitempty"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
}

// New 创建新图书(工厂方法)
func New(title string, authorID uint, categoryIDs []uint, publishedDate time.Time, price int64, stock int, coverURL, description string) (*Book, error) {
	if title == "" {
		return nil, ErrInvalidTitle
	}
	if price < 0 {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	now := time.Now()
	return &Book{
		Title:         title,
		AuthorID:      authorID,
		CategoryIDs:   categoryIDs,
		PublishedDate: publishedDate,
		Price:         price,
		Stock:         stock,
		CoverURL:      coverURL,
		Description:   description,
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// ApplyStockDecrement 扣减库存(在0处截断)
// 返回实际扣减量:库存3、请求5时扣减3,库存归0
// 实际扣减量用于结算Saga补偿时精确恢复库存
func (b *Book) ApplyStockDecrement(quantity int) int {
	if quantity <= 0 {
		return 0
	}
	applied := quantity
	if applied > b.Stock {
		applied = b.Stock
	}
	b.Stock -= applied
	b.UpdatedAt = time.Now()
	return applied
}

// Like 点赞(领域行为)
func (b *Book) Like() {
	b.Likes++
	b.UpdatedAt = time.Now()
}
