package dto

import (
	"time"

	"github.com/xiebiao/bookshop/internal/domain/book"
)

// 日期在接口层统一使用YYYY-MM-DD格式
const dateLayout = "2006-01-02"

// BookResponse 图书响应DTO(Gateway风格裸JSON)
type BookResponse struct {
	ID            uint   `json:"id"`
	Title         string `json:"title"`
	AuthorID      uint   `json:"author_id"`
	CategoryIDs   []uint `json:"category_ids"`
	PublishedDate string `json:"published_date,omitempty"`
	Price         int64  `json:"price"` // 价格(分)
	Stock         int    `json:"stock"`
	Likes         int    `json:"likes"`
	CoverImage    string `json:"cover_image,omitempty"`
	Description   string `json:"description,omitempty"`
}

// ToBookResponse 领域实体 → 响应DTO
func ToBookResponse(b *book.Book) BookResponse {
	resp := BookResponse{
		ID:          b.ID,
		Title:       b.Title,
		AuthorID:    b.AuthorID,
		CategoryIDs: b.CategoryIDs,
		Price:       b.Price,
		Stock:       b.Stock,
		Likes:       b.Likes,
		CoverImage:  b.CoverURL,
		Description: b.Description,
	}
	if resp.CategoryIDs == nil {
		resp.CategoryIDs = []uint{}
	}
	if !b.PublishedDate.IsZero() {
		resp.PublishedDate = b.PublishedDate.Format(dateLayout)
	}
	return resp
}

// ToBookResponses 批量转换(保证空列表序列化为[]而非null)
func ToBookResponses(books []*book.Book) []BookResponse {
	out := make([]BookResponse, len(books))
	for i, b := range books {
		out[i] = ToBookResponse(b)
	}
	return out
}

// CreateBookRequest 创建图书请求DTO
type CreateBookRequest struct {
	Title         string `json:"title" binding:"required"`
	AuthorID      uint   `json:"author_id" binding:"required"`
	CategoryIDs   []uint `json:"category_ids"`
	PublishedDate string `json:"published_date"`
	Price         int64  `json:"price" binding:"min=0"`
	Stock         int    `json:"stock" binding:"min=0"`
	CoverImage    string `json:"cover_image"`
	Description   string `json:"description"`
}

// ParsePublishedDate 解析出版日期(空串返回零值)
func (r CreateBookRequest) ParsePublishedDate() (time.Time, error) {
	if r.PublishedDate == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, r.PublishedDate)
}

// PatchBookRequest 部分更新图书请求DTO
// 指针字段缺失时不更新;category_ids传空数组表示清空分类
type PatchBookRequest struct {
	Title         *string `json:"title"`
	AuthorID      *uint   `json:"author_id"`
	CategoryIDs   []uint  `json:"category_ids"`
	PublishedDate *string `json:"published_date"`
	Price         *int64  `json:"price"`
	Stock         *int    `json:"stock"`
	CoverImage    *string `json:"cover_image"`
	Description   *string `json:"description"`

	// rawCategoryIDs标记:json解码无法区分"字段缺失"和"空数组",
	// handler层通过检查原始body判断(见book handler)
	HasCategoryIDs bool `json:"-"`
}

// ToPatch 请求DTO → 领域Patch
func (r PatchBookRequest) ToPatch() (book.Patch, error) {
	p := book.Patch{
		Title:       r.Title,
		AuthorID:    r.AuthorID,
		Price:       r.Price,
		Stock:       r.Stock,
		CoverURL:    r.CoverImage,
		Description: r.Description,
	}
	if r.HasCategoryIDs {
		ids := r.CategoryIDs
		if ids == nil {
			ids = []uint{}
		}
		p.CategoryIDs = ids
	}
	if r.PublishedDate != nil {
		t, err := time.Parse(dateLayout, *r.PublishedDate)
		if err != nil {
			return book.Patch{}, err
		}
		p.PublishedDate = &t
	}
	return p, nil
}
