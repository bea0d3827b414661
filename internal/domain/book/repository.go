package book

import (
	"context"
	"time"
)

// ListParams 图书列表查询参数
// 对应Gateway查询约定:等值/范围过滤 + _sort/_order + _start/_end偏移分页
// CategoryIDs为超集过滤(AND语义):只返回分类集合包含全部给定分类的图书,
// 过滤在排序和分页之前进行
type ListParams struct {
	AuthorID    uint   // 按作者过滤(0表示不过滤)
	CategoryIDs []uint // 分类超集过滤(空表示不过滤)
	Keyword     string // 标题/描述关键词搜索(q参数)
	PriceGTE    *int64 // 价格下限(分)
	PriceLTE    *int64 // 价格上限(分)
	StockLTE    *int   // 库存上限(后台筛选低库存)
	SortBy      string // 排序字段(id/title/price/stock/likes/published_date)
	Order       string // ASC | DESC
	Start       int    // 偏移起点(含)
	End         int    // 偏移终点(不含);End<=Start表示不分页
}

// Patch 图书部分更新(后台编辑/库存修正)
// 指针字段为nil表示不更新该字段
type Patch struct {
	Title         *string
	AuthorID      *uint
	CategoryIDs   []uint // nil表示不更新;空切片表示清空分类
	PublishedDate *time.Time
	Price         *int64
	Stock         *int
	CoverURL      *string
	Description   *string
}

// Repository 图书仓储接口(依赖倒置原则)
// 由domain层定义接口,infrastructure层实现,便于Mock测试
type Repository interface {
	// Create 创建图书(含分类关联)
	Create(ctx context.Context, b *Book) error

	// FindByID 根据ID查找图书
	FindByID(ctx context.Context, id uint) (*Book, error)

	// FindByIDs 批量查找图书(结算时一次取出购物车涉及的图书)
	FindByIDs(ctx context.Context, ids []uint) ([]*Book, error)

	// Patch 部分更新图书,返回更新后的完整实体
	Patch(ctx context.Context, id uint, p Patch) (*Book, error)

	// Delete 删除图书(软删除)
	Delete(ctx context.Context, id uint) error

	// List 过滤+排序+分页查询
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// DecrementStock 扣减库存(原子操作,在0处截断)
	// 返回实际扣减量,用于Saga补偿时精确恢复
	DecrementStock(ctx context.Context, id uint, quantity int) (applied int, err error)

	// IncrementStock 恢复库存(Saga补偿、后台补货)
	IncrementStock(ctx context.Context, id uint, quantity int) error

	// IncrementLikes 点赞计数+1(原子操作),返回更新后的点赞数
	IncrementLikes(ctx context.Context, id uint) (int, error)

	// Stats 库存统计:图书总数、总库存、低库存图书数(仪表盘)
	Stats(ctx context.Context, lowStockThreshold int) (total int64, totalStock int64, lowStock int64, err error)
}
