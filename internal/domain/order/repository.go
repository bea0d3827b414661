package order

import (
	"context"
	"time"
)

// ListParams 订单列表查询参数
// 分页采用Gateway约定的偏移区间[Start, End)(对应_start/_end查询参数);
// End<=Start表示不分页
type ListParams struct {
	CustomerID uint        // 按客户过滤(0表示不过滤)
	Status     OrderStatus // 按状态过滤(空表示不过滤)
	SortBy     string      // 排序字段(id/order_date/total_amount/status)
	Order      string      // ASC | DESC
	Start      int         // 偏移起点(含)
	End        int         // 偏移终点(不含)
}

// Patch 订单部分更新(后台编辑)
// 指针字段为nil表示不更新该字段;Status更新必须沿合法流转
type Patch struct {
	Status          *OrderStatus
	ShippingAddress *string
	PaymentMethod   *PaymentMethod
	Discount        *int64
	Notes           *string
}

// Repository 订单仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. Create必须把订单和明细放在同一事务中落库
// 3. Delete用于结算Saga的补偿(删除半途创建的订单)
type Repository interface {
	// Create 创建订单(包含订单明细,同一事务)
	Create(ctx context.Context, o *Order) error

	// FindByID 根据ID查找订单(包含明细)
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByOrderNo 根据订单号查找订单
	FindByOrderNo(ctx context.Context, orderNo string) (*Order, error)

	// Update 更新订单(状态/地址/备注等,不更新明细)
	Update(ctx context.Context, o *Order) error

	// Delete 删除订单及其明细(仅用于Saga补偿)
	Delete(ctx context.Context, id uint) error

	// List 分页查询订单列表
	List(ctx context.Context, params ListParams) ([]*Order, int64, error)

	// CountSince 统计某时间之后创建的订单数与总金额(仪表盘)
	CountSince(ctx context.Context, since time.Time) (count int64, revenue int64, err error)
}
