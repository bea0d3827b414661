package rental

import (
	"context"
	"time"
)

// ListParams 租赁单列表查询参数
// 日期过滤参数为"2006-01-02"格式字符串(空表示不过滤),
// 与Gateway的DateInput提交格式一致;金额区间过滤为闭区间
type ListParams struct {
	CustomerID       uint         // 按客户过滤(0表示不过滤)
	Status           RentalStatus // 按状态过滤(空表示不过滤)
	RentalDate       string       // 按起租日过滤
	ReturnDate       string       // 按约定归还日过滤
	ActualReturnDate string       // 按实际归还日过滤
	TotalAmountGTE   *int64       // 租金总额下限(分)
	TotalAmountLTE   *int64       // 租金总额上限(分)
	SortBy           string       // 排序字段(id/rental_date/return_date/total_amount/status)
	Order            string       // ASC | DESC
	Start            int          // 偏移起点(含)
	End              int          // 偏移终点(不含)
}

// Patch 租赁单部分更新(后台编辑)
// 指针字段为nil表示不更新该字段;Status更新必须沿合法流转
type Patch struct {
	CustomerID       *uint
	RentalDate       *time.Time
	ReturnDate       *time.Time
	ActualReturnDate *time.Time
	Status           *RentalStatus
	TotalAmount      *int64
	Deposit          *int64
	LateFee          *int64
	RentalAddress    *string
	Notes            *string
}

// Repository 租赁单仓储接口(依赖倒置原则)
// Create必须把租赁单和明细放在同一事务中落库
type Repository interface {
	// Create 创建租赁单(包含明细,同一事务)
	Create(ctx context.Context, r *RentalOrder) error

	// FindByID 根据ID查找租赁单(包含明细)
	FindByID(ctx context.Context, id uint) (*RentalOrder, error)

	// Update 更新租赁单(状态/日期/金额等,不更新明细)
	Update(ctx context.Context, r *RentalOrder) error

	// Delete 删除租赁单及其明细
	Delete(ctx context.Context, id uint) error

	// List 分页查询租赁单列表
	List(ctx context.Context, params ListParams) ([]*RentalOrder, int64, error)

	// CountSince 统计某时间之后起租的租赁单数与租金总额(仪表盘)
	CountSince(ctx context.Context, since time.Time) (count int64, revenue int64, err error)
}
