package dashboard

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/domain/rental"
)

// 低库存告警阈值
const lowStockThreshold = 5

// StatsUseCase 后台仪表盘统计用例
// 聚合多个仓储的统计查询,一次返回首页需要的全部数字
type StatsUseCase struct {
	bookRepo     book.Repository
	orderRepo    order.Repository
	rentalRepo   rental.Repository
	customerRepo customer.Repository
}

// NewStatsUseCase 创建统计用例
func NewStatsUseCase(bookRepo book.Repository, orderRepo order.Repository, rentalRepo rental.Repository, customerRepo customer.Repository) *StatsUseCase {
	return &StatsUseCase{
		bookRepo:     bookRepo,
		orderRepo:    orderRepo,
		rentalRepo:   rentalRepo,
		customerRepo: customerRepo,
	}
}

// Stats 仪表盘统计DTO
type Stats struct {
	TotalBooks       int64 `json:"total_books"`
	TotalStock       int64 `json:"total_stock"`
	LowStockBooks    int64 `json:"low_stock_books"` // 库存<=5的图书数
	OrdersLast30d    int64 `json:"orders_last_30d"`
	RevenueLast30d   int64 `json:"revenue_last_30d"` // 近30天销售额(分,不含已取消)
	RentalsLast30d   int64 `json:"rentals_last_30d"`
	RentalRevenue30d int64 `json:"rental_revenue_last_30d"` // 近30天租金(分)
	NewCustomers30d  int64 `json:"new_customers_30d"`
}

// Execute 执行统计查询
func (uc *StatsUseCase) Execute(ctx context.Context) (*Stats, error) {
	totalBooks, totalStock, lowStock, err := uc.bookRepo.Stats(ctx, lowStockThreshold)
	if err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -30)
	orderCount, revenue, err := uc.orderRepo.CountSince(ctx, since)
	if err != nil {
		return nil, err
	}

	rentalCount, rentalRevenue, err := uc.rentalRepo.CountSince(ctx, since)
	if err != nil {
		return nil, err
	}

	newCustomers, err := uc.customerRepo.CountSince(ctx, since)
	if err != nil {
		return nil, err
	}

	return &Stats{
		TotalBooks:       totalBooks,
		TotalStock:       totalStock,
		LowStockBooks:    lowStock,
		OrdersLast30d:    orderCount,
		RevenueLast30d:   revenue,
		RentalsLast30d:   rentalCount,
		RentalRevenue30d: rentalRevenue,
		NewCustomers30d:  newCustomers,
	}, nil
}
