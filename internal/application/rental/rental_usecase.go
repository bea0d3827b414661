package rental

import (
	"context"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/rental"
)

// ItemInput 租赁明细录入项
// Subtotal为0时按"日租金×租期"自动计算
type ItemInput struct {
	BookID     uint
	RentalDays int
	DailyRate  int64
	Subtotal   int64
}

// CreateRequest 创建租赁单请求
// TotalAmount为0时按明细小计之和自动计算;
// 后台补录历史数据时可传入actual_return_date,状态自动置为returned
type CreateRequest struct {
	CustomerID       uint
	RentalDate       time.Time
	ReturnDate       time.Time
	ActualReturnDate *time.Time
	TotalAmount      int64
	Deposit          int64
	RentalAddress    string
	Notes            string
	Items            []ItemInput
}

// UseCase 租赁单管理用例(后台)
// 租赁走线下流程,后台负责录入、查询、归还登记和信息修正;
// 租赁不扣减销售库存,创建时只校验图书存在
type UseCase struct {
	repo     rental.Repository
	bookRepo book.Repository
}

// NewUseCase 创建租赁单管理用例
func NewUseCase(repo rental.Repository, bookRepo book.Repository) *UseCase {
	return &UseCase{repo: repo, bookRepo: bookRepo}
}

// Create 录入租赁单
func (uc *UseCase) Create(ctx context.Context, req CreateRequest) (*rental.RentalOrder, error) {
	if len(req.Items) == 0 {
		return nil, rental.ErrInvalidRentalItems
	}
	if req.ReturnDate.Before(req.RentalDate) {
		return nil, rental.ErrInvalidRentalPeriod
	}

	items := make([]rental.RentalItem, len(req.Items))
	ids := make([]uint, len(req.Items))
	for i, in := range req.Items {
		if in.RentalDays <= 0 {
			return nil, rental.ErrInvalidRentalDays
		}
		items[i] = rental.RentalItem{
			BookID:     in.BookID,
			RentalDays: in.RentalDays,
			DailyRate:  in.DailyRate,
			Subtotal:   in.Subtotal,
		}
		if items[i].Subtotal == 0 {
			items[i].Subtotal = items[i].CalcSubtotal()
		}
		ids[i] = in.BookID
	}

	// 只校验图书存在,不占用销售库存
	books, err := uc.bookRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(books) != len(uniqueIDs(ids)) {
		return nil, book.ErrBookNotFound
	}

	ro := rental.New(req.CustomerID, req.RentalDate, req.ReturnDate, items,
		req.TotalAmount, req.Deposit, req.RentalAddress, req.Notes)
	if ro.TotalAmount == 0 {
		ro.TotalAmount = ro.CalculateTotal()
	}
	if req.ActualReturnDate != nil {
		if err := ro.MarkReturned(*req.ActualReturnDate); err != nil {
			return nil, err
		}
	}

	if err := uc.repo.Create(ctx, ro); err != nil {
		return nil, err
	}
	return ro, nil
}

// Get 查看租赁单详情(含明细)
func (uc *UseCase) Get(ctx context.Context, id uint) (*rental.RentalOrder, error) {
	return uc.repo.FindByID(ctx, id)
}

// List 租赁单列表
func (uc *UseCase) List(ctx context.Context, params rental.ListParams) ([]*rental.RentalOrder, int64, error) {
	return uc.repo.List(ctx, params)
}

// Patch 部分更新租赁单
// 状态变更走领域层的流转校验;流转到returned且未提供实际归还日时,
// 以当前日期登记归还
func (uc *UseCase) Patch(ctx context.Context, id uint, p rental.Patch) (*rental.RentalOrder, error) {
	ro, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Status != nil {
		if err := ro.TransitionTo(*p.Status); err != nil {
			return nil, err
		}
	}
	if p.CustomerID != nil {
		ro.CustomerID = *p.CustomerID
	}
	if p.RentalDate != nil {
		ro.RentalDate = *p.RentalDate
	}
	if p.ReturnDate != nil {
		if ro.RentalDate.After(*p.ReturnDate) {
			return nil, rental.ErrInvalidRentalPeriod
		}
		ro.ReturnDate = *p.ReturnDate
	}
	if p.ActualReturnDate != nil {
		ro.ActualReturnDate = p.ActualReturnDate
	}
	if ro.Status == rental.StatusReturned && ro.ActualReturnDate == nil {
		now := time.Now()
		ro.ActualReturnDate = &now
	}
	if p.TotalAmount != nil {
		ro.TotalAmount = *p.TotalAmount
	}
	if p.Deposit != nil {
		ro.Deposit = *p.Deposit
	}
	if p.LateFee != nil {
		ro.LateFee = *p.LateFee
	}
	if p.RentalAddress != nil {
		ro.RentalAddress = *p.RentalAddress
	}
	if p.Notes != nil {
		ro.Notes = *p.Notes
	}

	if err := uc.repo.Update(ctx, ro); err != nil {
		return nil, err
	}
	return ro, nil
}

// Delete 删除租赁单
func (uc *UseCase) Delete(ctx context.Context, id uint) error {
	return uc.repo.Delete(ctx, id)
}

// uniqueIDs 去重(FindByIDs按IN查询,重复ID只返回一条)
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
