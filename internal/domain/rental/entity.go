package rental

import (
	"time"
)

// RentalStatus 租赁单状态
// 设计说明:
// 1. 建模为封闭枚举(类型化字符串),与订单状态同一套路
// 2. 状态流转只有一条: borrowed → returned
type RentalStatus string

const (
	StatusBorrowed RentalStatus = "borrowed" // 借出中
	StatusReturned RentalStatus = "returned" // 已归还
)

// Valid 是否为合法状态值
func (s RentalStatus) Valid() bool {
	switch s {
	case StatusBorrowed, StatusReturned:
		return true
	}
	return false
}

// ParseRentalStatus 解析租赁单状态
func ParseRentalStatus(s string) (RentalStatus, error) {
	st := RentalStatus(s)
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// RentalItem 租赁明细项
// 与订单明细不同,租赁按"日租金×租期"计价,不扣减库存
type RentalItem struct {
	ID            uint  `json:"-"`
	RentalOrderID uint  `json:"-"`
	BookID        uint  `json:"book_id"`
	RentalDays    int   `json:"rental_days"`
	DailyRate     int64 `json:"daily_rate"` // 日租金(分)
	Subtotal      int64 `json:"subtotal"`   // 明细小计(分)
}

// CalcSubtotal 明细小计 = 日租金 × 租期天数
func (i RentalItem) CalcSubtotal() int64 {
	return i.DailyRate * int64(i.RentalDays)
}

// RentalOrder 租赁单实体(聚合根)
// 设计说明:
// 1. ReturnDate为约定归还日,ActualReturnDate为实际归还日(未归还时为nil)
// 2. Deposit/LateFee独立记账,不卷入TotalAmount(押金归还、逾期另算)
// 3. 后台补录历史数据时可直接以returned状态创建
type RentalOrder struct {
	ID               uint         `json:"id"`
	CustomerID       uint         `json:"customer_id"`
	RentalDate       time.Time    `json:"rental_date"`
	ReturnDate       time.Time    `json:"return_date"`
	ActualReturnDate *time.Time   `json:"actual_return_date,omitempty"`
	Status           RentalStatus `json:"status"`
	TotalAmount      int64        `json:"total_amount"` // 租金总额(分)
	Deposit          int64        `json:"deposit"`      // 押金(分)
	LateFee          int64        `json:"late_fee"`     // 逾期费(分)
	RentalAddress    string       `json:"rental_address"`
	Notes            string       `json:"notes,omitempty"`
	Items            []RentalItem `json:"rental_items"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// New 创建新租赁单(工厂方法)
// 初始状态为borrowed;明细小计与总额由调用方计算后传入
func New(customerID uint, rentalDate, returnDate time.Time, items []RentalItem, totalAmount, deposit int64, address, notes string) *RentalOrder {
	now := time.Now()
	return &RentalOrder{
		CustomerID:    customerID,
		RentalDate:    rentalDate,
		ReturnDate:    returnDate,
		Status:        StatusBorrowed,
		TotalAmount:   totalAmount,
		Deposit:       deposit,
		LateFee:       0,
		RentalAddress: address,
		Notes:         notes,
		Items:         items,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// CanTransitionTo 检查是否可以转换到目标状态
// borrowed→returned是唯一合法转换,returned为终态
func (r *RentalOrder) CanTransitionTo(target RentalStatus) bool {
	return r.Status == StatusBorrowed && target == StatusReturned
}

// TransitionTo 状态转换(先校验业务规则,成功后更新UpdatedAt)
func (r *RentalOrder) TransitionTo(target RentalStatus) error {
	if !target.Valid() {
		return ErrInvalidStatus
	}
	if !r.CanTransitionTo(target) {
		return ErrInvalidStatusTransition
	}
	r.Status = target
	r.UpdatedAt = time.Now()
	return nil
}

// MarkReturned 登记归还(记录实际归还日并流转到returned)
func (r *RentalOrder) MarkReturned(at time.Time) error {
	if err := r.TransitionTo(StatusReturned); err != nil {
		return err
	}
	r.ActualReturnDate = &at
	return nil
}

// OverdueDays 逾期天数(以实际归还日或给定时刻对比约定归还日)
func (r *RentalOrder) OverdueDays(now time.Time) int {
	end := now
	if r.ActualReturnDate != nil {
		end = *r.ActualReturnDate
	}
	if !end.After(r.ReturnDate) {
		return 0
	}
	return int(end.Sub(r.ReturnDate).Hours() / 24)
}

// CalculateTotal 根据明细实时计算租金总额
// 用途:创建租赁单时验证冗余的TotalAmount是否一致
func (r *RentalOrder) CalculateTotal() int64 {
	var total int64
	for _, item := range r.Items {
		total += item.Subtotal
	}
	return total
}
