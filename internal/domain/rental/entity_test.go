package rental

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

// TestRentalStatus_Transitions 租赁单状态流转规则
func TestRentalStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    RentalStatus
		to      RentalStatus
		allowed bool
	}{
		{StatusBorrowed, StatusReturned, true},
		{StatusBorrowed, StatusBorrowed, false},
		{StatusReturned, StatusBorrowed, false},
		{StatusReturned, StatusReturned, false},
	}

	for _, tt := range tests {
		r := &RentalOrder{Status: tt.from}
		got := r.CanTransitionTo(tt.to)
		assert.Equal(t, tt.allowed, got, "%s → %s", tt.from, tt.to)

		err := r.TransitionTo(tt.to)
		if tt.allowed {
			assert.NoError(t, err)
			assert.Equal(t, tt.to, r.Status)
		} else {
			assert.ErrorIs(t, err, ErrInvalidStatusTransition)
			assert.Equal(t, tt.from, r.Status, "非法转换不应改变状态")
		}
	}
}

// TestRentalOrder_TransitionTo_InvalidStatus 非法状态值直接拒绝
func TestRentalOrder_TransitionTo_InvalidStatus(t *testing.T) {
	r := &RentalOrder{Status: StatusBorrowed}
	assert.ErrorIs(t, r.TransitionTo(RentalStatus("已归还")), ErrInvalidStatus)
}

// TestRentalOrder_MarkReturned 登记归还记录实际归还日
func TestRentalOrder_MarkReturned(t *testing.T) {
	r := New(1, date("2026-08-01"), date("2026-08-15"), nil, 0, 5000, "上海市浦东新区", "")
	require.Equal(t, StatusBorrowed, r.Status)
	require.Nil(t, r.ActualReturnDate)

	at := date("2026-08-10")
	require.NoError(t, r.MarkReturned(at))
	assert.Equal(t, StatusReturned, r.Status)
	require.NotNil(t, r.ActualReturnDate)
	assert.Equal(t, at, *r.ActualReturnDate)

	// 已归还的租赁单不能重复归还
	assert.ErrorIs(t, r.MarkReturned(at), ErrInvalidStatusTransition)
}

// TestRentalOrder_OverdueDays 逾期天数以实际归还日(或当前时刻)对比约定归还日
func TestRentalOrder_OverdueDays(t *testing.T) {
	r := New(1, date("2026-08-01"), date("2026-08-15"), nil, 0, 0, "", "")

	// 未到期
	assert.Equal(t, 0, r.OverdueDays(date("2026-08-10")))

	// 借出中已逾期3天
	assert.Equal(t, 3, r.OverdueDays(date("2026-08-18")))

	// 按期归还后不再累计
	require.NoError(t, r.MarkReturned(date("2026-08-14")))
	assert.Equal(t, 0, r.OverdueDays(date("2026-09-01")))
}

// TestRentalItem_CalcSubtotal 明细小计 = 日租金 × 租期
func TestRentalItem_CalcSubtotal(t *testing.T) {
	item := RentalItem{BookID: 1, RentalDays: 14, DailyRate: 200}
	assert.Equal(t, int64(2800), item.CalcSubtotal())
}

// TestRentalOrder_CalculateTotal 租金总额 = Σ明细小计
func TestRentalOrder_CalculateTotal(t *testing.T) {
	r := New(7, date("2026-08-01"), date("2026-08-15"), []RentalItem{
		{BookID: 1, RentalDays: 14, DailyRate: 200, Subtotal: 2800},
		{BookID: 2, RentalDays: 7, DailyRate: 300, Subtotal: 2100},
	}, 4900, 5000, "北京市海淀区", "")

	assert.Equal(t, int64(4900), r.CalculateTotal())
	assert.Equal(t, r.TotalAmount, r.CalculateTotal())
}

// TestParseRentalStatus 状态封闭枚举
func TestParseRentalStatus(t *testing.T) {
	for _, s := range []string{"borrowed", "returned"} {
		st, err := ParseRentalStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, string(st))
	}

	_, err := ParseRentalStatus("overdue")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
