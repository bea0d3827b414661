package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOrderStatus_Transitions 订单状态流转规则
func TestOrderStatus_Transitions(t *testing.T) {
	tests := []struct {
		from    OrderStatus
		to      OrderStatus
		allowed bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusShipped, false},
		{StatusPending, StatusDelivered, false},
		{StatusProcessing, StatusShipped, true},
		{StatusProcessing, StatusCancelled, true},
		{StatusProcessing, StatusPending, false},
		{StatusShipped, StatusDelivered, true},
		{StatusShipped, StatusCancelled, false},
		{StatusDelivered, StatusPending, false},
		{StatusCancelled, StatusProcessing, false},
	}

	for _, tt := range tests {
		o := &Order{Status: tt.from}
		got := o.CanTransitionTo(tt.to)
		assert.Equal(t, tt.allowed, got, "%s → %s", tt.from, tt.to)

		err := o.TransitionTo(tt.to)
		if tt.allowed {
			assert.NoError(t, err)
			assert.Equal(t, tt.to, o.Status)
		} else {
			assert.ErrorIs(t, err, ErrInvalidStatusTransition)
			assert.Equal(t, tt.from, o.Status, "非法转换不应改变状态")
		}
	}
}

// TestOrder_TransitionTo_InvalidStatus 非法状态值直接拒绝
func TestOrder_TransitionTo_InvalidStatus(t *testing.T) {
	o := &Order{Status: StatusPending}
	assert.ErrorIs(t, o.TransitionTo(OrderStatus("已发货")), ErrInvalidStatus)
}

// TestOrder_CalculateTotal 应付总额 = Σ明细小计 + 运费 - 折扣
func TestOrder_CalculateTotal(t *testing.T) {
	o := New("ORD1", 1, []OrderItem{
		{BookID: 1, Quantity: 2, UnitPrice: 2000, Subtotal: 4000},
		{BookID: 2, Quantity: 1, UnitPrice: 1500, Subtotal: 1500},
	}, 6000, 500, "上海市浦东新区", PaymentCashOnDelivery, "")

	assert.Equal(t, int64(4000+1500+500), o.CalculateTotal())

	o.Discount = 1000
	assert.Equal(t, int64(4000+1500+500-1000), o.CalculateTotal())
}

// TestNew_Defaults 新订单初始状态
func TestNew_Defaults(t *testing.T) {
	o := New("ORD123", 7, nil, 0, 500, "北京市海淀区", PaymentCreditCard, "加急")

	assert.Equal(t, StatusPending, o.Status)
	assert.Equal(t, uint(7), o.CustomerID)
	assert.Equal(t, int64(0), o.Discount)
	assert.Equal(t, "加急", o.Notes)
	assert.False(t, o.OrderDate.IsZero())
}

// TestParsePaymentMethod 支付方式封闭枚举
func TestParsePaymentMethod(t *testing.T) {
	for _, s := range []string{"cash_on_delivery", "bank_transfer", "credit_card"} {
		m, err := ParsePaymentMethod(s)
		require.NoError(t, err)
		assert.True(t, m.Valid())
	}

	_, err := ParsePaymentMethod("bitcoin")
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)

	_, err = ParsePaymentMethod("")
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)
}

// TestGenerateOrderNo 订单号格式
func TestGenerateOrderNo(t *testing.T) {
	no := GenerateOrderNo()
	assert.Regexp(t, `^ORD\d+$`, no)
}
