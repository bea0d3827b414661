package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/order"
)

func validShipping() ShippingInfo {
	return ShippingInfo{
		Name:    "张三",
		Email:   "zhangsan@example.com",
		Phone:   "13800138000",
		Address: "北京市朝阳区xx路1号",
	}
}

// TestSubmitShipping_Validation 第一步必填项缺失时不能前进
func TestSubmitShipping_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ShippingInfo)
		wantErr error
	}{
		{"缺姓名", func(si *ShippingInfo) { si.Name = "  " }, ErrMissingName},
		{"缺邮箱", func(si *ShippingInfo) { si.Email = "" }, ErrInvalidEmail},
		{"邮箱格式错误", func(si *ShippingInfo) { si.Email = "not-an-email" }, ErrInvalidEmail},
		{"缺电话", func(si *ShippingInfo) { si.Phone = "" }, ErrMissingPhone},
		{"缺地址", func(si *ShippingInfo) { si.Address = "" }, ErrMissingAddress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession("CRT123")
			info := validShipping()
			tt.mutate(&info)

			err := s.SubmitShipping(info)
			assert.ErrorIs(t, err, tt.wantErr)
			// 校验失败时停留在第一步
			assert.Equal(t, StepShippingInfo, s.Step)
		})
	}
}

// TestSubmitPayment_RequiresShipping 未完成第一步不能选择支付方式
func TestSubmitPayment_RequiresShipping(t *testing.T) {
	s := NewSession("CRT123")

	err := s.SubmitPayment(order.PaymentCashOnDelivery)
	assert.ErrorIs(t, err, ErrStepNotAllowed)
	assert.Equal(t, StepShippingInfo, s.Step)
}

// TestFlow_ForwardAndBack 完整前进流程与回退
func TestFlow_ForwardAndBack(t *testing.T) {
	s := NewSession("CRT123")

	require.NoError(t, s.SubmitShipping(validShipping()))
	assert.Equal(t, StepPaymentMethod, s.Step)

	// 未选支付方式不能视作可提交
	assert.False(t, s.CanSubmit())

	require.NoError(t, s.SubmitPayment(order.PaymentBankTransfer))
	assert.Equal(t, StepConfirmation, s.Step)
	assert.True(t, s.CanSubmit())

	// 回退始终允许且不触发校验,已填写数据保留
	require.NoError(t, s.Back())
	assert.Equal(t, StepPaymentMethod, s.Step)
	assert.Equal(t, "张三", s.Shipping.Name)
	assert.Equal(t, order.PaymentBankTransfer, s.PaymentMethod)

	require.NoError(t, s.Back())
	assert.Equal(t, StepShippingInfo, s.Step)

	// 第一步继续回退是无操作
	require.NoError(t, s.Back())
	assert.Equal(t, StepShippingInfo, s.Step)
}

// TestSubmitPayment_InvalidMethod 支付方式为封闭枚举
func TestSubmitPayment_InvalidMethod(t *testing.T) {
	s := NewSession("CRT123")
	require.NoError(t, s.SubmitShipping(validShipping()))

	err := s.SubmitPayment(order.PaymentMethod("bitcoin"))
	assert.ErrorIs(t, err, order.ErrInvalidPaymentMethod)
	assert.Equal(t, StepPaymentMethod, s.Step)
}

// TestMarkSubmitted 提交后会话进入终态
func TestMarkSubmitted(t *testing.T) {
	s := NewSession("CRT123")
	require.NoError(t, s.SubmitShipping(validShipping()))
	require.NoError(t, s.SubmitPayment(order.PaymentCashOnDelivery))

	require.NoError(t, s.MarkSubmitted(42))
	assert.Equal(t, StepSubmitted, s.Step)
	assert.Equal(t, uint(42), s.OrderID)

	// 终态后所有操作拒绝
	assert.ErrorIs(t, s.SubmitShipping(validShipping()), ErrSessionSubmitted)
	assert.ErrorIs(t, s.SubmitPayment(order.PaymentCreditCard), ErrSessionSubmitted)
	assert.ErrorIs(t, s.Back(), ErrSessionSubmitted)
}

// TestMarkSubmitted_NotAtConfirmation 未到确认步骤不能提交
func TestMarkSubmitted_NotAtConfirmation(t *testing.T) {
	s := NewSession("CRT123")
	require.NoError(t, s.SubmitShipping(validShipping()))

	assert.ErrorIs(t, s.MarkSubmitted(1), ErrStepNotAllowed)
}
