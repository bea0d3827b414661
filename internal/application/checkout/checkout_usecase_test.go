package checkout

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/checkout"
	"github.com/xiebiao/bookshop/internal/domain/pricing"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/memory"
)

func newWizard(t *testing.T, cartID string, lines ...cart.LineItem) *UseCase {
	t.Helper()
	cartRepo := memory.NewCartStore()

	c := cart.New(cartID)
	for _, line := range lines {
		require.NoError(t, c.AddItem(line))
	}
	require.NoError(t, cartRepo.Save(context.Background(), c))

	return NewUseCase(memory.NewCheckoutStore(), cartRepo, pricing.DefaultPolicy())
}

func validShipping() checkout.ShippingInfo {
	return checkout.ShippingInfo{
		Name:    "李四",
		Email:   "lisi@example.com",
		Phone:   "13900139000",
		Address: "上海市浦东新区xx路2号",
	}
}

func TestWizard_FullFlow(t *testing.T) {
	uc := newWizard(t, "c1", cart.LineItem{BookID: 1, Title: "围城", UnitPrice: 2000, Quantity: 2})
	ctx := context.Background()

	// 开始结算:进入第一步,摘要带金额汇总
	sum, err := uc.Start(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "shipping_info", sum.Step)
	assert.Equal(t, int64(4000), sum.Totals.Subtotal)
	assert.Equal(t, int64(500), sum.Totals.ShippingFee)
	assert.Equal(t, int64(4500), sum.Totals.Total)

	// 第一步:收货信息
	sum, err = uc.SubmitShipping(ctx, "c1", validShipping())
	require.NoError(t, err)
	assert.Equal(t, "payment_method", sum.Step)
	assert.Equal(t, "李四", sum.Shipping.Name)

	// 第二步:支付方式
	sum, err = uc.SubmitPayment(ctx, "c1", "cash_on_delivery")
	require.NoError(t, err)
	assert.Equal(t, "confirmation", sum.Step)
	assert.Equal(t, "cash_on_delivery", sum.PaymentMethod)
}

func TestWizard_StartIsIdempotent(t *testing.T) {
	uc := newWizard(t, "c1", cart.LineItem{BookID: 1, UnitPrice: 2000, Quantity: 1})
	ctx := context.Background()

	_, err := uc.Start(ctx, "c1")
	require.NoError(t, err)
	_, err = uc.SubmitShipping(ctx, "c1", validShipping())
	require.NoError(t, err)

	// 再次Start不重置进度
	sum, err := uc.Start(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "payment_method", sum.Step)
	assert.Equal(t, "李四", sum.Shipping.Name)
}

func TestWizard_StartRequiresNonEmptyCart(t *testing.T) {
	uc := newWizard(t, "c1")

	_, err := uc.Start(context.Background(), "c1")
	assert.ErrorIs(t, err, cart.ErrCartEmpty)
}

func TestWizard_StartMissingCart(t *testing.T) {
	uc := NewUseCase(memory.NewCheckoutStore(), memory.NewCartStore(), pricing.DefaultPolicy())

	_, err := uc.Start(context.Background(), "no-such-cart")
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
}

func TestWizard_ShippingValidation(t *testing.T) {
	uc := newWizard(t, "c1", cart.LineItem{BookID: 1, UnitPrice: 2000, Quantity: 1})
	ctx := context.Background()

	_, err := uc.Start(ctx, "c1")
	require.NoError(t, err)

	info := validShipping()
	info.Email = "not-an-email"
	_, err = uc.SubmitShipping(ctx, "c1", info)
	assert.ErrorIs(t, err, checkout.ErrInvalidEmail)

	// 校验失败不前进
	sum, err := uc.Get(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "shipping_info", sum.Step)
}

func TestWizard_PaymentRequiresShippingFirst(t *testing.T) {
	uc := newWizard(t, "c1", cart.LineItem{BookID: 1, UnitPrice: 2000, Quantity: 1})
	ctx := context.Background()

	_, err := uc.Start(ctx, "c1")
	require.NoError(t, err)

	_, err = uc.SubmitPayment(ctx, "c1", "cash_on_delivery")
	assert.ErrorIs(t, err, checkout.ErrStepNotAllowed)
}

func TestWizard_UnknownPaymentMethod(t *testing.T) {
	uc := newWizard(t, "c1", cart.LineItem{BookID: 1, UnitPrice: 2000, Quantity: 1})
	ctx := context.Background()

	_, err := uc.Start(ctx, "c1")
	require.NoError(t, err)
	_, err = uc.SubmitShipping(ctx, "c1", validShipping())
	require.NoError(t, err)

	_, err = uc.SubmitPayment(ctx, "c1", "bitcoin")
	assert.Error(t, err)
}

func TestWizard_BackKeepsData(t *testing.T) {
	uc := newWizard(t, "c1", cart.LineItem{BookID: 1, UnitPrice: 2000, Quantity: 1})
	ctx := context.Background()

	_, err := uc.Start(ctx, "c1")
	require.NoError(t, err)
	_, err = uc.SubmitShipping(ctx, "c1", validShipping())
	require.NoError(t, err)
	_, err = uc.SubmitPayment(ctx, "c1", "credit_card")
	require.NoError(t, err)

	// 确认页回退到支付方式,再回退到收货信息,数据都还在
	sum, err := uc.Back(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "payment_method", sum.Step)
	assert.Equal(t, "credit_card", sum.PaymentMethod)

	sum, err = uc.Back(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "shipping_info", sum.Step)
	assert.Equal(t, "李四", sum.Shipping.Name)

	// 第一步继续回退为无操作
	sum, err = uc.Back(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "shipping_info", sum.Step)
}

func TestWizard_GetWithoutSession(t *testing.T) {
	uc := newWizard(t, "c1", cart.LineItem{BookID: 1, UnitPrice: 2000, Quantity: 1})

	_, err := uc.Get(context.Background(), "c1")
	assert.ErrorIs(t, err, checkout.ErrSessionNotFound)
}
