package checkout

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/checkout"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/domain/pricing"
)

// UseCase 结算流程用例(三步式向导)
// 设计说明:
// 1. 会话与购物车一一对应,以购物车ID为键
// 2. 前进必须通过校验,回退永远允许且不丢数据
// 3. 最终提交由PlaceOrderUseCase负责(Saga编排)
type UseCase struct {
	sessionRepo checkout.Repository
	cartRepo    cart.Repository
	pricing     pricing.Policy
}

// NewUseCase 创建结算流程用例
func NewUseCase(sessionRepo checkout.Repository, cartRepo cart.Repository, policy pricing.Policy) *UseCase {
	return &UseCase{
		sessionRepo: sessionRepo,
		cartRepo:    cartRepo,
		pricing:     policy,
	}
}

// Summary 结算摘要DTO
// 确认页一次性展示:购物车明细+金额汇总+收货信息+支付方式
type Summary struct {
	CartID        string                `json:"cart_id"`
	Step          string                `json:"step"`
	Items         []cart.LineItem       `json:"items"`
	Totals        pricing.Totals        `json:"totals"`
	Shipping      checkout.ShippingInfo `json:"shipping"`
	PaymentMethod string                `json:"payment_method,omitempty"`
	OrderID       uint                  `json:"order_id,omitempty"`
}

// Start 开始结算
// 购物车必须存在且非空;已有会话时返回现有会话(幂等)
func (uc *UseCase) Start(ctx context.Context, cartID string) (*Summary, error) {
	c, err := uc.cartRepo.Find(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, cart.ErrCartEmpty
	}

	sess, err := uc.sessionRepo.Find(ctx, cartID)
	if err != nil {
		if err != checkout.ErrSessionNotFound {
			return nil, err
		}
		sess = checkout.NewSession(cartID)
		if err := uc.sessionRepo.Save(ctx, sess); err != nil {
			return nil, err
		}
	}

	return uc.toSummary(sess, c), nil
}

// SubmitShipping 提交收货信息(第一步)
func (uc *UseCase) SubmitShipping(ctx context.Context, cartID string, info checkout.ShippingInfo) (*Summary, error) {
	sess, c, err := uc.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if err := sess.SubmitShipping(info); err != nil {
		return nil, err
	}

	if err := uc.sessionRepo.Save(ctx, sess); err != nil {
		return nil, err
	}
	return uc.toSummary(sess, c), nil
}

// SubmitPayment 选择支付方式(第二步)
func (uc *UseCase) SubmitPayment(ctx context.Context, cartID string, method string) (*Summary, error) {
	sess, c, err := uc.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	pm, err := order.ParsePaymentMethod(method)
	if err != nil {
		return nil, err
	}

	if err := sess.SubmitPayment(pm); err != nil {
		return nil, err
	}

	if err := uc.sessionRepo.Save(ctx, sess); err != nil {
		return nil, err
	}
	return uc.toSummary(sess, c), nil
}

// Back 回退一步
func (uc *UseCase) Back(ctx context.Context, cartID string) (*Summary, error) {
	sess, c, err := uc.load(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if err := sess.Back(); err != nil {
		return nil, err
	}

	if err := uc.sessionRepo.Save(ctx, sess); err != nil {
		return nil, err
	}
	return uc.toSummary(sess, c), nil
}

// Get 查看当前结算状态(确认页刷新)
func (uc *UseCase) Get(ctx context.Context, cartID string) (*Summary, error) {
	sess, c, err := uc.load(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return uc.toSummary(sess, c), nil
}

// load 加载会话和对应的购物车
func (uc *UseCase) load(ctx context.Context, cartID string) (*checkout.Session, *cart.Cart, error) {
	sess, err := uc.sessionRepo.Find(ctx, cartID)
	if err != nil {
		return nil, nil, err
	}
	c, err := uc.cartRepo.Find(ctx, cartID)
	if err != nil {
		return nil, nil, err
	}
	return sess, c, nil
}

// toSummary 构建结算摘要
func (uc *UseCase) toSummary(sess *checkout.Session, c *cart.Cart) *Summary {
	return &Summary{
		CartID:        sess.CartID,
		Step:          sess.Step.String(),
		Items:         c.Items,
		Totals:        uc.pricing.Compute(c.PricingItems()),
		Shipping:      sess.Shipping,
		PaymentMethod: string(sess.PaymentMethod),
		OrderID:       sess.OrderID,
	}
}
