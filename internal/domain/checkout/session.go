package checkout

import (
	"strings"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/order"
)

// Step 结算流程步骤
// 三步式结算：收货信息 -> 支付方式 -> 确认下单
type Step int

const (
	StepShippingInfo  Step = 1 // 第一步：填写收货信息
	StepPaymentMethod Step = 2 // 第二步：选择支付方式
	StepConfirmation  Step = 3 // 第三步：核对确认
	StepSubmitted     Step = 4 // 已提交(终态)
)

// String 步骤名称
func (s Step) String() string {
	switch s {
	case StepShippingInfo:
		return "shipping_info"
	case StepPaymentMethod:
		return "payment_method"
	case StepConfirmation:
		return "confirmation"
	case StepSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// ShippingInfo 收货信息
type ShippingInfo struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	BirthDate string `json:"birth_date,omitempty"`
	Gender    string `json:"gender,omitempty"`
	Notes     string `json:"notes,omitempty"`
}

// Validate 收货信息校验
// 姓名、邮箱、电话、地址为必填项
func (si ShippingInfo) Validate() error {
	if strings.TrimSpace(si.Name) == "" {
		return ErrMissingName
	}
	email := strings.TrimSpace(si.Email)
	at := strings.Index(email, "@")
	if at <= 0 || at >= len(email)-1 {
		return ErrInvalidEmail
	}
	if strings.TrimSpace(si.Phone) == "" {
		return ErrMissingPhone
	}
	if strings.TrimSpace(si.Address) == "" {
		return ErrMissingAddress
	}
	return nil
}

// Session 结算会话
// 与购物车绑定;步骤只能逐级前进,回退不做校验
type Session struct {
	CartID        string              `json:"cart_id"`
	Step          Step                `json:"step"`
	Shipping      ShippingInfo        `json:"shipping"`
	PaymentMethod order.PaymentMethod `json:"payment_method,omitempty"`
	OrderID       uint                `json:"order_id,omitempty"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// NewSession 创建结算会话,从第一步开始
func NewSession(cartID string) *Session {
	now := time.Now()
	return &Session{
		CartID:    cartID,
		Step:      StepShippingInfo,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SubmitShipping 提交收货信息并前进到支付方式步骤
// 校验失败时停留在当前步骤
func (s *Session) SubmitShipping(info ShippingInfo) error {
	if s.Step == StepSubmitted {
		return ErrSessionSubmitted
	}
	if s.Step > StepShippingInfo {
		// 从后面的步骤回到第一步重新提交也是允许的
		s.Step = StepShippingInfo
	}
	if err := info.Validate(); err != nil {
		return err
	}
	s.Shipping = info
	s.Step = StepPaymentMethod
	s.UpdatedAt = time.Now()
	return nil
}

// SubmitPayment 提交支付方式并前进到确认步骤
// 必须已完成收货信息步骤
func (s *Session) SubmitPayment(method order.PaymentMethod) error {
	if s.Step == StepSubmitted {
		return ErrSessionSubmitted
	}
	if s.Step < StepPaymentMethod {
		return ErrStepNotAllowed
	}
	if !method.Valid() {
		return order.ErrInvalidPaymentMethod
	}
	s.PaymentMethod = method
	s.Step = StepConfirmation
	s.UpdatedAt = time.Now()
	return nil
}

// Back 回退一步
// 回退方向永远允许,不触发任何校验,已填写的数据保留
func (s *Session) Back() error {
	if s.Step == StepSubmitted {
		return ErrSessionSubmitted
	}
	if s.Step > StepShippingInfo {
		s.Step--
		s.UpdatedAt = time.Now()
	}
	return nil
}

// CanSubmit 是否可以提交下单（必须处于确认步骤）
func (s *Session) CanSubmit() bool {
	return s.Step == StepConfirmation
}

// MarkSubmitted 下单成功后标记会话为终态
func (s *Session) MarkSubmitted(orderID uint) error {
	if !s.CanSubmit() {
		return ErrStepNotAllowed
	}
	s.OrderID = orderID
	s.Step = StepSubmitted
	s.UpdatedAt = time.Now()
	return nil
}
