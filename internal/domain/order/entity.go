package order

import (
	"time"
)

// OrderStatus 订单状态
// 设计说明:
//  1. 建模为封闭枚举(类型化字符串),而非自由文本:
//     对外JSON直接是可读的状态值,同时后台编辑只能沿合法流转推进
//  2. 状态流转: pending → processing → shipped → delivered
//     pending/processing 可取消
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"    // 待处理
	StatusProcessing OrderStatus = "processing" // 处理中
	StatusShipped    OrderStatus = "shipped"    // 已发货
	StatusDelivered  OrderStatus = "delivered"  // 已送达
	StatusCancelled  OrderStatus = "cancelled"  // 已取消
)

// Valid 是否为合法状态值
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// statusTransitions 合法的状态转换规则
// 防止非法状态跳转(如从"已送达"跳回"待处理")
var statusTransitions = map[OrderStatus][]OrderStatus{
	StatusPending:    {StatusProcessing, StatusCancelled},
	StatusProcessing: {StatusShipped, StatusCancelled},
	StatusShipped:    {StatusDelivered},
	StatusDelivered:  {}, // 终态
	StatusCancelled:  {}, // 终态
}

// PaymentMethod 支付方式(封闭枚举)
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery" // 货到付款
	PaymentBankTransfer   PaymentMethod = "bank_transfer"    // 银行转账
	PaymentCreditCard     PaymentMethod = "credit_card"      // 信用卡
)

// Valid 是否为合法支付方式
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCashOnDelivery, PaymentBankTransfer, PaymentCreditCard:
		return true
	}
	return false
}

// ParsePaymentMethod 解析支付方式
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !m.Valid() {
		return "", ErrInvalidPaymentMethod
	}
	return m, nil
}

// OrderItem 订单明细项
// 设计说明:
// 1. 不是独立聚合根,必须通过Order访问
// 2. UnitPrice记录"下单时的单价"(历史价格快照,防止改价后历史订单金额变化)
// 3. Subtotal = UnitPrice × Quantity,冗余存储便于报表查询
type OrderItem struct {
	ID        uint  `json:"-"`
	OrderID   uint  `json:"-"`
	BookID    uint  `json:"book_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"` // 下单时单价(分)
	Subtotal  int64 `json:"subtotal"`   // 明细小计(分)
}

// Order 订单实体(聚合根)
// 设计说明:
// 1. Order是聚合根,OrderItem是聚合内的子实体
// 2. OrderNo为业务主键(全局唯一,时间有序,不可预测)
// 3. TotalAmount冗余存储"下单时计算的应付总额"(商品小计+运费-折扣)
// 4. 客户侧下单后订单不可变;后台可沿合法流转修改状态及备注等字段
type Order struct {
	ID              uint          `json:"id"`
	OrderNo         string        `json:"order_no"`
	CustomerID      uint          `json:"customer_id"`
	OrderDate       time.Time     `json:"order_date"`
	Status          OrderStatus   `json:"status"`
	TotalAmount     int64         `json:"total_amount"` // 应付总额(分)
	ShippingAddress string        `json:"shipping_address"`
	PaymentMethod   PaymentMethod `json:"payment_method"`
	ShippingFee     int64         `json:"shipping_fee"` // 运费(分)
	Discount        int64         `json:"discount"`     // 折扣(分)
	Notes           string        `json:"notes,omitempty"`
	Items           []OrderItem   `json:"order_items"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// New 创建新订单(工厂方法)
// 初始状态为pending;订单号由调用方传入(GenerateOrderNo)
func New(orderNo string, customerID uint, items []OrderItem, totalAmount, shippingFee int64, address string, method PaymentMethod, notes string) *Order {
	now := time.Now()
	return &Order{
		OrderNo:         orderNo,
		CustomerID:      customerID,
		OrderDate:       now,
		Status:          StatusPending,
		TotalAmount:     totalAmount,
		ShippingAddress: address,
		PaymentMethod:   method,
		ShippingFee:     shippingFee,
		Discount:        0,
		Notes:           notes,
		Items:           items,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// CanTransitionTo 检查是否可以转换到目标状态
func (o *Order) CanTransitionTo(target OrderStatus) bool {
	allowed, exists := statusTransitions[o.Status]
	if !exists {
		return false
	}
	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}

// TransitionTo 状态转换(先校验业务规则,成功后更新UpdatedAt)
func (o *Order) TransitionTo(target OrderStatus) error {
	if !target.Valid() {
		return ErrInvalidStatus
	}
	if !o.CanTransitionTo(target) {
		return ErrInvalidStatusTransition
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// CalculateTotal 根据明细实时计算应付总额
// 用途:创建订单时验证冗余的TotalAmount是否一致
func (o *Order) CalculateTotal() int64 {
	var subtotal int64
	for _, item := range o.Items {
		subtotal += item.Subtotal
	}
	return subtotal + o.ShippingFee - o.Discount
}
