package dto

// 购物车/结算接口的请求DTO
// 响应直接复用application层的View/Summary/Result(带json标签),
// 外层套统一响应信封(pkg/response)

// AddCartItemRequest 加入购物车请求
type AddCartItemRequest struct {
	BookID   uint `json:"book_id" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

// UpdateCartItemRequest 修改购物车明细数量请求
// 数量为0等价于移除该明细
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// ShippingInfoRequest 结算第一步:收货信息
type ShippingInfoRequest struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
	BirthDate string `json:"birth_date"`
	Gender    string `json:"gender"`
	Notes     string `json:"notes"`
}

// PaymentMethodRequest 结算第二步:支付方式
type PaymentMethodRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}
