package dto

import (
	"time"

	"github.com/xiebiao/bookshop/internal/domain/author"
	"github.com/xiebiao/bookshop/internal/domain/category"
	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/domain/order"
)

// =========================================
// 作者
// =========================================

// AuthorResponse 作者响应DTO
type AuthorResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Nationality  string `json:"nationality,omitempty"`
	ProfileImage string `json:"profile_image,omitempty"`
}

// ToAuthorResponse 领域实体 → 响应DTO
func ToAuthorResponse(a *author.Author) AuthorResponse {
	return AuthorResponse{
		ID:           a.ID,
		Name:         a.Name,
		Nationality:  a.Nationality,
		ProfileImage: a.ProfileImage,
	}
}

// ToAuthorResponses 批量转换
func ToAuthorResponses(authors []*author.Author) []AuthorResponse {
	out := make([]AuthorResponse, len(authors))
	for i, a := range authors {
		out[i] = ToAuthorResponse(a)
	}
	return out
}

// CreateAuthorRequest 创建作者请求DTO
type CreateAuthorRequest struct {
	Name         string `json:"name" binding:"required"`
	Nationality  string `json:"nationality"`
	ProfileImage string `json:"profile_image"`
}

// PatchAuthorRequest 部分更新作者请求DTO
type PatchAuthorRequest struct {
	Name         *string `json:"name"`
	Nationality  *string `json:"nationality"`
	ProfileImage *string `json:"profile_image"`
}

// ToPatch 请求DTO → 领域Patch
func (r PatchAuthorRequest) ToPatch() author.Patch {
	return author.Patch{
		Name:         r.Name,
		Nationality:  r.Nationality,
		ProfileImage: r.ProfileImage,
	}
}

// =========================================
// 分类
// =========================================

// CategoryResponse 分类响应DTO
type CategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ToCategoryResponse 领域实体 → 响应DTO
func ToCategoryResponse(c *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
	}
}

// ToCategoryResponses 批量转换
func ToCategoryResponses(categories []*category.Category) []CategoryResponse {
	out := make([]CategoryResponse, len(categories))
	for i, c := range categories {
		out[i] = ToCategoryResponse(c)
	}
	return out
}

// CreateCategoryRequest 创建分类请求DTO
type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

// PatchCategoryRequest 部分更新分类请求DTO
type PatchCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ToPatch 请求DTO → 领域Patch
func (r PatchCategoryRequest) ToPatch() category.Patch {
	return category.Patch{
		Name:        r.Name,
		Description: r.Description,
	}
}

// =========================================
// 客户
// =========================================

// CustomerResponse 客户响应DTO
type CustomerResponse struct {
	ID               uint   `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	Address          string `json:"address"`
	BirthDate        string `json:"birth_date,omitempty"`
	Gender           string `json:"gender,omitempty"`
	RegistrationDate string `json:"registration_date"`
	TotalOrders      int    `json:"total_orders"`
}

// ToCustomerResponse 领域实体 → 响应DTO
func ToCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:               c.ID,
		Name:             c.Name,
		Email:            c.Email,
		Phone:            c.Phone,
		Address:          c.Address,
		BirthDate:        c.BirthDate,
		Gender:           c.Gender,
		RegistrationDate: c.RegistrationDate.Format(time.RFC3339),
		TotalOrders:      c.TotalOrders,
	}
}

// ToCustomerResponses 批量转换
func ToCustomerResponses(customers []*customer.Customer) []CustomerResponse {
	out := make([]CustomerResponse, len(customers))
	for i, c := range customers {
		out[i] = ToCustomerResponse(c)
	}
	return out
}

// CreateCustomerRequest 手工创建客户请求DTO(后台补录)
type CreateCustomerRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Address   string `json:"address"`
	BirthDate string `json:"birth_date"`
	Gender    string `json:"gender"`
}

// PatchCustomerRequest 部分更新客户请求DTO
type PatchCustomerRequest struct {
	Name        *string `json:"name"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Address     *string `json:"address"`
	BirthDate   *string `json:"birth_date"`
	Gender      *string `json:"gender"`
	TotalOrders *int    `json:"total_orders"`
}

// ToPatch 请求DTO → 领域Patch
func (r PatchCustomerRequest) ToPatch() customer.Patch {
	return customer.Patch{
		Name:        r.Name,
		Email:       r.Email,
		Phone:       r.Phone,
		Address:     r.Address,
		BirthDate:   r.BirthDate,
		Gender:      r.Gender,
		TotalOrders: r.TotalOrders,
	}
}

// =========================================
// 订单
// =========================================

// OrderItemResponse 订单明细响应DTO
type OrderItemResponse struct {
	BookID    uint  `json:"book_id"`
	Quantity  int   `json:"quantity"`
	UnitPrice int64 `json:"unit_price"`
	Subtotal  int64 `json:"subtotal"`
}

// OrderResponse 订单响应DTO
type OrderResponse struct {
	ID              uint                `json:"id"`
	OrderNo         string              `json:"order_no"`
	CustomerID      uint                `json:"customer_id"`
	OrderDate       string              `json:"order_date"`
	Status          string              `json:"status"`
	TotalAmount     int64               `json:"total_amount"`
	ShippingAddress string              `json:"shipping_address"`
	PaymentMethod   string              `json:"payment_method"`
	ShippingFee     int64               `json:"shipping_fee"`
	Discount        int64               `json:"discount"`
	Notes           string              `json:"notes,omitempty"`
	OrderItems      []OrderItemResponse `json:"order_items"`
}

// ToOrderResponse 领域实体 → 响应DTO
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			BookID:    item.BookID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		}
	}
	return OrderResponse{
		ID:              o.ID,
		OrderNo:         o.OrderNo,
		CustomerID:      o.CustomerID,
		OrderDate:       o.OrderDate.Format(time.RFC3339),
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   string(o.PaymentMethod),
		ShippingFee:     o.ShippingFee,
		Discount:        o.Discount,
		Notes:           o.Notes,
		OrderItems:      items,
	}
}

// ToOrderResponses 批量转换
func ToOrderResponses(orders []*order.Order) []OrderResponse {
	out := make([]OrderResponse, len(orders))
	for i, o := range orders {
		out[i] = ToOrderResponse(o)
	}
	return out
}

// PatchOrderRequest 部分更新订单请求DTO
type PatchOrderRequest struct {
	Status          *string `json:"status"`
	ShippingAddress *string `json:"shipping_address"`
	PaymentMethod   *string `json:"payment_method"`
	Discount        *int64  `json:"discount"`
	Notes           *string `json:"notes"`
}

// ToPatch 请求DTO → 领域Patch
func (r PatchOrderRequest) ToPatch() (order.Patch, error) {
	p := order.Patch{
		ShippingAddress: r.ShippingAddress,
		Discount:        r.Discount,
		Notes:           r.Notes,
	}
	if r.Status != nil {
		s := order.OrderStatus(*r.Status)
		if !s.Valid() {
			return order.Patch{}, order.ErrInvalidStatus
		}
		p.Status = &s
	}
	if r.PaymentMethod != nil {
		m, err := order.ParsePaymentMethod(*r.PaymentMethod)
		if err != nil {
			return order.Patch{}, err
		}
		p.PaymentMethod = &m
	}
	return p, nil
}
