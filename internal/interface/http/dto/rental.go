package dto

import (
	"time"

	apprental "github.com/xiebiao/bookshop/internal/application/rental"
	"github.com/xiebiao/bookshop/internal/domain/rental"
)

// RentalItemResponse 租赁明细响应DTO
type RentalItemResponse struct {
	BookID     uint  `json:"book_id"`
	RentalDays int   `json:"rental_days"`
	DailyRate  int64 `json:"daily_rate"`
	Subtotal   int64 `json:"subtotal"`
}

// RentalOrderResponse 租赁单响应DTO
// 日期字段输出"2006-01-02"格式,与Gateway的DateField约定一致;
// 未归还时actual_return_date为空字符串
type RentalOrderResponse struct {
	ID               uint                 `json:"id"`
	CustomerID       uint                 `json:"customer_id"`
	RentalDate       string               `json:"rental_date"`
	ReturnDate       string               `json:"return_date"`
	ActualReturnDate string               `json:"actual_return_date"`
	Status           string               `json:"status"`
	TotalAmount      int64                `json:"total_amount"`
	Deposit          int64                `json:"deposit"`
	LateFee          int64                `json:"late_fee"`
	RentalAddress    string               `json:"rental_address"`
	Notes            string               `json:"notes,omitempty"`
	RentalItems      []RentalItemResponse `json:"rental_items"`
}

// ToRentalOrderResponse 领域实体 → 响应DTO
func ToRentalOrderResponse(r *rental.RentalOrder) RentalOrderResponse {
	items := make([]RentalItemResponse, len(r.Items))
	for i, item := range r.Items {
		items[i] = RentalItemResponse{
			BookID:     item.BookID,
			RentalDays: item.RentalDays,
			DailyRate:  item.DailyRate,
			Subtotal:   item.Subtotal,
		}
	}
	actualReturn := ""
	if r.ActualReturnDate != nil {
		actualReturn = r.ActualReturnDate.Format(dateLayout)
	}
	return RentalOrderResponse{
		ID:               r.ID,
		CustomerID:       r.CustomerID,
		RentalDate:       r.RentalDate.Format(dateLayout),
		ReturnDate:       r.ReturnDate.Format(dateLayout),
		ActualReturnDate: actualReturn,
		Status:           string(r.Status),
		TotalAmount:      r.TotalAmount,
		Deposit:          r.Deposit,
		LateFee:          r.LateFee,
		RentalAddress:    r.RentalAddress,
		Notes:            r.Notes,
		RentalItems:      items,
	}
}

// ToRentalOrderResponses 批量转换
func ToRentalOrderResponses(rentals []*rental.RentalOrder) []RentalOrderResponse {
	out := make([]RentalOrderResponse, len(rentals))
	for i, r := range rentals {
		out[i] = ToRentalOrderResponse(r)
	}
	return out
}

// RentalItemRequest 租赁明细录入DTO
type RentalItemRequest struct {
	BookID     uint  `json:"book_id" binding:"required"`
	RentalDays int   `json:"rental_days" binding:"required"`
	DailyRate  int64 `json:"daily_rate"`
	Subtotal   int64 `json:"subtotal"`
}

// CreateRentalOrderRequest 创建租赁单请求DTO
type CreateRentalOrderRequest struct {
	CustomerID       uint                `json:"customer_id" binding:"required"`
	RentalDate       string              `json:"rental_date" binding:"required"`
	ReturnDate       string              `json:"return_date" binding:"required"`
	ActualReturnDate string              `json:"actual_return_date"`
	TotalAmount      int64               `json:"total_amount"`
	Deposit          int64               `json:"deposit"`
	RentalAddress    string              `json:"rental_address"`
	Notes            string              `json:"notes"`
	RentalItems      []RentalItemRequest `json:"rental_items" binding:"required"`
}

// ToCreateRequest 请求DTO → 应用层请求
func (r CreateRentalOrderRequest) ToCreateRequest() (apprental.CreateRequest, error) {
	rentalDate, err := time.Parse(dateLayout, r.RentalDate)
	if err != nil {
		return apprental.CreateRequest{}, rental.ErrInvalidDate
	}
	returnDate, err := time.Parse(dateLayout, r.ReturnDate)
	if err != nil {
		return apprental.CreateRequest{}, rental.ErrInvalidDate
	}

	req := apprental.CreateRequest{
		CustomerID:    r.CustomerID,
		RentalDate:    rentalDate,
		ReturnDate:    returnDate,
		TotalAmount:   r.TotalAmount,
		Deposit:       r.Deposit,
		RentalAddress: r.RentalAddress,
		Notes:         r.Notes,
	}
	if r.ActualReturnDate != "" {
		t, err := time.Parse(dateLayout, r.ActualReturnDate)
		if err != nil {
			return apprental.CreateRequest{}, rental.ErrInvalidDate
		}
		req.ActualReturnDate = &t
	}
	for _, item := range r.RentalItems {
		req.Items = append(req.Items, apprental.ItemInput{
			BookID:     item.BookID,
			RentalDays: item.RentalDays,
			DailyRate:  item.DailyRate,
			Subtotal:   item.Subtotal,
		})
	}
	return req, nil
}

// PatchRentalOrderRequest 部分更新租赁单请求DTO
type PatchRentalOrderRequest struct {
	CustomerID       *uint   `json:"customer_id"`
	RentalDate       *string `json:"rental_date"`
	ReturnDate       *string `json:"return_date"`
	ActualReturnDate *string `json:"actual_return_date"`
	Status           *string `json:"status"`
	TotalAmount      *int64  `json:"total_amount"`
	Deposit          *int64  `json:"deposit"`
	LateFee          *int64  `json:"late_fee"`
	RentalAddress    *string `json:"rental_address"`
	Notes            *string `json:"notes"`
}

// ToPatch 请求DTO → 领域Patch
func (r PatchRentalOrderRequest) ToPatch() (rental.Patch, error) {
	p := rental.Patch{
		CustomerID:    r.CustomerID,
		TotalAmount:   r.TotalAmount,
		Deposit:       r.Deposit,
		LateFee:       r.LateFee,
		RentalAddress: r.RentalAddress,
		Notes:         r.Notes,
	}
	if r.Status != nil {
		s, err := rental.ParseRentalStatus(*r.Status)
		if err != nil {
			return rental.Patch{}, err
		}
		p.Status = &s
	}
	if r.RentalDate != nil {
		t, err := time.Parse(dateLayout, *r.RentalDate)
		if err != nil {
			return rental.Patch{}, rental.ErrInvalidDate
		}
		p.RentalDate = &t
	}
	if r.ReturnDate != nil {
		t, err := time.Parse(dateLayout, *r.ReturnDate)
		if err != nil {
			return rental.Patch{}, rental.ErrInvalidDate
		}
		p.ReturnDate = &t
	}
	if r.ActualReturnDate != nil && *r.ActualReturnDate != "" {
		t, err := time.Parse(dateLayout, *r.ActualReturnDate)
		if err != nil {
			return rental.Patch{}, rental.ErrInvalidDate
		}
		p.ActualReturnDate = &t
	}
	return p, nil
}
