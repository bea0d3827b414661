package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/order"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

var orderSortColumns = map[string]string{
	"id":           "id",
	"order_date":   "order_date",
	"total_amount": "total_amount",
	"status":       "status",
	"created_at":   "created_at",
}

// orderRepository 订单仓储实现(MySQL)
// 设计说明:
// 1. 订单和明细必须在同一事务中落库
// 2. Delete为物理删除,仅供结算Saga补偿使用
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

// Create 创建订单(订单头+明细,同一事务)
func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := &OrderModel{
		OrderNo:         o.OrderNo,
		CustomerID:      o.CustomerID,
		OrderDate:       o.OrderDate,
		Status:          string(o.Status),
		TotalAmount:     o.TotalAmount,
		ShippingAddress: o.ShippingAddress,
		PaymentMethod:   string(o.PaymentMethod),
		ShippingFee:     o.ShippingFee,
		Discount:        o.Discount,
		Notes:           o.Notes,
	}
	for _, item := range o.Items {
		model.Items = append(model.Items, OrderItemModel{
			BookID:    item.BookID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		})
	}

	// GORM会级联创建Items并回填OrderID
	db := dbFromContext(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "订单号重复")
		}
		return apperrors.Wrap(err, "创建订单失败")
	}

	o.ID = model.ID
	o.CreatedAt = model.CreatedAt
	o.UpdatedAt = model.UpdatedAt
	for i := range model.Items {
		o.Items[i].ID = model.Items[i].ID
		o.Items[i].OrderID = model.ID
	}
	return nil
}

// FindByID 根据ID查找订单(包含明细)
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	db := dbFromContext(ctx, r.db)
	err := db.Preload("Items").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// FindByOrderNo 根据订单号查找订单
func (r *orderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	var model OrderModel
	db := dbFromContext(ctx, r.db)
	err := db.Preload("Items").Where("order_no = ?", orderNo).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// Update 更新订单头(状态/地址/备注等,不更新明细)
func (r *orderRepository) Update(ctx context.Context, o *order.Order) error {
	updates := map[string]interface{}{
		"status":           string(o.Status),
		"shipping_address": o.ShippingAddress,
		"payment_method":   string(o.PaymentMethod),
		"discount":         o.Discount,
		"notes":            o.Notes,
		"total_amount":     o.TotalAmount,
	}

	db := dbFromContext(ctx, r.db)
	result := db.Model(&OrderModel{}).Where("id = ?", o.ID).Updates(updates)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新订单失败")
	}
	if result.RowsAffected == 0 {
		return order.ErrOrderNotFound
	}
	return nil
}

// Delete 物理删除订单及其明细(仅用于Saga补偿)
func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	db := dbFromContext(ctx, r.db)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&OrderItemModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除订单明细失败")
		}
		result := tx.Delete(&OrderModel{}, id)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除订单失败")
		}
		if result.RowsAffected == 0 {
			return order.ErrOrderNotFound
		}
		return nil
	})
}

// List 分页查询订单列表
func (r *orderRepository) List(ctx context.Context, params order.ListParams) ([]*order.Order, int64, error) {
	var models []OrderModel
	var total int64

	query := r.db.WithContext(ctx).Model(&OrderModel{})

	if params.CustomerID > 0 {
		query = query.Where("customer_id = ?", params.CustomerID)
	}
	if params.Status != "" {
		query = query.Where("status = ?", string(params.Status))
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	if oc := orderClause(params.SortBy, params.Order, orderSortColumns); oc != "" {
		query = query.Order(oc)
	} else {
		query = query.Order("id DESC") // 默认最新订单在前
	}

	query = applyRange(query, params.Start, params.End)

	if err := query.Preload("Items").Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

// CountSince 统计某时间之后创建的订单数与总金额(仪表盘)
func (r *orderRepository) CountSince(ctx context.Context, since time.Time) (int64, int64, error) {
	var row struct {
		Count   int64
		Revenue int64
	}
	err := r.db.WithContext(ctx).Model(&OrderModel{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("order_date >= ?", since).
		Where("status <> ?", string(order.StatusCancelled)).
		Scan(&row).Error
	if err != nil {
		return 0, 0, apperrors.Wrap(err, "统计订单失败")
	}
	return row.Count, row.Revenue, nil
}

// toOrderEntity GORM模型 → 领域实体
func toOrderEntity(model *OrderModel) *order.Order {
	items := make([]order.OrderItem, len(model.Items))
	for i, item := range model.Items {
		items[i] = order.OrderItem{
			ID:        item.ID,
			OrderID:   item.OrderID,
			BookID:    item.BookID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Subtotal:  item.Subtotal,
		}
	}
	return &order.Order{
		ID:              model.ID,
		OrderNo:         model.OrderNo,
		CustomerID:      model.CustomerID,
		OrderDate:       model.OrderDate,
		Status:          order.OrderStatus(model.Status),
		TotalAmount:     model.TotalAmount,
		ShippingAddress: model.ShippingAddress,
		PaymentMethod:   order.PaymentMethod(model.PaymentMethod),
		ShippingFee:     model.ShippingFee,
		Discount:        model.Discount,
		Notes:           model.Notes,
		Items:           items,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	}
}
