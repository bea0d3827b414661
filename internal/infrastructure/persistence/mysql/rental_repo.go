package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/rental"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

var rentalSortColumns = map[string]string{
	"id":                 "id",
	"rental_date":        "rental_date",
	"return_date":        "return_date",
	"actual_return_date": "actual_return_date",
	"total_amount":       "total_amount",
	"status":             "status",
	"created_at":         "created_at",
}

// rentalRepository 租赁单仓储实现(MySQL)
// 租赁单和明细必须在同一事务中落库
type rentalRepository struct {
	db *gorm.DB
}

// NewRentalRepository 创建租赁单仓储
func NewRentalRepository(db *gorm.DB) rental.Repository {
	return &rentalRepository{db: db}
}

// Create 创建租赁单(单头+明细,同一事务)
func (r *rentalRepository) Create(ctx context.Context, ro *rental.RentalOrder) error {
	model := &RentalOrderModel{
		CustomerID:       ro.CustomerID,
		RentalDate:       ro.RentalDate,
		ReturnDate:       ro.ReturnDate,
		ActualReturnDate: ro.ActualReturnDate,
		Status:           string(ro.Status),
		TotalAmount:      ro.TotalAmount,
		Deposit:          ro.Deposit,
		LateFee:          ro.LateFee,
		RentalAddress:    ro.RentalAddress,
		Notes:            ro.Notes,
	}
	for _, item := range ro.Items {
		model.Items = append(model.Items, RentalItemModel{
			BookID:     item.BookID,
			RentalDays: item.RentalDays,
			DailyRate:  item.DailyRate,
			Subtotal:   item.Subtotal,
		})
	}

	// GORM会级联创建Items并回填RentalOrderID
	db := dbFromContext(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建租赁单失败")
	}

	ro.ID = model.ID
	ro.CreatedAt = model.CreatedAt
	ro.UpdatedAt = model.UpdatedAt
	for i := range model.Items {
		ro.Items[i].ID = model.Items[i].ID
		ro.Items[i].RentalOrderID = model.ID
	}
	return nil
}

// FindByID 根据ID查找租赁单(包含明细)
func (r *rentalRepository) FindByID(ctx context.Context, id uint) (*rental.RentalOrder, error) {
	var model RentalOrderModel
	db := dbFromContext(ctx, r.db)
	err := db.Preload("Items").First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, rental.ErrRentalNotFound
		}
		return nil, apperrors.Wrap(err, "查询租赁单失败")
	}
	return toRentalEntity(&model), nil
}

// Update 更新租赁单头(状态/日期/金额等,不更新明细)
func (r *rentalRepository) Update(ctx context.Context, ro *rental.RentalOrder) error {
	updates := map[string]interface{}{
		"customer_id":        ro.CustomerID,
		"rental_date":        ro.RentalDate,
		"return_date":        ro.ReturnDate,
		"actual_return_date": ro.ActualReturnDate,
		"status":             string(ro.Status),
		"total_amount":       ro.TotalAmount,
		"deposit":            ro.Deposit,
		"late_fee":           ro.LateFee,
		"rental_address":     ro.RentalAddress,
		"notes":              ro.Notes,
	}

	db := dbFromContext(ctx, r.db)
	result := db.Model(&RentalOrderModel{}).Where("id = ?", ro.ID).Updates(updates)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "更新租赁单失败")
	}
	if result.RowsAffected == 0 {
		return rental.ErrRentalNotFound
	}
	return nil
}

// Delete 物理删除租赁单及其明细
func (r *rentalRepository) Delete(ctx context.Context, id uint) error {
	db := dbFromContext(ctx, r.db)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("rental_order_id = ?", id).Delete(&RentalItemModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除租赁明细失败")
		}
		result := tx.Delete(&RentalOrderModel{}, id)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除租赁单失败")
		}
		if result.RowsAffected == 0 {
			return rental.ErrRentalNotFound
		}
		return nil
	})
}

// List 分页查询租赁单列表
func (r *rentalRepository) List(ctx context.Context, params rental.ListParams) ([]*rental.RentalOrder, int64, error) {
	var models []RentalOrderModel
	var total int64

	query := r.db.WithContext(ctx).Model(&RentalOrderModel{})

	if params.CustomerID > 0 {
		query = query.Where("customer_id = ?", params.CustomerID)
	}
	if params.Status != "" {
		query = query.Where("status = ?", string(params.Status))
	}
	if params.RentalDate != "" {
		query = query.Where("rental_date = ?", params.RentalDate)
	}
	if params.ReturnDate != "" {
		query = query.Where("return_date = ?", params.ReturnDate)
	}
	if params.ActualReturnDate != "" {
		query = query.Where("actual_return_date = ?", params.ActualReturnDate)
	}
	if params.TotalAmountGTE != nil {
		query = query.Where("total_amount >= ?", *params.TotalAmountGTE)
	}
	if params.TotalAmountLTE != nil {
		query = query.Where("total_amount <= ?", *params.TotalAmountLTE)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询租赁单总数失败")
	}

	if oc := orderClause(params.SortBy, params.Order, rentalSortColumns); oc != "" {
		query = query.Order(oc)
	} else {
		query = query.Order("id DESC") // 默认最新租赁单在前
	}

	query = applyRange(query, params.Start, params.End)

	if err := query.Preload("Items").Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询租赁单列表失败")
	}

	rentals := make([]*rental.RentalOrder, len(models))
	for i := range models {
		rentals[i] = toRentalEntity(&models[i])
	}
	return rentals, total, nil
}

// CountSince 统计某时间之后起租的租赁单数与租金总额(仪表盘)
func (r *rentalRepository) CountSince(ctx context.Context, since time.Time) (int64, int64, error) {
	var row struct {
		Count   int64
		Revenue int64
	}
	err := r.db.WithContext(ctx).Model(&RentalOrderModel{}).
		Select("COUNT(*) AS count, COALESCE(SUM(total_amount), 0) AS revenue").
		Where("rental_date >= ?", since).
		Scan(&row).Error
	if err != nil {
		return 0, 0, apperrors.Wrap(err, "统计租赁单失败")
	}
	return row.Count, row.Revenue, nil
}

// toRentalEntity GORM模型 → 领域实体
func toRentalEntity(model *RentalOrderModel) *rental.RentalOrder {
	items := make([]rental.RentalItem, len(model.Items))
	for i, item := range model.Items {
		items[i] = rental.RentalItem{
			ID:            item.ID,
			RentalOrderID: item.RentalOrderID,
			BookID:        item.BookID,
			RentalDays:    item.RentalDays,
			DailyRate:     item.DailyRate,
			Subtotal:      item.Subtotal,
		}
	}
	return &rental.RentalOrder{
		ID:               model.ID,
		CustomerID:       model.CustomerID,
		RentalDate:       model.RentalDate,
		ReturnDate:       model.ReturnDate,
		ActualReturnDate: model.ActualReturnDate,
		Status:           rental.RentalStatus(model.Status),
		TotalAmount:      model.TotalAmount,
		Deposit:          model.Deposit,
		LateFee:          model.LateFee,
		RentalAddress:    model.RentalAddress,
		Notes:            model.Notes,
		Items:            items,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}
