package mysql

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshop/internal/domain/customer"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

var customerSortColumns = map[string]string{
	"id":                "id",
	"name":              "name",
	"email":             "email",
	"registration_date": "registration_date",
	"total_orders":      "total_orders",
}

// customerRepository 客户仓储实现(MySQL)
// Delete为物理删除:下单Saga补偿时需要彻底移除刚写入的客户档案
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建客户仓储
func NewCustomerRepository(db *gorm.DB) customer.Repository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	model := &CustomerModel{
		Name:             c.Name,
		Email:            c.Email,
		Phone:            c.Phone,
		Address:          c.Address,
		BirthDate:        c.BirthDate,
		Gender:           c.Gender,
		RegistrationDate: c.RegistrationDate,
		TotalOrders:      c.TotalOrders,
	}

	db := dbFromContext(ctx, r.db)
	if err := db.Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建客户失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

func (r *customerRepository) FindByID(ctx context.Context, id uint) (*customer.Customer, error) {
	var model CustomerModel
	db := dbFromContext(ctx, r.db)
	if err := db.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "查询客户失败")
	}
	return toCustomerEntity(&model), nil
}

func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	var model CustomerModel
	db := dbFromContext(ctx, r.db)
	if err := db.Where("email = ?", email).Order("id DESC").First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, customer.ErrCustomerNotFound
		}
		return nil, apperrors.Wrap(err, "查询客户失败")
	}
	return toCustomerEntity(&model), nil
}

func (r *customerRepository) Patch(ctx context.Context, id uint, p customer.Patch) (*customer.Customer, error) {
	updates := map[string]interface{}{}
	if p.Name != nil {
		updates["name"] = *p.Name
	}
	if p.Email != nil {
		updates["email"] = *p.Email
	}
	if p.Phone != nil {
		updates["phone"] = *p.Phone
	}
	if p.Address != nil {
		updates["address"] = *p.Address
	}
	if p.BirthDate != nil {
		updates["birth_date"] = *p.BirthDate
	}
	if p.Gender != nil {
		updates["gender"] = *p.Gender
	}
	if p.TotalOrders != nil {
		updates["total_orders"] = *p.TotalOrders
	}

	if len(updates) > 0 {
		result := r.db.WithContext(ctx).Model(&CustomerModel{}).Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			return nil, apperrors.Wrap(result.Error, "更新客户失败")
		}
		if result.RowsAffected == 0 {
			return nil, customer.ErrCustomerNotFound
		}
	}

	return r.FindByID(ctx, id)
}

// Delete 物理删除客户
// 正常业务不删客户;仅Saga补偿回滚刚创建的档案时调用
func (r *customerRepository) Delete(ctx context.Context, id uint) error {
	db := dbFromContext(ctx, r.db)
	result := db.Unscoped().Delete(&CustomerModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除客户失败")
	}
	if result.RowsAffected == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}

func (r *customerRepository) List(ctx context.Context, params customer.ListParams) ([]*customer.Customer, int64, error) {
	var models []CustomerModel
	var total int64

	query := r.db.WithContext(ctx).Model(&CustomerModel{})

	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", keyword, keyword)
	}
	if params.Email != "" {
		query = query.Where("email = ?", params.Email)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询客户总数失败")
	}

	if oc := orderClause(params.SortBy, params.Order, customerSortColumns); oc != "" {
		query = query.Order(oc)
	} else {
		query = query.Order("id ASC")
	}

	query = applyRange(query, params.Start, params.End)

	if err := query.Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询客户列表失败")
	}

	customers := make([]*customer.Customer, len(models))
	for i := range models {
		customers[i] = toCustomerEntity(&models[i])
	}
	return customers, total, nil
}

// CountSince 统计指定时间后的新增客户数(仪表盘)
func (r *customerRepository) CountSince(ctx context.Context, since time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&CustomerModel{}).
		Where("registration_date >= ?", since).
		Count(&count).Error
	if err != nil {
		return 0, apperrors.Wrap(err, "统计新增客户失败")
	}
	return count, nil
}

func toCustomerEntity(model *CustomerModel) *customer.Customer {
	return &customer.Customer{
		ID:               model.ID,
		Name:             model.Name,
		Email:            model.Email,
		Phone:            model.Phone,
		Address:          model.Address,
		BirthDate:        model.BirthDate,
		Gender:           model.Gender,
		RegistrationDate: model.RegistrationDate,
		TotalOrders:      model.TotalOrders,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	}
}
