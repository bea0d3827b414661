package customer

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/customer"
)

// UseCase 客户管理用例(后台)
// 客户档案主要由结算流程自动创建,后台只做查询和少量修正
type UseCase struct {
	repo customer.Repository
}

// NewUseCase 创建客户管理用例
func NewUseCase(repo customer.Repository) *UseCase {
	return &UseCase{repo: repo}
}

// CreateRequest 手工创建客户请求DTO(后台补录)
type CreateRequest struct {
	Name      string
	Email     string
	Phone     string
	Address   string
	BirthDate string
	Gender    string
}

// Create 手工创建客户
func (uc *UseCase) Create(ctx context.Context, req CreateRequest) (*customer.Customer, error) {
	c, err := customer.New(req.Name, req.Email, req.Phone, req.Address)
	if err != nil {
		return nil, err
	}
	c.BirthDate = req.BirthDate
	c.Gender = req.Gender
	// 手工补录的客户没有关联订单
	c.TotalOrders = 0

	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Get 查看客户详情
func (uc *UseCase) Get(ctx context.Context, id uint) (*customer.Customer, error) {
	return uc.repo.FindByID(ctx, id)
}

// List 客户列表
func (uc *UseCase) List(ctx context.Context, params customer.ListParams) ([]*customer.Customer, int64, error) {
	return uc.repo.List(ctx, params)
}

// Patch 部分更新客户
func (uc *UseCase) Patch(ctx context.Context, id uint, p customer.Patch) (*customer.Customer, error) {
	if p.Email != nil && !customer.ValidEmail(*p.Email) {
		return nil, customer.ErrInvalidEmail
	}
	return uc.repo.Patch(ctx, id, p)
}

// Delete 删除客户
func (uc *UseCase) Delete(ctx context.Context, id uint) error {
	return uc.repo.Delete(ctx, id)
}
