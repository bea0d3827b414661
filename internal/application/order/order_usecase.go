package order

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/order"
)

// UseCase 订单管理用例(后台)
// 订单由结算流程创建,后台负责查询、状态流转和信息修正;
// 状态修改必须沿合法流转(pending→processing→shipped→delivered,
// pending/processing可取消,终态不可再变)
type UseCase struct {
	repo order.Repository
}

// NewUseCase 创建订单管理用例
func NewUseCase(repo order.Repository) *UseCase {
	return &UseCase{repo: repo}
}

// Get 查看订单详情(含明细)
func (uc *UseCase) Get(ctx context.Context, id uint) (*order.Order, error) {
	return uc.repo.FindByID(ctx, id)
}

// GetByOrderNo 根据订单号查询
func (uc *UseCase) GetByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	return uc.repo.FindByOrderNo(ctx, orderNo)
}

// List 订单列表
func (uc *UseCase) List(ctx context.Context, params order.ListParams) ([]*order.Order, int64, error) {
	return uc.repo.List(ctx, params)
}

// Patch 部分更新订单
// 状态变更走领域层的流转校验,其余字段直接覆盖
func (uc *UseCase) Patch(ctx context.Context, id uint, p order.Patch) (*order.Order, error) {
	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Status != nil {
		if err := o.TransitionTo(*p.Status); err != nil {
			return nil, err
		}
	}
	if p.ShippingAddress != nil {
		o.ShippingAddress = *p.ShippingAddress
	}
	if p.PaymentMethod != nil {
		if !p.PaymentMethod.Valid() {
			return nil, order.ErrInvalidPaymentMethod
		}
		o.PaymentMethod = *p.PaymentMethod
	}
	if p.Discount != nil {
		o.Discount = *p.Discount
		o.TotalAmount = o.CalculateTotal()
	}
	if p.Notes != nil {
		o.Notes = *p.Notes
	}

	if err := uc.repo.Update(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// Cancel 取消订单(pending/processing状态可取消)
func (uc *UseCase) Cancel(ctx context.Context, id uint) (*order.Order, error) {
	status := order.StatusCancelled
	return uc.Patch(ctx, id, order.Patch{Status: &status})
}
