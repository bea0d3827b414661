package rental

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 租赁领域错误定义
var (
	// ErrRentalNotFound 租赁单不存在
	ErrRentalNotFound = apperrors.New(apperrors.ErrCodeRentalNotFound, "租赁单不存在")

	// ErrInvalidStatus 非法的状态值
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "非法的租赁单状态")

	// ErrInvalidStatusTransition 非法的状态转换
	ErrInvalidStatusTransition = apperrors.New(apperrors.ErrCodeInvalidTransition, "租赁单状态不允许此操作")

	// ErrInvalidRentalItems 租赁明细不合法
	ErrInvalidRentalItems = apperrors.New(apperrors.ErrCodeInvalidParams, "租赁明细不能为空")

	// ErrInvalidRentalDays 租期不合法
	ErrInvalidRentalDays = apperrors.New(apperrors.ErrCodeInvalidParams, "租期天数必须大于0")

	// ErrInvalidRentalPeriod 归还日早于起租日
	ErrInvalidRentalPeriod = apperrors.New(apperrors.ErrCodeInvalidParams, "约定归还日不能早于起租日")

	// ErrInvalidDate 日期格式不合法
	ErrInvalidDate = apperrors.New(apperrors.ErrCodeInvalidParams, "日期格式必须为YYYY-MM-DD")
)
