package checkout

import apperrors "github.com/xiebiao/bookshop/pkg/errors"

var (
	// ErrSessionNotFound 结算会话不存在
	ErrSessionNotFound = apperrors.New(apperrors.ErrCodeNotFound, "结算会话不存在")

	// ErrSessionSubmitted 会话已提交,不可再操作
	ErrSessionSubmitted = apperrors.New(apperrors.ErrCodeStepNotAllowed, "订单已提交")

	// ErrStepNotAllowed 当前步骤不允许该操作
	ErrStepNotAllowed = apperrors.New(apperrors.ErrCodeStepNotAllowed, "请先完成前面的步骤")

	// 收货信息校验错误
	ErrMissingName    = apperrors.New(apperrors.ErrCodeInvalidParams, "收货人姓名不能为空")
	ErrInvalidEmail   = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	ErrMissingPhone   = apperrors.New(apperrors.ErrCodeInvalidParams, "联系电话不能为空")
	ErrMissingAddress = apperrors.New(apperrors.ErrCodeInvalidParams, "收货地址不能为空")
)
