package customer

import apperrors "github.com/xiebiao/bookshop/pkg/errors"

var (
	// ErrCustomerNotFound 客户不存在
	ErrCustomerNotFound = apperrors.New(apperrors.ErrCodeCustomerNotFound, "客户不存在")

	// ErrInvalidName 客户姓名不能为空
	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "客户姓名不能为空")

	// ErrInvalidEmail 邮箱格式不正确
	ErrInvalidEmail = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")

	// ErrInvalidPhone 电话不能为空
	ErrInvalidPhone = apperrors.New(apperrors.ErrCodeInvalidParams, "电话不能为空")
)
