package staff

import apperrors "github.com/xiebiao/bookshop/pkg/errors"

var (
	// ErrStaffNotFound 员工不存在
	ErrStaffNotFound = apperrors.New(apperrors.ErrCodeStaffNotFound, "员工不存在")

	// ErrEmailDuplicate 邮箱已被注册
	ErrEmailDuplicate = apperrors.New(apperrors.ErrCodeEmailDuplicate, "邮箱已被注册")

	// ErrInvalidCredentials 邮箱或密码错误
	ErrInvalidCredentials = apperrors.New(apperrors.ErrCodeUnauthorized, "邮箱或密码错误")

	// ErrWeakPassword 密码长度不足
	ErrWeakPassword = apperrors.New(apperrors.ErrCodeWeakPassword, "密码长度至少为8位")
)
