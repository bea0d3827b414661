package cart

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 购物车领域错误定义
var (
	// ErrCartNotFound 购物车不存在（会话已过期或ID非法）
	ErrCartNotFound = apperrors.New(apperrors.ErrCodeCartNotFound, "购物车不存在或已过期")

	// ErrInvalidQuantity 无效的数量
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于0")

	// ErrCartEmpty 购物车为空（不能结算）
	ErrCartEmpty = apperrors.New(apperrors.ErrCodeCartEmpty, "购物车为空")

	// ErrInsufficientStock 加购数量超过当前库存
	ErrInsufficientStock = apperrors.New(apperrors.ErrCodeInsufficientStock, "库存不足")
)
