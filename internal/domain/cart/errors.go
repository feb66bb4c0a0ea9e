package cart

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 购物车领域错误定义
var (
	// ErrCartNotFound 购物车不存在
	ErrCartNotFound = apperrors.ErrCartNotFound

	// ErrItemNotFound 购物车条目不存在
	ErrItemNotFound = apperrors.New(apperrors.ErrCodeCartItemNotFound, "购物车条目不存在")

	// ErrInvalidQuantity 数量必须>=1
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "数量必须大于等于1")

	// ErrEmptyCart 购物车为空,无法下单
	ErrEmptyCart = apperrors.ErrEmptyCart

	// ErrPriceMissing 购物车引用的图书缺少价格(图书被删除等数据不一致情形)
	ErrPriceMissing = apperrors.New(apperrors.ErrCodeBusinessError, "购物车中存在已下架图书")
)
