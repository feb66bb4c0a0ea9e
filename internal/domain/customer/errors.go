package customer

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 客户领域错误定义
var (
	// ErrCustomerNotFound 客户档案不存在
	ErrCustomerNotFound = apperrors.ErrCustomerNotFound

	// ErrAddressNotFound 收货地址不存在
	ErrAddressNotFound = apperrors.ErrAddressNotFound

	// ErrInvalidAddress 地址信息不完整
	ErrInvalidAddress = apperrors.New(apperrors.ErrCodeInvalidParams, "街道和城市不能为空")

	// ErrAddressNotOwned 地址不属于当前客户
	ErrAddressNotOwned = apperrors.New(apperrors.ErrCodeForbidden, "无权使用该收货地址")
)
