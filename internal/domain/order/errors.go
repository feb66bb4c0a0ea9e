package order

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = apperrors.ErrOrderNotFound

	// ErrEmptyOrder 订单明细不能为空
	ErrEmptyOrder = apperrors.New(apperrors.ErrCodeEmptyCart, "订单明细不能为空")

	// ErrInvalidPaymentStatus 非法的支付状态值
	ErrInvalidPaymentStatus = apperrors.New(apperrors.ErrCodeInvalidParams, "非法的支付状态")

	// ErrInvalidStatusTransition 支付状态流转非法(终态不可回退)
	ErrInvalidStatusTransition = apperrors.New(apperrors.ErrCodeInvalidPaymentStatus, "支付状态流转非法")

	// ErrOrderNoDuplicate 订单号冲突(插入时命中UNIQUE索引,触发换号重试)
	ErrOrderNoDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "订单号已存在")

	// ErrOrderNoExhausted 订单号生成重试耗尽
	ErrOrderNoExhausted = apperrors.New(apperrors.ErrCodeOrderNoExhausted, "订单号生成失败,请稍后重试")
)
