package review

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 书评领域错误定义
var (
	// ErrReviewNotFound 书评不存在
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeReviewNotFound, "书评不存在")

	// ErrInvalidScore 评分超出范围
	ErrInvalidScore = apperrors.New(apperrors.ErrCodeInvalidParams, "评分必须为1-5")
)
