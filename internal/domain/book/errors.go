package book

import (
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.ErrBookNotFound

	// ErrAuthorNotFound 作者不存在
	ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeAuthorNotFound, "作者不存在")

	// ErrGenreNotFound 分类不存在
	ErrGenreNotFound = apperrors.New(apperrors.ErrCodeGenreNotFound, "分类不存在")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.ErrISBNDuplicate

	// ErrSlugDuplicate 分类Slug已存在
	ErrSlugDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "分类标识已存在")

	// ErrBookReferenced 图书已被订单引用,禁止删除
	ErrBookReferenced = apperrors.ErrBookReferenced

	// ErrInvalidTitle 书名不能为空
	ErrInvalidTitle = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须大于0")

	// ErrInvalidStock 无效的库存
	ErrInvalidStock = apperrors.New(apperrors.ErrCodeInvalidParams, "库存不能为负数")

	// ErrInvalidISBN ISBN格式不正确
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN格式不正确")

	// ErrInvalidAuthorName 作者名不能为空
	ErrInvalidAuthorName = apperrors.New(apperrors.ErrCodeInvalidParams, "作者名不能为空")

	// ErrInvalidGenreTitle 分类名不能为空
	ErrInvalidGenreTitle = apperrors.New(apperrors.ErrCodeInvalidParams, "分类名不能为空")
)
