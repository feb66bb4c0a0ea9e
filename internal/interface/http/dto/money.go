package dto

import (
	"github.com/shopspring/decimal"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// 金额约定:
// - 内部(domain/存储)一律int64,单位"分"
// - HTTP边界接收/返回"元"的两位小数字符串(如"9.99"),
//   用decimal转换,杜绝float64累积误差

var fenPerYuan = decimal.NewFromInt(100)

// FormatPriceYuan 分 → 元字符串(保留2位小数)
// 例如 999 → "9.99"
func FormatPriceYuan(fen int64) string {
	return decimal.NewFromInt(fen).Div(fenPerYuan).StringFixed(2)
}

// ParsePriceYuan 元字符串 → 分
// 校验:必须为合法数字、非负、不超过2位小数
func ParsePriceYuan(yuan string) (int64, error) {
	d, err := decimal.NewFromString(yuan)
	if err != nil {
		return 0, apperrors.New(apperrors.ErrCodeInvalidParams, "金额格式错误")
	}
	if d.IsNegative() {
		return 0, apperrors.New(apperrors.ErrCodeInvalidParams, "金额不能为负")
	}
	if d.Exponent() < -2 {
		return 0, apperrors.New(apperrors.ErrCodeInvalidParams, "金额最多2位小数")
	}
	return d.Mul(fenPerYuan).IntPart(), nil
}
