package book

import (
	"regexp"
	"strings"
)

// isbnPattern ISBN-10或ISBN-13,允许连字符已被去除后的纯数字形式
// ISBN-10末位允许校验字符X
var isbnPattern = regexp.MustCompile(`^(?:\d{9}[\dXx]|\d{13})$`)

// ValidateISBN 校验ISBN格式
// 规则:去除连字符后应为10位(末位可为X)或13位数字;空串视为未填写,合法
func ValidateISBN(isbn string) error {
	if isbn == "" {
		return nil
	}
	normalized := strings.ReplaceAll(isbn, "-", "")
	if !isbnPattern.MatchString(normalized) {
		return ErrInvalidISBN
	}
	return nil
}

// NormalizeISBN 规范化ISBN(去除连字符,校验字符大写)
func NormalizeISBN(isbn string) string {
	return strings.ToUpper(strings.ReplaceAll(isbn, "-", ""))
}

// slugStrip 匹配需要剔除的非法slug字符
var slugStrip = regexp.MustCompile(`[^a-z0-9\-]+`)

// slugDashes 合并连续连字符
var slugDashes = regexp.MustCompile(`-{2,}`)

// Slugify 根据标题生成URL友好的slug
// 例如 "Science Fiction" -> "science-fiction"
func Slugify(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	s = strings.ReplaceAll(s, " ", "-")
	s = slugStrip.ReplaceAllString(s, "")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
