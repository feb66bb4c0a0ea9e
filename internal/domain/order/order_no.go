package order

import (
	"strings"

	"github.com/google/uuid"
)

// orderNoPrefix 订单号前缀
const orderNoPrefix = "ORD-"

// GenerateOrderNo 生成订单号
// 格式:ORD-XXXXXXXXXX(10位大写十六进制,取自UUIDv4)
// 设计说明:
// 1. 10位hex约1.1万亿种取值,碰撞概率极低但非零,
//    全局唯一最终由数据库UNIQUE索引兜底,插入冲突时调用方换号重试
// 2. 不用自增ID:订单号不应暴露订单总量,也不应可被遍历
func GenerateOrderNo() string {
	hex := strings.ToUpper(uuid.New().String())
	hex = strings.ReplaceAll(hex, "-", "")
	return orderNoPrefix + hex[:10]
}
