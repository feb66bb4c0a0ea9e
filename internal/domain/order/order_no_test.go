package order

import (
	"regexp"
	"testing"
)

func TestGenerateOrderNoFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-[0-9A-F]{10}$`)

	for i := 0; i < 10; i++ {
		no := GenerateOrderNo()
		if !pattern.MatchString(no) {
			t.Errorf("订单号格式错误: %q", no)
		}
	}
}

func TestGenerateOrderNoUniqueness(t *testing.T) {
	const n = 100
	seen := make(map[string]bool, n)

	for i := 0; i < n; i++ {
		no := GenerateOrderNo()
		if seen[no] {
			t.Fatalf("订单号重复: %s", no)
		}
		seen[no] = true
	}
}
