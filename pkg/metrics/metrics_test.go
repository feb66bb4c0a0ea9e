package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

// TestObserveWithoutRegister 指标未注册时埋点也能正常累加
// 单元测试（以及漏调InitMetrics的调用方）不应因注册时机panic
func TestObserveWithoutRegister(t *testing.T) {
	ObserveCartOperation("create", nil)
	ObserveOrderPlaced(999)
	ObservePaymentStatusChange("C")

	if counterVecValue(t, CartOperationsTotal, "create", "ok") < 1 {
		t.Error("未注册的计数器应正常累加")
	}
}

// TestInitMetrics 测试指标注册
func TestInitMetrics(t *testing.T) {
	InitMetrics()

	// 重复调用不应panic（MustRegister重复注册会panic，由sync.Once保护）
	InitMetrics()
}

// TestObserveOrderPlaced 测试下单指标
func TestObserveOrderPlaced(t *testing.T) {
	before := counterValue(t, OrdersPlacedTotal)

	ObserveOrderPlaced(4995) // 49.95元
	ObserveOrderPlaced(12800)

	after := counterValue(t, OrdersPlacedTotal)
	if after-before != 2 {
		t.Errorf("下单计数错误: expected +2, got +%f", after-before)
	}
}

// TestObserveCartOperation 测试购物车操作指标
func TestObserveCartOperation(t *testing.T) {
	ObserveCartOperation("add_item", nil)
	ObserveCartOperation("add_item", nil)
	ObserveCartOperation("add_item", errTest)

	ok := counterVecValue(t, CartOperationsTotal, "add_item", "ok")
	if ok < 2 {
		t.Errorf("add_item成功计数错误: expected >=2, got %f", ok)
	}

	failed := counterVecValue(t, CartOperationsTotal, "add_item", "error")
	if failed < 1 {
		t.Errorf("add_item失败计数错误: expected >=1, got %f", failed)
	}
}

var errTest = &testError{}

type testError struct{}

func (e *testError) Error() string { return "test error" }

// counterValue 读取Counter当前值
func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("读取Counter失败: %v", err)
	}
	return m.GetCounter().GetValue()
}

// counterVecValue 读取CounterVec指定标签的当前值
func counterVecValue(t *testing.T, c *prometheus.CounterVec, labels ...string) float64 {
	t.Helper()
	return counterValue(t, c.WithLabelValues(labels...))
}
