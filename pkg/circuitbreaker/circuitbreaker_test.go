package circuitbreaker

import (
	"errors"
	"testing"
	"time"
)

var errFail = errors.New("downstream unavailable")

// TestBreaker_Closed 测试关闭状态（正常放行）
func TestBreaker_Closed(t *testing.T) {
	b := New("test", Config{FailureThreshold: 3, Cooldown: time.Second})

	for i := 0; i < 10; i++ {
		if err := b.Execute(func() error { return nil }); err != nil {
			t.Fatalf("期望成功，实际失败: %v", err)
		}
	}

	if b.State() != StateClosed {
		t.Errorf("期望状态为closed，实际%s", b.State())
	}
}

// TestBreaker_TripsOnConsecutiveFailures 测试连续失败触发熔断
func TestBreaker_TripsOnConsecutiveFailures(t *testing.T) {
	b := New("test", Config{FailureThreshold: 3, Cooldown: time.Minute})

	for i := 0; i < 3; i++ {
		_ = b.Execute(func() error { return errFail })
	}

	if b.State() != StateOpen {
		t.Fatalf("期望状态为open，实际%s", b.State())
	}

	// 熔断期间不应调用实际函数
	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrOpenState) {
		t.Errorf("期望ErrOpenState，实际%v", err)
	}
	if called {
		t.Error("熔断器打开时不应该调用实际函数")
	}
}

// TestBreaker_SuccessResetsFailureCount 测试成功调用重置失败计数
func TestBreaker_SuccessResetsFailureCount(t *testing.T) {
	b := New("test", Config{FailureThreshold: 3, Cooldown: time.Minute})

	_ = b.Execute(func() error { return errFail })
	_ = b.Execute(func() error { return errFail })
	_ = b.Execute(func() error { return nil }) // 重置计数
	_ = b.Execute(func() error { return errFail })
	_ = b.Execute(func() error { return errFail })

	if b.State() != StateClosed {
		t.Errorf("未达到连续失败阈值，期望closed，实际%s", b.State())
	}
}

// TestBreaker_HalfOpenRecovery 测试半开状态探测恢复
func TestBreaker_HalfOpenRecovery(t *testing.T) {
	b := New("test", Config{FailureThreshold: 2, Cooldown: 50 * time.Millisecond})

	_ = b.Execute(func() error { return errFail })
	_ = b.Execute(func() error { return errFail })
	if b.State() != StateOpen {
		t.Fatalf("期望状态为open，实际%s", b.State())
	}

	// 等待冷却期结束
	time.Sleep(80 * time.Millisecond)
	if b.State() != StateHalfOpen {
		t.Fatalf("冷却期后期望half-open，实际%s", b.State())
	}

	// 探测成功应恢复到closed
	if err := b.Execute(func() error { return nil }); err != nil {
		t.Fatalf("探测请求应被放行: %v", err)
	}
	if b.State() != StateClosed {
		t.Errorf("探测成功后期望closed，实际%s", b.State())
	}
}

// TestBreaker_HalfOpenFailureReopens 测试半开状态探测失败重新熔断
func TestBreaker_HalfOpenFailureReopens(t *testing.T) {
	b := New("test", Config{FailureThreshold: 2, Cooldown: 50 * time.Millisecond})

	_ = b.Execute(func() error { return errFail })
	_ = b.Execute(func() error { return errFail })

	time.Sleep(80 * time.Millisecond)

	_ = b.Execute(func() error { return errFail })
	if b.State() != StateOpen {
		t.Errorf("探测失败后期望open，实际%s", b.State())
	}
}
