package order

import (
	"testing"
)

func testItems() []Item {
	return []Item{
		{BookID: 10, BookTitle: "Go程序设计", Quantity: 2, UnitPrice: 999},
		{BookID: 20, BookTitle: "数据库系统概念", Quantity: 3, UnitPrice: 999},
	}
}

func TestNewOrder(t *testing.T) {
	t.Run("正常创建", func(t *testing.T) {
		addrID := uint(7)
		o, err := NewOrder("ORD-ABCDEF1234", 1, &addrID, testItems())
		if err != nil {
			t.Fatalf("创建订单失败: %v", err)
		}
		if o.PaymentStatus != PaymentStatusPending {
			t.Errorf("初始状态应为待支付, 实际: %s", o.PaymentStatus)
		}
		// 999*2 + 999*3 = 4995分
		if o.TotalAmount != 4995 {
			t.Errorf("总金额应为4995分, 实际: %d", o.TotalAmount)
		}
	})

	t.Run("明细为空", func(t *testing.T) {
		if _, err := NewOrder("ORD-ABCDEF1234", 1, nil, nil); err != ErrEmptyOrder {
			t.Errorf("空明细应返回ErrEmptyOrder, 实际: %v", err)
		}
	})
}

func TestItemSubtotal(t *testing.T) {
	item := Item{BookID: 1, Quantity: 3, UnitPrice: 1250}
	if got := item.Subtotal(); got != 3750 {
		t.Errorf("小计应为3750分, 实际: %d", got)
	}
}

func TestPaymentStatusTransitions(t *testing.T) {
	cases := []struct {
		name   string
		from   PaymentStatus
		to     PaymentStatus
		wantOK bool
	}{
		{"待支付→支付成功", PaymentStatusPending, PaymentStatusComplete, true},
		{"待支付→支付失败", PaymentStatusPending, PaymentStatusFailed, true},
		{"支付成功→支付失败", PaymentStatusComplete, PaymentStatusFailed, false},
		{"支付成功→待支付", PaymentStatusComplete, PaymentStatusPending, false},
		{"支付失败→支付成功", PaymentStatusFailed, PaymentStatusComplete, false},
		{"支付失败→待支付", PaymentStatusFailed, PaymentStatusPending, false},
		{"待支付→待支付", PaymentStatusPending, PaymentStatusPending, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			o, err := NewOrder("ORD-ABCDEF1234", 1, nil, testItems())
			if err != nil {
				t.Fatalf("创建订单失败: %v", err)
			}
			o.PaymentStatus = c.from

			err = o.TransitionTo(c.to)
			if c.wantOK && err != nil {
				t.Errorf("流转应成功, 实际: %v", err)
			}
			if !c.wantOK && err != ErrInvalidStatusTransition {
				t.Errorf("流转应返回ErrInvalidStatusTransition, 实际: %v", err)
			}
		})
	}
}

func TestTransitionToInvalidStatus(t *testing.T) {
	o, _ := NewOrder("ORD-ABCDEF1234", 1, nil, testItems())
	if err := o.TransitionTo(PaymentStatus("X")); err != ErrInvalidPaymentStatus {
		t.Errorf("非法状态值应返回ErrInvalidPaymentStatus, 实际: %v", err)
	}
}

func TestIsOwnedBy(t *testing.T) {
	o, _ := NewOrder("ORD-ABCDEF1234", 42, nil, testItems())
	if !o.IsOwnedBy(42) {
		t.Error("订单应属于客户42")
	}
	if o.IsOwnedBy(7) {
		t.Error("订单不应属于客户7")
	}
}
