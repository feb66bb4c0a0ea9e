package cart

import (
	"testing"
)

func TestNewCartGeneratesUUID(t *testing.T) {
	c1 := NewCart()
	c2 := NewCart()

	if c1.ID == "" {
		t.Fatal("购物车ID不能为空")
	}
	if len(c1.ID) != 36 {
		t.Errorf("购物车ID应为36位UUID字符串, 实际长度: %d", len(c1.ID))
	}
	if c1.ID == c2.ID {
		t.Error("两次创建的购物车ID不应相同")
	}
	if !c1.IsEmpty() {
		t.Error("新购物车应为空")
	}
}

func TestNewItemQuantityValidation(t *testing.T) {
	if _, err := NewItem("cart-1", 1, 0); err != ErrInvalidQuantity {
		t.Errorf("数量0应返回ErrInvalidQuantity, 实际: %v", err)
	}
	if _, err := NewItem("cart-1", 1, -3); err != ErrInvalidQuantity {
		t.Errorf("负数量应返回ErrInvalidQuantity, 实际: %v", err)
	}

	item, err := NewItem("cart-1", 1, 2)
	if err != nil {
		t.Fatalf("合法数量创建失败: %v", err)
	}
	if item.Quantity != 2 {
		t.Errorf("数量错误: %d", item.Quantity)
	}
}

func TestItemMergeAndChange(t *testing.T) {
	item, _ := NewItem("cart-1", 1, 2)

	// 重复加购累加
	if err := item.Merge(3); err != nil {
		t.Fatalf("合并失败: %v", err)
	}
	if item.Quantity != 5 {
		t.Errorf("合并后数量应为5, 实际: %d", item.Quantity)
	}

	// 修改为覆盖语义
	if err := item.ChangeQuantity(1); err != nil {
		t.Fatalf("修改数量失败: %v", err)
	}
	if item.Quantity != 1 {
		t.Errorf("修改后数量应为1, 实际: %d", item.Quantity)
	}

	// 非法参数不改变原值
	if err := item.ChangeQuantity(0); err != ErrInvalidQuantity {
		t.Errorf("数量0应返回ErrInvalidQuantity, 实际: %v", err)
	}
	if item.Quantity != 1 {
		t.Errorf("非法修改不应影响数量, 实际: %d", item.Quantity)
	}
}

func TestCartTotalWithLivePrices(t *testing.T) {
	c := NewCart()
	c.Items = []*Item{
		{ID: 1, CartID: c.ID, BookID: 10, Quantity: 2},
		{ID: 2, CartID: c.ID, BookID: 20, Quantity: 3},
	}

	// 9.99元=999分: 999*2 + 999*3 = 4995分(49.95元)
	prices := map[uint]int64{10: 999, 20: 999}
	total, err := c.Total(prices)
	if err != nil {
		t.Fatalf("计算总额失败: %v", err)
	}
	if total != 4995 {
		t.Errorf("总额应为4995分, 实际: %d", total)
	}

	// 缺价
	delete(prices, 20)
	if _, err := c.Total(prices); err != ErrPriceMissing {
		t.Errorf("缺价应返回ErrPriceMissing, 实际: %v", err)
	}
}

func TestCartItemLookup(t *testing.T) {
	c := NewCart()
	c.Items = []*Item{
		{ID: 1, CartID: c.ID, BookID: 10, Quantity: 1},
	}

	if c.ItemByBook(10) == nil {
		t.Error("应能按图书ID找到条目")
	}
	if c.ItemByBook(99) != nil {
		t.Error("不存在的图书应返回nil")
	}
	if c.ItemByID(1) == nil {
		t.Error("应能按条目ID找到条目")
	}
	if c.ItemByID(99) != nil {
		t.Error("不存在的条目应返回nil")
	}
}
