package cart

import (
	"time"

	"github.com/google/uuid"
)

// Cart 购物车实体(聚合根)
// 设计说明:
// 1. 主键为UUIDv4字符串:购物车先于登录创建(游客也可加购),
//    自增ID会暴露购物车总量且可被遍历,UUID由调用方安全持有即视为授权
// 2. 不关联用户:前端将购物车ID存于本地,下单时才要求登录
// 3. Item不单独成聚合,只能通过Cart访问;(CartID, BookID)唯一
// 4. 购物车不存价格:金额展示一律按图书当前价实时计算,下单时才冻结价格
type Cart struct {
	ID        string // UUIDv4
	Items     []*Item
	CreatedAt time.Time
}

// Item 购物车条目
type Item struct {
	ID       uint
	CartID   string
	BookID   uint
	Quantity int // 必须>=1
}

// NewCart 创建空购物车(工厂方法)
func NewCart() *Cart {
	return &Cart{
		ID:        uuid.NewString(),
		Items:     nil,
		CreatedAt: time.Now(),
	}
}

// NewItem 创建购物车条目(工厂方法)
// 业务规则:数量必须>=1
func NewItem(cartID string, bookID uint, quantity int) (*Item, error) {
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	return &Item{
		CartID:   cartID,
		BookID:   bookID,
		Quantity: quantity,
	}, nil
}

// ChangeQuantity 修改条目数量(覆盖语义,非累加)
func (i *Item) ChangeQuantity(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	i.Quantity = quantity
	return nil
}

// Merge 合并加购数量(同一本书重复加购时累加)
func (i *Item) Merge(quantity int) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	i.Quantity += quantity
	return nil
}

// IsEmpty 购物车是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// ItemByBook 查找指定图书的条目(不存在返回nil)
func (c *Cart) ItemByBook(bookID uint) *Item {
	for _, item := range c.Items {
		if item.BookID == bookID {
			return item
		}
	}
	return nil
}

// ItemByID 查找指定条目(不存在返回nil)
func (c *Cart) ItemByID(itemID uint) *Item {
	for _, item := range c.Items {
		if item.ID == itemID {
			return item
		}
	}
	return nil
}

// Total 按当前单价计算购物车总金额(分)
// prices以BookID为键;缺价的图书返回ErrPriceMissing,提示调用方数据不一致
func (c *Cart) Total(prices map[uint]int64) (int64, error) {
	var total int64
	for _, item := range c.Items {
		price, ok := prices[item.BookID]
		if !ok {
			return 0, ErrPriceMissing
		}
		total += price * int64(item.Quantity)
	}
	return total, nil
}
