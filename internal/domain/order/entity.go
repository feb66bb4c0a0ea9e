package order

import (
	"time"
)

// PaymentStatus 支付状态
// 设计说明:
// 1. 存储单字符编码(P/C/F),节省空间且与历史数据兼容
// 2. 状态机:Pending可流转到Complete或Failed,两者均为终态
//    (支付失败后应重新下单而非复用原单,保证对账口径简单)
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "P" // 待支付
	PaymentStatusComplete PaymentStatus = "C" // 支付成功
	PaymentStatusFailed   PaymentStatus = "F" // 支付失败
)

// Valid 是否为合法的支付状态值
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusComplete, PaymentStatusFailed:
		return true
	}
	return false
}

// String 实现Stringer接口(日志输出用)
func (s PaymentStatus) String() string {
	switch s {
	case PaymentStatusPending:
		return "待支付"
	case PaymentStatusComplete:
		return "支付成功"
	case PaymentStatusFailed:
		return "支付失败"
	default:
		return "未知状态"
	}
}

// Order 订单实体(聚合根)
// 设计说明:
// 1. OrderNo是业务主键,全局唯一,一经生成永不变更
// 2. TotalAmount与Item.UnitPrice是下单时刻的价格快照,
//    之后图书改价不影响历史订单(冻结价格)
// 3. AddressID可空:地址被删除后订单仍保留,仅失去地址引用
type Order struct {
	ID            uint
	OrderNo       string        // 订单号(业务主键)
	CustomerID    uint          // 下单客户ID
	AddressID     *uint         // 收货地址ID(可空)
	PaymentStatus PaymentStatus // 支付状态
	TotalAmount   int64         // 订单总金额(分),下单时冻结
	Items         []Item        // 订单明细
	PlacedAt      time.Time     // 下单时间
	UpdatedAt     time.Time
}

// Item 订单明细项
// UnitPrice记录下单时的单价快照,不随图书改价变化
type Item struct {
	ID        uint
	OrderID   uint
	BookID    uint
	BookTitle string // 书名快照(图书改名后订单展示不变)
	Quantity  int
	UnitPrice int64 // 下单时单价(分)
}

// Subtotal 明细小计(分)
func (i Item) Subtotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

// NewOrder 创建新订单(工厂方法)
// 业务规则:
// 1. 明细不能为空(空购物车不可下单,由调用方先校验,这里兜底)
// 2. 初始状态为Pending
// 3. 总金额根据明细计算,不信任外部传入
func NewOrder(orderNo string, customerID uint, addressID *uint, items []Item) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}
	now := time.Now()
	o := &Order{
		OrderNo:       orderNo,
		CustomerID:    customerID,
		AddressID:     addressID,
		PaymentStatus: PaymentStatusPending,
		Items:         items,
		PlacedAt:      now,
		UpdatedAt:     now,
	}
	o.TotalAmount = o.CalculateTotal()
	return o, nil
}

// CalculateTotal 按明细快照价计算订单总金额(分)
func (o *Order) CalculateTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Subtotal()
	}
	return total
}

// CanTransitionTo 检查支付状态是否允许流转到目标状态
func (o *Order) CanTransitionTo(target PaymentStatus) bool {
	transitions := map[PaymentStatus][]PaymentStatus{
		PaymentStatusPending:  {PaymentStatusComplete, PaymentStatusFailed},
		PaymentStatusComplete: {}, // 终态
		PaymentStatusFailed:   {}, // 终态
	}

	allowed, ok := transitions[o.PaymentStatus]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == target {
			return true
		}
	}
	return false
}

// TransitionTo 支付状态流转
// 非法跳转(如终态回退)返回ErrInvalidStatusTransition
func (o *Order) TransitionTo(target PaymentStatus) error {
	if !target.Valid() {
		return ErrInvalidPaymentStatus
	}
	if !o.CanTransitionTo(target) {
		return ErrInvalidStatusTransition
	}
	o.PaymentStatus = target
	o.UpdatedAt = time.Now()
	return nil
}

// IsOwnedBy 检查订单是否属于指定客户
func (o *Order) IsOwnedBy(customerID uint) bool {
	return o.CustomerID == customerID
}
