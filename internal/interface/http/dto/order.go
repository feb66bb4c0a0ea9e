package dto

// PlaceOrderRequest HTTP下单请求
// 订单内容来自购物车,地址可选(留空表示稍后补填)
type PlaceOrderRequest struct {
	CartID    string `json:"cart_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	AddressID *uint  `json:"address_id" binding:"omitempty" example:"1"`
}

// UpdatePaymentRequest HTTP支付状态流转请求
// P=待支付 C=已支付 F=支付失败;只允许P→C和P→F
type UpdatePaymentRequest struct {
	Status string `json:"status" binding:"required,oneof=P C F" example:"C"`
}

// OrderItemResponse HTTP订单明细响应
// 单价是下单时刻的冻结价,后续改价不影响
type OrderItemResponse struct {
	BookID        uint   `json:"book_id" example:"1"`
	BookTitle     string `json:"book_title" example:"Go语言实战"`
	Quantity      int    `json:"quantity" example:"2"`
	UnitPrice     int64  `json:"unit_price" example:"999"` // 冻结单价(分)
	UnitPriceYuan string `json:"unit_price_yuan" example:"9.99"`
	Subtotal      int64  `json:"subtotal" example:"1998"`
	SubtotalYuan  string `json:"subtotal_yuan" example:"19.98"`
}

// OrderResponse HTTP订单响应
type OrderResponse struct {
	ID            uint                 `json:"id" example:"1"`
	OrderNo       string               `json:"order_no" example:"ORD-1A2B3C4D5E"`
	PaymentStatus string               `json:"payment_status" example:"P"`
	TotalAmount   int64                `json:"total_amount" example:"4995"` // 冻结总额(分)
	TotalYuan     string               `json:"total_yuan" example:"49.95"`
	AddressID     *uint                `json:"address_id,omitempty" example:"1"`
	Items         []*OrderItemResponse `json:"items"`
	PlacedAt      string               `json:"placed_at" example:"2024-01-15 10:30:00"`
}

// ListOrdersResponse HTTP订单列表响应
type ListOrdersResponse struct {
	Orders []*OrderResponse `json:"orders"`
	Total  int64            `json:"total" example:"3"`
}
