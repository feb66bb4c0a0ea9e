package dto

// CreateCartResponse HTTP创建购物车响应
// ID是UUID字符串,客户端保存后用于后续所有购物车操作
type CreateCartResponse struct {
	ID        string `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	CreatedAt string `json:"created_at" example:"2024-01-15 10:30:00"`
}

// AddItemRequest HTTP加购请求
// 重复加购同一本书时数量累加,而非新增条目
type AddItemRequest struct {
	BookID   uint `json:"book_id" binding:"required" example:"1"`
	Quantity int  `json:"quantity" binding:"required,min=1,max=999" example:"2"`
}

// UpdateItemRequest HTTP修改条目数量请求
// 数量是覆盖语义;归零请走删除接口
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=999" example:"3"`
}

// CartItemResponse HTTP购物车条目响应
type CartItemResponse struct {
	ID       uint   `json:"id" example:"1"`
	CartID   string `json:"cart_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	BookID   uint   `json:"book_id" example:"1"`
	Quantity int    `json:"quantity" example:"2"`
}

// CartItemView HTTP购物车条目视图(含实时计价)
type CartItemView struct {
	ID           uint   `json:"id" example:"1"`
	BookID       uint   `json:"book_id" example:"1"`
	BookTitle    string `json:"book_title" example:"Go语言实战"`
	UnitPrice    int64  `json:"unit_price" example:"999"` // 当前单价(分)
	PriceYuan    string `json:"price_yuan" example:"9.99"`
	Quantity     int    `json:"quantity" example:"2"`
	Subtotal     int64  `json:"subtotal" example:"1998"` // 小计(分)
	SubtotalYuan string `json:"subtotal_yuan" example:"19.98"`
}

// CartViewResponse HTTP购物车视图响应
// 价格全部取图书当前价,不存快照;快照只在下单时冻结
type CartViewResponse struct {
	ID          string          `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Items       []*CartItemView `json:"items"`
	TotalAmount int64           `json:"total_amount" example:"4995"` // 总额(分)
	TotalYuan   string          `json:"total_yuan" example:"49.95"`
	CreatedAt   string          `json:"created_at" example:"2024-01-15 10:30:00"`
}
