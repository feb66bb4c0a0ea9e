package integration

import (
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 订单模块集成测试
// 覆盖:购物车转订单(价格冻结、购物车删除)、支付状态机、订单查询

func TestPlaceOrderFromCart(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "order_user")
	bookA := PublishTestBook(t, token, "《订单测试图书A》", "9.99")
	bookB := PublishTestBook(t, token, "《订单测试图书B》", "9.99")

	cartID := CreateTestCart(t)
	resp := PostJSON(t, BaseURL+"/carts/"+cartID+"/items", map[string]interface{}{
		"book_id": bookA, "quantity": 2,
	}, "")
	require.Equal(t, 0, resp.Code, "加购A失败: %s", resp.Message)
	resp = PostJSON(t, BaseURL+"/carts/"+cartID+"/items", map[string]interface{}{
		"book_id": bookB, "quantity": 3,
	}, "")
	require.Equal(t, 0, resp.Code, "加购B失败: %s", resp.Message)

	var order OrderData

	t.Run("正常下单", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/orders", map[string]interface{}{
			"cart_id": cartID,
		}, token)
		require.Equal(t, 0, resp.Code, "下单失败: %s", resp.Message)
		require.NoError(t, json.Unmarshal(resp.Data, &order))

		assert.NotEmpty(t, order.OrderNo, "订单号不应为空")
		assert.Equal(t, "P", order.PaymentStatus, "新订单应为待支付")
		assert.Equal(t, int64(4995), order.TotalAmount, "总额应为9.99*2+9.99*3=49.95元")
		assert.Equal(t, "49.95", order.TotalYuan)
		assert.Len(t, order.Items, 2, "订单应有2个明细")

		t.Logf("✓ 下单成功 订单号=%s 金额=%s元", order.OrderNo, order.TotalYuan)
	})

	t.Run("下单后购物车被删除", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/carts/"+cartID, "")
		assert.Equal(t, 40404, resp.Code, "购物车应随下单一并删除")
	})

	t.Run("下单后改价不影响冻结快照", func(t *testing.T) {
		updResp := PutJSON(t, BaseURL+"/books/"+uintToStr(bookA), map[string]interface{}{
			"price_yuan": "19.99",
		}, token)
		require.Equal(t, 0, updResp.Code, "改价失败: %s", updResp.Message)

		resp := GetJSON(t, BaseURL+"/orders/"+order.OrderNo, token)
		require.Equal(t, 0, resp.Code, "查询订单失败: %s", resp.Message)

		var got OrderData
		require.NoError(t, json.Unmarshal(resp.Data, &got))
		for _, item := range got.Items {
			assert.Equal(t, int64(999), item.UnitPrice, "冻结单价不应随改价变化")
		}
		assert.Equal(t, int64(4995), got.TotalAmount, "冻结总额不应变化")
	})

	t.Run("空购物车拒绝下单", func(t *testing.T) {
		emptyCart := CreateTestCart(t)
		resp := PostJSON(t, BaseURL+"/orders", map[string]interface{}{
			"cart_id": emptyCart,
		}, token)
		assert.Equal(t, 40001, resp.Code, "空购物车应拒绝下单")
	})

	t.Run("未登录不能下单", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/orders", map[string]interface{}{
			"cart_id": cartID,
		}, "")
		assert.NotEqual(t, 0, resp.Code, "未登录应被拒绝")
	})
}

func TestPaymentStatusTransitions(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "payment_user")
	bookID := PublishTestBook(t, token, "《支付测试图书》", "20.00")

	placeOrder := func(t *testing.T) string {
		cartID := CreateTestCart(t)
		resp := PostJSON(t, BaseURL+"/carts/"+cartID+"/items", map[string]interface{}{
			"book_id": bookID, "quantity": 1,
		}, "")
		require.Equal(t, 0, resp.Code, "加购失败: %s", resp.Message)

		resp = PostJSON(t, BaseURL+"/orders", map[string]interface{}{
			"cart_id": cartID,
		}, token)
		require.Equal(t, 0, resp.Code, "下单失败: %s", resp.Message)

		var order OrderData
		require.NoError(t, json.Unmarshal(resp.Data, &order))
		return order.OrderNo
	}

	t.Run("待支付到已支付", func(t *testing.T) {
		orderNo := placeOrder(t)
		resp := PutJSON(t, BaseURL+"/orders/"+orderNo+"/payment", map[string]string{
			"status": "C",
		}, token)
		require.Equal(t, 0, resp.Code, "支付流转失败: %s", resp.Message)

		var order OrderData
		require.NoError(t, json.Unmarshal(resp.Data, &order))
		assert.Equal(t, "C", order.PaymentStatus)
	})

	t.Run("已支付为终态不可回退", func(t *testing.T) {
		orderNo := placeOrder(t)
		resp := PutJSON(t, BaseURL+"/orders/"+orderNo+"/payment", map[string]string{"status": "C"}, token)
		require.Equal(t, 0, resp.Code)

		resp = PutJSON(t, BaseURL+"/orders/"+orderNo+"/payment", map[string]string{"status": "P"}, token)
		assert.Equal(t, 40002, resp.Code, "终态回退应被拒绝")

		resp = PutJSON(t, BaseURL+"/orders/"+orderNo+"/payment", map[string]string{"status": "F"}, token)
		assert.Equal(t, 40002, resp.Code, "终态间流转应被拒绝")
	})

	t.Run("待支付到支付失败", func(t *testing.T) {
		orderNo := placeOrder(t)
		resp := PutJSON(t, BaseURL+"/orders/"+orderNo+"/payment", map[string]string{"status": "F"}, token)
		require.Equal(t, 0, resp.Code, "支付失败流转应成功: %s", resp.Message)

		var order OrderData
		require.NoError(t, json.Unmarshal(resp.Data, &order))
		assert.Equal(t, "F", order.PaymentStatus)
	})

	t.Run("非法状态值被参数校验拒绝", func(t *testing.T) {
		orderNo := placeOrder(t)
		resp := PutJSON(t, BaseURL+"/orders/"+orderNo+"/payment", map[string]string{"status": "X"}, token)
		assert.NotEqual(t, 0, resp.Code, "非法状态应被拒绝")
	})

	t.Run("他人订单按不存在处理", func(t *testing.T) {
		orderNo := placeOrder(t)
		_, otherToken := RegisterTestUser(t, "other_user")

		resp := GetJSON(t, BaseURL+"/orders/"+orderNo, otherToken)
		assert.Equal(t, 40403, resp.Code, "他人订单应返回订单不存在")
	})
}

func uintToStr(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
