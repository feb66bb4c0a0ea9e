package integration

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 购物车模块集成测试
// 覆盖:创建、加购合并、实时计价、数量修改、条目删除、整车删除

func TestCartLifecycle(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "cart_user")
	bookID := PublishTestBook(t, token, "《购物车测试图书》", "9.99")

	cartID := CreateTestCart(t)

	t.Run("加购后重复加购数量累加", func(t *testing.T) {
		resp := PostJSON(t, BaseURL+"/carts/"+cartID+"/items", map[string]interface{}{
			"book_id":  bookID,
			"quantity": 2,
		}, "")
		require.Equal(t, 0, resp.Code, "加购失败: %s", resp.Message)

		var first CartItemData
		require.NoError(t, json.Unmarshal(resp.Data, &first))
		assert.Equal(t, 2, first.Quantity, "首次加购数量应为2")

		resp = PostJSON(t, BaseURL+"/carts/"+cartID+"/items", map[string]interface{}{
			"book_id":  bookID,
			"quantity": 3,
		}, "")
		require.Equal(t, 0, resp.Code, "重复加购失败: %s", resp.Message)

		var merged CartItemData
		require.NoError(t, json.Unmarshal(resp.Data, &merged))
		assert.Equal(t, first.ID, merged.ID, "应合并到同一条目")
		assert.Equal(t, 5, merged.Quantity, "数量应累加为5")
	})

	t.Run("查询购物车实时计价", func(t *testing.T) {
		resp := GetJSON(t, BaseURL+"/carts/"+cartID, "")
		require.Equal(t, 0, resp.Code, "查询购物车失败: %s", resp.Message)

		var view CartViewData
		require.NoError(t, json.Unmarshal(resp.Data, &view))
		require.Len(t, view.Items, 1, "购物车应有1个条目")
		assert.Equal(t, int64(999), view.Items[0].UnitPrice, "单价应为999分")
		assert.Equal(t, int64(4995), view.TotalAmount, "总额应为9.99*5=49.95元")
		assert.Equal(t, "49.95", view.TotalYuan)
	})

	t.Run("修改数量为覆盖语义", func(t *testing.T) {
		view := getCartView(t, cartID)
		itemID := view.Items[0].ID

		resp := PutJSON(t, fmt.Sprintf("%s/carts/%s/items/%d", BaseURL, cartID, itemID), map[string]interface{}{
			"quantity": 7,
		}, "")
		require.Equal(t, 0, resp.Code, "修改数量失败: %s", resp.Message)

		var item CartItemData
		require.NoError(t, json.Unmarshal(resp.Data, &item))
		assert.Equal(t, 7, item.Quantity, "数量应被覆盖为7而非累加")
	})

	t.Run("数量写成当前值应幂等成功", func(t *testing.T) {
		view := getCartView(t, cartID)
		itemID := view.Items[0].ID
		current := view.Items[0].Quantity

		// 重复提交同一数量,MySQL按命中行数统计才不会误报条目不存在
		resp := PutJSON(t, fmt.Sprintf("%s/carts/%s/items/%d", BaseURL, cartID, itemID), map[string]interface{}{
			"quantity": current,
		}, "")
		require.Equal(t, 0, resp.Code, "幂等修改不应失败: %s", resp.Message)

		var item CartItemData
		require.NoError(t, json.Unmarshal(resp.Data, &item))
		assert.Equal(t, current, item.Quantity)
	})

	t.Run("数量归零应被拒绝", func(t *testing.T) {
		view := getCartView(t, cartID)
		itemID := view.Items[0].ID

		resp := PutJSON(t, fmt.Sprintf("%s/carts/%s/items/%d", BaseURL, cartID, itemID), map[string]interface{}{
			"quantity": 0,
		}, "")
		assert.NotEqual(t, 0, resp.Code, "数量0应被参数校验拒绝")
	})

	t.Run("删除条目后再删应返回不存在", func(t *testing.T) {
		view := getCartView(t, cartID)
		itemID := view.Items[0].ID

		resp := DeleteJSON(t, fmt.Sprintf("%s/carts/%s/items/%d", BaseURL, cartID, itemID), "")
		require.Equal(t, 0, resp.Code, "删除条目失败: %s", resp.Message)

		resp = DeleteJSON(t, fmt.Sprintf("%s/carts/%s/items/%d", BaseURL, cartID, itemID), "")
		assert.Equal(t, 40405, resp.Code, "重复删除应返回条目不存在")
	})

	t.Run("删除购物车后查询应返回不存在", func(t *testing.T) {
		resp := DeleteJSON(t, BaseURL+"/carts/"+cartID, "")
		require.Equal(t, 0, resp.Code, "删除购物车失败: %s", resp.Message)

		resp = GetJSON(t, BaseURL+"/carts/"+cartID, "")
		assert.Equal(t, 40404, resp.Code, "已删除的购物车应返回不存在")
	})
}

func TestCartPriceFollowsBookUpdate(t *testing.T) {
	RequireServer(t)

	_, token := RegisterTestUser(t, "cart_price")
	bookID := PublishTestBook(t, token, "《改价测试图书》", "10.00")

	cartID := CreateTestCart(t)
	resp := PostJSON(t, BaseURL+"/carts/"+cartID+"/items", map[string]interface{}{
		"book_id":  bookID,
		"quantity": 2,
	}, "")
	require.Equal(t, 0, resp.Code, "加购失败: %s", resp.Message)

	// 改价,购物车展示应跟随当前价
	updResp := PutJSON(t, fmt.Sprintf("%s/books/%d", BaseURL, bookID), map[string]interface{}{
		"price_yuan": "15.00",
	}, token)
	require.Equal(t, 0, updResp.Code, "改价失败: %s", updResp.Message)

	view := getCartView(t, cartID)
	assert.Equal(t, int64(1500), view.Items[0].UnitPrice, "购物车应显示改后的单价")
	assert.Equal(t, int64(3000), view.TotalAmount, "总额应按新价计算")
}

func getCartView(t *testing.T, cartID string) *CartViewData {
	t.Helper()
	resp := GetJSON(t, BaseURL+"/carts/"+cartID, "")
	require.Equal(t, 0, resp.Code, "查询购物车失败: %s", resp.Message)
	var view CartViewData
	require.NoError(t, json.Unmarshal(resp.Data, &view))
	require.NotEmpty(t, view.Items, "购物车不应为空")
	return &view
}
