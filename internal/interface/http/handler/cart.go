package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/bookshop/internal/application/cart"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// CartHandler 购物车HTTP处理器
// 购物车用UUID标识,不绑定登录态:游客先加购,下单时才要求登录。
// 持有UUID即可操作,UUID本身足够随机,不可枚举
type CartHandler struct {
	createUseCase     *appcart.CreateCartUseCase
	getUseCase        *appcart.GetCartUseCase
	addItemUseCase    *appcart.AddItemUseCase
	updateItemUseCase *appcart.UpdateItemUseCase
	removeItemUseCase *appcart.RemoveItemUseCase
	deleteUseCase     *appcart.DeleteCartUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(
	createUseCase *appcart.CreateCartUseCase,
	getUseCase *appcart.GetCartUseCase,
	addItemUseCase *appcart.AddItemUseCase,
	updateItemUseCase *appcart.UpdateItemUseCase,
	removeItemUseCase *appcart.RemoveItemUseCase,
	deleteUseCase *appcart.DeleteCartUseCase,
) *CartHandler {
	return &CartHandler{
		createUseCase:     createUseCase,
		getUseCase:        getUseCase,
		addItemUseCase:    addItemUseCase,
		updateItemUseCase: updateItemUseCase,
		removeItemUseCase: removeItemUseCase,
		deleteUseCase:     deleteUseCase,
	}
}

// CreateCart 创建购物车
// @Summary      创建购物车
// @Description  创建一个空购物车，返回UUID供后续操作使用
// @Tags         购物车模块
// @Produce      json
// @Success      201 {object} response.Response{data=dto.CreateCartResponse} "创建成功"
// @Router       /carts [post]
func (h *CartHandler) CreateCart(c *gin.Context) {
	result, err := h.createUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, &dto.CreateCartResponse{
		ID:        result.ID,
		CreatedAt: result.CreatedAt,
	})
}

// GetCart 查询购物车
// @Summary      查询购物车
// @Description  返回条目和实时计价：单价取图书当前价，总额=Σ(当前价×数量)
// @Tags         购物车模块
// @Produce      json
// @Param        id path string true "购物车UUID"
// @Success      200 {object} response.Response{data=dto.CartViewResponse} "购物车内容"
// @Failure      404 {object} response.Response "购物车不存在"
// @Router       /carts/{id} [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	result, err := h.getUseCase.Execute(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]*dto.CartItemView, len(result.Items))
	for i, it := range result.Items {
		items[i] = &dto.CartItemView{
			ID:           it.ID,
			BookID:       it.BookID,
			BookTitle:    it.BookTitle,
			UnitPrice:    it.UnitPrice,
			PriceYuan:    dto.FormatPriceYuan(it.UnitPrice),
			Quantity:     it.Quantity,
			Subtotal:     it.Subtotal,
			SubtotalYuan: dto.FormatPriceYuan(it.Subtotal),
		}
	}
	response.Success(c, &dto.CartViewResponse{
		ID:          result.ID,
		Items:       items,
		TotalAmount: result.TotalAmount,
		TotalYuan:   dto.FormatPriceYuan(result.TotalAmount),
		CreatedAt:   result.CreatedAt,
	})
}

// AddItem 加购
// @Summary      添加购物车条目
// @Description  同一本书重复加购时数量累加（数据库upsert保证并发安全）
// @Tags         购物车模块
// @Accept       json
// @Produce      json
// @Param        id path string true "购物车UUID"
// @Param        request body dto.AddItemRequest true "加购内容"
// @Success      200 {object} response.Response{data=dto.CartItemResponse} "合并后的条目"
// @Failure      400 {object} response.Response "数量非法"
// @Failure      404 {object} response.Response "购物车或图书不存在"
// @Router       /carts/{id}/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.addItemUseCase.Execute(c.Request.Context(), appcart.AddItemRequest{
		CartID:   c.Param("id"),
		BookID:   req.BookID,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toCartItemDTO(result))
}

// UpdateItem 修改条目数量
// @Summary      修改购物车条目数量
// @Description  覆盖语义；数量必须>=1，归零请走删除接口
// @Tags         购物车模块
// @Accept       json
// @Produce      json
// @Param        id path string true "购物车UUID"
// @Param        item_id path int true "条目ID"
// @Param        request body dto.UpdateItemRequest true "新数量"
// @Success      200 {object} response.Response{data=dto.CartItemResponse} "修改后的条目"
// @Failure      400 {object} response.Response "数量非法"
// @Failure      404 {object} response.Response "条目不存在"
// @Router       /carts/{id}/items/{item_id} [put]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.updateItemUseCase.Execute(c.Request.Context(), appcart.UpdateItemRequest{
		CartID:   c.Param("id"),
		ItemID:   itemID,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toCartItemDTO(result))
}

// RemoveItem 删除条目
// @Summary      删除购物车条目
// @Description  条目不存在时返回404（非幂等，方便客户端发现状态不一致）
// @Tags         购物车模块
// @Produce      json
// @Param        id path string true "购物车UUID"
// @Param        item_id path int true "条目ID"
// @Success      200 {object} response.Response "删除成功"
// @Failure      404 {object} response.Response "条目不存在"
// @Router       /carts/{id}/items/{item_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, ok := parseIDParam(c, "item_id")
	if !ok {
		return
	}

	if err := h.removeItemUseCase.Execute(c.Request.Context(), c.Param("id"), itemID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// DeleteCart 删除购物车
// @Summary      删除购物车
// @Description  连同所有条目一并删除（数据库级联）
// @Tags         购物车模块
// @Produce      json
// @Param        id path string true "购物车UUID"
// @Success      200 {object} response.Response "删除成功"
// @Failure      404 {object} response.Response "购物车不存在"
// @Router       /carts/{id} [delete]
func (h *CartHandler) DeleteCart(c *gin.Context) {
	if err := h.deleteUseCase.Execute(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func toCartItemDTO(r *appcart.ItemResponse) *dto.CartItemResponse {
	return &dto.CartItemResponse{
		ID:       r.ID,
		CartID:   r.CartID,
		BookID:   r.BookID,
		Quantity: r.Quantity,
	}
}
