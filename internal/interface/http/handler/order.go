package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookshop/internal/application/order"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	placeUseCase         *apporder.PlaceOrderUseCase
	getUseCase           *apporder.GetOrderUseCase
	listUseCase          *apporder.ListOrdersUseCase
	updatePaymentUseCase *apporder.UpdatePaymentUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	placeUseCase *apporder.PlaceOrderUseCase,
	getUseCase *apporder.GetOrderUseCase,
	listUseCase *apporder.ListOrdersUseCase,
	updatePaymentUseCase *apporder.UpdatePaymentUseCase,
) *OrderHandler {
	return &OrderHandler{
		placeUseCase:         placeUseCase,
		getUseCase:           getUseCase,
		listUseCase:          listUseCase,
		updatePaymentUseCase: updatePaymentUseCase,
	}
}

// PlaceOrder 下单
// @Summary      购物车转订单
// @Description  单事务内冻结价格快照、生成订单、删除购物车；订单号冲突自动换号重试
// @Tags         订单模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PlaceOrderRequest true "下单信息"
// @Success      201 {object} response.Response{data=dto.OrderResponse} "下单成功"
// @Failure      400 {object} response.Response "购物车为空"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "购物车或地址不存在"
// @Router       /orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.placeUseCase.Execute(c.Request.Context(), apporder.PlaceOrderRequest{
		UserID:    middleware.MustGetUserID(c),
		CartID:    req.CartID,
		AddressID: req.AddressID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toOrderDTO(result))
}

// ListOrders 订单列表
// @Summary      查询当前客户的订单列表
// @Description  按下单时间倒序分页
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页大小" default(20)
// @Success      200 {object} response.Response{data=dto.ListOrdersResponse} "订单列表"
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var page struct {
		Page     int `form:"page" binding:"omitempty,min=1"`
		PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&page); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), page.Page, page.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	orders := make([]*dto.OrderResponse, len(result.Orders))
	for i, o := range result.Orders {
		orders[i] = toOrderDTO(o)
	}
	response.Success(c, &dto.ListOrdersResponse{
		Orders: orders,
		Total:  result.Total,
	})
}

// GetOrder 订单详情
// @Summary      按订单号查询订单
// @Description  只能查自己的订单；他人订单按不存在处理
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        order_no path string true "订单号"
// @Success      200 {object} response.Response{data=dto.OrderResponse} "订单详情"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/{order_no} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	result, err := h.getUseCase.Execute(c.Request.Context(), middleware.MustGetUserID(c), c.Param("order_no"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toOrderDTO(result))
}

// UpdatePayment 支付状态流转
// @Summary      更新订单支付状态
// @Description  只允许待支付→已支付、待支付→支付失败；两个终态都不可再变更
// @Tags         订单模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        order_no path string true "订单号"
// @Param        request body dto.UpdatePaymentRequest true "目标状态"
// @Success      200 {object} response.Response{data=dto.OrderResponse} "流转成功"
// @Failure      400 {object} response.Response "状态流转非法"
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /orders/{order_no}/payment [put]
func (h *OrderHandler) UpdatePayment(c *gin.Context) {
	var req dto.UpdatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.updatePaymentUseCase.Execute(c.Request.Context(), apporder.UpdatePaymentRequest{
		UserID:  middleware.MustGetUserID(c),
		OrderNo: c.Param("order_no"),
		Status:  req.Status,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toOrderDTO(result))
}

func toOrderDTO(o *apporder.OrderView) *dto.OrderResponse {
	items := make([]*dto.OrderItemResponse, len(o.Items))
	for i, it := range o.Items {
		items[i] = &dto.OrderItemResponse{
			BookID:        it.BookID,
			BookTitle:     it.BookTitle,
			Quantity:      it.Quantity,
			UnitPrice:     it.UnitPrice,
			UnitPriceYuan: dto.FormatPriceYuan(it.UnitPrice),
			Subtotal:      it.Subtotal,
			SubtotalYuan:  dto.FormatPriceYuan(it.Subtotal),
		}
	}
	return &dto.OrderResponse{
		ID:            o.ID,
		OrderNo:       o.OrderNo,
		PaymentStatus: o.PaymentStatus,
		TotalAmount:   o.TotalAmount,
		TotalYuan:     dto.FormatPriceYuan(o.TotalAmount),
		AddressID:     o.AddressID,
		Items:         items,
		PlacedAt:      o.PlacedAt,
	}
}
