package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/bookshop/internal/application/review"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/response"
)

// ReviewHandler 书评HTTP处理器
type ReviewHandler struct {
	writeUseCase *appreview.WriteReviewUseCase
	listUseCase  *appreview.ListReviewsUseCase
}

// NewReviewHandler 创建书评处理器
func NewReviewHandler(
	writeUseCase *appreview.WriteReviewUseCase,
	listUseCase *appreview.ListReviewsUseCase,
) *ReviewHandler {
	return &ReviewHandler{
		writeUseCase: writeUseCase,
		listUseCase:  listUseCase,
	}
}

// WriteReview 发表书评
// @Summary      发表书评
// @Description  同一用户对同一本书重复提交视为修改；写入后失效评分缓存
// @Tags         书评模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.WriteReviewRequest true "书评内容"
// @Success      200 {object} response.Response{data=dto.ReviewResponse} "发表成功"
// @Failure      400 {object} response.Response "评分超出1-5范围"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id}/reviews [post]
func (h *ReviewHandler) WriteReview(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.WriteReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.writeUseCase.Execute(c.Request.Context(), appreview.WriteReviewRequest{
		UserID:      middleware.MustGetUserID(c),
		BookID:      bookID,
		Score:       req.Score,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListReviews 书评列表
// @Summary      查询图书的书评列表
// @Tags         书评模块
// @Produce      json
// @Param        id path int true "图书ID"
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页大小" default(20)
// @Success      200 {object} response.Response{data=dto.ListReviewsResponse} "书评列表"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id}/reviews [get]
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var page struct {
		Page     int `form:"page" binding:"omitempty,min=1"`
		PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
	}
	if err := c.ShouldBindQuery(&page); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.listUseCase.Execute(c.Request.Context(), bookID, page.Page, page.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
