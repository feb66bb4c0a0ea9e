package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	publishUseCase *appbook.PublishBookUseCase
	listUseCase    *appbook.ListBooksUseCase
	getUseCase     *appbook.GetBookUseCase
	manageUseCase  *appbook.ManageBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	publishUseCase *appbook.PublishBookUseCase,
	listUseCase *appbook.ListBooksUseCase,
	getUseCase *appbook.GetBookUseCase,
	manageUseCase *appbook.ManageBookUseCase,
) *BookHandler {
	return &BookHandler{
		publishUseCase: publishUseCase,
		listUseCase:    listUseCase,
		getUseCase:     getUseCase,
		manageUseCase:  manageUseCase,
	}
}

// PublishBook 上架图书
// @Summary      上架图书
// @Description  新增一本图书（需要登录），价格以元的字符串传入
// @Tags         图书模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PublishBookRequest true "图书信息"
// @Success      201 {object} response.Response "上架成功"
// @Failure      400 {object} response.Response "参数错误或ISBN已存在"
// @Failure      404 {object} response.Response "作者或分类不存在"
// @Router       /books [post]
func (h *BookHandler) PublishBook(c *gin.Context) {
	var req dto.PublishBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	priceFen, err := dto.ParsePriceYuan(req.PriceYuan)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.publishUseCase.Execute(c.Request.Context(), appbook.PublishBookRequest{
		Title:       req.Title,
		Description: req.Description,
		ISBN:        req.ISBN,
		Price:       priceFen,
		Stock:       req.Stock,
		AuthorID:    req.AuthorID,
		GenreID:     req.GenreID,
		CoverURL:    req.CoverURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListBooks 图书列表
// @Summary      查询图书列表
// @Description  支持关键字搜索、按分类/作者过滤、排序和分页
// @Tags         图书模块
// @Produce      json
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页大小" default(20)
// @Param        keyword query string false "标题关键字"
// @Param        genre_id query int false "分类ID"
// @Param        author_id query int false "作者ID"
// @Param        sort_by query string false "排序" Enums(price_asc, price_desc, created_at_desc)
// @Success      200 {object} response.Response "图书列表"
// @Router       /books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	var req dto.ListBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}
	normalizePage(&req.Page, &req.PageSize)

	result, err := h.listUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:     req.Page,
		PageSize: req.PageSize,
		Keyword:  req.Keyword,
		GenreID:  req.GenreID,
		AuthorID: req.AuthorID,
		SortBy:   req.SortBy,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.BookListItem, len(result.Books))
	for i, b := range result.Books {
		list[i] = &dto.BookListItem{
			ID:        b.ID,
			Title:     b.Title,
			ISBN:      b.ISBN,
			Price:     b.Price,
			PriceYuan: dto.FormatPriceYuan(b.Price),
			Stock:     b.Stock,
			AuthorID:  b.AuthorID,
			GenreID:   b.GenreID,
			CoverURL:  b.CoverURL,
		}
	}
	response.SuccessWithPage(c, list, result.Total, req.Page, req.PageSize)
}

// GetBook 图书详情
// @Summary      查询图书详情
// @Description  返回图书信息及书评统计（平均分走Redis缓存）
// @Tags         图书模块
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=dto.BookDetailResponse} "图书详情"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.getUseCase.Execute(c.Request.Context(), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookDetailDTO(result))
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Description  改价只影响后续展示和下单，历史订单的冻结价不变
// @Tags         图书模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.UpdateBookRequest true "图书信息"
// @Success      200 {object} response.Response{data=dto.BookDetailResponse} "更新成功"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	var priceFen int64
	if req.PriceYuan != "" {
		var err error
		priceFen, err = dto.ParsePriceYuan(req.PriceYuan)
		if err != nil {
			response.Error(c, err)
			return
		}
	}

	result, err := h.manageUseCase.Update(c.Request.Context(), appbook.UpdateBookRequest{
		BookID:      bookID,
		Title:       req.Title,
		Description: req.Description,
		Price:       priceFen,
		Stock:       req.Stock,
		AuthorID:    req.AuthorID,
		GenreID:     req.GenreID,
		CoverURL:    req.CoverURL,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toBookDetailDTO(result))
}

// DeleteBook 下架图书
// @Summary      删除图书
// @Description  图书已被订单引用时拒绝删除（保护订单快照的来源）
// @Tags         图书模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response "删除成功"
// @Failure      400 {object} response.Response "图书已被订单引用"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /books/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.manageUseCase.Delete(c.Request.Context(), bookID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func toBookDetailDTO(b *appbook.BookDetail) *dto.BookDetailResponse {
	return &dto.BookDetailResponse{
		ID:            b.ID,
		Title:         b.Title,
		Description:   b.Description,
		ISBN:          b.ISBN,
		Price:         b.Price,
		PriceYuan:     dto.FormatPriceYuan(b.Price),
		Stock:         b.Stock,
		AuthorID:      b.AuthorID,
		GenreID:       b.GenreID,
		CoverURL:      b.CoverURL,
		AverageRating: b.AverageRating,
		TotalReviews:  b.TotalReviews,
	}
}
