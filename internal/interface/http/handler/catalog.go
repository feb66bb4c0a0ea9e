package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookshop/internal/application/book"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// CatalogHandler 作者与分类HTTP处理器
type CatalogHandler struct {
	catalogUseCase *appbook.CatalogUseCase
}

// NewCatalogHandler 创建目录处理器
func NewCatalogHandler(catalogUseCase *appbook.CatalogUseCase) *CatalogHandler {
	return &CatalogHandler{catalogUseCase: catalogUseCase}
}

// CreateAuthor 创建作者
// @Summary      创建作者
// @Tags         目录模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateAuthorRequest true "作者信息"
// @Success      201 {object} response.Response{data=dto.AuthorResponse} "创建成功"
// @Router       /authors [post]
func (h *CatalogHandler) CreateAuthor(c *gin.Context) {
	var req dto.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.catalogUseCase.CreateAuthor(c.Request.Context(), req.Name, req.Bio, req.ImageURL)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetAuthor 作者详情
// @Summary      查询作者
// @Tags         目录模块
// @Produce      json
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response{data=dto.AuthorResponse} "作者信息"
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /authors/{id} [get]
func (h *CatalogHandler) GetAuthor(c *gin.Context) {
	authorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	result, err := h.catalogUseCase.GetAuthor(c.Request.Context(), authorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListAuthors 作者列表
// @Summary      查询作者列表
// @Tags         目录模块
// @Produce      json
// @Param        page query int false "页码" default(1)
// @Param        page_size query int false "每页大小" default(20)
// @Success      200 {object} response.Response "作者列表"
// @Router       /authors [get]
func (h *CatalogHandler) ListAuthors(c *gin.Context) {
	var req dto.ListBooksRequest // 复用分页字段
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}
	normalizePage(&req.Page, &req.PageSize)

	list, total, err := h.catalogUseCase.ListAuthors(c.Request.Context(), req.Page, req.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPage(c, list, total, req.Page, req.PageSize)
}

// DeleteAuthor 删除作者
// @Summary      删除作者
// @Description  作者名下仍有图书被订单引用时拒绝删除
// @Tags         目录模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response "删除成功"
// @Failure      404 {object} response.Response "作者不存在"
// @Router       /authors/{id} [delete]
func (h *CatalogHandler) DeleteAuthor(c *gin.Context) {
	authorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogUseCase.DeleteAuthor(c.Request.Context(), authorID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

// CreateGenre 创建分类
// @Summary      创建分类
// @Description  slug留空时由标题自动生成
// @Tags         目录模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateGenreRequest true "分类信息"
// @Success      201 {object} response.Response{data=dto.GenreResponse} "创建成功"
// @Failure      400 {object} response.Response "slug已存在"
// @Router       /genres [post]
func (h *CatalogHandler) CreateGenre(c *gin.Context) {
	var req dto.CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.catalogUseCase.CreateGenre(c.Request.Context(), req.Title, req.Slug)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListGenres 分类列表
// @Summary      查询分类列表
// @Tags         目录模块
// @Produce      json
// @Success      200 {object} response.Response{data=[]dto.GenreResponse} "分类列表"
// @Router       /genres [get]
func (h *CatalogHandler) ListGenres(c *gin.Context) {
	list, err := h.catalogUseCase.ListGenres(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, list)
}

// SetFeaturedBook 设置分类推荐图书
// @Summary      设置分类推荐图书
// @Description  推荐图书必须属于该分类
// @Tags         目录模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Param        request body dto.SetFeaturedBookRequest true "推荐图书"
// @Success      200 {object} response.Response{data=dto.GenreResponse} "设置成功"
// @Failure      404 {object} response.Response "分类或图书不存在"
// @Router       /genres/{id}/featured [put]
func (h *CatalogHandler) SetFeaturedBook(c *gin.Context) {
	genreID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.SetFeaturedBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.catalogUseCase.SetFeaturedBook(c.Request.Context(), genreID, req.BookID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteGenre 删除分类
// @Summary      删除分类
// @Tags         目录模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response "删除成功"
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /genres/{id} [delete]
func (h *CatalogHandler) DeleteGenre(c *gin.Context) {
	genreID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogUseCase.DeleteGenre(c.Request.Context(), genreID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}
