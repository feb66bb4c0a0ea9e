package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appcustomer "github.com/xiebiao/bookshop/internal/application/customer"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/response"
)

// CustomerHandler 客户档案与收货地址HTTP处理器
type CustomerHandler struct {
	profileUseCase *appcustomer.ProfileUseCase
	addressUseCase *appcustomer.AddressUseCase
}

// NewCustomerHandler 创建客户处理器
func NewCustomerHandler(
	profileUseCase *appcustomer.ProfileUseCase,
	addressUseCase *appcustomer.AddressUseCase,
) *CustomerHandler {
	return &CustomerHandler{
		profileUseCase: profileUseCase,
		addressUseCase: addressUseCase,
	}
}

// GetProfile 查询档案
// @Summary      查询客户档案
// @Tags         客户模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response "档案信息"
// @Failure      401 {object} response.Response "未登录"
// @Router       /customers/me [get]
func (h *CustomerHandler) GetProfile(c *gin.Context) {
	userID := middleware.MustGetUserID(c)

	result, err := h.profileUseCase.Get(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateProfile 更新档案
// @Summary      更新客户档案
// @Tags         客户模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.UpdateProfileRequest true "档案信息"
// @Success      200 {object} response.Response "更新后的档案"
// @Failure      400 {object} response.Response "参数错误"
// @Router       /customers/me [put]
func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	birthDate, err := parseBirthDate(req.BirthDate)
	if err != nil {
		response.ErrorWithCode(c, 40900, "生日格式错误，应为YYYY-MM-DD")
		return
	}

	result, err := h.profileUseCase.Update(c.Request.Context(), appcustomer.UpdateProfileRequest{
		UserID:    middleware.MustGetUserID(c),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		BirthDate: birthDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreateAddress 新增收货地址
// @Summary      新增收货地址
// @Tags         客户模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateAddressRequest true "地址信息"
// @Success      201 {object} response.Response{data=dto.AddressResponse} "创建成功"
// @Failure      400 {object} response.Response "参数错误"
// @Router       /customers/me/addresses [post]
func (h *CustomerHandler) CreateAddress(c *gin.Context) {
	var req dto.CreateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.addressUseCase.Create(c.Request.Context(), appcustomer.CreateAddressRequest{
		UserID: middleware.MustGetUserID(c),
		Street: req.Street,
		City:   req.City,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toAddressDTO(result))
}

// ListAddresses 地址列表
// @Summary      查询收货地址列表
// @Tags         客户模块
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=[]dto.AddressResponse} "地址列表"
// @Router       /customers/me/addresses [get]
func (h *CustomerHandler) ListAddresses(c *gin.Context) {
	results, err := h.addressUseCase.List(c.Request.Context(), middleware.MustGetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]*dto.AddressResponse, len(results))
	for i, r := range results {
		list[i] = toAddressDTO(r)
	}
	response.Success(c, list)
}

// UpdateAddress 更新收货地址
// @Summary      更新收货地址
// @Tags         客户模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "地址ID"
// @Param        request body dto.UpdateAddressRequest true "地址信息"
// @Success      200 {object} response.Response{data=dto.AddressResponse} "更新成功"
// @Failure      404 {object} response.Response "地址不存在"
// @Router       /customers/me/addresses/{id} [put]
func (h *CustomerHandler) UpdateAddress(c *gin.Context) {
	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateAddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	result, err := h.addressUseCase.Update(c.Request.Context(), appcustomer.UpdateAddressRequest{
		UserID:    middleware.MustGetUserID(c),
		AddressID: addressID,
		Street:    req.Street,
		City:      req.City,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toAddressDTO(result))
}

// DeleteAddress 删除收货地址
// @Summary      删除收货地址
// @Description  历史订单上的该地址引用会被置空，订单本身不受影响
// @Tags         客户模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "地址ID"
// @Success      200 {object} response.Response "删除成功"
// @Failure      404 {object} response.Response "地址不存在"
// @Router       /customers/me/addresses/{id} [delete]
func (h *CustomerHandler) DeleteAddress(c *gin.Context) {
	addressID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.addressUseCase.Delete(c.Request.Context(), middleware.MustGetUserID(c), addressID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func toAddressDTO(r *appcustomer.AddressResponse) *dto.AddressResponse {
	return &dto.AddressResponse{
		ID:     r.ID,
		Street: r.Street,
		City:   r.City,
	}
}

// parseIDParam 解析路径中的数字ID,失败时直接写错误响应
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		response.ErrorWithCode(c, 40900, "参数错误: 非法的"+name)
		return 0, false
	}
	return uint(id), true
}

// normalizePage 分页参数兜底,防止分页响应除零
func normalizePage(page, pageSize *int) {
	if *page < 1 {
		*page = 1
	}
	if *pageSize < 1 || *pageSize > 100 {
		*pageSize = 20
	}
}
