package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appcustomer "github.com/xiebiao/bookshop/internal/application/customer"
	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/response"
)

// CustomerHandler 客户HTTP处理器(Gateway风格,后台管理)
type CustomerHandler struct {
	useCase *appcustomer.UseCase
}

// NewCustomerHandler 创建客户处理器
func NewCustomerHandler(useCase *appcustomer.UseCase) *CustomerHandler {
	return &CustomerHandler{useCase: useCase}
}

// List 客户列表(后台)
// @Summary      客户列表
// @Tags         客户
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} dto.CustomerResponse
// @Header       200 {string} X-Total-Count "总数"
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *gin.Context) {
	q := dto.ParseListQuery(c)
	customers, total, err := h.useCase.List(c.Request.Context(), customer.ListParams{
		Keyword: q.Keyword,
		Email:   c.Query("email"),
		SortBy:  q.SortBy,
		Order:   q.Order,
		Start:   q.Start,
		End:     q.End,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	dto.SetTotalCount(c, total)
	c.JSON(http.StatusOK, dto.ToCustomerResponses(customers))
}

// Get 客户详情(后台)
// @Summary      客户详情
// @Tags         客户
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "客户ID"
// @Success      200 {object} dto.CustomerResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := dto.ParseIDParam(c)
	if !ok {
		response.NotFound(c)
		return
	}

	cust, err := h.useCase.Get(c.Request.Context(), id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			response.NotFound(c)
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(cust))
}

// Create 手工创建客户(后台补录)
// @Summary      创建客户
// @Tags         客户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateCustomerRequest true "客户信息"
// @Success      201 {object} dto.CustomerResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *gin.Context) {
	var req dto.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	cust, err := h.useCase.Create(c.Request.Context(), appcustomer.CreateRequest{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		BirthDate: req.BirthDate,
		Gender:    req.Gender,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToCustomerResponse(cust))
}

// Patch 部分更新客户(后台)
// @Summary      更新客户
// @Tags         客户
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "客户ID"
// @Param        request body dto.PatchCustomerRequest true "要更新的字段"
// @Success      200 {object} dto.CustomerResponse
// @Router       /api/customers/{id} [patch]
func (h *CustomerHandler) Patch(c *gin.Context) {
	id, ok := dto.ParseIDParam(c)
	if !ok {
		response.NotFound(c)
		return
	}

	var req dto.PatchCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	cust, err := h.useCase.Patch(c.Request.Context(), id, req.ToPatch())
	if err != nil {
		if apperrors.IsNotFound(err) {
			response.NotFound(c)
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToCustomerResponse(cust))
}

// Delete 删除客户(后台)
// @Summary      删除客户
// @Tags         客户
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "客户ID"
// @Success      200 {object} map[string]interface{} "{}"
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := dto.ParseIDParam(c)
	if !ok {
		response.NotFound(c)
		return
	}

	if err := h.useCase.Delete(c.Request.Context(), id); err != nil {
		if apperrors.IsNotFound(err) {
			response.NotFound(c)
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{})
}
