package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apprental "github.com/xiebiao/bookshop/internal/application/rental"
	"github.com/xiebiao/bookshop/internal/domain/rental"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/response"
)

// RentalHandler 租赁单HTTP处理器(Gateway风格,后台管理)
// 租赁走线下流程,与销售订单不同,后台可直接POST录入
type RentalHandler struct {
	useCase *apprental.UseCase
}

// NewRentalHandler 创建租赁单处理器
func NewRentalHandler(useCase *apprental.UseCase) *RentalHandler {
	return &RentalHandler{useCase: useCase}
}

// List 租赁单列表(后台)
// @Summary      租赁单列表
// @Tags         租赁
// @Produce      json
// @Security     BearerAuth
// @Param        customer_id query int false "按客户过滤"
// @Param        status query string false "按状态过滤(borrowed/returned)"
// @Param        rental_date query string false "按起租日过滤(YYYY-MM-DD)"
// @Param        return_date query string false "按约定归还日过滤(YYYY-MM-DD)"
// @Param        actual_return_date query string false "按实际归还日过滤(YYYY-MM-DD)"
// @Param        total_amount_gte query int false "租金总额下限(分)"
// @Param        total_amount_lte query int false "租金总额上限(分)"
// @Success      200 {array} dto.RentalOrderResponse
// @Header       200 {string} X-Total-Count "总数"
// @Router       /api/rental_orders [get]
func (h *RentalHandler) List(c *gin.Context) {
	q := dto.ParseListQuery(c)
	rentals, total, err := h.useCase.List(c.Request.Context(), rental.ListParams{
		CustomerID:       dto.ParseUintQuery(c, "customer_id"),
		Status:           rental.RentalStatus(c.Query("status")),
		RentalDate:       c.Query("rental_date"),
		ReturnDate:       c.Query("return_date"),
		ActualReturnDate: c.Query("actual_return_date"),
		TotalAmountGTE:   dto.ParseInt64Query(c, "total_amount_gte"),
		TotalAmountLTE:   dto.ParseInt64Query(c, "total_amount_lte"),
		SortBy:           q.SortBy,
		Order:            q.Order,
		Start:            q.Start,
		End:              q.End,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	dto.SetTotalCount(c, total)
	c.JSON(http.StatusOK, dto.ToRentalOrderResponses(rentals))
}

// Get 租赁单详情(后台)
// @Summary      租赁单详情
// @Tags         租赁
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "租赁单ID"
// @Success      200 {object} dto.RentalOrderResponse
// @Router       /api/rental_orders/{id} [get]
func (h *RentalHandler) Get(c *gin.Context) {
	id, ok := dto.ParseIDParam(c)
	if !ok {
		response.NotFound(c)
		return
	}

	r, err := h.useCase.Get(c.Request.Context(), id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			response.NotFound(c)
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRentalOrderResponse(r))
}

// Create 录入租赁单(后台)
// @Summary      创建租赁单
// @Tags         租赁
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateRentalOrderRequest true "租赁单信息"
// @Success      201 {object} dto.RentalOrderResponse
// @Router       /api/rental_orders [post]
func (h *RentalHandler) Create(c *gin.Context) {
	var req dto.CreateRentalOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	createReq, err := req.ToCreateRequest()
	if err != nil {
		response.Error(c, err)
		return
	}

	r, err := h.useCase.Create(c.Request.Context(), createReq)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToRentalOrderResponse(r))
}

// Patch 部分更新租赁单(后台)
// @Summary      更新租赁单
// @Description  状态只能从borrowed流转到returned;流转到returned且未提供实际归还日时以当天登记归还
// @Tags         租赁
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "租赁单ID"
// @Param        request body dto.PatchRentalOrderRequest true "要更新的字段"
// @Success      200 {object} dto.RentalOrderResponse
// @Router       /api/rental_orders/{id} [patch]
func (h *RentalHandler) Patch(c *gin.Context) {
	id, ok := dto.ParseIDParam(c)
	if !ok {
		response.NotFound(c)
		return
	}

	var req dto.PatchRentalOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		response.Error(c, err)
		return
	}

	r, err := h.useCase.Patch(c.Request.Context(), id, patch)
	if err != nil {
		if apperrors.IsNotFound(err) {
			response.NotFound(c)
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToRentalOrderResponse(r))
}

// Delete 删除租赁单(后台)
// @Summary      删除租赁单
// @Tags         租赁
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "租赁单ID"
// @Success      200 {object} map[string]interface{} "{}"
// @Router       /api/rental_orders/{id} [delete]
func (h *RentalHandler) Delete(c *gin.Context) {
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
