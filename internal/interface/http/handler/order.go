package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookshop/internal/application/order"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
	"github.com/xiebiao/bookshop/pkg/response"
)

// OrderHandler 订单HTTP处理器(Gateway风格,后台管理)
// 订单由结算流程创建,这里只提供查询、状态流转和信息修正;
// 不提供POST创建入口
type OrderHandler struct {
	useCase *apporder.UseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(useCase *apporder.UseCase) *OrderHandler {
	return &OrderHandler{useCase: useCase}
}

// List 订单列表(后台)
// @Summary      订单列表
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        customer_id query int false "按客户过滤"
// @Param        status query string false "按状态过滤"
// @Success      200 {array} dto.OrderResponse
// @Header       200 {string} X-Total-Count "总数"
// @Router       /api/purchase_orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	q := dto.ParseListQuery(c)
	orders, total, err := h.useCase.List(c.Request.Context(), order.ListParams{
		CustomerID: dto.ParseUintQuery(c, "customer_id"),
		Status:     order.OrderStatus(c.Query("status")),
		SortBy:     q.SortBy,
		Order:      q.Order,
		Start:      q.Start,
		End:        q.End,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	dto.SetTotalCount(c, total)
	c.JSON(http.StatusOK, dto.ToOrderResponses(orders))
}

// Get 订单详情(后台)
// @Summary      订单详情
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} dto.OrderResponse
// @Router       /api/purchase_orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := dto.ParseIDParam(c)
	if !ok {
		response.NotFound(c)
		return
	}

	o, err := h.useCase.Get(c.Request.Context(), id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			response.NotFound(c)
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(o))
}

// Patch 部分更新订单(后台)
// @Summary      更新订单
// @Description  状态必须沿合法流转:pending→processing→shipped→delivered;pending/processing可取消;终态不可再变
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body dto.PatchOrderRequest true "要更新的字段"
// @Success      200 {object} dto.OrderResponse
// @Router       /api/purchase_orders/{id} [patch]
func (h *OrderHandler) Patch(c *gin.Context) {
	id, ok := dto.ParseIDParam(c)
	if !ok {
		response.NotFound(c)
		return
	}

	var req dto.PatchOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	patch, err := req.ToPatch()
	if err != nil {
		response.Error(c, err)
		return
	}

	o, err := h.useCase.Patch(c.Request.Context(), id, patch)
	if err != nil {
		if apperrors.IsNotFound(err) {
			response.NotFound(c)
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(o))
}

// Cancel 取消订单(后台)
// @Summary      取消订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} dto.OrderResponse
// @Router       /api/purchase_orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	id, ok := dto.ParseIDParam(c)
	if !ok {
		response.NotFound(c)
		return
	}

	o, err := h.useCase.Cancel(c.Request.Context(), id)
	if err != nil {
		if apperrors.IsNotFound(err) {
			response.NotFound(c)
			return
		}
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderResponse(o))
}
