package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/bookshop/internal/application/cart"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// CartHandler 购物车HTTP处理器
// 购物车无需登录,cart_id由服务端在首次加购时生成,客户端自行保存
type CartHandler struct {
	useCase *appcart.UseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(useCase *appcart.UseCase) *CartHandler {
	return &CartHandler{useCase: useCase}
}

// Get 查看购物车
// @Summary      查看购物车
// @Tags         购物车
// @Produce      json
// @Param        cart_id path string true "购物车ID"
// @Success      200 {object} response.Response{data=appcart.View}
// @Router       /api/cart/{cart_id} [get]
func (h *CartHandler) Get(c *gin.Context) {
	view, err := h.useCase.Get(c.Request.Context(), c.Param("cart_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// AddItem 加入购物车
// @Summary      加入购物车
// @Description  cart_id为空时服务端创建新购物车并在响应中返回cart_id;
// @Description  同一本书重复加购会累加数量,累计数量不能超过库存
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Param        cart_id query string false "购物车ID(首次加购可不传)"
// @Param        request body dto.AddCartItemRequest true "图书与数量"
// @Success      200 {object} response.Response{data=appcart.View}
// @Router       /api/cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	var req dto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	view, err := h.useCase.AddItem(c.Request.Context(), c.Query("cart_id"), req.BookID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateItem 修改明细数量
// @Summary      修改购物车明细数量
// @Description  数量为0等价于移除该明细
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Param        cart_id path string true "购物车ID"
// @Param        book_id path int true "图书ID"
// @Param        request body dto.UpdateCartItemRequest true "新数量"
// @Success      200 {object} response.Response{data=appcart.View}
// @Router       /api/cart/{cart_id}/items/{book_id} [patch]
func (h *CartHandler) UpdateItem(c *gin.Context) {
	bookID, ok := parseUintParam(c, "book_id")
	if !ok {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	var req dto.UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	view, err := h.useCase.UpdateQuantity(c.Request.Context(), c.Param("cart_id"), bookID, req.Quantity)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// RemoveItem 移除明细
// @Summary      移除购物车明细
// @Tags         购物车
// @Produce      json
// @Param        cart_id path string true "购物车ID"
// @Param        book_id path int true "图书ID"
// @Success      200 {object} response.Response{data=appcart.View}
// @Router       /api/cart/{cart_id}/items/{book_id} [delete]
func (h *CartHandler) RemoveItem(c *gin.Context) {
	bookID, ok := parseUintParam(c, "book_id")
	if !ok {
		response.ErrorWithCode(c, 40900, "无效的图书ID")
		return
	}

	view, err := h.useCase.RemoveItem(c.Request.Context(), c.Param("cart_id"), bookID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}

// Clear 清空购物车
// @Summary      清空购物车
// @Tags         购物车
// @Produce      json
// @Param        cart_id path string true "购物车ID"
// @Success      200 {object} response.Response{data=appcart.View}
// @Router       /api/cart/{cart_id} [delete]
func (h *CartHandler) Clear(c *gin.Context) {
	view, err := h.useCase.Clear(c.Request.Context(), c.Param("cart_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, view)
}
