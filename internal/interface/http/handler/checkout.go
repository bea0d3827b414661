package handler

import (
	"github.com/gin-gonic/gin"

	appcheckout "github.com/xiebiao/bookshop/internal/application/checkout"
	"github.com/xiebiao/bookshop/internal/domain/checkout"
	"github.com/xiebiao/bookshop/internal/interface/http/dto"
	"github.com/xiebiao/bookshop/pkg/response"
)

// CheckoutHandler 结算向导HTTP处理器
// 三步向导:收货信息 → 支付方式 → 确认提交;
// 会话以cart_id为键,前进需要通过当步校验,后退不校验且保留已填数据
type CheckoutHandler struct {
	useCase    *appcheckout.UseCase
	placeOrder *appcheckout.PlaceOrderUseCase
}

// NewCheckoutHandler 创建结算处理器
func NewCheckoutHandler(useCase *appcheckout.UseCase, placeOrder *appcheckout.PlaceOrderUseCase) *CheckoutHandler {
	return &CheckoutHandler{useCase: useCase, placeOrder: placeOrder}
}

// Start 开始结算
// @Summary      开始结算
// @Description  购物车必须存在且非空;重复调用幂等,返回当前会话状态
// @Tags         结算
// @Produce      json
// @Param        cart_id path string true "购物车ID"
// @Success      200 {object} response.Response{data=appcheckout.Summary}
// @Router       /api/checkout/{cart_id}/start [post]
func (h *CheckoutHandler) Start(c *gin.Context) {
	summary, err := h.useCase.Start(c.Request.Context(), c.Param("cart_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}

// Get 查看结算进度
// @Summary      查看结算进度
// @Tags         结算
// @Produce      json
// @Param        cart_id path string true "购物车ID"
// @Success      200 {object} response.Response{data=appcheckout.Summary}
// @Router       /api/checkout/{cart_id} [get]
func (h *CheckoutHandler) Get(c *gin.Context) {
	summary, err := h.useCase.Get(c.Request.Context(), c.Param("cart_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}

// SubmitShipping 提交收货信息(第一步)
// @Summary      提交收货信息
// @Description  姓名、邮箱、电话、地址必填,校验通过后进入支付方式步骤
// @Tags         结算
// @Accept       json
// @Produce      json
// @Param        cart_id path string true "购物车ID"
// @Param        request body dto.ShippingInfoRequest true "收货信息"
// @Success      200 {object} response.Response{data=appcheckout.Summary}
// @Router       /api/checkout/{cart_id}/shipping [put]
func (h *CheckoutHandler) SubmitShipping(c *gin.Context) {
	var req dto.ShippingInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	summary, err := h.useCase.SubmitShipping(c.Request.Context(), c.Param("cart_id"), checkout.ShippingInfo{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Address:   req.Address,
		BirthDate: req.BirthDate,
		Gender:    req.Gender,
		Notes:     req.Notes,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}

// SubmitPayment 提交支付方式(第二步)
// @Summary      提交支付方式
// @Description  支持cash_on_delivery/bank_transfer/credit_card,校验通过后进入确认步骤
// @Tags         结算
// @Accept       json
// @Produce      json
// @Param        cart_id path string true "购物车ID"
// @Param        request body dto.PaymentMethodRequest true "支付方式"
// @Success      200 {object} response.Response{data=appcheckout.Summary}
// @Router       /api/checkout/{cart_id}/payment [put]
func (h *CheckoutHandler) SubmitPayment(c *gin.Context) {
	var req dto.PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	summary, err := h.useCase.SubmitPayment(c.Request.Context(), c.Param("cart_id"), req.PaymentMethod)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}

// Back 回退一步
// @Summary      回退一步
// @Description  任意步骤可回退,不做校验,已填写的数据保留;第一步回退为无操作
// @Tags         结算
// @Produce      json
// @Param        cart_id path string true "购物车ID"
// @Success      200 {object} response.Response{data=appcheckout.Summary}
// @Router       /api/checkout/{cart_id}/back [post]
func (h *CheckoutHandler) Back(c *gin.Context) {
	summary, err := h.useCase.Back(c.Request.Context(), c.Param("cart_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, summary)
}

// Submit 确认下单(第三步)
// @Summary      确认下单
// @Description  按创建客户→创建订单→扣减库存的顺序执行,任一步失败则逆序补偿;
// @Description  库存不足时按现有库存截断扣减,订单仍按下单数量创建
// @Tags         结算
// @Produce      json
// @Param        cart_id path string true "购物车ID"
// @Success      200 {object} response.Response{data=appcheckout.Result}
// @Router       /api/checkout/{cart_id}/submit [post]
func (h *CheckoutHandler) Submit(c *gin.Context) {
	result, err := h.placeOrder.Execute(c.Request.Context(), c.Param("cart_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
