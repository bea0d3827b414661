package handler

import (
	"github.com/gin-gonic/gin"

	appstaff "github.com/xiebiao/bookshop/internal/application/staff"
	"github.com/xiebiao/bookshop/internal/interface/http/middleware"
	"github.com/xiebiao/bookshop/pkg/response"
)

// StaffHandler 员工认证HTTP处理器
type StaffHandler struct {
	registerUC *appstaff.RegisterUseCase
	loginUC    *appstaff.LoginUseCase
	logoutUC   *appstaff.LogoutUseCase
}

// NewStaffHandler 创建员工处理器
func NewStaffHandler(
	registerUC *appstaff.RegisterUseCase,
	loginUC *appstaff.LoginUseCase,
	logoutUC *appstaff.LogoutUseCase,
) *StaffHandler {
	return &StaffHandler{
		registerUC: registerUC,
		loginUC:    loginUC,
		logoutUC:   logoutUC,
	}
}

// Register 注册员工账号
// @Summary      注册员工账号
// @Description  密码8-20位,必须包含字母和数字;角色为admin或editor,默认editor
// @Tags         员工
// @Accept       json
// @Produce      json
// @Param        request body appstaff.RegisterRequest true "注册信息"
// @Success      200 {object} response.Response{data=appstaff.StaffInfo}
// @Router       /api/staff/register [post]
func (h *StaffHandler) Register(c *gin.Context) {
	var req appstaff.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	info, err := h.registerUC.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, info)
}

// Login 员工登录
// @Summary      员工登录
// @Tags         员工
// @Accept       json
// @Produce      json
// @Param        request body appstaff.LoginRequest true "登录信息"
// @Success      200 {object} response.Response{data=appstaff.LoginResponse}
// @Router       /api/staff/login [post]
func (h *StaffHandler) Login(c *gin.Context) {
	var req appstaff.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40900, "参数错误: "+err.Error())
		return
	}

	resp, err := h.loginUC.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// Logout 员工登出
// @Summary      员工登出
// @Description  删除服务端会话并将当前Token加入黑名单
// @Tags         员工
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response
// @Router       /api/staff/logout [post]
func (h *StaffHandler) Logout(c *gin.Context) {
	staffID := middleware.MustGetStaffID(c)
	if err := h.logoutUC.Execute(c.Request.Context(), staffID, middleware.GetAccessToken(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Me 当前登录员工信息
// @Summary      当前登录员工信息
// @Tags         员工
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=appstaff.StaffInfo}
// @Router       /api/staff/me [get]
func (h *StaffHandler) Me(c *gin.Context) {
	response.Success(c, appstaff.StaffInfo{
		ID:    middleware.MustGetStaffID(c),
		Email: c.GetString("staff_email"),
		Name:  c.GetString("staff_name"),
	})
}
