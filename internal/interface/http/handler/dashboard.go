package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookshop/internal/application/dashboard"
	"github.com/xiebiao/bookshop/pkg/response"
)

// DashboardHandler 后台仪表盘HTTP处理器
type DashboardHandler struct {
	statsUC *dashboard.StatsUseCase
}

// NewDashboardHandler 创建仪表盘处理器
func NewDashboardHandler(statsUC *dashboard.StatsUseCase) *DashboardHandler {
	return &DashboardHandler{statsUC: statsUC}
}

// Stats 经营统计
// @Summary      经营统计
// @Description  图书总数、总库存、低库存图书数、近30天订单数与营收、近30天新客户数
// @Tags         仪表盘
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.Response{data=dashboard.Stats}
// @Router       /api/dashboard/stats [get]
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.statsUC.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}
