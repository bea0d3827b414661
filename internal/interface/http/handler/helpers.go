package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// parseUintParam 解析任意名称的uint路径参数
func parseUintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || v == 0 {
		return 0, false
	}
	return uint(v), true
}
