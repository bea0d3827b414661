package dto

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

// Gateway风格集合接口的查询约定(兼容json-server/react-admin):
//
//	?_sort=price&_order=desc   排序
//	?_start=0&_end=10          偏移分页(左闭右开)
//	?q=关键词                   全文搜索
//	?author_id=3               等值过滤
//	?category_ids=1&category_ids=2  分类超集过滤(AND语义)
//
// 响应约定:裸JSON数组 + X-Total-Count响应头(过滤后的总数)

// ListQuery 解析后的通用列表参数
type ListQuery struct {
	SortBy  string
	Order   string
	Start   int
	End     int
	Keyword string
}

// ParseListQuery 解析_sort/_order/_start/_end/q
func ParseListQuery(c *gin.Context) ListQuery {
	q := ListQuery{
		SortBy:  c.Query("_sort"),
		Order:   c.DefaultQuery("_order", "asc"),
		Keyword: c.Query("q"),
	}
	q.Start, _ = strconv.Atoi(c.DefaultQuery("_start", "0"))
	q.End, _ = strconv.Atoi(c.DefaultQuery("_end", "0"))
	if q.Start < 0 {
		q.Start = 0
	}
	return q
}

// SetTotalCount 设置X-Total-Count响应头
// 同时暴露给浏览器跨域脚本(react-admin需要读取该头做分页)
func SetTotalCount(c *gin.Context, total int64) {
	c.Header("X-Total-Count", strconv.FormatInt(total, 10))
	c.Header("Access-Control-Expose-Headers", "X-Total-Count")
}

// ParseIDParam 解析路径中的:id参数
func ParseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// ParseUintQuery 解析uint查询参数(缺失或非法返回0)
func ParseUintQuery(c *gin.Context, name string) uint {
	v, err := strconv.ParseUint(c.Query(name), 10, 32)
	if err != nil {
		return 0
	}
	return uint(v)
}

// ParseUintSliceQuery 解析重复出现的uint查询参数
// 同时兼容逗号分隔写法: ?category_ids=1,2 与 ?category_ids=1&category_ids=2
func ParseUintSliceQuery(c *gin.Context, name string) []uint {
	var out []uint
	for _, raw := range c.QueryArray(name) {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			v, err := strconv.ParseUint(part, 10, 32)
			if err != nil {
				continue
			}
			out = append(out, uint(v))
		}
	}
	return out
}

// ParseInt64Query 解析int64查询参数,返回nil表示未提供
func ParseInt64Query(c *gin.Context, name string) *int64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil
	}
	return &v
}

// ParseIntQuery 解析int查询参数,返回nil表示未提供
func ParseIntQuery(c *gin.Context, name string) *int {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
