package mysql

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
// MySQL错误码:
// - 1062: Duplicate entry 'xxx' for key 'yyy'
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	// 兼容检查:错误信息包含"Duplicate entry"
	return strings.Contains(err.Error(), "Duplicate entry")
}

// applyRange 应用json-server风格的区间分页
// [start, end) 左闭右开;end<=start时只应用偏移
func applyRange(query *gorm.DB, start, end int) *gorm.DB {
	if start < 0 {
		start = 0
	}
	if end > start {
		return query.Offset(start).Limit(end - start)
	}
	if start > 0 {
		return query.Offset(start)
	}
	return query
}

// orderClause 构建排序子句
// 列名必须来自白名单,防止SQL注入
func orderClause(sortBy, order string, allowed map[string]string) string {
	col, ok := allowed[sortBy]
	if !ok {
		return ""
	}
	dir := "ASC"
	if strings.EqualFold(order, "desc") {
		dir = "DESC"
	}
	return col + " " + dir
}
