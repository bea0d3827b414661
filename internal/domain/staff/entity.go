package staff

import (
	"time"
)

// Staff 后台员工实体
// 仅员工可访问后台管理接口;密码哈希不参与JSON序列化
type Staff struct {
	ID           uint      `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// 员工角色
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
)
