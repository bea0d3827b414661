package customer

import (
	"strings"
	"time"
)

// Customer 客户实体
// 每次下单如写入新客户档案时,RegistrationDate 取下单时刻,TotalOrders 从1开始计数
type Customer struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	Phone            string    `json:"phone"`
	Address          string    `json:"address"`
	BirthDate        string    `json:"birth_date,omitempty"`
	Gender           string    `json:"gender,omitempty"`
	RegistrationDate time.Time `json:"registration_date"`
	TotalOrders      int       `json:"total_orders"`
	CreatedAt        time.Time `json:"-"`
	UpdatedAt        time.Time `json:"-"`
}

// New 创建客户
func New(name, email, phone, address string) (*Customer, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, ErrInvalidName
	}
	if !ValidEmail(email) {
		return nil, ErrInvalidEmail
	}
	if strings.TrimSpace(phone) == "" {
		return nil, ErrInvalidPhone
	}
	now := time.Now()
	return &Customer{
		Name:             name,
		Email:            email,
		Phone:            phone,
		Address:          address,
		RegistrationDate: now,
		TotalOrders:      1,
		CreatedAt:        now,
		UpdatedAt:        now,
	}, nil
}

// ValidEmail 校验邮箱格式(宽松:仅要求 x@y 形态)
func ValidEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1 && !strings.ContainsAny(email, " \t")
}

// IncrementOrders 累计下单次数
func (c *Customer) IncrementOrders() {
	c.TotalOrders++
	c.UpdatedAt = time.Now()
}
