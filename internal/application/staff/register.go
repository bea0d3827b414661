package staff

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/staff"
)

// RegisterUseCase 员工注册用例
type RegisterUseCase struct {
	staffService staff.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(staffService staff.Service) *RegisterUseCase {
	return &RegisterUseCase{staffService: staffService}
}

// RegisterRequest 注册请求DTO
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=20"`
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Role     string `json:"role"`
}

// StaffInfo 员工信息DTO(不含密码哈希)
type StaffInfo struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*StaffInfo, error) {
	s, err := uc.staffService.Register(ctx, req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		return nil, err
	}

	return &StaffInfo{
		ID:    s.ID,
		Email: s.Email,
		Name:  s.Name,
		Role:  s.Role,
	}, nil
}
