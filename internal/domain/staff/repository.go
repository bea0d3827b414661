package staff

import "context"

// Repository 员工仓储接口
type Repository interface {
	Create(ctx context.Context, s *Staff) error
	FindByID(ctx context.Context, id uint) (*Staff, error)
	FindByEmail(ctx context.Context, email string) (*Staff, error)
	Update(ctx context.Context, s *Staff) error
}
