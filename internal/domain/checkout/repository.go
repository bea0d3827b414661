package checkout

import "context"

// Repository 结算会话存储接口
// 会话以购物车ID为键,内存实现用于开发环境,Redis实现用于多实例部署
type Repository interface {
	Save(ctx context.Context, s *Session) error
	Find(ctx context.Context, cartID string) (*Session, error)
	Delete(ctx context.Context, cartID string) error
}
