package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookshop/internal/domain/checkout"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// CheckoutStore 结算会话的Redis存储
// Key设计：checkout:{cart_id},与购物车同生命周期
type CheckoutStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCheckoutStore 创建结算会话存储
func NewCheckoutStore(client *redis.Client, ttl time.Duration) checkout.Repository {
	return &CheckoutStore{client: client, ttl: ttl}
}

func checkoutKey(cartID string) string {
	return fmt.Sprintf("checkout:%s", cartID)
}

// Save 保存结算会话(整体覆盖,刷新TTL)
func (s *CheckoutStore) Save(ctx context.Context, sess *checkout.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return apperrors.Wrap(err, "序列化结算会话失败")
	}
	if err := s.client.Set(ctx, checkoutKey(sess.CartID), data, s.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "保存结算会话失败")
	}
	return nil
}

// Find 查找结算会话
func (s *CheckoutStore) Find(ctx context.Context, cartID string) (*checkout.Session, error) {
	data, err := s.client.Get(ctx, checkoutKey(cartID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, checkout.ErrSessionNotFound
		}
		return nil, apperrors.Wrap(err, "读取结算会话失败")
	}

	var sess checkout.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, apperrors.Wrap(err, "反序列化结算会话失败")
	}
	return &sess, nil
}

// Delete 删除结算会话
func (s *CheckoutStore) Delete(ctx context.Context, cartID string) error {
	if err := s.client.Del(ctx, checkoutKey(cartID)).Err(); err != nil {
		return apperrors.Wrap(err, "删除结算会话失败")
	}
	return nil
}
