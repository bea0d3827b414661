package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// CartStore 购物车的Redis存储
// 设计说明：
// 1. 整个购物车序列化为JSON存一个Key(购物车体积小,整存整取最简单)
// 2. TTL到期自动清理废弃购物车
// 3. Key设计：cart:{cart_id}
// 4. 多实例部署时用Redis实现,单机开发用memory实现
type CartStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCartStore 创建购物车存储
func NewCartStore(client *redis.Client, ttl time.Duration) cart.Repository {
	return &CartStore{client: client, ttl: ttl}
}

func cartKey(id string) string {
	return fmt.Sprintf("cart:%s", id)
}

// Save 保存购物车(整体覆盖,刷新TTL)
func (s *CartStore) Save(ctx context.Context, c *cart.Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return apperrors.Wrap(err, "序列化购物车失败")
	}
	if err := s.client.Set(ctx, cartKey(c.ID), data, s.ttl).Err(); err != nil {
		return apperrors.Wrap(err, "保存购物车失败")
	}
	return nil
}

// Find 查找购物车
func (s *CartStore) Find(ctx context.Context, id string) (*cart.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cart.ErrCartNotFound
		}
		return nil, apperrors.Wrap(err, "读取购物车失败")
	}

	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, apperrors.Wrap(err, "反序列化购物车失败")
	}
	return &c, nil
}

// Delete 删除购物车(下单成功后清空)
func (s *CartStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, cartKey(id)).Err(); err != nil {
		return apperrors.Wrap(err, "删除购物车失败")
	}
	return nil
}
