package memory

import (
	"context"
	"sync"

	"github.com/xiebiao/bookshop/internal/domain/cart"
)

// CartStore 购物车的内存存储
// 设计说明：
// 1. 单机开发/测试用,多实例部署请切换到Redis实现(cart.store配置项)
// 2. 读写都持锁,存取时做深拷贝,防止调用方共享内部状态
type CartStore struct {
	mu    sync.RWMutex
	carts map[string]*cart.Cart
}

// NewCartStore 创建内存购物车存储
func NewCartStore() cart.Repository {
	return &CartStore{carts: make(map[string]*cart.Cart)}
}

// Save 保存购物车
func (s *CartStore) Save(_ context.Context, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[c.ID] = cloneCart(c)
	return nil
}

// Find 查找购物车
func (s *CartStore) Find(_ context.Context, id string) (*cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[id]
	if !ok {
		return nil, cart.ErrCartNotFound
	}
	return cloneCart(c), nil
}

// Delete 删除购物车
func (s *CartStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, id)
	return nil
}

// cloneCart 深拷贝购物车
func cloneCart(c *cart.Cart) *cart.Cart {
	clone := *c
	clone.Items = make([]cart.LineItem, len(c.Items))
	copy(clone.Items, c.Items)
	return &clone
}
