package memory

import (
	"context"
	"sync"

	"github.com/xiebiao/bookshop/internal/domain/checkout"
)

// CheckoutStore 结算会话的内存存储
type CheckoutStore struct {
	mu       sync.RWMutex
	sessions map[string]*checkout.Session
}

// NewCheckoutStore 创建内存结算会话存储
func NewCheckoutStore() checkout.Repository {
	return &CheckoutStore{sessions: make(map[string]*checkout.Session)}
}

// Save 保存结算会话
func (s *CheckoutStore) Save(_ context.Context, sess *checkout.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := *sess
	s.sessions[sess.CartID] = &clone
	return nil
}

// Find 查找结算会话
func (s *CheckoutStore) Find(_ context.Context, cartID string) (*checkout.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.sessions[cartID]
	if !ok {
		return nil, checkout.ErrSessionNotFound
	}
	clone := *sess
	return &clone, nil
}

// Delete 删除结算会话
func (s *CheckoutStore) Delete(_ context.Context, cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, cartID)
	return nil
}
