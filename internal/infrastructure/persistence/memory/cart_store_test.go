package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/checkout"
)

// TestCartStore_SaveFindDelete 购物车存取删除
func TestCartStore_SaveFindDelete(t *testing.T) {
	store := NewCartStore()
	ctx := context.Background()

	c := cart.New("CRT001")
	require.NoError(t, c.AddItem(cart.LineItem{BookID: 1, Title: "Go语言实战", UnitPrice: 2000, Quantity: 2}))
	require.NoError(t, store.Save(ctx, c))

	found, err := store.Find(ctx, "CRT001")
	require.NoError(t, err)
	assert.Equal(t, int64(4000), found.TotalPrice())

	require.NoError(t, store.Delete(ctx, "CRT001"))
	_, err = store.Find(ctx, "CRT001")
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
}

// TestCartStore_Isolation 存取返回的是副本,外部修改不影响存储
func TestCartStore_Isolation(t *testing.T) {
	store := NewCartStore()
	ctx := context.Background()

	c := cart.New("CRT002")
	require.NoError(t, c.AddItem(cart.LineItem{BookID: 1, UnitPrice: 1000, Quantity: 1}))
	require.NoError(t, store.Save(ctx, c))

	// 保存后修改原对象
	require.NoError(t, c.AddItem(cart.LineItem{BookID: 2, UnitPrice: 500, Quantity: 3}))

	found, err := store.Find(ctx, "CRT002")
	require.NoError(t, err)
	assert.Len(t, found.Items, 1)

	// 读取结果修改也不影响存储
	found.Items[0].Quantity = 99
	again, err := store.Find(ctx, "CRT002")
	require.NoError(t, err)
	assert.Equal(t, 1, again.Items[0].Quantity)
}

// TestCartStore_ConcurrentAccess 并发读写不出现竞态
func TestCartStore_ConcurrentAccess(t *testing.T) {
	store := NewCartStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c := cart.New(cart.GenerateCartID())
			_ = c.AddItem(cart.LineItem{BookID: uint(n + 1), UnitPrice: 100, Quantity: 1})
			_ = store.Save(ctx, c)
			_, _ = store.Find(ctx, c.ID)
		}(i)
	}
	wg.Wait()
}

// TestCheckoutStore_SaveFindDelete 结算会话存取删除
func TestCheckoutStore_SaveFindDelete(t *testing.T) {
	store := NewCheckoutStore()
	ctx := context.Background()

	sess := checkout.NewSession("CRT001")
	require.NoError(t, store.Save(ctx, sess))

	found, err := store.Find(ctx, "CRT001")
	require.NoError(t, err)
	assert.Equal(t, checkout.StepShippingInfo, found.Step)

	require.NoError(t, store.Delete(ctx, "CRT001"))
	_, err = store.Find(ctx, "CRT001")
	assert.ErrorIs(t, err, checkout.ErrSessionNotFound)
}
