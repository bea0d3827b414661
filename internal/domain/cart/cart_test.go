package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCart(t *testing.T) *Cart {
	t.Helper()
	return New(GenerateCartID())
}

// TestCart_AddItem_Merge 同一图书重复加购时数量累加
func TestCart_AddItem_Merge(t *testing.T) {
	c := newTestCart(t)

	require.NoError(t, c.AddItem(LineItem{BookID: 1, Title: "Go语言实战", UnitPrice: 2000, Quantity: 1}))
	require.NoError(t, c.AddItem(LineItem{BookID: 1, Title: "Go语言实战", UnitPrice: 2000, Quantity: 2}))
	require.NoError(t, c.AddItem(LineItem{BookID: 2, Title: "算法导论", UnitPrice: 9900, Quantity: 1}))

	assert.Len(t, c.Items, 2, "同一图书应合并为一个行项")
	assert.Equal(t, 3, c.Quantity(1))
	assert.Equal(t, 4, c.TotalItemCount())
	assert.Equal(t, int64(2000*3+9900), c.TotalPrice())
}

// TestCart_AddItem_InvalidQuantity 数量必须大于0
func TestCart_AddItem_InvalidQuantity(t *testing.T) {
	c := newTestCart(t)

	assert.ErrorIs(t, c.AddItem(LineItem{BookID: 1, Quantity: 0}), ErrInvalidQuantity)
	assert.ErrorIs(t, c.AddItem(LineItem{BookID: 1, Quantity: -1}), ErrInvalidQuantity)
	assert.True(t, c.IsEmpty())
}

// TestCart_Totals 总件数与总价始终等于行项汇总
// 覆盖:任意add/update/remove序列后的派生值一致性
func TestCart_Totals(t *testing.T) {
	c := newTestCart(t)

	require.NoError(t, c.AddItem(LineItem{BookID: 1, UnitPrice: 1000, Quantity: 2}))
	require.NoError(t, c.AddItem(LineItem{BookID: 2, UnitPrice: 2500, Quantity: 1}))
	require.NoError(t, c.AddItem(LineItem{BookID: 3, UnitPrice: 500, Quantity: 4}))

	c.UpdateQuantity(2, 3)
	c.RemoveItem(3)
	require.NoError(t, c.AddItem(LineItem{BookID: 1, UnitPrice: 1000, Quantity: 1}))

	// 期望:book1×3 + book2×3
	var wantCount int
	var wantPrice int64
	for _, item := range c.Items {
		wantCount += item.Quantity
		wantPrice += item.UnitPrice * int64(item.Quantity)
	}
	assert.Equal(t, wantCount, c.TotalItemCount())
	assert.Equal(t, wantPrice, c.TotalPrice())
	assert.Equal(t, 6, c.TotalItemCount())
	assert.Equal(t, int64(3*1000+3*2500), c.TotalPrice())
}

// TestCart_UpdateQuantity_ZeroRemoves 数量<=0等价于移除,且幂等
func TestCart_UpdateQuantity_ZeroRemoves(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.AddItem(LineItem{BookID: 1, UnitPrice: 1000, Quantity: 2}))

	c.UpdateQuantity(1, 0)
	assert.True(t, c.IsEmpty())

	// 重复调用为no-op
	c.UpdateQuantity(1, 0)
	c.UpdateQuantity(1, -5)
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalItemCount())
	assert.Equal(t, int64(0), c.TotalPrice())
}

// TestCart_SilentNoOps 对不存在的图书操作静默忽略
func TestCart_SilentNoOps(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.AddItem(LineItem{BookID: 1, UnitPrice: 1000, Quantity: 1}))

	c.RemoveItem(99)
	c.UpdateQuantity(99, 5)

	assert.Len(t, c.Items, 1)
	assert.Equal(t, 1, c.Quantity(1))
	assert.Equal(t, 0, c.Quantity(99))
}

// TestCart_Clear 清空购物车
func TestCart_Clear(t *testing.T) {
	c := newTestCart(t)
	require.NoError(t, c.AddItem(LineItem{BookID: 1, UnitPrice: 1000, Quantity: 2}))
	require.NoError(t, c.AddItem(LineItem{BookID: 2, UnitPrice: 2000, Quantity: 1}))

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalItemCount())
	assert.Equal(t, int64(0), c.TotalPrice())
}

// TestGenerateCartID ID格式与基本唯一性
func TestGenerateCartID(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateCartID()
		assert.Regexp(t, `^CRT\d+$`, id)
		seen[id] = true
	}
	assert.Greater(t, len(seen), 90, "短时间内生成的ID应基本不重复")
}
