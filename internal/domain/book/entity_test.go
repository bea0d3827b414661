package book

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBook_ApplyStockDecrement 扣减库存在0处截断
// 场景:库存3、购买5 → 实际扣减3,库存归0,不出现负数
func TestBook_ApplyStockDecrement(t *testing.T) {
	b := &Book{Stock: 3}

	applied := b.ApplyStockDecrement(5)
	assert.Equal(t, 3, applied)
	assert.Equal(t, 0, b.Stock)

	// 库存为0后继续扣减为no-op
	applied = b.ApplyStockDecrement(1)
	assert.Equal(t, 0, applied)
	assert.Equal(t, 0, b.Stock)
}

func TestBook_ApplyStockDecrement_Normal(t *testing.T) {
	b := &Book{Stock: 10}

	assert.Equal(t, 4, b.ApplyStockDecrement(4))
	assert.Equal(t, 6, b.Stock)

	// 非正数量不扣减
	assert.Equal(t, 0, b.ApplyStockDecrement(0))
	assert.Equal(t, 0, b.ApplyStockDecrement(-2))
	assert.Equal(t, 6, b.Stock)
}

// TestNew_Validation 创建图书的参数校验
func TestNew_Validation(t *testing.T) {
	date := time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC)

	b, err := New("Go语言实战", 1, []uint{1, 2}, date, 5900, 100, "", "实战类图书")
	require.NoError(t, err)
	assert.Equal(t, int64(5900), b.Price)
	assert.Equal(t, 100, b.Stock)

	_, err = New("", 1, nil, date, 100, 1, "", "")
	assert.ErrorIs(t, err, ErrInvalidTitle)

	_, err = New("书名", 1, nil, date, -1, 1, "", "")
	assert.ErrorIs(t, err, ErrInvalidPrice)

	_, err = New("书名", 1, nil, date, 100, -1, "", "")
	assert.ErrorIs(t, err, ErrInvalidStock)
}

// TestBook_Like 点赞计数
func TestBook_Like(t *testing.T) {
	b := &Book{Likes: 2}
	b.Like()
	b.Like()
	assert.Equal(t, 4, b.Likes)
}
