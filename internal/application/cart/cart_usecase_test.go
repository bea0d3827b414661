package cart

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/pricing"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

func TestMain(m *testing.M) {
	metrics.Init()
	os.Exit(m.Run())
}

type fakeBookRepo struct {
	books map[uint]*book.Book
}

func newFakeBookRepo(books ...*book.Book) *fakeBookRepo {
	m := make(map[uint]*book.Book)
	for _, b := range books {
		m[b.ID] = b
	}
	return &fakeBookRepo{books: m}
}

func (r *fakeBookRepo) Create(_ context.Context, b *book.Book) error {
	r.books[b.ID] = b
	return nil
}

func (r *fakeBookRepo) FindByID(_ context.Context, id uint) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (r *fakeBookRepo) FindByIDs(_ context.Context, ids []uint) ([]*book.Book, error) {
	var out []*book.Book
	for _, id := range ids {
		if b, ok := r.books[id]; ok {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBookRepo) Patch(_ context.Context, id uint, _ book.Patch) (*book.Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, book.ErrBookNotFound
	}
	return b, nil
}

func (r *fakeBookRepo) Delete(_ context.Context, id uint) error {
	delete(r.books, id)
	return nil
}

func (r *fakeBookRepo) List(_ context.Context, _ book.ListParams) ([]*book.Book, int64, error) {
	return nil, 0, nil
}

func (r *fakeBookRepo) DecrementStock(_ context.Context, id uint, quantity int) (int, error) {
	b, ok := r.books[id]
	if !ok {
		return 0, book.ErrBookNotFound
	}
	return b.ApplyStockDecrement(quantity), nil
}

func (r *fakeBookRepo) IncrementStock(_ context.Context, id uint, quantity int) error {
	b, ok := r.books[id]
	if !ok {
		return book.ErrBookNotFound
	}
	b.Stock += quantity
	return nil
}

func (r *fakeBookRepo) IncrementLikes(_ context.Context, id uint) (int, error) {
	b, ok := r.books[id]
	if !ok {
		return 0, book.ErrBookNotFound
	}
	b.Likes++
	return b.Likes, nil
}

func (r *fakeBookRepo) Stats(_ context.Context, _ int) (int64, int64, int64, error) {
	return 0, 0, 0, nil
}

func newTestUseCase(books ...*book.Book) *UseCase {
	return NewUseCase(memory.NewCartStore(), newFakeBookRepo(books...), pricing.DefaultPolicy())
}

func TestAddItem_CreatesCartAndSnapshotsPrice(t *testing.T) {
	uc := newTestUseCase(&book.Book{ID: 1, Title: "围城", Price: 2000, Stock: 10})
	ctx := context.Background()

	view, err := uc.AddItem(ctx, "", 1, 2)
	require.NoError(t, err)

	assert.NotEmpty(t, view.CartID, "首次加购应生成购物车ID")
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(2000), view.Items[0].UnitPrice, "单价来自图书快照")
	assert.Equal(t, "围城", view.Items[0].Title)
	assert.Equal(t, 2, view.ItemCount)
	assert.Equal(t, int64(4000), view.Subtotal)
	assert.Equal(t, int64(500), view.ShippingFee, "小计未超过免邮门槛")
	assert.Equal(t, int64(4500), view.Total)
}

func TestAddItem_MergesSameBook(t *testing.T) {
	uc := newTestUseCase(&book.Book{ID: 1, Title: "围城", Price: 2000, Stock: 10})
	ctx := context.Background()

	view, err := uc.AddItem(ctx, "", 1, 2)
	require.NoError(t, err)

	view, err = uc.AddItem(ctx, view.CartID, 1, 1)
	require.NoError(t, err)

	require.Len(t, view.Items, 1, "同一图书合并为一条明细")
	assert.Equal(t, 3, view.Items[0].Quantity)
	assert.Equal(t, int64(6000), view.Subtotal)
	assert.Equal(t, int64(0), view.ShippingFee, "小计超过免邮门槛后免运费")
	assert.Equal(t, int64(6000), view.Total)
}

func TestAddItem_RejectsOverStock(t *testing.T) {
	uc := newTestUseCase(&book.Book{ID: 1, Title: "围城", Price: 2000, Stock: 3})
	ctx := context.Background()

	view, err := uc.AddItem(ctx, "", 1, 2)
	require.NoError(t, err)

	// 已有2本,再加2本超过库存3
	_, err = uc.AddItem(ctx, view.CartID, 1, 2)
	assert.ErrorIs(t, err, cart.ErrInsufficientStock)

	// 原有明细不受影响
	view, err = uc.Get(ctx, view.CartID)
	require.NoError(t, err)
	assert.Equal(t, 2, view.ItemCount)
}

func TestAddItem_UnknownBook(t *testing.T) {
	uc := newTestUseCase()

	_, err := uc.AddItem(context.Background(), "", 99, 1)
	assert.ErrorIs(t, err, book.ErrBookNotFound)
}

func TestAddItem_InvalidQuantity(t *testing.T) {
	uc := newTestUseCase(&book.Book{ID: 1, Price: 2000, Stock: 10})

	_, err := uc.AddItem(context.Background(), "", 1, 0)
	assert.ErrorIs(t, err, cart.ErrInvalidQuantity)
}

func TestUpdateQuantity(t *testing.T) {
	uc := newTestUseCase(&book.Book{ID: 1, Title: "围城", Price: 2000, Stock: 5})
	ctx := context.Background()

	view, err := uc.AddItem(ctx, "", 1, 2)
	require.NoError(t, err)
	cartID := view.CartID

	view, err = uc.UpdateQuantity(ctx, cartID, 1, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, view.ItemCount)

	// 超过库存
	_, err = uc.UpdateQuantity(ctx, cartID, 1, 6)
	assert.ErrorIs(t, err, cart.ErrInsufficientStock)

	// 数量0等价于移除
	view, err = uc.UpdateQuantity(ctx, cartID, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
	assert.Equal(t, int64(0), view.Total)
}

func TestRemoveAndClear(t *testing.T) {
	uc := newTestUseCase(
		&book.Book{ID: 1, Title: "围城", Price: 2000, Stock: 10},
		&book.Book{ID: 2, Title: "活着", Price: 1500, Stock: 10},
	)
	ctx := context.Background()

	view, err := uc.AddItem(ctx, "", 1, 1)
	require.NoError(t, err)
	cartID := view.CartID
	_, err = uc.AddItem(ctx, cartID, 2, 1)
	require.NoError(t, err)

	view, err = uc.RemoveItem(ctx, cartID, 1)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, uint(2), view.Items[0].BookID)

	view, err = uc.Clear(ctx, cartID)
	require.NoError(t, err)
	assert.Empty(t, view.Items)
}

func TestGet_NotFound(t *testing.T) {
	uc := newTestUseCase()

	_, err := uc.Get(context.Background(), "no-such-cart")
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
}
