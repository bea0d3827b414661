package rental

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/rental"
)

// =========================================
// 内存假实现(只为用例测试服务)
// =========================================

type fakeRentalRepo struct {
	rentals map[uint]*rental.RentalOrder
	nextID  uint
}

func newFakeRentalRepo() *fakeRentalRepo {
	return &fakeRentalRepo{rentals: make(map[uint]*rental.RentalOrder), nextID: 1}
}

func (r *fakeRentalRepo) Create(_ context.Context, ro *rental.RentalOrder) error {
	ro.ID = r.nextID
	r.nextID++
	r.rentals[ro.ID] = ro
	return nil
}

func (r *fakeRentalRepo) FindByID(_ context.Context, id uint) (*rental.RentalOrder, error) {
	ro, ok := r.rentals[id]
	if !ok {
		return nil, rental.ErrRentalNotFound
	}
	cp := *ro
	return &cp, nil
}

func (r *fakeRentalRepo) Update(_ context.Context, ro *rental.RentalOrder) error {
	if _, ok := r.rentals[ro.ID]; !ok {
		return rental.ErrRentalNotFound
	}
	r.rentals[ro.ID] = ro
	return nil
}

func (r *fakeRentalRepo) Delete(_ context.Context, id uint) error {
	if _, ok := r.rentals[id]; !ok {
		return rental.ErrRentalNotFound
	}
	delete(r.rentals, id)
	return nil
}

func (r *fakeRentalRepo) List(_ context.Context, _ rental.ListParams) ([]*rental.RentalOrder, int64, error) {
	out := make([]*rental.RentalOrder, 0, len(r.rentals))
	for _, ro := range r.rentals {
		out = append(out, ro)
	}
	return out, int64(len(out)), nil
}

func (r *fakeRentalRepo) CountSince(_ context.Context, since time.Time) (int64, int64, error) {
	var count, revenue int64
	for _, ro := range r.rentals {
		if !ro.RentalDate.Before(since) {
			count++
			revenue += ro.TotalAmount
		}
	}
	return count, revenue, nil
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
	seen := make(map[uint]struct{})
	var out []*book.Book
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
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

// =========================================
// 用例测试
// =========================================

func date(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

func newTestUseCase(books ...*book.Book) (*UseCase, *fakeRentalRepo) {
	repo := newFakeRentalRepo()
	return NewUseCase(repo, newFakeBookRepo(books...)), repo
}

func validCreateRequest() CreateRequest {
	return CreateRequest{
		CustomerID: 7,
		RentalDate: date("2026-08-01"),
		ReturnDate: date("2026-08-15"),
		Deposit:    5000,
		Items: []ItemInput{
			{BookID: 1, RentalDays: 14, DailyRate: 200},
			{BookID: 2, RentalDays: 7, DailyRate: 300},
		},
	}
}

func TestCreate_ComputesSubtotalsAndTotal(t *testing.T) {
	uc, _ := newTestUseCase(
		&book.Book{ID: 1, Title: "围城", Stock: 3},
		&book.Book{ID: 2, Title: "活着", Stock: 1},
	)

	ro, err := uc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, rental.StatusBorrowed, ro.Status)
	assert.Nil(t, ro.ActualReturnDate)
	require.Len(t, ro.Items, 2)
	assert.Equal(t, int64(2800), ro.Items[0].Subtotal) // 200×14
	assert.Equal(t, int64(2100), ro.Items[1].Subtotal) // 300×7
	assert.Equal(t, int64(4900), ro.TotalAmount)
	assert.Equal(t, int64(5000), ro.Deposit)
	assert.NotZero(t, ro.ID)
}

func TestCreate_BackfillsReturnedRental(t *testing.T) {
	uc, _ := newTestUseCase(&book.Book{ID: 1, Title: "围城"})

	// 补录历史数据:带实际归还日创建,状态直接为returned
	req := validCreateRequest()
	req.Items = req.Items[:1]
	actual := date("2026-08-10")
	req.ActualReturnDate = &actual

	ro, err := uc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, rental.StatusReturned, ro.Status)
	require.NotNil(t, ro.ActualReturnDate)
	assert.Equal(t, actual, *ro.ActualReturnDate)
}

func TestCreate_RespectsManualAmounts(t *testing.T) {
	uc, _ := newTestUseCase(&book.Book{ID: 1, Title: "围城"})

	// 后台手工指定小计与总额时不覆盖
	req := CreateRequest{
		CustomerID:  7,
		RentalDate:  date("2026-08-01"),
		ReturnDate:  date("2026-08-15"),
		TotalAmount: 3000,
		Items:       []ItemInput{{BookID: 1, RentalDays: 14, DailyRate: 200, Subtotal: 2500}},
	}

	ro, err := uc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, int64(2500), ro.Items[0].Subtotal)
	assert.Equal(t, int64(3000), ro.TotalAmount)
}

func TestCreate_Validation(t *testing.T) {
	uc, repo := newTestUseCase(&book.Book{ID: 1, Title: "围城"})
	ctx := context.Background()

	// 明细为空
	req := validCreateRequest()
	req.Items = nil
	_, err := uc.Create(ctx, req)
	assert.ErrorIs(t, err, rental.ErrInvalidRentalItems)

	// 归还日早于起租日
	req = validCreateRequest()
	req.Items = req.Items[:1]
	req.ReturnDate = date("2026-07-20")
	_, err = uc.Create(ctx, req)
	assert.ErrorIs(t, err, rental.ErrInvalidRentalPeriod)

	// 租期天数非法
	req = validCreateRequest()
	req.Items = []ItemInput{{BookID: 1, RentalDays: 0, DailyRate: 200}}
	_, err = uc.Create(ctx, req)
	assert.ErrorIs(t, err, rental.ErrInvalidRentalDays)

	// 图书不存在
	req = validCreateRequest()
	req.Items = []ItemInput{{BookID: 99, RentalDays: 14, DailyRate: 200}}
	_, err = uc.Create(ctx, req)
	assert.ErrorIs(t, err, book.ErrBookNotFound)

	// 校验失败不落库
	assert.Empty(t, repo.rentals)
}

func TestPatch_MarkReturnedDefaultsActualDate(t *testing.T) {
	uc, _ := newTestUseCase(&book.Book{ID: 1, Title: "围城"})
	ctx := context.Background()

	req := validCreateRequest()
	req.Items = req.Items[:1]
	ro, err := uc.Create(ctx, req)
	require.NoError(t, err)

	// 只改状态,实际归还日以当天登记
	status := rental.StatusReturned
	updated, err := uc.Patch(ctx, ro.ID, rental.Patch{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, rental.StatusReturned, updated.Status)
	require.NotNil(t, updated.ActualReturnDate)
	assert.WithinDuration(t, time.Now(), *updated.ActualReturnDate, time.Minute)
}

func TestPatch_ReturnedIsTerminal(t *testing.T) {
	uc, _ := newTestUseCase(&book.Book{ID: 1, Title: "围城"})
	ctx := context.Background()

	req := validCreateRequest()
	req.Items = req.Items[:1]
	actual := date("2026-08-10")
	req.ActualReturnDate = &actual
	ro, err := uc.Create(ctx, req)
	require.NoError(t, err)

	status := rental.StatusBorrowed
	_, err = uc.Patch(ctx, ro.ID, rental.Patch{Status: &status})
	assert.ErrorIs(t, err, rental.ErrInvalidStatusTransition)
}

func TestPatch_EditsFields(t *testing.T) {
	uc, _ := newTestUseCase(&book.Book{ID: 1, Title: "围城"})
	ctx := context.Background()

	req := validCreateRequest()
	req.Items = req.Items[:1]
	ro, err := uc.Create(ctx, req)
	require.NoError(t, err)

	lateFee := int64(600)
	notes := "书角破损"
	updated, err := uc.Patch(ctx, ro.ID, rental.Patch{LateFee: &lateFee, Notes: &notes})
	require.NoError(t, err)
	assert.Equal(t, int64(600), updated.LateFee)
	assert.Equal(t, "书角破损", updated.Notes)
	assert.Equal(t, rental.StatusBorrowed, updated.Status, "未动状态字段")
}

func TestPatch_RejectsInvertedPeriod(t *testing.T) {
	uc, _ := newTestUseCase(&book.Book{ID: 1, Title: "围城"})
	ctx := context.Background()

	req := validCreateRequest()
	req.Items = req.Items[:1]
	ro, err := uc.Create(ctx, req)
	require.NoError(t, err)

	bad := date("2026-07-01")
	_, err = uc.Patch(ctx, ro.ID, rental.Patch{ReturnDate: &bad})
	assert.ErrorIs(t, err, rental.ErrInvalidRentalPeriod)
}

func TestGetAndDelete_NotFound(t *testing.T) {
	uc, _ := newTestUseCase()
	ctx := context.Background()

	_, err := uc.Get(ctx, 42)
	assert.ErrorIs(t, err, rental.ErrRentalNotFound)

	err = uc.Delete(ctx, 42)
	assert.ErrorIs(t, err, rental.ErrRentalNotFound)
}
