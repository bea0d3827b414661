package checkout

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/checkout"
	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/domain/pricing"
	"github.com/xiebiao/bookshop/internal/infrastructure/persistence/memory"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

func TestMain(m *testing.M) {
	metrics.Init()
	os.Exit(m.Run())
}

// =========================================
// 内存假实现(只为用例测试服务)
// =========================================

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

type fakeCustomerRepo struct {
	customers map[uint]*customer.Customer
	nextID    uint
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: make(map[uint]*customer.Customer), nextID: 1}
}

func (r *fakeCustomerRepo) Create(_ context.Context, c *customer.Customer) error {
	c.ID = r.nextID
	r.nextID++
	r.customers[c.ID] = c
	return nil
}

func (r *fakeCustomerRepo) FindByID(_ context.Context, id uint) (*customer.Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, customer.ErrCustomerNotFound
	}
	return c, nil
}

func (r *fakeCustomerRepo) FindByEmail(_ context.Context, email string) (*customer.Customer, error) {
	for _, c := range r.customers {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, customer.ErrCustomerNotFound
}

func (r *fakeCustomerRepo) Patch(_ context.Context, id uint, _ customer.Patch) (*customer.Customer, error) {
	return r.customers[id], nil
}

func (r *fakeCustomerRepo) Delete(_ context.Context, id uint) error {
	delete(r.customers, id)
	return nil
}

func (r *fakeCustomerRepo) List(_ context.Context, _ customer.ListParams) ([]*customer.Customer, int64, error) {
	return nil, 0, nil
}

func (r *fakeCustomerRepo) CountSince(_ context.Context, _ time.Time) (int64, error) {
	return int64(len(r.customers)), nil
}

type fakeOrderRepo struct {
	orders     map[uint]*order.Order
	nextID     uint
	failCreate error // 设置后Create返回该错误(模拟数据库故障)
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[uint]*order.Order), nextID: 1}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *order.Order) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	o.ID = r.nextID
	r.nextID++
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) FindByID(_ context.Context, id uint) (*order.Order, error) {
	o, ok := r.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return o, nil
}

func (r *fakeOrderRepo) FindByOrderNo(_ context.Context, orderNo string) (*order.Order, error) {
	for _, o := range r.orders {
		if o.OrderNo == orderNo {
			return o, nil
		}
	}
	return nil, order.ErrOrderNotFound
}

func (r *fakeOrderRepo) Update(_ context.Context, o *order.Order) error {
	r.orders[o.ID] = o
	return nil
}

func (r *fakeOrderRepo) Delete(_ context.Context, id uint) error {
	delete(r.orders, id)
	return nil
}

func (r *fakeOrderRepo) List(_ context.Context, _ order.ListParams) ([]*order.Order, int64, error) {
	return nil, 0, nil
}

func (r *fakeOrderRepo) CountSince(_ context.Context, _ time.Time) (int64, int64, error) {
	return 0, 0, nil
}

type fakePublisher struct {
	events []string
}

func (p *fakePublisher) Publish(routingKey string, _ interface{}) error {
	p.events = append(p.events, routingKey)
	return nil
}

// =========================================
// 测试环境搭建
// =========================================

type testEnv struct {
	cartRepo     cart.Repository
	sessionRepo  checkout.Repository
	bookRepo     *fakeBookRepo
	customerRepo *fakeCustomerRepo
	orderRepo    *fakeOrderRepo
	publisher    *fakePublisher
	uc           *PlaceOrderUseCase
}

func newTestEnv(t *testing.T, books ...*book.Book) *testEnv {
	t.Helper()
	env := &testEnv{
		cartRepo:     memory.NewCartStore(),
		sessionRepo:  memory.NewCheckoutStore(),
		bookRepo:     newFakeBookRepo(books...),
		customerRepo: newFakeCustomerRepo(),
		orderRepo:    newFakeOrderRepo(),
		publisher:    &fakePublisher{},
	}
	env.uc = NewPlaceOrderUseCase(
		env.sessionRepo,
		env.cartRepo,
		env.bookRepo,
		env.customerRepo,
		env.orderRepo,
		pricing.DefaultPolicy(),
		env.publisher,
	)
	return env
}

// prepare 构造一个已走到确认步骤的购物车+会话
func (env *testEnv) prepare(t *testing.T, cartID string, lines ...cart.LineItem) {
	t.Helper()
	ctx := context.Background()

	c := cart.New(cartID)
	for _, line := range lines {
		require.NoError(t, c.AddItem(line))
	}
	require.NoError(t, env.cartRepo.Save(ctx, c))

	sess := checkout.NewSession(cartID)
	require.NoError(t, sess.SubmitShipping(checkout.ShippingInfo{
		Name:    "李四",
		Email:   "lisi@example.com",
		Phone:   "13900139000",
		Address: "上海市浦东新区xx路2号",
	}))
	require.NoError(t, sess.SubmitPayment(order.PaymentCashOnDelivery))
	require.NoError(t, env.sessionRepo.Save(ctx, sess))
}

// =========================================
// 测试用例
// =========================================

// TestPlaceOrder_Success 正常下单:金额计算、订单落库、购物车清空
func TestPlaceOrder_Success(t *testing.T) {
	ctx := context.Background()
	b := &book.Book{ID: 1, Title: "Go语言实战", Price: 2000, Stock: 10}
	env := newTestEnv(t, b)
	env.prepare(t, "CRT100", cart.LineItem{BookID: 1, Title: b.Title, UnitPrice: 2000, Quantity: 2})

	result, err := env.uc.Execute(ctx, "CRT100")
	require.NoError(t, err)

	// 小计4000不超过免邮门槛5000,收运费500
	assert.Equal(t, int64(500), result.ShippingFee)
	assert.Equal(t, int64(4500), result.TotalAmount)
	assert.Equal(t, string(order.StatusPending), result.Status)
	assert.NotZero(t, result.OrderID)

	// 客户档案:注册时间即下单时间,订单计数从1开始
	cust, err := env.customerRepo.FindByID(ctx, result.CustomerID)
	require.NoError(t, err)
	assert.Equal(t, "李四", cust.Name)
	assert.Equal(t, 1, cust.TotalOrders)

	// 订单明细带价格快照
	ord, err := env.orderRepo.FindByID(ctx, result.OrderID)
	require.NoError(t, err)
	require.Len(t, ord.Items, 1)
	assert.Equal(t, int64(2000), ord.Items[0].UnitPrice)
	assert.Equal(t, int64(4000), ord.Items[0].Subtotal)

	// 库存已扣减
	assert.Equal(t, 8, b.Stock)

	// 购物车已清空,会话进入终态
	_, err = env.cartRepo.Find(ctx, "CRT100")
	assert.ErrorIs(t, err, cart.ErrCartNotFound)
	sess, err := env.sessionRepo.Find(ctx, "CRT100")
	require.NoError(t, err)
	assert.Equal(t, checkout.StepSubmitted, sess.Step)
	assert.Equal(t, result.OrderID, sess.OrderID)

	// 事件已发布
	assert.Equal(t, []string{"order.created"}, env.publisher.events)
}

// TestPlaceOrder_FreeShipping 小计超过免邮门槛时运费为0
func TestPlaceOrder_FreeShipping(t *testing.T) {
	ctx := context.Background()
	b := &book.Book{ID: 1, Title: "分布式系统", Price: 3000, Stock: 10}
	env := newTestEnv(t, b)
	env.prepare(t, "CRT101", cart.LineItem{BookID: 1, UnitPrice: 3000, Quantity: 2})

	result, err := env.uc.Execute(ctx, "CRT101")
	require.NoError(t, err)

	assert.Equal(t, int64(0), result.ShippingFee)
	assert.Equal(t, int64(6000), result.TotalAmount)
}

// TestPlaceOrder_StockClamp 库存不足时在0处截断,下单照常成功
func TestPlaceOrder_StockClamp(t *testing.T) {
	ctx := context.Background()
	b := &book.Book{ID: 1, Title: "绝版书", Price: 1000, Stock: 3}
	env := newTestEnv(t, b)
	env.prepare(t, "CRT102", cart.LineItem{BookID: 1, UnitPrice: 1000, Quantity: 5})

	result, err := env.uc.Execute(ctx, "CRT102")
	require.NoError(t, err)

	// 库存3、购买5:实际扣减3,库存归0
	assert.Equal(t, 0, b.Stock)

	// 订单按购买数量5记录
	ord, err := env.orderRepo.FindByID(ctx, result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, 5, ord.Items[0].Quantity)
}

// TestPlaceOrder_RestoresStockOnMidDecrementFailure 扣减进行到一半失败时,
// 已扣减的条目必须恢复,不能只回滚客户和订单而漏掉库存
func TestPlaceOrder_RestoresStockOnMidDecrementFailure(t *testing.T) {
	ctx := context.Background()
	b := &book.Book{ID: 1, Title: "Go语言实战", Price: 2000, Stock: 5}
	env := newTestEnv(t, b)
	// 第二条明细指向不存在的图书(模拟并发下架),第一条已扣减后才失败
	env.prepare(t, "CRT106",
		cart.LineItem{BookID: 1, UnitPrice: 2000, Quantity: 2},
		cart.LineItem{BookID: 2, UnitPrice: 1500, Quantity: 1},
	)

	_, err := env.uc.Execute(ctx, "CRT106")
	require.Error(t, err)

	// 客户和订单已回滚
	assert.Empty(t, env.customerRepo.customers)
	assert.Empty(t, env.orderRepo.orders)

	// 第一条明细已扣减的2本必须恢复
	assert.Equal(t, 5, b.Stock)

	// 购物车保持原样,会话停留在确认步骤
	c, err := env.cartRepo.Find(ctx, "CRT106")
	require.NoError(t, err)
	assert.Len(t, c.Items, 2)
	sess, err := env.sessionRepo.Find(ctx, "CRT106")
	require.NoError(t, err)
	assert.Equal(t, checkout.StepConfirmation, sess.Step)

	assert.Empty(t, env.publisher.events)
}

// TestPlaceOrder_CompensationOnFailure 中途失败时逆序补偿,购物车保持原样可重试
func TestPlaceOrder_CompensationOnFailure(t *testing.T) {
	ctx := context.Background()
	b := &book.Book{ID: 1, Title: "Go语言实战", Price: 2000, Stock: 10}
	env := newTestEnv(t, b)
	env.prepare(t, "CRT103", cart.LineItem{BookID: 1, UnitPrice: 2000, Quantity: 2})

	// 模拟订单落库失败
	env.orderRepo.failCreate = errors.New("数据库连接中断")

	_, err := env.uc.Execute(ctx, "CRT103")
	require.Error(t, err)

	// 客户档案已回滚
	assert.Empty(t, env.customerRepo.customers)

	// 库存未动(扣减步骤尚未执行)
	assert.Equal(t, 10, b.Stock)

	// 购物车保持原样,会话停留在确认步骤,可修正后重试
	c, err := env.cartRepo.Find(ctx, "CRT103")
	require.NoError(t, err)
	assert.Len(t, c.Items, 1)
	sess, err := env.sessionRepo.Find(ctx, "CRT103")
	require.NoError(t, err)
	assert.Equal(t, checkout.StepConfirmation, sess.Step)

	// 未发布任何事件
	assert.Empty(t, env.publisher.events)
}

// TestPlaceOrder_RequiresConfirmation 未到确认步骤不能提交
func TestPlaceOrder_RequiresConfirmation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	c := cart.New("CRT104")
	require.NoError(t, c.AddItem(cart.LineItem{BookID: 1, UnitPrice: 1000, Quantity: 1}))
	require.NoError(t, env.cartRepo.Save(ctx, c))
	require.NoError(t, env.sessionRepo.Save(ctx, checkout.NewSession("CRT104")))

	_, err := env.uc.Execute(ctx, "CRT104")
	assert.ErrorIs(t, err, checkout.ErrStepNotAllowed)
}

// TestPlaceOrder_EmptyCart 空购物车不能下单
func TestPlaceOrder_EmptyCart(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)

	c := cart.New("CRT105")
	require.NoError(t, env.cartRepo.Save(ctx, c))

	sess := checkout.NewSession("CRT105")
	require.NoError(t, sess.SubmitShipping(checkout.ShippingInfo{
		Name: "王五", Email: "wangwu@example.com", Phone: "13700137000", Address: "广州市xx路",
	}))
	require.NoError(t, sess.SubmitPayment(order.PaymentBankTransfer))
	require.NoError(t, env.sessionRepo.Save(ctx, sess))

	_, err := env.uc.Execute(ctx, "CRT105")
	assert.ErrorIs(t, err, cart.ErrCartEmpty)
}
