package cart

import (
	"context"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/pricing"
	"github.com/xiebiao/bookshop/pkg/metrics"
)

// UseCase 购物车用例
// 设计说明:
// 1. 加购时从图书仓储取价格快照,不信任前端传入的价格
// 2. 加购数量不能超过图书当前库存(购物车内已有数量累计计算)
// 3. 购物车不存在时按需创建(游客购物车,无需登录)
type UseCase struct {
	cartRepo cart.Repository
	bookRepo book.Repository
	pricing  pricing.Policy
}

// NewUseCase 创建购物车用例
func NewUseCase(cartRepo cart.Repository, bookRepo book.Repository, policy pricing.Policy) *UseCase {
	return &UseCase{
		cartRepo: cartRepo,
		bookRepo: bookRepo,
		pricing:  policy,
	}
}

// View 购物车视图DTO
// 金额汇总随购物车一起返回,前端不做金额计算
type View struct {
	CartID      string          `json:"cart_id"`
	Items       []cart.LineItem `json:"items"`
	ItemCount   int             `json:"item_count"`
	Subtotal    int64           `json:"subtotal"`
	ShippingFee int64           `json:"shipping_fee"`
	Total       int64           `json:"total"`
}

// AddItem 加入购物车
// cartID为空时创建新购物车;同一图书重复加购合并数量
func (uc *UseCase) AddItem(ctx context.Context, cartID string, bookID uint, quantity int) (*View, error) {
	if quantity <= 0 {
		return nil, cart.ErrInvalidQuantity
	}

	b, err := uc.bookRepo.FindByID(ctx, bookID)
	if err != nil {
		return nil, err
	}

	c, err := uc.findOrCreate(ctx, cartID)
	if err != nil {
		return nil, err
	}

	// 库存校验:购物车内已有数量+新增数量不能超过当前库存
	if c.Quantity(bookID)+quantity > b.Stock {
		return nil, cart.ErrInsufficientStock
	}

	item := cart.LineItem{
		BookID:    b.ID,
		Title:     b.Title,
		UnitPrice: b.Price,
		CoverURL:  b.CoverURL,
		Quantity:  quantity,
	}
	if err := c.AddItem(item); err != nil {
		return nil, err
	}

	if err := uc.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	metrics.CartItemsAdded.Add(float64(quantity))
	return uc.toView(c), nil
}

// UpdateQuantity 修改购物车明细数量
// 数量<=0等价于移除该明细
func (uc *UseCase) UpdateQuantity(ctx context.Context, cartID string, bookID uint, quantity int) (*View, error) {
	c, err := uc.cartRepo.Find(ctx, cartID)
	if err != nil {
		return nil, err
	}

	if quantity > 0 {
		b, err := uc.bookRepo.FindByID(ctx, bookID)
		if err != nil {
			return nil, err
		}
		if quantity > b.Stock {
			return nil, cart.ErrInsufficientStock
		}
	}

	c.UpdateQuantity(bookID, quantity)

	if err := uc.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return uc.toView(c), nil
}

// RemoveItem 移除购物车明细(不存在时为无操作)
func (uc *UseCase) RemoveItem(ctx context.Context, cartID string, bookID uint) (*View, error) {
	c, err := uc.cartRepo.Find(ctx, cartID)
	if err != nil {
		return nil, err
	}

	c.RemoveItem(bookID)

	if err := uc.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return uc.toView(c), nil
}

// Clear 清空购物车
func (uc *UseCase) Clear(ctx context.Context, cartID string) (*View, error) {
	c, err := uc.cartRepo.Find(ctx, cartID)
	if err != nil {
		return nil, err
	}

	c.Clear()

	if err := uc.cartRepo.Save(ctx, c); err != nil {
		return nil, err
	}
	return uc.toView(c), nil
}

// Get 查看购物车
func (uc *UseCase) Get(ctx context.Context, cartID string) (*View, error) {
	c, err := uc.cartRepo.Find(ctx, cartID)
	if err != nil {
		return nil, err
	}
	return uc.toView(c), nil
}

// findOrCreate 查找或创建购物车
func (uc *UseCase) findOrCreate(ctx context.Context, cartID string) (*cart.Cart, error) {
	if cartID == "" {
		return cart.New(cart.GenerateCartID()), nil
	}
	c, err := uc.cartRepo.Find(ctx, cartID)
	if err == nil {
		return c, nil
	}
	if err == cart.ErrCartNotFound {
		return cart.New(cartID), nil
	}
	return nil, err
}

// toView 构建购物车视图(含金额汇总)
func (uc *UseCase) toView(c *cart.Cart) *View {
	totals := uc.pricing.Compute(c.PricingItems())
	return &View{
		CartID:      c.ID,
		Items:       c.Items,
		ItemCount:   c.TotalItemCount(),
		Subtotal:    totals.Subtotal,
		ShippingFee: totals.ShippingFee,
		Total:       totals.Total,
	}
}
