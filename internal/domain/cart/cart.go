package cart

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/pricing"
)

// LineItem 购物车行项
// 设计说明:
// 1. 保存加入时的图书快照(标题/单价/封面),不跨聚合引用Book对象
// 2. 单价使用int64存储"分"为单位
// 3. 快照价格仅用于展示;下单时以数据库当前价格为准(防止改价)
type LineItem struct {
	BookID    uint   `json:"book_id"`
	Title     string `json:"title"`
	UnitPrice int64  `json:"unit_price"` // 加入时单价(分)
	CoverURL  string `json:"cover_url"`
	Quantity  int    `json:"quantity"`
}

// Cart 购物车(聚合根)
// 设计说明:
// 1. 以显式的Store对象持有,通过依赖注入传递(不使用全局单例)
// 2. 所有变更只通过本类型定义的操作进行,保证单写者语义
// 3. 会话级生命周期:结算成功或显式清空后丢弃
type Cart struct {
	ID        string     `json:"id"`
	Items     []LineItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// New 创建空购物车(工厂方法)
func New(id string) *Cart {
	now := time.Now()
	return &Cart{
		ID:        id,
		Items:     make([]LineItem, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// GenerateCartID 生成购物车会话ID
// 格式:CRT + 时间戳(秒) + 6位随机数,全局基本唯一且不可预测
func GenerateCartID() string {
	timestamp := time.Now().Unix()
	random := rand.Intn(1000000)
	return fmt.Sprintf("CRT%d%06d", timestamp, random)
}

// AddItem 添加行项
// 业务规则:
// 1. 同一图书已在购物车中时,数量累加(合并行项)
// 2. 否则追加新行项
// 3. 本层不做库存上限校验(由应用层读取最新库存校验)
func (c *Cart) AddItem(item LineItem) error {
	if item.Quantity <= 0 {
		return ErrInvalidQuantity
	}

	for i := range c.Items {
		if c.Items[i].BookID == item.BookID {
			c.Items[i].Quantity += item.Quantity
			c.UpdatedAt = time.Now()
			return nil
		}
	}

	c.Items = append(c.Items, item)
	c.UpdatedAt = time.Now()
	return nil
}

// UpdateQuantity 设置行项数量
// 业务规则:quantity <= 0 时直接移除该行项(幂等:重复调用为no-op)
// 图书不在购物车中时静默忽略
func (c *Cart) UpdateQuantity(bookID uint, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(bookID)
		return
	}

	for i := range c.Items {
		if c.Items[i].BookID == bookID {
			c.Items[i].Quantity = quantity
			c.UpdatedAt = time.Now()
			return
		}
	}
}

// RemoveItem 移除行项(不存在时静默忽略)
func (c *Cart) RemoveItem(bookID uint) {
	for i := range c.Items {
		if c.Items[i].BookID == bookID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			c.UpdatedAt = time.Now()
			return
		}
	}
}

// Clear 清空所有行项
func (c *Cart) Clear() {
	c.Items = c.Items[:0]
	c.UpdatedAt = time.Now()
}

// TotalPrice 商品总价 = Σ(单价×数量),单位:分
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.UnitPrice * int64(item.Quantity)
	}
	return total
}

// TotalItemCount 商品总件数 = Σ数量
func (c *Cart) TotalItemCount() int {
	var count int
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// IsEmpty 购物车是否为空
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Quantity 返回指定图书当前数量(不存在返回0)
// 用于应用层做"累加后不超过库存"的校验
func (c *Cart) Quantity(bookID uint) int {
	for _, item := range c.Items {
		if item.BookID == bookID {
			return item.Quantity
		}
	}
	return 0
}

// PricingItems 转换为计价条目
func (c *Cart) PricingItems() []pricing.Item {
	items := make([]pricing.Item, len(c.Items))
	for i, item := range c.Items {
		items[i] = pricing.Item{
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		}
	}
	return items
}
