package pricing

// 金额计算约定：所有金额使用int64存储"分"为单位（避免浮点数精度问题）

// 默认运费策略：小计超过50.00元免运费，否则收固定运费5.00元
const (
	DefaultShippingThreshold int64 = 5000 // 免运费阈值（分）
	DefaultShippingFee       int64 = 500  // 固定运费（分）
)

// Policy 运费策略（可通过配置覆盖默认值）
type Policy struct {
	FreeThreshold int64 // 免运费阈值（分）
	Fee           int64 // 固定运费（分）
}

// DefaultPolicy 返回默认运费策略
func DefaultPolicy() Policy {
	return Policy{
		FreeThreshold: DefaultShippingThreshold,
		Fee:           DefaultShippingFee,
	}
}

// Compute 按策略计算结算金额
func (p Policy) Compute(items []Item) Totals {
	return ComputeTotals(items, p.FreeThreshold, p.Fee)
}

// Item 参与计价的条目（单价快照 + 数量）
type Item struct {
	UnitPrice int64 // 单价（分）
	Quantity  int
}

// Totals 结算金额汇总
type Totals struct {
	Subtotal    int64 `json:"subtotal"`     // 商品小计（分）
	ShippingFee int64 `json:"shipping_fee"` // 运费（分）
	Total       int64 `json:"total"`        // 应付总额（分）
}

// ComputeTotals 计算结算金额（纯函数）
// 业务规则：
// 1. 空条目列表没有应付金额，运费也为0
// 2. Subtotal = Σ(单价×数量)
// 3. Subtotal严格大于threshold时免运费，否则收固定运费fee
// 4. Total = Subtotal + ShippingFee，无额外舍入
func ComputeTotals(items []Item, threshold, fee int64) Totals {
	if len(items) == 0 {
		return Totals{}
	}

	var subtotal int64
	for _, item := range items {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}

	shippingFee := fee
	if subtotal > threshold {
		shippingFee = 0
	}

	return Totals{
		Subtotal:    subtotal,
		ShippingFee: shippingFee,
		Total:       subtotal + shippingFee,
	}
}
