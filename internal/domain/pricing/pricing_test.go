package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestComputeTotals 测试运费阈值规则
// 规则：小计严格大于5000分（50元）时免运费，否则收500分（5元）
func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name            string
		items           []Item
		wantSubtotal    int64
		wantShippingFee int64
		wantTotal       int64
	}{
		{
			name:            "低于阈值收固定运费",
			items:           []Item{{UnitPrice: 2000, Quantity: 2}}, // 40元
			wantSubtotal:    4000,
			wantShippingFee: 500,
			wantTotal:       4500,
		},
		{
			name:            "超过阈值免运费",
			items:           []Item{{UnitPrice: 3000, Quantity: 2}}, // 60元
			wantSubtotal:    6000,
			wantShippingFee: 0,
			wantTotal:       6000,
		},
		{
			name:            "恰好等于阈值仍收运费",
			items:           []Item{{UnitPrice: 5000, Quantity: 1}}, // 50元整
			wantSubtotal:    5000,
			wantShippingFee: 500,
			wantTotal:       5500,
		},
		{
			name:            "空列表金额全为0且不收运费",
			items:           nil,
			wantSubtotal:    0,
			wantShippingFee: 0,
			wantTotal:       0,
		},
		{
			name:            "空切片与nil等价",
			items:           []Item{},
			wantSubtotal:    0,
			wantShippingFee: 0,
			wantTotal:       0,
		},
		{
			name: "多条目累加",
			items: []Item{
				{UnitPrice: 1500, Quantity: 1},
				{UnitPrice: 2500, Quantity: 3},
			},
			wantSubtotal:    9000,
			wantShippingFee: 0,
			wantTotal:       9000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeTotals(tt.items, DefaultShippingThreshold, DefaultShippingFee)
			assert.Equal(t, tt.wantSubtotal, got.Subtotal)
			assert.Equal(t, tt.wantShippingFee, got.ShippingFee)
			assert.Equal(t, tt.wantTotal, got.Total)
		})
	}
}

// TestComputeTotals_CustomPolicy 测试自定义阈值与运费
func TestComputeTotals_CustomPolicy(t *testing.T) {
	items := []Item{{UnitPrice: 1000, Quantity: 1}}

	got := ComputeTotals(items, 999, 300)
	assert.Equal(t, int64(0), got.ShippingFee, "小计1000>阈值999应免运费")

	got = ComputeTotals(items, 1000, 300)
	assert.Equal(t, int64(300), got.ShippingFee, "小计1000=阈值1000应收运费")
	assert.Equal(t, int64(1300), got.Total)
}
