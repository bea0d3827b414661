package metrics

import (
	"testing"
)

// TestInit_Idempotent 重复调用Init不应panic（promauto重复注册会panic）
func TestInit_Idempotent(t *testing.T) {
	Init()
	Init()

	if HTTPRequestsTotal == nil {
		t.Fatal("HTTPRequestsTotal未初始化")
	}
	if OrdersPlacedTotal == nil {
		t.Fatal("OrdersPlacedTotal未初始化")
	}

	// 指标可正常打点
	HTTPRequestsTotal.WithLabelValues("GET", "/api/books", "200").Inc()
	OrdersPlacedTotal.Inc()
	SagaExecutionsTotal.WithLabelValues("success").Inc()
}
