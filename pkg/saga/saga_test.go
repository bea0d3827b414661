package saga

import (
	"context"
	"errors"
	"testing"
	"time"
)

// TestSaga_Execute_Success 测试所有步骤成功的场景
func TestSaga_Execute_Success(t *testing.T) {
	executed := make([]string, 0)

	s := New(5 * time.Second)

	s.AddStep("创建客户",
		func(ctx context.Context) error {
			executed = append(executed, "创建客户")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "删除客户")
			return nil
		},
	)

	s.AddStep("创建订单",
		func(ctx context.Context) error {
			executed = append(executed, "创建订单")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "删除订单")
			return nil
		},
	)

	if err := s.Execute(context.Background()); err != nil {
		t.Fatalf("Saga执行失败: %v", err)
	}

	if len(executed) != 2 {
		t.Errorf("期望执行2个步骤，实际执行%d个", len(executed))
	}
	if executed[0] != "创建客户" || executed[1] != "创建订单" {
		t.Errorf("执行顺序错误: %v", executed)
	}
	if s.Compensated() {
		t.Error("成功场景不应发生补偿")
	}
	if len(s.Log()) != 2 {
		t.Errorf("步骤日志应有2条，实际%d条", len(s.Log()))
	}
}

// TestSaga_Execute_FailureAndCompensate 测试步骤失败触发逆序补偿
func TestSaga_Execute_FailureAndCompensate(t *testing.T) {
	executed := make([]string, 0)

	s := New(5 * time.Second)

	s.AddStep("创建客户",
		func(ctx context.Context) error {
			executed = append(executed, "创建客户")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "删除客户")
			return nil
		},
	)

	s.AddStep("创建订单",
		func(ctx context.Context) error {
			executed = append(executed, "创建订单")
			return nil
		},
		func(ctx context.Context) error {
			executed = append(executed, "删除订单")
			return nil
		},
	)

	s.AddStep("扣减库存",
		func(ctx context.Context) error {
			return errors.New("数据库连接断开")
		},
		nil,
	)

	err := s.Execute(context.Background())
	if err == nil {
		t.Fatal("期望Saga执行失败")
	}

	// 前2步正向执行 + 逆序补偿：删除订单在删除客户之前
	want := []string{"创建客户", "创建订单", "删除订单", "删除客户"}
	if len(executed) != len(want) {
		t.Fatalf("执行记录数量错误: %v", executed)
	}
	for i := range want {
		if executed[i] != want[i] {
			t.Errorf("第%d步期望%s，实际%s", i, want[i], executed[i])
		}
	}

	if !s.Compensated() {
		t.Error("失败场景应发生补偿")
	}
}

// TestSaga_Execute_CompensateFailureContinues 测试补偿失败不中断后续补偿
func TestSaga_Execute_CompensateFailureContinues(t *testing.T) {
	customerDeleted := false

	s := New(5 * time.Second)

	s.AddStep("创建客户",
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error {
			customerDeleted = true
			return nil
		},
	)

	s.AddStep("创建订单",
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error {
			return errors.New("删除订单失败")
		},
	)

	s.AddStep("扣减库存",
		func(ctx context.Context) error {
			return errors.New("库存服务不可用")
		},
		nil,
	)

	if err := s.Execute(context.Background()); err == nil {
		t.Fatal("期望Saga执行失败")
	}

	if !customerDeleted {
		t.Error("删除订单补偿失败后，仍应继续补偿删除客户")
	}

	// 步骤日志应记录补偿失败原因
	log := s.Log()
	if log[1].CompensateErr == nil {
		t.Error("步骤日志应记录删除订单的补偿失败")
	}
	if log[0].CompensateErr != nil {
		t.Error("删除客户补偿成功，不应记录错误")
	}
}

// TestSaga_Execute_Timeout 测试整体超时触发补偿
func TestSaga_Execute_Timeout(t *testing.T) {
	compensated := false

	s := New(50 * time.Millisecond)

	s.AddStep("创建客户",
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) error {
			compensated = true
			return nil
		},
	)

	s.AddStep("慢操作",
		func(ctx context.Context) error {
			time.Sleep(100 * time.Millisecond)
			return nil
		},
		nil,
	)

	s.AddStep("不应执行",
		func(ctx context.Context) error {
			t.Error("超时后不应继续执行后续步骤")
			return nil
		},
		nil,
	)

	if err := s.Execute(context.Background()); err == nil {
		t.Fatal("期望Saga超时失败")
	}

	if !compensated {
		t.Error("超时后应补偿已完成的步骤")
	}
}
