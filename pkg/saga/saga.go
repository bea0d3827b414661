// Package saga 提供带步骤日志的Saga事务协调器
//
// Saga模式核心思想：
// 1. 将一个跨资源的长事务拆分为多个有序的本地短事务
// 2. 每个短事务有对应的补偿操作
// 3. 某步失败时，按逆序执行已完成步骤的补偿操作（最终一致性）
//
// 本实现显式记录每一步的执行/补偿结果（步骤日志），
// 便于失败后排查"哪些资源已创建、哪些已回滚"
package saga

import (
	"context"
	"fmt"
	"time"
)

// Step 表示Saga中的一个步骤
// Action是正向操作（如创建订单），Compensate是补偿操作（如删除订单）；
// 二者都必须支持幂等（允许重试）
type Step struct {
	Name       string
	Action     func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Entry 步骤日志条目
type Entry struct {
	Name          string    // 步骤名称
	CompletedAt   time.Time // Action完成时间
	Compensated   bool      // 是否已执行补偿
	CompensateErr error     // 补偿失败原因（nil表示补偿成功或未补偿）
}

// Saga 表示一个Saga事务
type Saga struct {
	steps   []Step
	log     []Entry       // 已完成步骤的日志（补偿时逆序遍历）
	timeout time.Duration // 整体超时时间
}

// New 创建一个新的Saga事务
//
// 示例：
//
//	s := saga.New(30 * time.Second)
//	s.AddStep("创建客户", createCustomer, deleteCustomer)
//	s.AddStep("创建订单", createOrder, deleteOrder)
//	err := s.Execute(ctx)
func New(timeout time.Duration) *Saga {
	return &Saga{
		steps:   make([]Step, 0),
		timeout: timeout,
	}
}

// AddStep 添加一个Saga步骤
// 步骤按添加顺序执行，按逆序补偿；
// Compensate可以为nil（如最后一步通常无需补偿）
func (s *Saga) AddStep(name string, action, compensate func(ctx context.Context) error) {
	s.steps = append(s.steps, Step{
		Name:       name,
		Action:     action,
		Compensate: compensate,
	})
}

// Execute 执行Saga事务
// 1. 按顺序执行每个步骤的Action，完成后写入步骤日志
// 2. 某步失败或整体超时时，逆序补偿已完成的步骤
// 3. 补偿失败不会中断后续补偿（尽最大努力），失败原因记入日志
func (s *Saga) Execute(ctx context.Context) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	for i := range s.steps {
		step := s.steps[i]

		select {
		case <-ctx.Done():
			// 补偿使用新Context，避免补偿本身也被超时打断
			s.compensate(context.Background())
			return fmt.Errorf("saga超时: %w", ctx.Err())
		default:
		}

		if step.Action != nil {
			if err := step.Action(ctx); err != nil {
				s.compensate(context.Background())
				return fmt.Errorf("步骤[%d:%s]执行失败: %w", i, step.Name, err)
			}
		}

		s.log = append(s.log, Entry{
			Name:        step.Name,
			CompletedAt: time.Now(),
		})
	}

	return nil
}

// Log 返回步骤日志（副本）
// 执行完毕后可用于审计：成功时全部Compensated=false，
// 失败时可以看到哪些步骤被回滚、哪些补偿失败需要人工介入
func (s *Saga) Log() []Entry {
	out := make([]Entry, len(s.log))
	copy(out, s.log)
	return out
}

// Compensated 返回是否发生过补偿
func (s *Saga) Compensated() bool {
	for _, e := range s.log {
		if e.Compensated {
			return true
		}
	}
	return false
}

// compensate 逆序补偿已完成的步骤
// 后执行的步骤可能依赖先执行的步骤，所以必须逆序；
// 单个补偿失败只记录日志，不阻止其余补偿
func (s *Saga) compensate(ctx context.Context) {
	for i := len(s.log) - 1; i >= 0; i-- {
		step := s.steps[i]
		s.log[i].Compensated = true

		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			s.log[i].CompensateErr = err
		}
	}
}
