package checkout

import (
	"context"
	"log"
	"time"

	"github.com/xiebiao/bookshop/internal/domain/book"
	"github.com/xiebiao/bookshop/internal/domain/cart"
	"github.com/xiebiao/bookshop/internal/domain/checkout"
	"github.com/xiebiao/bookshop/internal/domain/customer"
	"github.com/xiebiao/bookshop/internal/domain/order"
	"github.com/xiebiao/bookshop/internal/domain/pricing"
	"github.com/xiebiao/bookshop/pkg/metrics"
	"github.com/xiebiao/bookshop/pkg/saga"
)

// EventPublisher 订单事件发布接口(RabbitMQ实现)
// 发布失败不影响下单结果,只记录日志和指标
type EventPublisher interface {
	Publish(routingKey string, message interface{}) error
}

// PlaceOrderUseCase 提交订单用例
// 设计说明:这是整个系统最核心的用例
// 提交拆分为三个有序步骤,用Saga编排:
//
//	步骤1: 创建客户档案       补偿: 删除客户档案
//	步骤2: 创建订单(含明细)   补偿: 删除订单
//	步骤3: 逐本扣减库存       失败时在步骤内按实际扣减量恢复
//
// 任何一步失败,已完成步骤逆序补偿,购物车保持原样可重试;
// 全部成功后标记会话终态并清空购物车
type PlaceOrderUseCase struct {
	sessionRepo  checkout.Repository
	cartRepo     cart.Repository
	bookRepo     book.Repository
	customerRepo customer.Repository
	orderRepo    order.Repository
	pricing      pricing.Policy
	publisher    EventPublisher // 可为nil(未配置MQ)
	timeout      time.Duration
}

// NewPlaceOrderUseCase 创建提交订单用例
func NewPlaceOrderUseCase(
	sessionRepo checkout.Repository,
	cartRepo cart.Repository,
	bookRepo book.Repository,
	customerRepo customer.Repository,
	orderRepo order.Repository,
	policy pricing.Policy,
	publisher EventPublisher,
) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{
		sessionRepo:  sessionRepo,
		cartRepo:     cartRepo,
		bookRepo:     bookRepo,
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		pricing:      policy,
		publisher:    publisher,
		timeout:      30 * time.Second,
	}
}

// Result 下单结果DTO
type Result struct {
	OrderID     uint   `json:"order_id"`
	OrderNo     string `json:"order_no"`
	CustomerID  uint   `json:"customer_id"`
	TotalAmount int64  `json:"total_amount"`
	ShippingFee int64  `json:"shipping_fee"`
	Status      string `json:"status"`
}

// OrderCreatedEvent 订单创建事件(发布到MQ,通知邮件/报表等下游)
type OrderCreatedEvent struct {
	OrderID     uint   `json:"order_id"`
	OrderNo     string `json:"order_no"`
	CustomerID  uint   `json:"customer_id"`
	TotalAmount int64  `json:"total_amount"`
	ItemCount   int    `json:"item_count"`
	CreatedAt   string `json:"created_at"`
}

// Execute 提交订单
// 前置条件:结算会话处于确认步骤(收货信息和支付方式都已提交)
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, cartID string) (*Result, error) {
	start := time.Now()
	result, err := uc.execute(ctx, cartID)
	metrics.CheckoutDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.OrdersFailedTotal.Inc()
		return nil, err
	}
	metrics.OrdersPlacedTotal.Inc()
	return result, nil
}

func (uc *PlaceOrderUseCase) execute(ctx context.Context, cartID string) (*Result, error) {
	// 1. 校验会话状态
	sess, err := uc.sessionRepo.Find(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if !sess.CanSubmit() {
		return nil, checkout.ErrStepNotAllowed
	}

	// 2. 加载购物车
	c, err := uc.cartRepo.Find(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, cart.ErrCartEmpty
	}

	// 3. 以购物车中的价格快照计算金额
	totals := uc.pricing.Compute(c.PricingItems())

	// 4. Saga编排三个步骤
	var (
		cust     *customer.Customer
		ord      *order.Order
		deducted []stockDeduction // 已扣减记录,补偿时精确恢复
	)

	s := saga.New(uc.timeout)

	s.AddStep("创建客户",
		func(ctx context.Context) error {
			newCust, err := customer.New(sess.Shipping.Name, sess.Shipping.Email, sess.Shipping.Phone, sess.Shipping.Address)
			if err != nil {
				return err
			}
			newCust.BirthDate = sess.Shipping.BirthDate
			newCust.Gender = sess.Shipping.Gender
			if err := uc.customerRepo.Create(ctx, newCust); err != nil {
				return err
			}
			cust = newCust
			return nil
		},
		func(ctx context.Context) error {
			if cust == nil {
				return nil
			}
			return uc.customerRepo.Delete(ctx, cust.ID)
		},
	)

	s.AddStep("创建订单",
		func(ctx context.Context) error {
			items := make([]order.OrderItem, len(c.Items))
			for i, line := range c.Items {
				items[i] = order.OrderItem{
					BookID:    line.BookID,
					Quantity:  line.Quantity,
					UnitPrice: line.UnitPrice,
					Subtotal:  line.UnitPrice * int64(line.Quantity),
				}
			}
			newOrd := order.New(
				order.GenerateOrderNo(),
				cust.ID,
				items,
				totals.Total,
				totals.ShippingFee,
				sess.Shipping.Address,
				sess.PaymentMethod,
				sess.Shipping.Notes,
			)
			if err := uc.orderRepo.Create(ctx, newOrd); err != nil {
				return err
			}
			ord = newOrd
			return nil
		},
		func(ctx context.Context) error {
			if ord == nil {
				return nil
			}
			return uc.orderRepo.Delete(ctx, ord.ID)
		},
	)

	s.AddStep("扣减库存",
		func(ctx context.Context) error {
			// 库存在0处截断:库存3本、购买5本时实际扣减3本,库存归0,下单照常成功
			for _, line := range c.Items {
				applied, err := uc.bookRepo.DecrementStock(ctx, line.BookID, line.Quantity)
				if err != nil {
					// 中途失败时本步骤自行恢复已扣减的条目:
					// Saga只补偿日志中已完成的步骤,不会回头补偿失败的这一步,
					// 恢复必须在返回错误前完成。用新Context,避免恢复被超时打断
					uc.restoreStock(context.Background(), deducted)
					deducted = nil
					return err
				}
				if applied > 0 {
					deducted = append(deducted, stockDeduction{BookID: line.BookID, Applied: applied})
				}
			}
			return nil
		},
		nil, // 最后一步:成功后无需补偿,失败时已在Action内恢复
	)

	if err := s.Execute(ctx); err != nil {
		metrics.SagaExecutionsTotal.WithLabelValues("failure").Inc()
		if s.Compensated() {
			metrics.SagaCompensationsTotal.Inc()
		}
		return nil, err
	}
	metrics.SagaExecutionsTotal.WithLabelValues("success").Inc()

	// 5. 标记会话终态,清空购物车
	// Saga已成功,这里的失败只记录日志,不回滚订单
	if err := sess.MarkSubmitted(ord.ID); err == nil {
		if err := uc.sessionRepo.Save(ctx, sess); err != nil {
			log.Printf("保存已提交会话失败: cart_id=%s err=%v", cartID, err)
		}
	}
	if err := uc.cartRepo.Delete(ctx, cartID); err != nil {
		log.Printf("清空购物车失败: cart_id=%s err=%v", cartID, err)
	}

	// 6. 发布订单创建事件(尽力而为)
	uc.publishOrderCreated(ord)

	return &Result{
		OrderID:     ord.ID,
		OrderNo:     ord.OrderNo,
		CustomerID:  cust.ID,
		TotalAmount: ord.TotalAmount,
		ShippingFee: ord.ShippingFee,
		Status:      string(ord.Status),
	}, nil
}

// stockDeduction 一条已执行的库存扣减记录
type stockDeduction struct {
	BookID  uint
	Applied int
}

// restoreStock 按实际扣减量恢复库存(尽最大努力,单条失败只记录日志)
func (uc *PlaceOrderUseCase) restoreStock(ctx context.Context, deducted []stockDeduction) {
	for _, d := range deducted {
		if err := uc.bookRepo.IncrementStock(ctx, d.BookID, d.Applied); err != nil {
			log.Printf("恢复库存失败,需人工介入: book_id=%d quantity=%d err=%v", d.BookID, d.Applied, err)
		}
	}
}

// publishOrderCreated 发布订单创建事件
func (uc *PlaceOrderUseCase) publishOrderCreated(ord *order.Order) {
	if uc.publisher == nil {
		return
	}
	event := OrderCreatedEvent{
		OrderID:     ord.ID,
		OrderNo:     ord.OrderNo,
		CustomerID:  ord.CustomerID,
		TotalAmount: ord.TotalAmount,
		ItemCount:   len(ord.Items),
		CreatedAt:   ord.CreatedAt.Format(time.RFC3339),
	}
	if err := uc.publisher.Publish("order.created", event); err != nil {
		metrics.MessagesPublishedTotal.WithLabelValues("order.created", "failure").Inc()
		log.Printf("发布订单创建事件失败: order_no=%s err=%v", ord.OrderNo, err)
		return
	}
	metrics.MessagesPublishedTotal.WithLabelValues("order.created", "success").Inc()
}
