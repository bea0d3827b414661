package cart

import (
	"context"
)

// Repository 购物车存储接口(依赖倒置原则)
// 设计说明:
//  1. 由domain层定义接口,infrastructure层实现
//  2. 默认提供进程内存实现(会话级生命周期,进程退出即丢失);
//     多实例部署时可切换为Redis实现,接口不变
type Repository interface {
	// Save 保存(新建或覆盖)购物车
	Save(ctx context.Context, c *Cart) error

	// Find 根据会话ID查找购物车
	Find(ctx context.Context, id string) (*Cart, error)

	// Delete 删除购物车(结算成功后清理会话)
	Delete(ctx context.Context, id string) error
}
