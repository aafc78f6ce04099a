// Package repository 定义数据访问层接口
//
// 约定：按 ID 查询不到记录时返回 (nil, nil)，由应用层决定是否视为 NotFound。
package repository

import (
	"context"
)

// TxKey 事务上下文键类型
type TxKey struct{}

// Transactor 事务管理接口
type Transactor interface {
	// WithTransaction 在事务中执行操作，fn 内的仓储调用共享同一事务
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
