// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"story-engine/internal/domain/entity"
)

// AccountRepository 账户仓储接口
type AccountRepository interface {
	// Create 创建账户
	Create(ctx context.Context, account *entity.Account) error

	// GetByID 根据 ID 获取账户
	GetByID(ctx context.Context, id uint) (*entity.Account, error)

	// GetByUsername 根据用户名获取账户
	GetByUsername(ctx context.Context, username string) (*entity.Account, error)

	// GetByEmail 根据邮箱获取账户
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
}
