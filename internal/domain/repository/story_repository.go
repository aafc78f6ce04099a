// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"story-engine/internal/domain/entity"
)

// StoryRepository 故事仓储接口
type StoryRepository interface {
	// Create 创建故事
	Create(ctx context.Context, story *entity.Story) error

	// GetByID 根据 ID 获取故事
	GetByID(ctx context.Context, id uint) (*entity.Story, error)

	// Update 更新故事
	Update(ctx context.Context, story *entity.Story) error

	// Delete 删除故事（仅故事本身，子实体由调用方在事务内清理）
	Delete(ctx context.Context, id uint) error

	// ListByAccount 获取账户的故事列表（按创建顺序）
	ListByAccount(ctx context.Context, accountID uint) ([]*entity.Story, error)
}
