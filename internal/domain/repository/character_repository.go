// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"story-engine/internal/domain/entity"
)

// CharacterRepository 角色仓储接口
type CharacterRepository interface {
	// Create 创建角色
	Create(ctx context.Context, character *entity.Character) error

	// GetByID 根据 ID 获取角色
	GetByID(ctx context.Context, id uint) (*entity.Character, error)

	// Update 更新角色
	Update(ctx context.Context, character *entity.Character) error

	// Delete 删除角色
	Delete(ctx context.Context, id uint) error

	// ListByStory 获取故事的角色列表（按创建顺序）
	ListByStory(ctx context.Context, storyID uint) ([]*entity.Character, error)

	// SearchNames 按名称子串（不区分大小写）搜索角色名
	SearchNames(ctx context.Context, storyID uint, query string) ([]string, error)

	// DeleteByStory 删除故事下全部角色
	DeleteByStory(ctx context.Context, storyID uint) error
}
