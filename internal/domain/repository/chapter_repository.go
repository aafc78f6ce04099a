// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"story-engine/internal/domain/entity"
)

// ChapterRepository 章节仓储接口
type ChapterRepository interface {
	// Create 创建章节
	Create(ctx context.Context, chapter *entity.Chapter) error

	// GetByID 根据 ID 获取章节
	GetByID(ctx context.Context, id uint) (*entity.Chapter, error)

	// Update 更新章节
	Update(ctx context.Context, chapter *entity.Chapter) error

	// Delete 删除章节
	Delete(ctx context.Context, id uint) error

	// ListByStory 获取故事的章节列表（按 ID 升序，即章节序号）
	ListByStory(ctx context.Context, storyID uint) ([]*entity.Chapter, error)

	// CountByStory 统计故事的章节数
	CountByStory(ctx context.Context, storyID uint) (int64, error)

	// ListIDsByStory 获取故事下全部章节 ID
	ListIDsByStory(ctx context.Context, storyID uint) ([]uint, error)

	// DeleteByStory 删除故事下全部章节
	DeleteByStory(ctx context.Context, storyID uint) error
}
