// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"story-engine/internal/domain/entity"
)

// PlotNotesRepository 情节笔记仓储接口
type PlotNotesRepository interface {
	// GetByStory 获取故事的情节笔记
	GetByStory(ctx context.Context, storyID uint) (*entity.PlotNotes, error)

	// Upsert 不存在则创建，存在则覆盖
	Upsert(ctx context.Context, storyID uint, notes string) (*entity.PlotNotes, error)

	// DeleteByStory 删除故事的情节笔记
	DeleteByStory(ctx context.Context, storyID uint) error
}
