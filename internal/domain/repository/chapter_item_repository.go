// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"story-engine/internal/domain/entity"
)

// SceneBeatRepository 场景节拍仓储接口
type SceneBeatRepository interface {
	Create(ctx context.Context, beat *entity.SceneBeat) error
	GetByID(ctx context.Context, id uint) (*entity.SceneBeat, error)
	Update(ctx context.Context, beat *entity.SceneBeat) error
	Delete(ctx context.Context, id uint) error

	// ListByChapter 按 order 升序返回，order 相同时按 ID
	ListByChapter(ctx context.Context, chapterID uint) ([]*entity.SceneBeat, error)

	// DeleteByChapters 批量删除若干章节下的节拍
	DeleteByChapters(ctx context.Context, chapterIDs []uint) error
}

// KeyEventRepository 关键事件仓储接口
type KeyEventRepository interface {
	Create(ctx context.Context, event *entity.KeyEvent) error
	GetByID(ctx context.Context, id uint) (*entity.KeyEvent, error)
	Update(ctx context.Context, event *entity.KeyEvent) error
	Delete(ctx context.Context, id uint) error

	// ListByChapter 按 order 升序返回，order 相同时按 ID
	ListByChapter(ctx context.Context, chapterID uint) ([]*entity.KeyEvent, error)

	// DeleteByChapters 批量删除若干章节下的事件
	DeleteByChapters(ctx context.Context, chapterIDs []uint) error
}

// WorldElementRepository 世界观元素仓储接口（不提供单条删除）
type WorldElementRepository interface {
	Create(ctx context.Context, element *entity.WorldElement) error
	GetByID(ctx context.Context, id uint) (*entity.WorldElement, error)
	Update(ctx context.Context, element *entity.WorldElement) error

	// ListByChapter 按创建顺序返回
	ListByChapter(ctx context.Context, chapterID uint) ([]*entity.WorldElement, error)

	// DeleteByChapters 批量删除若干章节下的元素（仅用于级联）
	DeleteByChapters(ctx context.Context, chapterIDs []uint) error
}
