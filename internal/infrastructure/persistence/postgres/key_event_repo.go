// Package postgres 提供关系型数据库 Repository 实现
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"story-engine/internal/domain/entity"
)

// KeyEventRepository 关键事件仓储实现
type KeyEventRepository struct {
	client *Client
}

// NewKeyEventRepository 创建关键事件仓储
func NewKeyEventRepository(client *Client) *KeyEventRepository {
	return &KeyEventRepository{client: client}
}

// Create 创建事件
func (r *KeyEventRepository) Create(ctx context.Context, event *entity.KeyEvent) error {
	ctx, span := tracer.Start(ctx, "postgres.KeyEventRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(event).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create key event: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取事件
func (r *KeyEventRepository) GetByID(ctx context.Context, id uint) (*entity.KeyEvent, error) {
	ctx, span := tracer.Start(ctx, "postgres.KeyEventRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var event entity.KeyEvent
	if err := db.First(&event, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get key event: %w", err)
	}
	return &event, nil
}

// Update 更新事件描述与排序
func (r *KeyEventRepository) Update(ctx context.Context, event *entity.KeyEvent) error {
	ctx, span := tracer.Start(ctx, "postgres.KeyEventRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(event).Select("Description", "Order").Updates(event).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update key event: %w", err)
	}
	return nil
}

// Delete 删除事件
func (r *KeyEventRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "postgres.KeyEventRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.KeyEvent{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete key event: %w", err)
	}
	return nil
}

// ListByChapter 获取章节的事件列表
func (r *KeyEventRepository) ListByChapter(ctx context.Context, chapterID uint) ([]*entity.KeyEvent, error) {
	ctx, span := tracer.Start(ctx, "postgres.KeyEventRepository.ListByChapter")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var events []*entity.KeyEvent
	if err := db.Where("chapter_id = ?", chapterID).Order(orderedByPosition).Find(&events).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list key events: %w", err)
	}
	return events, nil
}

// DeleteByChapters 批量删除章节下的事件
func (r *KeyEventRepository) DeleteByChapters(ctx context.Context, chapterIDs []uint) error {
	if len(chapterIDs) == 0 {
		return nil
	}
	ctx, span := tracer.Start(ctx, "postgres.KeyEventRepository.DeleteByChapters")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Where("chapter_id IN ?", chapterIDs).Delete(&entity.KeyEvent{}).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete key events: %w", err)
	}
	return nil
}
