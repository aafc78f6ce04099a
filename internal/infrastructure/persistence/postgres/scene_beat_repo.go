// Package postgres 提供关系型数据库 Repository 实现
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"story-engine/internal/domain/entity"
)

// orderedByPosition 节拍与事件共用的排序：order 升序，相同时按创建顺序
const orderedByPosition = "sort_order ASC, id ASC"

// SceneBeatRepository 场景节拍仓储实现
type SceneBeatRepository struct {
	client *Client
}

// NewSceneBeatRepository 创建场景节拍仓储
func NewSceneBeatRepository(client *Client) *SceneBeatRepository {
	return &SceneBeatRepository{client: client}
}

// Create 创建节拍
func (r *SceneBeatRepository) Create(ctx context.Context, beat *entity.SceneBeat) error {
	ctx, span := tracer.Start(ctx, "postgres.SceneBeatRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(beat).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create scene beat: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取节拍
func (r *SceneBeatRepository) GetByID(ctx context.Context, id uint) (*entity.SceneBeat, error) {
	ctx, span := tracer.Start(ctx, "postgres.SceneBeatRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var beat entity.SceneBeat
	if err := db.First(&beat, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get scene beat: %w", err)
	}
	return &beat, nil
}

// Update 更新节拍描述与排序
func (r *SceneBeatRepository) Update(ctx context.Context, beat *entity.SceneBeat) error {
	ctx, span := tracer.Start(ctx, "postgres.SceneBeatRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(beat).Select("Description", "Order").Updates(beat).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update scene beat: %w", err)
	}
	return nil
}

// Delete 删除节拍
func (r *SceneBeatRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "postgres.SceneBeatRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.SceneBeat{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete scene beat: %w", err)
	}
	return nil
}

// ListByChapter 获取章节的节拍列表
func (r *SceneBeatRepository) ListByChapter(ctx context.Context, chapterID uint) ([]*entity.SceneBeat, error) {
	ctx, span := tracer.Start(ctx, "postgres.SceneBeatRepository.ListByChapter")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var beats []*entity.SceneBeat
	if err := db.Where("chapter_id = ?", chapterID).Order(orderedByPosition).Find(&beats).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list scene beats: %w", err)
	}
	return beats, nil
}

// DeleteByChapters 批量删除章节下的节拍
func (r *SceneBeatRepository) DeleteByChapters(ctx context.Context, chapterIDs []uint) error {
	if len(chapterIDs) == 0 {
		return nil
	}
	ctx, span := tracer.Start(ctx, "postgres.SceneBeatRepository.DeleteByChapters")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Where("chapter_id IN ?", chapterIDs).Delete(&entity.SceneBeat{}).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete scene beats: %w", err)
	}
	return nil
}
