// Package postgres 提供关系型数据库 Repository 实现
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"story-engine/internal/domain/entity"
)

// WorldElementRepository 世界观元素仓储实现
type WorldElementRepository struct {
	client *Client
}

// NewWorldElementRepository 创建世界观元素仓储
func NewWorldElementRepository(client *Client) *WorldElementRepository {
	return &WorldElementRepository{client: client}
}

// Create 创建元素
func (r *WorldElementRepository) Create(ctx context.Context, element *entity.WorldElement) error {
	ctx, span := tracer.Start(ctx, "postgres.WorldElementRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(element).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create world element: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取元素
func (r *WorldElementRepository) GetByID(ctx context.Context, id uint) (*entity.WorldElement, error) {
	ctx, span := tracer.Start(ctx, "postgres.WorldElementRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var element entity.WorldElement
	if err := db.First(&element, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get world element: %w", err)
	}
	return &element, nil
}

// Update 更新元素分类与描述
func (r *WorldElementRepository) Update(ctx context.Context, element *entity.WorldElement) error {
	ctx, span := tracer.Start(ctx, "postgres.WorldElementRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(element).Select("Category", "Description").Updates(element).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update world element: %w", err)
	}
	return nil
}

// ListByChapter 获取章节的元素列表
func (r *WorldElementRepository) ListByChapter(ctx context.Context, chapterID uint) ([]*entity.WorldElement, error) {
	ctx, span := tracer.Start(ctx, "postgres.WorldElementRepository.ListByChapter")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var elements []*entity.WorldElement
	if err := db.Where("chapter_id = ?", chapterID).Order("id ASC").Find(&elements).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list world elements: %w", err)
	}
	return elements, nil
}

// DeleteByChapters 批量删除章节下的元素
func (r *WorldElementRepository) DeleteByChapters(ctx context.Context, chapterIDs []uint) error {
	if len(chapterIDs) == 0 {
		return nil
	}
	ctx, span := tracer.Start(ctx, "postgres.WorldElementRepository.DeleteByChapters")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Where("chapter_id IN ?", chapterIDs).Delete(&entity.WorldElement{}).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete world elements: %w", err)
	}
	return nil
}
