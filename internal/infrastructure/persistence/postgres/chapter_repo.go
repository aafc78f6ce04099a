// Package postgres 提供关系型数据库 Repository 实现
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"story-engine/internal/domain/entity"
)

// ChapterRepository 章节仓储实现
type ChapterRepository struct {
	client *Client
}

// NewChapterRepository 创建章节仓储
func NewChapterRepository(client *Client) *ChapterRepository {
	return &ChapterRepository{client: client}
}

// Create 创建章节
func (r *ChapterRepository) Create(ctx context.Context, chapter *entity.Chapter) error {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(chapter).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create chapter: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取章节
func (r *ChapterRepository) GetByID(ctx context.Context, id uint) (*entity.Chapter, error) {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var chapter entity.Chapter
	if err := db.First(&chapter, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get chapter: %w", err)
	}
	return &chapter, nil
}

// Update 更新章节标题、摘要与正文（整体覆盖，空字符串同样写入）
func (r *ChapterRepository) Update(ctx context.Context, chapter *entity.Chapter) error {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(chapter).Select("title", "summary", "text").Updates(chapter).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update chapter: %w", err)
	}
	return nil
}

// Delete 删除章节
func (r *ChapterRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Chapter{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete chapter: %w", err)
	}
	return nil
}

// ListByStory 获取故事的章节列表
func (r *ChapterRepository) ListByStory(ctx context.Context, storyID uint) ([]*entity.Chapter, error) {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.ListByStory")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var chapters []*entity.Chapter
	if err := db.Where("story_id = ?", storyID).Order("id ASC").Find(&chapters).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list chapters: %w", err)
	}
	return chapters, nil
}

// CountByStory 统计故事的章节数
func (r *ChapterRepository) CountByStory(ctx context.Context, storyID uint) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.CountByStory")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var count int64
	if err := db.Model(&entity.Chapter{}).Where("story_id = ?", storyID).Count(&count).Error; err != nil {
		span.RecordError(err)
		return 0, fmt.Errorf("failed to count chapters: %w", err)
	}
	return count, nil
}

// ListIDsByStory 获取故事下全部章节 ID
func (r *ChapterRepository) ListIDsByStory(ctx context.Context, storyID uint) ([]uint, error) {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.ListIDsByStory")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var ids []uint
	if err := db.Model(&entity.Chapter{}).Where("story_id = ?", storyID).Order("id ASC").Pluck("id", &ids).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list chapter ids: %w", err)
	}
	return ids, nil
}

// DeleteByStory 删除故事下全部章节
func (r *ChapterRepository) DeleteByStory(ctx context.Context, storyID uint) error {
	ctx, span := tracer.Start(ctx, "postgres.ChapterRepository.DeleteByStory")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Where("story_id = ?", storyID).Delete(&entity.Chapter{}).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete chapters: %w", err)
	}
	return nil
}
