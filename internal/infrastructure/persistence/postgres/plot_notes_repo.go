// Package postgres 提供关系型数据库 Repository 实现
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"story-engine/internal/domain/entity"
)

// PlotNotesRepository 情节笔记仓储实现
type PlotNotesRepository struct {
	client *Client
}

// NewPlotNotesRepository 创建情节笔记仓储
func NewPlotNotesRepository(client *Client) *PlotNotesRepository {
	return &PlotNotesRepository{client: client}
}

// GetByStory 获取故事的情节笔记
func (r *PlotNotesRepository) GetByStory(ctx context.Context, storyID uint) (*entity.PlotNotes, error) {
	ctx, span := tracer.Start(ctx, "postgres.PlotNotesRepository.GetByStory")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var notes entity.PlotNotes
	if err := db.First(&notes, "story_id = ?", storyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get plot notes: %w", err)
	}
	return &notes, nil
}

// Upsert 不存在则创建，存在则覆盖；依赖 story_id 唯一索引做 ON CONFLICT，并发写入以最后一次为准
func (r *PlotNotesRepository) Upsert(ctx context.Context, storyID uint, text string) (*entity.PlotNotes, error) {
	ctx, span := tracer.Start(ctx, "postgres.PlotNotesRepository.Upsert")
	defer span.End()

	db := getDB(ctx, r.client.db)
	notes := entity.PlotNotes{StoryID: storyID, Notes: text}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "story_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"notes", "updated_at"}),
	}).Create(&notes).Error
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to upsert plot notes: %w", err)
	}

	var stored entity.PlotNotes
	if err := db.First(&stored, "story_id = ?", storyID).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to reload plot notes: %w", err)
	}
	return &stored, nil
}

// DeleteByStory 删除故事的情节笔记
func (r *PlotNotesRepository) DeleteByStory(ctx context.Context, storyID uint) error {
	ctx, span := tracer.Start(ctx, "postgres.PlotNotesRepository.DeleteByStory")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Where("story_id = ?", storyID).Delete(&entity.PlotNotes{}).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete plot notes: %w", err)
	}
	return nil
}
