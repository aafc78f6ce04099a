// Package postgres 提供关系型数据库 Repository 实现
package postgres

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"story-engine/internal/domain/entity"
)

// StoryRepository 故事仓储实现
type StoryRepository struct {
	client *Client
}

// NewStoryRepository 创建故事仓储
func NewStoryRepository(client *Client) *StoryRepository {
	return &StoryRepository{client: client}
}

// Create 创建故事
func (r *StoryRepository) Create(ctx context.Context, story *entity.Story) error {
	ctx, span := tracer.Start(ctx, "postgres.StoryRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(story).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create story: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取故事
func (r *StoryRepository) GetByID(ctx context.Context, id uint) (*entity.Story, error) {
	ctx, span := tracer.Start(ctx, "postgres.StoryRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var story entity.Story
	if err := db.First(&story, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	return &story, nil
}

// Update 更新故事
func (r *StoryRepository) Update(ctx context.Context, story *entity.Story) error {
	ctx, span := tracer.Start(ctx, "postgres.StoryRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(story).Select("title", "description").Updates(story).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update story: %w", err)
	}
	return nil
}

// Delete 删除故事
func (r *StoryRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "postgres.StoryRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Story{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete story: %w", err)
	}
	return nil
}

// ListByAccount 获取账户的故事列表
func (r *StoryRepository) ListByAccount(ctx context.Context, accountID uint) ([]*entity.Story, error) {
	ctx, span := tracer.Start(ctx, "postgres.StoryRepository.ListByAccount")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var stories []*entity.Story
	if err := db.Where("account_id = ?", accountID).Order("id ASC").Find(&stories).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	return stories, nil
}
