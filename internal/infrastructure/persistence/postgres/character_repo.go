// Package postgres 提供关系型数据库 Repository 实现
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"story-engine/internal/domain/entity"
)

// CharacterRepository 角色仓储实现
type CharacterRepository struct {
	client *Client
}

// NewCharacterRepository 创建角色仓储
func NewCharacterRepository(client *Client) *CharacterRepository {
	return &CharacterRepository{client: client}
}

// Create 创建角色
func (r *CharacterRepository) Create(ctx context.Context, character *entity.Character) error {
	ctx, span := tracer.Start(ctx, "postgres.CharacterRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(character).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create character: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取角色
func (r *CharacterRepository) GetByID(ctx context.Context, id uint) (*entity.Character, error) {
	ctx, span := tracer.Start(ctx, "postgres.CharacterRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var character entity.Character
	if err := db.First(&character, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get character: %w", err)
	}
	return &character, nil
}

// Update 更新角色
func (r *CharacterRepository) Update(ctx context.Context, character *entity.Character) error {
	ctx, span := tracer.Start(ctx, "postgres.CharacterRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(character).Select("name", "traits", "backstory").Updates(character).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update character: %w", err)
	}
	return nil
}

// Delete 删除角色
func (r *CharacterRepository) Delete(ctx context.Context, id uint) error {
	ctx, span := tracer.Start(ctx, "postgres.CharacterRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Character{}, "id = ?", id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete character: %w", err)
	}
	return nil
}

// ListByStory 获取故事的角色列表
func (r *CharacterRepository) ListByStory(ctx context.Context, storyID uint) ([]*entity.Character, error) {
	ctx, span := tracer.Start(ctx, "postgres.CharacterRepository.ListByStory")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var characters []*entity.Character
	if err := db.Where("story_id = ?", storyID).Order("id ASC").Find(&characters).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list characters: %w", err)
	}
	return characters, nil
}

// SearchNames 按名称子串搜索，LOWER 在 PostgreSQL 与 SQLite 上行为一致
func (r *CharacterRepository) SearchNames(ctx context.Context, storyID uint, query string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "postgres.CharacterRepository.SearchNames")
	defer span.End()

	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"

	db := getDB(ctx, r.client.db)
	var names []string
	if err := db.Model(&entity.Character{}).
		Where("story_id = ? AND LOWER(name) LIKE ? ESCAPE '\\'", storyID, pattern).
		Order("id ASC").
		Pluck("name", &names).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to search characters: %w", err)
	}
	return names, nil
}

// DeleteByStory 删除故事下全部角色
func (r *CharacterRepository) DeleteByStory(ctx context.Context, storyID uint) error {
	ctx, span := tracer.Start(ctx, "postgres.CharacterRepository.DeleteByStory")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Where("story_id = ?", storyID).Delete(&entity.Character{}).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete characters: %w", err)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike 转义 LIKE 通配符，使查询按字面匹配
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
