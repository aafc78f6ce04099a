package content

import (
	"context"

	"story-engine/internal/domain/entity"
	apperrors "story-engine/pkg/errors"
)

// parseCategory 空值取默认分类，其余必须属于封闭集合
func parseCategory(raw string) (entity.WorldCategory, error) {
	if raw == "" {
		return entity.DefaultWorldCategory, nil
	}
	category := entity.WorldCategory(raw)
	if !category.Valid() {
		return "", apperrors.Validation("unknown world element category %q", raw)
	}
	return category, nil
}

// ListWorldElements 列出章节的世界观元素
func (s *Service) ListWorldElements(ctx context.Context, accountID, storyID, chapterID uint) ([]*entity.WorldElement, error) {
	if _, err := s.scopedChapter(ctx, accountID, storyID, chapterID); err != nil {
		return nil, err
	}
	return s.worlds.ListByChapter(ctx, chapterID)
}

// AddWorldElement 新增世界观元素
func (s *Service) AddWorldElement(ctx context.Context, accountID, storyID, chapterID uint, category, description string) (*entity.WorldElement, error) {
	if _, err := s.scopedChapter(ctx, accountID, storyID, chapterID); err != nil {
		return nil, err
	}
	cat, err := parseCategory(category)
	if err != nil {
		return nil, err
	}

	element := &entity.WorldElement{
		ChapterID:   chapterID,
		Category:    cat,
		Description: description,
	}
	if err := s.worlds.Create(ctx, element); err != nil {
		return nil, err
	}
	recordMutation("world_element", "create")
	return element, nil
}

// EditWorldElement 编辑世界观元素；分类为空时保持原值
func (s *Service) EditWorldElement(ctx context.Context, accountID, storyID, chapterID, elementID uint, category, description string) (*entity.WorldElement, error) {
	if _, err := s.scopedChapter(ctx, accountID, storyID, chapterID); err != nil {
		return nil, err
	}
	element, err := s.worlds.GetByID(ctx, elementID)
	if err != nil {
		return nil, err
	}
	if element == nil {
		return nil, apperrors.NotFound(apperrors.CodeNotFound, "world element %d not found", elementID)
	}
	if !element.BelongsTo(chapterID) {
		return nil, apperrors.Forbidden("world element %d does not belong to chapter %d", elementID, chapterID)
	}

	if category != "" {
		cat, err := parseCategory(category)
		if err != nil {
			return nil, err
		}
		element.Category = cat
	}
	element.Description = description
	if err := s.worlds.Update(ctx, element); err != nil {
		return nil, err
	}
	recordMutation("world_element", "update")
	return element, nil
}
