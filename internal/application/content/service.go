// Package content 提供故事内容层级的增删改查与归属校验
package content

import (
	"context"

	"story-engine/internal/domain/entity"
	"story-engine/internal/domain/repository"
	apperrors "story-engine/pkg/errors"
	"story-engine/pkg/metrics"
)

// Service 内容服务
//
// 每个写操作单独提交；删除故事、删除章节这类多表级联在同一事务内完成。
// 路径上的 story/chapter 与实体实际归属不一致时返回 Forbidden 且不做任何修改；归属校验先于字段校验。
type Service struct {
	tx         repository.Transactor
	stories    repository.StoryRepository
	chapters   repository.ChapterRepository
	characters repository.CharacterRepository
	plotNotes  repository.PlotNotesRepository
	beats      repository.SceneBeatRepository
	events     repository.KeyEventRepository
	worlds     repository.WorldElementRepository
}

// NewService 创建内容服务
func NewService(
	tx repository.Transactor,
	stories repository.StoryRepository,
	chapters repository.ChapterRepository,
	characters repository.CharacterRepository,
	plotNotes repository.PlotNotesRepository,
	beats repository.SceneBeatRepository,
	events repository.KeyEventRepository,
	worlds repository.WorldElementRepository,
) *Service {
	return &Service{
		tx:         tx,
		stories:    stories,
		chapters:   chapters,
		characters: characters,
		plotNotes:  plotNotes,
		beats:      beats,
		events:     events,
		worlds:     worlds,
	}
}

// ownedStory 加载故事并校验归属账户
func (s *Service) ownedStory(ctx context.Context, accountID, storyID uint) (*entity.Story, error) {
	story, err := s.stories.GetByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story == nil {
		return nil, apperrors.NotFound(apperrors.CodeStoryNotFound, "story %d not found", storyID)
	}
	if !story.OwnedBy(accountID) {
		return nil, apperrors.Forbidden("story %d does not belong to the current account", storyID)
	}
	return story, nil
}

// scopedChapter 加载章节并校验其属于路径上的故事
func (s *Service) scopedChapter(ctx context.Context, accountID, storyID, chapterID uint) (*entity.Chapter, error) {
	if _, err := s.ownedStory(ctx, accountID, storyID); err != nil {
		return nil, err
	}
	chapter, err := s.chapters.GetByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	if chapter == nil {
		return nil, apperrors.NotFound(apperrors.CodeChapterNotFound, "chapter %d not found", chapterID)
	}
	if !chapter.BelongsTo(storyID) {
		return nil, apperrors.Forbidden("chapter %d does not belong to story %d", chapterID, storyID)
	}
	return chapter, nil
}

func recordMutation(entityName, action string) {
	metrics.ContentMutationsTotal.WithLabelValues(entityName, action).Inc()
}
