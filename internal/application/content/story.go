package content

import (
	"context"
	"strings"

	"story-engine/internal/domain/entity"
	apperrors "story-engine/pkg/errors"
	"story-engine/pkg/logger"
)

// CreateStory 创建故事并同时创建默认的第一章
func (s *Service) CreateStory(ctx context.Context, accountID uint, title, description string) (*entity.Story, error) {
	if strings.TrimSpace(title) == "" {
		return nil, apperrors.Validation("title is required")
	}

	story := entity.NewStory(accountID, title, description)
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.stories.Create(ctx, story); err != nil {
			return err
		}
		return s.chapters.Create(ctx, entity.NewChapter(story.ID, entity.DefaultChapterTitle(0)))
	})
	if err != nil {
		return nil, err
	}

	recordMutation("story", "create")
	logger.Info(ctx, "story created", "story_id", story.ID, "account_id", accountID)
	return story, nil
}

// ListStories 列出账户的全部故事
func (s *Service) ListStories(ctx context.Context, accountID uint) ([]*entity.Story, error) {
	return s.stories.ListByAccount(ctx, accountID)
}

// GetStory 获取故事
func (s *Service) GetStory(ctx context.Context, accountID, storyID uint) (*entity.Story, error) {
	return s.ownedStory(ctx, accountID, storyID)
}

// UpdateStory 更新故事标题与描述
func (s *Service) UpdateStory(ctx context.Context, accountID, storyID uint, title, description string) (*entity.Story, error) {
	story, err := s.ownedStory(ctx, accountID, storyID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(title) == "" {
		return nil, apperrors.Validation("title is required")
	}

	story.Title = title
	story.Description = description
	if err := s.stories.Update(ctx, story); err != nil {
		return nil, err
	}
	recordMutation("story", "update")
	return story, nil
}

// DeleteStory 删除故事及其全部后代
func (s *Service) DeleteStory(ctx context.Context, accountID, storyID uint) error {
	if _, err := s.ownedStory(ctx, accountID, storyID); err != nil {
		return err
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		chapterIDs, err := s.chapters.ListIDsByStory(ctx, storyID)
		if err != nil {
			return err
		}
		if err := s.deleteChapterChildren(ctx, chapterIDs); err != nil {
			return err
		}
		if err := s.chapters.DeleteByStory(ctx, storyID); err != nil {
			return err
		}
		if err := s.characters.DeleteByStory(ctx, storyID); err != nil {
			return err
		}
		if err := s.plotNotes.DeleteByStory(ctx, storyID); err != nil {
			return err
		}
		return s.stories.Delete(ctx, storyID)
	})
	if err != nil {
		return err
	}

	recordMutation("story", "delete")
	logger.Info(ctx, "story deleted", "story_id", storyID, "account_id", accountID)
	return nil
}

// deleteChapterChildren 删除章节下的节拍、事件与世界观元素
func (s *Service) deleteChapterChildren(ctx context.Context, chapterIDs []uint) error {
	if err := s.beats.DeleteByChapters(ctx, chapterIDs); err != nil {
		return err
	}
	if err := s.events.DeleteByChapters(ctx, chapterIDs); err != nil {
		return err
	}
	return s.worlds.DeleteByChapters(ctx, chapterIDs)
}
