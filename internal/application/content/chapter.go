package content

import (
	"context"
	"strings"

	"story-engine/internal/domain/entity"
)

// ListChapters 按创建顺序列出章节
func (s *Service) ListChapters(ctx context.Context, accountID, storyID uint) ([]*entity.Chapter, error) {
	if _, err := s.ownedStory(ctx, accountID, storyID); err != nil {
		return nil, err
	}
	return s.chapters.ListByStory(ctx, storyID)
}

// GetChapter 获取章节
func (s *Service) GetChapter(ctx context.Context, accountID, storyID, chapterID uint) (*entity.Chapter, error) {
	return s.scopedChapter(ctx, accountID, storyID, chapterID)
}

// AddChapter 新增章节；标题为空时使用 "Chapter N"
func (s *Service) AddChapter(ctx context.Context, accountID, storyID uint, title string) (*entity.Chapter, error) {
	if _, err := s.ownedStory(ctx, accountID, storyID); err != nil {
		return nil, err
	}

	if strings.TrimSpace(title) == "" {
		count, err := s.chapters.CountByStory(ctx, storyID)
		if err != nil {
			return nil, err
		}
		title = entity.DefaultChapterTitle(int(count))
	}

	chapter := entity.NewChapter(storyID, title)
	if err := s.chapters.Create(ctx, chapter); err != nil {
		return nil, err
	}
	recordMutation("chapter", "create")
	return chapter, nil
}

// DeleteChapter 删除章节及其节拍、事件与世界观元素
func (s *Service) DeleteChapter(ctx context.Context, accountID, storyID, chapterID uint) error {
	if _, err := s.scopedChapter(ctx, accountID, storyID, chapterID); err != nil {
		return err
	}

	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.deleteChapterChildren(ctx, []uint{chapterID}); err != nil {
			return err
		}
		return s.chapters.Delete(ctx, chapterID)
	})
	if err != nil {
		return err
	}
	recordMutation("chapter", "delete")
	return nil
}

// SaveChapterBody 原样覆盖标题、摘要与正文，重复提交结果相同
func (s *Service) SaveChapterBody(ctx context.Context, accountID, storyID, chapterID uint, title, summary, text string) (*entity.Chapter, error) {
	chapter, err := s.scopedChapter(ctx, accountID, storyID, chapterID)
	if err != nil {
		return nil, err
	}

	chapter.SetBody(title, summary, text)
	if err := s.chapters.Update(ctx, chapter); err != nil {
		return nil, err
	}
	recordMutation("chapter", "save")
	return chapter, nil
}
