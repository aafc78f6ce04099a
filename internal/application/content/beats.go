package content

import (
	"context"
	"strings"

	"story-engine/internal/domain/entity"
	apperrors "story-engine/pkg/errors"
)

// orderOrDefault 未提供排序值时使用默认值 1
func orderOrDefault(order *int) int {
	if order == nil {
		return entity.DefaultOrder
	}
	return *order
}

// ListSceneBeats 按 order 升序列出节拍
func (s *Service) ListSceneBeats(ctx context.Context, accountID, storyID, chapterID uint) ([]*entity.SceneBeat, error) {
	if _, err := s.scopedChapter(ctx, accountID, storyID, chapterID); err != nil {
		return nil, err
	}
	return s.beats.ListByChapter(ctx, chapterID)
}

// AddSceneBeat 新增节拍，order 原样保存
func (s *Service) AddSceneBeat(ctx context.Context, accountID, storyID, chapterID uint, description string, order *int) (*entity.SceneBeat, error) {
	if _, err := s.scopedChapter(ctx, accountID, storyID, chapterID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.Validation("beat description is required")
	}

	beat := &entity.SceneBeat{
		ChapterID:   chapterID,
		Description: description,
		Order:       orderOrDefault(order),
	}
	if err := s.beats.Create(ctx, beat); err != nil {
		return nil, err
	}
	recordMutation("scene_beat", "create")
	return beat, nil
}

// EditSceneBeat 编辑节拍；order 为 nil 时保持原值
func (s *Service) EditSceneBeat(ctx context.Context, accountID, storyID, chapterID, beatID uint, description string, order *int) (*entity.SceneBeat, error) {
	beat, err := s.scopedBeat(ctx, accountID, storyID, chapterID, beatID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.Validation("beat description is required")
	}

	beat.Description = description
	if order != nil {
		beat.Order = *order
	}
	if err := s.beats.Update(ctx, beat); err != nil {
		return nil, err
	}
	recordMutation("scene_beat", "update")
	return beat, nil
}

// DeleteSceneBeat 删除节拍
func (s *Service) DeleteSceneBeat(ctx context.Context, accountID, storyID, chapterID, beatID uint) error {
	if _, err := s.scopedBeat(ctx, accountID, storyID, chapterID, beatID); err != nil {
		return err
	}
	if err := s.beats.Delete(ctx, beatID); err != nil {
		return err
	}
	recordMutation("scene_beat", "delete")
	return nil
}

func (s *Service) scopedBeat(ctx context.Context, accountID, storyID, chapterID, beatID uint) (*entity.SceneBeat, error) {
	if _, err := s.scopedChapter(ctx, accountID, storyID, chapterID); err != nil {
		return nil, err
	}
	beat, err := s.beats.GetByID(ctx, beatID)
	if err != nil {
		return nil, err
	}
	if beat == nil {
		return nil, apperrors.NotFound(apperrors.CodeNotFound, "scene beat %d not found", beatID)
	}
	if !beat.BelongsTo(chapterID) {
		return nil, apperrors.Forbidden("scene beat %d does not belong to chapter %d", beatID, chapterID)
	}
	return beat, nil
}

// ListKeyEvents 按 order 升序列出关键事件
func (s *Service) ListKeyEvents(ctx context.Context, accountID, storyID, chapterID uint) ([]*entity.KeyEvent, error) {
	if _, err := s.scopedChapter(ctx, accountID, storyID, chapterID); err != nil {
		return nil, err
	}
	return s.events.ListByChapter(ctx, chapterID)
}

// AddKeyEvent 新增关键事件
func (s *Service) AddKeyEvent(ctx context.Context, accountID, storyID, chapterID uint, description string, order *int) (*entity.KeyEvent, error) {
	if _, err := s.scopedChapter(ctx, accountID, storyID, chapterID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.Validation("event description is required")
	}

	event := &entity.KeyEvent{
		ChapterID:   chapterID,
		Description: description,
		Order:       orderOrDefault(order),
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	recordMutation("key_event", "create")
	return event, nil
}

// EditKeyEvent 编辑关键事件；order 为 nil 时保持原值
func (s *Service) EditKeyEvent(ctx context.Context, accountID, storyID, chapterID, eventID uint, description string, order *int) (*entity.KeyEvent, error) {
	event, err := s.scopedEvent(ctx, accountID, storyID, chapterID, eventID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(description) == "" {
		return nil, apperrors.Validation("event description is required")
	}

	event.Description = description
	if order != nil {
		event.Order = *order
	}
	if err := s.events.Update(ctx, event); err != nil {
		return nil, err
	}
	recordMutation("key_event", "update")
	return event, nil
}

// DeleteKeyEvent 删除关键事件
func (s *Service) DeleteKeyEvent(ctx context.Context, accountID, storyID, chapterID, eventID uint) error {
	if _, err := s.scopedEvent(ctx, accountID, storyID, chapterID, eventID); err != nil {
		return err
	}
	if err := s.events.Delete(ctx, eventID); err != nil {
		return err
	}
	recordMutation("key_event", "delete")
	return nil
}

func (s *Service) scopedEvent(ctx context.Context, accountID, storyID, chapterID, eventID uint) (*entity.KeyEvent, error) {
	if _, err := s.scopedChapter(ctx, accountID, storyID, chapterID); err != nil {
		return nil, err
	}
	event, err := s.events.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, apperrors.NotFound(apperrors.CodeNotFound, "key event %d not found", eventID)
	}
	if !event.BelongsTo(chapterID) {
		return nil, apperrors.Forbidden("key event %d does not belong to chapter %d", eventID, chapterID)
	}
	return event, nil
}
