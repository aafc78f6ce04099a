package content

import (
	"context"

	"story-engine/internal/domain/entity"
)

// GetPlotNotes 获取情节笔记；尚未创建时返回空笔记
func (s *Service) GetPlotNotes(ctx context.Context, accountID, storyID uint) (*entity.PlotNotes, error) {
	if _, err := s.ownedStory(ctx, accountID, storyID); err != nil {
		return nil, err
	}
	notes, err := s.plotNotes.GetByStory(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if notes == nil {
		notes = &entity.PlotNotes{StoryID: storyID}
	}
	return notes, nil
}

// UpsertPlotNotes 不存在则创建，存在则覆盖
func (s *Service) UpsertPlotNotes(ctx context.Context, accountID, storyID uint, notes string) (*entity.PlotNotes, error) {
	if _, err := s.ownedStory(ctx, accountID, storyID); err != nil {
		return nil, err
	}
	saved, err := s.plotNotes.Upsert(ctx, storyID, notes)
	if err != nil {
		return nil, err
	}
	recordMutation("plot_notes", "upsert")
	return saved, nil
}
