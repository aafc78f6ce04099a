package content

import (
	"context"
	"strings"

	"story-engine/internal/domain/entity"
	apperrors "story-engine/pkg/errors"
)

// CharacterInput 角色新增/编辑参数；ID 为 0 表示新增
type CharacterInput struct {
	ID        uint
	Name      string
	Traits    string
	Backstory string
}

// ListCharacters 列出故事的角色
func (s *Service) ListCharacters(ctx context.Context, accountID, storyID uint) ([]*entity.Character, error) {
	if _, err := s.ownedStory(ctx, accountID, storyID); err != nil {
		return nil, err
	}
	return s.characters.ListByStory(ctx, storyID)
}

// UpsertCharacter 新增或编辑角色；不校验同名
func (s *Service) UpsertCharacter(ctx context.Context, accountID, storyID uint, in CharacterInput) (*entity.Character, error) {
	if _, err := s.ownedStory(ctx, accountID, storyID); err != nil {
		return nil, err
	}
	var existing *entity.Character
	if in.ID != 0 {
		character, err := s.scopedCharacter(ctx, storyID, in.ID)
		if err != nil {
			return nil, err
		}
		existing = character
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, apperrors.Validation("character name is required")
	}

	if existing == nil {
		character := &entity.Character{
			StoryID:   storyID,
			Name:      in.Name,
			Traits:    in.Traits,
			Backstory: in.Backstory,
		}
		if err := s.characters.Create(ctx, character); err != nil {
			return nil, err
		}
		recordMutation("character", "create")
		return character, nil
	}

	character := existing
	character.Name = in.Name
	character.Traits = in.Traits
	character.Backstory = in.Backstory
	if err := s.characters.Update(ctx, character); err != nil {
		return nil, err
	}
	recordMutation("character", "update")
	return character, nil
}

// DeleteCharacter 删除角色
func (s *Service) DeleteCharacter(ctx context.Context, accountID, storyID, characterID uint) error {
	if _, err := s.ownedStory(ctx, accountID, storyID); err != nil {
		return err
	}
	if _, err := s.scopedCharacter(ctx, storyID, characterID); err != nil {
		return err
	}
	if err := s.characters.Delete(ctx, characterID); err != nil {
		return err
	}
	recordMutation("character", "delete")
	return nil
}

// SearchCharacters 按名称子串（不区分大小写）搜索，用于输入联想
func (s *Service) SearchCharacters(ctx context.Context, accountID, storyID uint, query string) ([]string, error) {
	if _, err := s.ownedStory(ctx, accountID, storyID); err != nil {
		return nil, err
	}
	names, err := s.characters.SearchNames(ctx, storyID, query)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (s *Service) scopedCharacter(ctx context.Context, storyID, characterID uint) (*entity.Character, error) {
	character, err := s.characters.GetByID(ctx, characterID)
	if err != nil {
		return nil, err
	}
	if character == nil {
		return nil, apperrors.NotFound(apperrors.CodeNotFound, "character %d not found", characterID)
	}
	if !character.BelongsTo(storyID) {
		return nil, apperrors.Forbidden("character %d does not belong to story %d", characterID, storyID)
	}
	return character, nil
}
