package workspace

import (
	"net/url"
	"strconv"
	"strings"

	apperrors "story-engine/pkg/errors"
)

// 表单中 action 字段的取值
const (
	ActionSaveChapter      = "save_chapter"
	ActionAddBeat          = "add_beat"
	ActionEditBeat         = "edit_beat"
	ActionDeleteBeat       = "delete_beat"
	ActionAddEvent         = "add_event"
	ActionEditEvent        = "edit_event"
	ActionDeleteEvent      = "delete_event"
	ActionAddWorldElement  = "add_world_element"
	ActionEditWorldElement = "edit_world_element"
	ActionAddCharacter     = "add_character"
	ActionEditCharacter    = "edit_character"
	ActionDeleteCharacter  = "delete_character"
	ActionGenerateProse    = "generate_prose"
	ActionExpandBeat       = "expand_beat"
	ActionSummarize        = "summarize_chapter"
)

// Decode 将一次表单提交解码为命令序列
//
// action 缺省为 save_chapter；生成类 action 携带 save_chapter=true 时先保存章节。
// 未知 action 返回 Validation 错误，不产生任何命令。
func Decode(form url.Values) ([]Command, error) {
	action := strings.TrimSpace(form.Get("action"))
	if action == "" {
		action = ActionSaveChapter
	}

	cmd, err := decodeAction(action, form)
	if err != nil {
		return nil, err
	}

	if isGeneration(cmd) && formBool(form, "save_chapter") {
		return []Command{decodeSave(form), cmd}, nil
	}
	return []Command{cmd}, nil
}

func decodeAction(action string, form url.Values) (Command, error) {
	switch action {
	case ActionSaveChapter:
		return decodeSave(form), nil

	case ActionAddBeat:
		order, err := formOrder(form, "beat_order")
		if err != nil {
			return nil, err
		}
		return AddSceneBeat{Description: form.Get("beat_description"), Order: order}, nil
	case ActionEditBeat:
		id, err := formID(form, "beat_id")
		if err != nil {
			return nil, err
		}
		order, err := formOrder(form, "beat_order")
		if err != nil {
			return nil, err
		}
		return EditSceneBeat{ID: id, Description: form.Get("beat_description"), Order: order}, nil
	case ActionDeleteBeat:
		id, err := formID(form, "beat_id")
		if err != nil {
			return nil, err
		}
		return DeleteSceneBeat{ID: id}, nil

	case ActionAddEvent:
		order, err := formOrder(form, "event_order")
		if err != nil {
			return nil, err
		}
		return AddKeyEvent{Description: form.Get("event_description"), Order: order}, nil
	case ActionEditEvent:
		id, err := formID(form, "event_id")
		if err != nil {
			return nil, err
		}
		order, err := formOrder(form, "event_order")
		if err != nil {
			return nil, err
		}
		return EditKeyEvent{ID: id, Description: form.Get("event_description"), Order: order}, nil
	case ActionDeleteEvent:
		id, err := formID(form, "event_id")
		if err != nil {
			return nil, err
		}
		return DeleteKeyEvent{ID: id}, nil

	case ActionAddWorldElement:
		return AddWorldElement{Category: form.Get("world_category"), Description: form.Get("world_description")}, nil
	case ActionEditWorldElement:
		id, err := formID(form, "world_element_id")
		if err != nil {
			return nil, err
		}
		return EditWorldElement{ID: id, Category: form.Get("world_category"), Description: form.Get("world_description")}, nil

	case ActionAddCharacter:
		return AddCharacter{
			Name:      form.Get("char_name"),
			Traits:    form.Get("char_traits"),
			Backstory: form.Get("char_backstory"),
		}, nil
	case ActionEditCharacter:
		id, err := formID(form, "character_id")
		if err != nil {
			return nil, err
		}
		return EditCharacter{
			ID:        id,
			Name:      form.Get("char_name"),
			Traits:    form.Get("char_traits"),
			Backstory: form.Get("char_backstory"),
		}, nil
	case ActionDeleteCharacter:
		id, err := formID(form, "character_id")
		if err != nil {
			return nil, err
		}
		return DeleteCharacter{ID: id}, nil

	case ActionGenerateProse:
		selection, err := formSelection(form)
		if err != nil {
			return nil, err
		}
		return GenerateProse{
			Model:     form.Get("model"),
			Preset:    form.Get("prose_preset"),
			Input:     form.Get("scene_input"),
			Selection: selection,
		}, nil
	case ActionExpandBeat:
		selection, err := formSelection(form)
		if err != nil {
			return nil, err
		}
		return ExpandBeat{
			Model:     form.Get("model"),
			Preset:    form.Get("beat_preset"),
			Input:     form.Get("beat_scene_input"),
			Selection: selection,
		}, nil
	case ActionSummarize:
		return SummarizeChapter{Model: form.Get("model")}, nil
	}

	return nil, apperrors.Validation("unknown action %q", action)
}

func decodeSave(form url.Values) SaveChapter {
	return SaveChapter{
		Title:   form.Get("title"),
		Summary: form.Get("summary"),
		Text:    form.Get("text"),
	}
}

func isGeneration(cmd Command) bool {
	switch cmd.(type) {
	case GenerateProse, ExpandBeat, SummarizeChapter:
		return true
	}
	return false
}

func formBool(form url.Values, key string) bool {
	v, err := strconv.ParseBool(strings.TrimSpace(form.Get(key)))
	return err == nil && v
}

func formID(form url.Values, key string) (uint, error) {
	raw := strings.TrimSpace(form.Get(key))
	if raw == "" {
		return 0, apperrors.Validation("%s is required", key)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, apperrors.Validation("%s must be a positive integer", key)
	}
	return uint(id), nil
}

// formOrder 空值返回 nil（由服务层决定默认值）
func formOrder(form url.Values, key string) (*int, error) {
	raw := strings.TrimSpace(form.Get(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperrors.Validation("%s must be an integer", key)
	}
	return &v, nil
}

// formSelection 字段不存在返回 nil；存在但全为空值返回空切片（显式选择了零个角色）
func formSelection(form url.Values) ([]uint, error) {
	values, ok := form["selected_characters"]
	if !ok {
		return nil, nil
	}
	ids := make([]uint, 0, len(values))
	for _, raw := range values {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, apperrors.Validation("selected_characters must contain character ids")
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
