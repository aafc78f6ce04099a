package workspace

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "story-engine/pkg/errors"
)

func TestDecode_MissingActionSavesChapter(t *testing.T) {
	cmds, err := Decode(url.Values{"title": {"One"}, "summary": {""}, "text": {"body"}})
	require.NoError(t, err)
	assert.Equal(t, []Command{SaveChapter{Title: "One", Text: "body"}}, cmds)
}

func TestDecode_GenerationWithSaveIsPrecededBySave(t *testing.T) {
	form := url.Values{
		"action":       {ActionGenerateProse},
		"save_chapter": {"true"},
		"title":        {"T"},
		"text":         {"draft"},
		"model":        {"x-ai/grok-4-fast:free"},
		"scene_input":  {"Mira runs"},
	}

	cmds, err := Decode(form)
	require.NoError(t, err)
	require.Len(t, cmds, 2)
	assert.Equal(t, SaveChapter{Title: "T", Text: "draft"}, cmds[0])
	assert.Equal(t, GenerateProse{Model: "x-ai/grok-4-fast:free", Input: "Mira runs"}, cmds[1])
}

func TestDecode_GenerationWithoutSave(t *testing.T) {
	cmds, err := Decode(url.Values{"action": {ActionSummarize}, "model": {"m"}})
	require.NoError(t, err)
	assert.Equal(t, []Command{SummarizeChapter{Model: "m"}}, cmds)
}

func TestDecode_SaveFlagIgnoredForMutations(t *testing.T) {
	cmds, err := Decode(url.Values{"action": {ActionDeleteBeat}, "beat_id": {"4"}, "save_chapter": {"true"}})
	require.NoError(t, err)
	assert.Equal(t, []Command{DeleteSceneBeat{ID: 4}}, cmds)
}

func TestDecode_Order(t *testing.T) {
	cmds, err := Decode(url.Values{"action": {ActionAddBeat}, "beat_description": {"gate"}})
	require.NoError(t, err)
	assert.Nil(t, cmds[0].(AddSceneBeat).Order)

	cmds, err = Decode(url.Values{"action": {ActionEditEvent}, "event_id": {"2"}, "event_order": {"0"}})
	require.NoError(t, err)
	edit := cmds[0].(EditKeyEvent)
	require.NotNil(t, edit.Order)
	assert.Equal(t, 0, *edit.Order)

	_, err = Decode(url.Values{"action": {ActionAddEvent}, "event_order": {"first"}})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidParam))
}

func TestDecode_IDsRequired(t *testing.T) {
	for _, action := range []string{
		ActionEditBeat, ActionDeleteBeat, ActionEditEvent, ActionDeleteEvent,
		ActionEditWorldElement, ActionEditCharacter, ActionDeleteCharacter,
	} {
		t.Run(action, func(t *testing.T) {
			_, err := Decode(url.Values{"action": {action}})
			assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidParam))
		})
	}
}

func TestDecode_Selection(t *testing.T) {
	cmds, err := Decode(url.Values{"action": {ActionExpandBeat}, "beat_scene_input": {"x"}})
	require.NoError(t, err)
	assert.Nil(t, cmds[0].(ExpandBeat).Selection)

	cmds, err = Decode(url.Values{"action": {ActionExpandBeat}, "selected_characters": {""}})
	require.NoError(t, err)
	sel := cmds[0].(ExpandBeat).Selection
	require.NotNil(t, sel)
	assert.Empty(t, sel)

	cmds, err = Decode(url.Values{"action": {ActionExpandBeat}, "selected_characters": {"3", "1"}})
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 1}, cmds[0].(ExpandBeat).Selection)

	_, err = Decode(url.Values{"action": {ActionExpandBeat}, "selected_characters": {"Mira"}})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidParam))
}

func TestDecode_UnknownAction(t *testing.T) {
	cmds, err := Decode(url.Values{"action": {"query_prose_grok4"}})
	assert.Nil(t, cmds)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidParam))
}

func TestDecode_EveryActionYieldsOneCommand(t *testing.T) {
	ids := url.Values{
		"beat_id": {"1"}, "event_id": {"1"}, "world_element_id": {"1"}, "character_id": {"1"},
	}
	for _, action := range []string{
		ActionSaveChapter, ActionAddBeat, ActionEditBeat, ActionDeleteBeat,
		ActionAddEvent, ActionEditEvent, ActionDeleteEvent,
		ActionAddWorldElement, ActionEditWorldElement,
		ActionAddCharacter, ActionEditCharacter, ActionDeleteCharacter,
		ActionGenerateProse, ActionExpandBeat, ActionSummarize,
	} {
		form := url.Values{"action": {action}}
		for k, v := range ids {
			form[k] = v
		}
		cmds, err := Decode(form)
		require.NoError(t, err, action)
		assert.Len(t, cmds, 1, action)
	}
}
