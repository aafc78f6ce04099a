package workspace

import (
	"context"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"story-engine/internal/application/content"
	"story-engine/internal/application/prompt"
	"story-engine/internal/config"
	"story-engine/internal/domain/entity"
	"story-engine/internal/infrastructure/persistence/postgres"
	apperrors "story-engine/pkg/errors"
)

type fakeGenerator struct {
	out     string
	err     error
	prompts []string
	models  []string
}

func (f *fakeGenerator) Generate(_ context.Context, text, modelID string) (string, error) {
	f.prompts = append(f.prompts, text)
	f.models = append(f.models, modelID)
	if f.err != nil {
		return "", f.err
	}
	return f.out, nil
}

type staticCatalog struct{}

func (staticCatalog) DefaultModel() string { return "deepseek/deepseek-chat-v3.1" }
func (staticCatalog) Models() []string {
	return []string{"deepseek/deepseek-chat-v3.1", "moonshotai/kimi-k2"}
}

type fixture struct {
	svc       *Service
	content   *content.Service
	gen       *fakeGenerator
	account   uint
	storyID   uint
	chapterID uint
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	client, err := postgres.NewClient(&config.DatabaseConfig{
		Driver: postgres.DriverSQLite,
		SQLite: config.SQLiteConfig{Path: ":memory:"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.AutoMigrate(ctx))

	contentSvc := content.NewService(
		postgres.NewTxManager(client),
		postgres.NewStoryRepository(client),
		postgres.NewChapterRepository(client),
		postgres.NewCharacterRepository(client),
		postgres.NewPlotNotesRepository(client),
		postgres.NewSceneBeatRepository(client),
		postgres.NewKeyEventRepository(client),
		postgres.NewWorldElementRepository(client),
	)

	account := entity.NewAccount("alice", "")
	account.PasswordHash = "x"
	require.NoError(t, postgres.NewAccountRepository(client).Create(ctx, account))

	story, err := contentSvc.CreateStory(ctx, account.ID, "Exile", "")
	require.NoError(t, err)
	chapters, err := contentSvc.ListChapters(ctx, account.ID, story.ID)
	require.NoError(t, err)
	require.Len(t, chapters, 1)

	gen := &fakeGenerator{out: "GENERATED"}
	return &fixture{
		svc:       NewService(contentSvc, gen, staticCatalog{}),
		content:   contentSvc,
		gen:       gen,
		account:   account.ID,
		storyID:   story.ID,
		chapterID: chapters[0].ID,
	}
}

func (f *fixture) submit(t *testing.T, form url.Values) (*View, error) {
	t.Helper()
	cmds, err := Decode(form)
	require.NoError(t, err)
	return f.svc.Submit(context.Background(), f.account, f.storyID, f.chapterID, cmds)
}

func TestLoad_View(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.content.UpsertCharacter(ctx, f.account, f.storyID, content.CharacterInput{Name: "Mira"})
	require.NoError(t, err)
	_, err = f.content.UpsertCharacter(ctx, f.account, f.storyID, content.CharacterInput{Name: "Tobias"})
	require.NoError(t, err)

	view, err := f.svc.Load(ctx, f.account, f.storyID, f.chapterID, "Mira opens the gate")
	require.NoError(t, err)

	assert.Equal(t, "Exile", view.Story.Title)
	assert.Equal(t, "Chapter 1", view.Chapter.Title)
	assert.Len(t, view.Characters, 2)
	assert.Equal(t, []string{"Mira"}, view.DetectedCharacters)
	assert.Equal(t, prompt.DefaultProsePreset, view.ProsePreset)
	assert.Equal(t, prompt.DefaultBeatPreset, view.BeatPreset)
	assert.Equal(t, "deepseek/deepseek-chat-v3.1", view.DefaultModel)
	assert.Len(t, view.Models, 2)
	assert.Len(t, view.WorldCategories, 5)

	view, err = f.svc.Load(ctx, f.account, f.storyID, f.chapterID, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Mira", "Tobias"}, view.DetectedCharacters)
}

func TestLoad_WrongStoryIsForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other, err := f.content.CreateStory(ctx, f.account, "Other", "")
	require.NoError(t, err)

	_, err = f.svc.Load(ctx, f.account, other.ID, f.chapterID, "")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))
}

func TestSubmit_MutationsInOrder(t *testing.T) {
	f := newFixture(t)

	view, err := f.submit(t, url.Values{"action": {ActionAddBeat}, "beat_description": {"second"}, "beat_order": {"2"}})
	require.NoError(t, err)
	require.Len(t, view.SceneBeats, 1)

	view, err = f.submit(t, url.Values{"action": {ActionAddBeat}, "beat_description": {"first"}})
	require.NoError(t, err)
	require.Len(t, view.SceneBeats, 2)
	assert.Equal(t, "first", view.SceneBeats[0].Description)
	assert.Equal(t, entity.DefaultOrder, view.SceneBeats[0].Order)

	view, err = f.submit(t, url.Values{"action": {ActionAddWorldElement}, "world_description": {"salt flats"}})
	require.NoError(t, err)
	require.Len(t, view.WorldElements, 1)
	assert.Equal(t, entity.WorldCategorySettings, view.WorldElements[0].Category)

	view, err = f.submit(t, url.Values{"action": {ActionAddCharacter}, "char_name": {"Mira"}, "char_traits": {"stubborn"}})
	require.NoError(t, err)
	require.Len(t, view.Characters, 1)
	assert.Empty(t, f.gen.prompts)
}

func TestSubmit_ValidationAborts(t *testing.T) {
	f := newFixture(t)

	_, err := f.submit(t, url.Values{"action": {ActionAddBeat}, "beat_description": {"  "}})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidParam))

	_, err = f.submit(t, url.Values{"action": {ActionAddCharacter}, "char_name": {""}})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidParam))

	_, err = f.submit(t, url.Values{"action": {ActionAddWorldElement}, "world_category": {"Weather"}, "world_description": {"rain"}})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidParam))

	view, err := f.svc.Load(context.Background(), f.account, f.storyID, f.chapterID, "")
	require.NoError(t, err)
	assert.Empty(t, view.SceneBeats)
	assert.Empty(t, view.Characters)
	assert.Empty(t, view.WorldElements)
}

func TestSubmit_BeatFromOtherChapterIsForbidden(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	other, err := f.content.AddChapter(ctx, f.account, f.storyID, "")
	require.NoError(t, err)
	beat, err := f.content.AddSceneBeat(ctx, f.account, f.storyID, other.ID, "elsewhere", nil)
	require.NoError(t, err)

	_, err = f.submit(t, url.Values{"action": {ActionDeleteBeat}, "beat_id": {uintString(beat.ID)}})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeForbidden))

	beats, err := f.content.ListSceneBeats(ctx, f.account, f.storyID, other.ID)
	require.NoError(t, err)
	assert.Len(t, beats, 1)
}

func TestSubmit_GenerateProseUsesSavedContext(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	mira, err := f.content.UpsertCharacter(ctx, f.account, f.storyID, content.CharacterInput{Name: "Mira", Traits: "stubborn"})
	require.NoError(t, err)
	_, err = f.content.UpsertCharacter(ctx, f.account, f.storyID, content.CharacterInput{Name: "Tobias"})
	require.NoError(t, err)
	_, err = f.content.AddWorldElement(ctx, f.account, f.storyID, f.chapterID, "History", "the war")
	require.NoError(t, err)

	view, err := f.submit(t, url.Values{
		"action":              {ActionGenerateProse},
		"save_chapter":        {"true"},
		"title":               {"Arrival"},
		"text":                {"The caravan stopped."},
		"scene_input":         {"Mira climbs the wall"},
		"selected_characters": {uintString(mira.ID)},
		"prose_preset":        {"Write tersely."},
	})
	require.NoError(t, err)

	require.Len(t, f.gen.prompts, 1)
	got := f.gen.prompts[0]
	assert.True(t, strings.HasPrefix(got, "Write tersely.\n\n"))
	assert.Contains(t, got, "Character Information:\nName: Mira\nTraits: stubborn\n\n")
	assert.NotContains(t, got, "Tobias")
	assert.Contains(t, got, "Scene: Mira climbs the wall\n\n")
	assert.Contains(t, got, "Recent chapter context (last 2000 words):\nThe caravan stopped.\n\n")
	assert.True(t, strings.HasSuffix(got, "World Building Elements:\n- History: the war"))
	assert.Equal(t, []string{"deepseek/deepseek-chat-v3.1"}, f.gen.models)

	assert.Equal(t, "GENERATED", view.Outputs.Prose)
	assert.Equal(t, "Arrival", view.Chapter.Title)
	assert.Equal(t, "Write tersely.", view.ProsePreset)
	assert.Equal(t, []string{"Mira"}, view.DetectedCharacters)
}

func TestSubmit_ExpandBeatDetectsCharacters(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.content.UpsertCharacter(ctx, f.account, f.storyID, content.CharacterInput{Name: "Ann"})
	require.NoError(t, err)

	view, err := f.submit(t, url.Values{
		"action":           {ActionExpandBeat},
		"beat_scene_input": {"Anna is caught"},
		"model":            {"x-ai/grok-code-fast-1"},
	})
	require.NoError(t, err)

	require.Len(t, f.gen.prompts, 1)
	assert.True(t, strings.HasPrefix(f.gen.prompts[0], prompt.DefaultBeatPreset+"\n\n"))
	assert.Contains(t, f.gen.prompts[0], "Characters in scene: no characters\nBeat/Scene Input: Anna is caught\n\n")
	assert.Equal(t, []string{"x-ai/grok-code-fast-1"}, f.gen.models)
	assert.Equal(t, "GENERATED", view.Outputs.BeatScene)
	assert.Empty(t, view.Outputs.Prose)
}

func TestSubmit_SummarizeChapter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.content.SaveChapterBody(ctx, f.account, f.storyID, f.chapterID, "One", "", "Mira ran. Tobias followed.")
	require.NoError(t, err)

	view, err := f.submit(t, url.Values{"action": {ActionSummarize}})
	require.NoError(t, err)

	require.Len(t, f.gen.prompts, 1)
	assert.Equal(t, prompt.SummaryPrompt("Mira ran. Tobias followed."), f.gen.prompts[0])
	assert.Equal(t, "GENERATED", view.Outputs.Summary)
}

// 生成失败时，同一次提交中先执行的保存仍然生效
func TestSubmit_SavePersistsDespiteGenerationFailure(t *testing.T) {
	f := newFixture(t)
	f.gen.err = apperrors.Wrap(errors.New("upstream unavailable"), apperrors.CodeGenerationFailed, "generation failed")

	view, err := f.submit(t, url.Values{
		"action":       {ActionGenerateProse},
		"save_chapter": {"true"},
		"title":        {"Draft"},
		"summary":      {"s"},
		"text":         {"kept text"},
		"scene_input":  {"x"},
	})
	require.NoError(t, err)
	assert.Equal(t, "[AI Error: upstream unavailable]", view.Outputs.Prose)

	chapter, err := f.content.GetChapter(context.Background(), f.account, f.storyID, f.chapterID)
	require.NoError(t, err)
	assert.Equal(t, "Draft", chapter.Title)
	assert.Equal(t, "s", chapter.Summary)
	assert.Equal(t, "kept text", chapter.Text)
}

func TestSubmit_NonGenerationErrorFromGeneratorAborts(t *testing.T) {
	f := newFixture(t)
	f.gen.err = apperrors.Validation("model is required")

	_, err := f.submit(t, url.Values{"action": {ActionSummarize}})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidParam))
}

func TestGenerate_ReturnsGenerationError(t *testing.T) {
	f := newFixture(t)
	f.gen.err = apperrors.Wrap(errors.New("boom"), apperrors.CodeGenerationFailed, "generation failed")
	ctx := context.Background()

	_, err := f.svc.Generate(ctx, f.account, f.storyID, f.chapterID, ExpandBeat{Input: "x"})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeGenerationFailed))

	_, err = f.svc.Generate(ctx, f.account, f.storyID, f.chapterID, SaveChapter{})
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidParam))
}

func uintString(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}
