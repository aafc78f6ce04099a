package workspace

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"story-engine/internal/application/content"
	"story-engine/internal/application/generation"
	"story-engine/internal/application/prompt"
	"story-engine/internal/domain/entity"
	apperrors "story-engine/pkg/errors"
	"story-engine/pkg/logger"
	"story-engine/pkg/metrics"
)

// ModelCatalog 可选模型列表，仅用于展示，不参与校验
type ModelCatalog interface {
	DefaultModel() string
	Models() []string
}

// Outputs 本次请求的生成结果（不持久化）
type Outputs struct {
	Prose     string `json:"prose,omitempty"`
	BeatScene string `json:"beat_scene,omitempty"`
	Summary   string `json:"summary,omitempty"`
}

// View 工作台视图模型
type View struct {
	Story              *entity.Story          `json:"story"`
	Chapter            *entity.Chapter        `json:"chapter"`
	Characters         []*entity.Character    `json:"characters"`
	DetectedCharacters []string               `json:"detected_characters"`
	SceneBeats         []*entity.SceneBeat    `json:"scene_beats"`
	KeyEvents          []*entity.KeyEvent     `json:"key_events"`
	WorldElements      []*entity.WorldElement `json:"world_elements"`
	WorldCategories    []entity.WorldCategory `json:"world_categories"`
	ProsePreset        string                 `json:"prose_preset"`
	BeatPreset         string                 `json:"beat_preset"`
	Models             []string               `json:"models"`
	DefaultModel       string                 `json:"default_model"`
	Outputs            Outputs                `json:"outputs"`
}

// Service 工作台服务
type Service struct {
	content   *content.Service
	generator generation.Generator
	catalog   ModelCatalog
}

// NewService 创建工作台服务
func NewService(contentSvc *content.Service, generator generation.Generator, catalog ModelCatalog) *Service {
	return &Service{
		content:   contentSvc,
		generator: generator,
		catalog:   catalog,
	}
}

// Load 构建工作台视图；detectInput 用于角色识别（为空时列出全部角色）
func (s *Service) Load(ctx context.Context, accountID, storyID, chapterID uint, detectInput string) (*View, error) {
	ctx = withChapterScope(ctx, storyID, chapterID)
	chapter, err := s.content.GetChapter(ctx, accountID, storyID, chapterID)
	if err != nil {
		return nil, err
	}

	view := &View{
		Chapter:         chapter,
		WorldCategories: entity.WorldCategories(),
		ProsePreset:     prompt.DefaultProsePreset,
		BeatPreset:      prompt.DefaultBeatPreset,
		Models:          s.catalog.Models(),
		DefaultModel:    s.catalog.DefaultModel(),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		story, err := s.content.GetStory(gctx, accountID, storyID)
		view.Story = story
		return err
	})
	g.Go(func() error {
		characters, err := s.content.ListCharacters(gctx, accountID, storyID)
		view.Characters = characters
		return err
	})
	g.Go(func() error {
		beats, err := s.content.ListSceneBeats(gctx, accountID, storyID, chapterID)
		view.SceneBeats = beats
		return err
	})
	g.Go(func() error {
		events, err := s.content.ListKeyEvents(gctx, accountID, storyID, chapterID)
		view.KeyEvents = events
		return err
	})
	g.Go(func() error {
		elements, err := s.content.ListWorldElements(gctx, accountID, storyID, chapterID)
		view.WorldElements = elements
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	view.DetectedCharacters = prompt.DetectCharacters(detectInput, view.Characters)
	return view, nil
}

// Submit 按顺序执行命令并返回最新视图
//
// 校验、不存在、越权错误立即中止（已执行的命令保持提交）；生成失败写入占位文本后继续。
func (s *Service) Submit(ctx context.Context, accountID, storyID, chapterID uint, cmds []Command) (*View, error) {
	ctx = withChapterScope(ctx, storyID, chapterID)
	var (
		out         Outputs
		prosePreset string
		beatPreset  string
		detectInput string
	)

	for _, cmd := range cmds {
		switch c := cmd.(type) {
		case GenerateProse:
			prosePreset, detectInput = c.Preset, c.Input
		case ExpandBeat:
			beatPreset, detectInput = c.Preset, c.Input
		case AddSceneBeat:
			detectInput = c.Description
		}

		text, err := s.execute(ctx, accountID, storyID, chapterID, cmd)
		if err != nil {
			if !generation.IsGenerationError(err) {
				return nil, err
			}
			text = generation.Placeholder(err)
		}

		switch cmd.(type) {
		case GenerateProse:
			out.Prose = text
		case ExpandBeat:
			out.BeatScene = text
		case SummarizeChapter:
			out.Summary = text
		}
	}

	view, err := s.Load(ctx, accountID, storyID, chapterID, detectInput)
	if err != nil {
		return nil, err
	}
	if prosePreset != "" {
		view.ProsePreset = prosePreset
	}
	if beatPreset != "" {
		view.BeatPreset = beatPreset
	}
	view.Outputs = out
	return view, nil
}

// Generate 执行单个生成命令，生成失败以 GenerationError 返回
func (s *Service) Generate(ctx context.Context, accountID, storyID, chapterID uint, cmd Command) (string, error) {
	if !isGeneration(cmd) {
		return "", apperrors.Validation("%T is not a generation command", cmd)
	}
	ctx = withChapterScope(ctx, storyID, chapterID)
	return s.execute(ctx, accountID, storyID, chapterID, cmd)
}

// execute 对命令做穷举分派；生成类命令返回模型输出
func (s *Service) execute(ctx context.Context, accountID, storyID, chapterID uint, cmd Command) (string, error) {
	var err error

	switch c := cmd.(type) {
	case SaveChapter:
		_, err = s.content.SaveChapterBody(ctx, accountID, storyID, chapterID, c.Title, c.Summary, c.Text)

	case AddSceneBeat:
		_, err = s.content.AddSceneBeat(ctx, accountID, storyID, chapterID, c.Description, c.Order)
	case EditSceneBeat:
		_, err = s.content.EditSceneBeat(ctx, accountID, storyID, chapterID, c.ID, c.Description, c.Order)
	case DeleteSceneBeat:
		err = s.content.DeleteSceneBeat(ctx, accountID, storyID, chapterID, c.ID)

	case AddKeyEvent:
		_, err = s.content.AddKeyEvent(ctx, accountID, storyID, chapterID, c.Description, c.Order)
	case EditKeyEvent:
		_, err = s.content.EditKeyEvent(ctx, accountID, storyID, chapterID, c.ID, c.Description, c.Order)
	case DeleteKeyEvent:
		err = s.content.DeleteKeyEvent(ctx, accountID, storyID, chapterID, c.ID)

	case AddWorldElement:
		_, err = s.content.AddWorldElement(ctx, accountID, storyID, chapterID, c.Category, c.Description)
	case EditWorldElement:
		_, err = s.content.EditWorldElement(ctx, accountID, storyID, chapterID, c.ID, c.Category, c.Description)

	case AddCharacter:
		_, err = s.content.UpsertCharacter(ctx, accountID, storyID, content.CharacterInput{
			Name:      c.Name,
			Traits:    c.Traits,
			Backstory: c.Backstory,
		})
	case EditCharacter:
		_, err = s.content.UpsertCharacter(ctx, accountID, storyID, content.CharacterInput{
			ID:        c.ID,
			Name:      c.Name,
			Traits:    c.Traits,
			Backstory: c.Backstory,
		})
	case DeleteCharacter:
		err = s.content.DeleteCharacter(ctx, accountID, storyID, c.ID)

	case GenerateProse:
		return s.compose(ctx, accountID, storyID, chapterID, prompt.KindProse, c.Preset, c.Input, c.Selection, c.Model)
	case ExpandBeat:
		return s.compose(ctx, accountID, storyID, chapterID, prompt.KindBeat, c.Preset, c.Input, c.Selection, c.Model)
	case SummarizeChapter:
		return s.summarize(ctx, accountID, storyID, chapterID, c.Model)

	default:
		return "", fmt.Errorf("unhandled workspace command %T", cmd)
	}

	return "", err
}

func (s *Service) compose(ctx context.Context, accountID, storyID, chapterID uint, kind prompt.Kind, preset, input string, selection []uint, modelID string) (string, error) {
	chapter, err := s.content.GetChapter(ctx, accountID, storyID, chapterID)
	if err != nil {
		return "", err
	}
	characters, err := s.content.ListCharacters(ctx, accountID, storyID)
	if err != nil {
		return "", err
	}
	elements, err := s.content.ListWorldElements(ctx, accountID, storyID, chapterID)
	if err != nil {
		return "", err
	}

	text := prompt.Build(prompt.Request{
		Kind:          kind,
		Preset:        preset,
		Input:         input,
		Characters:    characters,
		Selection:     selection,
		ChapterText:   chapter.Text,
		WorldElements: elements,
	})
	return s.send(ctx, kind.String(), text, modelID)
}

func (s *Service) summarize(ctx context.Context, accountID, storyID, chapterID uint, modelID string) (string, error) {
	chapter, err := s.content.GetChapter(ctx, accountID, storyID, chapterID)
	if err != nil {
		return "", err
	}
	return s.send(ctx, "summary", prompt.SummaryPrompt(chapter.Text), modelID)
}

func (s *Service) send(ctx context.Context, kind, text, modelID string) (string, error) {
	if strings.TrimSpace(modelID) == "" {
		modelID = s.catalog.DefaultModel()
	}

	words := prompt.WordCount(text)
	metrics.LLMPromptWords.WithLabelValues(kind).Observe(float64(words))
	logger.Debug(ctx, "workspace generation", "kind", kind, "model", modelID, "prompt_words", words)

	return s.generator.Generate(ctx, text, modelID)
}

// withChapterScope 为后续日志附加 story_id 与 chapter_id
func withChapterScope(ctx context.Context, storyID, chapterID uint) context.Context {
	ctx = logger.WithContext(ctx, logger.StoryIDKey, storyID)
	return logger.WithContext(ctx, logger.ChapterIDKey, chapterID)
}
