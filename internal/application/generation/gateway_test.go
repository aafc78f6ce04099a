package generation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"story-engine/internal/config"
	"story-engine/internal/infrastructure/llm"
	apperrors "story-engine/pkg/errors"
)

type fakeChatModel struct {
	reply    string
	err      error
	block    bool
	calls    int
	gotModel string
	gotMsgs  []*schema.Message
}

func (f *fakeChatModel) Generate(ctx context.Context, in []*schema.Message, opts ...model.Option) (*schema.Message, error) {
	f.calls++
	f.gotMsgs = in
	if o := model.GetCommonOptions(&model.Options{}, opts...); o.Model != nil {
		f.gotModel = *o.Model
	}
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if f.err != nil {
		return nil, f.err
	}
	return schema.AssistantMessage(f.reply, nil), nil
}

func (f *fakeChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not supported")
}

type fakeFactory struct {
	chatModel model.BaseChatModel
	err       error
}

func (f *fakeFactory) Get(context.Context) (model.BaseChatModel, error) {
	return f.chatModel, f.err
}

func TestGateway_TrimsAndPassesModelThrough(t *testing.T) {
	cm := &fakeChatModel{reply: "\n  The gate fell.  \n"}
	g := NewGateway(&fakeFactory{chatModel: cm}, time.Second)

	out, err := g.Generate(context.Background(), "PROMPT", "some/unlisted-model:free")
	require.NoError(t, err)
	assert.Equal(t, "The gate fell.", out)
	assert.Equal(t, "some/unlisted-model:free", cm.gotModel)
	require.Len(t, cm.gotMsgs, 1)
	assert.Equal(t, schema.User, cm.gotMsgs[0].Role)
	assert.Equal(t, "PROMPT", cm.gotMsgs[0].Content)
}

func TestGateway_BlankModelIsValidation(t *testing.T) {
	cm := &fakeChatModel{reply: "x"}
	g := NewGateway(&fakeFactory{chatModel: cm}, time.Second)

	_, err := g.Generate(context.Background(), "PROMPT", "  ")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidParam))
	assert.Equal(t, 0, cm.calls)
}

func TestGateway_FailureIsGenerationError(t *testing.T) {
	cm := &fakeChatModel{err: errors.New("quota exceeded")}
	g := NewGateway(&fakeFactory{chatModel: cm}, time.Second)

	_, err := g.Generate(context.Background(), "PROMPT", "m")
	require.Error(t, err)
	assert.True(t, IsGenerationError(err))
	assert.Equal(t, http.StatusBadGateway, apperrors.AsAppError(err).HTTPStatus)
	assert.Equal(t, "[AI Error: quota exceeded]", Placeholder(err))
	assert.Equal(t, 1, cm.calls, "no retry")
}

func TestGateway_FactoryErrorIsGenerationError(t *testing.T) {
	g := NewGateway(&fakeFactory{err: llm.ErrAPIKeyNotConfigured}, time.Second)

	_, err := g.Generate(context.Background(), "PROMPT", "m")
	assert.True(t, IsGenerationError(err))
	assert.ErrorIs(t, err, llm.ErrAPIKeyNotConfigured)
	assert.Contains(t, Placeholder(err), "api key not configured")
}

func TestGateway_Timeout(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	cm := &fakeChatModel{block: true}
	g := NewGateway(&fakeFactory{chatModel: cm}, 20*time.Millisecond)

	start := time.Now()
	_, err := g.Generate(context.Background(), "PROMPT", "m")
	assert.True(t, IsGenerationError(err))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestPlaceholder_PlainError(t *testing.T) {
	assert.Equal(t, "[AI Error: boom]", Placeholder(errors.New("boom")))
}

func TestGateway_OpenRouterWireContract(t *testing.T) {
	type captured struct {
		path, auth, referer, title string
		body                       map[string]any
	}
	var got captured

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.auth = r.Header.Get("Authorization")
		got.referer = r.Header.Get("HTTP-Referer")
		got.title = r.Header.Get("X-Title")
		_ = json.NewDecoder(r.Body).Decode(&got.body)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "gen-1",
			"object": "chat.completion",
			"created": 1700000000,
			"model": "moonshotai/kimi-k2",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "  Mira runs.\n"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 3, "completion_tokens": 2, "total_tokens": 5}
		}`))
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.LLM.OpenRouter = config.OpenRouterConfig{
		APIKey:       "sk-or-test",
		BaseURL:      srv.URL + "/api/v1",
		SiteURL:      "https://stories.example",
		SiteName:     "StoryEngine",
		DefaultModel: "deepseek/deepseek-chat-v3.1",
		Timeout:      5 * time.Second,
	}
	factory := llm.NewOpenRouterFactory(cfg)
	g := NewGateway(factory, factory.Timeout())

	out, err := g.Generate(context.Background(), "Write the scene.", "moonshotai/kimi-k2")
	require.NoError(t, err)
	assert.Equal(t, "Mira runs.", out)

	assert.True(t, strings.HasSuffix(got.path, "/chat/completions"), got.path)
	assert.Equal(t, "Bearer sk-or-test", got.auth)
	assert.Equal(t, "https://stories.example", got.referer)
	assert.Equal(t, "StoryEngine", got.title)
	assert.Equal(t, "moonshotai/kimi-k2", got.body["model"])

	msgs, ok := got.body["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 1)
	first := msgs[0].(map[string]any)
	assert.Equal(t, "user", first["role"])
	assert.Equal(t, "Write the scene.", first["content"])
}

func TestGateway_UnreachableEndpoint(t *testing.T) {
	cfg := &config.Config{}
	cfg.LLM.OpenRouter = config.OpenRouterConfig{
		APIKey:  "sk-or-test",
		BaseURL: "http://127.0.0.1:1/api/v1",
		Timeout: 2 * time.Second,
	}
	factory := llm.NewOpenRouterFactory(cfg)
	g := NewGateway(factory, factory.Timeout())

	_, err := g.Generate(context.Background(), "prompt", "deepseek/deepseek-chat-v3.1")
	require.Error(t, err)
	assert.True(t, IsGenerationError(err))

	text := Placeholder(err)
	assert.True(t, strings.HasPrefix(text, "[AI Error: "))
	assert.Greater(t, len(text), len("[AI Error: ]"))
}
