package llm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"story-engine/internal/config"
)

func TestNewOpenRouterFactory_Defaults(t *testing.T) {
	f := NewOpenRouterFactory(&config.Config{})

	assert.False(t, f.Configured())
	assert.Equal(t, DefaultTimeout, f.Timeout())
	assert.Equal(t, DefaultBaseURL, f.cfg.BaseURL)
	assert.Equal(t, DefaultSiteURL, f.cfg.SiteURL)
	assert.Equal(t, DefaultSiteName, f.cfg.SiteName)
}

func TestOpenRouterFactory_MissingKey(t *testing.T) {
	f := NewOpenRouterFactory(&config.Config{})

	for i := 0; i < 2; i++ {
		m, err := f.Get(context.Background())
		assert.Nil(t, m)
		assert.ErrorIs(t, err, ErrAPIKeyNotConfigured)
	}
}

func TestOpenRouterFactory_GetOnce(t *testing.T) {
	cfg := &config.Config{}
	cfg.LLM.OpenRouter.APIKey = "sk-test"
	f := NewOpenRouterFactory(cfg)

	first, err := f.Get(context.Background())
	require.NoError(t, err)
	second, err := f.Get(context.Background())
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestOpenRouterFactory_ModelsIsCopy(t *testing.T) {
	cfg := &config.Config{}
	cfg.LLM.OpenRouter.Models = []string{"a", "b"}
	f := NewOpenRouterFactory(cfg)

	models := f.Models()
	models[0] = "changed"
	assert.Equal(t, []string{"a", "b"}, f.Models())
}

func TestHeaderTransport_InjectsSiteHeaders(t *testing.T) {
	var got http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	cfg := &config.Config{}
	cfg.LLM.OpenRouter.SiteURL = "https://stories.example"
	cfg.LLM.OpenRouter.SiteName = "Exile"
	cfg.LLM.OpenRouter.Timeout = 5 * time.Second
	client := NewOpenRouterFactory(cfg).httpClient()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	require.NoError(t, err)
	req.Header.Set("X-Existing", "kept")

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, "https://stories.example", got.Get("HTTP-Referer"))
	assert.Equal(t, "Exile", got.Get("X-Title"))
	assert.Equal(t, "kept", got.Get("X-Existing"))
	assert.Empty(t, req.Header.Get("X-Title"), "caller request must not be mutated")
}
