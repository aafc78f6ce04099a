// Package llm 提供基于 Eino 的 OpenRouter ChatModel 客户端
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"

	"story-engine/internal/config"
)

const (
	DefaultBaseURL  = "https://openrouter.ai/api/v1"
	DefaultSiteURL  = "http://localhost:5000"
	DefaultSiteName = "StoryEngine"
	DefaultTimeout  = 120 * time.Second
)

// ErrAPIKeyNotConfigured 未配置 OPENROUTER_API_KEY；进程照常启动，每次生成调用失败
var ErrAPIKeyNotConfigured = errors.New("openrouter api key not configured")

// OpenRouterFactory 管理进程内唯一的 OpenRouter ChatModel 实例
//
// 客户端在首次 Get 时初始化且只初始化一次，之后所有请求复用同一实例。
type OpenRouterFactory struct {
	cfg config.OpenRouterConfig

	once      sync.Once
	chatModel model.BaseChatModel
	err       error
}

// NewOpenRouterFactory 创建 OpenRouter 工厂
func NewOpenRouterFactory(cfg *config.Config) *OpenRouterFactory {
	c := cfg.LLM.OpenRouter
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.SiteURL == "" {
		c.SiteURL = DefaultSiteURL
	}
	if c.SiteName == "" {
		c.SiteName = DefaultSiteName
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	return &OpenRouterFactory{cfg: c}
}

// Configured 是否已配置 API Key
func (f *OpenRouterFactory) Configured() bool {
	return strings.TrimSpace(f.cfg.APIKey) != ""
}

// Timeout 单次调用的时间预算
func (f *OpenRouterFactory) Timeout() time.Duration {
	return f.cfg.Timeout
}

// DefaultModel 默认模型
func (f *OpenRouterFactory) DefaultModel() string {
	return f.cfg.DefaultModel
}

// Models 可选模型列表（仅展示，不做校验）
func (f *OpenRouterFactory) Models() []string {
	out := make([]string, len(f.cfg.Models))
	copy(out, f.cfg.Models)
	return out
}

// Get 获取 ChatModel
func (f *OpenRouterFactory) Get(ctx context.Context) (model.BaseChatModel, error) {
	if !f.Configured() {
		return nil, ErrAPIKeyNotConfigured
	}

	f.once.Do(func() {
		f.chatModel, f.err = openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:     f.cfg.APIKey,
			BaseURL:    f.cfg.BaseURL,
			Model:      f.cfg.DefaultModel,
			HTTPClient: f.httpClient(),
		})
		if f.err != nil {
			f.err = fmt.Errorf("failed to create openrouter chat model: %w", f.err)
		}
	})
	return f.chatModel, f.err
}

// httpClient 带站点标识头与固定超时的 HTTP 客户端
func (f *OpenRouterFactory) httpClient() *http.Client {
	headers := http.Header{}
	headers.Set("HTTP-Referer", f.cfg.SiteURL)
	headers.Set("X-Title", f.cfg.SiteName)

	return &http.Client{
		Timeout: f.cfg.Timeout,
		Transport: &headerTransport{
			base:    http.DefaultTransport,
			headers: headers,
		},
	}
}

// headerTransport 为每个出站请求附加固定请求头
type headerTransport struct {
	base    http.RoundTripper
	headers http.Header
}

func (t *headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	for k, v := range t.headers {
		req.Header[k] = append([]string(nil), v...)
	}
	return t.base.RoundTrip(req)
}
