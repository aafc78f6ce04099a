// Package config 提供配置加载功能
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/viper"
)

var envPattern = regexp.MustCompile(`\${(\w+)(:([^}]*))?}`)

// envBindings 兼容部署环境中约定俗成的变量名
var envBindings = map[string][]string{
	"llm.openrouter.api_key":   {"OPENROUTER_API_KEY"},
	"llm.openrouter.site_url":  {"SITE_URL"},
	"llm.openrouter.site_name": {"SITE_NAME"},
	"server.http.port":         {"PORT"},
	"database.driver":          {"DATABASE_DRIVER"},
	"security.jwt.secret":      {"JWT_SECRET"},
}

// Load 从 configs 目录加载配置
func Load() (*Config, error) {
	return LoadFrom("configs")
}

// LoadFrom 从指定目录加载配置
// 按优先级加载：默认配置 -> 环境配置 -> 环境变量
func LoadFrom(dir string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := loadConfigFile(v, filepath.Join(dir, "config.yaml"), true); err != nil {
		return nil, err
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	envFile := filepath.Join(dir, fmt.Sprintf("config.%s.yaml", env))
	if err := loadConfigFile(v, envFile, true); err != nil {
		return nil, err
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envBindings {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	setDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.App.Env == "" {
		cfg.App.Env = env
	}

	return &cfg, nil
}

// loadConfigFile 读取文件，执行环境变量替换，并合并到 viper
func loadConfigFile(v *viper.Viper, path string, optional bool) error {
	content, err := os.ReadFile(path)
	if err != nil {
		if optional && os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := v.MergeConfig(strings.NewReader(expandEnv(string(content)))); err != nil {
		return fmt.Errorf("failed to merge config %s: %w", path, err)
	}
	return nil
}

// expandEnv 替换字符串中的 ${VAR:default} 占位符
func expandEnv(s string) string {
	return envPattern.ReplaceAllStringFunc(s, func(match string) string {
		sub := envPattern.FindStringSubmatch(match)
		if val, ok := os.LookupEnv(sub[1]); ok {
			return val
		}
		if sub[2] != "" {
			return sub[3]
		}
		// 未定义且无默认值的变量保留原样，便于排查
		return match
	})
}

// MustLoad 加载配置，失败时 panic
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// setDefaults 设置配置默认值
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "story-engine")
	v.SetDefault("app.version", "v0.0.0")

	v.SetDefault("server.http.host", "0.0.0.0")
	v.SetDefault("server.http.port", 5000)
	v.SetDefault("server.http.read_timeout", "30s")
	// 生成请求最长阻塞 120s
	v.SetDefault("server.http.write_timeout", "150s")
	v.SetDefault("server.http.idle_timeout", "120s")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("database.slow_threshold", "200ms")
	v.SetDefault("database.sqlite.path", "storyengine.db")
	v.SetDefault("database.postgres.host", "localhost")
	v.SetDefault("database.postgres.port", 5432)
	v.SetDefault("database.postgres.user", "postgres")
	v.SetDefault("database.postgres.database", "story_engine")
	v.SetDefault("database.postgres.ssl_mode", "disable")
	v.SetDefault("database.postgres.max_open_conns", 25)
	v.SetDefault("database.postgres.max_idle_conns", 5)
	v.SetDefault("database.postgres.conn_max_lifetime", "30m")
	v.SetDefault("database.postgres.conn_max_idle_time", "5m")

	v.SetDefault("cache.redis.enabled", false)
	v.SetDefault("cache.redis.host", "localhost")
	v.SetDefault("cache.redis.port", 6379)
	v.SetDefault("cache.redis.db", 0)
	v.SetDefault("cache.redis.pool_size", 20)
	v.SetDefault("cache.redis.min_idle_conns", 2)
	v.SetDefault("cache.redis.dial_timeout", "5s")
	v.SetDefault("cache.redis.read_timeout", "3s")
	v.SetDefault("cache.redis.write_timeout", "3s")
	v.SetDefault("cache.redis.key_prefix", "story-engine")

	v.SetDefault("llm.openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("llm.openrouter.site_url", "http://localhost:5000")
	v.SetDefault("llm.openrouter.site_name", "StoryEngine")
	v.SetDefault("llm.openrouter.default_model", "deepseek/deepseek-chat-v3.1")
	v.SetDefault("llm.openrouter.models", []string{
		"deepseek/deepseek-chat-v3.1",
		"mistralai/mistral-7b-instruct:free",
		"deepseek/deepseek-r1-0528:free",
		"x-ai/grok-4-fast:free",
		"x-ai/grok-code-fast-1",
		"moonshotai/kimi-k2",
	})
	v.SetDefault("llm.openrouter.timeout", "120s")

	v.SetDefault("observability.logging.level", "info")
	v.SetDefault("observability.logging.format", "json")
	v.SetDefault("observability.tracing.enabled", false)
	v.SetDefault("observability.tracing.endpoint", "localhost:4317")
	v.SetDefault("observability.tracing.sample_rate", 1.0)
	v.SetDefault("observability.metrics.enabled", true)
	v.SetDefault("observability.metrics.path", "/metrics")

	v.SetDefault("security.jwt.secret", "change-me")
	v.SetDefault("security.jwt.issuer", "story-engine")
	v.SetDefault("security.jwt.expiration", "24h")
	v.SetDefault("security.cors.allowed_origins", []string{"*"})
	v.SetDefault("security.cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"})
	v.SetDefault("security.cors.allowed_headers", []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"})

	v.SetDefault("bootstrap.demo_username", "demo")
	v.SetDefault("bootstrap.demo_email", "demo@example.com")
	v.SetDefault("bootstrap.demo_password", "demo-password")
}
