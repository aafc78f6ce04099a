package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadFrom_DefaultsWithoutFiles(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	for _, name := range []string{"OPENROUTER_API_KEY", "SITE_URL", "SITE_NAME", "PORT", "DATABASE_DRIVER"} {
		t.Setenv(name, "")
	}

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "story-engine", cfg.App.Name)
	assert.Equal(t, "test", cfg.App.Env)
	assert.Equal(t, 5000, cfg.Server.HTTP.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.LLM.OpenRouter.BaseURL)
	assert.Equal(t, "http://localhost:5000", cfg.LLM.OpenRouter.SiteURL)
	assert.Equal(t, "StoryEngine", cfg.LLM.OpenRouter.SiteName)
	assert.Equal(t, "deepseek/deepseek-chat-v3.1", cfg.LLM.OpenRouter.DefaultModel)
	assert.Len(t, cfg.LLM.OpenRouter.Models, 6)
	assert.Equal(t, 120*time.Second, cfg.LLM.OpenRouter.Timeout)
	assert.Empty(t, cfg.LLM.OpenRouter.APIKey)
}

func TestLoadFrom_ConventionalEnvNames(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("OPENROUTER_API_KEY", "sk-test")
	t.Setenv("SITE_URL", "https://stories.example")
	t.Setenv("SITE_NAME", "Exile")
	t.Setenv("PORT", "8088")

	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "sk-test", cfg.LLM.OpenRouter.APIKey)
	assert.Equal(t, "https://stories.example", cfg.LLM.OpenRouter.SiteURL)
	assert.Equal(t, "Exile", cfg.LLM.OpenRouter.SiteName)
	assert.Equal(t, 8088, cfg.Server.HTTP.Port)
}

func TestLoadFrom_FileExpansionAndEnvOverlay(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("APP_ENV", "staging")
	t.Setenv("STORY_DB_NAME", "from_env")

	writeFile(t, dir, "config.yaml", `
database:
  driver: postgres
  postgres:
    host: db.internal
    database: ${STORY_DB_NAME:fallback}
    user: ${STORY_DB_USER:writer}
`)
	writeFile(t, dir, "config.staging.yaml", `
database:
  postgres:
    host: staging-db.internal
`)

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "staging-db.internal", cfg.Database.Postgres.Host)
	assert.Equal(t, "from_env", cfg.Database.Postgres.Database)
	assert.Equal(t, "writer", cfg.Database.Postgres.User)
	assert.Equal(t, 5432, cfg.Database.Postgres.Port)
}

func TestExpandEnv(t *testing.T) {
	t.Setenv("STORY_SET", "value")

	assert.Equal(t, "a=value", expandEnv("a=${STORY_SET}"))
	assert.Equal(t, "a=dflt", expandEnv("a=${STORY_UNSET_VAR:dflt}"))
	assert.Equal(t, "a=", expandEnv("a=${STORY_UNSET_VAR:}"))
	assert.Equal(t, "a=${STORY_UNSET_VAR}", expandEnv("a=${STORY_UNSET_VAR}"))
}

func TestPostgresDSN(t *testing.T) {
	c := PostgresConfig{Host: "h", Port: 5432, User: "u", Password: "p", Database: "d", SSLMode: "disable"}
	assert.Equal(t, "host=h port=5432 user=u password=p dbname=d sslmode=disable", c.DSN())
}
