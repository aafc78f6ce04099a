//go:build wireinject
// +build wireinject

// Package wire 提供依赖注入配置
package wire

import (
	"context"

	"github.com/google/wire"

	"story-engine/internal/application/account"
	"story-engine/internal/application/content"
	"story-engine/internal/application/generation"
	"story-engine/internal/application/workspace"
	"story-engine/internal/config"
	"story-engine/internal/domain/repository"
	"story-engine/internal/infrastructure/llm"
	"story-engine/internal/infrastructure/persistence/postgres"
	"story-engine/internal/interfaces/http/handler"
	"story-engine/internal/interfaces/http/middleware"
	"story-engine/internal/interfaces/http/router"
)

// InitializeApp 初始化整个应用（带路由器）
func InitializeApp(ctx context.Context, cfg *config.Config) (*router.Router, func(), error) {
	wire.Build(
		RepoSet,
		RedisSet,
		ServiceSet,
		RouterSet,
	)
	return nil, nil, nil
}

// InitializeBootstrap 仅初始化数据库与账户服务（用于 bootstrap）
func InitializeBootstrap(ctx context.Context, cfg *config.Config) (*Bootstrap, func(), error) {
	wire.Build(
		RepoSet,
		RedisSet,
		ProvideJWTManager,
		ProvideAccountService,
		wire.Struct(new(Bootstrap), "*"),
	)
	return nil, nil, nil
}

// PostgresSet 数据库提供者集合
var PostgresSet = wire.NewSet(
	ProvideDatabase,
	postgres.NewTxManager,
	postgres.NewAccountRepository,
	postgres.NewStoryRepository,
	postgres.NewChapterRepository,
	postgres.NewCharacterRepository,
	postgres.NewPlotNotesRepository,
	postgres.NewSceneBeatRepository,
	postgres.NewKeyEventRepository,
	postgres.NewWorldElementRepository,
)

// RepoSet 整合了具体实现与接口绑定的集合
var RepoSet = wire.NewSet(
	PostgresSet,
	// 接口绑定
	wire.Bind(new(repository.Transactor), new(*postgres.TxManager)),
	wire.Bind(new(repository.AccountRepository), new(*postgres.AccountRepository)),
	wire.Bind(new(repository.StoryRepository), new(*postgres.StoryRepository)),
	wire.Bind(new(repository.ChapterRepository), new(*postgres.ChapterRepository)),
	wire.Bind(new(repository.CharacterRepository), new(*postgres.CharacterRepository)),
	wire.Bind(new(repository.PlotNotesRepository), new(*postgres.PlotNotesRepository)),
	wire.Bind(new(repository.SceneBeatRepository), new(*postgres.SceneBeatRepository)),
	wire.Bind(new(repository.KeyEventRepository), new(*postgres.KeyEventRepository)),
	wire.Bind(new(repository.WorldElementRepository), new(*postgres.WorldElementRepository)),
)

// RedisSet Redis 提供者集合（可选）
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	ProvideTokenRevoker,
)

// ServiceSet 应用服务提供者集合
var ServiceSet = wire.NewSet(
	ProvideJWTManager,
	ProvideAccountService,
	content.NewService,
	llm.NewOpenRouterFactory,
	ProvideGateway,
	workspace.NewService,
	wire.Bind(new(generation.Generator), new(*generation.Gateway)),
	wire.Bind(new(workspace.ModelCatalog), new(*llm.OpenRouterFactory)),
	wire.Bind(new(middleware.Authenticator), new(*account.Service)),
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	ProvideHealthHandler,
	ProvideAuthHandler,
	handler.NewStoryHandler,
	handler.NewChapterHandler,
	handler.NewCharacterHandler,
	handler.NewPlotHandler,
	handler.NewOutlineHandler,
	handler.NewWorkspaceHandler,
	wire.Struct(new(router.Handlers), "*"),
	router.New,
)
