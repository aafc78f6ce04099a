package wire

import (
	"context"
	"fmt"

	"story-engine/internal/application/account"
	"story-engine/internal/application/generation"
	"story-engine/internal/config"
	"story-engine/internal/domain/repository"
	"story-engine/internal/infrastructure/llm"
	"story-engine/internal/infrastructure/persistence/postgres"
	"story-engine/internal/infrastructure/persistence/redis"
	"story-engine/internal/interfaces/http/handler"
	"story-engine/pkg/logger"
	"story-engine/pkg/utils"
)

// Bootstrap 初始化脚本所需依赖
type Bootstrap struct {
	Database *postgres.Client
	Accounts *account.Service
}

// ProvideDatabase 提供数据库客户端；配置 auto_migrate 时顺带建表
func ProvideDatabase(ctx context.Context, cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}

	if cfg.Database.AutoMigrate {
		if err := client.AutoMigrate(ctx); err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("failed to auto migrate: %w", err)
		}
		logger.Info(ctx, "database schema migrated", "driver", client.Driver())
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端；未启用时返回 nil
func ProvideRedisClient(ctx context.Context, cfg *config.Config) (*redis.Client, func(), error) {
	if !cfg.Cache.Redis.Enabled {
		logger.Info(ctx, "redis disabled, token revocation off")
		return nil, func() {}, nil
	}

	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		_ = client.Close()
	}
	return client, cleanup, nil
}

// ProvideTokenRevoker Redis 未启用时返回 nil 接口
func ProvideTokenRevoker(client *redis.Client) account.TokenRevoker {
	if client == nil {
		return nil
	}
	return redis.NewTokenStore(client)
}

// ProvideJWTManager 提供 JWT 管理器
func ProvideJWTManager(cfg *config.Config) *utils.JWTManager {
	return utils.NewJWTManager(cfg.Security.JWT.Secret, cfg.Security.JWT.Issuer)
}

// ProvideAccountService 提供账户服务
func ProvideAccountService(cfg *config.Config, accounts repository.AccountRepository, jwt *utils.JWTManager, revoker account.TokenRevoker) *account.Service {
	return account.NewService(accounts, jwt, cfg.Security.JWT.Expiration, revoker)
}

// ProvideGateway 以工厂配置的超时创建生成网关
func ProvideGateway(factory *llm.OpenRouterFactory) *generation.Gateway {
	return generation.NewGateway(factory, factory.Timeout())
}

// ProvideHealthHandler 提供健康检查处理器
func ProvideHealthHandler(cfg *config.Config, database *postgres.Client, cache *redis.Client) *handler.HealthHandler {
	var cacheChecker handler.HealthChecker
	if cache != nil {
		cacheChecker = cache
	}
	return handler.NewHealthHandler(database, cacheChecker, cfg.App.Version)
}

// ProvideAuthHandler 提供认证处理器
func ProvideAuthHandler(cfg *config.Config, accounts *account.Service) *handler.AuthHandler {
	return handler.NewAuthHandler(accounts, cfg.Security.JWT.CookieSecure)
}

