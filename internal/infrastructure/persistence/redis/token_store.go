package redis

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TokenStore 记录已注销的访问令牌，键在令牌过期时自动失效
type TokenStore struct {
	client *Client
}

// NewTokenStore 创建令牌注销存储
func NewTokenStore(client *Client) *TokenStore {
	return &TokenStore{client: client}
}

// Revoke 注销令牌；ttl 不大于 0 时令牌已过期，无需记录
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	ctx, span := tracer.Start(ctx, "redis.TokenStore.Revoke",
		trace.WithAttributes(attribute.Int64("redis.ttl_ms", ttl.Milliseconds())))
	defer span.End()

	if err := s.client.rdb.Set(ctx, s.key(tokenID), 1, ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// IsRevoked 检查令牌是否已注销
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	ctx, span := tracer.Start(ctx, "redis.TokenStore.IsRevoked")
	defer span.End()

	n, err := s.client.rdb.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		span.RecordError(err)
		return false, fmt.Errorf("failed to check token: %w", err)
	}
	return n > 0, nil
}

func (s *TokenStore) key(tokenID string) string {
	return s.client.Key("revoked", tokenID)
}
