package redis

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Key(t *testing.T) {
	c := newClient(goredis.NewClient(&goredis.Options{Addr: "localhost:0"}), "")
	defer c.Close()

	assert.Equal(t, "story-engine:revoked:abc", c.Key("revoked", "abc"))
	assert.Equal(t, "story-engine:revoked:abc", NewTokenStore(c).key("abc"))
}

func TestTokenStore_NonPositiveTTLIsNoop(t *testing.T) {
	// 未连接的客户端：若发出命令则会返回错误
	c := newClient(goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", DialTimeout: 50 * time.Millisecond}), "t")
	defer c.Close()

	assert.NoError(t, NewTokenStore(c).Revoke(context.Background(), "id", 0))
}

// 需要真实 Redis：REDIS_TEST_ADDR=localhost:6379
func TestTokenStore_RevokeRoundTrip(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	c := newClient(goredis.NewClient(&goredis.Options{Addr: addr}), "story-engine-test")
	defer c.Close()
	store := NewTokenStore(c)
	ctx := context.Background()

	revoked, err := store.IsRevoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, store.Revoke(ctx, "tok-1", time.Minute))

	revoked, err = store.IsRevoked(ctx, "tok-1")
	require.NoError(t, err)
	assert.True(t, revoked)
}
