package account

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"story-engine/internal/config"
	"story-engine/internal/infrastructure/persistence/postgres"
	apperrors "story-engine/pkg/errors"
	"story-engine/pkg/utils"
)

type memoryRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	err     error
}

func newMemoryRevoker() *memoryRevoker {
	return &memoryRevoker{revoked: map[string]time.Duration{}}
}

func (m *memoryRevoker) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.revoked[tokenID] = ttl
	return nil
}

func (m *memoryRevoker) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.revoked[tokenID]
	return ok, nil
}

func newService(t *testing.T, revoker TokenRevoker) *Service {
	t.Helper()

	client, err := postgres.NewClient(&config.DatabaseConfig{
		Driver: postgres.DriverSQLite,
		SQLite: config.SQLiteConfig{Path: ":memory:"},
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.AutoMigrate(context.Background()))

	return NewService(
		postgres.NewAccountRepository(client),
		utils.NewJWTManager("test-secret", "story-engine"),
		time.Hour,
		revoker,
	)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	session, err := svc.Register(ctx, " writer ", "writer@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "writer", session.Account.Username)
	assert.NotEqual(t, "s3cret", session.Account.PasswordHash)
	assert.NotEmpty(t, session.Token)

	claims, err := svc.Authenticate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Account.ID, claims.AccountID)

	login, err := svc.Login(ctx, "writer", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, session.Account.ID, login.Account.ID)
}

func TestRegister_Conflicts(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "writer", "writer@example.com", "pw")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "writer", "", "pw")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))

	_, err = svc.Register(ctx, "other", "writer@example.com", "pw")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeConflict))

	_, err = svc.Register(ctx, "no-email-1", "", "pw")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "no-email-2", "", "pw")
	require.NoError(t, err)
}

func TestRegister_Validation(t *testing.T) {
	svc := newService(t, nil)

	_, err := svc.Register(context.Background(), "  ", "", "pw")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidParam))

	_, err = svc.Register(context.Background(), "writer", "", "")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeInvalidParam))
}

func TestLogin_Unauthorized(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	_, err := svc.Register(ctx, "writer", "", "right")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "writer", "wrong")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))

	_, err = svc.Login(ctx, "nobody", "right")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeUnauthorized))
}

func TestLogout_RevokesToken(t *testing.T) {
	revoker := newMemoryRevoker()
	svc := newService(t, revoker)
	ctx := context.Background()

	session, err := svc.Register(ctx, "writer", "", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, session.Token))
	require.Len(t, revoker.revoked, 1)
	for _, ttl := range revoker.revoked {
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Hour)
	}

	_, err = svc.Authenticate(ctx, session.Token)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeTokenRevoked))

	// 无效令牌直接忽略
	assert.NoError(t, svc.Logout(ctx, "garbage"))
}

func TestLogout_WithoutRevokerIsNoop(t *testing.T) {
	svc := newService(t, nil)
	ctx := context.Background()

	session, err := svc.Register(ctx, "writer", "", "pw")
	require.NoError(t, err)
	require.NoError(t, svc.Logout(ctx, session.Token))

	_, err = svc.Authenticate(ctx, session.Token)
	assert.NoError(t, err)
}

func TestAuthenticate_Errors(t *testing.T) {
	revoker := newMemoryRevoker()
	svc := newService(t, revoker)
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeTokenMissing))

	_, err = svc.Authenticate(ctx, "not-a-jwt")
	assert.True(t, apperrors.HasCode(err, apperrors.CodeTokenInvalid))

	expired, _, err := utils.NewJWTManager("test-secret", "story-engine").GenerateToken(1, "writer", -time.Minute)
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, expired)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeTokenExpired))

	session, err := svc.Register(ctx, "writer", "", "pw")
	require.NoError(t, err)
	revoker.err = errors.New("redis down")
	_, err = svc.Authenticate(ctx, session.Token)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeServiceUnavailable))
}
