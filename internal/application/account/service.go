// Package account 提供注册、登录、注销与访问令牌校验
package account

import (
	"context"
	"errors"
	"strings"
	"time"

	"story-engine/internal/domain/entity"
	"story-engine/internal/domain/repository"
	apperrors "story-engine/pkg/errors"
	"story-engine/pkg/logger"
	"story-engine/pkg/utils"
)

// TokenRevoker 令牌注销存储；为 nil 时注销只清除客户端 Cookie
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// Session 登录成功后返回的会话
type Session struct {
	Account   *entity.Account
	Token     string
	ExpiresAt time.Time
}

// Service 账户服务
type Service struct {
	accounts repository.AccountRepository
	jwt      *utils.JWTManager
	ttl      time.Duration
	revoker  TokenRevoker
}

// NewService 创建账户服务
func NewService(accounts repository.AccountRepository, jwt *utils.JWTManager, ttl time.Duration, revoker TokenRevoker) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{
		accounts: accounts,
		jwt:      jwt,
		ttl:      ttl,
		revoker:  revoker,
	}
}

// Register 注册新账户并直接登录
func (s *Service) Register(ctx context.Context, username, email, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return nil, apperrors.Validation("username is required")
	}
	if password == "" {
		return nil, apperrors.Validation("password is required")
	}

	existing, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.Conflict("username %q is already taken", username)
	}
	if email != "" {
		existing, err = s.accounts.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperrors.Conflict("email is already registered")
		}
	}

	account := entity.NewAccount(username, email)
	if err := account.SetPassword(password); err != nil {
		return nil, err
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	logger.Info(ctx, "account registered", "account_id", account.ID, "username", account.Username)
	return s.issue(account)
}

// Login 校验用户名与密码
func (s *Service) Login(ctx context.Context, username, password string) (*Session, error) {
	account, err := s.accounts.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if account == nil || !account.CheckPassword(password) {
		return nil, apperrors.New(apperrors.CodeUnauthorized, "invalid username or password")
	}
	return s.issue(account)
}

// Logout 注销令牌；无效或已过期的令牌无需处理
func (s *Service) Logout(ctx context.Context, token string) error {
	if s.revoker == nil || token == "" {
		return nil
	}
	claims, err := s.jwt.ParseToken(token)
	if err != nil {
		return nil
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		return err
	}
	logger.Info(ctx, "token revoked", "account_id", claims.AccountID)
	return nil
}

// Authenticate 校验访问令牌并检查是否已注销
func (s *Service) Authenticate(ctx context.Context, token string) (*utils.Claims, error) {
	if token == "" {
		return nil, apperrors.ErrTokenMissing
	}
	claims, err := s.jwt.ParseToken(token)
	if err != nil {
		if errors.Is(err, utils.ErrExpiredToken) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrTokenInvalid
	}

	if s.revoker != nil {
		revoked, err := s.revoker.IsRevoked(ctx, claims.ID)
		if err != nil {
			logger.Error(ctx, "failed to check token revocation", err)
			return nil, apperrors.Wrap(err, apperrors.CodeServiceUnavailable, "token check unavailable")
		}
		if revoked {
			return nil, apperrors.ErrTokenRevoked
		}
	}
	return claims, nil
}

// TTL 访问令牌有效期（用于 Cookie Max-Age）
func (s *Service) TTL() time.Duration {
	return s.ttl
}

func (s *Service) issue(account *entity.Account) (*Session, error) {
	token, _, err := s.jwt.GenerateToken(account.ID, account.Username, s.ttl)
	if err != nil {
		return nil, err
	}
	return &Session{
		Account:   account,
		Token:     token,
		ExpiresAt: time.Now().Add(s.ttl),
	}, nil
}
