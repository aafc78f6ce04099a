package dto

import (
	"time"

	"story-engine/internal/application/account"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=80"`
	Email    string `json:"email" binding:"omitempty,email,max=120"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthAccountDTO 认证响应中的账户信息
type AuthAccountDTO struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}

// AuthResponse 认证响应
type AuthResponse struct {
	AccessToken string          `json:"access_token"`
	ExpiresAt   time.Time       `json:"expires_at"`
	Account     *AuthAccountDTO `json:"account"`
}

// ToAuthResponse 会话转换为响应
func ToAuthResponse(s *account.Session) *AuthResponse {
	dto := &AuthAccountDTO{
		ID:       s.Account.ID,
		Username: s.Account.Username,
	}
	if s.Account.Email != nil {
		dto.Email = *s.Account.Email
	}
	return &AuthResponse{
		AccessToken: s.Token,
		ExpiresAt:   s.ExpiresAt,
		Account:     dto,
	}
}
