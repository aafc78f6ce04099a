package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"story-engine/internal/application/account"
	"story-engine/internal/interfaces/http/dto"
	"story-engine/internal/interfaces/http/middleware"
)

// AuthHandler 认证处理器
type AuthHandler struct {
	accounts     *account.Service
	cookieSecure bool
}

// NewAuthHandler 创建认证处理器
func NewAuthHandler(accounts *account.Service, cookieSecure bool) *AuthHandler {
	return &AuthHandler{accounts: accounts, cookieSecure: cookieSecure}
}

// Register 注册
// @Summary 账户注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.RegisterRequest true "注册信息"
// @Success 201 {object} dto.Response[dto.AuthResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := dto.BindJSON(c, &req); err != nil {
		dto.Fail(c, err)
		return
	}

	session, err := h.accounts.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	h.setCookie(c, session.Token, int(h.accounts.TTL().Seconds()))
	dto.Created(c, dto.ToAuthResponse(session))
}

// Login 登录
// @Summary 账户登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.Response[dto.AuthResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Router /v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := dto.BindJSON(c, &req); err != nil {
		dto.Fail(c, err)
		return
	}

	session, err := h.accounts.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		dto.Fail(c, err)
		return
	}

	h.setCookie(c, session.Token, int(h.accounts.TTL().Seconds()))
	dto.Success(c, dto.ToAuthResponse(session))
}

// Logout 注销当前令牌并清除 Cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.accounts.Logout(c.Request.Context(), middleware.TokenFromRequest(c)); err != nil {
		dto.Fail(c, err)
		return
	}
	h.setCookie(c, "", -1)
	dto.NoContent(c)
}

func (h *AuthHandler) setCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, token, maxAge, "/", "", h.cookieSecure, true)
}
