package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mkarlsen/tenant-auth-api/internal/api/dto"
	"github.com/mkarlsen/tenant-auth-api/internal/domain"
	"github.com/mkarlsen/tenant-auth-api/internal/service"
	"github.com/mkarlsen/tenant-auth-api/internal/utils"
	"github.com/mkarlsen/tenant-auth-api/pkg/logger"
)

const refreshTokenCookie = "refresh_token"

//go:generate mockery --name AuthService --output ../mocks
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}

//go:generate mockery --name TokenIssuer --output ../mocks
type TokenIssuer interface {
	IssueAccessToken(userID int64) (string, error)
	IssueRefreshToken(userID int64) (string, error)
	Validate(token string) (int64, error)
	RefreshTokenTTL() time.Duration
}

type AuthHandler struct {
	*BaseHandler
	auth   AuthService
	tokens TokenIssuer
	logger *logger.Logger
}

func NewAuthHandler(auth AuthService, tokens TokenIssuer, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, tokens: tokens, logger: logger}
}

// Login verifies the submitted credentials and returns a bearer access token.
// When auto_refresh is requested (the default), a refresh token is set as an
// HttpOnly cookie; it never appears in the response body.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Error{Error: err.Error()})
		return
	}

	user, err := h.auth.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.Header("WWW-Authenticate", "Bearer")
			c.JSON(http.StatusUnauthorized, dto.Error{Error: "Incorrect username or password"})
			return
		}
		h.logger.Error("authentication failed", err, zap.String("username", req.Username))
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "internal server error"})
		return
	}

	accessToken, err := h.tokens.IssueAccessToken(user.ID)
	if err != nil {
		h.logger.Error("failed to issue access token", err, zap.Int64("user_id", user.ID))
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "internal server error"})
		return
	}

	if req.WantsRefreshToken() {
		refreshToken, err := h.tokens.IssueRefreshToken(user.ID)
		if err != nil {
			h.logger.Error("failed to issue refresh token", err, zap.Int64("user_id", user.ID))
			c.JSON(http.StatusInternalServerError, dto.Error{Error: "internal server error"})
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(refreshTokenCookie, refreshToken,
			int(h.tokens.RefreshTokenTTL().Seconds()), "/", "", false, true)
	}

	c.JSON(http.StatusOK, dto.TokenResponse{TokenType: "bearer", AccessToken: accessToken})
}

// Refresh mints a new access token for the subject of a valid refresh cookie.
// Refresh tokens are not rotated on use.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken, err := c.Cookie(refreshTokenCookie)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusBadRequest, dto.Error{Error: "Missing refresh token"})
		return
	}

	userID, err := h.tokens.Validate(refreshToken)
	if err != nil {
		if errors.Is(err, service.ErrTokenExpired) {
			c.JSON(http.StatusUnauthorized, dto.Error{Error: "Refresh token expired"})
			return
		}
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "Could not validate credentials"})
		return
	}

	accessToken, err := h.tokens.IssueAccessToken(userID)
	if err != nil {
		h.logger.Error("failed to issue access token", err, zap.Int64("user_id", userID))
		c.JSON(http.StatusInternalServerError, dto.Error{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusOK, dto.TokenResponse{TokenType: "bearer", AccessToken: accessToken})
}

// Me returns the authenticated caller's profile, tenant schema included.
func (h *AuthHandler) Me(c *gin.Context) {
	profile, err := utils.GetUserProfileFromContext(h.RequestCtx(c))
	if err != nil {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, dto.Error{Error: "Could not validate credentials"})
		return
	}

	c.JSON(http.StatusOK, dto.UserResponseFromProfile(profile))
}

// Ping answers 200 for a valid bearer token; the auth middleware has already
// rejected expired or invalid ones.
func (h *AuthHandler) Ping(c *gin.Context) {
	c.Status(http.StatusOK)
}
