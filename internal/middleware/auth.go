package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mkarlsen/tenant-auth-api/internal/api/dto"
	"github.com/mkarlsen/tenant-auth-api/internal/db"
	"github.com/mkarlsen/tenant-auth-api/internal/service"
	"github.com/mkarlsen/tenant-auth-api/internal/utils"
	"github.com/mkarlsen/tenant-auth-api/pkg/logger"
)

//go:generate mockery --name TokenValidator --output ../mocks
type TokenValidator interface {
	Validate(token string) (int64, error)
}

//go:generate mockery --name ProfileResolver --output ../mocks
type ProfileResolver interface {
	Resolve(ctx context.Context, userID int64) (*service.UserProfile, error)
}

//go:generate mockery --name SessionOpener --output ../mocks
type SessionOpener interface {
	OpenSession(ctx context.Context, schema string) (*db.ScopedSession, error)
}

type AuthMiddleware struct {
	tokens   TokenValidator
	resolver ProfileResolver
	sessions SessionOpener
	logger   *logger.Logger
}

func NewAuthMiddleware(tokens TokenValidator, resolver ProfileResolver, sessions SessionOpener, logger *logger.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:   tokens,
		resolver: resolver,
		sessions: sessions,
		logger:   logger,
	}
}

// RequireUser validates the bearer access token and resolves the caller's
// profile, including its tenant schema, into the request context. A token
// referencing a deleted or inactive user fails exactly like a bad signature.
func (m *AuthMiddleware) RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			unauthorized(c, "Could not validate credentials")
			return
		}

		userID, err := m.tokens.Validate(token)
		if err != nil {
			if errors.Is(err, service.ErrTokenExpired) {
				unauthorized(c, "Token expired")
				return
			}
			unauthorized(c, "Could not validate credentials")
			return
		}

		profile, err := m.resolver.Resolve(c.Request.Context(), userID)
		if err != nil {
			if !errors.Is(err, service.ErrUserNotFound) {
				m.logger.Error("failed to resolve user profile", err, zap.Int64("user_id", userID))
			}
			unauthorized(c, "Could not validate credentials")
			return
		}

		c.Set(string(utils.UserProfileKey), profile)
		c.Next()
	}
}

// TenantSession opens a schema-routed session for the authenticated caller's
// tenant and hands it to the request as an opaque scoped handle. The session
// is one transaction: committed when the handler finishes cleanly, rolled back
// on handler errors, 5xx responses, or panics. The connection is released on
// every exit path.
func (m *AuthMiddleware) TenantSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		profile, ok := profileFromGin(c)
		if !ok {
			unauthorized(c, "Could not validate credentials")
			return
		}

		session, err := m.sessions.OpenSession(c.Request.Context(), profile.TenantSchema)
		if err != nil {
			// Schema names stay in the logs; the client sees a generic failure.
			m.logger.Error("failed to open tenant session", err,
				zap.Int64("user_id", profile.UserID),
				zap.String("schema", profile.TenantSchema))
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Error{Error: "internal server error"})
			return
		}
		defer session.Rollback()

		c.Set(string(utils.TenantSessionKey), session)
		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusInternalServerError {
			return
		}
		if err := session.Commit(); err != nil {
			m.logger.Error("failed to commit tenant session", err,
				zap.Int64("user_id", profile.UserID))
		}
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}

func profileFromGin(c *gin.Context) (*service.UserProfile, bool) {
	value, exists := c.Get(string(utils.UserProfileKey))
	if !exists {
		return nil, false
	}
	profile, ok := value.(*service.UserProfile)
	return profile, ok && profile != nil
}

func unauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", "Bearer")
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.Error{Error: detail})
}
