package utils

import (
	"context"
	"errors"

	"github.com/mkarlsen/tenant-auth-api/internal/db"
	"github.com/mkarlsen/tenant-auth-api/internal/service"
)

type ContextKey string

const (
	UserProfileKey   ContextKey = "user_profile"
	TenantSessionKey ContextKey = "tenant_session"
	RequestIDKey     ContextKey = "request_id"
)

var (
	ErrNoUserProfileInContext   = errors.New("no user profile found in context")
	ErrNoTenantSessionInContext = errors.New("no tenant session found in context")
)

// GetUserProfileFromContext returns the authenticated identity placed in the
// context by the auth middleware.
func GetUserProfileFromContext(ctx context.Context) (*service.UserProfile, error) {
	profile, ok := ctx.Value(UserProfileKey).(*service.UserProfile)
	if !ok || profile == nil {
		return nil, ErrNoUserProfileInContext
	}
	return profile, nil
}

// GetTenantSessionFromContext returns the request's schema-routed session.
// Downstream business logic uses it as an opaque scoped handle; commit and
// rollback belong to the middleware that opened it.
func GetTenantSessionFromContext(ctx context.Context) (*db.ScopedSession, error) {
	session, ok := ctx.Value(TenantSessionKey).(*db.ScopedSession)
	if !ok || session == nil {
		return nil, ErrNoTenantSessionInContext
	}
	return session, nil
}

// GetRequestIDFromContext returns the request correlation id, or "" when the
// middleware did not run.
func GetRequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDKey).(string)
	return id
}
