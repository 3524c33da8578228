package service

import (
	"context"
	"fmt"

	"github.com/mkarlsen/tenant-auth-api/internal/repository"
)

// UserProfile is the authenticated identity handed to the request pipeline:
// who the caller is and which tenant schema scopes their queries.
type UserProfile struct {
	Username     string `json:"username"`
	UserID       int64  `json:"user_id"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	TenantSchema string `json:"tenant_schema"`
}

// TenantResolver maps an authenticated user id to its owning tenant's schema.
// This is the only path from identity to tenant scope; nothing else may infer
// a schema from client input.
type TenantResolver struct {
	users repository.UserRepository
}

func NewTenantResolver(users repository.UserRepository) *TenantResolver {
	return &TenantResolver{users: users}
}

func (r *TenantResolver) Resolve(ctx context.Context, userID int64) (*UserProfile, error) {
	user, err := r.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, ErrUserNotFound
	}
	if user.Tenant == nil {
		return nil, fmt.Errorf("user %d has no tenant record", user.ID)
	}

	return &UserProfile{
		Username:     user.Name,
		UserID:       user.ID,
		Email:        user.Email,
		FullName:     user.Name,
		TenantSchema: user.Tenant.Schema,
	}, nil
}
