package repository

import (
	"context"

	"github.com/mkarlsen/tenant-auth-api/internal/domain"
)

// Directory repositories read the shared schema only. Every read is filtered
// by the soft-delete predicate; rows are never physically removed here.

type UserRepository interface {
	// GetByName returns the non-deleted user with the given login name,
	// or nil when no such user is visible.
	GetByName(ctx context.Context, name string) (*domain.User, error)
	// GetByID returns the non-deleted user with its owning tenant loaded,
	// or nil when no such user is visible.
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	// ListActiveUsers returns the tenant's active, non-deleted users.
	ListActiveUsers(ctx context.Context, tenantID int64) ([]domain.User, error)
	// SoftDelete stamps the user's tombstone and persists it.
	SoftDelete(ctx context.Context, id int64) error
}

type TenantRepository interface {
	// ListActive returns all active, non-deleted tenants.
	ListActive(ctx context.Context) ([]domain.Tenant, error)
	// GetBySchema returns the non-deleted tenant owning the given schema,
	// or nil when no such tenant is visible.
	GetBySchema(ctx context.Context, schema string) (*domain.Tenant, error)
	// SoftDelete stamps the tenant's tombstone and persists it.
	SoftDelete(ctx context.Context, id int64) error
}

type DirectoryRepository interface {
	User() UserRepository
	Tenant() TenantRepository
}
