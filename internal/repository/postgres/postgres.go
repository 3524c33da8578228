package postgres

import (
	"github.com/mkarlsen/tenant-auth-api/internal/db"
	"github.com/mkarlsen/tenant-auth-api/internal/repository"
)

type directoryRepository struct {
	userRepo   repository.UserRepository
	tenantRepo repository.TenantRepository
}

// NewDirectoryRepository builds the shared-schema repositories. Each call runs
// as its own scoped session on the shared schema via the session factory.
func NewDirectoryRepository(sessions *db.SessionFactory) repository.DirectoryRepository {
	return &directoryRepository{
		userRepo:   NewUserRepository(sessions),
		tenantRepo: NewTenantRepository(sessions),
	}
}

func (r *directoryRepository) User() repository.UserRepository {
	return r.userRepo
}

func (r *directoryRepository) Tenant() repository.TenantRepository {
	return r.tenantRepo
}
