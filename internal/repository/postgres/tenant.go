package postgres

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/mkarlsen/tenant-auth-api/internal/db"
	"github.com/mkarlsen/tenant-auth-api/internal/domain"
)

type TenantRepository struct {
	sessions *db.SessionFactory
}

func NewTenantRepository(sessions *db.SessionFactory) *TenantRepository {
	return &TenantRepository{sessions: sessions}
}

func (r *TenantRepository) ListActive(ctx context.Context) ([]domain.Tenant, error) {
	var tenants []domain.Tenant
	err := r.sessions.RunShared(ctx, func(tx *gorm.DB) error {
		return tx.Scopes(domain.NotDeleted).
			Where("active = ?", true).
			Order("id").
			Find(&tenants).Error
	})
	if err != nil {
		return nil, err
	}
	return tenants, nil
}

func (r *TenantRepository) GetBySchema(ctx context.Context, schema string) (*domain.Tenant, error) {
	var tenant *domain.Tenant
	err := r.sessions.RunShared(ctx, func(tx *gorm.DB) error {
		var t domain.Tenant
		err := tx.Scopes(domain.NotDeleted).First(&t, "schema = ?", schema).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		tenant = &t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *TenantRepository) SoftDelete(ctx context.Context, id int64) error {
	return r.sessions.RunShared(ctx, func(tx *gorm.DB) error {
		return softDelete(tx, &domain.Tenant{}, id)
	})
}
