package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/mkarlsen/tenant-auth-api/internal/db"
	"github.com/mkarlsen/tenant-auth-api/internal/domain"
)

type UserRepository struct {
	sessions *db.SessionFactory
}

func NewUserRepository(sessions *db.SessionFactory) *UserRepository {
	return &UserRepository{sessions: sessions}
}

func (r *UserRepository) GetByName(ctx context.Context, name string) (*domain.User, error) {
	var user *domain.User
	err := r.sessions.RunShared(ctx, func(tx *gorm.DB) error {
		var u domain.User
		err := tx.Scopes(domain.NotDeleted).First(&u, "name = ?", name).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		user = &u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var user *domain.User
	err := r.sessions.RunShared(ctx, func(tx *gorm.DB) error {
		var u domain.User
		err := tx.Scopes(domain.NotDeleted).Preload("Tenant").First(&u, "id = ?", id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		user = &u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListActiveUsers performs the tenant-to-users join explicitly; there is no
// lazy relation hiding the soft-delete filter.
func (r *UserRepository) ListActiveUsers(ctx context.Context, tenantID int64) ([]domain.User, error) {
	var users []domain.User
	err := r.sessions.RunShared(ctx, func(tx *gorm.DB) error {
		return tx.Scopes(domain.NotDeleted).
			Where("tenant_id = ? AND active = ?", tenantID, true).
			Order("id").
			Find(&users).Error
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) SoftDelete(ctx context.Context, id int64) error {
	return r.sessions.RunShared(ctx, func(tx *gorm.DB) error {
		return softDelete(tx, &domain.User{}, id)
	})
}

// softDelete stamps deleted_at on the identified row. An already-deleted row
// keeps its first tombstone; the update is restricted to deleted_at IS NULL so
// concurrent deleters cannot advance it either.
func softDelete(tx *gorm.DB, model any, id int64) error {
	now := time.Now().UTC()
	return tx.Model(model).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", now).Error
}
