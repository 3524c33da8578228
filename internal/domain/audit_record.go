package domain

import (
	"time"

	"gorm.io/gorm"
)

// AuditRecord carries the identity and lifecycle columns shared by every
// directory entity. It is embedded by value; there is no inheritance chain.
// Identity values start at 1000, assigned by the database (migration DDL).
type AuditRecord struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time  `gorm:"type:timestamp with time zone;default:timezone('UTC', now())" json:"created_at"`
	DeletedAt *time.Time `gorm:"type:timestamp with time zone" json:"deleted_at,omitempty"`
}

// IsDeleted reports whether the record carries a tombstone.
func (r *AuditRecord) IsDeleted() bool {
	return r.DeletedAt != nil
}

// MarkDeleted stamps the tombstone. A record that is already deleted keeps its
// original timestamp, so repeated calls never advance the deletion instant.
func (r *AuditRecord) MarkDeleted(now time.Time) {
	if r.DeletedAt != nil {
		return
	}
	r.DeletedAt = &now
}

// NotDeleted is the visibility predicate applied by every default read path:
// a record is logically absent once deleted_at is non-null.
func NotDeleted(db *gorm.DB) *gorm.DB {
	return db.Where("deleted_at IS NULL")
}
