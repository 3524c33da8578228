package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMarkDeleted_SetsTombstone(t *testing.T) {
	user := User{}
	assert.False(t, user.IsDeleted())

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	user.MarkDeleted(now)

	assert.True(t, user.IsDeleted())
	assert.Equal(t, now, *user.DeletedAt)
}

func TestMarkDeleted_KeepsFirstTimestamp(t *testing.T) {
	tenant := Tenant{}

	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tenant.MarkDeleted(first)
	tenant.MarkDeleted(first.Add(48 * time.Hour))

	assert.True(t, tenant.IsDeleted())
	assert.Equal(t, first, *tenant.DeletedAt)
}
