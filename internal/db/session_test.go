package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSchemaName(t *testing.T) {
	valid := []string{"shared", "tenant_default", "tenant_42", "_scratch"}
	for _, name := range valid {
		assert.True(t, ValidSchemaName(name), name)
	}

	invalid := []string{
		"",
		"Tenant",            // upper case
		"42_tenant",         // leading digit
		"tenant-default",    // hyphen
		"tenant default",    // whitespace
		`tenant";drop`,      // quoting
		"public,other",      // search_path injection
		string(make([]byte, 64)),
	}
	for _, name := range invalid {
		assert.False(t, ValidSchemaName(name), name)
	}
}

func TestSearchPathStatement(t *testing.T) {
	assert.Equal(t, `SET LOCAL search_path TO "tenant_default"`, searchPathStatement("tenant_default"))
}

func TestNewSessionFactory_RejectsBadSharedSchema(t *testing.T) {
	_, err := NewSessionFactory(nil, "Shared Schema")
	assert.ErrorIs(t, err, ErrInvalidSchemaName)
}

func TestOpenSession_RejectsBadSchemaBeforeTouchingPool(t *testing.T) {
	factory, err := NewSessionFactory(nil, "shared")
	assert.NoError(t, err)

	// nil gorm handle: a valid name would panic here, an invalid one must be
	// rejected before any connection work happens.
	_, err = factory.OpenSession(context.Background(), `tenant";drop`)
	assert.ErrorIs(t, err, ErrInvalidSchemaName)
}
