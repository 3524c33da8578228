package db

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"
)

var (
	// ErrInvalidSchemaName rejects schema identifiers before they reach SQL.
	ErrInvalidSchemaName = errors.New("invalid schema name")
)

// Schema names come from the tenant directory, not from clients, but they are
// still interpolated into SET LOCAL and so are validated as plain identifiers.
var schemaNamePattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// ValidSchemaName reports whether name is a safe, unquoted schema identifier.
func ValidSchemaName(name string) bool {
	return len(name) <= 63 && schemaNamePattern.MatchString(name)
}

// searchPathStatement routes every unqualified table reference in the current
// transaction to the given schema. SET LOCAL is transaction-scoped, so the
// connection returns to the pool with its default search_path.
func searchPathStatement(schema string) string {
	return fmt.Sprintf("SET LOCAL search_path TO %q", schema)
}

// SessionFactory opens schema-routed sessions over one bounded connection
// pool. Each session is a single transaction on its own connection; two
// concurrent sessions never share a live connection.
type SessionFactory struct {
	db           *gorm.DB
	sharedSchema string
}

func NewSessionFactory(db *gorm.DB, sharedSchema string) (*SessionFactory, error) {
	if !ValidSchemaName(sharedSchema) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSchemaName, sharedSchema)
	}
	return &SessionFactory{db: db, sharedSchema: sharedSchema}, nil
}

func (f *SessionFactory) SharedSchema() string {
	return f.sharedSchema
}

// ScopedSession is a transaction whose unqualified table references resolve
// against one schema. Exactly one of Commit or Rollback takes effect; the
// other becomes a no-op, so callers can defer Rollback for release on every
// exit path.
type ScopedSession struct {
	tx     *gorm.DB
	schema string
	done   bool
}

func (s *ScopedSession) DB() *gorm.DB {
	return s.tx
}

func (s *ScopedSession) Schema() string {
	return s.schema
}

func (s *ScopedSession) Commit() error {
	if s.done {
		return nil
	}
	s.done = true
	if err := s.tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit session on schema %s: %w", s.schema, err)
	}
	return nil
}

func (s *ScopedSession) Rollback() error {
	if s.done {
		return nil
	}
	s.done = true
	if err := s.tx.Rollback().Error; err != nil {
		return fmt.Errorf("failed to roll back session on schema %s: %w", s.schema, err)
	}
	return nil
}

// OpenSession begins a transaction bound to the given schema. The caller owns
// the session and must Commit or Rollback it.
func (f *SessionFactory) OpenSession(ctx context.Context, schema string) (*ScopedSession, error) {
	if !ValidSchemaName(schema) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSchemaName, schema)
	}

	tx := f.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("failed to begin session on schema %s: %w", schema, tx.Error)
	}

	if err := tx.Exec(searchPathStatement(schema)).Error; err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("failed to route session to schema %s: %w", schema, err)
	}

	return &ScopedSession{tx: tx, schema: schema}, nil
}

// OpenSharedSession opens a session on the shared directory schema.
func (f *SessionFactory) OpenSharedSession(ctx context.Context) (*ScopedSession, error) {
	return f.OpenSession(ctx, f.sharedSchema)
}

// RunInSchema runs fn as one unit of work in a schema-routed session: commit
// when fn returns nil, rollback and propagate otherwise. The connection is
// released on every exit path, including a panic inside fn.
func (f *SessionFactory) RunInSchema(ctx context.Context, schema string, fn func(tx *gorm.DB) error) error {
	session, err := f.OpenSession(ctx, schema)
	if err != nil {
		return err
	}
	defer session.Rollback()

	if err := fn(session.DB()); err != nil {
		return err
	}
	return session.Commit()
}

// RunShared runs fn as one unit of work against the shared schema.
func (f *SessionFactory) RunShared(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return f.RunInSchema(ctx, f.sharedSchema, fn)
}

// ForEachTenantSchema invokes fn once per schema, each invocation in its own
// scoped session. Used by administrative flows that touch every tenant; the
// first failure stops the iteration.
func (f *SessionFactory) ForEachTenantSchema(ctx context.Context, schemas []string, fn func(schema string, tx *gorm.DB) error) error {
	for _, schema := range schemas {
		if err := f.RunInSchema(ctx, schema, func(tx *gorm.DB) error {
			return fn(schema, tx)
		}); err != nil {
			return fmt.Errorf("tenant schema %s: %w", schema, err)
		}
	}
	return nil
}
