// Package producer declares the backend-agnostic lowering contract:
// turning one statement/action pair into a backend-specific Artifact.
// Concrete producers live in the postgres, sqlite, and mongodb
// sub-packages.
package producer

import (
	"context"
	"fmt"

	"github.com/lockplane/cortex/statement"
)

// Artifact is what a Producer lowers a statement into. Relational
// backends lower to SQLArtifact; the document backend lowers to a
// DriverCall closure that issues the equivalent driver operation
// directly, since Mongo has no SQL string to emit.
type Artifact interface{ isArtifact() }

// SQLArtifact is one DDL/DML statement string.
type SQLArtifact string

func (SQLArtifact) isArtifact() {}

// DriverCall is a document-backend operation closure. conn is the
// backend's native connection handle (e.g. *mongo.Database); producers
// type-assert it internally so this package stays driver-independent.
type DriverCall func(ctx context.Context, conn any) error

func (DriverCall) isArtifact() {}

// Producer lowers one statement/action pair to an Artifact. A pair the
// producer does not implement returns UnsupportedOperationError, never
// a panic.
type Producer interface {
	Lower(stmt statement.Statement, action statement.DbAction) (Artifact, error)
}

// SQLValidator is implemented by producers that can check their own
// generated SQL against a real grammar before dispatch. The engine's
// Transactional execution path calls ValidateSQL on every lowered
// SQLArtifact when the producer implements this, catching producer bugs
// in generated DDL before they reach a live connection.
type SQLValidator interface {
	ValidateSQL(sql string) error
}

// UnsupportedOperationError is returned by a Producer for any
// (StatementKind, DbAction) pair outside its lowering table.
type UnsupportedOperationError struct {
	Backend string
	Kind    statement.StatementKind
	Action  statement.DbAction
}

func (e *UnsupportedOperationError) Error() string {
	return fmt.Sprintf("producer: %s does not support %s %s", e.Backend, e.Action, e.Kind)
}
