// Package connection declares the backend-agnostic handle an Engine
// dispatches lowered Artifacts through. Concrete connections live in
// the postgres, sqlite, and mongodb sub-packages.
package connection

import (
	"context"

	"github.com/lockplane/cortex/producer"
)

// Rows is the minimal cursor a Query result exposes.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Close() error
}

// Transaction is an in-flight unit of work opened by Connection.Begin.
// Exactly one of Commit or Abort must be called.
type Transaction interface {
	Execute(ctx context.Context, artifact producer.Artifact) error
	Commit(ctx context.Context) error
	Abort(ctx context.Context) error
}

// Connection is a single mutable handle to one backend, owned by one
// Engine at a time. Unlike the object model this wraps a live
// resource, so Connection is consumed through an interface rather than
// built fluently.
type Connection interface {
	Execute(ctx context.Context, artifact producer.Artifact) error
	Query(ctx context.Context, cmd string, params ...any) (Rows, error)
	Begin(ctx context.Context) (Transaction, error)
	Close() error
}
