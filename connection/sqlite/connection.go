// Package sqlite opens a connection.Connection over either
// modernc.org/sqlite (pure-Go local files, the teacher's default) or
// github.com/tursodatabase/libsql-client-go (embedded-replica/remote
// Turso), selected by sniffing the DSN the way
// internal/executor.DetectDriver sniffs a connection string. Both
// drivers are blank-imported side by side exactly as the teacher's
// main.go does.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"

	"github.com/lockplane/cortex/connection"
	"github.com/lockplane/cortex/cortexerr"
	"github.com/lockplane/cortex/producer"
)

// Options configures Open beyond the bare DSN.
type Options struct {
	// Remote forces libsql selection even for a dsn that doesn't carry
	// the libsql:// scheme (the "additional" config field's remote=1).
	Remote bool
}

// driverFor mirrors DetectDriver's URL sniffing, scoped to the two
// drivers this package supports.
func driverFor(dsn string, opts Options) string {
	lower := strings.ToLower(dsn)
	if opts.Remote || strings.HasPrefix(lower, "libsql://") {
		return "libsql"
	}
	return "sqlite"
}

// Conn is a sqlite- or libsql-backed connection.Connection.
type Conn struct {
	db *sql.DB
}

var _ connection.Connection = (*Conn)(nil)
var _ connection.Transaction = (*Tx)(nil)

// Open resolves dsn to the appropriate driver and opens it. dsn for
// the local driver is a bare filesystem path (or ":memory:"); dsn for
// the remote driver is a libsql:// URL.
func Open(ctx context.Context, dsn string, opts Options) (*Conn, error) {
	driverName := driverFor(dsn, opts)
	path := strings.TrimPrefix(dsn, "sqlite://")

	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, &cortexerr.ConnectError{Backend: driverName, Err: err}
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &cortexerr.ConnectError{Backend: driverName, Err: err}
	}
	return &Conn{db: db}, nil
}

// Execute implements connection.Connection.
func (c *Conn) Execute(ctx context.Context, artifact producer.Artifact) error {
	sqlText, ok := artifact.(producer.SQLArtifact)
	if !ok {
		return &cortexerr.ExecuteError{Statement: fmt.Sprintf("%v", artifact), Err: fmt.Errorf("sqlite connection requires a producer.SQLArtifact, got %T", artifact)}
	}
	if _, err := c.db.ExecContext(ctx, string(sqlText)); err != nil {
		return &cortexerr.ExecuteError{Statement: string(sqlText), Err: err}
	}
	return nil
}

// Query implements connection.Connection.
func (c *Conn) Query(ctx context.Context, cmd string, params ...any) (connection.Rows, error) {
	rows, err := c.db.QueryContext(ctx, cmd, params...)
	if err != nil {
		return nil, &cortexerr.QueryError{Statement: cmd, Err: err}
	}
	return sqlRows{rows}, nil
}

// Begin implements connection.Connection.
func (c *Conn) Begin(ctx context.Context) (connection.Transaction, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, &cortexerr.TransactionError{Phase: "begin", Err: err}
	}
	return &Tx{tx: tx}, nil
}

// Close closes the underlying *sql.DB.
func (c *Conn) Close() error {
	return c.db.Close()
}

type sqlRows struct{ *sql.Rows }

func (r sqlRows) Close() error { return r.Rows.Close() }

// Tx is a sqlite-backed connection.Transaction.
type Tx struct {
	tx *sql.Tx
}

// Execute implements connection.Transaction.
func (t *Tx) Execute(ctx context.Context, artifact producer.Artifact) error {
	sqlText, ok := artifact.(producer.SQLArtifact)
	if !ok {
		return &cortexerr.TransactionError{Phase: "execute", Err: fmt.Errorf("sqlite transaction requires a producer.SQLArtifact, got %T", artifact)}
	}
	if _, err := t.tx.ExecContext(ctx, string(sqlText)); err != nil {
		if rbErr := t.tx.Rollback(); rbErr != nil {
			return &cortexerr.TransactionError{Phase: "execute", Err: fmt.Errorf("%w (rollback also failed: %v)", err, rbErr)}
		}
		return &cortexerr.TransactionError{Phase: "execute", Err: err}
	}
	return nil
}

// Commit implements connection.Transaction.
func (t *Tx) Commit(ctx context.Context) error {
	if err := t.tx.Commit(); err != nil {
		return &cortexerr.CommitError{Err: err}
	}
	return nil
}

// Abort implements connection.Transaction.
func (t *Tx) Abort(ctx context.Context) error {
	if err := t.tx.Rollback(); err != nil {
		return &cortexerr.TransactionError{Phase: "abort", Err: err}
	}
	return nil
}
