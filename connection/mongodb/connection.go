// Package mongodb opens a connection.Connection over
// go.mongodb.org/mongo-driver, grounded on the pack's MongoDB driver's
// Connect (ApplyURI + Ping) and the MongoDBTransaction's
// StartSession/StartTransaction/CommitTransaction/AbortTransaction
// pattern. Begin requires a replica set, the same precondition the
// pack's driver.go documents for Mongo transactions.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lockplane/cortex/connection"
	"github.com/lockplane/cortex/cortexerr"
	"github.com/lockplane/cortex/producer"
)

// Conn is a MongoDB-backed connection.Connection. Artifacts dispatched
// through it must be producer.DriverCall, since Mongo has no SQL
// string to execute.
type Conn struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ connection.Connection = (*Conn)(nil)
var _ connection.Transaction = (*Tx)(nil)

// Open dials uri and selects dbName.
func Open(ctx context.Context, uri, dbName string) (*Conn, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, &cortexerr.ConnectError{Backend: "mongodb", Err: err}
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, &cortexerr.ConnectError{Backend: "mongodb", Err: err}
	}
	return &Conn{client: client, db: client.Database(dbName)}, nil
}

// Execute implements connection.Connection.
func (c *Conn) Execute(ctx context.Context, artifact producer.Artifact) error {
	call, ok := artifact.(producer.DriverCall)
	if !ok {
		return &cortexerr.ExecuteError{Statement: fmt.Sprintf("%v", artifact), Err: fmt.Errorf("mongodb connection requires a producer.DriverCall, got %T", artifact)}
	}
	if err := call(ctx, c.db); err != nil {
		return &cortexerr.ExecuteError{Statement: "driver call", Err: err}
	}
	return nil
}

// Query implements connection.Connection. Mongo has no string query
// language at this layer; raw command execution belongs to the driver
// call artifacts, so Query always fails.
func (c *Conn) Query(ctx context.Context, cmd string, params ...any) (connection.Rows, error) {
	return nil, &cortexerr.QueryError{Statement: cmd, Err: fmt.Errorf("mongodb connection does not support string queries, use a producer.DriverCall")}
}

// Begin implements connection.Connection. Requires the server to be
// running as a replica set; a standalone mongod returns an error here.
func (c *Conn) Begin(ctx context.Context) (connection.Transaction, error) {
	session, err := c.client.StartSession()
	if err != nil {
		return nil, &cortexerr.TransactionError{Phase: "begin", Err: err}
	}
	if err := session.StartTransaction(); err != nil {
		session.EndSession(ctx)
		return nil, &cortexerr.TransactionError{Phase: "begin", Err: err}
	}
	return &Tx{session: session, db: c.db}, nil
}

// Session starts a new mongo.Session on the underlying client for
// callers that need to thread a mongo.SessionContext manually (e.g. a
// producer lowering with an explicit session parameter). The caller
// ends the session.
func (c *Conn) Session(ctx context.Context) (mongo.Session, error) {
	return c.client.StartSession()
}

// Close disconnects the client.
func (c *Conn) Close() error {
	return c.client.Disconnect(context.Background())
}

// Tx is a MongoDB-backed connection.Transaction.
type Tx struct {
	session mongo.Session
	db      *mongo.Database
}

// Execute implements connection.Transaction by running the driver call
// inside the transaction's session context.
func (t *Tx) Execute(ctx context.Context, artifact producer.Artifact) error {
	call, ok := artifact.(producer.DriverCall)
	if !ok {
		return &cortexerr.TransactionError{Phase: "execute", Err: fmt.Errorf("mongodb transaction requires a producer.DriverCall, got %T", artifact)}
	}
	return mongo.WithSession(ctx, t.session, func(sc mongo.SessionContext) error {
		return call(sc, t.db)
	})
}

// Commit implements connection.Transaction.
func (t *Tx) Commit(ctx context.Context) error {
	defer t.session.EndSession(ctx)
	if err := t.session.CommitTransaction(ctx); err != nil {
		return &cortexerr.CommitError{Err: err}
	}
	return nil
}

// Abort implements connection.Transaction.
func (t *Tx) Abort(ctx context.Context) error {
	defer t.session.EndSession(ctx)
	if err := t.session.AbortTransaction(ctx); err != nil {
		return &cortexerr.TransactionError{Phase: "abort", Err: err}
	}
	return nil
}
