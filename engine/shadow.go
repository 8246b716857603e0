package engine

import (
	"context"
	"fmt"

	"github.com/lockplane/cortex/connection"
	"github.com/lockplane/cortex/cortexerr"
	"github.com/lockplane/cortex/producer"
)

// dryRunAgainstShadow executes every already-lowered artifact against
// the shadow connection inside its own transaction, always aborting
// afterward regardless of outcome. It surfaces the first begin or
// execution error so the engine can fail before touching the real
// connection, the dry-run behavior a --shadow-db apply used to give
// interactively.
func dryRunAgainstShadow(ctx context.Context, shadow connection.Connection, artifacts []producer.Artifact) error {
	tx, err := shadow.Begin(ctx)
	if err != nil {
		return &cortexerr.TransactionError{Phase: "begin", Err: fmt.Errorf("shadow pre-flight: %w", err)}
	}
	defer func() { _ = tx.Abort(ctx) }()

	for _, artifact := range artifacts {
		if err := tx.Execute(ctx, artifact); err != nil {
			return fmt.Errorf("shadow pre-flight: %w", err)
		}
	}
	return nil
}
