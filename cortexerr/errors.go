// Package cortexerr defines Cortex's error taxonomy. Every error wraps
// the underlying cause with fmt.Errorf's %w verb so callers can recover
// it with errors.As, the same pattern the rest of the stack uses to
// unwrap a toml.DecodeError — Cortex does not introduce a third-party
// error-wrapping library on top of the standard library's.
package cortexerr

import "fmt"

// ConnectError wraps a failure to establish a Connection.
type ConnectError struct {
	Backend string
	Err     error
}

func (e *ConnectError) Error() string {
	return fmt.Sprintf("cortex: connect to %s: %v", e.Backend, e.Err)
}

func (e *ConnectError) Unwrap() error { return e.Err }

// ExecuteError wraps a failure to execute a non-query statement.
type ExecuteError struct {
	Statement string
	Err       error
}

func (e *ExecuteError) Error() string {
	return fmt.Sprintf("cortex: execute %q: %v", e.Statement, e.Err)
}

func (e *ExecuteError) Unwrap() error { return e.Err }

// QueryError wraps a failure to run a query.
type QueryError struct {
	Statement string
	Err       error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("cortex: query %q: %v", e.Statement, e.Err)
}

func (e *QueryError) Unwrap() error { return e.Err }

// TransactionError wraps a failure to begin, execute within, or abort
// a transaction.
type TransactionError struct {
	Phase string // "begin", "execute", or "abort"
	Err   error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("cortex: transaction %s: %v", e.Phase, e.Err)
}

func (e *TransactionError) Unwrap() error { return e.Err }

// CommitError wraps a failure to commit a transaction.
type CommitError struct {
	Err error
}

func (e *CommitError) Error() string {
	return fmt.Sprintf("cortex: commit: %v", e.Err)
}

func (e *CommitError) Unwrap() error { return e.Err }

// ConnectionError is the union of every connection-layer failure: it
// wraps a ConnectError, ExecuteError, QueryError, TransactionError, or
// CommitError, which errors.As recovers through Unwrap.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("cortex: connection: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// StepValidationError wraps a failure to validate a Step or a flattened
// step before dispatch (duplicate create, drop before create, an
// unsupported statement/action pair).
type StepValidationError struct {
	Step string
	Err  error
}

func (e *StepValidationError) Error() string {
	return fmt.Sprintf("cortex: step %q invalid: %v", e.Step, e.Err)
}

func (e *StepValidationError) Unwrap() error { return e.Err }

// SchemaVersionError wraps a version-gating failure: the step being
// applied is not strictly newer than the installed schema version.
type SchemaVersionError struct {
	Installed string
	Attempted string
}

func (e *SchemaVersionError) Error() string {
	return fmt.Sprintf("cortex: schema version %s is not newer than installed version %s", e.Attempted, e.Installed)
}

// CortexError is the top-level error type Engine.Execute returns: it
// wraps a StepValidationError, SchemaVersionError, or ConnectionError,
// which errors.As recovers through Unwrap.
type CortexError struct {
	Err error
}

func (e *CortexError) Error() string {
	return fmt.Sprintf("cortex: %v", e.Err)
}

func (e *CortexError) Unwrap() error { return e.Err }
