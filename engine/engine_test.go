package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/lockplane/cortex/connection"
	"github.com/lockplane/cortex/object"
	"github.com/lockplane/cortex/producer"
	"github.com/lockplane/cortex/producer/postgres"
	"github.com/lockplane/cortex/statement"
	"github.com/lockplane/cortex/step"
)

// fakeConn is an in-memory connection.Connection for engine tests. It
// never opens a real driver and records every artifact it receives in
// order.
type fakeConn struct {
	executed    []producer.Artifact
	installed   string
	failOn      int // 1-indexed position to fail at, 0 means never
	beginCalls  int
	commitCalls int
	abortCalls  int
}

func (c *fakeConn) Execute(ctx context.Context, art producer.Artifact) error {
	c.executed = append(c.executed, art)
	if c.failOn != 0 && len(c.executed) == c.failOn {
		return errors.New("simulated execute failure")
	}
	return nil
}

func (c *fakeConn) Query(ctx context.Context, cmd string, params ...any) (connection.Rows, error) {
	if c.installed == "" {
		return nil, errors.New("no version table")
	}
	return &fakeRows{value: c.installed}, nil
}

func (c *fakeConn) Begin(ctx context.Context) (connection.Transaction, error) {
	c.beginCalls++
	return &fakeTx{conn: c}, nil
}

func (c *fakeConn) Close() error { return nil }

type fakeRows struct {
	value string
	used  bool
}

func (r *fakeRows) Next() bool {
	if r.used {
		return false
	}
	r.used = true
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	*(dest[0].(*string)) = r.value
	return nil
}

func (r *fakeRows) Close() error { return nil }

type fakeTx struct {
	conn   *fakeConn
	failOn int
}

func (t *fakeTx) Execute(ctx context.Context, art producer.Artifact) error {
	return t.conn.Execute(ctx, art)
}

func (t *fakeTx) Commit(ctx context.Context) error {
	t.conn.commitCalls++
	return nil
}

func (t *fakeTx) Abort(ctx context.Context) error {
	t.conn.abortCalls++
	return nil
}

func usersTable() object.Table {
	return object.NewTable("users").AddColumn("id", object.NewPropType(object.Int64))
}

// rejectingValidator wraps postgres.New() but always fails ValidateSQL,
// to test the Transactional path's pre-flight wiring without depending
// on pg_query_go actually rejecting anything.
type rejectingValidator struct {
	*postgres.Generator
}

func (rejectingValidator) ValidateSQL(sql string) error {
	return errors.New("simulated validation failure")
}

func TestNewReadsInstalledVersion(t *testing.T) {
	conn := &fakeConn{installed: "1.2.0"}
	e, err := New(context.Background(), conn, postgres.New(), Config{})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	if e.InstalledVersion() != (step.Version{Major: 1, Minor: 2, Patch: 0}) {
		t.Fatalf("InstalledVersion() = %v, want 1.2.0", e.InstalledVersion())
	}
}

func TestNewFallsBackToZeroOnQueryError(t *testing.T) {
	conn := &fakeConn{}
	e, err := New(context.Background(), conn, postgres.New(), Config{})
	if err != nil {
		t.Fatalf("New error = %v", err)
	}
	if e.InstalledVersion() != step.Zero {
		t.Fatalf("InstalledVersion() = %v, want Zero", e.InstalledVersion())
	}
}

func TestExecuteNoStepsErrors(t *testing.T) {
	conn := &fakeConn{}
	e, _ := New(context.Background(), conn, postgres.New(), Config{})
	if err := e.Execute(context.Background()); err == nil {
		t.Fatalf("expected error for empty step list")
	}
}

func TestExecuteAlreadyUpToDate(t *testing.T) {
	conn := &fakeConn{installed: "1.0.0"}
	e, _ := New(context.Background(), conn, postgres.New(), Config{})
	s := step.New("init", step.Version{Major: 1, Minor: 0, Patch: 0}).
		AddStatement(statement.TableOf(usersTable()), statement.Create)
	e.AddStep(s)

	err := e.Execute(context.Background())
	if err == nil {
		t.Fatalf("expected SchemaVersionError for a step not newer than installed")
	}
}

func TestExecuteOptimisticRunsInitSetupAndWritesVersion(t *testing.T) {
	conn := &fakeConn{}
	e, _ := New(context.Background(), conn, postgres.New(), Config{})
	s := step.New("init", step.Version{Major: 0, Minor: 1, Patch: 0}).
		AsInitSetup().
		WithMode(step.Optimistic).
		AddStatement(statement.TableOf(usersTable()), statement.Create)
	e.AddStep(s)

	if err := e.Execute(context.Background()); err != nil {
		t.Fatalf("Execute error = %v", err)
	}

	if len(conn.executed) < 4 {
		t.Fatalf("expected at least 4 executed artifacts (version table, insert 0.0.0, create table, set version), got %d", len(conn.executed))
	}
	last := conn.executed[len(conn.executed)-1]
	sql := string(last.(producer.SQLArtifact))
	if sql != "INSERT INTO __version__ (version) VALUES ('0.1.0');" {
		t.Fatalf("last executed = %q, want version write", sql)
	}
}

func TestExecuteOptimisticFailureLeavesVersionUnwritten(t *testing.T) {
	conn := &fakeConn{failOn: 1}
	e, _ := New(context.Background(), conn, postgres.New(), Config{})
	s := step.New("init", step.Version{Major: 0, Minor: 1, Patch: 0}).
		WithMode(step.Optimistic).
		AddStatement(statement.TableOf(usersTable()), statement.Create)
	e.AddStep(s)

	if err := e.Execute(context.Background()); err == nil {
		t.Fatalf("expected an error from the simulated execute failure")
	}
	for _, art := range conn.executed {
		if string(art.(producer.SQLArtifact)) == "INSERT INTO __version__ (version) VALUES ('0.1.0');" {
			t.Fatalf("version was written despite the execute failure: %v", conn.executed)
		}
	}
}

func TestExecuteTransactionalCommitsAndWritesVersionAfter(t *testing.T) {
	conn := &fakeConn{}
	e, _ := New(context.Background(), conn, postgres.New(), Config{})
	s := step.New("update", step.Version{Major: 0, Minor: 1, Patch: 0}).
		WithMode(step.Transactional).
		AddStatement(statement.TableOf(usersTable()), statement.Create)
	e.AddStep(s)

	if err := e.Execute(context.Background()); err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if conn.beginCalls != 1 {
		t.Fatalf("beginCalls = %d, want 1", conn.beginCalls)
	}
	if conn.commitCalls != 1 {
		t.Fatalf("commitCalls = %d, want 1", conn.commitCalls)
	}
	last := conn.executed[len(conn.executed)-1]
	sql := string(last.(producer.SQLArtifact))
	if sql != "INSERT INTO __version__ (version) VALUES ('0.1.0');" {
		t.Fatalf("expected version write to happen via conn.Execute outside the transaction, got %q", sql)
	}
}

func TestExecuteTransactionalAbortsOnFailure(t *testing.T) {
	conn := &fakeConn{failOn: 1}
	e, _ := New(context.Background(), conn, postgres.New(), Config{})
	s := step.New("update", step.Version{Major: 0, Minor: 1, Patch: 0}).
		WithMode(step.Transactional).
		AddStatement(statement.TableOf(usersTable()), statement.Create)
	e.AddStep(s)

	if err := e.Execute(context.Background()); err == nil {
		t.Fatalf("expected an error from the simulated execute failure")
	}
	if conn.abortCalls != 1 {
		t.Fatalf("abortCalls = %d, want 1", conn.abortCalls)
	}
	if conn.commitCalls != 0 {
		t.Fatalf("commitCalls = %d, want 0 on abort path", conn.commitCalls)
	}
}

func TestExecuteTransactionalRejectsInvalidSQLBeforeBegin(t *testing.T) {
	conn := &fakeConn{}
	e, _ := New(context.Background(), conn, rejectingValidator{postgres.New()}, Config{})
	s := step.New("update", step.Version{Major: 0, Minor: 1, Patch: 0}).
		WithMode(step.Transactional).
		AddStatement(statement.TableOf(usersTable()), statement.Create)
	e.AddStep(s)

	if err := e.Execute(context.Background()); err == nil {
		t.Fatalf("expected the validation failure to surface")
	}
	if conn.beginCalls != 0 {
		t.Fatalf("beginCalls = %d, want 0: validation must run before the transaction opens", conn.beginCalls)
	}
}

func TestProgressHookFires(t *testing.T) {
	conn := &fakeConn{}
	var calls []int
	e, _ := New(context.Background(), conn, postgres.New(), Config{}, WithHook(func(current, total int) {
		calls = append(calls, current)
	}))
	s := step.New("update", step.Version{Major: 0, Minor: 1, Patch: 0}).
		WithMode(step.Optimistic).
		AddStatement(statement.TableOf(usersTable()), statement.Create)
	e.AddStep(s)

	if err := e.Execute(context.Background()); err != nil {
		t.Fatalf("Execute error = %v", err)
	}
	if len(calls) == 0 {
		t.Fatalf("expected the progress hook to fire at least once")
	}
}

func TestAddStepsKeepsAscendingOrder(t *testing.T) {
	conn := &fakeConn{}
	e, _ := New(context.Background(), conn, postgres.New(), Config{})
	e.AddSteps(
		step.New("b", step.Version{Major: 2, Minor: 0, Patch: 0}),
		step.New("a", step.Version{Major: 1, Minor: 0, Patch: 0}),
	)
	if e.steps[0].Name != "a" || e.steps[1].Name != "b" {
		t.Fatalf("steps not sorted ascending: %+v", e.steps)
	}
}
