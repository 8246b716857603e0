// Package engine implements the Cortex controller: the version-gated
// dispatch loop that lowers a Step's statements through a Producer and
// executes the resulting Artifacts against a Connection.
package engine

import (
	"context"
	"fmt"

	"github.com/lockplane/cortex/connection"
	"github.com/lockplane/cortex/cortexerr"
	"github.com/lockplane/cortex/producer"
	"github.com/lockplane/cortex/step"
)

// Hook is called after every lowered artifact is dispatched, purely
// for progress reporting. A hook must not fail and must not touch the
// connection.
type Hook func(current, total int)

// Engine is the Cortex controller: one connection, one backend
// producer, a version-sorted step list, and the installed schema
// version read at construction time.
type Engine struct {
	conn     connection.Connection
	prod     producer.Producer
	cfg      Config
	steps    []step.Step
	installed step.Version
	hooks    []Hook
	shadow   connection.Connection
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithShadow attaches a shadow connection: before a Transactional
// step's real dispatch, every entry is first dry-run against shadow
// inside a transaction that is always aborted afterward.
func WithShadow(conn connection.Connection) Option {
	return func(e *Engine) { e.shadow = conn }
}

// WithHook registers a progress hook.
func WithHook(h Hook) Option {
	return func(e *Engine) { e.hooks = append(e.hooks, h) }
}

// New builds an Engine and reads the installed schema version from
// conn. A query error or an empty result both mean "no version table
// yet" and installed is left at step.Zero, matching
// CortexPostgres::new's fallback to 0.0.0.
func New(ctx context.Context, conn connection.Connection, prod producer.Producer, cfg Config, opts ...Option) (*Engine, error) {
	e := &Engine{conn: conn, prod: prod, cfg: cfg, installed: step.Zero}
	for _, opt := range opts {
		opt(e)
	}

	rows, err := conn.Query(ctx, "SELECT version FROM __version__ ORDER BY version DESC LIMIT 1")
	if err == nil {
		defer rows.Close()
		if rows.Next() {
			var raw string
			if scanErr := rows.Scan(&raw); scanErr == nil {
				if v, parseErr := step.ParseVersion(raw); parseErr == nil {
					e.installed = v
				}
			}
		}
	}

	return e, nil
}

// AddStep appends a step, keeping steps sorted ascending by version.
func (e *Engine) AddStep(s step.Step) *Engine {
	e.steps = append(e.steps, s)
	e.sortSteps()
	return e
}

// AddSteps appends several steps, keeping steps sorted ascending by
// version.
func (e *Engine) AddSteps(steps ...step.Step) *Engine {
	e.steps = append(e.steps, steps...)
	e.sortSteps()
	return e
}

func (e *Engine) sortSteps() {
	for i := 1; i < len(e.steps); i++ {
		j := i
		for j > 0 && step.Compare(e.steps[j].Version, e.steps[j-1].Version) < 0 {
			e.steps[j], e.steps[j-1] = e.steps[j-1], e.steps[j]
			j--
		}
	}
}

// InstalledVersion returns the version read at construction time.
func (e *Engine) InstalledVersion() step.Version { return e.installed }

// eligible reports whether s should run against the engine's installed
// version: strictly newer, except InitSetup at 0.0.0 is eligible on
// first boot when no version table exists yet.
func (e *Engine) eligible(s step.Step) bool {
	if s.Kind == step.InitSetup && e.installed == step.Zero {
		return true
	}
	return step.Compare(s.Version, e.installed) > 0
}

// Execute runs every eligible step in ascending version order.
func (e *Engine) Execute(ctx context.Context) error {
	if len(e.steps) == 0 {
		return &cortexerr.CortexError{Err: &cortexerr.StepValidationError{Step: "", Err: fmt.Errorf("no steps")}}
	}

	var toRun []step.Step
	for _, s := range e.steps {
		if e.eligible(s) {
			toRun = append(toRun, s)
		}
	}
	if len(toRun) == 0 {
		return &cortexerr.CortexError{Err: &cortexerr.SchemaVersionError{Installed: e.installed.String(), Attempted: e.steps[len(e.steps)-1].Version.String()}}
	}

	total := e.countEntries(toRun)
	current := 0
	for _, s := range toRun {
		mode := s.Mode
		if mode == step.Unset {
			mode = e.cfg.DefaultMode
		}
		var err error
		switch mode {
		case step.Transactional:
			err = e.executeTransactional(ctx, s, &current, total)
		default:
			err = e.executeOptimistic(ctx, s, &current, total)
		}
		if err != nil {
			return &cortexerr.CortexError{Err: err}
		}
	}
	return nil
}

func (e *Engine) countEntries(steps []step.Step) int {
	total := 0
	for _, s := range steps {
		total += len(s.Entries)
	}
	return total
}

func (e *Engine) runHooks(current, total int) {
	for _, h := range e.hooks {
		h(current, total)
	}
}

// lowerAll lowers every entry in s through the engine's producer.
func (e *Engine) lowerAll(s step.Step) ([]producer.Artifact, error) {
	artifacts := make([]producer.Artifact, 0, len(s.Entries))
	for _, entry := range s.Entries {
		art, err := e.prod.Lower(entry.Stmt, entry.Action)
		if err != nil {
			return nil, &cortexerr.StepValidationError{Step: s.Name, Err: err}
		}
		artifacts = append(artifacts, art)
	}
	return artifacts, nil
}

// validateSQL runs the producer's own SQL grammar check, when it
// implements producer.SQLValidator, against every lowered SQLArtifact —
// a pre-flight guard against producer bugs in generated DDL before a
// transactional dispatch begins. Producers that don't implement
// SQLValidator (sqlite, mongodb) are skipped rather than rejected.
func (e *Engine) validateSQL(stepName string, artifacts []producer.Artifact) error {
	validator, ok := e.prod.(producer.SQLValidator)
	if !ok {
		return nil
	}
	for _, art := range artifacts {
		sqlArt, ok := art.(producer.SQLArtifact)
		if !ok {
			continue
		}
		if err := validator.ValidateSQL(string(sqlArt)); err != nil {
			return &cortexerr.StepValidationError{Step: stepName, Err: err}
		}
	}
	return nil
}

func (e *Engine) setupInitialVersion(ctx context.Context, exec func(context.Context, producer.Artifact) error) error {
	if err := exec(ctx, producer.SQLArtifact("CREATE TABLE IF NOT EXISTS __version__ (version VARCHAR(255) NOT NULL);")); err != nil {
		return err
	}
	if err := exec(ctx, producer.SQLArtifact("INSERT INTO __version__ (version) VALUES ('0.0.0');")); err != nil {
		return err
	}
	for _, p := range e.cfg.Plugins {
		if sqlText := p.extensionSQL(); sqlText != "" {
			if err := exec(ctx, producer.SQLArtifact(sqlText)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (e *Engine) setVersion(ctx context.Context, v step.Version) error {
	sqlText := fmt.Sprintf("INSERT INTO __version__ (version) VALUES ('%s');", v.String())
	return e.conn.Execute(ctx, producer.SQLArtifact(sqlText))
}

// executeOptimistic lowers and executes each entry directly against
// the connection; the first failure is returned immediately and the
// version is written only after the whole step succeeds.
func (e *Engine) executeOptimistic(ctx context.Context, s step.Step, current *int, total int) error {
	if s.Kind == step.InitSetup {
		if err := e.setupInitialVersion(ctx, e.conn.Execute); err != nil {
			return &cortexerr.ConnectionError{Err: &cortexerr.ExecuteError{Statement: "init setup", Err: err}}
		}
	}

	artifacts, err := e.lowerAll(s)
	if err != nil {
		return err
	}
	for _, art := range artifacts {
		if err := e.conn.Execute(ctx, art); err != nil {
			return &cortexerr.ConnectionError{Err: err}
		}
		*current++
		e.runHooks(*current, total)
	}

	if err := e.setVersion(ctx, s.Version); err != nil {
		return &cortexerr.ConnectionError{Err: &cortexerr.ExecuteError{Statement: "set version", Err: err}}
	}
	return nil
}

// executeTransactional opens a transaction, optionally dry-runs the
// lowered artifacts against a shadow connection first, dispatches every
// entry through the transaction (aborting on any failure), commits,
// then writes the version strictly after a successful commit.
func (e *Engine) executeTransactional(ctx context.Context, s step.Step, current *int, total int) error {
	if s.Kind == step.InitSetup {
		if err := e.setupInitialVersion(ctx, e.conn.Execute); err != nil {
			return &cortexerr.ConnectionError{Err: &cortexerr.ExecuteError{Statement: "init setup", Err: err}}
		}
	}

	artifacts, err := e.lowerAll(s)
	if err != nil {
		return err
	}

	if err := e.validateSQL(s.Name, artifacts); err != nil {
		return err
	}

	if e.shadow != nil {
		if err := dryRunAgainstShadow(ctx, e.shadow, artifacts); err != nil {
			return &cortexerr.StepValidationError{Step: s.Name, Err: err}
		}
	}

	tx, err := e.conn.Begin(ctx)
	if err != nil {
		return &cortexerr.ConnectionError{Err: err}
	}
	for _, art := range artifacts {
		if err := tx.Execute(ctx, art); err != nil {
			_ = tx.Abort(ctx)
			return &cortexerr.ConnectionError{Err: err}
		}
		*current++
		e.runHooks(*current, total)
	}
	if err := tx.Commit(ctx); err != nil {
		return &cortexerr.ConnectionError{Err: err}
	}

	if err := e.setVersion(ctx, s.Version); err != nil {
		return &cortexerr.ConnectionError{Err: &cortexerr.ExecuteError{Statement: "set version", Err: err}}
	}
	return nil
}
