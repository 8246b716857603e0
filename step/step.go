// Package step defines the Step type migrations are authored as, and
// Flatten, the algebra that folds a step sequence into one structural
// snapshot.
package step

import "github.com/lockplane/cortex/statement"

// StepKind distinguishes the first step applied to a fresh database
// from every step after it.
type StepKind int

const (
	Update StepKind = iota
	InitSetup
)

// ExecutionMode controls how the engine dispatches a step's statements.
// The zero value, Unset, defers to the engine's configured default.
type ExecutionMode int

const (
	Unset ExecutionMode = iota
	Optimistic
	Transactional
)

// Entry pairs one Statement with the action to lower it under.
type Entry struct {
	Stmt   statement.Statement
	Action statement.DbAction
}

// Step is one version-stamped unit of migration: a named, ordered list
// of statement/action entries. Construction is a fluent, non-failing
// builder, matching the rest of the object model: an invalid step is
// only ever caught downstream, by Flatten or by a Producer.
type Step struct {
	Name    string
	Kind    StepKind
	Version Version
	Mode    ExecutionMode
	Entries []Entry
}

// New starts a step builder.
func New(name string, version Version) Step {
	return Step{Name: name, Version: version}
}

// AddStatement appends one (statement, action) entry.
func (s Step) AddStatement(stmt statement.Statement, action statement.DbAction) Step {
	s.Entries = append(append([]Entry{}, s.Entries...), Entry{Stmt: stmt, Action: action})
	return s
}

// AddStatements appends several entries sharing the same action.
func (s Step) AddStatements(action statement.DbAction, stmts ...statement.Statement) Step {
	entries := append([]Entry{}, s.Entries...)
	for _, stmt := range stmts {
		entries = append(entries, Entry{Stmt: stmt, Action: action})
	}
	s.Entries = entries
	return s
}

// AsInitSetup marks the step as the database's first-boot setup step.
func (s Step) AsInitSetup() Step {
	s.Kind = InitSetup
	return s
}

// WithMode overrides the step's execution mode.
func (s Step) WithMode(mode ExecutionMode) Step {
	s.Mode = mode
	return s
}
