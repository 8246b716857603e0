package step

import (
	"errors"
	"fmt"

	"github.com/lockplane/cortex/statement"
)

// ErrDuplicateCreate is returned by Flatten when two Create entries
// target the same structurally-equal statement.
var ErrDuplicateCreate = errors.New("step: duplicate create")

// ErrDropBeforeCreate is returned by Flatten when a Drop entry targets
// a statement with no accumulated Create to remove.
var ErrDropBeforeCreate = errors.New("step: drop before create")

// statementKey renders a Statement to a comparable string for the
// accumulator's index map. Two structurally-equal statements (same
// Kind, same exported object fields) always render identically.
func statementKey(e Entry) string {
	return fmt.Sprintf("%d:%#v", e.Stmt.Kind(), e.Stmt)
}

// Flatten folds an ordered sequence of steps into one structural
// snapshot step: a Create/Drop net-effect accumulation over every
// step's entries, in order. Alter, Insert, Grant, and Revoke entries
// are dropped from the fold — a flattened step is a structural
// snapshot suitable for codegen, not a replay log, and those actions
// have no stable net-effect representation against a prior Create.
//
// The returned step's Name and Mode come from the last input step;
// Version is the maximum of every input step's Version, not the last
// one, so an out-of-order batch still produces the version a fresh
// database should be stamped at.
func Flatten(steps []Step) (Step, error) {
	if len(steps) == 0 {
		return Step{}, errors.New("step: flatten requires at least one step")
	}

	var accumulated []Entry
	index := make(map[string]int)

	for _, s := range steps {
		for _, e := range s.Entries {
			key := statementKey(e)
			switch e.Action {
			case statement.Create:
				if _, ok := index[key]; ok {
					return Step{}, fmt.Errorf("%w: %s", ErrDuplicateCreate, key)
				}
				index[key] = len(accumulated)
				accumulated = append(accumulated, e)
			case statement.Drop:
				pos, ok := index[key]
				if !ok {
					return Step{}, fmt.Errorf("%w: %s", ErrDropBeforeCreate, key)
				}
				accumulated = append(accumulated[:pos], accumulated[pos+1:]...)
				delete(index, key)
				// every entry after pos shifted left by one
				for k, i := range index {
					if i > pos {
						index[k] = i - 1
					}
				}
			default:
				// Alter, Insert, Grant, Revoke: no stable net effect.
			}
		}
	}

	last := steps[len(steps)-1]
	result := Step{
		Name:    last.Name,
		Kind:    last.Kind,
		Mode:    last.Mode,
		Entries: accumulated,
	}
	result.Version = steps[0].Version
	for _, s := range steps[1:] {
		result.Version = Max(result.Version, s.Version)
	}
	return result, nil
}
