package postgres

import (
	"fmt"

	pg_query "github.com/pganalyze/pg_query_go/v6"
)

// ValidateGeneratedSQL parses sql with the real PostgreSQL grammar and
// reports a parse error. The engine's Transactional execution path
// calls this on every lowered statement before dispatch, the same
// library the legacy validator used to catch hand-written schema
// mistakes, now guarding against producer bugs in generated DDL too.
func ValidateGeneratedSQL(sql string) error {
	if _, err := pg_query.Parse(sql); err != nil {
		return fmt.Errorf("producer/postgres: generated SQL failed to parse: %w", err)
	}
	return nil
}

// ValidateSQL implements producer.SQLValidator, letting the engine
// validate this backend's generated SQL without importing this package
// directly.
func (g *Generator) ValidateSQL(sql string) error {
	return ValidateGeneratedSQL(sql)
}
