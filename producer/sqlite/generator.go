// Package sqlite lowers Cortex statements to SQLite DDL/DML. SQLite
// rejects strictly more (Kind, Action) pairs than postgres: no ALTER
// COLUMN of any kind, and no adding a foreign key once a table exists —
// foreign keys can only be declared at CREATE TABLE time, grounded on
// the teacher's Driver.SupportsFeature table (ALTER_COLUMN_TYPE,
// ALTER_COLUMN_NULLABLE, ALTER_COLUMN_DEFAULT, ALTER_ADD_FOREIGN_KEY
// all false).
package sqlite

import (
	"fmt"
	"strings"

	"github.com/lockplane/cortex/object"
	"github.com/lockplane/cortex/producer"
	"github.com/lockplane/cortex/statement"
)

// Generator is the SQLite producer.Producer.
type Generator struct{}

// New builds a SQLite generator.
func New() *Generator { return &Generator{} }

func (g *Generator) reject(kind statement.StatementKind, action statement.DbAction) (producer.Artifact, error) {
	return nil, &producer.UnsupportedOperationError{Backend: "sqlite", Kind: kind, Action: action}
}

// Lower implements producer.Producer.
func (g *Generator) Lower(stmt statement.Statement, action statement.DbAction) (producer.Artifact, error) {
	switch s := stmt.(type) {
	case statement.DatabaseStatement:
		// SQLite has no CREATE DATABASE/DROP DATABASE; a database is a
		// file, opened by the connection layer, not lowered here.
		return g.reject(statement.KindDatabase, action)
	case statement.TableStatement:
		return g.lowerTable(s.Table, action)
	case statement.ViewStatement:
		return g.lowerView(s.View, action)
	case statement.SequenceStatement:
		// SQLite has no standalone sequence object; AUTOINCREMENT is a
		// column-level property, not modeled as a lowering of Sequence.
		return g.reject(statement.KindSequence, action)
	default:
		return g.reject(stmt.Kind(), action)
	}
}

func (g *Generator) lowerTable(t object.Table, action statement.DbAction) (producer.Artifact, error) {
	switch action {
	case statement.Create:
		body, err := formatColumns(t.Columns)
		if err != nil {
			return nil, err
		}
		return producer.SQLArtifact(fmt.Sprintf("CREATE TABLE %s ( %s );", t.Name, body)), nil
	case statement.Drop:
		// SQLite's DROP TABLE has no CASCADE clause.
		return producer.SQLArtifact(fmt.Sprintf("DROP TABLE IF EXISTS %s;", t.Name)), nil
	default:
		return g.reject(statement.KindTable, action)
	}
}

func formatColumns(cols []object.Column) (string, error) {
	parts := make([]string, 0, len(cols))
	for _, col := range cols {
		if col.Field.IsPlain() {
			parts = append(parts, formatPlainColumn(col))
			continue
		}
		ann := col.Field.Annotation()
		switch ann.Kind() {
		case object.FieldForeignKey:
			refTable := ann.ForeignKeyRef()
			refCol, ok := refTable.FirstColumnName()
			if !ok {
				return "", fmt.Errorf("producer: foreign key on %s references %s, which has no plain column", ann.Column(), refTable.Name)
			}
			parts = append(parts, fmt.Sprintf("FOREIGN KEY(%s) REFERENCES %s(%s)", ann.Column(), refTable.Name, refCol))
		default:
			return "", fmt.Errorf("producer: unsupported field annotation kind %d", ann.Kind())
		}
	}
	return strings.Join(parts, ", "), nil
}

func formatPlainColumn(col object.Column) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s", col.Field.Name(), sqlType(col.FieldType))
	if col.Annotation != nil {
		if tok := annotationToken(*col.Annotation); tok != "" {
			sb.WriteString(" ")
			sb.WriteString(tok)
		}
	}
	return sb.String()
}

func annotationToken(a object.PropAnnotation) string {
	switch a.Kind() {
	case object.AnnotationPrimaryKey:
		return "PRIMARY KEY"
	case object.AnnotationUnique:
		return "UNIQUE"
	case object.AnnotationNotNull:
		return "NOT NULL"
	case object.AnnotationIdentity:
		return "AUTOINCREMENT"
	case object.AnnotationForeignKey:
		ref := a.ForeignKeyRef()
		if col, ok := ref.FirstColumnName(); ok {
			return fmt.Sprintf("REFERENCES %s(%s)", ref.Name, col)
		}
		return fmt.Sprintf("REFERENCES %s", ref.Name)
	case object.AnnotationConstraint:
		if a.Inner() != nil {
			return annotationToken(*a.Inner())
		}
		return ""
	default:
		return ""
	}
}

// sqlType maps a PropType to SQLite's type-affinity names. SQLite
// itself is dynamically typed, but declaring the affinity keeps
// generated schemas self-documenting and matches the teacher's own
// generator, which always emits a type name.
func sqlType(t object.PropType) string {
	switch t.Kind() {
	case object.Int8, object.Int16, object.Int32, object.Int64,
		object.UInt8, object.UInt16, object.UInt32, object.UInt64,
		object.BigInt, object.SmallInt:
		return "INTEGER"
	case object.Double:
		return "REAL"
	case object.Text, object.Char, object.VarChar:
		return "TEXT"
	case object.Bool:
		return "BOOLEAN"
	case object.Date, object.Timestamp:
		return "TEXT"
	default:
		return "TEXT"
	}
}

func (g *Generator) lowerView(v object.View, action statement.DbAction) (producer.Artifact, error) {
	switch action {
	case statement.Create:
		cols := make([]string, 0, len(v.Columns))
		for _, c := range v.Columns {
			if c.Field.IsPlain() {
				cols = append(cols, c.Field.Name())
			}
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "CREATE VIEW %s AS SELECT %s FROM %s", v.Name, strings.Join(cols, ", "), strings.Join(v.From, ", "))
		if len(v.Where) > 0 {
			fmt.Fprintf(&sb, " WHERE %s", strings.Join(v.Where, " AND "))
		}
		sb.WriteString(";")
		return producer.SQLArtifact(sb.String()), nil
	case statement.Drop:
		return producer.SQLArtifact(fmt.Sprintf("DROP VIEW IF EXISTS %s;", v.Name)), nil
	default:
		return g.reject(statement.KindView, action)
	}
}
