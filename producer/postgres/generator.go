// Package postgres lowers Cortex statements to PostgreSQL DDL/DML.
package postgres

import (
	"fmt"
	"strings"

	"github.com/lockplane/cortex/object"
	"github.com/lockplane/cortex/producer"
	"github.com/lockplane/cortex/statement"
)

// Generator is the PostgreSQL producer.Producer.
type Generator struct{}

// New builds a PostgreSQL generator.
func New() *Generator { return &Generator{} }

// Lower implements producer.Producer.
func (g *Generator) Lower(stmt statement.Statement, action statement.DbAction) (producer.Artifact, error) {
	switch s := stmt.(type) {
	case statement.DatabaseStatement:
		return g.lowerDatabase(s.Database, action)
	case statement.TableStatement:
		return g.lowerTable(s.Table, action)
	case statement.ViewStatement:
		return g.lowerView(s.View, action)
	case statement.UserStatement:
		return g.lowerUser(s.User, action)
	case statement.RoleStatement:
		return g.lowerRole(s.Role, action)
	case statement.SequenceStatement:
		return g.lowerSequence(s.Sequence, action)
	case statement.StoredProcedureStatement:
		return g.lowerStoredProcedure(s.StoredProcedure, action)
	case statement.CompositeTypeStatement:
		return g.lowerCompositeType(s.CompositeType, action)
	case statement.TriggerStatement:
		return g.lowerTrigger(s.Trigger, action)
	default:
		return nil, &producer.UnsupportedOperationError{Backend: "postgres", Kind: stmt.Kind(), Action: action}
	}
}

func (g *Generator) reject(kind statement.StatementKind, action statement.DbAction) (producer.Artifact, error) {
	return nil, &producer.UnsupportedOperationError{Backend: "postgres", Kind: kind, Action: action}
}

func (g *Generator) lowerDatabase(d object.Database, action statement.DbAction) (producer.Artifact, error) {
	if d.Name == "" && (action == statement.Create || action == statement.Drop) {
		return nil, fmt.Errorf("producer: database name must not be empty")
	}
	switch action {
	case statement.Create:
		return producer.SQLArtifact(fmt.Sprintf("CREATE DATABASE %s;", d.Name)), nil
	case statement.Drop:
		return producer.SQLArtifact(fmt.Sprintf("DROP DATABASE %s;", d.Name)), nil
	default:
		return g.reject(statement.KindDatabase, action)
	}
}

func (g *Generator) lowerTable(t object.Table, action statement.DbAction) (producer.Artifact, error) {
	switch action {
	case statement.Create:
		body, err := formatColumns(t.Columns)
		if err != nil {
			return nil, err
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "CREATE TABLE %s ( %s )", t.Name, body)
		for _, ann := range t.Annotations {
			switch ann {
			case object.AnnotationPartition:
				sb.WriteString(" PARTITION")
			case object.AnnotationView:
				sb.WriteString(" VIEW")
			}
		}
		sb.WriteString(";")
		return producer.SQLArtifact(sb.String()), nil
	case statement.Drop:
		return producer.SQLArtifact(fmt.Sprintf("DROP TABLE IF EXISTS %s;", t.Name)), nil
	default:
		return g.reject(statement.KindTable, action)
	}
}

// formatColumns lowers each column (plain field or trailing ForeignKey
// field annotation) and joins them with ", ".
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
		return "GENERATED ALWAYS AS IDENTITY"
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

// sqlType maps a PropType to its PostgreSQL native type.
func sqlType(t object.PropType) string {
	switch t.Kind() {
	case object.Int8, object.SmallInt:
		return "SMALLINT"
	case object.Int16:
		return "SMALLINT"
	case object.Int32:
		return "INTEGER"
	case object.Int64, object.BigInt:
		return "BIGINT"
	case object.UInt8, object.UInt16, object.UInt32, object.UInt64:
		return "BIGINT"
	case object.Double:
		return "DOUBLE PRECISION"
	case object.Text:
		return "TEXT"
	case object.Char:
		return fmt.Sprintf("CHAR(%d)", t.Width)
	case object.VarChar:
		return fmt.Sprintf("VARCHAR(%d)", t.Width)
	case object.Bool:
		return "BOOLEAN"
	case object.Date:
		return "DATE"
	case object.Timestamp:
		return "TIMESTAMP"
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

func (g *Generator) lowerUser(u object.User, action statement.DbAction) (producer.Artifact, error) {
	switch action {
	case statement.Create:
		if u.Password == "" {
			return producer.SQLArtifact(fmt.Sprintf("CREATE USER %s;", u.Name)), nil
		}
		return producer.SQLArtifact(fmt.Sprintf("CREATE USER %s PASSWORD '%s';", u.Name, u.Password)), nil
	case statement.Drop:
		return producer.SQLArtifact(fmt.Sprintf("DROP USER IF EXISTS %s;", u.Name)), nil
	default:
		return g.reject(statement.KindUser, action)
	}
}

func (g *Generator) lowerRole(r object.Role, action statement.DbAction) (producer.Artifact, error) {
	switch action {
	case statement.Create:
		return producer.SQLArtifact(fmt.Sprintf("CREATE ROLE %s;", r.Name)), nil
	case statement.Drop:
		return producer.SQLArtifact(fmt.Sprintf("DROP ROLE IF EXISTS %s;", r.Name)), nil
	default:
		// Grant/Revoke on a Role are documented as not yet implemented,
		// not panics: object.Role currently has no wire format for which
		// permission set a GRANT should carry beyond Role.Permissions,
		// and the original Rust producer has no grant/revoke path to
		// port from either.
		return g.reject(statement.KindRole, action)
	}
}

func (g *Generator) lowerSequence(s object.Sequence, action statement.DbAction) (producer.Artifact, error) {
	switch action {
	case statement.Create:
		var sb strings.Builder
		fmt.Fprintf(&sb, "CREATE SEQUENCE %s", s.Name)
		if s.Start != nil {
			fmt.Fprintf(&sb, " START WITH %d", *s.Start)
		}
		if s.Increment != nil {
			fmt.Fprintf(&sb, " INCREMENT BY %d", *s.Increment)
		}
		if s.MinValue != nil {
			fmt.Fprintf(&sb, " MINVALUE %d", *s.MinValue)
		}
		if s.MaxValue != nil {
			fmt.Fprintf(&sb, " MAXVALUE %d", *s.MaxValue)
		}
		if s.Cache != nil {
			fmt.Fprintf(&sb, " CACHE %d", *s.Cache)
		}
		if s.Cycle != nil {
			if *s.Cycle {
				sb.WriteString(" CYCLE")
			} else {
				sb.WriteString(" NO CYCLE")
			}
		}
		sb.WriteString(";")
		return producer.SQLArtifact(sb.String()), nil
	case statement.Drop:
		return producer.SQLArtifact(fmt.Sprintf("DROP SEQUENCE IF EXISTS %s;", s.Name)), nil
	default:
		return g.reject(statement.KindSequence, action)
	}
}

func (g *Generator) lowerStoredProcedure(p object.StoredProcedure, action statement.DbAction) (producer.Artifact, error) {
	switch action {
	case statement.Create:
		params := make([]string, 0, len(p.Params))
		for _, param := range p.Params {
			t := param.DataType
			if param.List {
				t += "[]"
			}
			params = append(params, fmt.Sprintf("%s %s", param.Name, t))
		}
		returns := "void"
		if p.Returns != nil {
			returns = p.Returns.DataType
			if p.Returns.List {
				returns += "[]"
			}
		}
		sql := fmt.Sprintf("CREATE FUNCTION %s(%s) RETURNS %s LANGUAGE SQL AS $$ %s $$;",
			p.Name, strings.Join(params, ", "), returns, p.Body)
		return producer.SQLArtifact(sql), nil
	case statement.Drop:
		return producer.SQLArtifact(fmt.Sprintf("DROP FUNCTION IF EXISTS %s;", p.Name)), nil
	default:
		return g.reject(statement.KindStoredProcedure, action)
	}
}

func (g *Generator) lowerCompositeType(c object.CompositeType, action statement.DbAction) (producer.Artifact, error) {
	switch action {
	case statement.Create:
		fields := make([]string, 0, len(c.Fields))
		for _, f := range c.Fields {
			fields = append(fields, fmt.Sprintf("%s %s", f.Name, sqlType(f.FieldType)))
		}
		sql := fmt.Sprintf("CREATE TYPE %s AS (%s);", c.Name, strings.Join(fields, ", "))
		return producer.SQLArtifact(sql), nil
	case statement.Drop:
		return producer.SQLArtifact(fmt.Sprintf("DROP TYPE IF EXISTS %s;", c.Name)), nil
	default:
		return g.reject(statement.KindCompositeType, action)
	}
}

func (g *Generator) lowerTrigger(tr object.Trigger, action statement.DbAction) (producer.Artifact, error) {
	switch action {
	case statement.Create:
		tableName, ok := triggerTableName(tr)
		if !ok {
			return nil, fmt.Errorf("producer: trigger %s event is not attached to a table or view", tr.Name)
		}
		sql := fmt.Sprintf("CREATE TRIGGER %s %s %s ON %s FOR EACH %s EXECUTE FUNCTION %s();",
			tr.Name, triggerTime(tr.Event.Time), triggerAction(tr.Event.Action), tableName, triggerForEach(tr.ForEach), tr.Execute)
		return producer.SQLArtifact(sql), nil
	case statement.Drop:
		tableName, ok := triggerTableName(tr)
		if !ok {
			return nil, fmt.Errorf("producer: trigger %s event is not attached to a table or view", tr.Name)
		}
		return producer.SQLArtifact(fmt.Sprintf("DROP TRIGGER IF EXISTS %s ON %s;", tr.Name, tableName)), nil
	default:
		return g.reject(statement.KindTrigger, action)
	}
}

func triggerTableName(tr object.Trigger) (string, bool) {
	if t, ok := tr.Event.On.Table(); ok {
		return t.Name, true
	}
	if v, ok := tr.Event.On.View(); ok {
		return v.Name, true
	}
	return "", false
}

func triggerTime(t object.TriggerTime) string {
	switch t {
	case object.Before:
		return "BEFORE"
	case object.After:
		return "AFTER"
	case object.InsteadOf:
		return "INSTEAD OF"
	default:
		return "AFTER"
	}
}

func triggerAction(a object.TriggerAction) string {
	switch a {
	case object.TriggerInsert:
		return "INSERT"
	case object.TriggerUpdate:
		return "UPDATE"
	case object.TriggerDelete:
		return "DELETE"
	default:
		return "INSERT"
	}
}

func triggerForEach(f object.TriggerForEach) string {
	switch f {
	case object.ForEachRow:
		return "ROW"
	case object.ForEachStatement:
		return "STATEMENT"
	default:
		return "ROW"
	}
}
