package sqlite

import (
	"errors"
	"strings"
	"testing"

	"github.com/lockplane/cortex/object"
	"github.com/lockplane/cortex/producer"
	"github.com/lockplane/cortex/statement"
)

func TestLowerCreateTable(t *testing.T) {
	g := New()
	users := object.NewTable("users").
		AddColumnWithAnnotation("id", object.NewPropType(object.Int64), object.PrimaryKey())

	art, err := g.Lower(statement.TableOf(users), statement.Create)
	if err != nil {
		t.Fatalf("Lower error = %v", err)
	}
	sql := string(art.(producer.SQLArtifact))
	if !strings.Contains(sql, "id INTEGER PRIMARY KEY") {
		t.Fatalf("sql = %q", sql)
	}
}

func TestLowerRejectsSequence(t *testing.T) {
	g := New()
	_, err := g.Lower(statement.SequenceOf(object.NewSequence("ids")), statement.Create)
	var unsupported *producer.UnsupportedOperationError
	if !errors.As(err, &unsupported) {
		t.Fatalf("err = %v, want *UnsupportedOperationError for Sequence on sqlite", err)
	}
}

func TestLowerRejectsDatabase(t *testing.T) {
	g := New()
	_, err := g.Lower(statement.DatabaseOf(object.NewDatabase("app")), statement.Create)
	var unsupported *producer.UnsupportedOperationError
	if !errors.As(err, &unsupported) {
		t.Fatalf("err = %v, want *UnsupportedOperationError for Database on sqlite", err)
	}
}

func TestLowerDropTableNoCascade(t *testing.T) {
	g := New()
	art, err := g.Lower(statement.TableOf(object.NewTable("users")), statement.Drop)
	if err != nil {
		t.Fatalf("Lower error = %v", err)
	}
	sql := string(art.(producer.SQLArtifact))
	if strings.Contains(sql, "CASCADE") {
		t.Fatalf("sqlite DROP TABLE must not include CASCADE: %q", sql)
	}
}
