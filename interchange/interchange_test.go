package interchange

import (
	"reflect"
	"strings"
	"testing"

	"github.com/lockplane/cortex/object"
	"github.com/lockplane/cortex/producer/mongodb"
	"github.com/lockplane/cortex/producer/postgres"
	"github.com/lockplane/cortex/statement"
	"github.com/lockplane/cortex/step"
)

func usersTable() object.Table {
	return object.NewTable("users").AddColumn("id", object.NewPropType(object.Int64))
}

func TestFromStepCollectsLoweredSQL(t *testing.T) {
	s := step.New("add users", step.Version{Major: 0, Minor: 1, Patch: 0}).
		AddStatement(statement.TableOf(usersTable()), statement.Create)

	doc, err := FromStep(s, postgres.New())
	if err != nil {
		t.Fatalf("FromStep error = %v", err)
	}
	if doc.Name != "add users" || doc.Version != "0.1.0" {
		t.Fatalf("unexpected document header: %+v", doc)
	}
	if len(doc.SQL) != 1 || !strings.Contains(doc.SQL[0], "CREATE TABLE") {
		t.Fatalf("expected one CREATE TABLE statement, got %v", doc.SQL)
	}
}

func TestFromStepRejectsDocumentBackendArtifacts(t *testing.T) {
	s := step.New("add users", step.Version{Major: 0, Minor: 1, Patch: 0}).
		AddStatement(statement.TableOf(usersTable()), statement.Create)

	if _, err := FromStep(s, mongodb.New()); err == nil {
		t.Fatalf("expected an error exporting a document-backend artifact")
	}
}

func TestMarshalValidateLoadRoundTrip(t *testing.T) {
	doc := Document{Name: "add users", Version: "0.1.0", SQL: []string{"CREATE TABLE users (id BIGINT);"}}

	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal error = %v", err)
	}
	if err := Validate(data); err != nil {
		t.Fatalf("Validate error = %v", err)
	}
	loaded, err := Load(data)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if !reflect.DeepEqual(loaded, doc) {
		t.Fatalf("round-tripped document = %+v, want %+v", loaded, doc)
	}
}

func TestValidateRejectsMissingVersion(t *testing.T) {
	data := []byte(`{"name": "add users", "sql": ["CREATE TABLE users (id BIGINT);"]}`)
	if err := Validate(data); err == nil {
		t.Fatalf("expected validation to fail without a version field")
	}
}

func TestValidateRejectsMalformedVersion(t *testing.T) {
	data := []byte(`{"name": "add users", "version": "not-a-version", "sql": []}`)
	if err := Validate(data); err == nil {
		t.Fatalf("expected validation to fail for a non-semver version string")
	}
}

