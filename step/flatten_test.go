package step

import (
	"errors"
	"testing"

	"github.com/lockplane/cortex/object"
	"github.com/lockplane/cortex/statement"
)

func usersTable() object.Table {
	return object.NewTable("users").AddColumn("id", object.NewPropType(object.Int64))
}

func TestFlattenSingleCreate(t *testing.T) {
	s := New("init", Version{0, 1, 0}).
		AddStatement(statement.TableOf(usersTable()), statement.Create)

	result, err := Flatten([]Step{s})
	if err != nil {
		t.Fatalf("Flatten error = %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(result.Entries))
	}
	if result.Version != (Version{0, 1, 0}) {
		t.Fatalf("Version = %v, want 0.1.0", result.Version)
	}
}

func TestFlattenDuplicateCreate(t *testing.T) {
	s1 := New("a", Version{0, 1, 0}).AddStatement(statement.TableOf(usersTable()), statement.Create)
	s2 := New("b", Version{0, 2, 0}).AddStatement(statement.TableOf(usersTable()), statement.Create)

	_, err := Flatten([]Step{s1, s2})
	if !errors.Is(err, ErrDuplicateCreate) {
		t.Fatalf("err = %v, want ErrDuplicateCreate", err)
	}
}

func TestFlattenDropBeforeCreate(t *testing.T) {
	s := New("a", Version{0, 1, 0}).AddStatement(statement.TableOf(usersTable()), statement.Drop)

	_, err := Flatten([]Step{s})
	if !errors.Is(err, ErrDropBeforeCreate) {
		t.Fatalf("err = %v, want ErrDropBeforeCreate", err)
	}
}

func TestFlattenCreateThenDropNetsToEmpty(t *testing.T) {
	s1 := New("a", Version{0, 1, 0}).AddStatement(statement.TableOf(usersTable()), statement.Create)
	s2 := New("b", Version{0, 2, 0}).AddStatement(statement.TableOf(usersTable()), statement.Drop)

	result, err := Flatten([]Step{s1, s2})
	if err != nil {
		t.Fatalf("Flatten error = %v", err)
	}
	if len(result.Entries) != 0 {
		t.Fatalf("len(Entries) = %d, want 0", len(result.Entries))
	}
	if result.Version != (Version{0, 2, 0}) {
		t.Fatalf("Version = %v, want 0.2.0 (max, not last-applied)", result.Version)
	}
}

func TestFlattenVersionIsMaxNotLast(t *testing.T) {
	s1 := New("a", Version{1, 5, 0}).AddStatement(statement.TableOf(usersTable()), statement.Create)
	s2 := New("b", Version{1, 0, 0}).AddStatement(statement.TableOf(object.NewTable("orders")), statement.Create)

	result, err := Flatten([]Step{s1, s2})
	if err != nil {
		t.Fatalf("Flatten error = %v", err)
	}
	if result.Version != (Version{1, 5, 0}) {
		t.Fatalf("Version = %v, want 1.5.0", result.Version)
	}
	if result.Name != "b" {
		t.Fatalf("Name = %q, want b (last step's name)", result.Name)
	}
}

func TestFlattenDropsMutatingActions(t *testing.T) {
	s := New("a", Version{0, 1, 0}).
		AddStatement(statement.TableOf(usersTable()), statement.Create).
		AddStatement(statement.TableOf(usersTable()), statement.Alter).
		AddStatement(statement.UserOf(object.NewUser("alice", "x")), statement.Grant)

	result, err := Flatten([]Step{s})
	if err != nil {
		t.Fatalf("Flatten error = %v", err)
	}
	if len(result.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1 (Alter/Grant dropped)", len(result.Entries))
	}
	if result.Entries[0].Action != statement.Create {
		t.Fatalf("surviving entry action = %v, want Create", result.Entries[0].Action)
	}
}

func TestFlattenEmptyInput(t *testing.T) {
	if _, err := Flatten(nil); err == nil {
		t.Fatalf("expected error for empty step sequence")
	}
}
