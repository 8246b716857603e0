package postgres

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
		AddColumnWithAnnotation("id", object.NewPropType(object.Int64), object.PrimaryKey()).
		AddColumn("email", object.NewVarChar(255))

	art, err := g.Lower(statement.TableOf(users), statement.Create)
	if err != nil {
		t.Fatalf("Lower error = %v", err)
	}
	sql := string(art.(producer.SQLArtifact))
	if !strings.Contains(sql, "CREATE TABLE users") {
		t.Fatalf("sql = %q, want CREATE TABLE users", sql)
	}
	if !strings.Contains(sql, "id BIGINT PRIMARY KEY") {
		t.Fatalf("sql = %q, want id column with PRIMARY KEY", sql)
	}
	if !strings.Contains(sql, "email VARCHAR(255)") {
		t.Fatalf("sql = %q, want email VARCHAR(255)", sql)
	}
}

func TestLowerForeignKeySugar(t *testing.T) {
	g := New()
	users := object.NewTable("users").AddColumn("id", object.NewPropType(object.Int64))
	orders := object.NewTable("orders").
		AddColumn("id", object.NewPropType(object.Int64)).
		AddForeignKey("user_id", object.NewPropType(object.Int64), users)

	art, err := g.Lower(statement.TableOf(orders), statement.Create)
	if err != nil {
		t.Fatalf("Lower error = %v", err)
	}
	sql := string(art.(producer.SQLArtifact))
	if !strings.Contains(sql, "FOREIGN KEY(user_id) REFERENCES users(id)") {
		t.Fatalf("sql = %q, want trailing foreign key clause", sql)
	}
}

func TestLowerDropTable(t *testing.T) {
	g := New()
	art, err := g.Lower(statement.TableOf(object.NewTable("users")), statement.Drop)
	if err != nil {
		t.Fatalf("Lower error = %v", err)
	}
	if string(art.(producer.SQLArtifact)) != "DROP TABLE IF EXISTS users;" {
		t.Fatalf("sql = %q", art)
	}
}

func TestLowerRejectsAlterTable(t *testing.T) {
	g := New()
	_, err := g.Lower(statement.TableOf(object.NewTable("users")), statement.Alter)
	var unsupported *producer.UnsupportedOperationError
	if err == nil {
		t.Fatalf("expected an error for Alter on Table")
	}
	if !errors.As(err, &unsupported) {
		t.Fatalf("err = %v, want *UnsupportedOperationError", err)
	}
}

func TestLowerSequenceOptionOrder(t *testing.T) {
	g := New()
	seq := object.NewSequence("order_ids").WithStart(100)
	art, err := g.Lower(statement.SequenceOf(seq), statement.Create)
	if err != nil {
		t.Fatalf("Lower error = %v", err)
	}
	sql := string(art.(producer.SQLArtifact))
	startIdx := strings.Index(sql, "START WITH")
	incIdx := strings.Index(sql, "INCREMENT BY")
	minIdx := strings.Index(sql, "MINVALUE")
	maxIdx := strings.Index(sql, "MAXVALUE")
	cacheIdx := strings.Index(sql, "CACHE")
	cycleIdx := strings.Index(sql, "NO CYCLE")
	if !(startIdx < incIdx && incIdx < minIdx && minIdx < maxIdx && maxIdx < cacheIdx && cacheIdx < cycleIdx) {
		t.Fatalf("sequence options out of order: %q", sql)
	}
}

func TestLowerCompositeType(t *testing.T) {
	g := New()
	ct := object.NewCompositeType("address").AddField("street", object.NewPropType(object.Text))
	art, err := g.Lower(statement.CompositeTypeOf(ct), statement.Create)
	if err != nil {
		t.Fatalf("Lower error = %v", err)
	}
	sql := string(art.(producer.SQLArtifact))
	if !strings.Contains(sql, "CREATE TYPE address AS (street TEXT)") {
		t.Fatalf("sql = %q", sql)
	}
}

func TestLowerTrigger(t *testing.T) {
	g := New()
	users := object.NewTable("users").AddColumn("id", object.NewPropType(object.Int64))
	sp := object.NewStoredProcedure("audit_row")
	event := object.NewTriggerEvent(object.TriggerUpdate, object.After, object.OnTable(users))
	tr := object.NewTrigger("audit_users", event, object.ForEachRow, sp)

	art, err := g.Lower(statement.TriggerOf(tr), statement.Create)
	if err != nil {
		t.Fatalf("Lower error = %v", err)
	}
	sql := string(art.(producer.SQLArtifact))
	if !strings.Contains(sql, "CREATE TRIGGER audit_users AFTER UPDATE ON users FOR EACH ROW EXECUTE FUNCTION audit_row();") {
		t.Fatalf("sql = %q", sql)
	}
}

func TestValidateGeneratedSQL(t *testing.T) {
	g := New()
	art, err := g.Lower(statement.TableOf(object.NewTable("users").AddColumn("id", object.NewPropType(object.Int64))), statement.Create)
	if err != nil {
		t.Fatalf("Lower error = %v", err)
	}
	if err := ValidateGeneratedSQL(string(art.(producer.SQLArtifact))); err != nil {
		t.Fatalf("ValidateGeneratedSQL error = %v", err)
	}
}

func TestValidateGeneratedSQLRejectsGarbage(t *testing.T) {
	if err := ValidateGeneratedSQL("CREATE TABLE ((("); err == nil {
		t.Fatalf("expected a parse error for malformed SQL")
	}
}
