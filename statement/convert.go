package statement

import "github.com/lockplane/cortex/object"

// The following free functions give every object.T a Statement
// conversion. Defining these as methods on object.T directly (as
// T.Statement()) would require the object package to import statement
// for the return type while statement already imports object for the
// payload types — a cycle. Adapter functions here are the resolution:
// callers write statement.TableOf(t) instead of t.Statement().

func TableOf(t object.Table) Statement                           { return TableStatement{Table: t} }
func ViewOf(v object.View) Statement                              { return ViewStatement{View: v} }
func DatabaseOf(d object.Database) Statement                      { return DatabaseStatement{Database: d} }
func UserOf(u object.User) Statement                              { return UserStatement{User: u} }
func RoleOf(r object.Role) Statement                              { return RoleStatement{Role: r} }
func SequenceOf(s object.Sequence) Statement                      { return SequenceStatement{Sequence: s} }
func CompositeTypeOf(c object.CompositeType) Statement            { return CompositeTypeStatement{CompositeType: c} }
func StoredProcedureOf(p object.StoredProcedure) Statement        { return StoredProcedureStatement{StoredProcedure: p} }
func TriggerOf(tr object.Trigger) Statement                       { return TriggerStatement{Trigger: tr} }
