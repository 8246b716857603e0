// Package statement defines Cortex's backend-agnostic statement sum
// type: the closed set of object kinds a Step can carry, paired with
// the closed set of actions a producer can lower them under.
package statement

// DbAction is the closed set of actions a Statement can be paired with.
// A Producer's lowering table is total over (StatementKind, DbAction);
// pairs it does not implement return a typed error rather than panic.
type DbAction string

const (
	Create DbAction = "create"
	Drop   DbAction = "drop"
	Alter  DbAction = "alter"
	Insert DbAction = "insert"
	Grant  DbAction = "grant"
	Revoke DbAction = "revoke"
)

func (a DbAction) String() string { return string(a) }
