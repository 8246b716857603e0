package statement

import "github.com/lockplane/cortex/object"

// StatementKind enumerates the closed set of object kinds a Statement
// can wrap. Producers dispatch with a type switch on the wrapper
// struct; Kind names the object kind in errors and in Flatten's key.
type StatementKind int

const (
	KindTable StatementKind = iota
	KindView
	KindDatabase
	KindUser
	KindRole
	KindSequence
	KindCompositeType
	KindStoredProcedure
	KindTrigger
)

func (k StatementKind) String() string {
	switch k {
	case KindTable:
		return "table"
	case KindView:
		return "view"
	case KindDatabase:
		return "database"
	case KindUser:
		return "user"
	case KindRole:
		return "role"
	case KindSequence:
		return "sequence"
	case KindCompositeType:
		return "composite_type"
	case KindStoredProcedure:
		return "stored_procedure"
	case KindTrigger:
		return "trigger"
	default:
		return "unknown"
	}
}

// Statement is an immutable snapshot of one object-model value, tagged
// with its StatementKind. It is a sum type over the nine object kinds
// Cortex knows about; a Producer's lowering table type-switches on the
// wrapper struct to get the payload back out.
//
// Every wrapper is a value type holding a value (not pointer) copy of
// the object, so a Statement never aliases the builder that produced
// it — a caller mutating the builder afterward cannot retroactively
// change a Statement already handed to a Step.
type Statement interface {
	Kind() StatementKind
}

type TableStatement struct{ Table object.Table }

func (TableStatement) Kind() StatementKind { return KindTable }

type ViewStatement struct{ View object.View }

func (ViewStatement) Kind() StatementKind { return KindView }

type DatabaseStatement struct{ Database object.Database }

func (DatabaseStatement) Kind() StatementKind { return KindDatabase }

type UserStatement struct{ User object.User }

func (UserStatement) Kind() StatementKind { return KindUser }

type RoleStatement struct{ Role object.Role }

func (RoleStatement) Kind() StatementKind { return KindRole }

type SequenceStatement struct{ Sequence object.Sequence }

func (SequenceStatement) Kind() StatementKind { return KindSequence }

type CompositeTypeStatement struct{ CompositeType object.CompositeType }

func (CompositeTypeStatement) Kind() StatementKind { return KindCompositeType }

type StoredProcedureStatement struct{ StoredProcedure object.StoredProcedure }

func (StoredProcedureStatement) Kind() StatementKind { return KindStoredProcedure }

type TriggerStatement struct{ Trigger object.Trigger }

func (TriggerStatement) Kind() StatementKind { return KindTrigger }
