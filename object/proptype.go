package object

import "fmt"

// PropType is the closed set of column/field types a Table, View, or
// CompositeType property can carry. Every backend producer defines a
// total mapping from PropType to its own native type; PropType itself
// stays backend-agnostic.
type PropType struct {
	kind PropTypeKind
	// Width carries the parameter for Char/VarChar (e.g. VarChar(255)).
	// Zero for every other kind.
	Width int
}

// PropTypeKind enumerates the base kinds of PropType.
type PropTypeKind int

const (
	Int8 PropTypeKind = iota
	Int16
	Int32
	Int64
	UInt8
	UInt16
	UInt32
	UInt64
	Double
	Text
	Char
	VarChar
	Bool
	Date
	Timestamp
	BigInt
	SmallInt
)

// Kind returns the base kind of the type, ignoring Width.
func (p PropType) Kind() PropTypeKind { return p.kind }

// NewPropType builds a width-less PropType (everything but Char/VarChar).
func NewPropType(kind PropTypeKind) PropType { return PropType{kind: kind} }

// NewChar builds a fixed-width Char(n) PropType.
func NewChar(n int) PropType { return PropType{kind: Char, Width: n} }

// NewVarChar builds a VarChar(n) PropType.
func NewVarChar(n int) PropType { return PropType{kind: VarChar, Width: n} }

// HostType returns the Go host-language type name for code-generation
// consumers. This is independent of any backend's native type mapping —
// see each producer package for the PropType → SQL/BSON mapping.
func (p PropType) HostType() string {
	switch p.kind {
	case Int8:
		return "int8"
	case Int16:
		return "int16"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case UInt8:
		return "uint8"
	case UInt16:
		return "uint16"
	case UInt32:
		return "uint32"
	case UInt64:
		return "uint64"
	case Double:
		return "float64"
	case Text, Char, VarChar:
		return "string"
	case Bool:
		return "bool"
	case Date:
		return "time.Time"
	case Timestamp:
		return "time.Time"
	case BigInt:
		return "int64"
	case SmallInt:
		return "int16"
	default:
		return fmt.Sprintf("unknown(%d)", p.kind)
	}
}

func (p PropType) String() string {
	switch p.kind {
	case Char:
		return fmt.Sprintf("Char(%d)", p.Width)
	case VarChar:
		return fmt.Sprintf("VarChar(%d)", p.Width)
	default:
		return p.HostType()
	}
}
