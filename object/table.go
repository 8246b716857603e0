package object

// Field is a Column's name slot. It is either a plain identifier or a
// field-level annotation node occupying a column position without being
// a column itself — e.g. a trailing FOREIGN KEY(col) REFERENCES clause.
type Field struct {
	name       string
	annotation *FieldAnnotation
}

// PlainField builds a Field holding a plain column name.
func PlainField(name string) Field { return Field{name: name} }

// AnnotationField builds a Field holding a field-level annotation node.
func AnnotationField(a FieldAnnotation) Field { return Field{annotation: &a} }

// IsPlain reports whether the field is a plain identifier.
func (f Field) IsPlain() bool { return f.annotation == nil }

// Name returns the plain identifier. Only meaningful when IsPlain.
func (f Field) Name() string { return f.name }

// Annotation returns the field-level annotation node. Only meaningful
// when !IsPlain.
func (f Field) Annotation() FieldAnnotation { return *f.annotation }

// FieldAnnotationKind enumerates the forms a field-level annotation node
// can take.
type FieldAnnotationKind int

const (
	FieldPrimaryKey FieldAnnotationKind = iota
	FieldForeignKey
	FieldConstraint
)

// FieldAnnotation is a standalone construct occupying a Column slot that
// is not itself a column — e.g. a trailing FOREIGN KEY clause.
type FieldAnnotation struct {
	kind       FieldAnnotationKind
	column     string // set when kind == FieldForeignKey: the referencing column
	foreignRef Table  // set when kind == FieldForeignKey
	inner      *FieldAnnotation
}

func (a FieldAnnotation) Kind() FieldAnnotationKind { return a.kind }
func (a FieldAnnotation) Column() string            { return a.column }
func (a FieldAnnotation) ForeignKeyRef() Table       { return a.foreignRef }
func (a FieldAnnotation) Inner() *FieldAnnotation    { return a.inner }

// FieldForeignKeyAnnotation builds a trailing FOREIGN KEY(column)
// REFERENCES ref(...) field annotation.
func FieldForeignKeyAnnotation(column string, ref Table) FieldAnnotation {
	return FieldAnnotation{kind: FieldForeignKey, column: column, foreignRef: ref}
}

// FieldConstraintAnnotation wraps another field annotation as a named
// constraint clause.
func FieldConstraintAnnotation(inner FieldAnnotation) FieldAnnotation {
	return FieldAnnotation{kind: FieldConstraint, inner: &inner}
}

// Column is one entry in a Table's ordered property list. Field is
// either a plain column name or a field-level annotation node (see
// Field); FieldType and Annotation are only meaningful for plain fields.
type Column struct {
	Field      Field
	FieldType  PropType
	Annotation *PropAnnotation
}

// NewColumn builds a plain column with no annotation.
func NewColumn(name string, t PropType) Column {
	return Column{Field: PlainField(name), FieldType: t}
}

// WithAnnotation returns a copy of the column carrying the given
// annotation.
func (c Column) WithAnnotation(a PropAnnotation) Column {
	c.Annotation = &a
	return c
}

// Table is a relational table or, for document backends, a schemaless
// collection (a.k.a. Collection for document backends). Construction is
// a fluent builder: every method returns an updated value and never
// fails or performs I/O — invalid configurations are caught by the
// producer at lowering time, not here.
type Table struct {
	Name        string
	Columns     []Column
	Annotations []TableAnnotation
	Database    string // empty when unset
	Namespace   string // empty when unset
}

// NewTable starts a new table builder.
func NewTable(name string) Table {
	return Table{Name: name}
}

// AddColumn appends a plain column.
func (t Table) AddColumn(name string, ptype PropType) Table {
	t.Columns = append(append([]Column{}, t.Columns...), NewColumn(name, ptype))
	return t
}

// AddColumnWithAnnotation appends a column carrying a field-level
// PropAnnotation (PrimaryKey, NotNull, ...).
func (t Table) AddColumnWithAnnotation(name string, ptype PropType, ann PropAnnotation) Table {
	t.Columns = append(append([]Column{}, t.Columns...), NewColumn(name, ptype).WithAnnotation(ann))
	return t
}

// AddForeignKey is sugar for a referencing column plus a trailing
// ForeignKey field annotation: it pushes a plain column named col of
// type ptype, then a FieldForeignKey annotation node referencing the
// first column of refTable.
func (t Table) AddForeignKey(col string, ptype PropType, refTable Table) Table {
	cols := append([]Column{}, t.Columns...)
	cols = append(cols, NewColumn(col, ptype))
	cols = append(cols, Column{Field: AnnotationField(FieldForeignKeyAnnotation(col, refTable))})
	t.Columns = cols
	return t
}

// AddAnnotation appends a table-level annotation (Partition, View).
func (t Table) AddAnnotation(a TableAnnotation) Table {
	t.Annotations = append(append([]TableAnnotation{}, t.Annotations...), a)
	return t
}

// OnDB binds the table to a named database/namespace. Some backends
// ignore this (Postgres executes on the connection's bound database);
// document backends use it to select which database a collection lives
// in.
func (t Table) OnDB(db string) Table {
	t.Database = db
	return t
}

// OnNamespace sets the table's namespace (e.g. a Postgres schema).
func (t Table) OnNamespace(ns string) Table {
	t.Namespace = ns
	return t
}

// FirstColumnName returns the name of the first plain column, used by
// ForeignKey lowering to find the referenced key. ok is false if the
// table has no plain columns; for a trailing FOREIGN KEY field
// annotation the relational producers turn that into a lowering error
// rather than panicking, and a column-level ForeignKey annotation then
// lowers to a bare REFERENCES <table>.
func (t Table) FirstColumnName() (name string, ok bool) {
	for _, c := range t.Columns {
		if c.Field.IsPlain() {
			return c.Field.Name(), true
		}
	}
	return "", false
}
