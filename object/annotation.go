package object

// PropAnnotation decorates a Column or CompositeType field with a
// constraint. ForeignKey and Constraint carry a payload; the rest are
// bare markers.
type PropAnnotation struct {
	kind       PropAnnotationKind
	foreignRef Table          // set when kind == AnnotationForeignKey
	inner      *PropAnnotation // set when kind == AnnotationConstraint
}

// PropAnnotationKind enumerates the closed set of annotation kinds.
type PropAnnotationKind int

const (
	AnnotationPrimaryKey PropAnnotationKind = iota
	AnnotationUnique
	AnnotationNotNull
	AnnotationDefault
	AnnotationCheck
	AnnotationIdentity
	AnnotationForeignKey
	AnnotationConstraint
)

func (a PropAnnotation) Kind() PropAnnotationKind { return a.kind }

// ForeignKeyRef returns the referenced table for an AnnotationForeignKey
// annotation. Callers must check Kind() first.
func (a PropAnnotation) ForeignKeyRef() Table { return a.foreignRef }

// Inner returns the wrapped annotation for an AnnotationConstraint
// annotation. Callers must check Kind() first.
func (a PropAnnotation) Inner() *PropAnnotation { return a.inner }

func PrimaryKey() PropAnnotation { return PropAnnotation{kind: AnnotationPrimaryKey} }
func Unique() PropAnnotation     { return PropAnnotation{kind: AnnotationUnique} }
func NotNull() PropAnnotation    { return PropAnnotation{kind: AnnotationNotNull} }
func Default() PropAnnotation    { return PropAnnotation{kind: AnnotationDefault} }
func Check() PropAnnotation      { return PropAnnotation{kind: AnnotationCheck} }
func Identity() PropAnnotation   { return PropAnnotation{kind: AnnotationIdentity} }

// ForeignKey builds an annotation marking a column as referencing the
// first column of ref.
func ForeignKey(ref Table) PropAnnotation {
	return PropAnnotation{kind: AnnotationForeignKey, foreignRef: ref}
}

// Constraint wraps another annotation as a named constraint clause.
func Constraint(inner PropAnnotation) PropAnnotation {
	return PropAnnotation{kind: AnnotationConstraint, inner: &inner}
}

// TableAnnotation decorates a Table as a whole.
type TableAnnotation int

const (
	AnnotationPartition TableAnnotation = iota
	AnnotationView
)
