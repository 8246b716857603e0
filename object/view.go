package object

import "errors"

// View is a named projection over one or more tables. It is the one
// object in the model whose builder can fail: an empty view has no
// meaningful lowering on any backend, so ViewBuilder.Build validates
// eagerly instead of deferring to the producer.
type View struct {
	Name     string
	Columns  []Column
	From     []string
	Where    []string
	Database string
}

// ViewBuilder accumulates a View's projection, from-clauses, and
// where-clauses before Build validates and returns the value.
type ViewBuilder struct {
	name     string
	columns  []Column
	from     []string
	where    []string
	database string
}

// NewView starts a view builder.
func NewView(name string) *ViewBuilder {
	return &ViewBuilder{name: name}
}

// FromTable adds a table as a source and projects all of its columns.
func (b *ViewBuilder) FromTable(t Table) *ViewBuilder {
	b.from = append(b.from, t.Name)
	b.columns = append(b.columns, t.Columns...)
	return b
}

// AddColumn projects a single named column of the given type.
func (b *ViewBuilder) AddColumn(name string, ptype PropType) *ViewBuilder {
	b.columns = append(b.columns, NewColumn(name, ptype))
	return b
}

// AddFrom appends a raw from-clause (table or sub-expression name).
func (b *ViewBuilder) AddFrom(from string) *ViewBuilder {
	b.from = append(b.from, from)
	return b
}

// AddWhere appends a raw where-clause fragment.
func (b *ViewBuilder) AddWhere(clause string) *ViewBuilder {
	b.where = append(b.where, clause)
	return b
}

// OnDB binds the view to a named database.
func (b *ViewBuilder) OnDB(db string) *ViewBuilder {
	b.database = db
	return b
}

// ErrViewNoColumns is returned by Build when no column was projected.
var ErrViewNoColumns = errors.New("object: view must have at least one projected column")

// ErrViewNoFrom is returned by Build when no from-clause was added.
var ErrViewNoFrom = errors.New("object: view must have at least one from-clause")

// Build validates and returns the View. This is the only fallible
// construction path in the object model: an empty view can't be lowered
// on any backend, so the check happens here rather than at producer
// time.
func (b *ViewBuilder) Build() (View, error) {
	if len(b.columns) == 0 {
		return View{}, ErrViewNoColumns
	}
	if len(b.from) == 0 {
		return View{}, ErrViewNoFrom
	}
	return View{
		Name:     b.name,
		Columns:  append([]Column{}, b.columns...),
		From:     append([]string{}, b.from...),
		Where:    append([]string{}, b.where...),
		Database: b.database,
	}, nil
}
