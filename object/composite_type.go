package object

// CompositeTypeField is one named, typed member of a CompositeType.
type CompositeTypeField struct {
	Name      string
	FieldType PropType
}

// CompositeType is a user-defined structured type composed of named,
// typed fields (e.g. Postgres CREATE TYPE ... AS (...)).
type CompositeType struct {
	Name   string
	Fields []CompositeTypeField
}

// NewCompositeType starts an empty composite type builder.
func NewCompositeType(name string) CompositeType {
	return CompositeType{Name: name}
}

// AddField appends a named, typed field.
func (c CompositeType) AddField(name string, ptype PropType) CompositeType {
	c.Fields = append(append([]CompositeTypeField{}, c.Fields...), CompositeTypeField{Name: name, FieldType: ptype})
	return c
}
