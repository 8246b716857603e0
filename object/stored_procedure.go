package object

// Parameter describes one argument or return value of a StoredProcedure.
type Parameter struct {
	Name     string
	DataType string
	List     bool // true if the parameter is an array of DataType
}

// StoredProcedure is a named, typed function body installed into the
// target database.
type StoredProcedure struct {
	Name    string
	Params  []Parameter
	Returns *Parameter
	Body    string
}

// NewStoredProcedure starts a procedure builder with an empty body.
func NewStoredProcedure(name string) StoredProcedure {
	return StoredProcedure{Name: name}
}

// AddParam appends an input parameter.
func (p StoredProcedure) AddParam(param Parameter) StoredProcedure {
	p.Params = append(append([]Parameter{}, p.Params...), param)
	return p
}

// WithReturn sets the return parameter.
func (p StoredProcedure) WithReturn(param Parameter) StoredProcedure {
	p.Returns = &param
	return p
}

// WithBody sets the procedure body.
func (p StoredProcedure) WithBody(body string) StoredProcedure {
	p.Body = body
	return p
}
