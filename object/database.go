package object

// Database is an immutable named-database value.
type Database struct {
	Name string
}

// NewDatabase builds a Database. name must be non-empty; the postgres
// producer rejects an empty name at lowering time rather than here, per
// the object model's "builders never fail" rule (sqlite rejects every
// Database statement, and the mongodb Create is a no-op).
func NewDatabase(name string) Database {
	return Database{Name: name}
}
