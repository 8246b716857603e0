// Package mongodb lowers Cortex statements to MongoDB driver calls.
// Mongo has no DDL string: a Table lowers to a DriverCall that builds a
// $jsonSchema validator document and issues CreateCollection with that
// validator against the target *mongo.Database, grounded on the buildJSONSchema /
// createValidation pattern in the wider pack's mongodb driver and
// cross-checked against the original Rust producer's collection
// validator shape.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/lockplane/cortex/object"
	"github.com/lockplane/cortex/producer"
	"github.com/lockplane/cortex/statement"
)

// Generator is the MongoDB producer.Producer. Only (Database, Create)
// and (Table, Create) are meaningful; every other pair rejects, since
// Mongo databases and collections are otherwise schemaless and
// implicitly managed.
type Generator struct{}

// New builds a MongoDB generator.
func New() *Generator { return &Generator{} }

func (g *Generator) reject(kind statement.StatementKind, action statement.DbAction) (producer.Artifact, error) {
	return nil, &producer.UnsupportedOperationError{Backend: "mongodb", Kind: kind, Action: action}
}

// Lower implements producer.Producer.
func (g *Generator) Lower(stmt statement.Statement, action statement.DbAction) (producer.Artifact, error) {
	switch s := stmt.(type) {
	case statement.DatabaseStatement:
		return g.lowerDatabase(s.Database, action)
	case statement.TableStatement:
		return g.lowerTable(s.Table, action)
	default:
		return g.reject(stmt.Kind(), action)
	}
}

// lowerDatabase is a no-op on Create: Mongo databases are created
// lazily on first collection write, matching the pack's MongoDBMigrator
// which never issues an explicit create-database call.
func (g *Generator) lowerDatabase(d object.Database, action statement.DbAction) (producer.Artifact, error) {
	if action != statement.Create {
		return g.reject(statement.KindDatabase, action)
	}
	var call producer.DriverCall = func(ctx context.Context, conn any) error {
		return nil
	}
	return call, nil
}

func (g *Generator) lowerTable(t object.Table, action statement.DbAction) (producer.Artifact, error) {
	if action != statement.Create {
		return g.reject(statement.KindTable, action)
	}
	validator := buildJSONSchema(t)
	var call producer.DriverCall = func(ctx context.Context, conn any) error {
		db, ok := conn.(*mongo.Database)
		if !ok {
			return fmt.Errorf("producer/mongodb: expected *mongo.Database, got %T", conn)
		}
		opts := options.CreateCollection().SetValidator(bson.M{"$jsonSchema": validator})
		return db.CreateCollection(ctx, t.Name, opts)
	}
	return call, nil
}

// buildJSONSchema builds the $jsonSchema validator document for a
// table: every plain column becomes a required property (Cortex has no
// separate "nullable"/"has default" distinction yet, so every plain
// column is required); annotation-only field entries (e.g. trailing
// ForeignKey clauses) carry no JSON Schema representation and are
// skipped. Mirrors collection.rs's create_collection validator build,
// including its per-property title and annotation→description/
// uniqueItems mapping.
func buildJSONSchema(t object.Table) bson.M {
	properties := bson.M{}
	required := make([]string, 0, len(t.Columns))

	for _, col := range t.Columns {
		if !col.Field.IsPlain() {
			continue
		}
		name := col.Field.Name()
		properties[name] = fieldSchema(name, col.FieldType, col.Annotation)
		required = append(required, name)
	}

	return bson.M{
		"bsonType":   "object",
		"required":   required,
		"properties": properties,
	}
}

// fieldSchema maps a PropType to its $jsonSchema bsonType and attaches
// title/annotation metadata, matching collection.rs's per-property doc
// construction. Integer kinds collapse to "int", per the validator's
// own convention of accepting the closest native numeric representation
// rather than enumerating every Go integer width.
func fieldSchema(name string, t object.PropType, ann *object.PropAnnotation) bson.M {
	schema := bson.M{"title": name}
	switch t.Kind() {
	case object.Int8, object.Int16, object.Int32, object.Int64,
		object.UInt8, object.UInt16, object.UInt32, object.UInt64,
		object.BigInt, object.SmallInt:
		schema["bsonType"] = "int"
	case object.Double:
		schema["bsonType"] = "double"
	case object.Timestamp:
		schema["bsonType"] = "timestamp"
	case object.Text, object.Char, object.VarChar:
		schema["bsonType"] = "string"
	case object.Bool:
		schema["bsonType"] = "bool"
	case object.Date:
		schema["bsonType"] = "date"
	default:
		schema["bsonType"] = "string"
	}

	if ann != nil {
		if desc, ok := annotationDescription(*ann); ok {
			schema["description"] = desc
			schema["uniqueItems"] = true
		}
	}
	return schema
}

// annotationDescription maps a PropAnnotation to the description string
// collection.rs attaches to the property carrying it, alongside
// uniqueItems: true. AnnotationIdentity has no equivalent in the
// original's PropAnnotation enum and carries no description, matching
// its catch-all match arm.
func annotationDescription(ann object.PropAnnotation) (string, bool) {
	switch ann.Kind() {
	case object.AnnotationPrimaryKey:
		return "primary key", true
	case object.AnnotationUnique:
		return "unique", true
	case object.AnnotationNotNull:
		return "not null", true
	case object.AnnotationDefault:
		return "default", true
	case object.AnnotationCheck:
		return "check", true
	case object.AnnotationForeignKey:
		return "foreign", true
	case object.AnnotationConstraint:
		return "constraint", true
	default:
		return "", false
	}
}
