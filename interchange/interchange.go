// Package interchange exports a flattened step.Step as a JSON document
// downstream codegen consumers can read, grounded on the teacher's
// json_schema.go (gojsonschema-validated JSON plan format) and the
// internal/planner Plan/PlanStep shape (a named step paired with its
// ordered SQL statements).
package interchange

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/xeipuuv/gojsonschema"

	"github.com/lockplane/cortex/producer"
	"github.com/lockplane/cortex/step"
)

//go:embed schema.json
var schemaJSON []byte

// Document is the interchange shape: a named, versioned, ordered list
// of SQL statements. It only covers SQL-lowering backends — a document
// backend's producer.DriverCall artifacts have no string form to
// export, so FromStep rejects them.
type Document struct {
	Name    string   `json:"name"`
	Version string   `json:"version"`
	SQL     []string `json:"sql"`
}

// FromStep lowers every entry of s through prod and collects the
// resulting SQL text in order. s is expected to already be flattened
// (step.Flatten); FromStep does not flatten it itself.
func FromStep(s step.Step, prod producer.Producer) (Document, error) {
	doc := Document{Name: s.Name, Version: s.Version.String(), SQL: make([]string, 0, len(s.Entries))}
	for _, entry := range s.Entries {
		art, err := prod.Lower(entry.Stmt, entry.Action)
		if err != nil {
			return Document{}, fmt.Errorf("interchange: lowering %s: %w", s.Name, err)
		}
		sqlArt, ok := art.(producer.SQLArtifact)
		if !ok {
			return Document{}, fmt.Errorf("interchange: %s lowered a non-SQL artifact (%T); document backends are not exportable", s.Name, art)
		}
		doc.SQL = append(doc.SQL, string(sqlArt))
	}
	return doc, nil
}

// Marshal renders doc as indented JSON.
func Marshal(doc Document) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("interchange: marshaling document: %w", err)
	}
	return data, nil
}

// Validate checks data against the embedded interchange JSON Schema.
func Validate(data []byte) error {
	schemaLoader := gojsonschema.NewBytesLoader(schemaJSON)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("interchange: schema validation: %w", err)
	}
	if !result.Valid() {
		msg := "interchange: document does not match schema:"
		for _, desc := range result.Errors() {
			msg += fmt.Sprintf("\n- %s", desc)
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}

// Load parses and validates data, returning the decoded Document.
func Load(data []byte) (Document, error) {
	if err := Validate(data); err != nil {
		return Document{}, err
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Document{}, fmt.Errorf("interchange: decoding document: %w", err)
	}
	return doc, nil
}
