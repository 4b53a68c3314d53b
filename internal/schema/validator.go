package schema

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// Validator checks JSON documents against JSON schemas.
// It caches compiled schemas for performance.
type Validator struct {
	cache sync.Map // map[string]*gojsonschema.Schema
}

// NewValidator creates a new validator instance.
func NewValidator() *Validator {
	return &Validator{}
}

// FieldError is a single schema violation.
type FieldError struct {
	Field       string
	Description string
}

func (e FieldError) String() string {
	return e.Field + ": " + e.Description
}

// ValidationError lists every violation found in a document.
type ValidationError struct {
	Document string
	Fields   []FieldError
}

func (e *ValidationError) Error() string {
	var errs []string
	for _, f := range e.Fields {
		errs = append(errs, f.String())
	}
	return fmt.Sprintf("%s: schema validation failed:\n- %s", e.Document, dumpErrors(errs))
}

// Validate checks document against schemaData. The schema can be a
// map[string]any, a JSON string or a struct. name identifies the document in
// the returned *ValidationError.
func (v *Validator) Validate(schemaData any, name string, document []byte) error {
	schema, err := v.getSchema(schemaData)
	if err != nil {
		return fmt.Errorf("invalid schema definition: %w", err)
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return fmt.Errorf("validation execution failed: %w", err)
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Document: name}
	for _, desc := range result.Errors() {
		field := desc.Field()
		// Missing properties are reported on the parent object.
		if prop, ok := desc.Details()["property"].(string); ok && desc.Type() == "required" {
			if field == "(root)" {
				field = prop
			} else {
				field = field + "." + prop
			}
		}
		verr.Fields = append(verr.Fields, FieldError{Field: field, Description: desc.Description()})
	}
	return verr
}

func (v *Validator) getSchema(schemaData any) (*gojsonschema.Schema, error) {
	var jsonBytes []byte
	switch s := schemaData.(type) {
	case string:
		jsonBytes = []byte(s)
	case []byte:
		jsonBytes = s
	default:
		b, err := json.Marshal(schemaData)
		if err != nil {
			return nil, err
		}
		jsonBytes = b
	}
	key := string(jsonBytes)

	if val, ok := v.cache.Load(key); ok {
		return val.(*gojsonschema.Schema), nil
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(jsonBytes))
	if err != nil {
		return nil, err
	}

	v.cache.Store(key, schema)
	return schema, nil
}

func dumpErrors(errs []string) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0]
	}
	// first 3 errors only, to avoid massive output
	truncated := ""
	if len(errs) > 3 {
		truncated = fmt.Sprintf("\n... and %d more", len(errs)-3)
		errs = errs[:3]
	}
	return strings.Join(errs, "\n- ") + truncated
}
