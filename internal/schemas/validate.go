// Package schemas validates emitted JSON artifacts against their JSON Schemas.
package schemas

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	schemafiles "github.com/jonathan/resume-matcher/schemas"
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// Validator holds compiled schemas keyed by file name.
type Validator struct {
	compiled map[string]*gojsonschema.Schema
}

// NewValidator compiles every *.schema.json in fsys. Each schema is
// registered under its $id first so cross-file $refs resolve.
func NewValidator(fsys fs.FS) (*Validator, error) {
	names, err := fs.Glob(fsys, "*.schema.json")
	if err != nil {
		return nil, &SchemaLoadError{Path: "(embedded)", Message: "listing schemas", Cause: err}
	}

	raw := make(map[string][]byte, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, &SchemaLoadError{Path: name, Message: "reading schema", Cause: err}
		}
		raw[name] = data
	}

	v := &Validator{compiled: make(map[string]*gojsonschema.Schema, len(names))}
	for _, name := range names {
		sl := gojsonschema.NewSchemaLoader()
		for other, data := range raw {
			if other == name {
				continue
			}
			id, err := schemaID(data)
			if err != nil {
				return nil, &SchemaLoadError{Path: other, Message: "parsing schema", Cause: err}
			}
			if id == "" {
				continue
			}
			if err := sl.AddSchema(id, gojsonschema.NewBytesLoader(data)); err != nil {
				return nil, &SchemaLoadError{Path: other, Message: "registering schema", Cause: err}
			}
		}
		schema, err := sl.Compile(gojsonschema.NewBytesLoader(raw[name]))
		if err != nil {
			return nil, &SchemaLoadError{Path: name, Message: "compiling schema", Cause: err}
		}
		v.compiled[name] = schema
	}
	return v, nil
}

// Default compiles the schemas shipped with the module.
func Default() (*Validator, error) {
	return NewValidator(schemafiles.FS)
}

// Validate checks doc (any JSON-marshalable value) against the named schema.
func (v *Validator) Validate(name string, doc any) error {
	schema, ok := v.compiled[name]
	if !ok {
		return &SchemaLoadError{Path: name, Message: "unknown schema"}
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	return toValidationError(result)
}

// ValidateJSON validates a JSON file against a JSON Schema file
func ValidateJSON(schemaPath, jsonPath string) error {
	schemaAbsPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to resolve schema path: %w", err)
	}
	jsonAbsPath, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}

	if _, err := os.Stat(schemaAbsPath); os.IsNotExist(err) {
		return fmt.Errorf("schema file not found: %s", schemaAbsPath)
	}
	if _, err := os.Stat(jsonAbsPath); os.IsNotExist(err) {
		return fmt.Errorf("JSON file not found: %s", jsonAbsPath)
	}

	result, err := gojsonschema.Validate(
		gojsonschema.NewReferenceLoader("file://"+filepath.ToSlash(schemaAbsPath)),
		gojsonschema.NewReferenceLoader("file://"+filepath.ToSlash(jsonAbsPath)),
	)
	if err != nil {
		return &SchemaLoadError{Path: schemaAbsPath, Message: "schema validation failed during load", Cause: err}
	}
	return toValidationError(result)
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaContent),
		gojsonschema.NewStringLoader(jsonContent),
	)
	if err != nil {
		return &SchemaLoadError{Path: "(string schema)", Message: "schema validation failed during load", Cause: err}
	}
	return toValidationError(result)
}

func toValidationError(result *gojsonschema.Result) error {
	if result.Valid() {
		return nil
	}
	validationErr := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return validationErr
}

func schemaID(data []byte) (string, error) {
	var head struct {
		ID string `json:"$id"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return "", err
	}
	return head.ID, nil
}
