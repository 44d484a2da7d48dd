package storage

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var documentSchema string

// compiledSchema compiles the embedded schema once per process. Formats are
// asserted so timestamps are checked the same way the decoder parses them.
var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) { //nolint:gochecknoglobals // compiled once and reused
	c := jsonschema.NewCompiler()
	c.AssertFormat = true
	if err := c.AddResource(schemaURL, strings.NewReader(documentSchema)); err != nil {
		return nil, err
	}
	return c.Compile(schemaURL)
})

const schemaURL = "task-document.schema.json"

// SchemaError is a single schema violation.
type SchemaError struct {
	// Path is the slash separated location inside the document, empty for the root.
	Path    string
	Message string
}

func (e SchemaError) String() string {
	if e.Path == "" {
		return e.Message
	}
	return e.Path + ": " + e.Message
}

// validateSchema checks a decoded JSON value against the document schema and
// returns every leaf violation.
func validateSchema(v any) ([]SchemaError, error) {
	schema, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile document schema: %w", err)
	}

	err = schema.Validate(v)
	if err == nil {
		return nil, nil
	}

	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, err
	}

	var out []SchemaError
	collectSchemaErrors(&out, ve)
	return out, nil
}

func collectSchemaErrors(out *[]SchemaError, ve *jsonschema.ValidationError) {
	if len(ve.Causes) == 0 {
		*out = append(*out, SchemaError{
			Path:    strings.TrimPrefix(ve.InstanceLocation, "/"),
			Message: ve.Message,
		})
		return
	}
	for _, cause := range ve.Causes {
		collectSchemaErrors(out, cause)
	}
}
