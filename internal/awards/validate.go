package awards

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// ValidationError lists why an awards document was rejected
type ValidationError struct {
	Errors []string
}

func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("awards-data.schema.json", schemaJSON)
	})
	return schema, schemaErr
}

// Validate checks raw awards JSON against the embedded schema
func Validate(data []byte) error {
	var doc interface{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing awards JSON: %w", err)
	}

	s, err := compiledSchema()
	if err != nil {
		return fmt.Errorf("compiling awards schema: %w", err)
	}

	if err := s.Validate(doc); err != nil {
		var msgs []string
		if verr, ok := err.(*jsonschema.ValidationError); ok {
			for _, cause := range verr.Causes {
				msgs = append(msgs, cause.InstanceLocation+": "+cause.Message)
			}
			if len(msgs) == 0 {
				msgs = append(msgs, verr.Message)
			}
		} else {
			msgs = append(msgs, err.Error())
		}
		return ValidationError{Errors: msgs}
	}
	return nil
}
