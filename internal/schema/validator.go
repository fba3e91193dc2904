package schema

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/fulmenhq/iconcheck/internal/assets"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// ValidationError represents a single validation error.
type ValidationError struct {
	Path    string `json:"path,omitempty"` // e.g. "placeholder_icons.brand.unk.png"
	Message string `json:"message"`
}

// Result holds the validation result.
type Result struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

// registry holds pre-compiled schemas for the embedded schema registry.
var registry = make(map[string]*gojsonschema.Schema)

func init() {
	for _, a := range assets.Registry {
		if a.Family != "schema" {
			continue
		}
		schemaBytes, ok := assets.GetSchema(a.Path)
		if !ok || len(schemaBytes) == 0 {
			continue
		}
		compiled, err := compile(schemaBytes)
		if err != nil {
			continue
		}
		registry[a.Name] = compiled
	}
}

// compile converts a YAML (or JSON) schema document into a gojsonschema.Schema
func compile(schemaBytes []byte) (*gojsonschema.Schema, error) {
	var schemaData interface{}
	if err := yaml.Unmarshal(schemaBytes, &schemaData); err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}
	jsonBytes, err := json.Marshal(schemaData)
	if err != nil {
		return nil, fmt.Errorf("failed to convert schema to JSON: %w", err)
	}
	return gojsonschema.NewSchema(gojsonschema.NewBytesLoader(jsonBytes))
}

// Validate validates data (interface{}) against the named schema.
func Validate(data interface{}, schemaName string) (*Result, error) {
	schema, ok := registry[schemaName]
	if !ok {
		return nil, fmt.Errorf("schema %s not found in registry", schemaName)
	}

	// Round-trip through JSON so decoder-specific types (yaml/toml) look alike
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("document is not JSON-compatible: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	res := &Result{Valid: result.Valid()}
	if !result.Valid() {
		for _, verr := range result.Errors() {
			field := verr.Field()
			if field == "" || field == "(root)" {
				field = "root"
			}
			res.Errors = append(res.Errors, ValidationError{
				Path:    field,
				Message: verr.Description(),
			})
		}
		sort.Slice(res.Errors, func(i, j int) bool {
			if res.Errors[i].Path != res.Errors[j].Path {
				return res.Errors[i].Path < res.Errors[j].Path
			}
			return res.Errors[i].Message < res.Errors[j].Message
		})
	}

	return res, nil
}
