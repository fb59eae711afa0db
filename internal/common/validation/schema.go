package validation

import (
	"fmt"
	"regexp"

	"github.com/xeipuuv/gojsonschema"
)

// JSONSchema is a compiled JSON Schema document.
type JSONSchema struct {
	schema *gojsonschema.Schema
}

// CompileSchema parses and compiles a JSON Schema given as text.
func CompileSchema(schemaJSON string) (*JSONSchema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &JSONSchema{schema: schema}, nil
}

// ValidateBytes validates a raw JSON document. A document that is not valid
// JSON is returned as an error rather than a Result.
func (s *JSONSchema) ValidateBytes(document []byte) (Result, error) {
	return s.validate(gojsonschema.NewBytesLoader(document))
}

// ValidateValue validates a Go value by first encoding it as JSON.
func (s *JSONSchema) ValidateValue(v interface{}) (Result, error) {
	return s.validate(gojsonschema.NewGoLoader(v))
}

func (s *JSONSchema) validate(loader gojsonschema.JSONLoader) (Result, error) {
	res, err := s.schema.Validate(loader)
	if err != nil {
		return Result{}, fmt.Errorf("validation error: %w", err)
	}
	if res.Valid() {
		return newResult(nil), nil
	}

	errs := make([]FieldError, 0, len(res.Errors()))
	seen := make(map[string]struct{})
	for _, re := range res.Errors() {
		path := schemaErrorPath(re)
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		errs = append(errs, FieldError{
			Field:   path,
			Message: re.Description(),
			Code:    codeForSchemaError(re.Type()),
		})
	}
	return newResult(errs), nil
}

var indexSegment = regexp.MustCompile(`\.(\d+)`)

// schemaErrorPath turns gojsonschema contexts like "meses.0.leads" into
// "meses[0].leads". Missing properties are reported on the property itself.
func schemaErrorPath(re gojsonschema.ResultError) string {
	field := re.Field()
	if re.Type() == "required" {
		if prop, ok := re.Details()["property"].(string); ok {
			if field == gojsonschema.STRING_ROOT_SCHEMA_PROPERTY {
				field = prop
			} else {
				field = field + "." + prop
			}
		}
	}
	if field == gojsonschema.STRING_ROOT_SCHEMA_PROPERTY {
		return ""
	}
	return indexSegment.ReplaceAllString(field, "[$1]")
}

func codeForSchemaError(kind string) string {
	switch kind {
	case "required":
		return CodeRequired
	case "invalid_type":
		return CodeInvalidType
	case "enum":
		return CodeInvalidEnum
	case "array_min_items":
		return CodeMinItems
	case "number_gte", "number_gt":
		return CodeMinimum
	default:
		return CodeInvalidValue
	}
}
