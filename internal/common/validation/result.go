package validation

import "fmt"

// Error codes reported in FieldError.Code.
const (
	CodeRequired     = "REQUIRED_FIELD_MISSING"
	CodeInvalidType  = "INVALID_TYPE"
	CodeMinimum      = "MINIMUM_VIOLATION"
	CodeMinItems     = "MIN_ITEMS_VIOLATION"
	CodeInvalidEnum  = "INVALID_ENUM_VALUE"
	CodeInvalidValue = "INVALID_VALUE"
)

type Result struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func (e FieldError) String() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Map returns the field path to message mapping.
func (r Result) Map() map[string]string {
	out := make(map[string]string, len(r.Errors))
	for _, e := range r.Errors {
		if _, exists := out[e.Field]; !exists {
			out[e.Field] = e.Message
		}
	}
	return out
}

// Fields lists the failing field paths in report order.
func (r Result) Fields() []string {
	out := make([]string, 0, len(r.Errors))
	for _, e := range r.Errors {
		out = append(out, e.Field)
	}
	return out
}

func (r Result) GetErrorMessages() []string {
	messages := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		messages[i] = e.String()
	}
	return messages
}

func (r Result) HasErrors(field string) bool {
	_, ok := r.ErrorFor(field)
	return ok
}

// ErrorFor returns the error reported for field, if any.
func (r Result) ErrorFor(field string) (FieldError, bool) {
	for _, e := range r.Errors {
		if e.Field == field {
			return e, true
		}
	}
	return FieldError{}, false
}

func newResult(errs []FieldError) Result {
	return Result{Valid: len(errs) == 0, Errors: errs}
}
