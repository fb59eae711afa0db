package validation

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/pt_BR"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	pt_translations "github.com/go-playground/validator/v10/translations/pt_BR"
)

// MessageFunc resolves the display message for a failed rule. Returning an
// empty string falls back to the pt_BR translation of the rule.
type MessageFunc func(path, field, tag string) string

// StructValidator validates tagged structs and reports one error per field,
// the first failing rule in declaration order as enforced by validator/v10.
// Field paths use JSON names, e.g. "meses[0].leads".
type StructValidator struct {
	validate *validator.Validate
	trans    ut.Translator
	messages MessageFunc
}

func NewStructValidator(messages MessageFunc) (*StructValidator, error) {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)

	locale := pt_BR.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator(locale.Locale())
	if err := pt_translations.RegisterDefaultTranslations(v, trans); err != nil {
		return nil, err
	}

	return &StructValidator{validate: v, trans: trans, messages: messages}, nil
}

// RegisterRule adds a custom validation tag.
func (s *StructValidator) RegisterRule(tag string, fn validator.Func) error {
	return s.validate.RegisterValidation(tag, fn)
}

func (s *StructValidator) Validate(v interface{}) Result {
	err := s.validate.Struct(v)
	if err == nil {
		return newResult(nil)
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return newResult([]FieldError{{Field: "", Message: err.Error(), Code: CodeInvalidType}})
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		path := fieldPath(fe.Namespace())
		msg := ""
		if s.messages != nil {
			msg = s.messages(path, fe.Field(), fe.Tag())
		}
		if msg == "" {
			msg = fe.Translate(s.trans)
		}
		out = append(out, FieldError{
			Field:   path,
			Message: msg,
			Code:    codeForTag(fe.Tag(), fe.Kind()),
		})
	}
	return newResult(out)
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

// fieldPath drops the root struct name from a validator namespace.
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}

func codeForTag(tag string, kind reflect.Kind) string {
	switch tag {
	case "required":
		return CodeRequired
	case "min", "gte":
		if kind == reflect.Slice || kind == reflect.Array {
			return CodeMinItems
		}
		return CodeMinimum
	case "oneof", "choice":
		return CodeInvalidEnum
	default:
		return CodeInvalidValue
	}
}
