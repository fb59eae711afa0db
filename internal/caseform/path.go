package caseform

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

var (
	ErrUnknownField    = errors.New("unknown field")
	ErrIndexOutOfRange = errors.New("monthly record index out of range")
	ErrInvalidValue    = errors.New("invalid value")
)

// Field is the JSON name of a top-level document field.
type Field string

// MonthField is the JSON name of a field inside a monthly record.
type MonthField string

// FieldMonths is the monthly record sequence.
const FieldMonths Field = "meses"

// Tag-set fields.
const (
	FieldPainPoints       Field = "dor"
	FieldStrategyContent  Field = "estrategia_c"
	FieldStrategyHumanize Field = "estrategia_h"
	FieldStrategyAds      Field = "estrategia_a"
	FieldStrategySales    Field = "estrategia_v"
	FieldStrategyIntel    Field = "estrategia_i"
)

// Monthly record fields feeding the derived metrics.
const (
	MonthAdSpend     MonthField = "investimento"
	MonthBookings    MonthField = "agendamentos"
	MonthAttendances MonthField = "comparecimentos"
	MonthClosedSales MonthField = "fechamentos"
	MonthRevenue     MonthField = "faturamento_mes"
)

// Path addresses either a top-level field, a whole monthly record or one
// field of a monthly record. Build it with Top, Record or Month.
type Path struct {
	Field Field
	Index int
	Sub   MonthField
}

func Top(f Field) Path {
	return Path{Field: f, Index: -1}
}

func Record(index int) Path {
	return Path{Field: FieldMonths, Index: index}
}

func Month(index int, f MonthField) Path {
	return Path{Field: FieldMonths, Index: index, Sub: f}
}

// IsRecord reports whether p points into the monthly record sequence.
func (p Path) IsRecord() bool {
	return p.Field == FieldMonths && p.Index >= 0
}

func (p Path) String() string {
	switch {
	case !p.IsRecord():
		return string(p.Field)
	case p.Sub == "":
		return fmt.Sprintf("%s[%d]", FieldMonths, p.Index)
	default:
		return fmt.Sprintf("%s[%d].%s", FieldMonths, p.Index, p.Sub)
	}
}

func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Path) UnmarshalText(text []byte) error {
	parsed, err := ParsePath(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

var recordPath = regexp.MustCompile(`^meses\[(\d+)\](?:\.([a-z_]+))?$`)

// ParsePath converts a wire path such as "nome_clinica", "meses[2]" or
// "meses[2].leads" into a Path. Only names the document defines are accepted;
// index bounds are checked when the path is used.
func ParsePath(s string) (Path, error) {
	if m := recordPath.FindStringSubmatch(s); m != nil {
		index, err := strconv.Atoi(m[1])
		if err != nil {
			return Path{}, fmt.Errorf("%w: %q", ErrUnknownField, s)
		}
		if m[2] == "" {
			return Record(index), nil
		}
		sub := MonthField(m[2])
		if _, ok := monthAccessors[sub]; !ok {
			return Path{}, fmt.Errorf("%w: %q", ErrUnknownField, s)
		}
		return Month(index, sub), nil
	}

	f := Field(s)
	if f == FieldMonths {
		return Top(f), nil
	}
	if _, ok := docAccessors[f]; !ok {
		return Path{}, fmt.Errorf("%w: %q", ErrUnknownField, s)
	}
	return Top(f), nil
}
