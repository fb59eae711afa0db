package caseform

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"case-collector/internal/common/metrics"
	"case-collector/internal/common/validation"
	"case-collector/internal/models"
)

// ErrSubmissionInProgress is returned by mutations and Submit while the
// document is with the sink.
var ErrSubmissionInProgress = errors.New("submission in progress")

const defaultInitialMonths = 3

type FormOption func(*Form)

// WithInitialMonths sets how many blank monthly records a fresh or reset
// document starts with. Values below 1 are ignored.
func WithInitialMonths(n int) FormOption {
	return func(f *Form) {
		if n >= 1 {
			f.initialMonths = n
		}
	}
}

// Form is the single source of truth for one editing session. All methods
// are safe for concurrent use; reads return copies.
type Form struct {
	mu sync.Mutex

	schema        *Schema
	initialMonths int

	doc       models.CaseSubmission
	ordinals  []int
	touched   map[Path]struct{}
	errors    map[string]string
	attempted bool
	status    Status
}

func NewForm(schema *Schema, opts ...FormOption) *Form {
	f := &Form{
		schema:        schema,
		initialMonths: defaultInitialMonths,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.resetLocked()
	return f
}

// Get returns the value at p: a string, an int (nil when unset), a tag set,
// a monthly record or the whole record sequence.
func (f *Form) Get(p Path) (interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if p.Field == FieldMonths && p.Index < 0 && p.Sub == "" {
		out := make([]models.MonthRecord, len(f.doc.Months))
		for i, m := range f.doc.Months {
			out[i] = m.Clone()
		}
		return out, nil
	}
	if p.Field == FieldMonths {
		if err := f.checkIndex(p.Index); err != nil {
			return nil, err
		}
		rec := &f.doc.Months[p.Index]
		if p.Sub == "" {
			return rec.Clone(), nil
		}
		a, ok := monthAccessors[p.Sub]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownField, p)
		}
		return a.get(rec), nil
	}

	a, ok := docAccessors[p.Field]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownField, p)
	}
	return a.get(&f.doc), nil
}

// Set writes value at p. Whole records and the sequence itself cannot be
// assigned; use AppendMonth and RemoveMonth. Setting a value equal to the
// current one returns an Update with no changed paths.
func (f *Form) Set(p Path, value interface{}) (Update, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status == StatusSubmitting {
		return Update{}, ErrSubmissionInProgress
	}

	var (
		get func() interface{}
		set func(interface{}) error
	)
	switch {
	case p.Field == FieldMonths && p.Sub == "":
		return Update{}, fmt.Errorf("%w: %s cannot be assigned directly", ErrInvalidValue, p)
	case p.Field == FieldMonths:
		if err := f.checkIndex(p.Index); err != nil {
			return Update{}, err
		}
		a, ok := monthAccessors[p.Sub]
		if !ok {
			return Update{}, fmt.Errorf("%w: %s", ErrUnknownField, p)
		}
		rec := &f.doc.Months[p.Index]
		get = func() interface{} { return a.get(rec) }
		set = func(v interface{}) error { return a.set(rec, v) }
	default:
		a, ok := docAccessors[p.Field]
		if !ok {
			return Update{}, fmt.Errorf("%w: %s", ErrUnknownField, p)
		}
		if a.kind == kindTags {
			if err := f.checkTags(p.Field, value); err != nil {
				return Update{}, err
			}
		}
		get = func() interface{} { return a.get(&f.doc) }
		set = func(v interface{}) error { return a.set(&f.doc, v) }
	}

	before := get()
	if err := set(value); err != nil {
		return Update{}, fmt.Errorf("%s: %w", p, err)
	}
	f.touched[p] = struct{}{}

	if reflect.DeepEqual(before, get()) {
		return f.updateLocked(nil), nil
	}

	metrics.FormMutations.WithLabelValues("set").Inc()
	u := f.updateLocked([]Path{p})
	if p.IsRecord() && len(AffectedMetrics(p.Sub)) > 0 {
		u.Recomputed = map[int]MonthMetrics{p.Index: ComputeMonth(f.doc.Months[p.Index])}
	}
	return u, nil
}

// AppendMonth adds a blank monthly record whose ordinal is the current
// length plus one.
func (f *Form) AppendMonth() (Update, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status == StatusSubmitting {
		return Update{}, ErrSubmissionInProgress
	}

	f.ordinals = append(f.ordinals, len(f.doc.Months)+1)
	f.doc.Months = append(f.doc.Months, models.MonthRecord{})

	metrics.FormMutations.WithLabelValues("append_month").Inc()
	return f.updateLocked([]Path{Top(FieldMonths), Record(len(f.doc.Months) - 1)}), nil
}

// RemoveMonth deletes the record at index. It refuses, reporting false, when
// only one record is left or index is out of range.
func (f *Form) RemoveMonth(index int) (Update, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status == StatusSubmitting {
		return Update{}, false, ErrSubmissionInProgress
	}

	oldLen := len(f.doc.Months)
	if oldLen <= 1 || index < 0 || index >= oldLen {
		return f.updateLocked(nil), false, nil
	}

	f.doc.Months = append(f.doc.Months[:index], f.doc.Months[index+1:]...)
	f.ordinals = append(f.ordinals[:index], f.ordinals[index+1:]...)

	// Touched flags follow their record.
	touched := make(map[Path]struct{}, len(f.touched))
	for p := range f.touched {
		switch {
		case !p.IsRecord() || p.Index < index:
			touched[p] = struct{}{}
		case p.Index > index:
			p.Index--
			touched[p] = struct{}{}
		}
	}
	f.touched = touched

	changed := []Path{Top(FieldMonths)}
	for i := index; i < oldLen; i++ {
		changed = append(changed, Record(i))
	}

	metrics.FormMutations.WithLabelValues("remove_month").Inc()
	return f.updateLocked(changed), true, nil
}

// ToggleTag adds tag to or removes it from the tag-set field. The relative
// order of the other tags is kept and a tag is never present twice.
func (f *Form) ToggleTag(field Field, tag string, included bool) (Update, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status == StatusSubmitting {
		return Update{}, ErrSubmissionInProgress
	}

	a, ok := docAccessors[field]
	if !ok {
		return Update{}, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	if a.kind != kindTags {
		return Update{}, fmt.Errorf("%w: %s is not a tag set", ErrInvalidValue, field)
	}
	if err := f.checkTags(field, []string{tag}); err != nil {
		return Update{}, err
	}

	current := a.get(&f.doc).([]string)
	next := make([]string, 0, len(current)+1)
	present := false
	for _, t := range current {
		if t == tag {
			present = true
			if !included {
				continue
			}
		}
		next = append(next, t)
	}
	if included && !present {
		next = append(next, tag)
	}

	p := Top(field)
	f.touched[p] = struct{}{}
	if present == included {
		return f.updateLocked(nil), nil
	}
	if err := a.set(&f.doc, next); err != nil {
		return Update{}, err
	}

	metrics.FormMutations.WithLabelValues("toggle_tag").Inc()
	return f.updateLocked([]Path{p}), nil
}

// Validate runs the schema over the current document and stores the
// per-field errors for display.
func (f *Form) Validate() validation.Result {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyErrors(f.errors)
}

func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Touched reports whether p has been written since the last reset.
func (f *Form) Touched(p Path) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.touched[p]
	return ok
}

func (f *Form) Document() models.CaseSubmission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.doc.Clone()
}

// Months lists the monthly records with their display label, phase and
// derived metrics.
func (f *Form) Months() []MonthView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.monthsLocked()
}

// Session returns everything a rendering layer needs in one consistent read.
func (f *Form) Session() SessionView {
	f.mu.Lock()
	defer f.mu.Unlock()
	return SessionView{
		Document: f.doc.Clone(),
		Months:   f.monthsLocked(),
		Errors:   copyErrors(f.errors),
		Status:   f.status,
	}
}

// Reset restores the initial empty document. It is refused while a
// submission is in flight.
func (f *Form) Reset() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status == StatusSubmitting {
		return ErrSubmissionInProgress
	}
	f.resetLocked()
	metrics.FormMutations.WithLabelValues("reset").Inc()
	return nil
}

// beginSubmit validates and, if valid, moves the form to submitting and
// returns the document to send. The returned result is always the fresh
// validation outcome.
func (f *Form) beginSubmit() (models.CaseSubmission, validation.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.status == StatusSubmitting {
		return models.CaseSubmission{}, validation.Result{}, ErrSubmissionInProgress
	}

	f.attempted = true
	res := f.validateLocked()
	if !res.Valid {
		return models.CaseSubmission{}, res, nil
	}
	f.status = StatusSubmitting
	return f.doc.Clone(), res, nil
}

// finishSubmit leaves the submitting state. Only a confirmed success clears
// the document.
func (f *Form) finishSubmit(success bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.status = StatusIdle
	if success {
		f.resetLocked()
	}
}

func (f *Form) resetLocked() {
	f.doc = models.NewCaseSubmission(f.initialMonths)
	f.ordinals = make([]int, f.initialMonths)
	for i := range f.ordinals {
		f.ordinals[i] = i + 1
	}
	f.touched = make(map[Path]struct{})
	f.errors = map[string]string{}
	f.attempted = false
	f.status = StatusIdle
}

func (f *Form) validateLocked() validation.Result {
	res := f.schema.Validate(f.doc)
	f.errors = res.Map()
	return res
}

func (f *Form) updateLocked(changed []Path) Update {
	if changed == nil {
		changed = []Path{}
	}
	if f.attempted && len(changed) > 0 {
		f.validateLocked()
	}
	return Update{
		Document: f.doc.Clone(),
		Changed:  changed,
		Errors:   copyErrors(f.errors),
	}
}

func (f *Form) monthsLocked() []MonthView {
	out := make([]MonthView, len(f.doc.Months))
	for i, m := range f.doc.Months {
		mm := ComputeMonth(m)
		out[i] = MonthView{
			Index:   i,
			Ordinal: f.ordinals[i],
			Title:   fmt.Sprintf("MÊS %d", f.ordinals[i]),
			Phase:   PhaseLabel(i),
			Record:  m.Clone(),
			Metrics: mm,
			Display: mm.Format(),
		}
	}
	return out
}

func (f *Form) checkIndex(i int) error {
	if i < 0 || i >= len(f.doc.Months) {
		return fmt.Errorf("%w: %d (have %d)", ErrIndexOutOfRange, i, len(f.doc.Months))
	}
	return nil
}

// checkTags rejects tags the catalogue does not offer for field.
func (f *Form) checkTags(field Field, value interface{}) error {
	tags, err := coerceTags(value)
	if err != nil {
		return err
	}
	cat := f.schema.Catalog()
	for _, t := range tags {
		if !cat.Allows(string(field), t) {
			return fmt.Errorf("%w: %q is not an option of %s", ErrInvalidValue, t, field)
		}
	}
	return nil
}

func copyErrors(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
