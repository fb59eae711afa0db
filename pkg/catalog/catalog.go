// pkg/catalog/catalog.go
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// LoadCatalog reads a catalogue from a JSON file and checks it is well formed.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cat Catalog
	if err := json.Unmarshal(data, &cat); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate rejects catalogues with duplicate question ids, unknown kinds,
// repeated option values or a missing RequiredQuestions entry.
func (c *Catalog) Validate() error {
	seen := make(map[string]Kind, len(c.Questions))
	for _, q := range c.Questions {
		if q.ID == "" {
			return fmt.Errorf("question id is required")
		}
		if _, dup := seen[q.ID]; dup {
			return fmt.Errorf("duplicate question %q", q.ID)
		}
		seen[q.ID] = q.Kind

		if q.Kind != KindSingle && q.Kind != KindMulti {
			return fmt.Errorf("question %q: unknown kind %q", q.ID, q.Kind)
		}
		if len(q.Options) == 0 {
			return fmt.Errorf("question %q has no options", q.ID)
		}
		values := make(map[string]struct{}, len(q.Options))
		for _, o := range q.Options {
			if o.Value == "" {
				return fmt.Errorf("question %q: option value is required", q.ID)
			}
			if _, dup := values[o.Value]; dup {
				return fmt.Errorf("question %q: duplicate option %q", q.ID, o.Value)
			}
			values[o.Value] = struct{}{}
		}
	}

	for _, id := range sortedKeys(RequiredQuestions) {
		kind, ok := seen[id]
		if !ok {
			return fmt.Errorf("required question %q is missing", id)
		}
		if want := RequiredQuestions[id]; kind != want {
			return fmt.Errorf("question %q must be %s, got %s", id, want, kind)
		}
	}
	return nil
}

func sortedKeys(m map[string]Kind) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Question looks up a question by id.
func (c *Catalog) Question(id string) (Question, bool) {
	for _, q := range c.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

// Allows reports whether value is one of the options of question id.
func (c *Catalog) Allows(id, value string) bool {
	q, ok := c.Question(id)
	if !ok {
		return false
	}
	return q.Has(value)
}

// Has reports whether value is one of the question's options.
func (q Question) Has(value string) bool {
	for _, o := range q.Options {
		if o.Value == value {
			return true
		}
	}
	return false
}

// Label returns the display label for value, or value itself when unknown.
func (q Question) Label(value string) string {
	for _, o := range q.Options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}

// Values lists the option values in catalogue order.
func (q Question) Values() []string {
	out := make([]string, len(q.Options))
	for i, o := range q.Options {
		out[i] = o.Value
	}
	return out
}
