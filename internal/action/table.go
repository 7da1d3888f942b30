package action

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/tailscale/hujson"
)

// Table is the immutable action vocabulary for one invocation. Names are
// unique; lookup is by exact name.
type Table struct {
	specs []Spec
	index map[string]int
}

// NewTable validates specs and builds a table. Order is preserved for
// listing; names must be unique and every assignment needs a field name.
func NewTable(specs []Spec) (Table, error) {
	index := make(map[string]int, len(specs))

	for i, spec := range specs {
		if spec.Name == "" {
			return Table{}, fmt.Errorf("%w: action %d has no name", ErrInvalidTable, i)
		}

		if _, dup := index[spec.Name]; dup {
			return Table{}, fmt.Errorf("%w: duplicate action %q", ErrInvalidTable, spec.Name)
		}

		if len(spec.Set) == 0 {
			return Table{}, fmt.Errorf("%w: action %q sets no fields", ErrInvalidTable, spec.Name)
		}

		for _, a := range spec.Set {
			err := checkAssignment(a)
			if err != nil {
				return Table{}, fmt.Errorf("%w: action %q: %w", ErrInvalidTable, spec.Name, err)
			}
		}

		index[spec.Name] = i
	}

	return Table{specs: specs, index: index}, nil
}

// checkAssignment rejects assignments the region grammar cannot hold. The
// grammar is line-based: a field or value carrying a line break would
// marshal into extra region lines and rewrite fields the action never
// named.
func checkAssignment(a Assignment) error {
	switch {
	case a.Field == "":
		return fmt.Errorf("assignment without a field")
	case strings.ContainsAny(a.Field, "\n\r:"):
		return fmt.Errorf("field %q contains a line break or colon", a.Field)
	case a.Field != strings.TrimSpace(a.Field) || a.Field[0] == '-':
		return fmt.Errorf("field %q would not reparse as a key", a.Field)
	case strings.ContainsAny(a.Value, "\n\r"):
		return fmt.Errorf("value for %q spans multiple lines", a.Field)
	}

	return nil
}

// Lookup returns the spec for name.
func (t Table) Lookup(name string) (Spec, bool) {
	i, ok := t.index[name]
	if !ok {
		return Spec{}, false
	}

	return t.specs[i], true
}

// Specs returns the actions in table order.
func (t Table) Specs() []Spec {
	out := make([]Spec, len(t.specs))
	copy(out, t.specs)

	return out
}

// Names returns the action names sorted alphabetically.
func (t Table) Names() []string {
	names := make([]string, 0, len(t.specs))
	for _, spec := range t.specs {
		names = append(names, spec.Name)
	}

	sort.Strings(names)

	return names
}

// tableFile is the on-disk shape of an operator-supplied action table.
type tableFile struct {
	Actions []Spec `json:"actions"`
}

// Load parses an action table from hujson bytes (comments and trailing
// commas allowed). The file fully replaces the builtin vocabulary.
func Load(data []byte) (Table, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Table{}, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}

	var file tableFile

	err = json.Unmarshal(standardized, &file)
	if err != nil {
		return Table{}, fmt.Errorf("%w: %w", ErrInvalidTable, err)
	}

	return NewTable(file.Actions)
}
