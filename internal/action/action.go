// Package action defines the fixed vocabulary of state-transition actions
// and applies them to unit sheets.
//
// An action is a named, immutable set of field assignments. Invoking one
// rewrites exactly the fields it names in the sheet's metadata region and
// nothing else; the body and every unnamed field survive byte-for-byte.
// Values may reference other fields of the same sheet with {{field}}
// placeholders, resolved against the record as it was before the action
// (so assignment order can never change the outcome of a reference).
package action

import (
	"errors"
	"fmt"
	"strings"

	"rework/internal/document"
	"rework/internal/record"
)

// Sentinel errors.
var (
	// ErrUnknownAction reports a name missing from the table.
	ErrUnknownAction = errors.New("unknown action")

	// ErrUnresolvedField reports a {{field}} placeholder that cannot produce
	// a scalar: the sheet has no such field, or the field holds a list. The
	// action aborts before any field is written.
	ErrUnresolvedField = errors.New("unresolvable field reference")

	// ErrInvalidTable reports a malformed action table.
	ErrInvalidTable = errors.New("invalid action table")
)

// Assignment sets one field to a fixed value. The value is a string literal,
// optionally containing {{field}} references; no runtime arguments exist.
type Assignment struct {
	Field string `json:"field"`
	Value string `json:"value"`
	// List renders the resolved value as a single-element list instead of a
	// scalar (used to replace a tag list with one derived tag).
	List bool `json:"list,omitempty"`
}

// Spec is one named action. Assignments apply in declared order.
type Spec struct {
	Name    string       `json:"name"`
	Summary string       `json:"summary,omitempty"`
	Set     []Assignment `json:"set"`
}

// Apply runs spec against a split sheet and returns the patched sheet. The
// body passes through untouched, as do all fields the spec does not name.
// Any parse failure aborts with no partial result; Apply never writes to
// storage.
func Apply(doc document.Document, spec Spec) (document.Document, error) {
	rec, err := record.Parse(doc.Region)
	if err != nil {
		return document.Document{}, fmt.Errorf("apply %s: %w", spec.Name, err)
	}

	// Resolve every reference against the pre-action snapshot before the
	// first assignment lands.
	resolved := make([]string, len(spec.Set))

	for i, a := range spec.Set {
		resolved[i], err = expand(a.Value, rec)
		if err != nil {
			return document.Document{}, fmt.Errorf("apply %s: %s: %w", spec.Name, a.Field, err)
		}
	}

	for i, a := range spec.Set {
		if a.List {
			rec.Set(a.Field, record.ListValue([]string{resolved[i]}))
		} else {
			rec.Set(a.Field, record.ScalarValue(resolved[i]))
		}
	}

	doc.Region = record.Marshal(rec)

	return doc, nil
}

// expand substitutes {{field}} placeholders with the record's unquoted
// content for that field. Only scalar fields can be referenced; a missing
// or list-valued field is ErrUnresolvedField. Text without a closing }} is
// left literal.
func expand(value string, rec *record.Record) (string, error) {
	if !strings.Contains(value, "{{") {
		return value, nil
	}

	var b strings.Builder

	rest := value
	for {
		before, after, ok := strings.Cut(rest, "{{")
		b.WriteString(before)

		if !ok {
			return b.String(), nil
		}

		name, tail, closed := strings.Cut(after, "}}")
		if !closed {
			b.WriteString("{{")
			b.WriteString(after)

			return b.String(), nil
		}

		name = strings.TrimSpace(name)

		v, ok := rec.Get(name)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnresolvedField, name)
		}

		if v.Kind != record.KindScalar {
			return "", fmt.Errorf("%w: %s holds a list", ErrUnresolvedField, name)
		}

		b.WriteString(v.Content())

		rest = tail
	}
}
