// Package record parses and serializes the metadata block of a unit sheet.
//
// The grammar is a deliberately flat subset of YAML: an ordered sequence of
// `key: value` lines where a value is either a scalar or a block list of
// scalars introduced by dash lines:
//
//	station: Test Bench
//	unit-status: "For QAS 👁️"
//	tags:
//	  - "#Ibiza/qas"
//	model: Ibiza
//
// Nested mappings, multi-line scalars, comments, anchors, and inline lists
// are not part of the grammar. Keys keep their first-occurrence order, and
// scalar values are stored verbatim (quotes included) so that untouched
// fields survive a parse/serialize cycle without semantic drift.
package record

import (
	"errors"
	"strings"
)

// ErrMalformedRecord reports record text that violates the grammar in a way
// the tolerant parser cannot skip, such as a list item with no preceding key.
var ErrMalformedRecord = errors.New("malformed record")

// Kind distinguishes the two value shapes a field can hold.
type Kind uint8

// Kind values.
const (
	KindScalar Kind = iota
	KindList
)

// Value is the tagged union stored for a field: a single scalar or an
// ordered list of scalars. Raw text is kept exactly as it appeared after
// trimming, surrounding quotes included.
type Value struct {
	Kind   Kind     // Kind describes which member is populated.
	Scalar string   // Scalar holds the raw value when Kind == KindScalar.
	List   []string // List holds the raw items when Kind == KindList.
}

// ScalarValue creates a scalar Value.
func ScalarValue(s string) Value {
	return Value{Kind: KindScalar, Scalar: s}
}

// ListValue creates a list Value.
func ListValue(items []string) Value {
	return Value{Kind: KindList, List: items}
}

// Content returns the scalar with one matching pair of surrounding quotes
// removed. Returns "" for list values.
func (v Value) Content() string {
	if v.Kind != KindScalar {
		return ""
	}

	return Unquote(v.Scalar)
}

// Items returns the list items with surrounding quotes removed.
// Returns nil for scalar values.
func (v Value) Items() []string {
	if v.Kind != KindList {
		return nil
	}

	items := make([]string, len(v.List))
	for i, item := range v.List {
		items[i] = Unquote(item)
	}

	return items
}

func (v Value) equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}

	if v.Kind == KindScalar {
		return v.Content() == other.Content()
	}

	if len(v.List) != len(other.List) {
		return false
	}

	for i := range v.List {
		if Unquote(v.List[i]) != Unquote(other.List[i]) {
			return false
		}
	}

	return true
}

// Field is one named entry of a record.
type Field struct {
	Name  string
	Value Value
}

// Record is an ordered mapping from field name to value. Field order is
// first-occurrence order in the source text and is preserved by Marshal.
// The zero value is an empty record ready for use.
type Record struct {
	fields []Field
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return len(r.fields)
}

// Fields returns a copy of the fields in stored order.
func (r *Record) Fields() []Field {
	out := make([]Field, len(r.fields))
	copy(out, r.fields)

	return out
}

// Get returns the value for name.
func (r *Record) Get(name string) (Value, bool) {
	for _, f := range r.fields {
		if f.Name == name {
			return f.Value, true
		}
	}

	return Value{}, false
}

// Has reports whether the record contains name.
func (r *Record) Has(name string) bool {
	_, ok := r.Get(name)

	return ok
}

// Content returns the unquoted scalar content for name, or "" when the field
// is missing or a list.
func (r *Record) Content(name string) string {
	v, ok := r.Get(name)
	if !ok {
		return ""
	}

	return v.Content()
}

// Set replaces the value for name, keeping the field's position. A name the
// record does not have yet is appended at the end.
func (r *Record) Set(name string, v Value) {
	for i := range r.fields {
		if r.fields[i].Name == name {
			r.fields[i].Value = v

			return
		}
	}

	r.fields = append(r.fields, Field{Name: name, Value: v})
}

// Equal reports whether two records have the same fields in the same order
// with the same kinds and the same unquoted content. Quoting differences do
// not matter; this is the equality the round-trip law is stated over.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}

	if len(r.fields) != len(other.fields) {
		return false
	}

	for i := range r.fields {
		if r.fields[i].Name != other.fields[i].Name {
			return false
		}

		if !r.fields[i].Value.equal(other.fields[i].Value) {
			return false
		}
	}

	return true
}

// Unquote removes one matching pair of surrounding quote characters. Inside
// double quotes, backslash escapes for `"` and `\` are undone (the inverse
// of the escaping Marshal applies); single-quoted text is taken literally.
// Text that is not fully wrapped is returned unchanged.
func Unquote(s string) string {
	if !isQuoted(s) {
		return s
	}

	inner := s[1 : len(s)-1]
	if s[0] == '\'' {
		return inner
	}

	if !strings.ContainsRune(inner, '\\') {
		return inner
	}

	var b strings.Builder
	b.Grow(len(inner))

	for i := 0; i < len(inner); i++ {
		c := inner[i]
		if c == '\\' && i+1 < len(inner) && (inner[i+1] == '"' || inner[i+1] == '\\') {
			i++
			c = inner[i]
		}

		b.WriteByte(c)
	}

	return b.String()
}

func isQuoted(s string) bool {
	if len(s) < 2 {
		return false
	}

	return (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0]
}
