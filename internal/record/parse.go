package record

import (
	"fmt"
	"strings"
)

// ParseOptions configures parsing behavior.
type ParseOptions struct {
	// Strict turns lines the tolerant mode would skip (no colon, no list
	// sigil, or an empty key) into positional errors.
	Strict bool
}

// ParseOption mutates ParseOptions.
type ParseOption func(*ParseOptions)

// WithStrict makes ambiguous lines fatal instead of skipped.
func WithStrict(strict bool) ParseOption {
	return func(opts *ParseOptions) {
		opts.Strict = strict
	}
}

// ParseError reports a grammar violation at a specific line of the region
// text. It wraps ErrMalformedRecord.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse record line %d: %s", e.Line, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return ErrMalformedRecord
}

func parseErr(line int, msg string) error {
	return &ParseError{Line: line, Msg: msg}
}

// Parse converts region text into a Record. Input is the text between the
// document markers; the markers themselves are the document layer's concern.
//
// A line whose first non-blank character is a dash is a list item and
// attaches to the most recently seen key, converting that key to a list and
// discarding any scalar placeholder. Any other line containing a colon
// starts a new field: the trimmed text before the first colon is the key,
// the trimmed remainder the scalar value. Blank lines are skipped. Lines
// that are neither are skipped in the default tolerant mode and fatal under
// WithStrict. A list item before any key line is always fatal.
//
// Parse performs no I/O and never mutates its input.
func Parse(text string, opts ...ParseOption) (*Record, error) {
	options := ParseOptions{}

	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	rec := &Record{}
	current := -1 // index of the most recently seen key

	for num, line := range splitLines(text) {
		lineNum := num + 1

		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if trimmed[0] == '-' {
			if current < 0 {
				return nil, parseErr(lineNum, "list item before any key")
			}

			item := strings.TrimSpace(trimmed[1:])
			appendListItem(&rec.fields[current].Value, item)

			continue
		}

		key, rest, ok := strings.Cut(line, ":")
		if !ok {
			if options.Strict {
				return nil, parseErr(lineNum, "expected 'key: value'")
			}

			continue
		}

		name := strings.TrimSpace(key)
		if name == "" {
			if options.Strict {
				return nil, parseErr(lineNum, "empty key")
			}

			continue
		}

		rec.Set(name, ScalarValue(strings.TrimSpace(rest)))
		current = indexOf(rec.fields, name)
	}

	return rec, nil
}

// appendListItem converts a scalar placeholder to a list on the first item.
func appendListItem(v *Value, item string) {
	if v.Kind != KindList {
		*v = Value{Kind: KindList}
	}

	v.List = append(v.List, item)
}

func indexOf(fields []Field, name string) int {
	for i := range fields {
		if fields[i].Name == name {
			return i
		}
	}

	return -1
}

// splitLines splits on '\n' and drops a trailing '\r' from each line.
// A trailing newline does not produce a final empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}

	text = strings.TrimSuffix(text, "\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	return lines
}
