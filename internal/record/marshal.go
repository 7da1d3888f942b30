package record

import "strings"

// quoteTriggers are the characters that force a value into double quotes.
const quoteTriggers = ":#@{}[],&*?"

// Marshal serializes a record back into region text, one entry per field in
// stored order. Scalars render as `key: value`, empty scalars as `key:`,
// lists as `key:` followed by two-space-indented dash lines. Values that are
// already fully quoted pass through byte-identically; everything else is
// double-quoted iff it needs it (see NeedsQuoting).
//
// Marshal is total: it cannot fail for any well-formed record.
func Marshal(rec *Record) string {
	var b strings.Builder

	for _, f := range rec.fields {
		b.WriteString(f.Name)
		b.WriteString(":")

		switch f.Value.Kind {
		case KindScalar:
			if f.Value.Scalar != "" {
				b.WriteString(" ")
				b.WriteString(quoteIfNeeded(f.Value.Scalar))
			}

			b.WriteString("\n")
		case KindList:
			b.WriteString("\n")

			for _, item := range f.Value.List {
				b.WriteString("  - ")
				b.WriteString(quoteIfNeeded(item))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

// NeedsQuoting reports whether a raw value must be wrapped in double quotes
// to survive re-parsing: it contains one of `: # @ { } [ ] , & * ?`, starts
// with a dash (it would read back as a list item), or has leading or
// trailing whitespace.
func NeedsQuoting(s string) bool {
	if s == "" {
		return false
	}

	if strings.ContainsAny(s, quoteTriggers) {
		return true
	}

	if s[0] == '-' {
		return true
	}

	return s != strings.TrimSpace(s)
}

func quoteIfNeeded(s string) string {
	if isQuoted(s) {
		return s
	}

	if !NeedsQuoting(s) {
		return s
	}

	return quote(s)
}

// quote wraps s in double quotes, escaping interior `"` and `\` so that
// Unquote restores the original content exactly.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)

	b.WriteByte('"')

	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '"' || c == '\\' {
			b.WriteByte('\\')
		}

		b.WriteByte(c)
	}

	b.WriteByte('"')

	return b.String()
}
