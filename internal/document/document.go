// Package document splits a unit sheet into its metadata region and opaque
// body, and joins them back byte-exactly.
//
// A sheet starts with a fixed marker line, carries region text up to the
// next marker line, and everything after that closing marker is body. The
// body is never inspected or rewritten; Join(Split(text)) == text holds for
// every sheet Split accepts.
package document

import (
	"errors"
	"fmt"
	"strings"
)

// Marker is the literal line that fences the metadata region. It is a fixed
// constant shared by the parser and the patch layer, never discovered
// heuristically.
const Marker = "---"

// ErrRegionNotFound reports a sheet that is not in the expected shape: the
// opening marker is not the first line, or the closing marker is missing.
var ErrRegionNotFound = errors.New("metadata region not found")

// Document is a split unit sheet. Region is the text between the marker
// lines (trailing newline of the last region line included). Body is every
// byte after the closing marker token, its leading newline included,
// preserved verbatim.
type Document struct {
	Region string
	Body   string
}

// Split divides sheet text at the marker pair.
func Split(text string) (Document, error) {
	rest, ok := strings.CutPrefix(text, Marker+"\n")
	if !ok {
		return Document{}, fmt.Errorf("%w: missing opening marker", ErrRegionNotFound)
	}

	idx := 0
	for idx <= len(rest) {
		if strings.HasPrefix(rest[idx:], Marker) {
			after := rest[idx+len(Marker):]
			if after == "" || after[0] == '\n' {
				return Document{Region: rest[:idx], Body: after}, nil
			}
		}

		nl := strings.IndexByte(rest[idx:], '\n')
		if nl < 0 {
			break
		}

		idx += nl + 1
	}

	return Document{}, fmt.Errorf("%w: missing closing marker", ErrRegionNotFound)
}

// Join reassembles the sheet. When Region is unchanged the result is the
// original byte sequence.
func (d Document) Join() string {
	return Marker + "\n" + d.Region + Marker + d.Body
}
