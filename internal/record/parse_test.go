package record_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rework/internal/record"
)

// Contract: key lines split at the first colon, keep first-occurrence
// order, and store the trimmed remainder verbatim (quotes included).
func Test_Parse_ReturnsOrderedFields_When_RegionValid(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"station: Test Bench",
		"failure-symptom: No picture on boot",
		"unit-status: \"For QAS 👁️\"",
		"to-do: Await unit's return",
		"model: Ibiza",
	}, "\n") + "\n"

	rec, err := record.Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	want := []record.Field{
		{Name: "station", Value: record.ScalarValue("Test Bench")},
		{Name: "failure-symptom", Value: record.ScalarValue("No picture on boot")},
		{Name: "unit-status", Value: record.ScalarValue("\"For QAS 👁️\"")},
		{Name: "to-do", Value: record.ScalarValue("Await unit's return")},
		{Name: "model", Value: record.ScalarValue("Ibiza")},
	}

	if diff := cmp.Diff(want, rec.Fields()); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

// Contract: only the first colon separates key from value; the rest of the
// line stays part of the scalar.
func Test_Parse_KeepsExtraColons_When_ValueContainsColon(t *testing.T) {
	t.Parallel()

	rec, err := record.Parse("failure-specs: voltage: 3.3V, rail: VCC\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	got := rec.Content("failure-specs")
	if got != "voltage: 3.3V, rail: VCC" {
		t.Fatalf("content = %q", got)
	}
}

// Contract: dash lines attach to the most recently seen key, converting it
// to a list and discarding the scalar placeholder.
func Test_Parse_BuildsList_When_DashLinesFollowKey(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		text string
		want record.Value
	}{
		{
			name: "empty placeholder",
			text: "tags:\n  - \"#Ibiza/qas\"\n",
			want: record.ListValue([]string{"\"#Ibiza/qas\""}),
		},
		{
			name: "multiple items",
			text: "tags:\n  - one\n  - two\n  - three\n",
			want: record.ListValue([]string{"one", "two", "three"}),
		},
		{
			name: "scalar placeholder discarded",
			text: "tags: stale\n  - fresh\n",
			want: record.ListValue([]string{"fresh"}),
		},
		{
			name: "dash without indentation",
			text: "tags:\n- bare\n",
			want: record.ListValue([]string{"bare"}),
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			rec, err := record.Parse(tc.text)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}

			got, ok := rec.Get("tags")
			if !ok {
				t.Fatal("tags missing")
			}

			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// Contract: a later occurrence of a key replaces the value but keeps the
// first occurrence's position, and list items then attach to it.
func Test_Parse_KeepsPosition_When_KeyRepeats(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"station: Intake",
		"model: Ibiza",
		"station: Test Bench",
	}, "\n") + "\n"

	rec, err := record.Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	fields := rec.Fields()
	if len(fields) != 2 {
		t.Fatalf("len = %d, want 2", len(fields))
	}

	if fields[0].Name != "station" || fields[0].Value.Scalar != "Test Bench" {
		t.Fatalf("first field = %+v", fields[0])
	}
}

// Contract: blank lines and colon-less non-list lines never fail the
// tolerant parser; they are skipped.
func Test_Parse_SkipsAmbiguousLines_When_Tolerant(t *testing.T) {
	t.Parallel()

	text := strings.Join([]string{
		"station: Intake",
		"",
		"this line has no colon",
		"   ",
		": no key here",
		"model: Ibiza",
	}, "\n") + "\n"

	rec, err := record.Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if rec.Len() != 2 {
		t.Fatalf("len = %d, want 2", rec.Len())
	}
}

// Contract: WithStrict turns skipped line shapes into positional errors.
func Test_Parse_ReturnsError_When_StrictAndLineAmbiguous(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		text     string
		wantLine int
	}{
		{name: "no colon", text: "station: Intake\nnot a field\n", wantLine: 2},
		{name: "empty key", text: ": dangling\n", wantLine: 1},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := record.Parse(tc.text, record.WithStrict(true))
			if !errors.Is(err, record.ErrMalformedRecord) {
				t.Fatalf("err = %v, want ErrMalformedRecord", err)
			}

			var parseErr *record.ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("err = %T, want *ParseError", err)
			}

			if parseErr.Line != tc.wantLine {
				t.Fatalf("line = %d, want %d", parseErr.Line, tc.wantLine)
			}
		})
	}
}

// Contract: a list item before any key is fatal in every mode.
func Test_Parse_ReturnsMalformedRecord_When_ListItemBeforeAnyKey(t *testing.T) {
	t.Parallel()

	for _, strict := range []bool{false, true} {
		_, err := record.Parse("- \"x\"\nstation: Intake\n", record.WithStrict(strict))
		if !errors.Is(err, record.ErrMalformedRecord) {
			t.Fatalf("strict=%v: err = %v, want ErrMalformedRecord", strict, err)
		}
	}
}

// Contract: CRLF input parses the same as LF input.
func Test_Parse_HandlesCRLF_When_SourceUsesWindowsLineEndings(t *testing.T) {
	t.Parallel()

	rec, err := record.Parse("station: Intake\r\ntags:\r\n  - one\r\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if rec.Content("station") != "Intake" {
		t.Fatalf("station = %q", rec.Content("station"))
	}

	got, _ := rec.Get("tags")
	if diff := cmp.Diff(record.ListValue([]string{"one"}), got); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}
}

// Contract: empty input yields an empty record, not an error.
func Test_Parse_ReturnsEmptyRecord_When_RegionEmpty(t *testing.T) {
	t.Parallel()

	rec, err := record.Parse("")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if rec.Len() != 0 {
		t.Fatalf("len = %d, want 0", rec.Len())
	}
}

// Contract: a bare `key:` line is an empty scalar, not a list.
func Test_Parse_ReturnsEmptyScalar_When_ValueAbsent(t *testing.T) {
	t.Parallel()

	rec, err := record.Parse("icon:\nmodel: Ibiza\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	got, ok := rec.Get("icon")
	if !ok {
		t.Fatal("icon missing")
	}

	if diff := cmp.Diff(record.ScalarValue(""), got); diff != "" {
		t.Fatalf("value mismatch (-want +got):\n%s", diff)
	}
}
