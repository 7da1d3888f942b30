package action_test

import (
	"errors"
	"strings"
	"testing"

	"rework/internal/action"
	"rework/internal/document"
	"rework/internal/record"
)

// Contract: Apply rewrites exactly the assigned fields; every other region
// line and the whole body survive byte-for-byte.
func Test_Apply_PatchesOnlyNamedFields_When_RegionHasOthers(t *testing.T) {
	t.Parallel()

	doc := document.Document{
		Region: "unit-status: \"For QAS 👁️\"\n",
		Body:   "\n# Unit 7f2k\n\nInspection notes.\n",
	}

	spec := action.Spec{
		Name: "hand-over",
		Set: []action.Assignment{
			{Field: "unit-location", Value: "Quality Control Engineer"},
			{Field: "to-do", Value: "Await unit's return"},
		},
	}

	got, err := action.Apply(doc, spec)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	wantRegion := strings.Join([]string{
		"unit-status: \"For QAS 👁️\"",
		"unit-location: Quality Control Engineer",
		"to-do: Await unit's return",
	}, "\n") + "\n"

	if got.Region != wantRegion {
		t.Fatalf("region:\n got: %q\nwant: %q", got.Region, wantRegion)
	}

	if got.Body != doc.Body {
		t.Fatalf("body changed:\n got: %q\nwant: %q", got.Body, doc.Body)
	}
}

// Contract: {{field}} placeholders resolve against the sheet's own fields,
// and list assignments replace the field with a one-item list.
func Test_Apply_DerivesListValue_When_AssignmentReferencesField(t *testing.T) {
	t.Parallel()

	doc := document.Document{
		Region: strings.Join([]string{
			"model: Ibiza",
			"tags:",
			"  - \"#Ibiza/intake\"",
			"  - urgent",
		}, "\n") + "\n",
		Body: "\nbody\n",
	}

	spec := action.Spec{
		Name: "retag",
		Set: []action.Assignment{
			{Field: "tags", Value: "#{{model}}/qas", List: true},
		},
	}

	got, err := action.Apply(doc, spec)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	wantRegion := strings.Join([]string{
		"model: Ibiza",
		"tags:",
		"  - \"#Ibiza/qas\"",
	}, "\n") + "\n"

	if got.Region != wantRegion {
		t.Fatalf("region:\n got: %q\nwant: %q", got.Region, wantRegion)
	}
}

// Contract: placeholders resolve against the record as it was before the
// action; an assignment cannot observe an earlier assignment's value.
func Test_Apply_ResolvesFromSnapshot_When_ActionOverwritesReferencedField(t *testing.T) {
	t.Parallel()

	doc := document.Document{Region: "station: Intake\n"}

	spec := action.Spec{
		Name: "move",
		Set: []action.Assignment{
			{Field: "station", Value: "Test Bench"},
			{Field: "to-do", Value: "Log departure from {{station}}"},
		},
	}

	got, err := action.Apply(doc, spec)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	rec, err := record.Parse(got.Region)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}

	if todo := rec.Content("to-do"); todo != "Log departure from Intake" {
		t.Fatalf("to-do = %q", todo)
	}

	if station := rec.Content("station"); station != "Test Bench" {
		t.Fatalf("station = %q", station)
	}
}

// Contract: placeholders see unquoted content, so quoted source fields do
// not leak quote characters into derived values.
func Test_Apply_ExpandsUnquotedContent_When_SourceFieldQuoted(t *testing.T) {
	t.Parallel()

	doc := document.Document{Region: "model: \"Ibiza: mk2\"\n"}

	spec := action.Spec{
		Name: "retag",
		Set: []action.Assignment{
			{Field: "tags", Value: "#{{model}}/qas", List: true},
		},
	}

	got, err := action.Apply(doc, spec)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	rec, err := record.Parse(got.Region)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}

	tags, _ := rec.Get("tags")
	items := tags.Items()

	if len(items) != 1 || items[0] != "#Ibiza: mk2/qas" {
		t.Fatalf("tags = %q", items)
	}
}

// Contract: applying the same action twice produces identical text.
func Test_Apply_IsIdempotent_When_RunTwice(t *testing.T) {
	t.Parallel()

	doc := document.Document{
		Region: strings.Join([]string{
			"station: Test Bench",
			"unit-status: \"Under test 🔬\"",
			"model: Ibiza",
		}, "\n") + "\n",
		Body: "\nbody\n",
	}

	table := action.Builtin()

	spec, ok := table.Lookup("send-to-qas")
	if !ok {
		t.Fatal("send-to-qas missing from builtin table")
	}

	once, err := action.Apply(doc, spec)
	if err != nil {
		t.Fatalf("first apply: %v", err)
	}

	twice, err := action.Apply(once, spec)
	if err != nil {
		t.Fatalf("second apply: %v", err)
	}

	if twice != once {
		t.Fatalf("not idempotent:\nfirst:  %q\nsecond: %q", once, twice)
	}
}

// Contract: a placeholder naming a missing field aborts the whole action;
// no assignment is applied, even ones listed before the failing value.
func Test_Apply_ReturnsUnresolvedField_When_PlaceholderHasNoSource(t *testing.T) {
	t.Parallel()

	doc := document.Document{Region: "station: Intake\n"}

	spec := action.Spec{
		Name: "retag",
		Set: []action.Assignment{
			{Field: "station", Value: "Test Bench"},
			{Field: "tags", Value: "#{{model}}/qas", List: true},
		},
	}

	_, err := action.Apply(doc, spec)
	if !errors.Is(err, action.ErrUnresolvedField) {
		t.Fatalf("err = %v, want ErrUnresolvedField", err)
	}

	if !strings.Contains(err.Error(), "model") {
		t.Fatalf("err = %q, want the missing field name", err)
	}
}

// Contract: a placeholder naming a list field aborts instead of expanding
// to an empty string; only scalar fields can be referenced.
func Test_Apply_ReturnsUnresolvedField_When_PlaceholderNamesList(t *testing.T) {
	t.Parallel()

	doc := document.Document{
		Region: "tags:\n  - \"#Ibiza/intake\"\nmodel: Ibiza\n",
	}

	spec := action.Spec{
		Name: "note",
		Set: []action.Assignment{
			{Field: "to-do", Value: "review {{tags}}"},
		},
	}

	_, err := action.Apply(doc, spec)
	if !errors.Is(err, action.ErrUnresolvedField) {
		t.Fatalf("err = %v, want ErrUnresolvedField", err)
	}

	if !strings.Contains(err.Error(), "tags") {
		t.Fatalf("err = %q, want the referenced field name", err)
	}
}

// Contract: a region the parser rejects aborts the action with the parse
// error; nothing is patched.
func Test_Apply_ReturnsMalformedRecord_When_RegionStartsWithListItem(t *testing.T) {
	t.Parallel()

	doc := document.Document{Region: "- \"x\"\nstation: Intake\n"}

	spec := action.Spec{
		Name: "move",
		Set:  []action.Assignment{{Field: "station", Value: "Test Bench"}},
	}

	_, err := action.Apply(doc, spec)
	if !errors.Is(err, record.ErrMalformedRecord) {
		t.Fatalf("err = %v, want ErrMalformedRecord", err)
	}
}

// Contract: an unterminated {{ stays literal instead of failing.
func Test_Apply_KeepsLiteralBraces_When_PlaceholderUnterminated(t *testing.T) {
	t.Parallel()

	doc := document.Document{Region: "station: Intake\n"}

	spec := action.Spec{
		Name: "note",
		Set:  []action.Assignment{{Field: "to-do", Value: "check {{wiring"}},
	}

	got, err := action.Apply(doc, spec)
	if err != nil {
		t.Fatalf("apply: %v", err)
	}

	rec, err := record.Parse(got.Region)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}

	if todo := rec.Content("to-do"); todo != "check {{wiring" {
		t.Fatalf("to-do = %q", todo)
	}
}
