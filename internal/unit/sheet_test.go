package unit_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"rework/internal/document"
	"rework/internal/record"
	"rework/internal/unit"
)

// Contract: a fresh sheet splits cleanly, carries every recognized field in
// template order, and derives the intake tag from the model.
func Test_NewSheetText_ProducesParsableSheet_When_OptionsSet(t *testing.T) {
	t.Parallel()

	text := unit.NewSheetText(unit.SheetOptions{
		ID:      "7f2k",
		Model:   "Ibiza",
		Symptom: "No picture on boot",
	})

	doc, err := document.Split(text)
	if err != nil {
		t.Fatalf("split: %v", err)
	}

	rec, err := record.Parse(doc.Region)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	wantOrder := []string{
		unit.FieldStation, unit.FieldFailureSymptom, unit.FieldFailureSpecs,
		unit.FieldUnitLocation, unit.FieldUnitStatus, unit.FieldToDo,
		unit.FieldTags, unit.FieldIcon, unit.FieldModel,
	}

	var gotOrder []string
	for _, f := range rec.Fields() {
		gotOrder = append(gotOrder, f.Name)
	}

	if diff := cmp.Diff(wantOrder, gotOrder); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}

	if got := rec.Content(unit.FieldStation); got != "Intake" {
		t.Fatalf("station = %q", got)
	}

	if got := rec.Content(unit.FieldFailureSymptom); got != "No picture on boot" {
		t.Fatalf("failure-symptom = %q", got)
	}

	tags, _ := rec.Get(unit.FieldTags)
	if diff := cmp.Diff([]string{"#Ibiza/intake"}, tags.Items()); diff != "" {
		t.Fatalf("tags mismatch (-want +got):\n%s", diff)
	}

	if !strings.Contains(doc.Body, "# Unit 7f2k") {
		t.Fatalf("body missing unit heading: %q", doc.Body)
	}

	if !strings.Contains(doc.Body, "## Inspection log") {
		t.Fatalf("body missing inspection log: %q", doc.Body)
	}
}

// Contract: the template goes through the serializer, so a parse/serialize
// cycle of a fresh sheet is a fixed point.
func Test_NewSheetText_RoundTrips_When_Reserialized(t *testing.T) {
	t.Parallel()

	text := unit.NewSheetText(unit.SheetOptions{ID: "7f2k", Model: "Ibiza"})

	doc, err := document.Split(text)
	if err != nil {
		t.Fatalf("split: %v", err)
	}

	rec, err := record.Parse(doc.Region)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	doc.Region = record.Marshal(rec)
	if got := doc.Join(); got != text {
		t.Fatalf("cycle changed sheet:\n got: %q\nwant: %q", got, text)
	}
}

// Contract: generated ids are 7 chars of the sortable base32 alphabet.
func Test_GenerateID_UsesSortableAlphabet_When_Called(t *testing.T) {
	t.Parallel()

	id := unit.GenerateID()
	if len(id) != 7 {
		t.Fatalf("len(%q) = %d, want 7", id, len(id))
	}

	for _, r := range id {
		if !strings.ContainsRune("0123456789abcdefghjkmnpqrstvwxyz", r) {
			t.Fatalf("id %q contains %q outside the alphabet", id, r)
		}
	}
}

// Contract: suffixes advance a, b, ..., z, za, zb and never shrink.
func Test_NextSuffix_Increments_When_Advanced(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want string
	}{
		{in: "", want: "a"},
		{in: "a", want: "b"},
		{in: "y", want: "z"},
		{in: "z", want: "za"},
		{in: "za", want: "zb"},
		{in: "zz", want: "zaa"},
	}

	for _, tc := range cases {
		if got := unit.NextSuffix(tc.in); got != tc.want {
			t.Errorf("NextSuffix(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
