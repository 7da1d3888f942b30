package unit

import (
	"strings"

	"rework/internal/document"
	"rework/internal/record"
)

// Recognized metadata fields. The engine has no knowledge of these; they
// exist so the template and the builtin action table agree on spelling.
const (
	FieldStation        = "station"
	FieldFailureSymptom = "failure-symptom"
	FieldFailureSpecs   = "failure-specs"
	FieldUnitLocation   = "unit-location"
	FieldUnitStatus     = "unit-status"
	FieldToDo           = "to-do"
	FieldTags           = "tags"
	FieldIcon           = "icon"
	FieldModel          = "model"
)

// SheetOptions parameterize a fresh unit sheet.
type SheetOptions struct {
	ID      string
	Model   string
	Symptom string
}

// NewSheetText renders a new unit sheet: the full recognized-field metadata
// block followed by an inspection body skeleton. The metadata block goes
// through the serializer so quoting matches what every later patch will
// produce.
func NewSheetText(opts SheetOptions) string {
	rec := &record.Record{}
	rec.Set(FieldStation, record.ScalarValue("Intake"))
	rec.Set(FieldFailureSymptom, record.ScalarValue(opts.Symptom))
	rec.Set(FieldFailureSpecs, record.ScalarValue(""))
	rec.Set(FieldUnitLocation, record.ScalarValue("Intake shelf"))
	rec.Set(FieldUnitStatus, record.ScalarValue("Received"))
	rec.Set(FieldToDo, record.ScalarValue("Assign to a test station"))
	rec.Set(FieldTags, record.ListValue([]string{"#" + opts.Model + "/intake"}))
	rec.Set(FieldIcon, record.ScalarValue(""))
	rec.Set(FieldModel, record.ScalarValue(opts.Model))

	var body strings.Builder
	body.WriteString("\n")
	body.WriteString("# Unit " + opts.ID + "\n")
	body.WriteString("\n")
	body.WriteString("## Inspection log\n")
	body.WriteString("\n")
	body.WriteString("| Date | Station | Check | Result |\n")
	body.WriteString("| ---- | ------- | ----- | ------ |\n")
	body.WriteString("\n")
	body.WriteString("## Notes\n")

	doc := document.Document{
		Region: record.Marshal(rec),
		Body:   body.String(),
	}

	return doc.Join()
}
