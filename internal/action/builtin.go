package action

// Builtin returns the default repair-floor vocabulary. Field names are plain
// string values to the engine; their meaning lives entirely in this table
// (or in the operator's replacement table).
func Builtin() Table {
	table, err := NewTable([]Spec{
		{
			Name:    "check-in",
			Summary: "Register an arriving unit at intake",
			Set: []Assignment{
				{Field: "station", Value: "Intake"},
				{Field: "unit-status", Value: "Received"},
				{Field: "unit-location", Value: "Intake shelf"},
				{Field: "to-do", Value: "Assign to a test station"},
			},
		},
		{
			Name:    "start-test",
			Summary: "Move the unit onto the test bench",
			Set: []Assignment{
				{Field: "station", Value: "Test Bench"},
				{Field: "unit-status", Value: "Under test 🔬"},
				{Field: "to-do", Value: "Run the failure specs"},
			},
		},
		{
			Name:    "send-to-qas",
			Summary: "Hand the unit to quality assurance",
			Set: []Assignment{
				{Field: "unit-status", Value: "For QAS 👁️"},
				{Field: "unit-location", Value: "Quality Control Engineer"},
				{Field: "to-do", Value: "Await unit's return"},
				{Field: "tags", Value: "#{{model}}/qas", List: true},
			},
		},
		{
			Name:    "qas-pass",
			Summary: "Record a passed quality inspection",
			Set: []Assignment{
				{Field: "unit-status", Value: "QAS passed ✅"},
				{Field: "unit-location", Value: "Finished goods"},
				{Field: "to-do", Value: "Prepare the return shipment"},
			},
		},
		{
			Name:    "return-to-customer",
			Summary: "Ship the repaired unit back",
			Set: []Assignment{
				{Field: "station", Value: "Shipping"},
				{Field: "unit-status", Value: "Returned"},
				{Field: "unit-location", Value: "Customer"},
				{Field: "to-do", Value: ""},
			},
		},
		{
			Name:    "scrap",
			Summary: "Write the unit off for teardown",
			Set: []Assignment{
				{Field: "unit-status", Value: "Scrapped ♻️"},
				{Field: "unit-location", Value: "Scrap bin"},
				{Field: "icon", Value: "♻️"},
				{Field: "to-do", Value: "Record teardown notes"},
			},
		},
	})
	if err != nil {
		// The builtin table is fixed at compile time; an invalid entry is a
		// programming error.
		panic(err)
	}

	return table
}
