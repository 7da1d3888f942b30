package cli

import "errors"

var (
	errModelRequired    = errors.New("--model is required")
	errIDRequired       = errors.New("unit id is required")
	errActionAndID      = errors.New("action name and unit id are required")
	errSheetExists      = errors.New("unit sheet already exists")
	errFlagMultiline    = errors.New("flag value cannot span multiple lines")
	errIDGeneration     = errors.New("failed to generate a unique unit id")
	errConsoleNeedsArgs = errors.New("missing arguments")
)
