package domain

import "encoding/json"

// InputShape tells the harness how the resolved arguments are passed to solution
type InputShape string

const (
	// InputScalar passes a single value as the only argument
	InputScalar InputShape = "scalar"
	// InputPositional spreads every value as its own positional argument
	InputPositional InputShape = "positional"
)

// HarnessInput is a test case input resolved into call arguments.
// For InputScalar Args always has exactly one element.
type HarnessInput struct {
	Shape InputShape
	Args  []json.RawMessage
}
