package harness

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Mihailob5017/codegames/internal/domain"
)

// ResolveInput decides how a stored test case input is passed to solution:
//
//   - the text is JSON-decoded, or kept as a plain string when it is not JSON;
//   - a string containing a newline is split on "\n" and every token is
//     JSON-decoded on its own, one positional argument per token;
//   - an array is spread, one positional argument per element;
//   - anything else is passed as the single argument.
//
// A JSON string whose value contains a newline is split as well, so a
// problem that takes one multi-line string must store it some other way
// (for instance wrapped in a one-element array). Lines are not trimmed: a
// trailing or doubled newline yields an empty token, which is not JSON, so
// such an input fails every run with an "input line N is not valid JSON" error.
func ResolveInput(raw string) (domain.HarnessInput, error) {
	value, ok := decodeJSON(raw)
	if !ok {
		value = raw
	}

	switch v := value.(type) {
	case string:
		if strings.Contains(v, "\n") {
			return splitLines(v)
		}
		return scalarInput(v)
	case []interface{}:
		args := make([]json.RawMessage, 0, len(v))
		for _, elem := range v {
			arg, err := encodeJSON(elem)
			if err != nil {
				return domain.HarnessInput{}, err
			}
			args = append(args, arg)
		}
		return domain.HarnessInput{Shape: domain.InputPositional, Args: args}, nil
	default:
		return scalarInput(v)
	}
}

func splitLines(s string) (domain.HarnessInput, error) {
	lines := strings.Split(s, "\n")
	args := make([]json.RawMessage, 0, len(lines))
	for i, line := range lines {
		value, ok := decodeJSON(line)
		if !ok {
			return domain.HarnessInput{}, fmt.Errorf("input line %d is not valid JSON: %q", i+1, line)
		}
		arg, err := encodeJSON(value)
		if err != nil {
			return domain.HarnessInput{}, err
		}
		args = append(args, arg)
	}
	return domain.HarnessInput{Shape: domain.InputPositional, Args: args}, nil
}

func scalarInput(value interface{}) (domain.HarnessInput, error) {
	arg, err := encodeJSON(value)
	if err != nil {
		return domain.HarnessInput{}, err
	}
	return domain.HarnessInput{Shape: domain.InputScalar, Args: []json.RawMessage{arg}}, nil
}

// ResolveExpected returns the expected output as JSON text: the stored value
// when it is valid JSON, otherwise the stored text as a JSON string
func ResolveExpected(raw string) (json.RawMessage, error) {
	value, ok := decodeJSON(raw)
	if !ok {
		value = raw
	}
	return encodeJSON(value)
}

// decodeJSON reports whether s holds exactly one JSON value. Numbers are kept
// as json.Number so large integers survive the round trip.
func decodeJSON(s string) (interface{}, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var value interface{}
	if err := dec.Decode(&value); err != nil {
		return nil, false
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, false
	}
	return value, true
}

func encodeJSON(value interface{}) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(value); err != nil {
		return nil, fmt.Errorf("failed to encode test value: %w", err)
	}
	return json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
