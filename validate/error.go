package validate

import (
	"fmt"
	"math"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// callerStack holds the program counters of the function creating an error and its callers.
type callerStack []uintptr

// captureCallers skips runtime.Callers, itself and the error constructor.
func captureCallers() callerStack {
	pcs := make([]uintptr, 32)
	return pcs[:runtime.Callers(3, pcs)]
}

func (c callerStack) String() string {
	var sb strings.Builder
	frames := runtime.CallersFrames(c)
	for {
		frame, more := frames.Next()
		if frame.Function != "" {
			fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		}
		if !more {
			break
		}
	}
	return sb.String()
}

func formatWithStack(s fmt.State, verb rune, err error, callers callerStack) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			fmt.Fprintf(s, "%s\n%s", err.Error(), callers.String())
			return
		}
		fmt.Fprintf(s, "%s", err.Error())
	case 's':
		fmt.Fprintf(s, "%s", err.Error())
	}
}

// TypeError models inputs that are not of the expected kind, e.g. "abc" given as latitude or an unknown direction.
type TypeError struct {
	Message   string `json:"message"`
	Parameter string `json:"parameter"`
	Input     string `json:"input"`
	Expected  string `json:"expected"`
	callers   callerStack
}

func NewTypeError(parameter string, input string, expected string) *TypeError {
	return &TypeError{
		Message:   fmt.Sprintf("Type error: Expected %s to be %s but found '%s'.", parameter, expected, input),
		Parameter: parameter,
		Input:     input,
		Expected:  expected,
		callers:   captureCallers(),
	}
}

func (e *TypeError) Format(s fmt.State, verb rune) {
	formatWithStack(s, verb, e, e.callers)
}

func (e *TypeError) Error() string {
	return e.Message
}

// RangeError models numeric inputs outside their valid domain. The bounds are inclusive.
type RangeError struct {
	Message   string  `json:"message"`
	Parameter string  `json:"parameter"`
	Value     float64 `json:"value"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	callers   callerStack
}

func NewRangeError(parameter string, value float64, min float64, max float64) *RangeError {
	return &RangeError{
		Message:   fmt.Sprintf("Range error: Expected %s to be within [%g, %g] but found %g.", parameter, min, max, value),
		Parameter: parameter,
		Value:     value,
		Min:       min,
		Max:       max,
		callers:   captureCallers(),
	}
}

// NewNonFiniteError creates a RangeError for NaN and infinite values of parameters that accept any finite number.
func NewNonFiniteError(parameter string, value float64) *RangeError {
	return &RangeError{
		Message:   fmt.Sprintf("Range error: Expected %s to be a finite number but found %g.", parameter, value),
		Parameter: parameter,
		Value:     value,
		Min:       math.Inf(-1),
		Max:       math.Inf(1),
		callers:   captureCallers(),
	}
}

func (e *RangeError) Format(s fmt.State, verb rune) {
	formatWithStack(s, verb, e, e.callers)
}

func (e *RangeError) Error() string {
	return e.Message
}

// SyntaxError models a geohash string containing a character outside the base-32 alphabet. Position is the byte index
// of the first offending character.
type SyntaxError struct {
	Message   string `json:"message"`
	Input     string `json:"input"`
	Character string `json:"character"`
	Position  int    `json:"position"`
	callers   callerStack
}

func NewSyntaxError(input string, position int) *SyntaxError {
	character, _ := utf8.DecodeRuneInString(input[position:])
	return &SyntaxError{
		Message:   fmt.Sprintf("Syntax error: Invalid character '%c' at position %d in geohash '%s'.", character, position, input),
		Input:     input,
		Character: string(character),
		Position:  position,
		callers:   captureCallers(),
	}
}

func (e *SyntaxError) Format(s fmt.State, verb rune) {
	formatWithStack(s, verb, e, e.callers)
}

func (e *SyntaxError) Error() string {
	return e.Message
}

func IsTypeError(err error) bool {
	var typeError *TypeError
	return errors.As(err, &typeError)
}

func IsRangeError(err error) bool {
	var rangeError *RangeError
	return errors.As(err, &rangeError)
}

func IsSyntaxError(err error) bool {
	var syntaxError *SyntaxError
	return errors.As(err, &syntaxError)
}

// IsValidationError returns true for all errors caused by invalid user input.
func IsValidationError(err error) bool {
	return IsTypeError(err) || IsRangeError(err) || IsSyntaxError(err)
}
