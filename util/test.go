package util

import (
	"fmt"
	"github.com/hauke96/sigolo/v2"
	"math"
	"reflect"
	"strings"
	"testing"
)

func AssertEqual(t *testing.T, expected any, actual any) {
	if reflect.DeepEqual(expected, actual) {
		return
	}

	expectedString, expectedIsString := expected.(string)
	actualString, actualIsString := actual.(string)
	if expectedIsString && actualIsString {
		assertEqualStrings(t, expectedString, actualString)
		return
	}

	sigolo.Errorb(1, "Expect to be equal.\nExpected: %+v\n----------\nActual  : %+v\n", expected, actual)
	t.Fail()
}

// AssertApprox checks that both values differ by at most the given accuracy. Coordinates decoded from a geohash are
// only exact up to the error margin of the cell, so most geometric assertions use this instead of AssertEqual.
func AssertApprox[T float32 | float64](t *testing.T, expected T, actual T, accuracy T) {
	if math.Abs(float64(expected-actual)) > float64(accuracy) {
		sigolo.Errorb(1, "Expect to be approximately equal (accuracy %v).\nExpected: %v\nActual  : %v\nDelta   : %v", accuracy, expected, actual, math.Abs(float64(expected-actual)))
		t.Fail()
	}
}

// assertEqualStrings prints both strings character-aligned, which is handy for comparing geohashes of equal length.
func assertEqualStrings(t *testing.T, expected string, actual string) {
	marker := strings.Builder{}
	for i := 0; i < len(expected) || i < len(actual); i++ {
		if i >= len(expected) || i >= len(actual) || expected[i] != actual[i] {
			marker.WriteByte('^')
		} else {
			marker.WriteByte(' ')
		}
	}

	sigolo.Errorb(2, "Expect strings to be equal.\n%s\nExpected: \"%s\"\nActual  : \"%s\"\n           %s", strings.Repeat("-", 20), expected, actual, marker.String())
	fmt.Println()

	t.Fail()
}

func AssertNil(t *testing.T, value any) {
	if value != nil && !reflect.ValueOf(value).IsNil() {
		sigolo.Errorb(1, "Expect to be 'nil' but was: %+v", value)
		t.Fail()
	}
}

func AssertNotNil(t *testing.T, value any) {
	if value == nil || reflect.ValueOf(value).IsNil() {
		sigolo.Errorb(1, "Expect NOT to be 'nil' but was: %#v", value)
		t.Fail()
	}
}

func AssertError(t *testing.T, expectedMessage string, err error) {
	if err == nil {
		sigolo.Errorb(1, "Expected error with message: %s\nActual error: nil", expectedMessage)
		t.Fail()
		return
	}
	if expectedMessage != err.Error() {
		sigolo.Errorb(1, "Expected message: %s\nActual error message: %s", expectedMessage, err.Error())
		t.Fail()
	}
}

func AssertTrue(t *testing.T, b bool) {
	if !b {
		sigolo.Errorb(1, "Expected true but got false")
		t.Fail()
	}
}

func AssertFalse(t *testing.T, b bool) {
	if b {
		sigolo.Errorb(1, "Expected false but got true")
		t.Fail()
	}
}
