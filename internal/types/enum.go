// Package types defines the closed trading vocabularies the terminal protocol
// speaks: trade actions, order types, fill policies, time-in-force rules and
// chart timeframes. Each enumeration is a fixed set of typed constants with
// static name/code tables; nothing here touches the terminal.
package types

import (
	"fmt"
	"strings"
)

// InvalidEnumValueError reports an input that matches none of the known
// names or codes of an enumeration.
type InvalidEnumValueError struct {
	Enum  string
	Value any
}

func (e *InvalidEnumValueError) Error() string {
	return fmt.Sprintf("invalid %s value: %v", e.Enum, e.Value)
}

func invalidEnum(enum string, value any) *InvalidEnumValueError {
	return &InvalidEnumValueError{Enum: enum, Value: value}
}

// unknownLabel is the deterministic fallback for codes outside an
// enumeration, e.g. "UNKNOWN_42".
func unknownLabel(code int) string {
	return fmt.Sprintf("UNKNOWN_%d", code)
}

// normalizeName canonicalizes string input for case-insensitive lookup.
func normalizeName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// coerceCode flattens the numeric shapes enum input arrives in (JSON decodes
// numbers as float64, callers may hand over any int width) into an int.
func coerceCode(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		if n == float32(int(n)) {
			return int(n), true
		}
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}
