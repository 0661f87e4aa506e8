// pkg/model/value.go
package model

import "strings"

// Value is a single cell value with an explicit absent marker. Absent and
// empty-string are collapsed into one representation so the pipeline never
// has to distinguish the two.
type Value struct {
	raw     string
	present bool
}

// Absent is the missing-value marker.
var Absent = Value{}

// NewValue wraps a raw cell string. A value that is empty after trimming is
// treated as absent.
func NewValue(raw string) Value {
	if strings.TrimSpace(raw) == "" {
		return Absent
	}
	return Value{raw: raw, present: true}
}

// String returns the raw cell content, or the empty string when absent.
func (v Value) String() string {
	return v.raw
}

// Present reports whether the cell carries a value.
func (v Value) Present() bool {
	return v.present
}
