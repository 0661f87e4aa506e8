// pkg/model/category.go
package model

import "fmt"

// SourceCategory names the control list (or sub-range, for the dual-range
// membership sheet) that caused an exclusion.
type SourceCategory int

const (
	CategoryNone SourceCategory = iota
	CategoryActiveTitan
	CategoryActiveSpire
	CategoryBGC
	CategoryNewIntake
	CategoryExMembership
)

// Tag column names on the Excluded output table. Every excluded record
// carries all four, at most one populated.
const (
	TagColumnActiveMembership = "Active Membership"
	TagColumnBGC              = "BGC"
	TagColumnNewIntake        = "New Intake"
	TagColumnExMembership     = "Ex Membership"
)

// TagColumns lists the tag columns in output order.
var TagColumns = []string{
	TagColumnActiveMembership,
	TagColumnBGC,
	TagColumnNewIntake,
	TagColumnExMembership,
}

// String returns a string representation of the category.
func (c SourceCategory) String() string {
	switch c {
	case CategoryNone:
		return "None"
	case CategoryActiveTitan:
		return "ActiveTitan"
	case CategoryActiveSpire:
		return "ActiveSpire"
	case CategoryBGC:
		return "BGC"
	case CategoryNewIntake:
		return "NewIntake"
	case CategoryExMembership:
		return "ExMembership"
	default:
		return fmt.Sprintf("Unknown(%d)", c)
	}
}

// TagColumn returns the Excluded-table column this category populates.
func (c SourceCategory) TagColumn() string {
	switch c {
	case CategoryActiveTitan, CategoryActiveSpire:
		return TagColumnActiveMembership
	case CategoryBGC:
		return TagColumnBGC
	case CategoryNewIntake:
		return TagColumnNewIntake
	case CategoryExMembership:
		return TagColumnExMembership
	default:
		return ""
	}
}

// TagValue returns the cell text written into the tag column.
func (c SourceCategory) TagValue() string {
	switch c {
	case CategoryActiveTitan:
		return "Active Titan"
	case CategoryActiveSpire:
		return "Active SPIRE"
	case CategoryBGC:
		return "BGC"
	case CategoryNewIntake:
		return "Closing"
	case CategoryExMembership:
		return "Ex-Membership"
	default:
		return ""
	}
}

// FinalStatus is the per-record classification, assigned exactly once per
// run. Control-list matches take precedence over duplicates; among
// duplicates, identity beats email beats phone.
type FinalStatus int

const (
	StatusAdmitted FinalStatus = iota
	StatusExcludedControlList
	StatusExcludedDuplicateIdentity
	StatusExcludedDuplicateEmail
	StatusExcludedDuplicatePhone
)

// String returns a string representation of the status.
func (s FinalStatus) String() string {
	switch s {
	case StatusAdmitted:
		return "Admitted"
	case StatusExcludedControlList:
		return "Excluded - Control List"
	case StatusExcludedDuplicateIdentity:
		return "Excluded - Duplicate IC"
	case StatusExcludedDuplicateEmail:
		return "Excluded - Duplicate Email"
	case StatusExcludedDuplicatePhone:
		return "Excluded - Duplicate Phone"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Excluded reports whether the status keeps the record out of the Cleaned
// table.
func (s FinalStatus) Excluded() bool {
	return s != StatusAdmitted
}
