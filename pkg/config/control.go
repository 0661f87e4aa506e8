// pkg/config/control.go
package config

import (
	"strconv"
	"strings"

	"github.com/wjleong/sheet-recon/pkg/model"
)

// Rect is a half-open cell rectangle [FromRow,ToRow) x [FromCol,ToCol) in
// zero-based grid coordinates.
type Rect struct {
	FromRow, ToRow int
	FromCol, ToCol int
}

// Contains reports whether the cell at (row, col) falls inside the rectangle.
func (r Rect) Contains(row, col int) bool {
	return row >= r.FromRow && row < r.ToRow && col >= r.FromCol && col < r.ToCol
}

// CategoryRegion attributes one category to a sub-rectangle of a control tab.
type CategoryRegion struct {
	Category model.SourceCategory
	Rect     Rect
}

// ControlTab describes one control-list tab. Tabs with a single category set
// Category and leave Regions empty; the dual-range membership tab sets
// Category to none and carries one region per sub-range. Cells outside every
// region still feed the raw exclusion sets but get no category.
type ControlTab struct {
	Name     string
	Category model.SourceCategory
	Regions  []CategoryRegion
}

// The sub-range boundaries on the dual membership tab have drifted between
// revisions of the control sheet, so they are environment-tunable rather
// than constants. Values use the form "fromRow:toRow,fromCol:toCol",
// half-open and zero-based.
var (
	defaultTitanRect = Rect{FromRow: 0, ToRow: 5, FromCol: 0, ToCol: 5}
	defaultSpireRect = Rect{FromRow: 7, ToRow: 12, FromCol: 7, ToCol: 12}
)

// LoadControlTabs returns the control tabs in their documented processing
// order. Category attribution is first-write-wins across this order.
func LoadControlTabs() []ControlTab {
	return []ControlTab{
		{
			Name: getEnv("CONTROL_TAB_MEMBERSHIP", "Active Titan/SPIRE"),
			Regions: []CategoryRegion{
				{Category: model.CategoryActiveTitan, Rect: getEnvAsRect("REGION_ACTIVE_TITAN", defaultTitanRect)},
				{Category: model.CategoryActiveSpire, Rect: getEnvAsRect("REGION_ACTIVE_SPIRE", defaultSpireRect)},
			},
		},
		{
			Name:     getEnv("CONTROL_TAB_EX_MEMBERSHIP", "Ex-Membership"),
			Category: model.CategoryExMembership,
		},
		{
			Name:     getEnv("CONTROL_TAB_BGC", "BGC"),
			Category: model.CategoryBGC,
		},
		{
			Name:     getEnv("CONTROL_TAB_NEW_INTAKE", "New Intake"),
			Category: model.CategoryNewIntake,
		},
	}
}

// getEnvAsRect parses "fromRow:toRow,fromCol:toCol" and falls back to the
// default on any malformed input.
func getEnvAsRect(key string, defaultValue Rect) Rect {
	value := getEnv(key, "")
	if value == "" {
		return defaultValue
	}

	parts := strings.Split(value, ",")
	if len(parts) != 2 {
		return defaultValue
	}

	rows, ok := parseSpan(parts[0])
	if !ok {
		return defaultValue
	}
	cols, ok := parseSpan(parts[1])
	if !ok {
		return defaultValue
	}

	return Rect{FromRow: rows[0], ToRow: rows[1], FromCol: cols[0], ToCol: cols[1]}
}

func parseSpan(s string) ([2]int, bool) {
	bounds := strings.Split(strings.TrimSpace(s), ":")
	if len(bounds) != 2 {
		return [2]int{}, false
	}

	from, err := strconv.Atoi(strings.TrimSpace(bounds[0]))
	if err != nil {
		return [2]int{}, false
	}
	to, err := strconv.Atoi(strings.TrimSpace(bounds[1]))
	if err != nil || to < from {
		return [2]int{}, false
	}

	return [2]int{from, to}, true
}
