package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wjleong/sheet-recon/pkg/model"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("SHEETS_CONTROL_SPREADSHEET_ID", "control-id")
	t.Setenv("SHEETS_MASTER_SPREADSHEET_ID", "master-id")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, BackendSheets, cfg.ControlBackend)
	assert.Equal(t, BackendSheets, cfg.SinkBackend)
	assert.Equal(t, "60", cfg.CountryCode)
	assert.Equal(t, "info", cfg.LogLevel)
	require.NotNil(t, cfg.Sheets)
	assert.Equal(t, "control-id", cfg.Sheets.ControlSpreadsheetID)
	assert.Nil(t, cfg.Postgres)
	assert.Nil(t, cfg.Snowflake)
}

func TestLoadConfigMissingSpreadsheetID(t *testing.T) {
	t.Setenv("SHEETS_CONTROL_SPREADSHEET_ID", "")
	t.Setenv("SHEETS_MASTER_SPREADSHEET_ID", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidateRejectsSnowflakeSink(t *testing.T) {
	cfg := &Config{
		ControlBackend: BackendSnowflake,
		SinkBackend:    BackendSnowflake,
		CountryCode:    "60",
		ControlTabs:    LoadControlTabs(),
	}
	assert.Error(t, cfg.Validate())

	cfg.SinkBackend = BackendPostgres
	assert.NoError(t, cfg.Validate())
}

func TestLoadControlTabsOrder(t *testing.T) {
	tabs := LoadControlTabs()
	require.Len(t, tabs, 4)

	assert.Equal(t, "Active Titan/SPIRE", tabs[0].Name)
	assert.Equal(t, model.CategoryNone, tabs[0].Category)
	require.Len(t, tabs[0].Regions, 2)
	assert.Equal(t, model.CategoryActiveTitan, tabs[0].Regions[0].Category)
	assert.Equal(t, model.CategoryActiveSpire, tabs[0].Regions[1].Category)

	assert.Equal(t, model.CategoryExMembership, tabs[1].Category)
	assert.Equal(t, model.CategoryBGC, tabs[2].Category)
	assert.Equal(t, model.CategoryNewIntake, tabs[3].Category)
}

func TestRectEnvOverride(t *testing.T) {
	t.Setenv("REGION_ACTIVE_TITAN", "2:6,1:4")

	tabs := LoadControlTabs()
	rect := tabs[0].Regions[0].Rect
	assert.Equal(t, Rect{FromRow: 2, ToRow: 6, FromCol: 1, ToCol: 4}, rect)

	// Malformed values fall back to the default.
	t.Setenv("REGION_ACTIVE_TITAN", "bogus")
	tabs = LoadControlTabs()
	assert.Equal(t, defaultTitanRect, tabs[0].Regions[0].Rect)
}

func TestRectContains(t *testing.T) {
	r := Rect{FromRow: 0, ToRow: 5, FromCol: 0, ToCol: 5}
	assert.True(t, r.Contains(0, 0))
	assert.True(t, r.Contains(4, 4))
	assert.False(t, r.Contains(5, 0))
	assert.False(t, r.Contains(0, 5))
}
