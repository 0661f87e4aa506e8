package exclusion

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/wjleong/sheet-recon/pkg/config"
	"github.com/wjleong/sheet-recon/pkg/model"
	"github.com/wjleong/sheet-recon/pkg/store"
)

// fakeSource serves control tabs from memory. Tabs not present behave like
// a missing sheet; a non-nil err fails every read.
type fakeSource struct {
	tabs map[string][][]string
	err  error
}

func (f *fakeSource) Grid(_ context.Context, tab string) ([][]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	grid, ok := f.tabs[tab]
	if !ok {
		return nil, fmt.Errorf("tab %q: %w", tab, store.ErrTabNotFound)
	}
	return grid, nil
}

func (f *fakeSource) Close() error { return nil }

func singleTab(name string, cat model.SourceCategory) []config.ControlTab {
	return []config.ControlTab{{Name: name, Category: cat}}
}

func TestBuildSeparatesEmailsFromIdentities(t *testing.T) {
	src := &fakeSource{tabs: map[string][][]string{
		"BGC": {
			{"900101145678", "A@X.Com"},
			{"  0123456789 ", ""},
		},
	}}

	b, err := NewBuilder(src, singleTab("BGC", model.CategoryBGC), zap.NewNop())
	require.NoError(t, err)

	ix, err := b.Build(context.Background())
	require.NoError(t, err)

	assert.True(t, ix.HasIdentity("900101145678"))
	assert.True(t, ix.HasPhone("900101145678"))
	assert.True(t, ix.HasEmail("a@x.com"))
	assert.False(t, ix.HasIdentity("a@x.com"))

	// Leading zeros are kept on control-list keys.
	assert.True(t, ix.HasIdentity("0123456789"))

	assert.Equal(t, model.CategoryBGC, ix.Category("900101145678"))
	assert.Equal(t, model.CategoryBGC, ix.Category("a@x.com"))
}

func TestBuildDiscardsShortDigitRuns(t *testing.T) {
	src := &fakeSource{tabs: map[string][][]string{
		"BGC": {{"12345", "Section 2", "123456"}},
	}}

	b, err := NewBuilder(src, singleTab("BGC", model.CategoryBGC), zap.NewNop())
	require.NoError(t, err)

	ix, err := b.Build(context.Background())
	require.NoError(t, err)

	assert.False(t, ix.HasIdentity("12345"))
	assert.False(t, ix.HasIdentity("2"))
	assert.True(t, ix.HasIdentity("123456"))
}

func TestBuildDualRegionAttribution(t *testing.T) {
	// Titan block top-left, SPIRE block lower-right, one stray in between.
	grid := [][]string{
		0: {"111111"},
		1: {"222222"},
		5: {"", "", "333333"}, // outside both regions
		7: {"", "", "", "", "", "", "", "444444"},
	}
	src := &fakeSource{tabs: map[string][][]string{"Active Titan/SPIRE": grid}}

	tabs := []config.ControlTab{{
		Name: "Active Titan/SPIRE",
		Regions: []config.CategoryRegion{
			{Category: model.CategoryActiveTitan, Rect: config.Rect{FromRow: 0, ToRow: 5, FromCol: 0, ToCol: 5}},
			{Category: model.CategoryActiveSpire, Rect: config.Rect{FromRow: 7, ToRow: 12, FromCol: 7, ToCol: 12}},
		},
	}}

	b, err := NewBuilder(src, tabs, zap.NewNop())
	require.NoError(t, err)

	ix, err := b.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.CategoryActiveTitan, ix.Category("111111"))
	assert.Equal(t, model.CategoryActiveTitan, ix.Category("222222"))
	assert.Equal(t, model.CategoryActiveSpire, ix.Category("444444"))

	// The stray cell still excludes but carries no category.
	assert.True(t, ix.HasIdentity("333333"))
	assert.Equal(t, model.CategoryNone, ix.Category("333333"))
}

func TestBuildFirstCategoryWins(t *testing.T) {
	src := &fakeSource{tabs: map[string][][]string{
		"Ex-Membership": {{"555555"}},
		"BGC":           {{"555555"}},
	}}

	tabs := []config.ControlTab{
		{Name: "Ex-Membership", Category: model.CategoryExMembership},
		{Name: "BGC", Category: model.CategoryBGC},
	}

	b, err := NewBuilder(src, tabs, zap.NewNop())
	require.NoError(t, err)

	ix, err := b.Build(context.Background())
	require.NoError(t, err)

	assert.Equal(t, model.CategoryExMembership, ix.Category("555555"))
}

func TestBuildSkipsMissingTab(t *testing.T) {
	src := &fakeSource{tabs: map[string][][]string{
		"BGC": {{"123456"}},
	}}

	tabs := []config.ControlTab{
		{Name: "New Intake", Category: model.CategoryNewIntake}, // missing
		{Name: "BGC", Category: model.CategoryBGC},
	}

	b, err := NewBuilder(src, tabs, zap.NewNop())
	require.NoError(t, err)

	ix, err := b.Build(context.Background())
	require.NoError(t, err)

	identity, _, _ := ix.Size()
	assert.Equal(t, 1, identity)
}

func TestBuildPropagatesSourceFailure(t *testing.T) {
	src := &fakeSource{err: errors.New("connection refused")}

	b, err := NewBuilder(src, singleTab("BGC", model.CategoryBGC), zap.NewNop())
	require.NoError(t, err)

	_, err = b.Build(context.Background())
	assert.Error(t, err)
	assert.NotErrorIs(t, err, store.ErrTabNotFound)
}

func TestNewBuilderValidation(t *testing.T) {
	_, err := NewBuilder(nil, singleTab("BGC", model.CategoryBGC), zap.NewNop())
	assert.Error(t, err)

	_, err = NewBuilder(&fakeSource{}, nil, zap.NewNop())
	assert.Error(t, err)

	_, err = NewBuilder(&fakeSource{}, singleTab("BGC", model.CategoryBGC), nil)
	assert.Error(t, err)
}
