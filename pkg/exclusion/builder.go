// pkg/exclusion/builder.go
package exclusion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/wjleong/sheet-recon/pkg/config"
	"github.com/wjleong/sheet-recon/pkg/model"
	"github.com/wjleong/sheet-recon/pkg/normalize"
	"github.com/wjleong/sheet-recon/pkg/store"
)

// minIdentityDigits is the shortest digit run treated as a real identifier.
// Anything shorter is stray noise on the control sheet (serial numbers,
// section headings) and is discarded.
const minIdentityDigits = 6

// Builder scans the configured control tabs and produces the exclusion
// index for one run.
type Builder struct {
	source store.ControlSource
	tabs   []config.ControlTab
	logger *zap.Logger
}

// NewBuilder creates a new Builder instance
func NewBuilder(source store.ControlSource, tabs []config.ControlTab, logger *zap.Logger) (*Builder, error) {
	if source == nil {
		return nil, errors.New("control source cannot be nil")
	}
	if len(tabs) == 0 {
		return nil, errors.New("at least one control tab is required")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Builder{
		source: source,
		tabs:   tabs,
		logger: logger,
	}, nil
}

// Build reads every configured control tab and assembles the index. Tabs
// missing from the store are skipped, degrading the index to fewer
// exclusions; every other source failure aborts the build.
func (b *Builder) Build(ctx context.Context) (*Index, error) {
	ix := newIndex()

	for _, tab := range b.tabs {
		grid, err := b.source.Grid(ctx, tab.Name)
		if err != nil {
			if errors.Is(err, store.ErrTabNotFound) {
				b.logger.Warn("Control tab missing, skipping",
					zap.String("tab", tab.Name))
				continue
			}
			return nil, fmt.Errorf("failed to read control tab %q: %w", tab.Name, err)
		}

		b.scanTab(ix, tab, grid)
	}

	identity, email, phone := ix.Size()
	b.logger.Info("Built exclusion index",
		zap.Int("identityKeys", identity),
		zap.Int("emailKeys", email),
		zap.Int("phoneKeys", phone))

	return ix, nil
}

// scanTab folds one control tab's grid into the index.
func (b *Builder) scanTab(ix *Index, tab config.ControlTab, grid [][]string) {
	for r, row := range grid {
		for c, cell := range row {
			raw := strings.TrimSpace(cell)
			if raw == "" {
				continue
			}

			cat := categoryAt(tab, r, c)

			if strings.Contains(raw, "@") {
				key := normalize.Email(raw)
				ix.addEmail(key)
				ix.setCategory(key, cat)
				continue
			}

			digits := normalize.Identity(raw)
			if len(digits) < minIdentityDigits {
				continue
			}
			ix.addIdentity(digits)
			ix.setCategory(digits, cat)
		}
	}
}

// categoryAt resolves the category a cell position attributes. Tabs with
// sub-range regions attribute only inside a region; cells outside every
// region still feed the raw sets but carry no category.
func categoryAt(tab config.ControlTab, row, col int) model.SourceCategory {
	if len(tab.Regions) == 0 {
		return tab.Category
	}
	for _, region := range tab.Regions {
		if region.Rect.Contains(row, col) {
			return region.Category
		}
	}
	return model.CategoryNone
}
