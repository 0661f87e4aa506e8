package recon

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wjleong/sheet-recon/pkg/batch"
	"github.com/wjleong/sheet-recon/pkg/config"
	"github.com/wjleong/sheet-recon/pkg/exclusion"
	"github.com/wjleong/sheet-recon/pkg/model"
	"github.com/wjleong/sheet-recon/pkg/normalize"
	"github.com/wjleong/sheet-recon/pkg/schema"
	"github.com/wjleong/sheet-recon/pkg/store"
)

// Output table names and the status column on the excluded table.
const (
	TableCleaned      = "Cleaned"
	TableExcluded     = "Excluded"
	FinalStatusColumn = "FinalStatus"
)

// DefaultCountryCode is applied when the caller supplies none.
const DefaultCountryCode = "60"

// Options are the caller-supplied parameters of one run.
type Options struct {
	Sheet       string // sheet-name selector, empty for the first sheet
	CountryCode string // phone display prefix, DefaultCountryCode when empty
}

// Engine orchestrates one reconciliation run: load, resolve columns,
// normalize, classify against the exclusion index, split, tag, publish.
// Runs are request-scoped and share no mutable state; the exclusion index
// is rebuilt fresh on every run.
type Engine struct {
	source store.ControlSource
	sink   store.ResultSink
	tabs   []config.ControlTab
	logger *zap.Logger
}

// NewEngine creates a new Engine instance
func NewEngine(source store.ControlSource, sink store.ResultSink, tabs []config.ControlTab, logger *zap.Logger) (*Engine, error) {
	if source == nil {
		return nil, errors.New("control source cannot be nil")
	}
	if sink == nil {
		return nil, errors.New("result sink cannot be nil")
	}
	if len(tabs) == 0 {
		return nil, errors.New("at least one control tab is required")
	}
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	return &Engine{
		source: source,
		sink:   sink,
		tabs:   tabs,
		logger: logger,
	}, nil
}

// Run processes one uploaded batch to completion. Failures surface as a
// structured ERROR result, never as a panic or partial write: nothing is
// published after a failed state.
func (e *Engine) Run(ctx context.Context, upload []byte, opts Options) model.Result {
	runID := uuid.New().String()
	logger := e.logger.With(zap.String("runID", runID))
	started := time.Now()

	logger.Info("Starting reconciliation run",
		zap.String("sheet", opts.Sheet),
		zap.Int("uploadBytes", len(upload)))

	summary, runErr := e.execute(ctx, logger, upload, opts)
	if runErr != nil {
		logger.Error("Reconciliation run failed",
			zap.String("state", runErr.State.String()),
			zap.String("code", runErr.Code.String()),
			zap.Duration("duration", time.Since(started)),
			zap.Error(runErr.Err))
		return model.ErrorResult(runErr.Message)
	}

	logger.Info("Reconciliation run completed",
		zap.Int("totalRaw", summary.TotalRaw),
		zap.Int("totalCleaned", summary.TotalCleaned),
		zap.Int("totalExcluded", summary.TotalExcluded),
		zap.Duration("duration", time.Since(started)))

	return model.OKResult(*summary, e.sink.Location())
}

// execute advances the run through its states and returns the summary, or
// the error that moved it to Failed.
func (e *Engine) execute(ctx context.Context, logger *zap.Logger, upload []byte, opts Options) (*model.Summary, *RunError) {
	countryCode := opts.CountryCode
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}

	// Loading
	logger.Debug("State transition", zap.String("state", StateLoading.String()))
	b, err := batch.Parse(upload, opts.Sheet)
	if err != nil {
		return nil, newRunError(CodeUnreadableInput, StateLoading,
			"Failed to read Excel: "+err.Error(), err)
	}

	// Resolving
	logger.Debug("State transition", zap.String("state", StateResolving.String()))
	cols := schema.Resolve(b.Header)
	if cols.Empty() {
		return nil, newRunError(CodeNoRecognizedColumns, StateResolving,
			"No IC, Email, or Phone column found", nil)
	}
	logger.Info("Resolved columns",
		zap.String("identity", cols.Identity),
		zap.String("email", cols.Email),
		zap.String("phone", cols.Phone))

	// Normalizing
	logger.Debug("State transition", zap.String("state", StateNormalizing.String()))
	keys := computeKeys(b, cols)

	// Classifying
	logger.Debug("State transition", zap.String("state", StateClassifying.String()))
	builder, err := exclusion.NewBuilder(e.source, e.tabs, logger)
	if err != nil {
		return nil, newRunError(CodeControlListUnavailable, StateClassifying,
			"Failed to access control sheet: "+err.Error(), err)
	}
	ix, err := builder.Build(ctx)
	if err != nil {
		return nil, newRunError(CodeControlListUnavailable, StateClassifying,
			"Failed to access control sheet: "+err.Error(), err)
	}
	statuses := classify(keys, ix)

	// Splitting
	logger.Debug("State transition", zap.String("state", StateSplitting.String()))
	var cleaned, excluded []int
	for i, status := range statuses {
		if status.Excluded() {
			excluded = append(excluded, i)
		} else {
			cleaned = append(cleaned, i)
		}
	}
	if cols.Phone != "" {
		for _, i := range cleaned {
			rec := b.Records[i]
			display := normalize.PhoneDisplay(rec.Get(cols.Phone).String(), countryCode)
			rec.Set(cols.Phone, model.NewValue(display))
		}
	}

	// Tagging
	logger.Debug("State transition", zap.String("state", StateTagging.String()))
	for _, i := range excluded {
		rec := b.Records[i]
		rec.Set(FinalStatusColumn, model.NewValue(statuses[i].String()))
		tagRecord(rec, keys[i], ix)
	}

	// Publishing
	logger.Debug("State transition", zap.String("state", StatePublishing.String()))
	cleanedRows := make([][]string, 0, len(cleaned))
	for _, i := range cleaned {
		cleanedRows = append(cleanedRows, b.Records[i].Row(b.Header))
	}

	excludedHeader := make([]string, 0, len(b.Header)+1+len(model.TagColumns))
	excludedHeader = append(excludedHeader, b.Header...)
	excludedHeader = append(excludedHeader, FinalStatusColumn)
	excludedHeader = append(excludedHeader, model.TagColumns...)

	excludedRows := make([][]string, 0, len(excluded))
	for _, i := range excluded {
		excludedRows = append(excludedRows, b.Records[i].Row(excludedHeader))
	}

	if err := e.publish(ctx, TableCleaned, b.Header, cleanedRows); err != nil {
		return nil, newRunError(CodeResultSinkUnavailable, StatePublishing,
			"Failed to write results: "+err.Error(), err)
	}
	if err := e.publish(ctx, TableExcluded, excludedHeader, excludedRows); err != nil {
		return nil, newRunError(CodeResultSinkUnavailable, StatePublishing,
			"Failed to write results: "+err.Error(), err)
	}

	// Done
	logger.Debug("State transition", zap.String("state", StateDone.String()))
	return &model.Summary{
		TotalRaw:      b.Len(),
		TotalCleaned:  len(cleanedRows),
		TotalExcluded: len(excludedRows),
	}, nil
}

// publish overwrites one result table: get-or-create, clear, write.
func (e *Engine) publish(ctx context.Context, name string, header []string, rows [][]string) error {
	if err := e.sink.EnsureTable(ctx, name, len(rows)); err != nil {
		return err
	}
	if err := e.sink.Clear(ctx, name); err != nil {
		return err
	}
	return e.sink.Write(ctx, name, header, rows)
}
