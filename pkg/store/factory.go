// pkg/store/factory.go
package store

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/wjleong/sheet-recon/pkg/config"
)

// Factory creates store clients per the configured backends.
type Factory struct {
	cfg    *config.Config
	logger *zap.Logger

	// Shared sheets store, built once when both roles use the sheets backend.
	sheetsStore *SheetsStore
}

// NewFactory creates a new store factory
func NewFactory(cfg *config.Config, logger *zap.Logger) *Factory {
	return &Factory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateControlSource creates the control-list source for the configured backend.
func (f *Factory) CreateControlSource(ctx context.Context) (ControlSource, error) {
	f.logger.Info("Creating control source",
		zap.String("backend", f.cfg.ControlBackend))

	switch f.cfg.ControlBackend {
	case config.BackendSheets:
		return f.sheets(ctx)
	case config.BackendPostgres:
		return NewPostgresStore(ctx, f.cfg.Postgres)
	case config.BackendSnowflake:
		return NewSnowflakeStore(ctx, f.cfg.Snowflake)
	default:
		return nil, fmt.Errorf("unknown control backend: %s", f.cfg.ControlBackend)
	}
}

// CreateResultSink creates the result sink for the configured backend.
func (f *Factory) CreateResultSink(ctx context.Context) (ResultSink, error) {
	f.logger.Info("Creating result sink",
		zap.String("backend", f.cfg.SinkBackend))

	switch f.cfg.SinkBackend {
	case config.BackendSheets:
		return f.sheets(ctx)
	case config.BackendPostgres:
		return NewPostgresStore(ctx, f.cfg.Postgres)
	default:
		return nil, fmt.Errorf("unknown sink backend: %s", f.cfg.SinkBackend)
	}
}

// sheets builds the shared sheets store on first use.
func (f *Factory) sheets(ctx context.Context) (*SheetsStore, error) {
	if f.sheetsStore != nil {
		return f.sheetsStore, nil
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsFile(f.cfg.Sheets.CredentialsFile),
		option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	s, err := NewSheetsStore(svc, f.cfg.Sheets)
	if err != nil {
		return nil, err
	}
	f.sheetsStore = s
	return s, nil
}
