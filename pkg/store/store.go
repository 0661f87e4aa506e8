// pkg/store/store.go
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ErrTabNotFound reports that a named control tab does not exist in the
// store. It is the one recoverable store condition: the exclusion index
// builder skips the tab instead of failing the run.
var ErrTabNotFound = errors.New("tab not found")

// ControlSource is the read-only boundary to the control-list store.
type ControlSource interface {
	// Grid returns every cell of the named tab as rows of strings.
	Grid(ctx context.Context, tab string) ([][]string, error)

	// Close releases the underlying client resources.
	Close() error
}

// ResultSink is the boundary the engine publishes result tables to. Writes
// follow get-or-create, clear, write-all semantics; the sink owns making the
// overwrite look atomic to the next reader.
type ResultSink interface {
	// EnsureTable creates the named table if it does not exist, sized for
	// the given initial row capacity.
	EnsureTable(ctx context.Context, name string, rows int) error

	// Clear removes all contents of the named table.
	Clear(ctx context.Context, name string) error

	// Write stores the header row followed by the data rows.
	Write(ctx context.Context, name string, header []string, rows [][]string) error

	// Location returns a URL pointing a human at the written tables.
	Location() string

	// Close releases the underlying client resources.
	Close() error
}

// PingWithTimeout attempts to ping a database with a timeout
func PingWithTimeout(ctx context.Context, db *sqlx.DB, timeout time.Duration) error {
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		errCh <- db.PingContext(pingCtx)
	}()

	select {
	case err := <-errCh:
		return err
	case <-pingCtx.Done():
		return fmt.Errorf("ping timed out after %v: %w", timeout, pingCtx.Err())
	}
}

// ApplyConnectionSettings configures database connection pool settings
func ApplyConnectionSettings(db *sqlx.DB, maxOpen, maxIdle int, maxLifetime, maxIdleTime time.Duration) {
	if maxOpen > 0 {
		db.SetMaxOpenConns(maxOpen)
	}
	if maxIdle > 0 {
		db.SetMaxIdleConns(maxIdle)
	}
	if maxLifetime > 0 {
		db.SetConnMaxLifetime(maxLifetime)
	}
	if maxIdleTime > 0 {
		db.SetConnMaxIdleTime(maxIdleTime)
	}
}

// LogConnectionStats logs connection pool statistics
func LogConnectionStats(logger *zap.Logger, name string, db *sqlx.DB) {
	stats := db.Stats()
	logger.Debug("Connection pool stats",
		zap.String("database", name),
		zap.Int("open_connections", stats.OpenConnections),
		zap.Int("in_use", stats.InUse),
		zap.Int("idle", stats.Idle),
		zap.Int("max_open", stats.MaxOpenConnections),
	)
}
