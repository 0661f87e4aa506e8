// pkg/store/sql.go
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	_ "github.com/snowflakedb/gosnowflake"
	"go.uber.org/zap"

	"github.com/wjleong/sheet-recon/pkg/config"
)

// SQLStore is a tabular store over a SQL database. Tabs and result tables
// map onto relations holding one row per cell:
//
//	(row_index INTEGER, col_index INTEGER, cell TEXT)
//
// which keeps the layout identical across postgres (result sink or control
// mirror) and snowflake (read-only control mirror).
type SQLStore struct {
	db           *sqlx.DB
	queryTimeout time.Duration
	location     string
	logger       *zap.Logger
}

// NewPostgresStore connects to PostgreSQL and returns a store usable as
// both control source and result sink.
func NewPostgresStore(ctx context.Context, cfg *config.PostgresConfig) (*SQLStore, error) {
	logger := zap.L().Named("postgres-store")

	logger.Info("Connecting to PostgreSQL",
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.String("user", cfg.User))

	db, err := sqlx.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize PostgreSQL connection: %w", err)
	}

	ApplyConnectionSettings(db, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime, cfg.ConnMaxIdleTime)

	if err := PingWithTimeout(ctx, db, 5*time.Second); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}

	LogConnectionStats(logger, cfg.Database, db)

	return &SQLStore{
		db:           db,
		queryTimeout: cfg.StatementTimeout,
		location:     fmt.Sprintf("postgres://%s:%d/%s", cfg.Host, cfg.Port, cfg.Database),
		logger:       logger,
	}, nil
}

// NewSnowflakeStore connects to Snowflake, where mirrored control lists
// live. The result sink side of the interface is not supported.
func NewSnowflakeStore(ctx context.Context, cfg *config.SnowflakeConfig) (*SQLStore, error) {
	logger := zap.L().Named("snowflake-store")

	logger.Info("Connecting to Snowflake",
		zap.String("account", cfg.Account),
		zap.String("database", cfg.Database),
		zap.String("warehouse", cfg.Warehouse),
		zap.String("user", cfg.User))

	db, err := sqlx.Open("snowflake", cfg.ConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Snowflake connection: %w", err)
	}

	ApplyConnectionSettings(db, cfg.MaxOpenConns, cfg.MaxIdleConns, cfg.ConnMaxLifetime, cfg.ConnMaxIdleTime)

	if err := PingWithTimeout(ctx, db, 10*time.Second); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to Snowflake: %w", err)
	}

	LogConnectionStats(logger, cfg.Database, db)

	return &SQLStore{
		db:           db,
		queryTimeout: cfg.QueryTimeout,
		location:     fmt.Sprintf("snowflake://%s/%s", cfg.Account, cfg.Database),
		logger:       logger,
	}, nil
}

// Grid returns every cell of the named tab's relation as rows of strings.
// A relation that does not exist yields ErrTabNotFound.
func (s *SQLStore) Grid(ctx context.Context, tab string) ([][]string, error) {
	queryCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	var cells []struct {
		RowIndex int    `db:"row_index"`
		ColIndex int    `db:"col_index"`
		Cell     string `db:"cell"`
	}

	query := fmt.Sprintf(
		"SELECT row_index, col_index, cell FROM %s ORDER BY row_index, col_index",
		relationName(tab))
	if err := s.db.SelectContext(queryCtx, &cells, query); err != nil {
		if isMissingRelation(err) {
			return nil, fmt.Errorf("tab %q: %w", tab, ErrTabNotFound)
		}
		return nil, fmt.Errorf("failed to read tab %q: %w", tab, err)
	}

	var grid [][]string
	for _, c := range cells {
		for len(grid) <= c.RowIndex {
			grid = append(grid, nil)
		}
		row := grid[c.RowIndex]
		for len(row) <= c.ColIndex {
			row = append(row, "")
		}
		row[c.ColIndex] = c.Cell
		grid[c.RowIndex] = row
	}

	s.logger.Debug("Read control tab",
		zap.String("tab", tab),
		zap.Int("rows", len(grid)))

	return grid, nil
}

// EnsureTable creates the relation for the named table if it does not
// exist. The row capacity hint is meaningless for SQL and is ignored.
func (s *SQLStore) EnsureTable(ctx context.Context, name string, rows int) error {
	queryCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	createSQL := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			row_index INTEGER NOT NULL,
			col_index INTEGER NOT NULL,
			cell TEXT NOT NULL
		)`, relationName(name))

	if _, err := s.db.ExecContext(queryCtx, createSQL); err != nil {
		return fmt.Errorf("failed to create table %q: %w", name, err)
	}
	return nil
}

// Clear removes all contents of the named table.
func (s *SQLStore) Clear(ctx context.Context, name string) error {
	queryCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	query := fmt.Sprintf("DELETE FROM %s", relationName(name))
	if _, err := s.db.ExecContext(queryCtx, query); err != nil {
		return fmt.Errorf("failed to clear table %q: %w", name, err)
	}
	return nil
}

// Write stores the header row at index 0 followed by the data rows.
func (s *SQLStore) Write(ctx context.Context, name string, header []string, rows [][]string) error {
	all := make([][]string, 0, len(rows)+1)
	all = append(all, header)
	all = append(all, rows...)

	const batchSize = 500

	type cellArg struct {
		row, col int
		cell     string
	}
	var pending []cellArg
	for r, row := range all {
		for c, cell := range row {
			pending = append(pending, cellArg{row: r, col: c, cell: cell})
		}
	}

	for start := 0; start < len(pending); start += batchSize {
		end := start + batchSize
		if end > len(pending) {
			end = len(pending)
		}
		batch := pending[start:end]

		placeholders := make([]string, len(batch))
		args := make([]interface{}, 0, len(batch)*3)
		for i, c := range batch {
			placeholders[i] = "(?, ?, ?)"
			args = append(args, c.row, c.col, c.cell)
		}

		query := s.db.Rebind(fmt.Sprintf(
			"INSERT INTO %s (row_index, col_index, cell) VALUES %s",
			relationName(name), strings.Join(placeholders, ", ")))

		queryCtx, cancel := context.WithTimeout(ctx, s.queryTimeout)
		_, err := s.db.ExecContext(queryCtx, query, args...)
		cancel()
		if err != nil {
			return fmt.Errorf("failed to write table %q: %w", name, err)
		}
	}

	s.logger.Info("Wrote result table",
		zap.String("table", name),
		zap.Int("rows", len(rows)))

	return nil
}

// Location returns a URL identifying the backing database.
func (s *SQLStore) Location() string {
	return s.location
}

// Close closes the database connection.
func (s *SQLStore) Close() error {
	s.logger.Info("Closing store connection")
	return s.db.Close()
}

// relationName maps a tab or table name onto a safe SQL identifier:
// lowercased, non-alphanumerics collapsed to underscores.
func relationName(name string) string {
	var sb strings.Builder
	lastUnderscore := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				sb.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	out := strings.Trim(sb.String(), "_")
	if out == "" || (out[0] >= '0' && out[0] <= '9') {
		out = "t_" + out
	}
	return out
}

// isMissingRelation detects an undefined-table error from either driver.
func isMissingRelation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "42P01" // undefined_table
	}
	return strings.Contains(strings.ToLower(err.Error()), "does not exist")
}
