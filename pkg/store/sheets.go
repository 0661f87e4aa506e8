// pkg/store/sheets.go
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/sheets/v4"

	"github.com/wjleong/sheet-recon/pkg/config"
)

// SheetsStore reads control lists from one Google spreadsheet and writes
// result tables to another. The sheets service is injected already
// authorized; this type performs no authentication.
type SheetsStore struct {
	svc    *sheets.Service
	cfg    *config.SheetsConfig
	logger *zap.Logger
}

// NewSheetsStore wraps an authorized sheets service.
func NewSheetsStore(svc *sheets.Service, cfg *config.SheetsConfig) (*SheetsStore, error) {
	if svc == nil {
		return nil, errors.New("sheets service cannot be nil")
	}
	if cfg == nil {
		return nil, errors.New("sheets configuration cannot be nil")
	}

	return &SheetsStore{
		svc:    svc,
		cfg:    cfg,
		logger: zap.L().Named("sheets-store"),
	}, nil
}

// Grid returns every cell of the named control tab as rows of strings.
// A tab absent from the control spreadsheet yields ErrTabNotFound.
func (s *SheetsStore) Grid(ctx context.Context, tab string) ([][]string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	resp, err := s.svc.Spreadsheets.Values.Get(s.cfg.ControlSpreadsheetID, quoteTab(tab)).
		Context(reqCtx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == 400 {
			// The Sheets API reports an unknown tab as an unparseable range.
			return nil, fmt.Errorf("tab %q: %w", tab, ErrTabNotFound)
		}
		return nil, fmt.Errorf("failed to read tab %q: %w", tab, err)
	}

	grid := make([][]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = fmt.Sprintf("%v", cell)
		}
		grid = append(grid, cells)
	}

	s.logger.Debug("Read control tab",
		zap.String("tab", tab),
		zap.Int("rows", len(grid)))

	return grid, nil
}

// EnsureTable creates the named tab on the master spreadsheet if missing.
func (s *SheetsStore) EnsureTable(ctx context.Context, name string, rows int) error {
	reqCtx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	meta, err := s.svc.Spreadsheets.Get(s.cfg.MasterSpreadsheetID).
		Fields("sheets.properties.title").Context(reqCtx).Do()
	if err != nil {
		return fmt.Errorf("failed to inspect master spreadsheet: %w", err)
	}

	for _, sheet := range meta.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == name {
			return nil
		}
	}

	if rows < 1 {
		rows = 1
	}
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{
					Title: name,
					GridProperties: &sheets.GridProperties{
						RowCount:    int64(rows) + 1, // header row
						ColumnCount: 26,
					},
				},
			},
		}},
	}

	if _, err := s.svc.Spreadsheets.BatchUpdate(s.cfg.MasterSpreadsheetID, req).
		Context(reqCtx).Do(); err != nil {
		return fmt.Errorf("failed to create tab %q: %w", name, err)
	}

	s.logger.Info("Created result tab", zap.String("tab", name))
	return nil
}

// Clear removes all contents of the named tab on the master spreadsheet.
func (s *SheetsStore) Clear(ctx context.Context, name string) error {
	reqCtx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	_, err := s.svc.Spreadsheets.Values.Clear(s.cfg.MasterSpreadsheetID, quoteTab(name),
		&sheets.ClearValuesRequest{}).Context(reqCtx).Do()
	if err != nil {
		return fmt.Errorf("failed to clear tab %q: %w", name, err)
	}
	return nil
}

// Write stores the header row followed by the data rows on the named tab.
func (s *SheetsStore) Write(ctx context.Context, name string, header []string, rows [][]string) error {
	reqCtx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	values := make([][]interface{}, 0, len(rows)+1)
	values = append(values, toInterfaceRow(header))
	for _, row := range rows {
		values = append(values, toInterfaceRow(row))
	}

	_, err := s.svc.Spreadsheets.Values.Update(s.cfg.MasterSpreadsheetID,
		quoteTab(name)+"!A1", &sheets.ValueRange{Values: values}).
		ValueInputOption("RAW").Context(reqCtx).Do()
	if err != nil {
		return fmt.Errorf("failed to write tab %q: %w", name, err)
	}

	s.logger.Info("Wrote result tab",
		zap.String("tab", name),
		zap.Int("rows", len(rows)))

	return nil
}

// Location returns the master spreadsheet URL.
func (s *SheetsStore) Location() string {
	return "https://docs.google.com/spreadsheets/d/" + s.cfg.MasterSpreadsheetID
}

// Close is a no-op; the sheets client holds no pooled resources.
func (s *SheetsStore) Close() error {
	return nil
}

// quoteTab wraps a tab name in single quotes for use in an A1 range.
func quoteTab(tab string) string {
	return "'" + strings.ReplaceAll(tab, "'", "''") + "'"
}

func toInterfaceRow(row []string) []interface{} {
	out := make([]interface{}, len(row))
	for i, cell := range row {
		out[i] = cell
	}
	return out
}
