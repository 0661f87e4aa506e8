// pkg/batch/batch.go
package batch

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/wjleong/sheet-recon/pkg/model"
)

// Parse reads an uploaded xlsx workbook into a Batch. When sheet is empty
// the first sheet in the workbook is used. The header row is taken verbatim;
// data rows shorter than the header are padded with absent values and rows
// that are entirely empty are dropped.
func Parse(data []byte, sheet string) (*model.Batch, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheet)
	}

	header := rows[0]
	b := &model.Batch{
		Sheet:   sheet,
		Header:  header,
		Records: make([]model.Record, 0, len(rows)-1),
	}

	for _, row := range rows[1:] {
		if emptyRow(row) {
			continue
		}
		rec := model.NewRecord()
		for i, col := range header {
			if i < len(row) {
				rec.Set(col, model.NewValue(row[i]))
			} else {
				rec.Set(col, model.Absent)
			}
		}
		b.Records = append(b.Records, rec)
	}

	return b, nil
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}
