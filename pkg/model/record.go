// pkg/model/record.go
package model

// Record is one row of an input batch: a mapping from column name to cell
// value. Column order lives on the owning Batch header. Records are mutated
// only by the engine during a run; once placed in an output table they are
// not touched again.
type Record struct {
	cells map[string]Value
}

// NewRecord creates an empty record.
func NewRecord() Record {
	return Record{cells: make(map[string]Value)}
}

// Get returns the value for a column, or Absent when the column is not set.
func (r Record) Get(column string) Value {
	return r.cells[column]
}

// Set stores a value for a column.
func (r Record) Set(column string, v Value) {
	r.cells[column] = v
}

// Delete removes a column from the record.
func (r Record) Delete(column string) {
	delete(r.cells, column)
}

// Row materializes the record as a string slice in the given column order.
// Absent cells become empty strings.
func (r Record) Row(columns []string) []string {
	row := make([]string, len(columns))
	for i, col := range columns {
		row[i] = r.cells[col].String()
	}
	return row
}

// Batch is one uploaded set of records plus its column order.
type Batch struct {
	Sheet   string   // source sheet name, empty when the default sheet was used
	Header  []string // column order as uploaded
	Records []Record
}

// Len returns the number of records in the batch.
func (b *Batch) Len() int {
	return len(b.Records)
}
