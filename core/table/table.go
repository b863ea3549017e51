package table

// Cell is a raw value read from a table. Valid is false when the value is absent.
type Cell struct {
	Value string
	Valid bool
}

// NewCell returns a present cell holding s.
func NewCell(s string) Cell {
	return Cell{Value: s, Valid: true}
}

// Null is the absent cell.
var Null = Cell{}

// Row maps column names to cells. A column missing from the map is absent.
type Row map[string]Cell

// Get returns the cell for column, or Null when the row has no such column.
func (r Row) Get(column string) Cell {
	if c, ok := r[column]; ok {
		return c
	}
	return Null
}

// Table is an in-memory dataset with a fixed header.
type Table struct {
	// Name identifies the table in logs and errors (file name, object key, db table).
	Name string
	// Columns is the header in input order.
	Columns []string
	// Rows holds the data rows.
	Rows []Row
	// Malformed counts input lines skipped by the reader.
	Malformed int
}

// New builds a table from a header and string records. Records shorter than the
// header yield absent cells for the missing columns.
func New(name string, columns []string, records [][]string) *Table {
	t := &Table{Name: name, Columns: columns, Rows: make([]Row, 0, len(records))}
	for _, rec := range records {
		row := make(Row, len(columns))
		for i, col := range columns {
			if i < len(rec) {
				row[col] = NewCell(rec[i])
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the header contains column.
func (t *Table) HasColumn(column string) bool {
	for _, c := range t.Columns {
		if c == column {
			return true
		}
	}
	return false
}

// MissingColumns returns the names from want that are not in the header,
// in the order given and without duplicates.
func (t *Table) MissingColumns(want []string) []string {
	var missing []string
	seen := make(map[string]struct{}, len(want))
	for _, c := range want {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}
