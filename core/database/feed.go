package database

import (
	"context"
	"database/sql"
	"fmt"

	"inventory-reconciler/core/table"

	"gorm.io/gorm"
)

// LoadTable reads every row of tableName as text. NULL values become absent cells.
func LoadTable(ctx context.Context, db *gorm.DB, tableName string) (*table.Table, error) {
	db = db.WithContext(ctx)

	columns, err := GetTableColumns(db, tableName)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found", tableName)
	}

	rows, err := db.Table(tableName).Rows()
	if err != nil {
		return nil, fmt.Errorf("failed to query table %s: %w", tableName, err)
	}
	defer rows.Close()

	header, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", tableName, err)
	}

	t := &table.Table{Name: tableName, Columns: header}
	values := make([]sql.NullString, len(header))
	dest := make([]any, len(header))
	for i := range values {
		dest[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", tableName, err)
		}
		row := make(table.Row, len(header))
		for i, col := range header {
			if values[i].Valid {
				row[col] = table.NewCell(values[i].String)
			}
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table %s: %w", tableName, err)
	}

	return t, nil
}
