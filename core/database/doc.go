// Package database connects to relational stores used as feeds and export targets.
//
// It wraps GORM to configure MySQL or SQLite connections from the application's
// configuration.
//
// # Feeds
//
// LoadTable reads an entire database table into a table.Table so that inventory
// held in a database can be reconciled like a file. Column names come from the
// schema inspector and every value is read as text; NULL becomes an absent cell.
//
// # Export
//
// ExportResult writes a reconciliation result into two tables,
// <prefix>_results and <prefix>_summary. Both are dropped and recreated on every
// export, so they always hold the latest run only.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	tbl, err := database.LoadTable(ctx, db, "warehouse_stock")
package database
