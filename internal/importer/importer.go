// Package importer loads legacy bookkeeping workbooks into the SQLite store.
//
// Each sheet becomes its own table (table name = sheet name). The first row
// is the header and supplies column names; every column is stored as TEXT,
// matching the schema the downstream ETL expects to own. An existing table
// with the same name is replaced, not appended to.
package importer

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"compta/database/internal/store"
)

// TableReport describes one imported sheet.
type TableReport struct {
	Sheet string
	Table string
	Rows  int
}

// ImportWorkbook loads every sheet of the workbook into the database at
// sqlitePath, one table per sheet. Sheets without a header row are skipped.
func ImportWorkbook(ctx context.Context, workbookPath, sqlitePath string) ([]TableReport, error) {
	wb, err := excelize.OpenFile(workbookPath)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", workbookPath, err)
	}
	defer wb.Close()

	db, err := store.Open(sqlitePath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var reports []TableReport
	for _, sheet := range wb.GetSheetList() {
		rows, err := wb.GetRows(sheet)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
		}
		if len(rows) == 0 || len(rows[0]) == 0 {
			continue
		}

		count, err := importSheet(ctx, db, sheet, rows[0], rows[1:])
		if err != nil {
			return nil, fmt.Errorf("import sheet %q: %w", sheet, err)
		}
		reports = append(reports, TableReport{Sheet: sheet, Table: sheet, Rows: count})
	}

	return reports, nil
}

// importSheet replaces the sheet's table and inserts all data rows in a
// single transaction.
func importSheet(ctx context.Context, db *sql.DB, sheet string, header []string, data [][]string) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DROP TABLE IF EXISTS %s", quoteIdent(sheet))); err != nil {
		return 0, fmt.Errorf("drop table: %w", err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		columns[i] = quoteIdent(name) + " TEXT"
	}
	createStmt := fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(sheet), strings.Join(columns, ", "))
	if _, err := tx.ExecContext(ctx, createStmt); err != nil {
		return 0, fmt.Errorf("create table: %w", err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(header)), ", ")
	insertStmt := fmt.Sprintf("INSERT INTO %s VALUES (%s)", quoteIdent(sheet), placeholders)
	stmt, err := tx.PrepareContext(ctx, insertStmt)
	if err != nil {
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range data {
		values := make([]any, len(header))
		for i := range header {
			// Short rows are padded with NULL; extra cells are dropped.
			if i < len(row) {
				values[i] = row[i]
			}
		}
		if _, err := stmt.ExecContext(ctx, values...); err != nil {
			return 0, fmt.Errorf("insert row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(data), nil
}

// quoteIdent quotes an identifier coming from workbook content.
func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}
