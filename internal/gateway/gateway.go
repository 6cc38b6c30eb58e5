// Package gateway executes caller-supplied SQL against the embedded store.
//
// Statements are classified lexically, never by engine behavior: a trimmed,
// case-folded "select" prefix means a read, everything else is a write. A
// read returns the full, ordered result set materialized in memory (no
// streaming or pagination); a write returns the affected-row count reported
// by the engine.
package gateway

import (
	"context"
	"database/sql"
	"strings"
)

// Result is the outcome of executing one statement. Exactly one of Rows or
// RowsAffected is meaningful, selected by IsRead.
type Result struct {
	IsRead bool

	// Rows holds one mapping per result row, keyed by column name, in the
	// order the engine returned them. Never nil for a read.
	Rows []map[string]any

	// RowsAffected is the engine-reported count for a write.
	RowsAffected int64
}

// Classify reports whether the statement is a read.
// The check is a case-insensitive "select" prefix on the trimmed text.
func Classify(statement string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(statement)), "select")
}

// Execute runs one statement on an already-open connection.
//
// The caller owns the connection lifecycle; Execute does not close it. Any
// engine-level failure (syntax error, missing table, constraint violation,
// scan fault) is returned as an *ExecutionError carrying the engine message.
func Execute(ctx context.Context, db *sql.DB, statement string) (*Result, error) {
	if Classify(statement) {
		return executeRead(ctx, db, statement)
	}
	return executeWrite(ctx, db, statement)
}

func executeRead(ctx context.Context, db *sql.DB, statement string) (*Result, error) {
	rows, err := db.QueryContext(ctx, statement)
	if err != nil {
		return nil, &ExecutionError{Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, &ExecutionError{Err: err}
	}

	// Empty slice, not nil: a select with no matches is still a row sequence.
	result := []map[string]any{}
	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, &ExecutionError{Err: err}
		}

		row := make(map[string]any, len(columns))
		for i, column := range columns {
			row[column] = normalizeValue(values[i])
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, &ExecutionError{Err: err}
	}

	return &Result{IsRead: true, Rows: result}, nil
}

func executeWrite(ctx context.Context, db *sql.DB, statement string) (*Result, error) {
	res, err := db.ExecContext(ctx, statement)
	if err != nil {
		return nil, &ExecutionError{Err: err}
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, &ExecutionError{Err: err}
	}

	return &Result{RowsAffected: affected}, nil
}

// normalizeValue maps driver values to JSON-friendly types.
// SQLite TEXT columns scan as []byte through database/sql.
func normalizeValue(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
