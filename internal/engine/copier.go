package engine

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"db-sync/internal/dialect"
)

// DefaultBatchSize is the number of rows per INSERT statement when the
// bind parameter limit does not force a smaller batch.
const DefaultBatchSize = 1000

var errNoColumns = errors.New("no columns to insert")

// Execer is satisfied by *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Copier writes a RowSet to the target with multi-row INSERT statements.
type Copier struct {
	Dialect   dialect.Target
	BatchSize int
}

func NewCopier(d dialect.Target, batchSize int) *Copier {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &Copier{Dialect: d, BatchSize: batchSize}
}

// rowsPerStatement bounds the batch so one statement never exceeds the
// dialect's bind parameter limit.
func (c *Copier) rowsPerStatement(columns int) int {
	n := c.BatchSize
	if n <= 0 {
		n = DefaultBatchSize
	}
	if limit := c.Dialect.MaxParams() / columns; limit < n {
		n = limit
	}
	if n < 1 {
		n = 1
	}
	return n
}

// Copy inserts every row of rs into schemaName.table through ex. Callers run
// it inside the table's transaction: on error nothing is assumed committed.
// An empty RowSet issues no statements.
func (c *Copier) Copy(ctx context.Context, ex Execer, schemaName, table string, rs *RowSet) (int64, error) {
	if rs == nil || len(rs.Rows) == 0 {
		return 0, nil
	}
	if len(rs.Columns) == 0 {
		return 0, fmt.Errorf("copy %s: %w", table, errNoColumns)
	}

	width := len(rs.Columns)
	batch := c.rowsPerStatement(width)

	var copied int64
	for start := 0; start < len(rs.Rows); start += batch {
		end := min(start+batch, len(rs.Rows))
		chunk := rs.Rows[start:end]

		args := make([]any, 0, len(chunk)*width)
		for i, row := range chunk {
			if len(row) != width {
				return copied, fmt.Errorf("copy %s: row %d has %d values, expected %d", table, start+i+1, len(row), width)
			}
			// nil stays nil so the target stores NULL; other values are
			// bound natively by the target driver.
			args = append(args, row...)
		}

		query := c.Dialect.InsertQuery(schemaName, table, rs.Columns, len(chunk))
		if _, err := ex.ExecContext(ctx, query, args...); err != nil {
			return copied, fmt.Errorf("copy %s rows %d-%d: %w", table, start+1, end, err)
		}
		copied += int64(len(chunk))
	}
	return copied, nil
}
