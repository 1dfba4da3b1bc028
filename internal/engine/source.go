package engine

import (
	"context"
	"database/sql"
	"fmt"

	"db-sync/internal/dialect"
	"db-sync/internal/schema"
)

// Source is the read side of a sync run.
type Source interface {
	ListTables(ctx context.Context) ([]string, error)
	CreateTableDDL(ctx context.Context, table string) (string, error)
	ReadRows(ctx context.Context, table string) (*RowSet, error)
}

// RowSet holds every row of a table. Values in each row follow Columns.
type RowSet struct {
	Columns []string
	Rows    [][]any
}

// SQLSource reads from a database/sql connection using a source dialect.
type SQLSource struct {
	db      *sql.DB
	dialect dialect.Source
}

var _ Source = (*SQLSource)(nil)

func NewSQLSource(db *sql.DB, d dialect.Source) *SQLSource {
	return &SQLSource{db: db, dialect: d}
}

func (s *SQLSource) ListTables(ctx context.Context) ([]string, error) {
	return schema.ListTables(ctx, s.db, s.dialect)
}

func (s *SQLSource) CreateTableDDL(ctx context.Context, table string) (string, error) {
	return schema.FetchCreateTable(ctx, s.db, s.dialect, table)
}

// ReadRows performs an unconditional full-table read. Textual values that
// the driver hands back as []byte are returned as strings so the target
// driver binds them as text; binary columns keep their bytes.
func (s *SQLSource) ReadRows(ctx context.Context, table string) (*RowSet, error) {
	rows, err := s.db.QueryContext(ctx, s.dialect.SelectAllQuery(table))
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of %s: %w", table, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read column types of %s: %w", table, err)
	}
	binary := make([]bool, len(cols))
	for i, ct := range types {
		binary[i] = s.dialect.IsBinaryType(ct.DatabaseTypeName())
	}

	rs := &RowSet{Columns: cols}
	for rows.Next() {
		values := make([]any, len(cols))
		pointers := make([]any, len(cols))
		for i := range values {
			pointers[i] = &values[i]
		}
		if err := rows.Scan(pointers...); err != nil {
			return nil, fmt.Errorf("failed to scan row of %s: %w", table, err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok && !binary[i] {
				values[i] = string(b)
			}
		}
		rs.Rows = append(rs.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows of %s: %w", table, err)
	}
	return rs, nil
}
