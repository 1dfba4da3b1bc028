package schema

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"db-sync/internal/dialect"
)

// ---------------------------------------------------------------------
// 1. Table Enumeration
// ---------------------------------------------------------------------

// ListTables returns the base tables of the connected source database in the
// order the server lists them. No ordering is imposed here.
func ListTables(ctx context.Context, db *sql.DB, d dialect.Source) ([]string, error) {
	rows, err := db.QueryContext(ctx, d.GetTablesQuery())
	if err != nil {
		return nil, fmt.Errorf("failed to query tables: %w", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tables: %w", err)
	}
	return tables, nil
}

// ---------------------------------------------------------------------
// 2. Structural Definition
// ---------------------------------------------------------------------

// FetchCreateTable returns the dialect-native CREATE TABLE text of a table.
func FetchCreateTable(ctx context.Context, db *sql.DB, d dialect.Source, table string) (string, error) {
	var name, ddl sql.NullString
	if err := db.QueryRowContext(ctx, d.ShowCreateTableQuery(table)).Scan(&name, &ddl); err != nil {
		return "", fmt.Errorf("failed to fetch definition of %s: %w", table, err)
	}
	if !ddl.Valid || strings.TrimSpace(ddl.String) == "" {
		return "", fmt.Errorf("empty definition returned for %s", table)
	}
	return ddl.String, nil
}

// ---------------------------------------------------------------------
// 3. Selection & Ordering
// ---------------------------------------------------------------------

// FilterTables keeps the tables named in include (all tables when include is
// empty) and drops those named in exclude. Matching is case-insensitive and
// the input order is preserved.
func FilterTables(tables, include, exclude []string) []string {
	req := lowerSet(include)
	skip := lowerSet(exclude)

	var out []string
	for _, t := range tables {
		key := strings.ToLower(t)
		if len(req) > 0 && !req[key] {
			continue
		}
		if skip[key] {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SortTables returns a lexicographically ordered copy for reproducible runs.
func SortTables(tables []string) []string {
	sorted := append([]string(nil), tables...)
	sort.Strings(sorted)
	return sorted
}

func lowerSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n != "" {
			set[strings.ToLower(n)] = true
		}
	}
	return set
}
