package dialect

import (
	"fmt"
	"strings"

	"github.com/lib/pq"
)

// postgresMaxParams is the bind parameter limit of the PostgreSQL wire protocol.
const postgresMaxParams = 65535

type PostgresDialect struct{}

func (d *PostgresDialect) Name() string {
	return "postgres"
}

func (d *PostgresDialect) QuoteIdentifier(name string) string {
	return pq.QuoteIdentifier(name)
}

func (d *PostgresDialect) QualifiedName(schema, table string) string {
	return d.QuoteIdentifier(d.getSchema(schema)) + "." + d.QuoteIdentifier(table)
}

func (d *PostgresDialect) DefaultSchema() string {
	return "public"
}

// Helper to fix schema name if needed (usually public)
func (d *PostgresDialect) getSchema(schema string) string {
	if schema == "" {
		return d.DefaultSchema()
	}
	return schema
}

func (d *PostgresDialect) DropTableQuery(schema, table string) string {
	return fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", d.QualifiedName(schema, table))
}

// InsertQuery builds a single multi-row INSERT for rowCount rows. Placeholders
// are numbered row-major, matching a flattened argument slice.
func (d *PostgresDialect) InsertQuery(schema, table string, cols []string, rowCount int) string {
	tuples := make([]string, rowCount)
	for r := 0; r < rowCount; r++ {
		tuples[r] = "(" + GeneratePlaceholders(len(cols), r*len(cols), d.Placeholder) + ")"
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		d.QualifiedName(schema, table), QuoteAll(cols, d.QuoteIdentifier), strings.Join(tuples, ", "))
}

func (d *PostgresDialect) Placeholder(index int) string {
	return fmt.Sprintf("$%d", index+1)
}

func (d *PostgresDialect) MaxParams() int {
	return postgresMaxParams
}
