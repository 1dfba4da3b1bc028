package dialect

// Source abstracts the queries issued against the database being migrated from.
type Source interface {
	Name() string
	QuoteIdentifier(name string) string

	// Metadata Queries
	GetTablesQuery() string
	ShowCreateTableQuery(table string) string

	// Data Queries
	SelectAllQuery(table string) string

	// IsBinaryType reports whether values of a column with the given driver
	// type name must stay raw bytes instead of being read as text.
	IsBinaryType(databaseTypeName string) bool
}

// Target abstracts the statements issued against the database being migrated to.
type Target interface {
	Name() string
	QuoteIdentifier(name string) string
	QualifiedName(schema, table string) string
	DefaultSchema() string

	// DDL
	DropTableQuery(schema, table string) string

	// Query Generation
	InsertQuery(schema, table string, cols []string, rowCount int) string
	Placeholder(index int) string // Returns $1, $2, ...
	MaxParams() int               // Bind parameter limit of a single statement
}
