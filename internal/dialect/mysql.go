package dialect

import (
	"strings"
)

type MysqlDialect struct{}

var mysqlBinaryTypes = map[string]bool{
	"BINARY":     true,
	"VARBINARY":  true,
	"TINYBLOB":   true,
	"BLOB":       true,
	"MEDIUMBLOB": true,
	"LONGBLOB":   true,
	"BIT":        true,
	"GEOMETRY":   true,
}

func (d *MysqlDialect) Name() string {
	return "mysql"
}

func (d *MysqlDialect) QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

func (d *MysqlDialect) GetTablesQuery() string {
	// Views are excluded: SHOW CREATE TABLE on a view returns CREATE VIEW text.
	return `SELECT TABLE_NAME FROM information_schema.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_TYPE = 'BASE TABLE'`
}

func (d *MysqlDialect) ShowCreateTableQuery(table string) string {
	return "SHOW CREATE TABLE " + d.QuoteIdentifier(table)
}

func (d *MysqlDialect) SelectAllQuery(table string) string {
	return "SELECT * FROM " + d.QuoteIdentifier(table)
}

// IsBinaryType expects names as reported by go-sql-driver/mysql, which
// already tells TEXT apart from BLOB and VARCHAR apart from VARBINARY.
func (d *MysqlDialect) IsBinaryType(databaseTypeName string) bool {
	return mysqlBinaryTypes[strings.ToUpper(databaseTypeName)]
}
