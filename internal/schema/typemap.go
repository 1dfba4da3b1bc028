package schema

import "strings"

// DefaultTargetType is returned for any source type missing from the mapping.
const DefaultTargetType = "varchar"

// TypeMapping maps lower-cased MySQL type names to PostgreSQL type names.
type TypeMapping map[string]string

var defaultMapping = TypeMapping{
	// Integer types
	"tinyint":   "smallint",
	"smallint":  "smallint",
	"year":      "smallint",
	"mediumint": "integer",
	"int":       "integer",
	"integer":   "integer",
	"bigint":    "bigint",

	// Exact and approximate numerics
	"decimal": "numeric",
	"dec":     "numeric",
	"numeric": "numeric",
	"fixed":   "numeric",
	"float":   "real",
	"double":  "double precision",
	"real":    "double precision",

	"bool":    "boolean",
	"boolean": "boolean",

	// Character types
	"char":       "char",
	"varchar":    "varchar",
	"tinytext":   "text",
	"text":       "text",
	"mediumtext": "text",
	"longtext":   "text",

	// Binary types
	"binary":     "bytea",
	"varbinary":  "bytea",
	"tinyblob":   "bytea",
	"blob":       "bytea",
	"mediumblob": "bytea",
	"longblob":   "bytea",
	"bit":        "bytea",

	// Date and time types
	"date":      "date",
	"datetime":  "timestamp",
	"timestamp": "timestamp",
	"time":      "time",

	"json": "jsonb",

	// No direct equivalent
	"enum": "varchar",
	"set":  "varchar",
}

// Only these target types accept a forwarded (N) or (N,M) qualifier.
var parameterizable = map[string]bool{
	"varchar":   true,
	"char":      true,
	"numeric":   true,
	"timestamp": true,
	"time":      true,
}

// DefaultMapping returns a copy of the built-in MySQL to PostgreSQL mapping.
func DefaultMapping() TypeMapping {
	return defaultMapping.With(nil)
}

// With returns a new mapping with overrides applied on top of m. Keys are
// lower-cased; m is not modified.
func (m TypeMapping) With(overrides map[string]string) TypeMapping {
	out := make(TypeMapping, len(m)+len(overrides))
	for k, v := range m {
		out[k] = v
	}
	for k, v := range overrides {
		out[strings.ToLower(strings.TrimSpace(k))] = v
	}
	return out
}

// Lookup never fails: unmapped names resolve to DefaultTargetType.
func (m TypeMapping) Lookup(sourceTypeName string) string {
	if t, ok := m[strings.ToLower(strings.TrimSpace(sourceTypeName))]; ok {
		return t
	}
	return DefaultTargetType
}

// TargetType resolves a source type name with the built-in mapping.
func TargetType(sourceTypeName string) string {
	return defaultMapping.Lookup(sourceTypeName)
}

// IsParameterizable reports whether a size qualifier may follow targetType.
func IsParameterizable(targetType string) bool {
	return parameterizable[strings.ToLower(targetType)]
}
