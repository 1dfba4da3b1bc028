package schema

import (
	"strings"

	"db-sync/internal/dialect"
)

// TargetColumn is a column as it will be declared on the target.
type TargetColumn struct {
	Name string
	Type string
}

// Conversion is the result of converting one source CREATE TABLE statement.
type Conversion struct {
	Source  *TableSchema
	Columns []TargetColumn
	DDL     string
}

// Converter parses source DDL and renders the equivalent target DDL.
type Converter struct {
	Parser       Parser
	Mapping      TypeMapping
	Dialect      dialect.Target
	TargetSchema string
}

func NewConverter(d dialect.Target, targetSchema string, mapping TypeMapping) *Converter {
	if targetSchema == "" {
		targetSchema = d.DefaultSchema()
	}
	if mapping == nil {
		mapping = DefaultMapping()
	}
	return &Converter{
		Parser:       LineParser{},
		Mapping:      mapping,
		Dialect:      d,
		TargetSchema: targetSchema,
	}
}

func (c *Converter) Convert(rawDDL string) (*Conversion, error) {
	ts, err := c.Parser.Parse(rawDDL)
	if err != nil {
		return nil, err
	}

	cols := make([]TargetColumn, 0, len(ts.Columns))
	for _, col := range ts.Columns {
		cols = append(cols, TargetColumn{Name: col.Name, Type: c.ColumnType(col)})
	}

	return &Conversion{
		Source:  ts,
		Columns: cols,
		DDL:     RenderCreateTable(c.Dialect, c.TargetSchema, ts.Name, cols),
	}, nil
}

// ColumnType resolves the target type of col, forwarding its size qualifier
// only when the target type accepts one.
func (c *Converter) ColumnType(col ColumnDefinition) string {
	target := c.Mapping.Lookup(col.BaseType)
	if col.Size != nil && IsParameterizable(target) {
		return target + col.Size.String()
	}
	return target
}

// RenderCreateTable renders a CREATE TABLE statement. An empty column list
// still produces a complete statement.
func RenderCreateTable(d dialect.Target, schemaName, table string, cols []TargetColumn) string {
	defs := make([]string, len(cols))
	for i, col := range cols {
		defs[i] = "  " + d.QuoteIdentifier(col.Name) + " " + col.Type
	}

	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(d.QualifiedName(schemaName, table))
	b.WriteString(" (\n")
	if len(defs) > 0 {
		b.WriteString(strings.Join(defs, ",\n"))
		b.WriteString("\n")
	}
	b.WriteString(");")
	return b.String()
}
