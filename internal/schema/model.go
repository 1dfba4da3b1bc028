package schema

type TableSchema struct {
	Name    string
	Columns []ColumnDefinition // source definition order
	Lines   []LineResult       // one entry per line after the CREATE TABLE header
}

type ColumnDefinition struct {
	Name     string
	RawType  string    // lower-cased type token, e.g. "int(11)"
	BaseType string    // RawType before any "(", e.g. "int"
	Size     *SizeSpec // nil unless the qualifier was "N" or "N,M"
}

// SizeSpec is a purely numeric type qualifier such as (255) or (10,2).
type SizeSpec struct {
	Raw       string // qualifier text without parentheses, kept verbatim
	Precision int
	Scale     int
	HasScale  bool
}

func (s SizeSpec) String() string {
	return "(" + s.Raw + ")"
}

// LineResult records what the parser did with one DDL line: either a
// recognized column or the reason the line was skipped.
type LineResult struct {
	Number     int
	Text       string
	Column     *ColumnDefinition
	SkipReason string
}

func (l LineResult) Recognized() bool {
	return l.Column != nil
}

// Skipped returns the lines that did not produce a column.
func (t *TableSchema) Skipped() []LineResult {
	var out []LineResult
	for _, l := range t.Lines {
		if !l.Recognized() {
			out = append(out, l)
		}
	}
	return out
}
