package schema

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ErrMalformedDDL is returned when the text does not open with a
// CREATE TABLE line carrying a backtick-quoted table name.
var ErrMalformedDDL = errors.New("malformed CREATE TABLE statement")

// Parser turns source DDL text into a TableSchema.
type Parser interface {
	Parse(rawDDL string) (*TableSchema, error)
}

// Skip reasons recorded on LineResult.
const (
	SkipBlank        = "blank line"
	SkipTableLevel   = "table-level construct"
	SkipEndOfColumns = "end of column list"
	SkipMalformed    = "malformed column definition"
	SkipUnrecognized = "unrecognized line"
)

const (
	columnQuote           = "`"
	createTablePrefix     = "CREATE TABLE"
	createTemporaryPrefix = "CREATE TEMPORARY TABLE"
)

// Keywords that open table-level constructs in SHOW CREATE TABLE output.
var tableLevelKeywords = []string{
	"PRIMARY KEY",
	"UNIQUE",
	"KEY",
	"INDEX",
	"FULLTEXT",
	"SPATIAL",
	"CONSTRAINT",
	"FOREIGN KEY",
	"CHECK",
}

var numericQualifier = regexp.MustCompile(`^\s*(\d+)\s*(?:,\s*(\d+)\s*)?$`)

// LineParser reads MySQL SHOW CREATE TABLE output one line at a time. It
// expects one structural element per line and does not understand wrapped
// definitions or comments; such lines are skipped with a reason.
type LineParser struct{}

var _ Parser = LineParser{}

func (LineParser) Parse(rawDDL string) (*TableSchema, error) {
	lines := strings.Split(strings.ReplaceAll(rawDDL, "\r\n", "\n"), "\n")

	header := -1
	for i, l := range lines {
		if strings.TrimSpace(l) != "" {
			header = i
			break
		}
	}
	if header < 0 {
		return nil, fmt.Errorf("%w: empty input", ErrMalformedDDL)
	}

	first := strings.TrimSpace(lines[header])
	upper := strings.ToUpper(first)
	if !strings.HasPrefix(upper, createTablePrefix) && !strings.HasPrefix(upper, createTemporaryPrefix) {
		return nil, fmt.Errorf("%w: first line %q", ErrMalformedDDL, first)
	}
	name, ok := quotedIdentifier(first)
	if !ok {
		return nil, fmt.Errorf("%w: no quoted table name in %q", ErrMalformedDDL, first)
	}

	ts := &TableSchema{Name: name}
	for i := header + 1; i < len(lines); i++ {
		res := parseLine(lines[i])
		res.Number = i + 1
		ts.Lines = append(ts.Lines, res)
		if res.Column != nil {
			ts.Columns = append(ts.Columns, *res.Column)
		}
	}
	return ts, nil
}

// quotedIdentifier returns the text between the first pair of backticks.
func quotedIdentifier(s string) (string, bool) {
	start := strings.Index(s, columnQuote)
	if start < 0 {
		return "", false
	}
	end := strings.Index(s[start+1:], columnQuote)
	if end < 0 {
		return "", false
	}
	return s[start+1 : start+1+end], true
}

func parseLine(text string) LineResult {
	res := LineResult{Text: text}
	trimmed := strings.TrimSpace(text)

	switch {
	case trimmed == "":
		res.SkipReason = SkipBlank
	case strings.HasPrefix(trimmed, columnQuote):
		col, ok := parseColumn(trimmed)
		if !ok {
			res.SkipReason = SkipMalformed
			break
		}
		res.Column = col
	case strings.HasPrefix(trimmed, ")"):
		res.SkipReason = SkipEndOfColumns
	case hasKeyword(strings.ToUpper(trimmed)):
		res.SkipReason = SkipTableLevel
	default:
		res.SkipReason = SkipUnrecognized
	}
	return res
}

func hasKeyword(upper string) bool {
	for _, kw := range tableLevelKeywords {
		if !strings.HasPrefix(upper, kw) {
			continue
		}
		if len(upper) == len(kw) {
			return true
		}
		if next := upper[len(kw)]; next == ' ' || next == '(' || next == '\t' {
			return true
		}
	}
	return false
}

func parseColumn(line string) (*ColumnDefinition, bool) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, false
	}
	name := strings.Trim(fields[0], columnQuote)
	if name == "" {
		return nil, false
	}

	rawType := strings.ToLower(strings.TrimSuffix(fields[1], ","))
	baseType := rawType
	if idx := strings.Index(rawType, "("); idx != -1 {
		baseType = rawType[:idx]
	}

	return &ColumnDefinition{
		Name:     name,
		RawType:  rawType,
		BaseType: baseType,
		Size:     parseSize(rawType),
	}, true
}

// parseSize extracts a numeric qualifier. Non-numeric qualifiers such as
// enum('a','b') yield nil.
func parseSize(rawType string) *SizeSpec {
	open := strings.Index(rawType, "(")
	if open < 0 {
		return nil
	}
	closing := strings.LastIndex(rawType, ")")
	if closing < open {
		return nil
	}
	inner := rawType[open+1 : closing]
	m := numericQualifier.FindStringSubmatch(inner)
	if m == nil {
		return nil
	}

	spec := &SizeSpec{Raw: inner}
	spec.Precision, _ = strconv.Atoi(m[1])
	if m[2] != "" {
		spec.Scale, _ = strconv.Atoi(m[2])
		spec.HasScale = true
	}
	return spec
}
