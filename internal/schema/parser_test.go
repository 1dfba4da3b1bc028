package schema_test

import (
	"testing"

	"db-sync/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ordersDDL = "CREATE TABLE `orders` (\n" +
	"  `id` int(11) NOT NULL AUTO_INCREMENT,\n" +
	"  `user_id` bigint(20) unsigned NOT NULL,\n" +
	"  `total` decimal(10,2) DEFAULT NULL,\n" +
	"  `status` enum('new','paid') NOT NULL DEFAULT 'new',\n" +
	"  `notes` text,\n" +
	"  PRIMARY KEY (`id`),\n" +
	"  KEY `idx_user` (`user_id`),\n" +
	"  UNIQUE KEY `uq_total` (`total`),\n" +
	"  CONSTRAINT `fk_user` FOREIGN KEY (`user_id`) REFERENCES `users` (`id`)\n" +
	") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"

func TestLineParser_Columns(t *testing.T) {
	ts, err := schema.LineParser{}.Parse(ordersDDL)
	require.NoError(t, err)

	assert.Equal(t, "orders", ts.Name)
	require.Len(t, ts.Columns, 5)

	names := make([]string, len(ts.Columns))
	for i, c := range ts.Columns {
		names[i] = c.Name
	}
	assert.Equal(t, []string{"id", "user_id", "total", "status", "notes"}, names)

	id := ts.Columns[0]
	assert.Equal(t, "int(11)", id.RawType)
	assert.Equal(t, "int", id.BaseType)
	require.NotNil(t, id.Size)
	assert.Equal(t, 11, id.Size.Precision)
	assert.False(t, id.Size.HasScale)

	total := ts.Columns[2]
	require.NotNil(t, total.Size)
	assert.Equal(t, "(10,2)", total.Size.String())
	assert.Equal(t, 10, total.Size.Precision)
	assert.Equal(t, 2, total.Size.Scale)

	status := ts.Columns[3]
	assert.Equal(t, "enum", status.BaseType)
	assert.Nil(t, status.Size, "enum value lists are not sizes")

	notes := ts.Columns[4]
	assert.Equal(t, "text", notes.RawType, "trailing comma is trimmed")
	assert.Nil(t, notes.Size)
}

func TestLineParser_SkippedLines(t *testing.T) {
	ts, err := schema.LineParser{}.Parse(ordersDDL)
	require.NoError(t, err)

	skipped := ts.Skipped()
	require.Len(t, skipped, 5)

	for _, l := range skipped[:4] {
		assert.Equal(t, schema.SkipTableLevel, l.SkipReason, l.Text)
	}
	assert.Equal(t, schema.SkipEndOfColumns, skipped[4].SkipReason)
	assert.Equal(t, 7, skipped[0].Number)
	assert.Len(t, ts.Lines, len(ts.Columns)+len(skipped))
}

func TestLineParser_DropsUnsupportedShapes(t *testing.T) {
	ddl := "CREATE TABLE `t` (\n" +
		"  `a` int,\n" +
		"  -- a comment\n" +
		"  `b`\n" +
		"\n" +
		"    DEFAULT NULL,\n" +
		"  `c` varchar(20)\n" +
		")"

	ts, err := schema.LineParser{}.Parse(ddl)
	require.NoError(t, err)
	require.Len(t, ts.Columns, 2)
	assert.Equal(t, "a", ts.Columns[0].Name)
	assert.Equal(t, "c", ts.Columns[1].Name)

	reasons := map[string]string{}
	for _, l := range ts.Skipped() {
		reasons[l.Text] = l.SkipReason
	}
	assert.Equal(t, schema.SkipUnrecognized, reasons["  -- a comment"])
	assert.Equal(t, schema.SkipMalformed, reasons["  `b`"])
	assert.Equal(t, schema.SkipBlank, reasons[""])
	assert.Equal(t, schema.SkipUnrecognized, reasons["    DEFAULT NULL,"])
}

func TestLineParser_Degenerate(t *testing.T) {
	ts, err := schema.LineParser{}.Parse("CREATE TABLE `empty` (\n  PRIMARY KEY (`x`)\n)")
	require.NoError(t, err)
	assert.Equal(t, "empty", ts.Name)
	assert.Empty(t, ts.Columns)
}

func TestLineParser_Errors(t *testing.T) {
	tests := []struct {
		name string
		ddl  string
	}{
		{"empty", ""},
		{"whitespace", "  \n\t\n"},
		{"view", "CREATE ALGORITHM=UNDEFINED VIEW `v` AS select 1"},
		{"unquoted name", "CREATE TABLE t (\n  `a` int\n)"},
		{"unterminated quote", "CREATE TABLE `t (\n)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.LineParser{}.Parse(tt.ddl)
			assert.ErrorIs(t, err, schema.ErrMalformedDDL)
		})
	}
}

func TestLineParser_LeadingBlankLinesAndCRLF(t *testing.T) {
	ts, err := schema.LineParser{}.Parse("\r\nCREATE TABLE `w` (\r\n  `id` INT(11) NOT NULL\r\n)")
	require.NoError(t, err)
	assert.Equal(t, "w", ts.Name)
	require.Len(t, ts.Columns, 1)
	assert.Equal(t, "int(11)", ts.Columns[0].RawType)
}
