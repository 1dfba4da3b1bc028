package schema_test

import (
	"testing"

	"db-sync/internal/dialect"
	"db-sync/internal/schema"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newConverter() *schema.Converter {
	return schema.NewConverter(&dialect.PostgresDialect{}, "", nil)
}

func TestConverter_UsersScenario(t *testing.T) {
	ddl := "CREATE TABLE `users` (\n" +
		"  `id` int(11) NOT NULL AUTO_INCREMENT,\n" +
		"  `name` varchar(50) DEFAULT NULL,\n" +
		"  `created_at` datetime DEFAULT NULL,\n" +
		"  PRIMARY KEY (`id`)\n" +
		") ENGINE=InnoDB AUTO_INCREMENT=3 DEFAULT CHARSET=utf8mb4"

	conv, err := newConverter().Convert(ddl)
	require.NoError(t, err)

	want := "CREATE TABLE \"public\".\"users\" (\n" +
		"  \"id\" integer,\n" +
		"  \"name\" varchar(50),\n" +
		"  \"created_at\" timestamp\n" +
		");"
	assert.Equal(t, want, conv.DDL)
	assert.Equal(t, []schema.TargetColumn{
		{Name: "id", Type: "integer"},
		{Name: "name", Type: "varchar(50)"},
		{Name: "created_at", Type: "timestamp"},
	}, conv.Columns)
	assert.Equal(t, "users", conv.Source.Name)
}

func TestConverter_SizeForwarding(t *testing.T) {
	c := newConverter()

	tests := []struct {
		line string
		want string
	}{
		{"`id` int(11)", "integer"},
		{"`big` bigint(20) unsigned", "bigint"},
		{"`name` varchar(255)", "varchar(255)"},
		{"`code` char(3)", "char(3)"},
		{"`price` decimal(10,2)", "numeric(10,2)"},
		{"`ratio` decimal(8)", "numeric(8)"},
		{"`at` datetime(6)", "timestamp(6)"},
		{"`body` text(1000)", "text"},
		{"`doc` json", "jsonb"},
		{"`raw` varbinary(16)", "bytea"},
		{"`flag` tinyint(1)", "smallint"},
		{"`kind` enum('a','b')", "varchar"},
		{"`tags` set('x','y')", "varchar"},
		{"`shape` geometry", "varchar"},
		{"`amount` float(7,4)", "real"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			conv, err := c.Convert("CREATE TABLE `t` (\n  " + tt.line + ",\n)")
			require.NoError(t, err)
			require.Len(t, conv.Columns, 1)
			assert.Equal(t, tt.want, conv.Columns[0].Type)
		})
	}
}

func TestConverter_DegenerateSchema(t *testing.T) {
	conv, err := newConverter().Convert("CREATE TABLE `nothing` (\n  KEY `k` (`x`)\n) ENGINE=InnoDB")
	require.NoError(t, err)
	assert.Empty(t, conv.Columns)
	assert.Equal(t, "CREATE TABLE \"public\".\"nothing\" (\n);", conv.DDL)
}

func TestConverter_TargetSchemaAndOverrides(t *testing.T) {
	c := schema.NewConverter(&dialect.PostgresDialect{}, "legacy",
		schema.DefaultMapping().With(map[string]string{"tinyint": "boolean"}))

	conv, err := c.Convert("CREATE TABLE `flags` (\n  `on` tinyint(1) NOT NULL\n)")
	require.NoError(t, err)
	assert.Equal(t, "CREATE TABLE \"legacy\".\"flags\" (\n  \"on\" boolean\n);", conv.DDL)
}

func TestConverter_ParseError(t *testing.T) {
	_, err := newConverter().Convert("not a table")
	assert.ErrorIs(t, err, schema.ErrMalformedDDL)
}
