package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(t *testing.T) *viper.Viper {
	t.Helper()
	v := viper.New()
	SetDefaults(v)
	require.NoError(t, BindEnv(v))
	return v
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SOURCE_DATABASE", "shop")
	t.Setenv("TARGET_DATABASE", "warehouse")

	cfg, err := Load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Source.Host)
	assert.Equal(t, 3306, cfg.Source.Port)
	assert.Equal(t, "root", cfg.Source.User)
	assert.Equal(t, 5432, cfg.Target.Port)
	assert.Equal(t, "postgres", cfg.Target.User)
	assert.Equal(t, "public", cfg.Sync.TargetSchema)
	assert.Equal(t, 1000, cfg.Sync.BatchSize)
	assert.False(t, cfg.Sync.DryRun)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvAliases(t *testing.T) {
	t.Setenv("MYSQL_HOST", "legacy-db")
	t.Setenv("MYSQL_PORT", "3307")
	t.Setenv("MYSQL_DATABASE", "shop")
	t.Setenv("POSTGRES_DB", "warehouse")
	t.Setenv("POSTGRES_PASSWORD", "pg-secret")
	t.Setenv("TARGET_HOST", "pg.internal")
	t.Setenv("SYNC_BATCH_SIZE", "250")

	cfg, err := Load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, "legacy-db", cfg.Source.Host)
	assert.Equal(t, 3307, cfg.Source.Port)
	assert.Equal(t, "shop", cfg.Source.Database)
	assert.Equal(t, "pg.internal", cfg.Target.Host)
	assert.Equal(t, "pg-secret", cfg.Target.Password)
	assert.Equal(t, "warehouse", cfg.Target.Database)
	assert.Equal(t, 250, cfg.Sync.BatchSize)
}

func TestLoad_PrimaryEnvWinsOverAlias(t *testing.T) {
	t.Setenv("SOURCE_HOST", "primary")
	t.Setenv("MYSQL_HOST", "alias")
	t.Setenv("SOURCE_DATABASE", "shop")
	t.Setenv("TARGET_DATABASE", "warehouse")

	cfg, err := Load(newViper(t))
	require.NoError(t, err)
	assert.Equal(t, "primary", cfg.Source.Host)
}

func TestLoad_ConfigFile(t *testing.T) {
	yaml := `
source:
  host: mysql.internal
  database: shop
target:
  host: pg.internal
  database: warehouse
  ssl: true
sync:
  target_schema: legacy
  tables: [users, orders]
  exclude: [audit_log]
  sort_tables: true
  type_overrides:
    TINYINT: boolean
log:
  format: json
`
	path := filepath.Join(t.TempDir(), "db-sync.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	v := newViper(t)
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, "mysql.internal", cfg.Source.Host)
	assert.True(t, cfg.Target.SSL)
	assert.Equal(t, "legacy", cfg.Sync.TargetSchema)
	assert.Equal(t, []string{"users", "orders"}, cfg.Sync.Tables)
	assert.Equal(t, []string{"audit_log"}, cfg.Sync.Exclude)
	assert.True(t, cfg.Sync.SortTables)
	assert.Equal(t, "boolean", cfg.Sync.TypeOverrides["tinyint"])
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_OptionFile(t *testing.T) {
	cnf := "[client]\nhost=mysql.internal\nport=3307\nuser=reporter\npassword=s3cret\ndatabase=shop\n"
	path := filepath.Join(t.TempDir(), "my.cnf")
	require.NoError(t, os.WriteFile(path, []byte(cnf), 0o600))

	t.Setenv("SOURCE_DEFAULTS_FILE", path)
	t.Setenv("SOURCE_USER", "migrator")
	t.Setenv("TARGET_DATABASE", "warehouse")

	cfg, err := Load(newViper(t))
	require.NoError(t, err)

	assert.Equal(t, "mysql.internal", cfg.Source.Host)
	assert.Equal(t, 3307, cfg.Source.Port)
	assert.Equal(t, "migrator", cfg.Source.User, "explicit settings win over the option file")
	assert.Equal(t, "s3cret", cfg.Source.Password)
	assert.Equal(t, "shop", cfg.Source.Database)
}

func TestLoad_OptionFileMissing(t *testing.T) {
	t.Setenv("SOURCE_DEFAULTS_FILE", filepath.Join(t.TempDir(), "missing.cnf"))

	_, err := Load(newViper(t))
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to read defaults file")
}

func TestValidate(t *testing.T) {
	v := newViper(t)
	v.Set("sync.batch_size", 0)
	v.Set("log.format", "xml")

	_, err := Load(v)
	require.Error(t, err)

	msg := err.Error()
	for _, want := range []string{
		"source.database is required",
		"target.database is required",
		"sync.batch_size must be positive",
		`log.format must be console or json, got "xml"`,
	} {
		assert.True(t, strings.Contains(msg, want), "missing %q in %s", want, msg)
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("MYSQL_DATABASE=from_dotenv\nTARGET_DATABASE=warehouse\n"), 0o600))

	t.Setenv("MYSQL_DATABASE", "")
	os.Unsetenv("MYSQL_DATABASE")
	t.Setenv("TARGET_DATABASE", "")
	os.Unsetenv("TARGET_DATABASE")

	LoadDotEnv(path)
	cfg, err := Load(newViper(t))
	require.NoError(t, err)
	assert.Equal(t, "from_dotenv", cfg.Source.Database)
}
