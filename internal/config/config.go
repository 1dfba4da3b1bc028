package config

import (
	"errors"
	"fmt"
	"strings"

	"db-sync/internal/database"

	"github.com/go-ini/ini"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Connection struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	User         string `mapstructure:"user"`
	Password     string `mapstructure:"password"`
	Database     string `mapstructure:"database"`
	SSL          bool   `mapstructure:"ssl"`
	DefaultsFile string `mapstructure:"defaults_file"`
}

func (c Connection) Params() database.Params {
	return database.Params{
		Host:     c.Host,
		Port:     c.Port,
		User:     c.User,
		Password: c.Password,
		Database: c.Database,
		SSL:      c.SSL,
	}
}

type SyncSettings struct {
	TargetSchema  string            `mapstructure:"target_schema"`
	BatchSize     int               `mapstructure:"batch_size"`
	Tables        []string          `mapstructure:"tables"`
	Exclude       []string          `mapstructure:"exclude"`
	SortTables    bool              `mapstructure:"sort_tables"`
	DryRun        bool              `mapstructure:"dry_run"`
	TypeOverrides map[string]string `mapstructure:"type_overrides"`
}

type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Config struct {
	Source Connection   `mapstructure:"source"`
	Target Connection   `mapstructure:"target"`
	Sync   SyncSettings `mapstructure:"sync"`
	Log    LogSettings  `mapstructure:"log"`
}

// envAliases lists extra variables accepted for each key, in precedence
// order after the automatic SOURCE_* / TARGET_* names.
var envAliases = map[string][]string{
	"source.host":     {"MYSQL_HOST"},
	"source.port":     {"MYSQL_PORT"},
	"source.user":     {"MYSQL_USER"},
	"source.password": {"MYSQL_PASSWORD"},
	"source.database": {"MYSQL_DATABASE"},
	"target.host":     {"POSTGRES_HOST"},
	"target.port":     {"POSTGRES_PORT"},
	"target.user":     {"POSTGRES_USER"},
	"target.password": {"POSTGRES_PASSWORD"},
	"target.database": {"POSTGRES_DB"},
}

// Connection fallbacks, applied after the option file so it can fill them.
var (
	sourceDefaults = Connection{Host: "localhost", Port: 3306, User: "root"}
	targetDefaults = Connection{Host: "localhost", Port: 5432, User: "postgres"}
)

// SetDefaults registers the remaining keys so environment overrides reach
// Unmarshal. Connection host, port, user, password and database are known
// to viper through BindEnv.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("source.ssl", false)
	v.SetDefault("source.defaults_file", "")
	v.SetDefault("target.ssl", false)

	v.SetDefault("sync.target_schema", "public")
	v.SetDefault("sync.batch_size", 1000)
	v.SetDefault("sync.tables", []string{})
	v.SetDefault("sync.exclude", []string{})
	v.SetDefault("sync.sort_tables", false)
	v.SetDefault("sync.dry_run", false)
	v.SetDefault("sync.type_overrides", map[string]string{})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// BindEnv enables SOURCE_HOST style variables plus the MYSQL_* and
// POSTGRES_* aliases.
func BindEnv(v *viper.Viper) error {
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, aliases := range envAliases {
		names := append([]string{key, strings.ToUpper(strings.ReplaceAll(key, ".", "_"))}, aliases...)
		if err := v.BindEnv(names...); err != nil {
			return fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}
	return nil
}

// LoadDotEnv reads .env style files into the process environment. Missing
// files are ignored and existing variables win.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// Load decodes v into a Config, fills unset source fields from the MySQL
// option file if one is configured, and validates the result.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.Source.DefaultsFile != "" {
		if err := applyOptionFile(&cfg.Source, cfg.Source.DefaultsFile); err != nil {
			return nil, err
		}
	}
	fillEmpty(&cfg.Source, sourceDefaults)
	fillEmpty(&cfg.Target, targetDefaults)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyOptionFile reads the [client] section of a my.cnf style file into
// the fields of c that are still empty.
func applyOptionFile(c *Connection, path string) error {
	f, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read defaults file %s: %w", path, err)
	}
	if !f.HasSection("client") {
		return nil
	}
	client := f.Section("client")

	var port int
	if client.HasKey("port") {
		if port, err = client.Key("port").Int(); err != nil {
			return fmt.Errorf("invalid port in defaults file %s: %w", path, err)
		}
	}
	fillEmpty(c, Connection{
		Host:     client.Key("host").String(),
		Port:     port,
		User:     client.Key("user").String(),
		Password: client.Key("password").String(),
		Database: client.Key("database").String(),
	})
	return nil
}

func fillEmpty(c *Connection, from Connection) {
	if c.Host == "" {
		c.Host = from.Host
	}
	if c.Port == 0 {
		c.Port = from.Port
	}
	if c.User == "" {
		c.User = from.User
	}
	if c.Password == "" {
		c.Password = from.Password
	}
	if c.Database == "" {
		c.Database = from.Database
	}
}

func (c *Config) Validate() error {
	var errs []error
	check := func(role string, conn Connection) {
		if conn.Host == "" {
			errs = append(errs, fmt.Errorf("%s.host is required", role))
		}
		if conn.Port <= 0 || conn.Port > 65535 {
			errs = append(errs, fmt.Errorf("%s.port %d is out of range", role, conn.Port))
		}
		if conn.User == "" {
			errs = append(errs, fmt.Errorf("%s.user is required", role))
		}
		if conn.Database == "" {
			errs = append(errs, fmt.Errorf("%s.database is required", role))
		}
	}
	check("source", c.Source)
	check("target", c.Target)

	if c.Sync.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("sync.batch_size must be positive, got %d", c.Sync.BatchSize))
	}
	if c.Sync.TargetSchema == "" {
		errs = append(errs, errors.New("sync.target_schema is required"))
	}
	switch strings.ToLower(c.Log.Format) {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be console or json, got %q", c.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}
