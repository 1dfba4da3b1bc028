package cmd

import (
	"fmt"

	"db-sync/internal/config"
	"db-sync/internal/database"
	"db-sync/internal/dialect"
	"db-sync/internal/logger"
)

func initLogger(s config.LogSettings) error {
	l, err := logger.New(s.Level, s.Format)
	if err != nil {
		return err
	}
	log = l
	return nil
}

// dialects returns the dialect pair every command works with.
func dialects() (dialect.Source, dialect.Target, error) {
	src, err := dialect.GetSource("mysql")
	if err != nil {
		return nil, nil, err
	}
	dst, err := dialect.GetTarget("postgres")
	if err != nil {
		return nil, nil, err
	}
	return src, dst, nil
}

func sourceEndpoint(d dialect.Source) database.Endpoint {
	return database.Endpoint{
		Role:   database.RoleSource,
		Driver: d.Name(),
		DSN:    database.MySQLDSN(cfg.Source.Params()),
	}
}

func targetEndpoint(d dialect.Target) database.Endpoint {
	return database.Endpoint{
		Role:   database.RoleTarget,
		Driver: d.Name(),
		DSN:    database.PostgresDSN(cfg.Target.Params()),
	}
}

// describe renders a connection without its password.
func describe(driver string, c config.Connection) string {
	return fmt.Sprintf("%s://%s@%s:%d/%s", driver, c.User, c.Host, c.Port, c.Database)
}
