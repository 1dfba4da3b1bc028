package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"db-sync/internal/database"
	"db-sync/internal/engine"
	"db-sync/internal/schema"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify both connections and list the tables a sync would process",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		srcDialect, dstDialect, err := dialects()
		if err != nil {
			return err
		}

		pair, err := database.OpenPair(ctx, sourceEndpoint(srcDialect), targetEndpoint(dstDialect), nil)
		if err != nil {
			return err
		}
		defer pair.Close()

		fmt.Printf("✓ Source %s (%s)\n", describe(srcDialect.Name(), cfg.Source), serverVersion(ctx, pair.Source))
		fmt.Printf("✓ Target %s (%s)\n", describe(dstDialect.Name(), cfg.Target), serverVersion(ctx, pair.Target))

		all, err := engine.NewSQLSource(pair.Source, srcDialect).ListTables(ctx)
		if err != nil {
			return err
		}
		tables := schema.FilterTables(all, cfg.Sync.Tables, cfg.Sync.Exclude)
		if cfg.Sync.SortTables {
			tables = schema.SortTables(tables)
		}

		fmt.Printf("\n🔍 %d of %d source tables selected:\n", len(tables), len(all))
		for i, t := range tables {
			fmt.Printf("[%02d] %s\n", i+1, t)
		}
		return nil
	},
}

func serverVersion(ctx context.Context, db *sql.DB) string {
	var v string
	if err := db.QueryRowContext(ctx, "SELECT version()").Scan(&v); err != nil {
		log.Debug("version query failed", zap.Error(err))
		return "version unknown"
	}
	// PostgreSQL reports a full build string
	if i := strings.Index(v, " on "); i > 0 {
		v = v[:i]
	}
	return v
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
