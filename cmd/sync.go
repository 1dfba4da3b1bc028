package cmd

import (
	"fmt"

	"db-sync/internal/database"
	"db-sync/internal/engine"
	"db-sync/internal/schema"

	"github.com/google/uuid"
	"github.com/gosuri/uiprogress"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Recreate source tables on the target and copy their rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		runLog := log.With(zap.String("run_id", uuid.NewString()))
		settings := cfg.Sync

		srcDialect, dstDialect, err := dialects()
		if err != nil {
			return err
		}

		fmt.Printf("🦅 Source: %s\n", describe(srcDialect.Name(), cfg.Source))
		fmt.Printf("🦅 Target: %s (schema %s)\n", describe(dstDialect.Name(), cfg.Target), settings.TargetSchema)

		// Dry runs never connect to the target.
		pair := &database.Pair{}
		if settings.DryRun {
			pair.Source, err = database.Connect(ctx, sourceEndpoint(srcDialect), nil)
		} else {
			pair, err = database.OpenPair(ctx, sourceEndpoint(srcDialect), targetEndpoint(dstDialect), nil)
		}
		if err != nil {
			return err
		}
		defer pair.Close()

		src := engine.NewSQLSource(pair.Source, srcDialect)

		// 1. Table selection
		runLog.Info("listing source tables")
		all, err := src.ListTables(ctx)
		if err != nil {
			return err
		}
		tables := schema.FilterTables(all, settings.Tables, settings.Exclude)
		if len(settings.Tables) > 0 && len(tables) == 0 {
			return fmt.Errorf("no matching tables found for inputs: %v", settings.Tables)
		}
		if settings.SortTables {
			tables = schema.SortTables(tables)
		}
		if len(tables) == 0 {
			fmt.Println("Nothing to sync: the source database has no tables.")
			return nil
		}

		// 2. Pipeline
		mapping := schema.DefaultMapping().With(settings.TypeOverrides)
		converter := schema.NewConverter(dstDialect, settings.TargetSchema, mapping)
		copier := engine.NewCopier(dstDialect, settings.BatchSize)

		var target engine.TxBeginner
		if pair.Target != nil {
			target = pair.Target
		}
		syncer := engine.NewSyncer(src, target, converter, copier, runLog)
		syncer.DryRun = settings.DryRun

		if settings.DryRun {
			runLog.Info("dry-run mode active: no table will be created or written")
		}

		// 3. Progress bar
		uiprogress.Start()
		bar := uiprogress.AddBar(len(tables)).AppendCompleted().PrependElapsed()
		bar.PrependFunc(func(b *uiprogress.Bar) string {
			return "Syncing: "
		})
		syncer.OnResult = func(engine.SyncResult) {
			bar.Incr()
		}

		report, runErr := syncer.Run(ctx, tables)
		uiprogress.Stop()

		// 4. Report
		if settings.DryRun {
			fmt.Println("\n🔍 Target DDL:")
			for _, res := range report.Results {
				if res.DDL != "" {
					fmt.Printf("-- %s\n%s\n\n", res.Table, res.DDL)
				}
			}
		}
		report.Print(cmd.OutOrStdout())

		return runErr
	},
}

func init() {
	RootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringSliceP("tables", "t", []string{}, "Specific tables to sync (comma-separated)")
	syncCmd.Flags().StringSlice("exclude", []string{}, "Tables to skip (comma-separated)")
	syncCmd.Flags().Int("batch-size", engine.DefaultBatchSize, "Rows per INSERT statement")
	syncCmd.Flags().String("target-schema", "public", "PostgreSQL schema to create tables in")
	syncCmd.Flags().Bool("sort", false, "Process tables in lexicographic order instead of source order")
	syncCmd.Flags().Bool("dry-run", false, "Convert and print target DDL without touching the target")

	viper.BindPFlag("sync.tables", syncCmd.Flags().Lookup("tables"))
	viper.BindPFlag("sync.exclude", syncCmd.Flags().Lookup("exclude"))
	viper.BindPFlag("sync.batch_size", syncCmd.Flags().Lookup("batch-size"))
	viper.BindPFlag("sync.target_schema", syncCmd.Flags().Lookup("target-schema"))
	viper.BindPFlag("sync.sort_tables", syncCmd.Flags().Lookup("sort"))
	viper.BindPFlag("sync.dry_run", syncCmd.Flags().Lookup("dry-run"))
}
