package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"db-sync/internal/config"
	"db-sync/internal/schema"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var showLines bool

var convertCmd = &cobra.Command{
	Use:   "convert [file]",
	Short: "Convert a MySQL CREATE TABLE statement to PostgreSQL DDL offline",
	Long: `Reads the output of SHOW CREATE TABLE from a file (or stdin when the
file is omitted or "-") and prints the equivalent PostgreSQL CREATE TABLE.
No database connection is made.`,
	Args: cobra.MaximumNArgs(1),
	// Offline: connection settings are neither required nor validated.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogger(logSettings())
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 && args[0] != "-" {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open %s: %w", args[0], err)
			}
			defer f.Close()
			in = f
		}
		raw, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("failed to read DDL: %w", err)
		}

		_, dst, err := dialects()
		if err != nil {
			return err
		}
		mapping := schema.DefaultMapping().With(viper.GetStringMapString("sync.type_overrides"))
		targetSchema := viper.GetString("sync.target_schema")
		if cmd.Flags().Changed("target-schema") {
			targetSchema, _ = cmd.Flags().GetString("target-schema")
		}
		converter := schema.NewConverter(dst, targetSchema, mapping)

		conv, err := converter.Convert(string(raw))
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, conv.DDL)

		if showLines {
			fmt.Fprintln(out, "\n📋 Line Report:")
			for _, l := range conv.Source.Lines {
				if l.Recognized() {
					fmt.Fprintf(out, "[✓] %3d  column %-20s %s\n", l.Number, l.Column.Name, l.Column.RawType)
				} else {
					fmt.Fprintf(out, "[-] %3d  skipped (%s): %s\n", l.Number, l.SkipReason, strings.TrimSpace(l.Text))
				}
			}
		}
		return nil
	},
}

func logSettings() config.LogSettings {
	return config.LogSettings{
		Level:  viper.GetString("log.level"),
		Format: viper.GetString("log.format"),
	}
}

func init() {
	RootCmd.AddCommand(convertCmd)

	convertCmd.Flags().BoolVar(&showLines, "lines", false, "Print how each input line was classified")
	convertCmd.Flags().String("target-schema", "public", "PostgreSQL schema to qualify the table with")
}
