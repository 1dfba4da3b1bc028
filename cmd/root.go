package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"db-sync/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var (
	cfgFile string
	envFile string

	cfg *config.Config
	log *zap.Logger
)

var RootCmd = &cobra.Command{
	Use:   "db-sync",
	Short: "A MySQL to PostgreSQL schema and data sync tool",
	Long: `
  ____  ____    ______   ___   _  ____
 |  _ \| __ )  / ___\ \ / / \ | |/ ___|
 | | | |  _ \  \___ \\ V /|  \| | |
 | |_| | |_) |  ___) || | | |\  | |___
 |____/|____/  |____/ |_| |_| \_|\____|

DB SYNC 🦅 - MySQL → PostgreSQL Table Copier
`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		return initLogger(cfg.Log)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./db-sync.yaml)")
	RootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file with connection settings")
	RootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	RootCmd.PersistentFlags().String("log-format", "console", "log format (console, json)")

	viper.BindPFlag("log.level", RootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", RootCmd.PersistentFlags().Lookup("log-format"))

	config.SetDefaults(viper.GetViper())
}

// initConfig reads in the dotenv file, config file and ENV variables if set.
func initConfig() {
	// .env only fills variables that are not already exported
	config.LoadDotEnv(envFile)

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			viper.AddConfigPath(filepath.Dir(ex))
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("db-sync")
		viper.SetConfigType("yaml")
	}

	if err := config.BindEnv(viper.GetViper()); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
