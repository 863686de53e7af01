package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wdm0006/prepkit/pkg/logging"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
)

var (
	envFile string
	logCfg  logging.Config
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "prepkit",
	Short: "Dataset preprocessing for machine learning",
	Long: `prepkit validates tabular records and prepares them for model training:
duplicate handling, imputation, outlier flags, categorical encoding,
scaling, dimensionality reduction and feature selection.

Input and output may be CSV, JSON, JSONL or Parquet; gzip is handled
transparently. Flags can also be set through PREPKIT_* environment
variables or a .env file.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadEnv(envFile); err != nil {
			return err
		}
		l, err := logging.New(logCfg)
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading PREPKIT_* variables")
	rootCmd.PersistentFlags().StringVar(&logCfg.Level, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logCfg.Format, "log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().StringVar(&logCfg.Output, "log-output", "stderr", "log output (stdout, stderr or a file path)")
}

// loadEnv loads a dotenv file. A missing default file is not an error.
func loadEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// settings binds the command's flags to a viper instance so that
// PREPKIT_<FLAG> environment variables fill in flags left unset.
func settings(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix("prepkit")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("bind flags: %w", err)
	}
	return v, nil
}
