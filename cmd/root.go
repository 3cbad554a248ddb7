package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/chrisdamba/foodstore/internal/logging"
	"github.com/chrisdamba/foodstore/internal/models"
)

var (
	cfgFile string
	cfg     *models.Config
)

// errReported marks a failure whose details were already printed.
var errReported = errors.New("")

var rootCmd = &cobra.Command{
	Use:   "foodstore",
	Short: "A food ordering storefront",
	Long: `foodstore browses restaurant menus, keeps a cart and places orders.
State is kept in a local bbolt file so every invocation picks up where the last one left off;
"foodstore serve" exposes the same storefront over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = models.LoadConfig(cfgFile)
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}
		if _, err := logging.Setup(cfg.Logger); err != nil {
			return fmt.Errorf("error setting up logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./.foodstore.yaml or $HOME/.foodstore.yaml)")
	rootCmd.PersistentFlags().String("storage", "foodstore.db", "path of the local state file")
	rootCmd.PersistentFlags().String("catalog-source", models.CatalogStatic, "catalog source: static, synthetic or postgres")
	rootCmd.PersistentFlags().String("log-mode", "development", "logger mode: development or production")
	rootCmd.PersistentFlags().String("activity", "none", "activity journal: none, console, json, parquet or kafka")

	bindFlag("storage_path", rootCmd.PersistentFlags().Lookup("storage"))
	bindFlag("catalog.source", rootCmd.PersistentFlags().Lookup("catalog-source"))
	bindFlag("logger.mode", rootCmd.PersistentFlags().Lookup("log-mode"))
	bindFlag("activity.format", rootCmd.PersistentFlags().Lookup("activity"))
}

func bindFlag(key string, flag *pflag.Flag) {
	cobra.CheckErr(viper.BindPFlag(key, flag))
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
