// Package main provides the vcf-info2format command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Evotec-Bioinformatics/vcf-info2format/internal/transfer"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	cfgFile   string
	verbosity int
)

func main() {
	os.Exit(run())
}

func run() int {
	if err := newRootCmd().Execute(); err != nil {
		if errors.Is(err, transfer.ErrNoFields) {
			return ExitUsage
		}
		return ExitError
	}
	return ExitSuccess
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vcf-info2format",
		Short: "Move INFO fields of a single-sample VCF into FORMAT fields",
		Long: `vcf-info2format rewrites a single-sample VCF so that selected INFO
fields are carried in the sample column instead. Each requested field's
header declaration moves from INFO to FORMAT, and each record's value
moves from the INFO column into the sample column. Downstream tools
that only read genotype-level data can then consume the values.`,
		Version:      fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default: ~/.vcf-info2format.yaml)")
	cmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v: info, -vv: debug)")

	cobra.OnInitialize(initConfig)

	cmd.AddCommand(newTransferCmd())
	cmd.AddCommand(newFieldsCmd())
	cmd.AddCommand(newConfigCmd())

	return cmd
}

// initConfig reads in the config file and environment variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return
		}
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".vcf-info2format")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil && verbosity > 0 {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger builds a console logger at a level derived from the -v count.
func newLogger() *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	switch {
	case verbosity >= 2:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	case verbosity == 1:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	default:
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
