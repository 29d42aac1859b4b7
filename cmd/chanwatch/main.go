// Command chanwatch picks the Telegram channels and groups the signal
// watcher monitors.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/raykavin/chanwatch/internal/config"
	"github.com/raykavin/chanwatch/pkg/logger"
	"github.com/spf13/cobra"
)

// Command line flags
var (
	envFile    string
	outputPath string
	limit      int
	timeout    string
	debug      bool
)

// Loaded by the root command before any subcommand runs.
var (
	appConfig *config.AppConfig
	log       logger.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "chanwatch",
		Short:             "Choose the Telegram chats the signal watcher monitors",
		Version:           "1.0.0",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.DefaultEnvFile, "Environment file to load")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.AddCommand(
		buildSelectCmd(),
		buildListCmd(),
		buildBalanceCmd(),
		buildPriceCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, "\n❌ 사용자에 의해 중단되었습니다.")
			os.Exit(130)
		}
		fmt.Fprintf(os.Stderr, "❌ 오류: %v\n", err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	var err error
	appConfig, err = config.Load(envFile)
	if err != nil {
		return err
	}

	level := appConfig.LogLevel
	if debug {
		level = "debug"
	}

	log, err = newLogger(level)
	return err
}
