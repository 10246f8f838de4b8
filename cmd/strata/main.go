// Command strata runs the in-memory columnar storage engine behind an
// interactive REPL.
//
// Logging:
//   - Base logger is created here with output format and level
//   - Logger is passed to the storage manager via dependency injection;
//     tables created from the REPL are built without a logger and log
//     nothing
//   - No global slog configuration (no slog.SetDefault)
//   - Components scope loggers with their own attributes
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"strata/internal/logging"
	"strata/internal/repl"
	"strata/internal/storage"
)

var version = "dev"

func main() {
	var logLevel string

	rootCmd := &cobra.Command{
		Use:   "strata",
		Short: "Columnar in-memory storage and scan engine",
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level: debug, info, warn, error")

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Start an interactive session over an empty catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logging.ParseLevel(logLevel),
			})
			logger := slog.New(handler)

			manager := storage.NewManager(logger)
			return repl.New(manager, os.Stdin, os.Stdout).Run()
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}

	rootCmd.AddCommand(replCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
