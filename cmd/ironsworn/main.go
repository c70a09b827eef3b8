// Package main is the entry point for the Ironsworn content importer
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ironsworn-content/internal/config"
	"github.com/KirkDiggler/ironsworn-content/internal/errors"
)

// app carries the loaded configuration to every subcommand
type app struct {
	cfg     *config.Config
	verbose bool
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "ironsworn",
		Short: "Ironsworn Starforged content importer",
		Long: `Imports the Starforged content from the Dataforged dataset, assigns stable
identifiers, rewrites move links and stat rolls, and writes the JSON files the
Foundry system bundles.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			a.cfg = cfg

			level := slog.LevelInfo
			if a.verbose || cfg.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return nil
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newImportCmd(a))
	rootCmd.AddCommand(newIDsCmd(a))
	rootCmd.AddCommand(newRollCmd(a))
	rootCmd.AddCommand(newSnapshotsCmd(a))

	return rootCmd
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		return errors.GetCode(err).ExitCode()
	}
	return 0
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
