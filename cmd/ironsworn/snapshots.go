package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ironsworn-content/internal/errors"
	"github.com/KirkDiggler/ironsworn-content/internal/repositories/snapshots"
)

func newSnapshotsCmd(a *app) *cobra.Command {
	var redisAddr string

	cmd := &cobra.Command{
		Use:   "snapshots",
		Short: "Inspect identifier map snapshots kept in Redis",
	}
	cmd.PersistentFlags().StringVar(&redisAddr, "redis", "", "Redis address (env IRONSWORN_REDIS_ADDR)")

	connect := func(cmd *cobra.Command) (*snapshots.Config, func(), error) {
		if cmd.Flags().Changed("redis") {
			a.cfg.RedisAddr = redisAddr
		}
		if a.cfg.RedisAddr == "" {
			return nil, nil, errors.InvalidArgument("a Redis address is required (--redis or IRONSWORN_REDIS_ADDR)")
		}

		client, err := newRedisClient(a.cfg.RedisAddr)
		if err != nil {
			return nil, nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "invalid Redis address")
		}
		return &snapshots.Config{Client: client}, func() { _ = client.Close() }, nil
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, closeFn, err := connect(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			repo, err := snapshots.NewRedisRepository(cfg)
			if err != nil {
				return err
			}
			out, err := repo.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, runID := range out.RunIDs {
				fmt.Fprintln(cmd.OutOrStdout(), runID)
			}
			return nil
		},
	}

	var fix bool
	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Find snapshots that no longer decode",
		Long: `Scans every stored snapshot and reports those that are not valid JSON, have
no identifier map, or are stored under another run's key. With --fix they are
deleted and the latest pointer is moved to the newest remaining run.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, closeFn, err := connect(cmd)
			if err != nil {
				return err
			}
			defer closeFn()

			verifier, err := snapshots.NewRedisVerifier(cfg)
			if err != nil {
				return err
			}
			out, err := verifier.Verify(cmd.Context(), snapshots.VerifyInput{Fix: fix})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Checked %d snapshots, found %d corrupted\n", out.Checked, len(out.Corrupted))
			for _, key := range out.Corrupted {
				fmt.Fprintf(w, "  - %s\n", key)
			}
			for _, key := range out.Deleted {
				fmt.Fprintf(w, "Deleted %s\n", key)
			}
			if len(out.Corrupted) > len(out.Deleted) {
				return errors.Newf(errors.CodeDataLoss, "%d corrupted snapshots remain, rerun with --fix", len(out.Corrupted)-len(out.Deleted))
			}
			return nil
		},
	}
	verifyCmd.Flags().BoolVar(&fix, "fix", false, "Delete corrupted snapshots")

	cmd.AddCommand(listCmd, verifyCmd)
	return cmd
}
