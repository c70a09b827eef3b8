package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/ironsworn-content/internal/clients/dataforged"
	"github.com/KirkDiggler/ironsworn-content/internal/orchestrators/importer"
	"github.com/KirkDiggler/ironsworn-content/internal/redis"
	"github.com/KirkDiggler/ironsworn-content/internal/repositories/snapshots"
	"github.com/KirkDiggler/ironsworn-content/internal/repositories/systemassets"
)

type importOptions struct {
	baseURL           string
	outputDir         string
	timeout           time.Duration
	redisAddr         string
	compendium        string
	withSettingTruths bool
	runID             string
}

func newImportCmd(a *app) *cobra.Command {
	opts := &importOptions{}

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Fetch Dataforged and write the system asset files",
		Long: `Fetches the Starforged documents, builds the identifier map and writes
sf-assets.json, sf-encounters.json, sf-moves.json, sf-oracles.json and
sf-ids.json to the output directory.

When a Redis address is configured the identifier map of every run is kept
and compared with the previous one.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runImport(cmd, a, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.baseURL, "base-url", "", "Dataforged base URL (env IRONSWORN_DATAFORGED_BASE_URL)")
	flags.StringVarP(&opts.outputDir, "output", "o", "", "Output directory (env IRONSWORN_OUTPUT_DIR)")
	flags.DurationVar(&opts.timeout, "timeout", 0, "HTTP timeout, 0 for none (env IRONSWORN_HTTP_TIMEOUT)")
	flags.StringVar(&opts.redisAddr, "redis", "", "Redis address for identifier snapshots (env IRONSWORN_REDIS_ADDR)")
	flags.StringVar(&opts.compendium, "compendium", "", "Compendium pack for move references (env IRONSWORN_COMPENDIUM)")
	flags.BoolVar(&opts.withSettingTruths, "with-setting-truths", false, "Also write sf-setting-truths.json")
	flags.StringVar(&opts.runID, "run-id", "", "Name of this run in snapshots")

	return cmd
}

// applyFlags overrides environment configuration with explicitly set flags
func (o *importOptions) applyFlags(cmd *cobra.Command, a *app) {
	cfg := a.cfg
	flags := cmd.Flags()
	if flags.Changed("base-url") {
		cfg.BaseURL = o.baseURL
	}
	if flags.Changed("output") {
		cfg.OutputDir = o.outputDir
	}
	if flags.Changed("timeout") {
		cfg.HTTPTimeout = o.timeout
	}
	if flags.Changed("redis") {
		cfg.RedisAddr = o.redisAddr
	}
	if flags.Changed("compendium") {
		cfg.Compendium = o.compendium
	}
	if flags.Changed("with-setting-truths") {
		cfg.IncludeSettingTruths = o.withSettingTruths
	}
}

func runImport(cmd *cobra.Command, a *app, opts *importOptions) error {
	opts.applyFlags(cmd, a)
	cfg := a.cfg
	if err := cfg.Validate(); err != nil {
		return err
	}

	client, err := dataforged.New(&dataforged.Config{
		BaseURL:     cfg.BaseURL,
		HTTPTimeout: cfg.HTTPTimeout,
	})
	if err != nil {
		return err
	}

	writer, err := systemassets.NewFilesystem(&systemassets.Config{Dir: cfg.OutputDir})
	if err != nil {
		return err
	}

	var snapshotRepo snapshots.Repository
	if cfg.RedisAddr != "" {
		redisClient, err := newRedisClient(cfg.RedisAddr)
		if err != nil {
			return err
		}
		defer func() { _ = redisClient.Close() }()

		snapshotRepo, err = snapshots.NewRedisRepository(&snapshots.Config{Client: redisClient})
		if err != nil {
			return err
		}
	}

	svc, err := importer.NewOrchestrator(&importer.Config{
		Client:               client,
		Writer:               writer,
		Snapshots:            snapshotRepo,
		Compendium:           cfg.Compendium,
		IncludeSettingTruths: cfg.IncludeSettingTruths,
	})
	if err != nil {
		return err
	}

	out, err := svc.Run(cmd.Context(), &importer.RunInput{RunID: opts.runID})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d identifiers into %s (run %s)\n", out.IDs.Len(), cfg.OutputDir, out.RunID)
	if out.Churn != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Since previous run: %d added, %d removed, %d changed\n",
			len(out.Churn.Added), len(out.Churn.Removed), len(out.Churn.Changed))
	}
	return nil
}

func newRedisClient(addr string) (redis.Client, error) {
	if hasScheme(addr) {
		return redis.NewClientFromURL(addr)
	}
	return redis.NewClient(addr, nil)
}

func hasScheme(addr string) bool {
	return strings.HasPrefix(addr, "redis://") ||
		strings.HasPrefix(addr, "rediss://") ||
		strings.HasPrefix(addr, "unix://")
}
