// Package importer fetches the Dataforged documents, assigns identifiers,
// rewrites their text and writes the results for the Foundry system
package importer

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/ironsworn-content/internal/clients/dataforged"
	entities "github.com/KirkDiggler/ironsworn-content/internal/entities/dataforged"
	"github.com/KirkDiggler/ironsworn-content/internal/errors"
	"github.com/KirkDiggler/ironsworn-content/internal/pkg/idgen"
	"github.com/KirkDiggler/ironsworn-content/internal/repositories/snapshots"
	"github.com/KirkDiggler/ironsworn-content/internal/repositories/systemassets"
	"github.com/KirkDiggler/ironsworn-content/internal/services/idmap"
	"github.com/KirkDiggler/ironsworn-content/internal/services/markup"
	"github.com/KirkDiggler/ironsworn-content/internal/services/processors"
)

// RunIDPrefix prefixes generated run identifiers
const RunIDPrefix = "run"

// Service defines the interface for import runs
type Service interface {
	// Run performs one complete import
	Run(ctx context.Context, input *RunInput) (*RunOutput, error)
}

// Config holds the dependencies for the import orchestrator
type Config struct {
	Client    dataforged.Client
	Writer    systemassets.Repository
	Snapshots snapshots.Repository // optional

	IDGenerator          idgen.Generator
	Compendium           string
	IncludeSettingTruths bool
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	if c.Writer == nil {
		vb.RequiredField("Writer")
	}
	if c.IDGenerator == nil {
		c.IDGenerator = idgen.NewUUID(RunIDPrefix)
	}
	if c.Compendium == "" {
		c.Compendium = markup.DefaultCompendium
	}

	return vb.Build()
}

type orchestrator struct {
	client    dataforged.Client
	writer    systemassets.Repository
	snapshots snapshots.Repository

	idGen                idgen.Generator
	compendium           string
	includeSettingTruths bool
}

// NewOrchestrator creates a new import orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &orchestrator{
		client:               cfg.Client,
		writer:               cfg.Writer,
		snapshots:            cfg.Snapshots,
		idGen:                cfg.IDGenerator,
		compendium:           cfg.Compendium,
		includeSettingTruths: cfg.IncludeSettingTruths,
	}, nil
}

// step pairs a processor with the file its result is written to
type step struct {
	output  entities.OutputName
	process processors.Processor
	write   bool
}

func (o *orchestrator) steps() []step {
	return []step{
		{output: entities.OutputAssets, process: processors.Assets, write: true},
		{output: entities.OutputEncounters, process: processors.Encounters, write: true},
		{output: entities.OutputMoves, process: processors.Moves, write: true},
		{output: entities.OutputOracles, process: processors.Oracles, write: true},
		{output: entities.OutputSettingTruths, process: processors.SettingTruths, write: o.includeSettingTruths},
	}
}

// Run fetches every document, builds the identifier map, processes each
// document and writes the results. Any fetch, process or write failure
// aborts the run.
func (o *orchestrator) Run(ctx context.Context, input *RunInput) (*RunOutput, error) {
	if input == nil {
		input = &RunInput{}
	}

	runID := input.RunID
	if runID == "" {
		runID = o.idGen.Generate()
	}

	docs, err := o.client.FetchAll(ctx, entities.Names)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch Dataforged")
	}

	ids := idmap.Build(docs)
	slog.Debug("Built identifier map", "run_id", runID, "ids", ids.Len())

	churn := o.reportChurn(ctx, ids)

	rewriter, err := markup.NewRewriter(&markup.Config{
		IDs:        ids,
		Compendium: o.compendium,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create rewriter")
	}

	type pending struct {
		output entities.OutputName
		value  any
	}
	var writes []pending

	for _, st := range o.steps() {
		value, err := st.process(rewriter, docs)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to process %s", st.output)
		}
		if st.write {
			writes = append(writes, pending{output: st.output, value: value})
		}
	}
	writes = append(writes, pending{output: entities.OutputIDs, value: ids})

	g, gctx := errgroup.WithContext(ctx)
	for _, w := range writes {
		g.Go(func() error {
			return o.writer.Write(gctx, w.output, w.value)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "failed to write system assets")
	}

	written := make([]entities.OutputName, len(writes))
	for i, w := range writes {
		written[i] = w.output
	}

	o.saveSnapshot(ctx, runID, ids)

	return &RunOutput{
		RunID:   runID,
		IDs:     ids,
		Written: written,
		Churn:   churn,
	}, nil
}

// reportChurn compares ids with the previous run. Snapshot failures are
// logged and never abort the import.
func (o *orchestrator) reportChurn(ctx context.Context, ids *idmap.IDMap) *idmap.Churn {
	if o.snapshots == nil {
		return nil
	}

	latest, err := o.snapshots.Latest(ctx)
	if err != nil {
		if errors.GetCode(err).Fatal() {
			slog.Warn("Failed to load previous identifier map", "error", err)
		}
		return nil
	}

	churn := idmap.Diff(latest.Snapshot.IDs, ids)
	attrs := []any{
		"previous_run", latest.Snapshot.RunID,
		"added", len(churn.Added),
		"removed", len(churn.Removed),
		"changed", len(churn.Changed),
	}
	if churn.Stable() {
		slog.Info("Identifier map compared with previous run", attrs...)
	} else {
		slog.Warn("Identifiers changed since previous run", attrs...)
	}
	return churn
}

func (o *orchestrator) saveSnapshot(ctx context.Context, runID string, ids *idmap.IDMap) {
	if o.snapshots == nil {
		return
	}

	_, err := o.snapshots.Save(ctx, snapshots.SaveInput{
		RunID: runID,
		IDs:   ids,
	})
	if err != nil {
		slog.Warn("Failed to save identifier map", "run_id", runID, "error", err)
	}
}
