// Package dataforged is the client for the Dataforged content dataset
package dataforged

//go:generate mockgen -destination=mock/mock_client.go -package=dataforgedmock github.com/KirkDiggler/ironsworn-content/internal/clients/dataforged Client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/KirkDiggler/ironsworn-content/internal/entities/dataforged"
	"github.com/KirkDiggler/ironsworn-content/internal/errors"
)

// DefaultBaseURL is where the Dataforged JSON files are published
const DefaultBaseURL = "https://raw.githubusercontent.com/rsek/dataforged/main/"

// Client defines the interface for fetching content documents
type Client interface {
	// Fetch downloads and decodes a single document
	Fetch(ctx context.Context, name dataforged.Name) (any, error)

	// FetchAll downloads every named document concurrently. The returned
	// set keeps the order of names. Any failure aborts the whole fetch.
	FetchAll(ctx context.Context, names []dataforged.Name) (*dataforged.Set, error)
}

// Config contains configuration options for the client.
type Config struct {
	// BaseURL of the dataset (optional, defaults to DefaultBaseURL)
	BaseURL string
	// HTTPTimeout for each request (optional, zero means no timeout)
	HTTPTimeout time.Duration
	// HTTPClient overrides the client built from HTTPTimeout
	HTTPClient *http.Client
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return errors.InvalidArgumentf("invalid base URL %q: %v", cfg.BaseURL, err)
	}
	if cfg.HTTPTimeout < 0 {
		return errors.InvalidArgument("HTTP timeout cannot be negative")
	}
	return nil
}

type client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new client with the given configuration.
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	return &client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
	}, nil
}

func (c *client) Fetch(ctx context.Context, name dataforged.Name) (any, error) {
	target, err := url.JoinPath(c.baseURL, name.SourceFile())
	if err != nil {
		return nil, errors.InvalidArgumentf("failed to build URL for %s: %v", name, err)
	}

	slog.Info(fmt.Sprintf("  Fetching %s", target))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeInvalidArgument, "failed to build request for %s", target)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to fetch %s", target)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Unavailablef("failed to fetch %s: status %d", target, resp.StatusCode).
			WithMeta("status", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeUnavailable, "failed to read %s", target)
	}

	root, err := dataforged.Parse(body)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode %s", target).WithMeta("url", target)
	}
	return root, nil
}

func (c *client) FetchAll(ctx context.Context, names []dataforged.Name) (*dataforged.Set, error) {
	slog.Info("  Fetching Dataforged")

	roots := make([]any, len(names))
	g, gctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			root, err := c.Fetch(gctx, name)
			if err != nil {
				return err
			}
			roots[i] = root
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	set := dataforged.NewSet()
	for i, name := range names {
		set.Add(name, roots[i])
	}
	return set, nil
}
