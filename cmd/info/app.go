package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"infoScope/internal/blocks"
	"infoScope/internal/chain"
	"infoScope/internal/config"
	"infoScope/internal/graphql"
	"infoScope/internal/info"
	"infoScope/internal/metrics"
	"infoScope/internal/storage"
	"infoScope/internal/storage/postgres"
)

const defaultTimeout = 15 * time.Second

// app bundles the dependencies a command runs with.
type app struct {
	cfg     config.Config
	logger  *zap.Logger
	metrics *metrics.Metrics
	fetcher *info.Fetcher
	sink    storage.Sink
	closers []func()
}

type appOptions struct {
	needBlocks bool
}

func newApp(ctx context.Context, cmd *cobra.Command, opts appOptions) (*app, error) {
	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, logger: logger, metrics: metrics.New("")}
	a.closers = append(a.closers, func() { _ = logger.Sync() })

	if err := cfg.Validate(); err != nil {
		a.Close()
		return nil, err
	}

	subgraph := a.newGraphQLClient(cfg.SubgraphURL)

	var resolver info.BlockResolver
	if opts.needBlocks {
		resolver, err = a.newBlockResolver(ctx)
		if err != nil {
			a.Close()
			return nil, err
		}
	}

	a.fetcher = info.NewFetcher(info.Config{
		TokenBlacklist: cfg.TokenBlacklist,
		Blocks:         resolver,
	}, subgraph, logger)

	sink, err := a.newSink(ctx)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.sink = sink

	return a, nil
}

func (a *app) newGraphQLClient(endpoint string) *graphql.Client {
	opts := []graphql.ClientOption{
		graphql.WithTimeout(a.cfg.Timeout),
		graphql.WithObserver(a.metrics),
	}
	for k, v := range a.cfg.SubgraphHeaders {
		opts = append(opts, graphql.WithHeader(k, v))
	}
	return graphql.NewClient(endpoint, opts...)
}

func (a *app) newBlockResolver(ctx context.Context) (info.BlockResolver, error) {
	if err := a.cfg.ValidateBlocks(); err != nil {
		return nil, err
	}

	switch a.cfg.BlockSource {
	case config.BlockSourceRPC:
		chainClient, err := chain.NewClient(ctx, a.cfg.RPCURL)
		if err != nil {
			return nil, fmt.Errorf("connect rpc: %w", err)
		}
		a.closers = append(a.closers, chainClient.Close)

		chainID, err := chainClient.ChainID(ctx)
		if err != nil {
			return nil, fmt.Errorf("get chain id: %w", err)
		}
		a.logger.Info("rpc block source connected", zap.String("chain_id", chainID.String()))
		return blocks.NewChainResolver(chainClient), nil
	default:
		return blocks.NewSubgraphResolver(a.newGraphQLClient(a.cfg.BlocksURL)), nil
	}
}

func (a *app) newSink(ctx context.Context) (storage.Sink, error) {
	var sinks storage.Multi
	if a.cfg.Out != "" {
		sinks = append(sinks, storage.NewJsonlStorage(a.cfg.Out))
	}
	if a.cfg.PGDSN != "" {
		store, err := openStore(ctx, a.cfg.PGDSN)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, store.Close)
		sinks = append(sinks, store)
	}
	if len(sinks) == 0 {
		return nil, nil
	}
	return sinks, nil
}

func openStore(ctx context.Context, dsn string) (*postgres.Store, error) {
	store, err := postgres.NewStore(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := store.Ping(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return store, nil
}

// Close releases resources in reverse order of acquisition.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func printJSON(w io.Writer, value interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}
