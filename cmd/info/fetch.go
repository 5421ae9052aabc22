package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"infoScope/internal/config"
	"infoScope/internal/info"
	"infoScope/internal/model"
)

func addSinkFlags(cmd *cobra.Command) {
	cmd.Flags().String("out", "", "append fetched rows to this JSONL path")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN for persisting fetched rows")
}

func addBlockFlags(cmd *cobra.Command) {
	cmd.Flags().String("block-source", config.BlockSourceSubgraph, "block resolver (subgraph, rpc)")
	cmd.Flags().String("blocks-url", "", "blocks subgraph GraphQL endpoint")
	cmd.Flags().String("rpc", "", "EVM JSON-RPC URL")
}

func newPoolTxsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pool-txs",
		Short: "Fetch the latest mints, burns and swaps of a pool",
		RunE:  runPoolTxs,
	}
	cmd.Flags().String("address", "", "pool address")
	addSinkFlags(cmd)
	return cmd
}

func newTokenPoolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token-pools",
		Short: "Fetch the top pools a token trades in",
		RunE:  runTokenPools,
	}
	cmd.Flags().String("address", "", "token address")
	addSinkFlags(cmd)
	return cmd
}

func newNativePricesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "native-prices",
		Short: "Fetch the native asset price now, 24h, 48h and 7d ago",
		RunE:  runNativePrices,
	}
	cmd.Flags().String("at", "", "reference time (RFC3339 or unix seconds), defaults to now")
	addBlockFlags(cmd)
	addSinkFlags(cmd)
	return cmd
}

func runPoolTxs(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	address, err := addressFlag(cmd)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cmd, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	txs, err := a.fetcher.FetchPoolTransactions(ctx, address)
	if err != nil {
		return err
	}
	a.logger.Info("pool transactions fetched",
		zap.String("pool", address),
		zap.Int("count", len(txs)),
	)

	if a.sink != nil {
		fetchedAt := time.Now().UTC()
		records := make([]model.TransactionRecord, 0, len(txs))
		for _, tx := range txs {
			records = append(records, model.TransactionRecord{Pool: address, Transaction: tx, FetchedAt: fetchedAt})
		}
		if err := a.sink.PutTransactions(ctx, records); err != nil {
			return fmt.Errorf("store transactions: %w", err)
		}
	}

	return printJSON(cmd.OutOrStdout(), txs)
}

func runTokenPools(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	address, err := addressFlag(cmd)
	if err != nil {
		return err
	}

	a, err := newApp(ctx, cmd, appOptions{})
	if err != nil {
		return err
	}
	defer a.Close()

	pools, err := a.fetcher.FetchPoolsForToken(ctx, address)
	if err != nil {
		return err
	}
	a.logger.Info("token pools fetched",
		zap.String("token", address),
		zap.Int("count", len(pools)),
	)

	if a.sink != nil {
		fetchedAt := time.Now().UTC()
		rows := make([]model.TokenPool, 0, len(pools))
		for _, pool := range pools {
			rows = append(rows, model.TokenPool{Token: address, Pool: pool, FetchedAt: fetchedAt})
		}
		if err := a.sink.PutTokenPools(ctx, rows); err != nil {
			return fmt.Errorf("store token pools: %w", err)
		}
	}

	return printJSON(cmd.OutOrStdout(), pools)
}

func runNativePrices(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	now := time.Now()
	if at, _ := cmd.Flags().GetString("at"); at != "" {
		parsed, err := config.ParseTimestamp(at)
		if err != nil {
			return err
		}
		now = parsed
	}

	a, err := newApp(ctx, cmd, appOptions{needBlocks: true})
	if err != nil {
		return err
	}
	defer a.Close()

	snapshot, err := a.fetcher.NativePricesAt(ctx, now)
	if err != nil {
		return err
	}
	a.logger.Info("native prices fetched",
		zap.Uint64("block24", snapshot.Block24),
		zap.Uint64("block48", snapshot.Block48),
		zap.Uint64("block_week", snapshot.BlockWeek),
	)

	if a.sink != nil {
		if err := a.sink.PutPriceSnapshot(ctx, snapshot); err != nil {
			return fmt.Errorf("store price snapshot: %w", err)
		}
	}

	return printJSON(cmd.OutOrStdout(), snapshot)
}

func addressFlag(cmd *cobra.Command) (string, error) {
	raw, _ := cmd.Flags().GetString("address")
	if raw == "" {
		return "", fmt.Errorf("address is required")
	}
	return info.ParseAddress(raw)
}
