package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"infoScope/internal/config"
)

func newStoredTxsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stored-txs",
		Short: "List pool transactions persisted in Postgres, newest first",
		RunE:  runStoredTxs,
	}
	cmd.Flags().String("address", "", "pool address")
	cmd.Flags().Int("limit", 100, "maximum number of rows")
	cmd.Flags().String("pg-dsn", "", "Postgres DSN")
	return cmd
}

func runStoredTxs(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	address, err := addressFlag(cmd)
	if err != nil {
		return err
	}

	cfgFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return err
	}
	if cfg.PGDSN == "" {
		return fmt.Errorf("pg dsn is required")
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer logger.Sync()

	store, err := openStore(ctx, cfg.PGDSN)
	if err != nil {
		return err
	}
	defer store.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	records, err := store.PoolTransactions(ctx, address, limit)
	if err != nil {
		return fmt.Errorf("load stored transactions: %w", err)
	}
	logger.Info("stored transactions loaded",
		zap.String("pool", address),
		zap.Int("count", len(records)),
	)

	return printJSON(cmd.OutOrStdout(), records)
}
