package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"infoScope/internal/model"
)

const (
	chartScopePool     = "pool"
	chartScopeToken    = "token"
	chartScopeProtocol = "protocol"
)

func newChartCmd() *cobra.Command {
	chartCmd := &cobra.Command{
		Use:   "chart",
		Short: "Fetch daily volume and liquidity series",
	}

	poolCmd := &cobra.Command{
		Use:   "pool",
		Short: "Daily series of a pool",
		RunE:  runChart(chartScopePool),
	}
	poolCmd.Flags().String("address", "", "pool address")
	addSinkFlags(poolCmd)

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Daily series of a token",
		RunE:  runChart(chartScopeToken),
	}
	tokenCmd.Flags().String("address", "", "token address")
	addSinkFlags(tokenCmd)

	protocolCmd := &cobra.Command{
		Use:   "protocol",
		Short: "Daily series of the whole exchange",
		RunE:  runChart(chartScopeProtocol),
	}
	addSinkFlags(protocolCmd)

	chartCmd.AddCommand(poolCmd, tokenCmd, protocolCmd)
	return chartCmd
}

func runChart(scope string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var address string
		if scope != chartScopeProtocol {
			var err error
			address, err = addressFlag(cmd)
			if err != nil {
				return err
			}
		}

		a, err := newApp(ctx, cmd, appOptions{})
		if err != nil {
			return err
		}
		defer a.Close()

		var entries []model.ChartEntry
		switch scope {
		case chartScopePool:
			entries, err = a.fetcher.FetchPoolChartData(ctx, address)
		case chartScopeToken:
			entries, err = a.fetcher.FetchTokenChartData(ctx, address)
		default:
			entries, err = a.fetcher.FetchProtocolChartData(ctx)
		}
		if err != nil {
			return err
		}
		a.logger.Info("chart data fetched",
			zap.String("scope", scope),
			zap.String("subject", address),
			zap.Int("days", len(entries)),
		)

		if a.sink != nil {
			records := make([]model.ChartRecord, 0, len(entries))
			for _, entry := range entries {
				records = append(records, model.ChartRecord{Scope: scope, Subject: address, ChartEntry: entry})
			}
			if err := a.sink.PutChart(ctx, records); err != nil {
				return fmt.Errorf("store chart: %w", err)
			}
		}

		return printJSON(cmd.OutOrStdout(), entries)
	}
}
