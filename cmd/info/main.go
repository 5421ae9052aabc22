package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "info",
		Short:        "Exchange info subgraph client",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("config", "", "config file path")
	root.PersistentFlags().String("subgraph-url", "", "exchange subgraph GraphQL endpoint")
	root.PersistentFlags().StringToString("subgraph-headers", nil, "extra request headers (key=value, comma-separated)")
	root.PersistentFlags().Duration("timeout", defaultTimeout, "subgraph request timeout")
	root.PersistentFlags().StringSlice("token-blacklist", nil, "token addresses excluded from pool lookups (comma-separated)")
	root.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")

	root.AddCommand(
		newPoolTxsCmd(),
		newTokenPoolsCmd(),
		newNativePricesCmd(),
		newChartCmd(),
		newStoredTxsCmd(),
		newServeCmd(),
	)

	return root
}

func newLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevel()
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		return nil, err
	}

	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return cfg.Build()
}
