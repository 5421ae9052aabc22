package info

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"infoScope/internal/model"
)

// ErrRequestFailed is the single failure kind reported by every fetch.
var ErrRequestFailed = errors.New("subgraph request failed")

// Requester sends one GraphQL query and decodes its data into out.
type Requester interface {
	Request(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error
}

// BlockResolver maps unix timestamps to blocks. For each timestamp T it returns the latest
// block with T < timestamp < T+600, in input order, and fails when no block falls in that window.
type BlockResolver interface {
	BlocksFromTimestamps(ctx context.Context, timestamps []int64) ([]model.Block, error)
}

// Config holds fetcher settings.
type Config struct {
	TokenBlacklist []string
	Blocks         BlockResolver
}

// Fetcher runs the info queries against the exchange subgraph.
type Fetcher struct {
	cfg    Config
	client Requester
	logger *zap.Logger
	now    func() time.Time
}

// NewFetcher builds a Fetcher with its dependencies.
func NewFetcher(cfg Config, client Requester, logger *zap.Logger) *Fetcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	blacklist := make([]string, 0, len(cfg.TokenBlacklist))
	for _, token := range cfg.TokenBlacklist {
		token = strings.ToLower(strings.TrimSpace(token))
		if token != "" {
			blacklist = append(blacklist, token)
		}
	}
	cfg.TokenBlacklist = blacklist

	return &Fetcher{
		cfg:    cfg,
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

func (f *Fetcher) request(ctx context.Context, query string, variables map[string]interface{}, out interface{}) error {
	if f.client == nil {
		return fmt.Errorf("subgraph client is nil")
	}
	return f.client.Request(ctx, query, variables, out)
}

func failed(err error) error {
	return fmt.Errorf("%w: %v", ErrRequestFailed, err)
}
