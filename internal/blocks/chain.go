package blocks

import (
	"context"
	"fmt"

	"infoScope/internal/model"
)

// HeaderSource provides block timestamps from a node.
type HeaderSource interface {
	LatestBlockNumber(ctx context.Context) (uint64, error)
	BlockTimestamp(ctx context.Context, number uint64) (uint64, error)
}

// ChainResolver resolves timestamps by binary search over block headers.
type ChainResolver struct {
	source HeaderSource
}

func NewChainResolver(source HeaderSource) *ChainResolver {
	return &ChainResolver{source: source}
}

// BlocksFromTimestamps returns, for each timestamp T, the latest block with T < timestamp < T+SearchWindowSeconds.
// Header timestamps are memoized for the duration of one call only.
func (r *ChainResolver) BlocksFromTimestamps(ctx context.Context, timestamps []int64) ([]model.Block, error) {
	if len(timestamps) == 0 {
		return nil, nil
	}
	if r.source == nil {
		return nil, fmt.Errorf("header source is nil")
	}

	latest, err := r.source.LatestBlockNumber(ctx)
	if err != nil {
		return nil, fmt.Errorf("get latest block: %w", err)
	}

	headers := &headerMemo{source: r.source, seen: make(map[uint64]uint64)}
	out := make([]model.Block, 0, len(timestamps))
	for _, ts := range timestamps {
		block, err := blockAt(ctx, headers, ts, latest)
		if err != nil {
			return nil, err
		}
		out = append(out, block)
	}
	return out, nil
}

func blockAt(ctx context.Context, headers *headerMemo, ts int64, latest uint64) (model.Block, error) {
	if ts < 0 {
		return model.Block{}, fmt.Errorf("negative timestamp %d", ts)
	}
	target := uint64(ts)
	limit := target + SearchWindowSeconds

	latestTs, err := headers.at(ctx, latest)
	if err != nil {
		return model.Block{}, err
	}
	if latestTs <= target {
		return model.Block{}, fmt.Errorf("timestamp %d is at or after latest block %d", ts, latest)
	}

	number, numberTs := latest, latestTs
	if latestTs >= limit {
		// first block at or past the window end
		lo, hi := uint64(0), latest
		for lo < hi {
			if err := ctx.Err(); err != nil {
				return model.Block{}, err
			}
			mid := lo + (hi-lo)/2
			midTs, err := headers.at(ctx, mid)
			if err != nil {
				return model.Block{}, err
			}
			if midTs >= limit {
				hi = mid
			} else {
				lo = mid + 1
			}
		}
		if lo == 0 {
			return model.Block{}, fmt.Errorf("no block found for timestamp %d", ts)
		}
		number = lo - 1
		if numberTs, err = headers.at(ctx, number); err != nil {
			return model.Block{}, err
		}
	}

	if numberTs <= target {
		return model.Block{}, fmt.Errorf("no block found for timestamp %d", ts)
	}
	return model.Block{Number: number, Timestamp: int64(numberTs)}, nil
}

type headerMemo struct {
	source HeaderSource
	seen   map[uint64]uint64
}

func (m *headerMemo) at(ctx context.Context, number uint64) (uint64, error) {
	if ts, ok := m.seen[number]; ok {
		return ts, nil
	}
	ts, err := m.source.BlockTimestamp(ctx, number)
	if err != nil {
		return 0, fmt.Errorf("block timestamp %d: %w", number, err)
	}
	m.seen[number] = ts
	return ts, nil
}
