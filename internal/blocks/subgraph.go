package blocks

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"infoScope/internal/info"
	"infoScope/internal/model"
)

// SearchWindowSeconds bounds how far after a timestamp the blocks subgraph is searched.
const SearchWindowSeconds = 600

// SubgraphResolver resolves timestamps through a blocks subgraph.
type SubgraphResolver struct {
	client info.Requester
}

func NewSubgraphResolver(client info.Requester) *SubgraphResolver {
	return &SubgraphResolver{client: client}
}

// BlocksFromTimestamps returns one block per timestamp, in input order.
func (r *SubgraphResolver) BlocksFromTimestamps(ctx context.Context, timestamps []int64) ([]model.Block, error) {
	if len(timestamps) == 0 {
		return nil, nil
	}
	if r.client == nil {
		return nil, fmt.Errorf("blocks client is nil")
	}

	var data map[string][]model.BlockResponse
	if err := r.client.Request(ctx, buildBlocksQuery(timestamps), nil, &data); err != nil {
		return nil, fmt.Errorf("query blocks: %w", err)
	}

	out := make([]model.Block, 0, len(timestamps))
	for _, ts := range timestamps {
		found := data[blockAlias(ts)]
		if len(found) == 0 {
			return nil, fmt.Errorf("no block found for timestamp %d", ts)
		}
		block, err := parseBlock(found[0])
		if err != nil {
			return nil, fmt.Errorf("timestamp %d: %w", ts, err)
		}
		out = append(out, block)
	}
	return out, nil
}

func buildBlocksQuery(timestamps []int64) string {
	var b strings.Builder
	b.WriteString("query blocks {\n")
	seen := make(map[int64]struct{}, len(timestamps))
	for _, ts := range timestamps {
		if _, ok := seen[ts]; ok {
			continue
		}
		seen[ts] = struct{}{}
		fmt.Fprintf(&b,
			"  %s: blocks(first: 1, orderBy: timestamp, orderDirection: desc, where: { timestamp_gt: %d, timestamp_lt: %d }) {\n    number\n    timestamp\n  }\n",
			blockAlias(ts), ts, ts+SearchWindowSeconds,
		)
	}
	b.WriteString("}\n")
	return b.String()
}

func blockAlias(ts int64) string {
	return "t" + strconv.FormatInt(ts, 10)
}

func parseBlock(resp model.BlockResponse) (model.Block, error) {
	number, err := strconv.ParseUint(resp.Number, 10, 64)
	if err != nil {
		return model.Block{}, fmt.Errorf("invalid block number %q", resp.Number)
	}
	var ts int64
	if resp.Timestamp != "" {
		ts, err = strconv.ParseInt(resp.Timestamp, 10, 64)
		if err != nil {
			return model.Block{}, fmt.Errorf("invalid block timestamp %q", resp.Timestamp)
		}
	}
	return model.Block{Number: number, Timestamp: ts}, nil
}
