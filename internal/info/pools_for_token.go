package info

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// PoolsForTokenPageSize is the number of pools fetched per token side.
const PoolsForTokenPageSize = 15

const poolsForTokenQuery = `
  query poolsForToken($address: Bytes!, $blacklist: [String!]) {
    asToken0: curves(
      first: 15
      orderBy: trackedReserveNative
      orderDirection: desc
      where: { txCount_gt: 100, token0: $address, token1_not_in: $blacklist }
    ) {
      id
    }
    asToken1: curves(
      first: 15
      orderBy: trackedReserveNative
      orderDirection: desc
      where: { txCount_gt: 100, token1: $address, token0_not_in: $blacklist }
    ) {
      id
    }
  }
`

type poolID struct {
	ID string `json:"id"`
}

type poolsForTokenResponse struct {
	AsToken0 []poolID `json:"asToken0"`
	AsToken1 []poolID `json:"asToken1"`
}

// FetchPoolsForToken returns the addresses of the most liquid pools containing the token.
// Both aliases query curves. The dashboard's earlier query read asToken1 from pairs, so results
// can differ from it for tokens held on the token1 side.
func (f *Fetcher) FetchPoolsForToken(ctx context.Context, address string) ([]string, error) {
	address = strings.ToLower(address)

	variables := map[string]interface{}{
		"address":   address,
		"blacklist": f.cfg.TokenBlacklist,
	}

	var data poolsForTokenResponse
	if err := f.request(ctx, poolsForTokenQuery, variables, &data); err != nil {
		f.logger.Error("fetch pools for token failed", zap.String("token", address), zap.Error(err))
		return nil, failed(err)
	}

	addresses := make([]string, 0, len(data.AsToken0)+len(data.AsToken1))
	for _, pool := range data.AsToken0 {
		addresses = append(addresses, pool.ID)
	}
	for _, pool := range data.AsToken1 {
		addresses = append(addresses, pool.ID)
	}
	return addresses, nil
}
