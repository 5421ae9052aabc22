package info

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"infoScope/internal/model"
)

// PoolTransactionsPageSize is the number of each event kind fetched per pool.
const PoolTransactionsPageSize = 35

const poolTransactionsQuery = `
  query poolTransactions($address: Bytes!) {
    mints(first: 35, orderBy: timestamp, orderDirection: desc, where: { curve: $address }) {
      id
      timestamp
      curve {
        token0 {
          id
          symbol
        }
        token1 {
          id
          symbol
        }
      }
      to
      amount0
      amount1
      amountUSD
    }
    swaps(first: 35, orderBy: timestamp, orderDirection: desc, where: { curve: $address }) {
      id
      timestamp
      curve {
        token0 {
          id
          symbol
        }
        token1 {
          id
          symbol
        }
      }
      from
      amount0In
      amount1In
      amount0Out
      amount1Out
      amountUSD
    }
    burns(first: 35, orderBy: timestamp, orderDirection: desc, where: { curve: $address }) {
      id
      timestamp
      curve {
        token0 {
          id
          symbol
        }
        token1 {
          id
          symbol
        }
      }
      sender
      amount0
      amount1
      amountUSD
    }
  }
`

type poolTransactionsResponse struct {
	Mints []model.MintResponse `json:"mints"`
	Swaps []model.SwapResponse `json:"swaps"`
	Burns []model.BurnResponse `json:"burns"`
}

// FetchPoolTransactions returns the latest mints, burns and swaps of a pool, in that order.
func (f *Fetcher) FetchPoolTransactions(ctx context.Context, address string) ([]model.Transaction, error) {
	address = strings.ToLower(address)

	var data poolTransactionsResponse
	if err := f.request(ctx, poolTransactionsQuery, map[string]interface{}{"address": address}, &data); err != nil {
		f.logger.Error("fetch pool transactions failed", zap.String("pool", address), zap.Error(err))
		return nil, failed(err)
	}

	txs := make([]model.Transaction, 0, len(data.Mints)+len(data.Burns)+len(data.Swaps))
	txs = append(txs, mapAll(data.Mints, MapMint)...)
	txs = append(txs, mapAll(data.Burns, MapBurn)...)
	txs = append(txs, mapAll(data.Swaps, MapSwap)...)
	return txs, nil
}
