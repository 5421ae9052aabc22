package info

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"infoScope/internal/model"
)

// ChartPageSize is the fixed number of daily points fetched per chart.
const ChartPageSize = 1000

const poolChartQuery = `
  query poolDayDatas($address: Bytes!) {
    pairDayDatas(first: 1000, orderBy: date, orderDirection: asc, where: { pairAddress: $address }) {
      date
      dailyVolumeUSD
      reserveUSD
    }
  }
`

const tokenChartQuery = `
  query tokenDayDatas($address: Bytes!) {
    tokenDayDatas(first: 1000, orderBy: date, orderDirection: asc, where: { token: $address }) {
      date
      dailyVolumeUSD
      totalLiquidityUSD
    }
  }
`

const protocolChartQuery = `
  query protocolDayDatas {
    omnitradeDayDatas(first: 1000, orderBy: date, orderDirection: asc) {
      date
      dailyVolumeUSD
      totalLiquidityUSD
    }
  }
`

type pairDayDatasResponse struct {
	PairDayDatas []model.PairDayData `json:"pairDayDatas"`
}

type tokenDayDatasResponse struct {
	TokenDayDatas []model.TokenDayData `json:"tokenDayDatas"`
}

type protocolDayDatasResponse struct {
	ProtocolDayDatas []model.ProtocolDayData `json:"omnitradeDayDatas"`
}

// FetchPoolChartData returns daily volume and reserve points for a pool.
func (f *Fetcher) FetchPoolChartData(ctx context.Context, address string) ([]model.ChartEntry, error) {
	address = strings.ToLower(address)

	var data pairDayDatasResponse
	if err := f.request(ctx, poolChartQuery, map[string]interface{}{"address": address}, &data); err != nil {
		f.logger.Error("fetch pool chart data failed", zap.String("pool", address), zap.Error(err))
		return nil, failed(err)
	}

	entries := make([]model.ChartEntry, 0, len(data.PairDayDatas))
	for _, day := range data.PairDayDatas {
		entries = append(entries, MapPairDayData(day))
	}
	return entries, nil
}

// FetchTokenChartData returns daily volume and liquidity points for a token.
func (f *Fetcher) FetchTokenChartData(ctx context.Context, address string) ([]model.ChartEntry, error) {
	address = strings.ToLower(address)

	var data tokenDayDatasResponse
	if err := f.request(ctx, tokenChartQuery, map[string]interface{}{"address": address}, &data); err != nil {
		f.logger.Error("fetch token chart data failed", zap.String("token", address), zap.Error(err))
		return nil, failed(err)
	}

	entries := make([]model.ChartEntry, 0, len(data.TokenDayDatas))
	for _, day := range data.TokenDayDatas {
		entries = append(entries, MapTokenDayData(day))
	}
	return entries, nil
}

// FetchProtocolChartData returns daily protocol-wide volume and liquidity points.
func (f *Fetcher) FetchProtocolChartData(ctx context.Context) ([]model.ChartEntry, error) {
	var data protocolDayDatasResponse
	if err := f.request(ctx, protocolChartQuery, nil, &data); err != nil {
		f.logger.Error("fetch protocol chart data failed", zap.Error(err))
		return nil, failed(err)
	}

	entries := make([]model.ChartEntry, 0, len(data.ProtocolDayDatas))
	for _, day := range data.ProtocolDayDatas {
		entries = append(entries, MapTokenDayData(day))
	}
	return entries, nil
}
