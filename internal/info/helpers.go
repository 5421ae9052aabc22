package info

import (
	"strings"

	"github.com/shopspring/decimal"

	"infoScope/internal/model"
)

// MapMint converts a mint entity into a Transaction.
func MapMint(mint model.MintResponse) model.Transaction {
	return model.Transaction{
		ID:            mint.ID,
		Type:          model.TransactionMint,
		Hash:          txHash(mint.ID),
		Timestamp:     mint.Timestamp,
		Sender:        mint.To,
		Token0Symbol:  mint.Pool.Token0.Symbol,
		Token1Symbol:  mint.Pool.Token1.Symbol,
		Token0Address: mint.Pool.Token0.ID,
		Token1Address: mint.Pool.Token1.ID,
		AmountUSD:     parseFloat(mint.AmountUSD),
		AmountToken0:  parseFloat(mint.Amount0),
		AmountToken1:  parseFloat(mint.Amount1),
	}
}

// MapBurn converts a burn entity into a Transaction.
func MapBurn(burn model.BurnResponse) model.Transaction {
	return model.Transaction{
		ID:            burn.ID,
		Type:          model.TransactionBurn,
		Hash:          txHash(burn.ID),
		Timestamp:     burn.Timestamp,
		Sender:        burn.Sender,
		Token0Symbol:  burn.Pool.Token0.Symbol,
		Token1Symbol:  burn.Pool.Token1.Symbol,
		Token0Address: burn.Pool.Token0.ID,
		Token1Address: burn.Pool.Token1.ID,
		AmountUSD:     parseFloat(burn.AmountUSD),
		AmountToken0:  parseFloat(burn.Amount0),
		AmountToken1:  parseFloat(burn.Amount1),
	}
}

// MapSwap converts a swap entity into a Transaction. Token amounts are net of in minus out.
func MapSwap(swap model.SwapResponse) model.Transaction {
	amount0 := parseDecimal(swap.Amount0In).Sub(parseDecimal(swap.Amount0Out))
	amount1 := parseDecimal(swap.Amount1In).Sub(parseDecimal(swap.Amount1Out))

	return model.Transaction{
		ID:            swap.ID,
		Type:          model.TransactionSwap,
		Hash:          txHash(swap.ID),
		Timestamp:     swap.Timestamp,
		Sender:        swap.From,
		Token0Symbol:  swap.Pool.Token0.Symbol,
		Token1Symbol:  swap.Pool.Token1.Symbol,
		Token0Address: swap.Pool.Token0.ID,
		Token1Address: swap.Pool.Token1.ID,
		AmountUSD:     parseFloat(swap.AmountUSD),
		AmountToken0:  amount0.InexactFloat64(),
		AmountToken1:  amount1.InexactFloat64(),
	}
}

// MapTokenDayData converts a token (or protocol) day snapshot into a chart point.
func MapTokenDayData(day model.TokenDayData) model.ChartEntry {
	return model.ChartEntry{
		Date:         day.Date,
		VolumeUSD:    parseFloat(day.DailyVolumeUSD),
		LiquidityUSD: parseFloat(day.TotalLiquidityUSD),
	}
}

// MapPairDayData converts a pool day snapshot into a chart point.
func MapPairDayData(day model.PairDayData) model.ChartEntry {
	return model.ChartEntry{
		Date:         day.Date,
		VolumeUSD:    parseFloat(day.DailyVolumeUSD),
		LiquidityUSD: parseFloat(day.ReserveUSD),
	}
}

// entity ids are "<txHash>-<logIndex>"
func txHash(id string) string {
	if idx := strings.IndexByte(id, '-'); idx >= 0 {
		return id[:idx]
	}
	return id
}

func parseDecimal(value string) decimal.Decimal {
	value = strings.TrimSpace(value)
	if value == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseFloat(value string) float64 {
	return parseDecimal(value).InexactFloat64()
}

func mapAll[T any](items []T, fn func(T) model.Transaction) []model.Transaction {
	out := make([]model.Transaction, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}
	return out
}
