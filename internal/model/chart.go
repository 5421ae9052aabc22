package model

// ChartEntry is one daily point of a volume/liquidity chart.
type ChartEntry struct {
	Date         int64   `json:"date"`
	VolumeUSD    float64 `json:"volumeUSD"`
	LiquidityUSD float64 `json:"liquidityUSD"`
}
