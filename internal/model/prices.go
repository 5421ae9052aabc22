package model

// NativePrices holds native asset USD prices now and at fixed offsets in the past.
type NativePrices struct {
	Current float64 `json:"current"`
	OneDay  float64 `json:"oneDay"`
	TwoDay  float64 `json:"twoDay"`
	Week    float64 `json:"week"`
}

// Block pairs a block number with its timestamp (unix seconds).
type Block struct {
	Number    uint64 `json:"number"`
	Timestamp int64  `json:"timestamp"`
}
