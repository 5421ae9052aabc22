package model

import "time"

// TransactionRecord is a Transaction tagged with its pool for storage.
type TransactionRecord struct {
	Pool string `json:"pool"`
	Transaction
	FetchedAt time.Time `json:"fetched_at"`
}

// TokenPool links a token to a pool it trades in.
type TokenPool struct {
	Token     string    `json:"token"`
	Pool      string    `json:"pool"`
	FetchedAt time.Time `json:"fetched_at"`
}

// PriceSnapshot is a NativePrices observation with the blocks it was taken at.
type PriceSnapshot struct {
	NativePrices
	Block24   uint64    `json:"block24"`
	Block48   uint64    `json:"block48"`
	BlockWeek uint64    `json:"block_week"`
	FetchedAt time.Time `json:"fetched_at"`
}

// ChartRecord is a ChartEntry tagged with the series it belongs to.
type ChartRecord struct {
	Scope   string `json:"scope"`
	Subject string `json:"subject"`
	ChartEntry
}
