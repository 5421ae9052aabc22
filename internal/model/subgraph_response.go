package model

// TokenRef is the token projection embedded in pool-scoped subgraph entities.
type TokenRef struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
}

// PoolRef is the pool projection embedded in mint, swap and burn entities.
type PoolRef struct {
	Token0 TokenRef `json:"token0"`
	Token1 TokenRef `json:"token1"`
}

// MintResponse is a mint entity as returned by the subgraph.
type MintResponse struct {
	ID        string  `json:"id"`
	Timestamp string  `json:"timestamp"`
	Pool      PoolRef `json:"curve"`
	To        string  `json:"to"`
	Amount0   string  `json:"amount0"`
	Amount1   string  `json:"amount1"`
	AmountUSD string  `json:"amountUSD"`
}

// SwapResponse is a swap entity as returned by the subgraph.
type SwapResponse struct {
	ID         string  `json:"id"`
	Timestamp  string  `json:"timestamp"`
	Pool       PoolRef `json:"curve"`
	From       string  `json:"from"`
	Amount0In  string  `json:"amount0In"`
	Amount1In  string  `json:"amount1In"`
	Amount0Out string  `json:"amount0Out"`
	Amount1Out string  `json:"amount1Out"`
	AmountUSD  string  `json:"amountUSD"`
}

// BurnResponse is a burn entity as returned by the subgraph.
type BurnResponse struct {
	ID        string  `json:"id"`
	Timestamp string  `json:"timestamp"`
	Pool      PoolRef `json:"curve"`
	Sender    string  `json:"sender"`
	Amount0   string  `json:"amount0"`
	Amount1   string  `json:"amount1"`
	AmountUSD string  `json:"amountUSD"`
}

// TokenDayData is a daily token snapshot. Date is unix seconds.
type TokenDayData struct {
	Date              int64  `json:"date"`
	DailyVolumeUSD    string `json:"dailyVolumeUSD"`
	TotalLiquidityUSD string `json:"totalLiquidityUSD"`
}

// ProtocolDayData has the same footprint as TokenDayData.
type ProtocolDayData = TokenDayData

// PairDayData is a daily pool snapshot. Date is unix seconds.
type PairDayData struct {
	Date           int64  `json:"date"`
	DailyVolumeUSD string `json:"dailyVolumeUSD"`
	ReserveUSD     string `json:"reserveUSD"`
}

// BundleResponse carries the native asset price.
type BundleResponse struct {
	NativePrice string `json:"nativePrice"`
}

// BlockResponse is a block entity from the blocks subgraph.
type BlockResponse struct {
	Number    string `json:"number"`
	Timestamp string `json:"timestamp"`
}
