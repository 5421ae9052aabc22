package model

// TransactionType names the kind of pool event a Transaction was mapped from.
type TransactionType string

const (
	TransactionMint TransactionType = "MINT"
	TransactionSwap TransactionType = "SWAP"
	TransactionBurn TransactionType = "BURN"
)

// Transaction is the view-model shown in the pool transactions table.
type Transaction struct {
	// ID is the subgraph entity id, "<hash>-<logIndex>".
	ID            string          `json:"id"`
	Type          TransactionType `json:"type"`
	Hash          string          `json:"hash"`
	Timestamp     string          `json:"timestamp"`
	Sender        string          `json:"sender"`
	Token0Symbol  string          `json:"token0Symbol"`
	Token1Symbol  string          `json:"token1Symbol"`
	Token0Address string          `json:"token0Address"`
	Token1Address string          `json:"token1Address"`
	AmountUSD     float64         `json:"amountUSD"`
	AmountToken0  float64         `json:"amountToken0"`
	AmountToken1  float64         `json:"amountToken1"`
}
