package info

import (
	"testing"

	"infoScope/internal/model"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"0", 0},
		{"42", 42},
		{"-3.5", -3.5},
		{" 1.25 ", 1.25},
		{"0.000000000000000001", 1e-18},
	}
	for _, tc := range tests {
		if got := parseFloat(tc.in); got != tc.want {
			t.Fatalf("parseFloat(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestTxHash(t *testing.T) {
	tests := map[string]string{
		"0xabc-12":  "0xabc",
		"0xabc":     "0xabc",
		"0xabc-1-2": "0xabc",
		"":          "",
	}
	for in, want := range tests {
		if got := txHash(in); got != want {
			t.Fatalf("txHash(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMapSwapExactNet(t *testing.T) {
	swap := model.SwapResponse{
		ID:         "0x1-0",
		Amount0In:  "0.3",
		Amount0Out: "0.1",
		Amount1In:  "",
		Amount1Out: "garbage",
	}
	tx := MapSwap(swap)
	if tx.AmountToken0 != 0.2 {
		t.Fatalf("amount0 mismatch: %v", tx.AmountToken0)
	}
	if tx.AmountToken1 != 0 {
		t.Fatalf("amount1 mismatch: %v", tx.AmountToken1)
	}
}

func TestMapKeepsEntityID(t *testing.T) {
	burn := MapBurn(model.BurnResponse{ID: "0xfeed-4"})
	if burn.ID != "0xfeed-4" {
		t.Fatalf("id mismatch: %q", burn.ID)
	}
	if burn.Hash != "0xfeed" {
		t.Fatalf("hash mismatch: %q", burn.Hash)
	}
}

func TestMapPreservesCount(t *testing.T) {
	mints := make([]model.MintResponse, 7)
	if got := len(mapAll(mints, MapMint)); got != len(mints) {
		t.Fatalf("mapped %d records, want %d", got, len(mints))
	}
}
