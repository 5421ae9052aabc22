package chain

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// fakeNode answers eth_blockNumber and eth_getBlockByNumber with block n at timestamp 1000+n.
func fakeNode(t *testing.T, headerCalls *int32) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage   `json:"id"`
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
			return
		}

		var result interface{}
		switch req.Method {
		case "eth_blockNumber":
			result = "0x64"
		case "eth_chainId":
			result = "0x38"
		case "eth_getBlockByNumber":
			atomic.AddInt32(headerCalls, 1)
			var tag string
			_ = json.Unmarshal(req.Params[0], &tag)
			number, err := hexutil.DecodeUint64(tag)
			if err != nil {
				t.Errorf("bad block tag %q", tag)
				return
			}
			result = fakeHeader(number)
		default:
			t.Errorf("unexpected method %s", req.Method)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"jsonrpc": "2.0",
			"id":      req.ID,
			"result":  result,
		})
	}))
}

func fakeHeader(number uint64) map[string]interface{} {
	zeroHash := "0x" + fmt.Sprintf("%064x", 0)
	return map[string]interface{}{
		"parentHash":       zeroHash,
		"sha3Uncles":       zeroHash,
		"miner":            "0x0000000000000000000000000000000000000000",
		"stateRoot":        zeroHash,
		"transactionsRoot": zeroHash,
		"receiptsRoot":     zeroHash,
		"logsBloom":        "0x" + fmt.Sprintf("%0512x", 0),
		"difficulty":       "0x1",
		"number":           hexutil.EncodeUint64(number),
		"gasLimit":         "0x1c9c380",
		"gasUsed":          "0x0",
		"timestamp":        hexutil.EncodeUint64(1000 + number),
		"extraData":        "0x",
		"mixHash":          zeroHash,
		"nonce":            "0x0000000000000000",
		"hash":             zeroHash,
	}
}

func TestClientReadsHeaders(t *testing.T) {
	var calls int32
	server := fakeNode(t, &calls)
	defer server.Close()

	client, err := NewClient(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	chainID, err := client.ChainID(context.Background())
	if err != nil {
		t.Fatalf("chain id: %v", err)
	}
	if chainID.Uint64() != 56 {
		t.Fatalf("chain id mismatch: %s", chainID)
	}

	latest, err := client.LatestBlockNumber(context.Background())
	if err != nil {
		t.Fatalf("latest block: %v", err)
	}
	if latest != 100 {
		t.Fatalf("latest mismatch: %d", latest)
	}

	ts, err := client.BlockTimestamp(context.Background(), 42)
	if err != nil {
		t.Fatalf("block timestamp: %v", err)
	}
	if ts != 1042 {
		t.Fatalf("timestamp mismatch: %d", ts)
	}
}

func TestClientKeepsNoTimestampCache(t *testing.T) {
	var calls int32
	server := fakeNode(t, &calls)
	defer server.Close()

	client, err := NewClient(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer client.Close()

	for i := 0; i < 3; i++ {
		if _, err := client.BlockTimestamp(context.Background(), 7); err != nil {
			t.Fatalf("block timestamp: %v", err)
		}
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Fatalf("expected three header calls, got %d", got)
	}
}
