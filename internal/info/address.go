package info

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// ParseAddress validates a hex address and returns it in the lowercase form subgraph ids use.
func ParseAddress(input string) (string, error) {
	input = strings.TrimSpace(input)
	if !common.IsHexAddress(input) {
		return "", fmt.Errorf("invalid address: %q", input)
	}
	return strings.ToLower(common.HexToAddress(input).Hex()), nil
}
