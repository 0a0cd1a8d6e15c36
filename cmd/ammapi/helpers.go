package main

import (
	"encoding/hex"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/holiman/uint256"

	"synnergy-network/amm/core"
)

func parseHexAddress(s string) (core.Address, error) {
	var a core.Address
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return a, fmt.Errorf("invalid address %q: %w", s, err)
	}
	if len(b) != len(a) {
		return a, fmt.Errorf("invalid address %q: want %d bytes, got %d", s, len(a), len(b))
	}
	copy(a[:], b)
	return a, nil
}

// parsePathQuery reads the comma-separated "path" parameter and the named
// amount query parameter (e.g. "in" or "out") from the request.
func parsePathQuery(r *http.Request, amountParam string) ([]core.AssetID, core.Amount, error) {
	rawPath := r.URL.Query().Get("path")
	if rawPath == "" {
		return nil, core.ZeroAmount(), fmt.Errorf("missing path query parameter")
	}
	parts := strings.Split(rawPath, ",")
	path := make([]core.AssetID, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, core.ZeroAmount(), fmt.Errorf("invalid path entry %q: %w", p, err)
		}
		path = append(path, core.AssetID(v))
	}

	rawAmount := r.URL.Query().Get(amountParam)
	if rawAmount == "" {
		return nil, core.ZeroAmount(), fmt.Errorf("missing %s query parameter", amountParam)
	}
	amount, err := uint256.FromDecimal(rawAmount)
	if err != nil {
		return nil, core.ZeroAmount(), fmt.Errorf("invalid %s %q: %w", amountParam, rawAmount, err)
	}
	return path, *amount, nil
}
