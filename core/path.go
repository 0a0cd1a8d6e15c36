package core

// path.go – multi-hop trading paths (§4.3.3): get_target_amounts and
// get_supply_amounts, with the optional price-impact gate. Grounded on
// amm.go's Dijkstra router in spirit (a path is a sequence of pool hops)
// but simplified to the spec's caller-supplied path rather than computing
// one, since route discovery is not part of this spec's scope.

import (
	"github.com/shopspring/decimal"
)

// MaxHops bounds the length of a trading path (§4.3.3). The reference value
// is 3.
const MaxHops = 3

func pathLenOK(path []AssetID) bool {
	return len(path) >= 2 && len(path) <= MaxHops
}

// impactExceeded reports whether out/reserve >= limit, in rational
// arithmetic via shopspring/decimal so the comparison is exact regardless
// of how large the 256-bit operands are. Matches the non-strict `>=`
// convention the reference scenarios (§8 S7) assume.
func impactExceeded(out, reserve Amount, limit decimal.Decimal) bool {
	if reserve.IsZero() {
		return true
	}
	outDec := decimal.NewFromBigInt(out.ToBig(), 0)
	resDec := decimal.NewFromBigInt(reserve.ToBig(), 0)
	// out/reserve >= limit  <=>  out >= limit*reserve, since reserve > 0.
	return outDec.Cmp(limit.Mul(resDec)) >= 0
}

// GetTargetAmounts computes the output amount at every hop of path for a
// given input, per §4.3.3. impactLimit is optional (nil disables the gate).
func (e *Engine) GetTargetAmounts(path []AssetID, supplyIn Amount, impactLimit *decimal.Decimal) ([]Amount, error) {
	if !pathLenOK(path) {
		return nil, ErrInvalidTradingPathLen
	}
	amounts := make([]Amount, len(path))
	amounts[0] = supplyIn
	for i := 0; i < len(path)-1; i++ {
		pair, _ := Canonicalize(path[i], path[i+1])
		if !e.pools.IsAllowed(pair) {
			return nil, ErrTradingPairNotAllowed
		}
		s, t := e.pools.GetLiquidity(path[i], path[i+1])
		if s.IsZero() || t.IsZero() {
			return nil, ErrInsufficientLiquidity
		}
		out := GetTargetAmount(s, t, amounts[i], e.fee)
		if out.IsZero() {
			return nil, ErrZeroTargetAmount
		}
		if impactLimit != nil && impactExceeded(out, t, *impactLimit) {
			return nil, ErrExceedPriceImpactLimit
		}
		amounts[i+1] = out
	}
	return amounts, nil
}

// GetSupplyAmounts computes the required input at every hop of path for a
// desired final output, per §4.3.3, working backward from the end.
func (e *Engine) GetSupplyAmounts(path []AssetID, targetOut Amount, impactLimit *decimal.Decimal) ([]Amount, error) {
	if !pathLenOK(path) {
		return nil, ErrInvalidTradingPathLen
	}
	amounts := make([]Amount, len(path))
	amounts[len(path)-1] = targetOut
	for i := len(path) - 1; i >= 1; i-- {
		pair, _ := Canonicalize(path[i-1], path[i])
		if !e.pools.IsAllowed(pair) {
			return nil, ErrTradingPairNotAllowed
		}
		s, t := e.pools.GetLiquidity(path[i-1], path[i])
		if s.IsZero() || t.IsZero() {
			return nil, ErrInsufficientLiquidity
		}
		in := GetSupplyAmount(s, t, amounts[i], e.fee)
		if in.IsZero() {
			return nil, ErrZeroSupplyAmount
		}
		if impactLimit != nil && impactExceeded(amounts[i], t, *impactLimit) {
			return nil, ErrExceedPriceImpactLimit
		}
		amounts[i-1] = in
	}
	return amounts, nil
}
