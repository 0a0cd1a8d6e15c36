package core

// pricing.go – the single-hop constant-product pricing primitives (§4.3.2).
// All intermediate products are computed in 256-bit arithmetic
// (github.com/holiman/uint256) so that `s*fee_den + dx_eff` never overflows,
// as the design notes require.

// FeeSchedule is the fixed rational fee applied to swap input (§4.3.1). The
// reference values are Num=10, Den=1000 (1% taken from the input
// side) — the rate that reproduces the §8 worked scenarios (S1/S2/S3/S5/S6)
// bit for bit; see DESIGN.md.
type FeeSchedule struct {
	Num Amount
	Den Amount
}

// DefaultFeeSchedule returns the reference 1% fee.
func DefaultFeeSchedule() FeeSchedule {
	return FeeSchedule{Num: AmountFromUint64(10), Den: AmountFromUint64(1000)}
}

// GetTargetAmount computes the output dy for a given input dx against
// reserves (s, t), per §4.3.2.
func GetTargetAmount(s, t, dx Amount, fee FeeSchedule) Amount {
	if dx.IsZero() || s.IsZero() || t.IsZero() {
		return ZeroAmount()
	}
	var feeMul, dxEff, numerator, sFee, denominator, dy Amount
	feeMul.Sub(&fee.Den, &fee.Num)
	dxEff.Mul(&dx, &feeMul)
	numerator.Mul(&dxEff, &t)
	sFee.Mul(&s, &fee.Den)
	denominator.Add(&sFee, &dxEff)
	if denominator.IsZero() {
		return ZeroAmount()
	}
	dy.Div(&numerator, &denominator)
	return dy
}

// GetSupplyAmount computes the minimum input dx required to obtain dy
// against reserves (s, t), per §4.3.2. The +1 covers rounding on the
// inverse of GetTargetAmount.
func GetSupplyAmount(s, t, dy Amount, fee FeeSchedule) Amount {
	if dy.IsZero() || s.IsZero() || t.IsZero() || !dy.Lt(&t) {
		return ZeroAmount()
	}
	var numerator, sDy, denominator, tMinusDy, feeMul, dx, one Amount
	sDy.Mul(&s, &dy)
	numerator.Mul(&sDy, &fee.Den)
	tMinusDy.Sub(&t, &dy)
	feeMul.Sub(&fee.Den, &fee.Num)
	denominator.Mul(&tMinusDy, &feeMul)
	if denominator.IsZero() {
		return ZeroAmount()
	}
	dx.Div(&numerator, &denominator)
	one.SetUint64(1)
	dx.Add(&dx, &one)
	return dx
}
