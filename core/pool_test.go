package core

import "testing"

func TestPoolStoreGetLiquidityOrientation(t *testing.T) {
	p := NewPoolStore()
	pair := TradingPair{A: 1, B: 2}
	p.setReserves(pair, AmountFromUint64(1000), AmountFromUint64(2000))

	ra, rb := p.GetLiquidity(1, 2)
	if ra.Uint64() != 1000 || rb.Uint64() != 2000 {
		t.Fatalf("GetLiquidity(1,2) = (%s,%s), want (1000,2000)", ra.String(), rb.String())
	}

	rx, ry := p.GetLiquidity(2, 1)
	if rx.Uint64() != 2000 || ry.Uint64() != 1000 {
		t.Fatalf("GetLiquidity(2,1) = (%s,%s), want (2000,1000)", rx.String(), ry.String())
	}
}

func TestPoolStoreMissingPairIsZero(t *testing.T) {
	p := NewPoolStore()
	ra, rb := p.GetLiquidity(5, 9)
	if !ra.IsZero() || !rb.IsZero() {
		t.Fatalf("expected zero reserves for unknown pair, got (%s,%s)", ra.String(), rb.String())
	}
}

func TestPoolStoreAllowDisallow(t *testing.T) {
	p := NewPoolStore()
	pair, _ := Canonicalize(1, 2)

	if p.IsAllowed(pair) {
		t.Fatalf("pair should start disallowed")
	}
	p.Allow(pair)
	if !p.IsAllowed(pair) {
		t.Fatalf("pair should be allowed after Allow")
	}
	p.Disallow(pair)
	if p.IsAllowed(pair) {
		t.Fatalf("pair should be disallowed after Disallow")
	}
}

func TestCanonicalizeOrdersAndReportsSwap(t *testing.T) {
	pair, swapped := Canonicalize(5, 2)
	if pair.A != 2 || pair.B != 5 || !swapped {
		t.Fatalf("Canonicalize(5,2) = (%v, %v), want ({2,5}, true)", pair, swapped)
	}
	pair2, swapped2 := Canonicalize(2, 5)
	if pair2.A != 2 || pair2.B != 5 || swapped2 {
		t.Fatalf("Canonicalize(2,5) = (%v, %v), want ({2,5}, false)", pair2, swapped2)
	}
}
