package core

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func newTestEngine() *Engine {
	shares := NewShareRegistry()
	ledger := NewLedger(nil, &RecordingEventSink{}, shares)
	pools := NewPoolStore()
	return NewEngine(ledger, pools, shares, nil, DefaultFeeSchedule(), &RecordingEventSink{}, nil)
}

func allowAndSeed(e *Engine, a, b AssetID, ra, rb uint64) {
	e.AllowPair(a, b)
	pair, _ := Canonicalize(a, b)
	e.pools.setReserves(pair, AmountFromUint64(ra), AmountFromUint64(rb))
}

func TestGetTargetAmountsPathLength(t *testing.T) {
	e := newTestEngine()
	_, err := e.GetTargetAmounts([]AssetID{1}, AmountFromUint64(100), nil)
	if !errors.Is(err, ErrInvalidTradingPathLen) {
		t.Fatalf("1-hop path: err = %v, want ErrInvalidTradingPathLen", err)
	}
	_, err = e.GetTargetAmounts([]AssetID{1, 2, 3, 4}, AmountFromUint64(100), nil)
	if !errors.Is(err, ErrInvalidTradingPathLen) {
		t.Fatalf("4-hop path: err = %v, want ErrInvalidTradingPathLen", err)
	}
}

func TestGetTargetAmountsRejectsDisallowedPair(t *testing.T) {
	e := newTestEngine()
	_, err := e.GetTargetAmounts([]AssetID{1, 2}, AmountFromUint64(100), nil)
	if !errors.Is(err, ErrTradingPairNotAllowed) {
		t.Fatalf("err = %v, want ErrTradingPairNotAllowed", err)
	}
}

func TestGetTargetAmountsMultiHop(t *testing.T) {
	e := newTestEngine()
	allowAndSeed(e, 1, 2, 1000, 1000)
	allowAndSeed(e, 2, 3, 1000, 1000)

	amounts, err := e.GetTargetAmounts([]AssetID{1, 2, 3}, AmountFromUint64(100), nil)
	if err != nil {
		t.Fatalf("GetTargetAmounts: %v", err)
	}
	if len(amounts) != 3 {
		t.Fatalf("len(amounts) = %d, want 3", len(amounts))
	}
	if amounts[0].Uint64() != 100 {
		t.Fatalf("amounts[0] = %s, want 100", amounts[0].String())
	}
	if amounts[1].Uint64() != 90 {
		t.Fatalf("amounts[1] = %s, want 90", amounts[1].String())
	}
}

// TestPricingScenarioS3 is the §8 S3 worked example: DOT(1) -> AUSD(2) ->
// XBTC(3), reserves AUSD/DOT = (50000,10000), AUSD/XBTC = (100000,10).
func TestPricingScenarioS3(t *testing.T) {
	e := newTestEngine()
	allowAndSeed(e, 1, 2, 10000, 50000) // DOT/AUSD
	allowAndSeed(e, 2, 3, 100000, 10)   // AUSD/XBTC

	amounts, err := e.GetTargetAmounts([]AssetID{1, 2, 3}, AmountFromUint64(10000), nil)
	if err != nil {
		t.Fatalf("GetTargetAmounts: %v", err)
	}
	want := []uint64{10000, 24874, 1}
	for i, w := range want {
		if amounts[i].Uint64() != w {
			t.Fatalf("amounts[%d] = %s, want %d", i, amounts[i].String(), w)
		}
	}
}

// TestPricingScenarioS3ZeroOutLeg is S3's second part: at supply_in=100 the
// second hop yields 0, failing ZeroTargetAmount.
func TestPricingScenarioS3ZeroOutLeg(t *testing.T) {
	e := newTestEngine()
	allowAndSeed(e, 1, 2, 10000, 50000)
	allowAndSeed(e, 2, 3, 100000, 10)

	_, err := e.GetTargetAmounts([]AssetID{1, 2, 3}, AmountFromUint64(100), nil)
	if !errors.Is(err, ErrZeroTargetAmount) {
		t.Fatalf("err = %v, want ErrZeroTargetAmount", err)
	}
}

func TestGetTargetAmountsZeroOutFails(t *testing.T) {
	e := newTestEngine()
	allowAndSeed(e, 1, 2, 1_000_000, 1)
	_, err := e.GetTargetAmounts([]AssetID{1, 2}, AmountFromUint64(1), nil)
	if !errors.Is(err, ErrZeroTargetAmount) {
		t.Fatalf("err = %v, want ErrZeroTargetAmount", err)
	}
}

func TestGetSupplyAmountsMultiHop(t *testing.T) {
	e := newTestEngine()
	allowAndSeed(e, 1, 2, 1000, 1000)
	allowAndSeed(e, 2, 3, 1000, 1000)

	amounts, err := e.GetSupplyAmounts([]AssetID{1, 2, 3}, AmountFromUint64(90), nil)
	if err != nil {
		t.Fatalf("GetSupplyAmounts: %v", err)
	}
	if amounts[len(amounts)-1].Uint64() != 90 {
		t.Fatalf("final leg = %s, want 90", amounts[len(amounts)-1].String())
	}
}

// TestImpactExceededGate is the §8 S7 worked example: DOT(1)/AUSD(2)
// reserves (10000,50000), dx=10000 — limit=49/100 fails, limit=50/100
// succeeds (actual ratio is ~0.49748).
func TestImpactExceededGate(t *testing.T) {
	e := newTestEngine()
	allowAndSeed(e, 1, 2, 10000, 50000)

	tight := decimal.RequireFromString("0.49")
	_, err := e.GetTargetAmounts([]AssetID{1, 2}, AmountFromUint64(10000), &tight)
	if !errors.Is(err, ErrExceedPriceImpactLimit) {
		t.Fatalf("tight limit: err = %v, want ErrExceedPriceImpactLimit", err)
	}

	loose := decimal.RequireFromString("0.50")
	_, err = e.GetTargetAmounts([]AssetID{1, 2}, AmountFromUint64(10000), &loose)
	if err != nil {
		t.Fatalf("loose limit: unexpected err = %v", err)
	}
}
