package core

import "testing"

func TestGetTargetAmountZeroEdges(t *testing.T) {
	fee := DefaultFeeSchedule()
	s, tt := AmountFromUint64(1000), AmountFromUint64(1000)
	dx := AmountFromUint64(100)
	zero := ZeroAmount()

	if got := GetTargetAmount(zero, tt, dx, fee); !got.IsZero() {
		t.Fatalf("s=0: got %s, want 0", got.String())
	}
	if got := GetTargetAmount(s, zero, dx, fee); !got.IsZero() {
		t.Fatalf("t=0: got %s, want 0", got.String())
	}
	if got := GetTargetAmount(s, tt, zero, fee); !got.IsZero() {
		t.Fatalf("dx=0: got %s, want 0", got.String())
	}
}

func TestGetTargetAmountKnownValue(t *testing.T) {
	fee := DefaultFeeSchedule()
	s, tt, dx := AmountFromUint64(1000), AmountFromUint64(1000), AmountFromUint64(100)
	got := GetTargetAmount(s, tt, dx, fee)
	if got.Uint64() != 90 {
		t.Fatalf("GetTargetAmount(1000,1000,100) = %s, want 90", got.String())
	}
}

// TestPricingScenarioS1 is the §8 S1 worked example.
func TestPricingScenarioS1(t *testing.T) {
	fee := DefaultFeeSchedule()
	s, tt, dx := AmountFromUint64(10000), AmountFromUint64(20000), AmountFromUint64(1000)
	got := GetTargetAmount(s, tt, dx, fee)
	if got.Uint64() != 1801 {
		t.Fatalf("GetTargetAmount(10000,20000,1000) = %s, want 1801", got.String())
	}
}

// TestPricingScenarioS2 is the §8 S2 worked example, both directions.
func TestPricingScenarioS2(t *testing.T) {
	fee := DefaultFeeSchedule()
	s, tt := AmountFromUint64(10000), AmountFromUint64(20000)

	dy := AmountFromUint64(9949)
	gotDx := GetSupplyAmount(s, tt, dy, fee)
	if gotDx.Uint64() != 9999 {
		t.Fatalf("GetSupplyAmount(10000,20000,9949) = %s, want 9999", gotDx.String())
	}

	dx := AmountFromUint64(9999)
	gotDy := GetTargetAmount(s, tt, dx, fee)
	if gotDy.Uint64() != 9949 {
		t.Fatalf("GetTargetAmount(10000,20000,9999) = %s, want 9949", gotDy.String())
	}
}

func TestGetSupplyAmountKnownValue(t *testing.T) {
	fee := DefaultFeeSchedule()
	s, tt, dy := AmountFromUint64(1000), AmountFromUint64(1000), AmountFromUint64(90)
	got := GetSupplyAmount(s, tt, dy, fee)
	if got.Uint64() != 100 {
		t.Fatalf("GetSupplyAmount(1000,1000,90) = %s, want 100", got.String())
	}
}

func TestGetSupplyAmountZeroEdges(t *testing.T) {
	fee := DefaultFeeSchedule()
	s, tt := AmountFromUint64(1000), AmountFromUint64(1000)
	zero := ZeroAmount()

	if got := GetSupplyAmount(zero, tt, AmountFromUint64(1), fee); !got.IsZero() {
		t.Fatalf("s=0: got %s, want 0", got.String())
	}
	if got := GetSupplyAmount(s, zero, AmountFromUint64(1), fee); !got.IsZero() {
		t.Fatalf("t=0: got %s, want 0", got.String())
	}
	if got := GetSupplyAmount(s, tt, zero, fee); !got.IsZero() {
		t.Fatalf("dy=0: got %s, want 0", got.String())
	}
	// dy >= t must return 0
	if got := GetSupplyAmount(s, tt, tt, fee); !got.IsZero() {
		t.Fatalf("dy==t: got %s, want 0", got.String())
	}
}

// TestPricingInverse checks the §8 invariant: for 0 < dy < t,
// get_target_amount(s, t, get_supply_amount(s, t, dy)) >= dy.
func TestPricingInverse(t *testing.T) {
	fee := DefaultFeeSchedule()
	s, tt := AmountFromUint64(1000), AmountFromUint64(1000)
	for _, dyRaw := range []uint64{1, 50, 90, 500, 999} {
		dy := AmountFromUint64(dyRaw)
		dx := GetSupplyAmount(s, tt, dy, fee)
		roundTrip := GetTargetAmount(s, tt, dx, fee)
		if roundTrip.Lt(&dy) {
			t.Fatalf("dy=%d: round trip via dx=%s gave %s, want >= %d", dyRaw, dx.String(), roundTrip.String(), dyRaw)
		}
	}
}

func TestGetTargetAmountWideOperands(t *testing.T) {
	// 171e21 * 56e21 overflows a 64-bit product; 256-bit intermediates
	// must not.
	fee := DefaultFeeSchedule()
	var reserveS, reserveT, dx Amount
	if err := reserveS.SetFromDecimal("171000000000000000000000"); err != nil {
		t.Fatalf("SetFromDecimal: %v", err)
	}
	if err := reserveT.SetFromDecimal("56000000000000000000000"); err != nil {
		t.Fatalf("SetFromDecimal: %v", err)
	}
	dx = reserveS

	got := GetTargetAmount(reserveS, reserveT, dx, fee)
	if got.IsZero() {
		t.Fatalf("expected non-zero output for wide operands, got 0")
	}
}
