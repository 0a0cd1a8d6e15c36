package core

import (
	"errors"
	"testing"
)

func addr(b byte) Address {
	var a Address
	a[19] = b
	return a
}

func newTestLedger() *Ledger {
	shares := NewShareRegistry()
	return NewLedger(nil, &RecordingEventSink{}, shares)
}

func TestLedgerIssueAndBalance(t *testing.T) {
	l := newTestLedger()
	owner := addr(1)
	id := l.Issue(owner, AmountFromUint64(1000), AssetInfo{})

	bal := l.BalanceOf(id, owner)
	if bal.Uint64() != 1000 {
		t.Fatalf("balance = %s, want 1000", bal.String())
	}
	sup := l.TotalSupply(id)
	if sup.Uint64() != 1000 {
		t.Fatalf("supply = %s, want 1000", sup.String())
	}
}

func TestLedgerTransfer(t *testing.T) {
	l := newTestLedger()
	a, b := addr(1), addr(2)
	id := l.Issue(a, AmountFromUint64(1000), AssetInfo{})

	if err := l.Transfer(id, a, b, AmountFromUint64(400)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	if got := l.BalanceOf(id, a).Uint64(); got != 600 {
		t.Fatalf("from balance = %d, want 600", got)
	}
	if got := l.BalanceOf(id, b).Uint64(); got != 400 {
		t.Fatalf("to balance = %d, want 400", got)
	}
}

func TestLedgerTransferInsufficientBalance(t *testing.T) {
	l := newTestLedger()
	a, b := addr(1), addr(2)
	id := l.Issue(a, AmountFromUint64(100), AssetInfo{})

	err := l.Transfer(id, a, b, AmountFromUint64(101))
	if !errors.Is(err, ErrBalanceLow) {
		t.Fatalf("err = %v, want ErrBalanceLow", err)
	}
}

func TestLedgerTransferZeroAmount(t *testing.T) {
	l := newTestLedger()
	a, b := addr(1), addr(2)
	id := l.Issue(a, AmountFromUint64(100), AssetInfo{})

	err := l.Transfer(id, a, b, ZeroAmount())
	if !errors.Is(err, ErrAmountZero) {
		t.Fatalf("err = %v, want ErrAmountZero", err)
	}
}

func TestLedgerApproveAndTransferFrom(t *testing.T) {
	l := newTestLedger()
	owner, spender, to := addr(1), addr(2), addr(3)
	id := l.Issue(owner, AmountFromUint64(1000), AssetInfo{})

	l.Approve(id, owner, spender, AmountFromUint64(300))
	if got := l.Allowance(id, owner, spender).Uint64(); got != 300 {
		t.Fatalf("allowance = %d, want 300", got)
	}

	if err := l.TransferFrom(id, owner, spender, to, AmountFromUint64(200)); err != nil {
		t.Fatalf("transferFrom: %v", err)
	}
	if got := l.Allowance(id, owner, spender).Uint64(); got != 100 {
		t.Fatalf("remaining allowance = %d, want 100", got)
	}
	if got := l.BalanceOf(id, to).Uint64(); got != 200 {
		t.Fatalf("to balance = %d, want 200", got)
	}

	if err := l.TransferFrom(id, owner, spender, to, AmountFromUint64(200)); !errors.Is(err, ErrAllowanceLow) {
		t.Fatalf("err = %v, want ErrAllowanceLow", err)
	}
}

func TestLedgerApproveOverwrites(t *testing.T) {
	l := newTestLedger()
	owner, spender := addr(1), addr(2)
	l.Issue(owner, AmountFromUint64(1000), AssetInfo{})
	id := AssetID(1)

	l.Approve(id, owner, spender, AmountFromUint64(500))
	l.Approve(id, owner, spender, AmountFromUint64(50))
	if got := l.Allowance(id, owner, spender).Uint64(); got != 50 {
		t.Fatalf("allowance = %d, want 50 (overwrite, not additive)", got)
	}
}

func TestLedgerMintSaturates(t *testing.T) {
	l := newTestLedger()
	owner := addr(1)
	id := l.Issue(owner, ZeroAmount(), AssetInfo{})

	ceiling := maxAmount()
	if err := l.Mint(id, owner, ceiling); err != nil {
		t.Fatalf("mint: %v", err)
	}
	one := AmountFromUint64(1)
	if err := l.Mint(id, owner, one); err != nil {
		t.Fatalf("mint: %v", err)
	}
	got := l.BalanceOf(id, owner)
	if !got.Eq(&ceiling) {
		t.Fatalf("balance = %s, want saturated ceiling %s", got.String(), ceiling.String())
	}
}

func TestLedgerMintUnknownAsset(t *testing.T) {
	l := newTestLedger()
	err := l.Mint(AssetID(999), addr(1), AmountFromUint64(1))
	if !errors.Is(err, ErrAssetNotExists) {
		t.Fatalf("err = %v, want ErrAssetNotExists", err)
	}
}

func TestLedgerBurn(t *testing.T) {
	l := newTestLedger()
	owner := addr(1)
	id := l.Issue(owner, AmountFromUint64(500), AssetInfo{})

	if err := l.Burn(id, owner, AmountFromUint64(200)); err != nil {
		t.Fatalf("burn: %v", err)
	}
	if got := l.BalanceOf(id, owner).Uint64(); got != 300 {
		t.Fatalf("balance = %d, want 300", got)
	}
	if got := l.TotalSupply(id).Uint64(); got != 300 {
		t.Fatalf("supply = %d, want 300", got)
	}

	if err := l.Burn(id, owner, AmountFromUint64(1000)); !errors.Is(err, ErrBalanceLow) {
		t.Fatalf("err = %v, want ErrBalanceLow", err)
	}
}

func TestLedgerShareAssetMintableWithoutIssue(t *testing.T) {
	shares := NewShareRegistry()
	l := NewLedger(nil, &RecordingEventSink{}, shares)
	pair := TradingPair{A: 1, B: 2}
	sid := shares.ShareOf(pair)

	if err := l.Mint(sid, addr(1), AmountFromUint64(100)); err != nil {
		t.Fatalf("mint share asset: %v", err)
	}
	if got := l.BalanceOf(sid, addr(1)).Uint64(); got != 100 {
		t.Fatalf("balance = %d, want 100", got)
	}
}
