package core

// types.go – shared identifiers and value types for the asset ledger and the
// AMM engine built on top of it. Grounded on the teacher's common_structs.go
// (Address, PoolID) and generalised: reserves and balances are no longer
// plain uint64 but the host-supplied wide unsigned integer (holiman/uint256),
// since the design notes call for a 256-bit intermediate representation and
// balances wider than a machine word.

import (
	"crypto/sha256"
	"fmt"

	"github.com/holiman/uint256"
)

// Address identifies an account: a user wallet or a pool's own custodial
// account. Kept as the teacher's fixed-width array rather than a string so
// it remains a cheap, comparable map key.
type Address [20]byte

func (a Address) String() string { return fmt.Sprintf("%x", a[:]) }

// AssetID identifies an asset class. The high bit distinguishes the two
// disjoint subspaces described in the data model: plain assets (issued by
// issue()) have it clear, share assets (derived from a trading pair) have it
// set. See shareasset.go for the bijection that allocates share ids.
type AssetID uint64

const shareTagBit AssetID = 1 << 63

// IsShare reports whether id belongs to the share-asset subspace.
func (id AssetID) IsShare() bool { return id&shareTagBit != 0 }

// Amount is the host-supplied unsigned integer type backing balances,
// supplies, allowances and pool reserves. A 256-bit width comfortably covers
// the 128-bit balances the design notes assume plus the widest intermediate
// product the pricing formulas compute.
type Amount = uint256.Int

// ZeroAmount returns a fresh zero-valued Amount.
func ZeroAmount() Amount { return Amount{} }

// AmountFromUint64 lifts a small literal into an Amount.
func AmountFromUint64(v uint64) Amount {
	var a Amount
	a.SetUint64(v)
	return a
}

// maxAmount is the saturation ceiling for mint(): the all-ones 256-bit value,
// built as the bitwise complement of zero rather than relying on a
// saturation constant from the library.
func maxAmount() Amount {
	var a, zero Amount
	a.Not(&zero)
	return a
}

// TradingPair is an unordered pair of distinct plain asset ids in canonical
// order: A is always the smaller id.
type TradingPair struct {
	A, B AssetID
}

// Canonicalize orders (x, y) into canonical form and reports whether the
// inputs were swapped to get there.
func Canonicalize(x, y AssetID) (pair TradingPair, swapped bool) {
	if x == y {
		return TradingPair{x, y}, false
	}
	if x < y {
		return TradingPair{x, y}, false
	}
	return TradingPair{y, x}, true
}

// poolTag is the fixed module tag mixed into the deterministic pool-account
// derivation, mirroring liquidity_pools.go's "POOL" prefix.
var poolTag = [4]byte{0x50, 0x4F, 0x4F, 0x4C} // "POOL"

// AccountDeriver maps the fixed module tag to the pool's custodial account
// id (§6: "a pure function mapping a fixed module tag to the pool's
// custodial account id"). A single custodial account backs every pool: a
// multi-hop swap's intermediate legs net out within that one account and
// need no literal transfer, only a reserve-bookkeeping update (engine.go's
// settleSwap). Kept as a narrow interface so a host chain can supply its own
// scheme. The trading pair is passed through for callers that do want a
// per-pair account, but DefaultAccountDeriver ignores it.
type AccountDeriver interface {
	PoolAccount(pair TradingPair) Address
}

// DefaultAccountDeriver hashes the module tag alone into a single 20-byte
// custodial address shared by every pool, generalising liquidity_pools.go's
// poolAccount (which keyed off a sequential PoolID) down to the spec's
// single fixed-tag derivation.
type DefaultAccountDeriver struct{}

func (DefaultAccountDeriver) PoolAccount(TradingPair) Address {
	sum := sha256.Sum256(poolTag[:])
	var a Address
	copy(a[:], sum[:len(a)])
	return a
}
