package core

// engine.go – the swap/liquidity engine (§4.3): swap execution along a path,
// add/remove liquidity, and the admission-set governance the design notes
// invite (§9 "Admission set as data"). Grounded on liquidity_pools.go's
// AMM.Swap/AddLiquidity/RemoveLiquidity, generalised from a single PoolID
// keyed pool to the canonical-pair model and from uint64 to 256-bit
// arithmetic.

import (
	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Engine ties the ledger, the pool store and the share registry together
// and is the only component allowed to write pool reserves.
type Engine struct {
	ledger  *Ledger
	pools   *PoolStore
	shares  *ShareRegistry
	deriver AccountDeriver
	fee     FeeSchedule
	events  EventSink
	logger  *log.Logger
}

// NewEngine wires the three components. deriver may be nil to use
// DefaultAccountDeriver.
func NewEngine(ledger *Ledger, pools *PoolStore, shares *ShareRegistry, deriver AccountDeriver, fee FeeSchedule, events EventSink, logger *log.Logger) *Engine {
	if deriver == nil {
		deriver = DefaultAccountDeriver{}
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	if events == nil {
		events = NewLogEventSink(logger)
	}
	return &Engine{ledger: ledger, pools: pools, shares: shares, deriver: deriver, fee: fee, events: events, logger: logger}
}

// AllowPair admits pair for trading and liquidity provision. Governance-like
// operation kept outside the core pricing path per §9.
func (e *Engine) AllowPair(a, b AssetID) {
	pair, _ := Canonicalize(a, b)
	e.pools.Allow(pair)
}

// DisallowPair revokes admission for pair.
func (e *Engine) DisallowPair(a, b AssetID) {
	pair, _ := Canonicalize(a, b)
	e.pools.Disallow(pair)
}

// GetLiquidity exposes the pool store's read helper directly (§6 public
// read query).
func (e *Engine) GetLiquidity(x, y AssetID) (Amount, Amount) {
	return e.pools.GetLiquidity(x, y)
}

//---------------------------------------------------------------------
// Single-hop swap application (§4.3.4 _swap / _swap_by_path)
//---------------------------------------------------------------------

// applySwap updates reserves for one hop of a path: dx of `a` enters the
// pool, dy of `b` leaves it (or vice versa, depending on canonical
// orientation), per §4.3.4's _swap.
func (e *Engine) applySwap(a, b AssetID, dx, dy Amount) {
	pair, swapped := Canonicalize(a, b)
	aIsSmaller := !swapped
	rp := e.pools.reservesOf(pair)
	var newRA, newRB Amount
	if aIsSmaller {
		newRA.Add(&rp.ra, &dx)
		newRB.Sub(&rp.rb, &dy)
	} else {
		newRA.Sub(&rp.ra, &dy)
		newRB.Add(&rp.rb, &dx)
	}
	e.pools.setReserves(pair, newRA, newRB)
}

//---------------------------------------------------------------------
// DoSwapWithExactSupply / DoSwapWithExactTarget (§4.3.4)
//---------------------------------------------------------------------

// DoSwapWithExactSupply moves supplyIn of path[0] from who into the pool and
// amounts[last] of path[last] back out, failing the whole operation (no
// partial effect) if the realised output is below minTargetOut.
func (e *Engine) DoSwapWithExactSupply(who Address, path []AssetID, supplyIn, minTargetOut Amount, impactLimit *decimal.Decimal) (Amount, error) {
	amounts, err := e.GetTargetAmounts(path, supplyIn, impactLimit)
	if err != nil {
		return ZeroAmount(), err
	}
	out := amounts[len(amounts)-1]
	if out.Lt(&minTargetOut) {
		return ZeroAmount(), ErrInsufficientTargetOut
	}
	if err := e.settleSwap(who, path, amounts); err != nil {
		return ZeroAmount(), err
	}
	e.events.Emit(Event{Kind: EventSwap, Who: who, Path: path, SupplyIn: supplyIn, TargetOut: out})
	return out, nil
}

// DoSwapWithExactTarget computes the minimum supply needed for
// exactTargetOut and executes the swap, failing if that supply would exceed
// maxSupplyIn.
func (e *Engine) DoSwapWithExactTarget(who Address, path []AssetID, exactTargetOut, maxSupplyIn Amount, impactLimit *decimal.Decimal) (Amount, error) {
	amounts, err := e.GetSupplyAmounts(path, exactTargetOut, impactLimit)
	if err != nil {
		return ZeroAmount(), err
	}
	in := amounts[0]
	if maxSupplyIn.Lt(&in) {
		return ZeroAmount(), ErrExcessiveSupplyIn
	}
	if err := e.settleSwap(who, path, amounts); err != nil {
		return ZeroAmount(), err
	}
	e.events.Emit(Event{Kind: EventSwap, Who: who, Path: path, SupplyIn: in, TargetOut: exactTargetOut})
	return in, nil
}

// settleSwap performs the atomic ledger transfers and reserve updates for a
// validated amounts vector: supply in from who, each hop's reserve update,
// target out to who.
func (e *Engine) settleSwap(who Address, path []AssetID, amounts []Amount) error {
	first := path[0]
	firstPair, _ := Canonicalize(first, path[1])
	firstPoolAcct := e.deriver.PoolAccount(firstPair)
	if err := e.ledger.Transfer(first, who, firstPoolAcct, amounts[0]); err != nil {
		return err
	}
	for i := 0; i < len(path)-1; i++ {
		e.applySwap(path[i], path[i+1], amounts[i], amounts[i+1])
	}
	last := path[len(path)-1]
	lastPair, _ := Canonicalize(path[len(path)-2], last)
	lastPoolAcct := e.deriver.PoolAccount(lastPair)
	if err := e.ledger.Transfer(last, lastPoolAcct, who, amounts[len(amounts)-1]); err != nil {
		return err
	}
	return nil
}

//---------------------------------------------------------------------
// AddLiquidity / RemoveLiquidity (§4.3.5)
//---------------------------------------------------------------------

// AddLiquidity provisions a pair, minting share tokens proportional to the
// contributed assets (or, for the first provision, equal to the supplied
// amount of the canonical-smaller asset — §4.3.5, §9 open question 3).
func (e *Engine) AddLiquidity(who Address, a, b AssetID, maxA, maxB Amount) (useA, useB, minted Amount, err error) {
	pair, swapped := Canonicalize(a, b)
	aIsSmaller := !swapped
	if !e.pools.IsAllowed(pair) {
		return ZeroAmount(), ZeroAmount(), ZeroAmount(), ErrTradingPairNotAllowed
	}

	rA, rB := e.pools.GetLiquidity(a, b)
	sid := e.shares.ShareOf(pair)
	totalShares := e.ledger.TotalSupply(sid)

	if totalShares.IsZero() {
		useA, useB = maxA, maxB
		minted = maxA
		if !aIsSmaller {
			minted = maxB
		}
	} else {
		useA, useB, minted = proportionalAdd(maxA, maxB, rA, rB, totalShares)
	}
	if useA.IsZero() || useB.IsZero() || minted.IsZero() {
		return ZeroAmount(), ZeroAmount(), ZeroAmount(), ErrInvalidLiquidityIncr
	}

	balA, balB := e.ledger.BalanceOf(a, who), e.ledger.BalanceOf(b, who)
	if balA.Lt(&useA) || balB.Lt(&useB) {
		return ZeroAmount(), ZeroAmount(), ZeroAmount(), ErrBalanceLow
	}

	poolAcct := e.deriver.PoolAccount(pair)
	if err := e.ledger.Transfer(a, who, poolAcct, useA); err != nil {
		return ZeroAmount(), ZeroAmount(), ZeroAmount(), err
	}
	if err := e.ledger.Transfer(b, who, poolAcct, useB); err != nil {
		return ZeroAmount(), ZeroAmount(), ZeroAmount(), err
	}

	var newRA, newRB Amount
	if aIsSmaller {
		newRA.Add(&rA, &useA)
		newRB.Add(&rB, &useB)
	} else {
		newRA.Add(&rB, &useB)
		newRB.Add(&rA, &useA)
	}
	e.pools.setReserves(pair, newRA, newRB)

	if err := e.ledger.Mint(sid, who, minted); err != nil {
		return ZeroAmount(), ZeroAmount(), ZeroAmount(), err
	}

	e.events.Emit(Event{Kind: EventAddLiquidity, Who: who, Asset: a, Amount: useA, AssetB: b, AmountB: useB, Shares: minted})
	return useA, useB, minted, nil
}

// proportionalAdd computes (use_a, use_b, shares_minted) for a subsequent
// provision using the smaller of the two contribution ratios, via
// shopspring/decimal. Each ratio is rounded to 36 decimal places before the
// comparison and the multiplications, so the result is not exact rational
// arithmetic.
func proportionalAdd(maxA, maxB, rA, rB, totalShares Amount) (useA, useB, minted Amount) {
	maxADec := decimal.NewFromBigInt(maxA.ToBig(), 0)
	maxBDec := decimal.NewFromBigInt(maxB.ToBig(), 0)
	rADec := decimal.NewFromBigInt(rA.ToBig(), 0)
	rBDec := decimal.NewFromBigInt(rB.ToBig(), 0)
	totalDec := decimal.NewFromBigInt(totalShares.ToBig(), 0)

	const scale = 36
	ratioA := maxADec.DivRound(rADec, scale)
	ratioB := maxBDec.DivRound(rBDec, scale)
	rho := ratioA
	if ratioB.Cmp(ratioA) < 0 {
		rho = ratioB
	}

	useADec := rho.Mul(rADec).Truncate(0)
	useBDec := rho.Mul(rBDec).Truncate(0)
	mintedDec := rho.Mul(totalDec).Truncate(0)

	useA, _ = decimalToAmount(useADec)
	useB, _ = decimalToAmount(useBDec)
	minted, _ = decimalToAmount(mintedDec)
	return useA, useB, minted
}

// RemoveLiquidity burns shareAmount of the pair's share asset and returns
// the proportional underlying reserves, always rounding against the user
// (§8 invariant 4).
func (e *Engine) RemoveLiquidity(who Address, a, b AssetID, shareAmount Amount) (outA, outB Amount, err error) {
	if a.IsShare() || b.IsShare() || a == b {
		return ZeroAmount(), ZeroAmount(), ErrInvalidCurrencyID
	}
	pair, swapped := Canonicalize(a, b)
	aIsSmaller := !swapped
	sid := e.shares.ShareOf(pair)
	totalShares := e.ledger.TotalSupply(sid)
	if totalShares.IsZero() || shareAmount.IsZero() {
		return ZeroAmount(), ZeroAmount(), ErrInvalidLiquidityIncr
	}

	rA, rB := e.pools.GetLiquidity(a, b)
	outA = mulDiv(shareAmount, rA, totalShares)
	outB = mulDiv(shareAmount, rB, totalShares)

	if err := e.ledger.Burn(sid, who, shareAmount); err != nil {
		return ZeroAmount(), ZeroAmount(), err
	}

	poolAcct := e.deriver.PoolAccount(pair)
	if !outA.IsZero() {
		if err := e.ledger.Transfer(a, poolAcct, who, outA); err != nil {
			return ZeroAmount(), ZeroAmount(), err
		}
	}
	if !outB.IsZero() {
		if err := e.ledger.Transfer(b, poolAcct, who, outB); err != nil {
			return ZeroAmount(), ZeroAmount(), err
		}
	}

	canonRA, canonRB := rA, rB
	if !aIsSmaller {
		canonRA, canonRB = rB, rA
	}
	var newRA, newRB Amount
	canonOutA, canonOutB := outA, outB
	if !aIsSmaller {
		canonOutA, canonOutB = outB, outA
	}
	newRA.Sub(&canonRA, &canonOutA)
	newRB.Sub(&canonRB, &canonOutB)
	e.pools.setReserves(pair, newRA, newRB)

	e.events.Emit(Event{Kind: EventRemoveLiquidity, Who: who, Asset: a, Amount: outA, AssetB: b, AmountB: outB, Shares: shareAmount})
	return outA, outB, nil
}

// mulDiv computes floor(x*y/z) in 256-bit arithmetic.
func mulDiv(x, y, z Amount) Amount {
	var num, out Amount
	num.Mul(&x, &y)
	out.Div(&num, &z)
	return out
}

// decimalToAmount converts a non-negative integral decimal.Decimal back to
// an Amount. ok is false if the value does not fit in 256 bits.
func decimalToAmount(d decimal.Decimal) (Amount, bool) {
	z, overflow := uint256.FromBig(d.BigInt())
	if overflow || z == nil {
		return ZeroAmount(), false
	}
	return *z, true
}
