package core

// ledger.go – the multi-asset fungible-token ledger (§4.1). Grounded on the
// teacher's core/ledger.go balance/mint/burn/transfer trio and on
// core/tokens.go's BalanceTable, generalised from a single implicit coin and
// a registry of fixed token standards to an arbitrary number of asset
// classes addressed by AssetID, with 256-bit balances instead of uint64.

import (
	"sync"

	log "github.com/sirupsen/logrus"
)

// AssetInfo is the immutable metadata recorded at issuance for a plain
// asset (§3).
type AssetInfo struct {
	Name     [16]byte
	Symbol   [8]byte
	Decimals uint8
}

// Ledger holds balances, total supplies and allowances for every asset, plus
// the plain-asset metadata table. It is the only component that mutates
// account balances; the pool store and engine call through it exclusively.
type Ledger struct {
	mu sync.Mutex

	logger *log.Logger
	events EventSink
	shares *ShareRegistry

	nextAssetID AssetID
	assets      map[AssetID]AssetInfo
	balances    map[AssetID]map[Address]Amount
	supply      map[AssetID]Amount
	allowances  map[AssetID]map[Address]map[Address]Amount
}

// NewLedger constructs an empty ledger. shares is the registry the engine
// uses to mint/burn share assets; passing the same registry lets Mint/Burn
// recognise a share id even though issue() never created metadata for it.
func NewLedger(logger *log.Logger, events EventSink, shares *ShareRegistry) *Ledger {
	if logger == nil {
		logger = log.StandardLogger()
	}
	if events == nil {
		events = NewLogEventSink(logger)
	}
	return &Ledger{
		logger:      logger,
		events:      events,
		shares:      shares,
		nextAssetID: 1,
		assets:      make(map[AssetID]AssetInfo),
		balances:    make(map[AssetID]map[Address]Amount),
		supply:      make(map[AssetID]Amount),
		allowances:  make(map[AssetID]map[Address]map[Address]Amount),
	}
}

// Issue allocates the next plain asset id, credits owner with total and
// records info. Metadata is immutable thereafter.
func (l *Ledger) Issue(owner Address, total Amount, info AssetInfo) AssetID {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextAssetID
	l.nextAssetID++
	l.assets[id] = info
	l.supply[id] = total
	bal := make(map[Address]Amount, 1)
	bal[owner] = total
	l.balances[id] = bal

	l.events.Emit(Event{Kind: EventIssued, Asset: id, Owner: owner, Amount: total})
	l.logger.WithFields(log.Fields{"asset": id, "owner": owner, "total": total.String()}).Info("issue")
	return id
}

func (l *Ledger) exists(id AssetID) bool {
	if _, ok := l.assets[id]; ok {
		return true
	}
	return l.shares != nil && l.shares.Exists(id)
}

func (l *Ledger) balanceLocked(id AssetID, a Address) Amount {
	tbl, ok := l.balances[id]
	if !ok {
		return ZeroAmount()
	}
	return tbl[a]
}

// BalanceOf returns the balance of asset for account, defaulting to 0.
func (l *Ledger) BalanceOf(id AssetID, a Address) Amount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.balanceLocked(id, a)
}

// TotalSupply returns the circulating supply of asset, defaulting to 0.
func (l *Ledger) TotalSupply(id AssetID) Amount {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.supply[id]
}

// Allowance returns the amount spender may still draw from owner for asset.
func (l *Ledger) Allowance(id AssetID, owner, spender Address) Amount {
	l.mu.Lock()
	defer l.mu.Unlock()
	byOwner, ok := l.allowances[id]
	if !ok {
		return ZeroAmount()
	}
	return byOwner[owner][spender]
}

// AssetInfo returns the immutable metadata recorded at issuance. ok is
// false for unknown or share assets (share assets carry no Metadata).
func (l *Ledger) AssetInfo(id AssetID) (AssetInfo, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	info, ok := l.assets[id]
	return info, ok
}

func (l *Ledger) setBalance(id AssetID, a Address, v Amount) {
	tbl, ok := l.balances[id]
	if !ok {
		tbl = make(map[Address]Amount, 1)
		l.balances[id] = tbl
	}
	tbl[a] = v
}

// transferLocked moves amount of id from `from` to `to`. Caller holds l.mu.
func (l *Ledger) transferLocked(id AssetID, from, to Address, amount Amount) error {
	if amount.IsZero() {
		return ErrAmountZero
	}
	fromBal := l.balanceLocked(id, from)
	if fromBal.Lt(&amount) {
		return ErrBalanceLow
	}
	var newFrom, newTo Amount
	newFrom.Sub(&fromBal, &amount)
	toBal := l.balanceLocked(id, to)
	newTo.Add(&toBal, &amount)
	l.setBalance(id, from, newFrom)
	l.setBalance(id, to, newTo)
	return nil
}

// Transfer moves amount of id from `from` to `to`. Self-transfers are
// permitted and net to a no-op.
func (l *Ledger) Transfer(id AssetID, from, to Address, amount Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if err := l.transferLocked(id, from, to, amount); err != nil {
		return err
	}
	l.events.Emit(Event{Kind: EventTransferred, Asset: id, From: from, To: to, Amount: amount})
	return nil
}

// Approve sets (overwrites) the allowance spender may draw from owner.
// Matches the source's ERC-20-style semantics: no check against the
// current balance, and concurrent approvals may race with in-flight
// transfers in the well-known ERC-20 way (§9).
func (l *Ledger) Approve(id AssetID, owner, spender Address, amount Amount) {
	l.mu.Lock()
	defer l.mu.Unlock()
	byOwner, ok := l.allowances[id]
	if !ok {
		byOwner = make(map[Address]map[Address]Amount)
		l.allowances[id] = byOwner
	}
	bySpender, ok := byOwner[owner]
	if !ok {
		bySpender = make(map[Address]Amount)
		byOwner[owner] = bySpender
	}
	bySpender[spender] = amount
	l.events.Emit(Event{Kind: EventApproval, Asset: id, Owner: owner, Spender: spender, Amount: amount})
}

// TransferFrom debits the allowance only if the underlying transfer
// succeeds.
func (l *Ledger) TransferFrom(id AssetID, owner, spender, to Address, amount Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	allowed := l.allowances[id][owner][spender]
	if allowed.Lt(&amount) {
		return ErrAllowanceLow
	}
	if err := l.transferLocked(id, owner, to, amount); err != nil {
		return err
	}
	var remaining Amount
	remaining.Sub(&allowed, &amount)
	l.allowances[id][owner][spender] = remaining
	l.events.Emit(Event{Kind: EventTransferred, Asset: id, From: owner, To: to, Amount: amount})
	return nil
}

// Mint increments to's balance and the total supply, saturating at the
// unsigned integer maximum rather than overflowing.
func (l *Ledger) Mint(id AssetID, to Address, amount Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.exists(id) {
		return ErrAssetNotExists
	}

	ceiling := maxAmount()
	bal := l.balanceLocked(id, to)
	newBal, overflow := bal.AddOverflow(&bal, &amount)
	if overflow {
		newBal = &ceiling
	}
	l.setBalance(id, to, *newBal)

	sup := l.supply[id]
	newSup, overflow := sup.AddOverflow(&sup, &amount)
	if overflow {
		newSup = &ceiling
	}
	l.supply[id] = *newSup

	l.events.Emit(Event{Kind: EventMinted, Asset: id, To: to, Amount: amount})
	return nil
}

// Burn decrements from's balance and the total supply by amount.
func (l *Ledger) Burn(id AssetID, from Address, amount Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.exists(id) {
		return ErrAssetNotExists
	}
	bal := l.balanceLocked(id, from)
	if bal.Lt(&amount) {
		return ErrBalanceLow
	}
	var newBal Amount
	newBal.Sub(&bal, &amount)
	l.setBalance(id, from, newBal)

	sup := l.supply[id]
	var newSup Amount
	newSup.Sub(&sup, &amount)
	l.supply[id] = newSup

	l.events.Emit(Event{Kind: EventBurned, Asset: id, From: from, Amount: amount})
	return nil
}
