package core

// pool.go – the pool store (§4.2): a pure mapping from canonical trading
// pair to reserves, plus the admission set. Grounded on the teacher's Pool
// struct (liquidity_pools.go) but keyed by TradingPair instead of a
// sequential PoolID, since §3 addresses pools by pair.

import "sync"

// PoolStore is the pure reserves mapping described in §4.2. Writes go
// through the engine only; the store itself does not validate invariants.
type PoolStore struct {
	mu       sync.RWMutex
	reserves map[TradingPair]reservePair
	allowed  map[TradingPair]bool
}

type reservePair struct {
	ra, rb Amount // ra corresponds to the smaller id, rb to the larger
}

func NewPoolStore() *PoolStore {
	return &PoolStore{
		reserves: make(map[TradingPair]reservePair),
		allowed:  make(map[TradingPair]bool),
	}
}

// GetLiquidity looks up the canonical pair for (x, y) and returns the
// reserves oriented to match the caller's (x, y) order. A missing entry
// reports (0, 0).
func (p *PoolStore) GetLiquidity(x, y AssetID) (rx, ry Amount) {
	pair, swapped := Canonicalize(x, y)
	p.mu.RLock()
	rp := p.reserves[pair]
	p.mu.RUnlock()
	if swapped {
		return rp.rb, rp.ra
	}
	return rp.ra, rp.rb
}

// reservesOf returns the canonical-order reserves for pair directly,
// defaulting to (0, 0).
func (p *PoolStore) reservesOf(pair TradingPair) reservePair {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.reserves[pair]
}

// setReserves overwrites the canonical reserves for pair. Engine-only.
func (p *PoolStore) setReserves(pair TradingPair, ra, rb Amount) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reserves[pair] = reservePair{ra: ra, rb: rb}
}

// Allow admits pair for trading and liquidity provision.
func (p *PoolStore) Allow(pair TradingPair) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.allowed[pair] = true
}

// Disallow revokes admission for pair. Existing reserves are untouched;
// only new swaps/liquidity-adds are blocked.
func (p *PoolStore) Disallow(pair TradingPair) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.allowed, pair)
}

// IsAllowed reports whether pair may be traded or provisioned.
func (p *PoolStore) IsAllowed(pair TradingPair) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.allowed[pair]
}
