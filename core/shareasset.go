package core

// shareasset.go – the bijection between a canonical trading pair and its
// share-asset id (§3, §9 "Share-asset encoding"). The design notes allow
// either tagging the high bits of a wider id space or keeping a separate
// map; this implementation does both: ids are tagged (IsShare, types.go) so
// the two subspaces are distinguishable by inspection alone, and a map
// recovers the pair from the id.

import "sync"

// ShareRegistry allocates and remembers share-asset ids for trading pairs.
// Allocation is idempotent: the same pair always yields the same id once
// allocated, and the id is never reused for a different pair even after the
// pool backing it drains to (0,0).
type ShareRegistry struct {
	mu      sync.RWMutex
	byPair  map[TradingPair]AssetID
	byShare map[AssetID]TradingPair
	next    AssetID
}

func NewShareRegistry() *ShareRegistry {
	return &ShareRegistry{
		byPair:  make(map[TradingPair]AssetID),
		byShare: make(map[AssetID]TradingPair),
		next:    1,
	}
}

// ShareOf returns the share-asset id for pair, allocating one on first use.
func (r *ShareRegistry) ShareOf(pair TradingPair) AssetID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if id, ok := r.byPair[pair]; ok {
		return id
	}
	id := shareTagBit | r.next
	r.next++
	r.byPair[pair] = id
	r.byShare[id] = pair
	return id
}

// PairOf recovers the canonical pair backing a share-asset id. ok is false
// when id is not a share asset or was never allocated.
func (r *ShareRegistry) PairOf(id AssetID) (pair TradingPair, ok bool) {
	if !id.IsShare() {
		return TradingPair{}, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	pair, ok = r.byShare[id]
	return pair, ok
}

// Exists reports whether id has ever been allocated as a share asset. Used
// by the ledger to admit mint/burn against a share id that carries no
// issue()-time metadata.
func (r *ShareRegistry) Exists(id AssetID) bool {
	_, ok := r.PairOf(id)
	return ok
}
