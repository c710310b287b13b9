// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package masternode

import (
	"bytes"
	"math/rand"
	"sync"

	"github.com/SCL-BSG/BSGold/wire"
)

// Registry owns the authoritative mapping from collateral outpoint to
// masternode record, plus the three ask-tables used to throttle
// gossip (spec §3, §4.1). A single lock guards the record table and
// all three throttle tables together, so every mutation observes the
// registry invariants before the lock is released.
type Registry struct {
	mtx sync.RWMutex

	records map[wire.OutPoint]*Record

	// peersWhoAskedUs maps a peer address to the earliest time we will
	// answer a DirectorySync(null) from it again.
	peersWhoAskedUs map[string]int64

	// peersWeAsked maps a peer address to the earliest time we will
	// send it another DirectorySync(null).
	peersWeAsked map[string]int64

	// weAskedForEntry maps a collateral outpoint to the earliest time
	// we will re-request it via DirectorySync.
	weAskedForEntry map[wire.OutPoint]int64

	minProtocol     uint32
	heartbeatExpiry int64
	minPingInterval int64
	dsegCooldown    int64
}

// NewRegistry returns an empty Registry configured with the given
// per-network timing constants (chaincfg.Params).
func NewRegistry(minProtocol uint32, heartbeatExpiry, minPingInterval, dsegCooldown int64) *Registry {
	return &Registry{
		records:         make(map[wire.OutPoint]*Record),
		peersWhoAskedUs: make(map[string]int64),
		peersWeAsked:    make(map[string]int64),
		weAskedForEntry: make(map[wire.OutPoint]int64),
		minProtocol:     minProtocol,
		heartbeatExpiry: heartbeatExpiry,
		minPingInterval: minPingInterval,
		dsegCooldown:    dsegCooldown,
	}
}

// Add inserts record only if its Collateral is not already present.
// It reports whether the insertion happened.
func (r *Registry) Add(record Record) bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, exists := r.records[record.Collateral]; exists {
		return false
	}
	stored := record.Clone()
	r.records[record.Collateral] = &stored
	return true
}

// Update applies mutate to the stored record for collateral in place,
// under the registry lock, and reports whether the record existed;
// Update is a no-op returning false otherwise.
func (r *Registry) Update(collateral wire.OutPoint, mutate func(*Record)) bool {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	rec, ok := r.records[collateral]
	if !ok {
		return false
	}
	mutate(rec)
	return true
}

// FindByCollateral returns a copy of the record keyed by outpoint, if
// present.
func (r *Registry) FindByCollateral(outpoint wire.OutPoint) (Record, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	rec, ok := r.records[outpoint]
	if !ok {
		return Record{}, false
	}
	return rec.Clone(), true
}

// FindByOperatorKey returns a copy of the first record whose
// OperatorPubKey matches pubKey, if any.
func (r *Registry) FindByOperatorKey(pubKey []byte) (Record, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	for _, rec := range r.records {
		if bytes.Equal(rec.OperatorPubKey, pubKey) {
			return rec.Clone(), true
		}
	}
	return Record{}, false
}

// FindOldestUnpaid returns the Enabled record with the greatest
// seconds-since-payment, excluding any outpoint in excluding and any
// record whose collateral age (time since AnnounceTime) is below
// minAgeSecs.
func (r *Registry) FindOldestUnpaid(excluding map[wire.OutPoint]struct{}, minAgeSecs int64) (Record, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	t := now()
	var best *Record
	var bestAge int64 = -1
	for op, rec := range r.records {
		if rec.State != Enabled {
			continue
		}
		if _, skip := excluding[op]; skip {
			continue
		}
		if t-rec.AnnounceTime < minAgeSecs {
			continue
		}
		age := rec.secondsSincePaid(t)
		if age > bestAge {
			bestAge = age
			best = rec
		}
	}
	if best == nil {
		return Record{}, false
	}
	return best.Clone(), true
}

// FindRandom returns a uniformly sampled Enabled record meeting
// minProtocol, excluding any outpoint in excluding.
func (r *Registry) FindRandom(excluding map[wire.OutPoint]struct{}, minProtocol uint32) (Record, bool) {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	var candidates []*Record
	for op, rec := range r.records {
		if rec.State != Enabled || uint32(rec.ProtocolVer) < minProtocol {
			continue
		}
		if _, skip := excluding[op]; skip {
			continue
		}
		candidates = append(candidates, rec)
	}
	if len(candidates) == 0 {
		return Record{}, false
	}
	return candidates[rand.Intn(len(candidates))].Clone(), true
}

// CountEnabled returns the number of Enabled records meeting
// minProtocol.
func (r *Registry) CountEnabled(minProtocol uint32) int {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	count := 0
	for _, rec := range r.records {
		if rec.State == Enabled && uint32(rec.ProtocolVer) >= minProtocol {
			count++
		}
	}
	return count
}

// Remove deletes the record keyed by outpoint, if present, and evicts
// any signature cached against that collateral so a later announce
// bearing the same collateral cannot satisfy verification from a stale
// entry. sigs may be nil in tests that don't exercise the cache.
func (r *Registry) Remove(outpoint wire.OutPoint, sigs *SigCache) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	delete(r.records, outpoint)
	if sigs != nil {
		sigs.EvictCollateral(outpoint.String())
	}
}

// Snapshot returns a deep copy of every stored record, for the
// selection engine and for persistence. The returned slice is safe for
// the caller to read and mutate freely.
func (r *Registry) Snapshot() []Record {
	r.mtx.RLock()
	defer r.mtx.RUnlock()

	out := make([]Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec.Clone())
	}
	return out
}

// Sweep runs Check on every record, then erases records left in
// {Removed, CollateralSpent} or below minProtocol, and erases expired
// throttle-table entries. chain is consulted for each record's
// collateral-unspent status. sigs, if non-nil, has every signature
// cached against an evicted record's collateral dropped too, so a
// later announce reusing that collateral cannot replay a stale
// verification result.
func (r *Registry) Sweep(chain ChainView, sigs *SigCache) {
	t := now()

	r.mtx.Lock()
	defer r.mtx.Unlock()

	for op, rec := range r.records {
		_, _, _, unspent := chain.UTXODetails(op)
		rec.Check(t, r.heartbeatExpiry, unspent)
		if rec.State == Removed || rec.State == CollateralSpent || uint32(rec.ProtocolVer) < r.minProtocol {
			log.Debugf("sweep: evicting %s (state %s, protocol %d)", op, rec.State, rec.ProtocolVer)
			delete(r.records, op)
			if sigs != nil {
				sigs.EvictCollateral(op.String())
			}
		}
	}

	for peer, deadline := range r.peersWhoAskedUs {
		if deadline <= t {
			delete(r.peersWhoAskedUs, peer)
		}
	}
	for peer, deadline := range r.peersWeAsked {
		if deadline <= t {
			delete(r.peersWeAsked, peer)
		}
	}
	for op, deadline := range r.weAskedForEntry {
		if deadline <= t {
			delete(r.weAskedForEntry, op)
		}
	}
}

// AskForEntry records that we requested outpoint from peer, honouring
// the weAskedForEntry throttle keyed by outpoint. It reports whether
// the request should actually be sent (false means the deadline is
// still in the future).
func (r *Registry) AskForEntry(peer string, outpoint wire.OutPoint) bool {
	t := now()

	r.mtx.Lock()
	defer r.mtx.Unlock()

	if deadline, asked := r.weAskedForEntry[outpoint]; asked && deadline > t {
		return false
	}
	r.weAskedForEntry[outpoint] = t + r.minPingInterval
	return true
}

// AnnounceSyncTo reports whether a full DirectorySync(null) request
// should be sent to peer, subject to the peersWeAsked throttle. A true
// result also records the new deadline.
func (r *Registry) AnnounceSyncTo(peer string) bool {
	t := now()

	r.mtx.Lock()
	defer r.mtx.Unlock()

	if deadline, asked := r.peersWeAsked[peer]; asked && deadline > t {
		return false
	}
	r.peersWeAsked[peer] = t + r.dsegCooldown
	return true
}

// AllowFullSyncRequestFrom reports whether peer may be answered for a
// DirectorySync(null) request right now, honouring peersWhoAskedUs.
// Loopback peers are never throttled (spec §4.2: "Non-loopback peers
// are throttled").
func (r *Registry) AllowFullSyncRequestFrom(peer string, isLoopback bool) bool {
	if isLoopback {
		return true
	}

	t := now()

	r.mtx.Lock()
	defer r.mtx.Unlock()

	if deadline, asked := r.peersWhoAskedUs[peer]; asked && deadline > t {
		return false
	}
	r.peersWhoAskedUs[peer] = t + r.dsegCooldown
	return true
}
