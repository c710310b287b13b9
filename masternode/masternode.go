// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package masternode implements the collateralized service-node
// overlay: the registry of advertised nodes, the deterministic payee
// selection engine run at block-production time, and the checksummed
// on-disk snapshot of the registry. The gossip state machine that
// feeds the registry lives in the sibling mnpeer package; this package
// owns only the data and the pure functions over it.
package masternode

import (
	"time"

	"github.com/SCL-BSG/BSGold/wire"
)

// State is the lifecycle stage of a MasternodeRecord.
type State int

const (
	// PreEnabled marks a record that has not yet had a heartbeat;
	// Check promotes it to Enabled once LastHeartbeat is set. The
	// dispatcher inserts fresh announces directly as Enabled.
	PreEnabled State = iota

	// Enabled is the steady eligible-for-payment state.
	Enabled

	// Expired marks a record whose last heartbeat is older than
	// HeartbeatExpiry; it is still present but not payable.
	Expired

	// Removed marks a record whose operator sent a heartbeat with the
	// stop flag set.
	Removed

	// CollateralSpent marks a record whose collateral outpoint is no
	// longer unspent according to the chain view.
	CollateralSpent
)

// String returns a human-readable name for the state, used by the
// masternodelist/masternode RPC commands.
func (s State) String() string {
	switch s {
	case PreEnabled:
		return "PRE_ENABLED"
	case Enabled:
		return "ENABLED"
	case Expired:
		return "EXPIRED"
	case Removed:
		return "REMOVED"
	case CollateralSpent:
		return "COLLATERAL_SPENT"
	default:
		return "UNKNOWN"
	}
}

// Record is one advertised masternode. The registry exclusively owns
// every Record it stores; callers receive copies (see Registry.Find*),
// never a pointer into the live table, so a borrowed Record can never
// be retained past the scope of the call that produced it (spec's
// "cyclic reference" design note).
type Record struct {
	Collateral       wire.OutPoint
	Endpoint         wire.NetAddress
	OperatorPubKey   []byte
	CollateralPubKey []byte
	AnnounceSig      []byte

	AnnounceTime   int64
	LastSeen       int64
	LastHeartbeat  int64
	LastPaid       int64
	ProtocolVer    int32

	RewardScript  []byte
	RewardPercent int32

	State      State
	PortOpen   bool
	LegacyFlag bool

	// LastVoteTime and Vote track the most recently accepted Vote
	// message for this record (spec §4.2, rate-limited to one per
	// hour).
	LastVoteTime int64
	Vote         int32
}

// Clone returns a deep copy of r, safe for a caller to retain and
// mutate without affecting the registry's stored copy.
func (r Record) Clone() Record {
	clone := r
	clone.OperatorPubKey = append([]byte(nil), r.OperatorPubKey...)
	clone.CollateralPubKey = append([]byte(nil), r.CollateralPubKey...)
	clone.AnnounceSig = append([]byte(nil), r.AnnounceSig...)
	clone.RewardScript = append([]byte(nil), r.RewardScript...)
	return clone
}

// secondsSincePaid returns how long ago r was last paid, in seconds,
// given the current time. When LastPaid is zero (never paid) it
// returns the time since AnnounceTime instead.
func (r Record) secondsSincePaid(now int64) int64 {
	if r.LastPaid == 0 {
		return now - r.AnnounceTime
	}
	return now - r.LastPaid
}

// Check re-evaluates r's State from its timestamps and the chain
// view's report of whether its collateral is still unspent. It never
// demotes Enabled on account of PortOpen, per the advisory-only
// treatment of the connectivity probe (open question, spec §9).
func (r *Record) Check(now int64, heartbeatExpiry int64, collateralUnspent bool) {
	if r.State == Removed || r.State == CollateralSpent {
		return
	}
	if !collateralUnspent {
		r.State = CollateralSpent
		return
	}
	if now-r.LastHeartbeat >= heartbeatExpiry {
		r.State = Expired
		return
	}
	if r.State == PreEnabled && r.LastHeartbeat > 0 {
		r.State = Enabled
		return
	}
	if r.State == Expired && now-r.LastHeartbeat < heartbeatExpiry {
		r.State = Enabled
	}
}

// now is a package-level var so tests can substitute a fixed clock
// instead of patching every call site with an explicit parameter.
var now = func() int64 { return time.Now().Unix() }
