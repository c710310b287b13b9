// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "github.com/jrick/bitset"

// Peer feature flags, advertised by a peer during its initial
// handshake (outside this package's scope) and surfaced read-only
// through the RPC transport's getpeerinfo command.
const (
	FeatureDirectorySync = iota
	FeatureVotes
	FeatureRewardScripts

	numFeatures
)

// PeerFeatures is a small, fixed-size bitset of the feature flags a
// peer advertises.  It is deliberately tiny (three flags today) but
// modeled as a bitset rather than three bools because the peer
// handshake this sits within carries an open-ended, version-gated
// feature list that is expected to grow.
type PeerFeatures struct {
	bits bitset.Bytes
}

// NewPeerFeatures returns a zero-valued PeerFeatures.
func NewPeerFeatures() PeerFeatures {
	return PeerFeatures{bits: bitset.NewBytes(numFeatures)}
}

// Set marks feature as supported.
func (f *PeerFeatures) Set(feature int) {
	f.bits.Set(feature)
}

// Has reports whether feature is supported.
func (f PeerFeatures) Has(feature int) bool {
	if f.bits == nil {
		return false
	}
	return f.bits.Get(feature)
}
