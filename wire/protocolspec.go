// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// ProtocolSpec specifies the block height at which a given minimum
// masternode wire-protocol version took effect.  A chain carries a
// short, append-only table of these so that MinProtocolVersionAt can
// answer "what was the rule at height H" without needing every node to
// coordinate a flag day out of band.
type ProtocolSpec struct {
	// Height is the block height at which MinVersion became the
	// minimum accepted protocol version.
	Height uint32

	// MinVersion is the minimum protocol version accepted starting at
	// Height.
	MinVersion uint32
}

// MinProtocolVersionAt returns the minimum protocol version in effect
// at the given height according to specs, which must be sorted by
// ascending Height.  It returns 0 if specs is empty.
func MinProtocolVersionAt(specs []ProtocolSpec, height uint32) uint32 {
	var version uint32
	for _, s := range specs {
		if s.Height > height {
			break
		}
		version = s.MinVersion
	}
	return version
}
