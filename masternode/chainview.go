// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package masternode

import (
	"github.com/SCL-BSG/BSGold/wire"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// ChainView is the read-only slice of full-node state this package
// needs from its collaborating blockchain (spec §1, §2: "Chain view
// (collaborator)"). It never mutates anything; block validation,
// consensus rules, and the UTXO set itself are all out of scope here.
type ChainView interface {
	// BestHeight returns the height of the current best chain tip.
	BestHeight() int64

	// BlockHashByHeight returns the hash of the block at the given
	// height, and false if the height is unknown. Used directly by the
	// getbestblockhash/getblockhash/getblock RPC handlers (spec §6),
	// which this package answers from the collaborator rather than
	// performing any consensus work itself.
	BlockHashByHeight(height int64) (chainhash.Hash, bool)

	// TimeByHeight returns the block time at the given height, and
	// false if the height is unknown (not yet reached, or beyond the
	// tip).
	TimeByHeight(height int64) (int64, bool)

	// UTXODetails reports whether the given outpoint is currently an
	// unspent transaction output, the value it locks (in atoms), the
	// height it was mined at, and the script paying it — used both by
	// the collateral proof (spec §4.2 item 8) and by sweep-time
	// collateral-spent detection.
	UTXODetails(op wire.OutPoint) (value int64, height int64, script []byte, unspent bool)
}

// MemChainView is a simple in-memory ChainView used by tests and by
// cmd/bsgd, which wires no real chain collaborator in on any network.
type MemChainView struct {
	Height     int64
	BlockHashes map[int64]chainhash.Hash
	BlockTimes map[int64]int64
	UTXOs      map[wire.OutPoint]utxoEntry
}

type utxoEntry struct {
	value   int64
	height  int64
	script  []byte
	unspent bool
}

// NewMemChainView returns an empty MemChainView.
func NewMemChainView() *MemChainView {
	return &MemChainView{
		BlockHashes: make(map[int64]chainhash.Hash),
		BlockTimes:  make(map[int64]int64),
		UTXOs:       make(map[wire.OutPoint]utxoEntry),
	}
}

// BestHeight implements ChainView.
func (m *MemChainView) BestHeight() int64 { return m.Height }

// BlockHashByHeight implements ChainView.
func (m *MemChainView) BlockHashByHeight(height int64) (chainhash.Hash, bool) {
	h, ok := m.BlockHashes[height]
	return h, ok
}

// SetBlockHash registers a synthetic block hash at height, for tests
// and the getblock-family RPC handlers under simnet/regnet.
func (m *MemChainView) SetBlockHash(height int64, hash chainhash.Hash) {
	m.BlockHashes[height] = hash
}

// TimeByHeight implements ChainView.
func (m *MemChainView) TimeByHeight(height int64) (int64, bool) {
	t, ok := m.BlockTimes[height]
	return t, ok
}

// UTXODetails implements ChainView.
func (m *MemChainView) UTXODetails(op wire.OutPoint) (int64, int64, []byte, bool) {
	e, ok := m.UTXOs[op]
	if !ok {
		return 0, 0, nil, false
	}
	return e.value, e.height, e.script, e.unspent
}

// SetUTXO registers a synthetic UTXO for op, for use by tests
// constructing a collateral proof scenario.
func (m *MemChainView) SetUTXO(op wire.OutPoint, value, height int64, script []byte, unspent bool) {
	m.UTXOs[op] = utxoEntry{value: value, height: height, script: script, unspent: unspent}
}
