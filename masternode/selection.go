// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package masternode

import (
	"bytes"
	"encoding/binary"
	"sort"

	"github.com/SCL-BSG/BSGold/wire"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// scoreHash computes the deterministic per-record score described in
// spec §4.3: a hash binding record identity (collateral) to block
// identity (modulus, block height) so that ranking is verifiable by
// any node given the same chain prefix, without any coordination
// between nodes.
func scoreHash(collateral wire.OutPoint, modulus int64, blockHeight int64) chainhash.Hash {
	var buf bytes.Buffer
	buf.Write(collateral.Hash[:])
	binary.Write(&buf, binary.LittleEndian, collateral.Index)
	binary.Write(&buf, binary.LittleEndian, modulus)
	binary.Write(&buf, binary.LittleEndian, blockHeight)
	return chainhash.HashH(buf.Bytes())
}

// score32 returns the low-order 32 bits of scoreHash, the quantity
// spec §4.3 ranks by.
func score32(collateral wire.OutPoint, modulus int64, blockHeight int64) uint32 {
	h := scoreHash(collateral, modulus, blockHeight)
	return binary.LittleEndian.Uint32(h[0:4])
}

type scoredRecord struct {
	record Record
	score  uint32
}

// lessScored reports whether a ranks strictly ahead of b: higher
// 32-bit score wins; ties break by lexicographic order of collateral,
// with the lexicographically greater collateral breaking the tie (see
// spec scenario S5, where the greatest of three tied records wins).
func lessScored(a, b scoredRecord) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	return collateralLess(b.record.Collateral, a.record.Collateral)
}

// collateralLess reports whether a sorts lexicographically before b by
// (Hash, Index).
func collateralLess(a, b wire.OutPoint) bool {
	if c := bytes.Compare(a.Hash[:], b.Hash[:]); c != 0 {
		return c < 0
	}
	return a.Index < b.Index
}

// eligible filters records to those at or above minProtocol and, when
// onlyActive is set, Enabled.
func eligible(records []Record, minProtocol uint32, onlyActive bool) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		if onlyActive && rec.State != Enabled {
			continue
		}
		if uint32(rec.ProtocolVer) < minProtocol {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// ElectPayee implements spec §4.3's elect_payee: the winner is the
// Enabled, protocol-eligible record with the greatest 32-bit score for
// (modulus, blockHeight), ties broken toward the lexicographically
// greatest collateral.
func ElectPayee(records []Record, modulus int64, blockHeight int64, minProtocol uint32) (Record, bool) {
	candidates := eligible(records, minProtocol, true)
	if len(candidates) == 0 {
		return Record{}, false
	}

	best := scoredRecord{
		record: candidates[0],
		score:  score32(candidates[0].Collateral, modulus, blockHeight),
	}
	for _, rec := range candidates[1:] {
		cand := scoredRecord{record: rec, score: score32(rec.Collateral, modulus, blockHeight)}
		if lessScored(cand, best) {
			best = cand
		}
	}
	return best.record, true
}

// rankedOrder returns the eligible records sorted in descending rank
// order (rank 1 first), for fixed blockHeight/minProtocol/onlyActive.
// The modulus is fixed at 1 to match spec §4.3's rank/by_rank
// definitions, which do not take a modulus parameter.
func rankedOrder(records []Record, blockHeight int64, minProtocol uint32, onlyActive bool) []scoredRecord {
	candidates := eligible(records, minProtocol, onlyActive)
	scored := make([]scoredRecord, len(candidates))
	for i, rec := range candidates {
		scored[i] = scoredRecord{record: rec, score: score32(rec.Collateral, 1, blockHeight)}
	}
	sort.Slice(scored, func(i, j int) bool { return lessScored(scored[i], scored[j]) })
	return scored
}

// Rank implements spec §4.3's rank: the 1-based position of collateral
// among eligible records sorted by descending score, or false if
// collateral is absent from that ranking.
func Rank(records []Record, collateral wire.OutPoint, blockHeight int64, minProtocol uint32, onlyActive bool) (int, bool) {
	scored := rankedOrder(records, blockHeight, minProtocol, onlyActive)
	for i, s := range scored {
		if s.record.Collateral == collateral {
			return i + 1, true
		}
	}
	return 0, false
}

// ByRank implements spec §4.3's by_rank: the record at the given
// 1-based rank position, or false if n is out of range.
func ByRank(records []Record, n int, blockHeight int64, minProtocol uint32, onlyActive bool) (Record, bool) {
	scored := rankedOrder(records, blockHeight, minProtocol, onlyActive)
	if n < 1 || n > len(scored) {
		return Record{}, false
	}
	return scored[n-1].record, true
}
