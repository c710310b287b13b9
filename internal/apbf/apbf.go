// Copyright (c) 2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package apbf provides an age-partitioned batched Bloom filter: a
// probabilistic set membership test that ages items out automatically
// instead of requiring an explicit reset. The dispatcher uses one to
// recognize gossip messages (by their signature bytes) it has already
// applied, so a message bouncing around a cycle of peers is
// dropped after the first hop instead of being relayed forever.
package apbf

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/dchest/siphash"
	"github.com/jrick/bitset"
)

// Filter is an age-partitioned batched Bloom filter.  Unlike a plain
// Bloom filter, which can only grow more saturated over time, an APBF
// is divided into generations; once a generation fills it is retired
// (cleared and reused as the newest generation), aging its entries out
// without ever needing a global reset that would forget everything at
// once.
type Filter struct {
	mtx sync.Mutex

	k       uint32 // number of hash functions (bits set per insert)
	genBits uint32 // number of bits per generation
	genCap  uint32 // number of elements a generation holds before rotating
	gens    []bitset.Bytes
	counts  []uint32
	newest  int
	k0, k1  uint64
}

// NewFilter returns a filter sized to hold approximately n recently
// inserted elements across numGens generations while keeping the
// false-positive rate near falsePositiveRate. A larger numGens ages
// entries out more gradually at the cost of more memory.
func NewFilter(n, numGens uint32, falsePositiveRate float64) *Filter {
	if numGens < 2 {
		numGens = 2
	}
	if n == 0 {
		n = 1
	}

	// Standard optimal Bloom filter sizing for a single generation
	// holding n/numGens elements.
	genCap := n / numGens
	if genCap == 0 {
		genCap = 1
	}
	m := optimalBits(genCap, falsePositiveRate)
	k := optimalHashCount(m, genCap)

	var seed [16]byte
	// A fixed, non-secret seed is fine here: the filter only needs to
	// avoid adversarial bit-collision gaming across runs of the same
	// process, not resist an attacker who can read the binary.
	copy(seed[:], "bsgold-apbf-seed")

	f := &Filter{
		k:       k,
		genBits: m,
		genCap:  genCap,
		gens:    make([]bitset.Bytes, numGens),
		counts:  make([]uint32, numGens),
		k0:      binary.LittleEndian.Uint64(seed[0:8]),
		k1:      binary.LittleEndian.Uint64(seed[8:16]),
	}
	for i := range f.gens {
		f.gens[i] = bitset.NewBytes(int(m))
	}
	return f
}

// optimalBits returns the number of bits needed for n elements at the
// target false-positive rate p, per the standard Bloom filter formula.
func optimalBits(n uint32, p float64) uint32 {
	m := -float64(n) * math.Log(p) / (math.Ln2 * math.Ln2)
	if m < 8 {
		m = 8
	}
	return uint32(math.Ceil(m))
}

// optimalHashCount returns the number of hash functions minimizing the
// false-positive rate for m bits and n elements.
func optimalHashCount(m, n uint32) uint32 {
	k := math.Round(float64(m) / float64(n) * math.Ln2)
	if k < 1 {
		k = 1
	}
	return uint32(k)
}

// bitIndexes returns the k bit positions data hashes to within a
// generation, using double hashing (two independent SipHash digests
// combined per Kirsch-Mitzenmacher) to avoid k independent hash calls.
func (f *Filter) bitIndexes(data []byte) []int {
	h1 := siphash.Hash(f.k0, f.k1, data)
	h2 := siphash.Hash(f.k1, f.k0, data)

	idx := make([]int, f.k)
	for i := uint32(0); i < f.k; i++ {
		combined := h1 + uint64(i)*h2
		idx[i] = int(combined % uint64(f.genBits))
	}
	return idx
}

// Contains reports whether data may have been added to the filter. A
// true result may be a false positive; a false result is always
// accurate.
func (f *Filter) Contains(data []byte) bool {
	idx := f.bitIndexes(data)

	f.mtx.Lock()
	defer f.mtx.Unlock()
	for _, gen := range f.gens {
		hit := true
		for _, bit := range idx {
			if !gen.Get(bit) {
				hit = false
				break
			}
		}
		if hit {
			return true
		}
	}
	return false
}

// Add inserts data into the newest generation, rotating to a fresh
// generation (overwriting the oldest) if the current one has reached
// capacity.
func (f *Filter) Add(data []byte) {
	idx := f.bitIndexes(data)

	f.mtx.Lock()
	defer f.mtx.Unlock()

	if f.counts[f.newest] >= f.genCap {
		f.newest = (f.newest + 1) % len(f.gens)
		f.gens[f.newest] = bitset.NewBytes(int(f.genBits))
		f.counts[f.newest] = 0
	}

	gen := f.gens[f.newest]
	for _, bit := range idx {
		gen.Set(bit)
	}
	f.counts[f.newest]++
}
