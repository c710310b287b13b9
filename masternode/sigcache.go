// Copyright (c) 2015-2016 The btcsuite developers
// Copyright (c) 2016-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package masternode

import (
	"crypto/rand"
	"encoding/binary"
	"sync"

	"github.com/dchest/siphash"
	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// shortCollateralKeySize is the size of the byte array required for
// key material for the SipHash keyed shortCollateralHash function.
const shortCollateralKeySize = 16

// sigCacheEntry represents an entry in the SigCache. Entries are keyed
// by a hash over the public key, signature and canonical signed-message
// bytes (mnpeer's sigVerifyKey). In the event of
// a cache hit an additional comparison of the signature and public key
// is performed to guard against sigHash collisions.
type sigCacheEntry struct {
	sig             *ecdsa.Signature
	pubKey          *secp256k1.PublicKey
	shortCollateral uint64
}

// SigCache implements an ECDSA signature verification cache with a
// randomized eviction policy, sparing the dispatcher from re-verifying
// a signature it has already accepted once (an Announce relayed to
// every peer is otherwise re-verified by each hop). Only valid
// signatures are ever added to the cache.
type SigCache struct {
	sync.RWMutex
	validSigs  map[chainhash.Hash]sigCacheEntry
	maxEntries uint
	shortKey   [shortCollateralKeySize]byte
}

// NewSigCache creates and initializes a new instance of SigCache. Its
// sole parameter 'maxEntries' represents the maximum number of entries
// allowed to exist in the SigCache at any particular moment. Random
// entries are evicted to make room for new entries that would cause
// the number of entries in the cache to exceed the max.
func NewSigCache(maxEntries uint) (*SigCache, error) {
	shortKey, err := createShortKey()
	if err != nil {
		return nil, err
	}

	return &SigCache{
		validSigs:  make(map[chainhash.Hash]sigCacheEntry, maxEntries),
		maxEntries: maxEntries,
		shortKey:   shortKey,
	}, nil
}

// Exists returns true if an existing entry of 'sig' over 'sigHash' for
// public key 'pubKey' is found within the SigCache.
//
// NOTE: This function is safe for concurrent access. Readers won't be
// blocked unless there exists a writer, adding an entry to the
// SigCache.
func (s *SigCache) Exists(sigHash chainhash.Hash, sig *ecdsa.Signature, pubKey *secp256k1.PublicKey) bool {
	s.RLock()
	entry, ok := s.validSigs[sigHash]
	s.RUnlock()

	return ok && entry.pubKey.IsEqual(pubKey) && entry.sig.IsEqual(sig)
}

// Add adds an entry for a signature over 'sigHash' under public key
// 'pubKey' to the signature cache, associated with the given
// collateral outpoint for sweep-time eviction. In the event that the
// SigCache is full, an existing entry is randomly chosen to be evicted
// to make space for the new entry.
//
// NOTE: This function is safe for concurrent access. Writers will
// block simultaneous readers until function execution has concluded.
func (s *SigCache) Add(sigHash chainhash.Hash, sig *ecdsa.Signature, pubKey *secp256k1.PublicKey, collateral string) {
	s.Lock()
	defer s.Unlock()

	if s.maxEntries == 0 {
		return
	}

	if uint(len(s.validSigs)+1) > s.maxEntries {
		// Remove a random entry from the map, relying on the random
		// starting point of Go's map iteration. An adversary cannot
		// target a specific entry for eviction without a preimage
		// attack on the hash function keying sigHash.
		for sigEntry := range s.validSigs {
			delete(s.validSigs, sigEntry)
			break
		}
	}
	s.validSigs[sigHash] = sigCacheEntry{
		sig:             sig,
		pubKey:          pubKey,
		shortCollateral: shortCollateralHash(collateral, s.shortKey),
	}
}

// EvictCollateral removes every cached signature associated with the
// given collateral outpoint. The registry calls this when a record
// leaves the registry (sweep, removal, or collateral spend) so that a
// future announce bearing the same collateral cannot satisfy the
// signature check from a stale cache entry.
func (s *SigCache) EvictCollateral(collateral string) {
	target := shortCollateralHash(collateral, s.shortKey)

	s.Lock()
	defer s.Unlock()
	for sigHash, entry := range s.validSigs {
		if entry.shortCollateral == target {
			delete(s.validSigs, sigHash)
		}
	}
}

// createShortKey returns a cryptographically secure random key of size
// shortCollateralKeySize for use with shortCollateralHash.
func createShortKey() ([shortCollateralKeySize]byte, error) {
	var key [shortCollateralKeySize]byte
	_, err := rand.Read(key[:])
	if err != nil {
		return key, err
	}
	return key, nil
}

// shortCollateralHash produces a 64-bit SipHash-2-4 digest of a
// collateral outpoint's canonical string form, keyed so an adversary
// cannot choose which entries collide.
func shortCollateralHash(collateral string, key [shortCollateralKeySize]byte) uint64 {
	k0 := binary.LittleEndian.Uint64(key[0:8])
	k1 := binary.LittleEndian.Uint64(key[8:16])
	return siphash.Hash(k0, k1, []byte(collateral))
}
