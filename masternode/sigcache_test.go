// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package masternode

import (
	"testing"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

func signedTestEntry(t *testing.T, message []byte) (chainhash.Hash, *ecdsa.Signature, *secp256k1.PublicKey) {
	t.Helper()
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %v", err)
	}
	digest := chainhash.HashH(message)
	sig := ecdsa.Sign(priv, digest[:])
	return digest, sig, priv.PubKey()
}

func TestSigCacheAddExists(t *testing.T) {
	cache, err := NewSigCache(10)
	if err != nil {
		t.Fatalf("NewSigCache: %v", err)
	}
	sigHash, sig, pubKey := signedTestEntry(t, []byte("announce payload"))

	if cache.Exists(sigHash, sig, pubKey) {
		t.Fatal("Exists true before Add")
	}
	cache.Add(sigHash, sig, pubKey, "collateral-a")
	if !cache.Exists(sigHash, sig, pubKey) {
		t.Fatal("Exists false after Add")
	}
}

func TestSigCacheEvictCollateral(t *testing.T) {
	cache, err := NewSigCache(10)
	if err != nil {
		t.Fatalf("NewSigCache: %v", err)
	}

	sigHashA, sigA, pubKeyA := signedTestEntry(t, []byte("record a"))
	sigHashB, sigB, pubKeyB := signedTestEntry(t, []byte("record b"))
	cache.Add(sigHashA, sigA, pubKeyA, "collateral-a")
	cache.Add(sigHashB, sigB, pubKeyB, "collateral-b")

	cache.EvictCollateral("collateral-a")

	if cache.Exists(sigHashA, sigA, pubKeyA) {
		t.Fatal("entry for collateral-a survived EvictCollateral")
	}
	if !cache.Exists(sigHashB, sigB, pubKeyB) {
		t.Fatal("unrelated collateral-b entry evicted alongside collateral-a")
	}
}
