// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package masternode

import (
	"testing"

	"github.com/SCL-BSG/BSGold/wire"
)

func TestRegistryAddRejectsDuplicateCollateral(t *testing.T) {
	reg := NewRegistry(70015, 180*60, 60, 3*3600)
	rec := testRecord(0x10, Enabled)

	if !reg.Add(rec) {
		t.Fatal("first Add returned false")
	}
	if reg.Add(rec) {
		t.Fatal("second Add with same collateral returned true, want false")
	}
	if got := len(reg.Snapshot()); got != 1 {
		t.Fatalf("registry size = %d, want 1", got)
	}
}

func TestRegistryRemove(t *testing.T) {
	reg := NewRegistry(70015, 180*60, 60, 3*3600)
	rec := testRecord(0x11, Enabled)
	reg.Add(rec)

	reg.Remove(rec.Collateral, nil)
	if _, ok := reg.FindByCollateral(rec.Collateral); ok {
		t.Fatal("record still present after Remove")
	}
}

func TestSweepEvictsSigCacheForDiscardedRecord(t *testing.T) {
	reg := NewRegistry(70015, 180*60, 60, 3*3600)
	rec := testRecord(0x40, Removed)
	reg.Add(rec)

	sigs, err := NewSigCache(10)
	if err != nil {
		t.Fatalf("NewSigCache: %v", err)
	}
	sigHash, sig, pubKey := signedTestEntry(t, []byte("announce for 0x40"))
	sigs.Add(sigHash, sig, pubKey, rec.Collateral.String())

	reg.Sweep(NewMemChainView(), sigs)

	if _, ok := reg.FindByCollateral(rec.Collateral); ok {
		t.Fatal("Removed record survived Sweep")
	}
	if sigs.Exists(sigHash, sig, pubKey) {
		t.Fatal("signature cache entry survived Sweep of its record's collateral")
	}
}

func TestRegistryFindOldestUnpaid(t *testing.T) {
	reg := NewRegistry(70015, 180*60, 60, 3*3600)

	old := testRecord(0x20, Enabled)
	old.AnnounceTime = 1000
	old.LastPaid = 1000

	recent := testRecord(0x21, Enabled)
	recent.AnnounceTime = 1000
	recent.LastPaid = 500000

	reg.Add(old)
	reg.Add(recent)

	got, ok := reg.FindOldestUnpaid(nil, 0)
	if !ok {
		t.Fatal("FindOldestUnpaid found nothing")
	}
	if got.Collateral != old.Collateral {
		t.Fatalf("FindOldestUnpaid = %v, want the least-recently-paid record", got.Collateral)
	}
}

func TestRegistryAskForEntryThrottle(t *testing.T) {
	reg := NewRegistry(70015, 180*60, 60, 3*3600)
	op := wire.OutPoint{Hash: [32]byte{0x30}, Index: 0}

	if !reg.AskForEntry("peer1", op) {
		t.Fatal("first AskForEntry throttled unexpectedly")
	}
	if reg.AskForEntry("peer1", op) {
		t.Fatal("second immediate AskForEntry not throttled")
	}
}

func TestRegistryAllowFullSyncRequestFromThrottle(t *testing.T) {
	reg := NewRegistry(70015, 180*60, 60, 3*3600)

	if !reg.AllowFullSyncRequestFrom("203.0.113.9:9666", false) {
		t.Fatal("first full-sync request throttled unexpectedly")
	}
	if reg.AllowFullSyncRequestFrom("203.0.113.9:9666", false) {
		t.Fatal("second immediate full-sync request not throttled")
	}
	if !reg.AllowFullSyncRequestFrom("127.0.0.1:9666", true) {
		t.Fatal("loopback peer throttled, want never throttled")
	}
	if !reg.AllowFullSyncRequestFrom("127.0.0.1:9666", true) {
		t.Fatal("loopback peer throttled on second request")
	}
}
