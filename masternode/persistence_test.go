// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package masternode

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/SCL-BSG/BSGold/wire"
)

func testRecord(b byte, state State) Record {
	return Record{
		Collateral:       wire.OutPoint{Hash: [32]byte{b}, Index: 0},
		Endpoint:         wire.NetAddress{IP: nil, Port: 9666},
		OperatorPubKey:   []byte{b, b, b},
		CollateralPubKey: []byte{b, b},
		AnnounceSig:      []byte{0xAA},
		AnnounceTime:     1600000000,
		LastHeartbeat:    1600000000,
		ProtocolVer:      70015,
		State:            state,
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mncache.dat")

	records := []Record{
		testRecord(0x01, Enabled),
		testRecord(0x02, Enabled),
	}

	if err := Save(path, "MasternodeCache", wire.MainNet, records); err != nil {
		t.Fatalf("Save: %v", err)
	}

	chain := NewMemChainView()
	for _, rec := range records {
		chain.SetUTXO(rec.Collateral, 1000*1e8, 10, nil, true)
	}

	reg := NewRegistry(0, 180*60, 60, 3*3600)
	if err := Load(path, "MasternodeCache", wire.MainNet, reg, chain, nil); err != nil {
		t.Fatalf("Load: %v", err)
	}

	got := reg.Snapshot()
	if len(got) != len(records) {
		t.Fatalf("loaded %d records, want %d", len(got), len(records))
	}
	for _, want := range records {
		loaded, ok := reg.FindByCollateral(want.Collateral)
		if !ok {
			t.Fatalf("missing collateral %v after round trip", want.Collateral)
		}
		if loaded.ProtocolVer != want.ProtocolVer || loaded.AnnounceTime != want.AnnounceTime {
			t.Fatalf("record mismatch after round trip: got %+v want %+v", loaded, want)
		}
	}
}

func TestSnapshotCorruptedLastByteIsIncorrectHash(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mncache.dat")

	if err := Save(path, "MasternodeCache", wire.MainNet, []Record{testRecord(0x03, Enabled)}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	raw[len(raw)-1] ^= 0xFF
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	chain := NewMemChainView()
	reg := NewRegistry(0, 180*60, 60, 3*3600)
	err = Load(path, "MasternodeCache", wire.MainNet, reg, chain, nil)
	if err != ErrIncorrectHash {
		t.Fatalf("Load corrupted = %v, want ErrIncorrectHash", err)
	}
}

func TestSnapshotCorruptedMagicIsIncorrectMagicMessage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mncache.dat")

	if err := Save(path, "MasternodeCache", wire.MainNet, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}

	if err := Save(path+".other", "NotTheRightMagic", wire.MainNet, nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	otherRaw, err := os.ReadFile(path + ".other")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if err := os.WriteFile(path, otherRaw, 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	chain := NewMemChainView()
	reg := NewRegistry(0, 180*60, 60, 3*3600)
	err = Load(path, "MasternodeCache", wire.MainNet, reg, chain, nil)
	if err != ErrIncorrectMagicMessage {
		t.Fatalf("Load wrong magic = %v, want ErrIncorrectMagicMessage", err)
	}
}
