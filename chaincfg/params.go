// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2014-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"github.com/SCL-BSG/BSGold/wire"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// Params defines the masternode-relevant parameters for a BSGold
// network.  Unlike a full chain's parameters, this core carries no
// consensus rules, subsidy schedule, or deployment table — those are
// the collaborating chain's responsibility (spec §1) — only the
// handful of values the registry, dispatcher, and RPC transport need
// to agree with the rest of the network on.
type Params struct {
	// Name defines a human-readable identifier for the network.
	Name string

	// Net defines the magic bytes used to identify the network.
	Net wire.BSGNet

	// DefaultPort defines the default peer-to-peer port for the
	// network.
	DefaultPort string

	// RPCPort defines the default JSON-RPC port for the network.
	RPCPort string

	// DNSSeeds holds the hostnames consulted for peer discovery when
	// a node cold-starts with an empty peer list.
	DNSSeeds []string

	// GenesisHash is the hash of the genesis block, used as a sanity
	// check that a peer claiming this network shares the same chain.
	GenesisHash chainhash.Hash

	// PubKeyHashAddrID is the first byte of a P2PKH address for this
	// network.
	PubKeyHashAddrID byte

	// PrivateKeyID is the first byte of a WIF private key for this
	// network; cmd/bsgd checks the operator key's WIF network byte
	// against it.
	PrivateKeyID byte

	// MasternodeCollateral is the exact number of atoms a masternode
	// announce's collateral outpoint must lock (§3, §4.2 item 5).
	MasternodeCollateral int64

	// MinConfirmations is the minimum confirmation depth the
	// collateral outpoint must have reached for an announce to be
	// admitted (§4.2 item 6).
	MinConfirmations int64

	// MinProtocolVersion is the minimum wire protocol version this
	// network currently accepts; see also MinProtocolVersionAt for
	// networks that have scheduled a future bump.
	MinProtocolVersion uint32

	// MinAnnounceInterval is the minimum number of seconds that must
	// elapse between two announces of the same collateral (§4.2
	// item 7).
	MinAnnounceInterval int64

	// HeartbeatExpiry is the number of seconds since the last
	// heartbeat after which a masternode is marked expired (§4.1).
	HeartbeatExpiry int64

	// DsegCooldown is the minimum number of seconds between two
	// DirectorySync requests from the same peer (§4.2 item 9).
	DsegCooldown int64

	// MinPingInterval is the minimum number of seconds before the
	// registry asks a peer again for the same unknown collateral
	// (Registry.AskForEntry).
	MinPingInterval int64

	// EpochFloor is the earliest announce time, as a Unix timestamp,
	// the dispatcher accepts; announces signed earlier are dropped
	// (Open Question, resolved in DESIGN.md).
	EpochFloor int64

	// SnapshotMagic is the magic string written at the head of a
	// persisted registry snapshot (§4.4).
	SnapshotMagic string
}

const snapshotMagic = "MasternodeCache"

// MainNetParams returns the parameters for the main BSGold network.
func MainNetParams() *Params {
	return &Params{
		Name:                 "mainnet",
		Net:                  wire.MainNet,
		DefaultPort:          "9666",
		RPCPort:              "9667",
		DNSSeeds:             []string{"seed1.bsgold.example", "seed2.bsgold.example"},
		GenesisHash:          chainhash.Hash{},
		PubKeyHashAddrID:     0x1a,
		PrivateKeyID:         0x80,
		MasternodeCollateral: 1000 * 1e8,
		MinConfirmations:     15,
		MinProtocolVersion:   70015,
		MinAnnounceInterval:  3600,
		HeartbeatExpiry:      180 * 60,
		DsegCooldown:         3 * 3600,
		MinPingInterval:      60,
		EpochFloor:           1511159400,
		SnapshotMagic:        snapshotMagic,
	}
}

// TestNetParams returns the parameters for the BSGold test network.
func TestNetParams() *Params {
	p := MainNetParams()
	p.Name = "testnet"
	p.Net = wire.TestNet
	p.DefaultPort = "19666"
	p.RPCPort = "19667"
	p.DNSSeeds = []string{"testnet-seed.bsgold.example"}
	p.PubKeyHashAddrID = 0x57
	p.PrivateKeyID = 0xef
	p.MinConfirmations = 1
	p.MinAnnounceInterval = 60
	return p
}

// SimNetParams returns the parameters for the BSGold simulation
// network used in local integration tests.
func SimNetParams() *Params {
	p := MainNetParams()
	p.Name = "simnet"
	p.Net = wire.SimNet
	p.DefaultPort = "19765"
	p.RPCPort = "19766"
	p.DNSSeeds = nil
	p.PubKeyHashAddrID = 0x3f
	p.PrivateKeyID = 0x64
	p.MinConfirmations = 1
	p.MinAnnounceInterval = 5
	p.HeartbeatExpiry = 60
	p.EpochFloor = 0
	return p
}

// RegNetParams returns the parameters for the BSGold regression test
// network.
func RegNetParams() *Params {
	p := MainNetParams()
	p.Name = "regnet"
	p.Net = wire.RegNet
	p.DefaultPort = "19866"
	p.RPCPort = "19867"
	p.DNSSeeds = nil
	p.PubKeyHashAddrID = 0x3c
	p.PrivateKeyID = 0x61
	p.MinConfirmations = 1
	p.MinAnnounceInterval = 1
	p.HeartbeatExpiry = 30
	p.EpochFloor = 0
	return p
}
