// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcserver

import (
	"fmt"
	"sync"

	"github.com/SCL-BSG/BSGold/rpc"
	"github.com/SCL-BSG/BSGold/wire"
)

// PeerInfo is the subset of a connected peer's state the getpeerinfo
// RPC command reports. Connection management, handshakes, and address
// discovery are external collaborators (spec §1); this struct is the
// read-only view this node's RPC surface needs from them.
type PeerInfo struct {
	Addr      string
	Inbound   bool
	Version   int32
	Subver    string
	LastSend  int64
	LastRecv  int64
	BytesSent uint64
	BytesRecv uint64
	ConnTime  int64

	// Features mirrors the peer's advertised directory-sync/votes/
	// reward-script support, surfaced read-only for operator diagnosis.
	Features wire.PeerFeatures
}

// NetTotals is the aggregate byte counters reported by getnettotals.
type NetTotals struct {
	TotalBytesRecv uint64
	TotalBytesSent uint64
	TimeMillis     int64
}

// NetworkView is the read-only-plus-addnode slice of the peer/
// connection-manager layer this node's RPC transport needs (spec §6:
// "getconnectioncount, getpeerinfo, addnode, getnettotals"). The
// connection manager itself is an external collaborator (spec §1);
// only its go.mod was retrieved from the teacher, with no source to
// adapt (DESIGN.md), so this is a fresh, minimal contract plus an
// in-memory stand-in for networks with no real collaborator wired in.
type NetworkView interface {
	ConnectionCount() int
	Peers() []PeerInfo
	AddNode(addr string, subCmd rpc.AddNodeSubCmd) error
	NetTotals() NetTotals
}

// MemNetworkView is a simple in-memory NetworkView, used by cmd/bsgd
// on every network and by rpcserver's own tests; no real connection
// manager is wired in.
type MemNetworkView struct {
	mtx   sync.Mutex
	peers map[string]PeerInfo
	sent  uint64
	recv  uint64
}

// NewMemNetworkView returns an empty MemNetworkView.
func NewMemNetworkView() *MemNetworkView {
	return &MemNetworkView{peers: make(map[string]PeerInfo)}
}

// ConnectionCount implements NetworkView.
func (m *MemNetworkView) ConnectionCount() int {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return len(m.peers)
}

// Peers implements NetworkView.
func (m *MemNetworkView) Peers() []PeerInfo {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	out := make([]PeerInfo, 0, len(m.peers))
	for _, p := range m.peers {
		out = append(out, p)
	}
	return out
}

// AddNode implements NetworkView: "add" and "onetry" register a
// synthetic peer entry; "remove" deletes it. A real connection manager
// would additionally dial out; this stand-in only tracks bookkeeping.
func (m *MemNetworkView) AddNode(addr string, subCmd rpc.AddNodeSubCmd) error {
	m.mtx.Lock()
	defer m.mtx.Unlock()

	switch subCmd {
	case rpc.ANAdd, rpc.ANOneTry:
		if _, exists := m.peers[addr]; exists && subCmd == rpc.ANAdd {
			return fmt.Errorf("node %s is already added", addr)
		}
		m.peers[addr] = PeerInfo{Addr: addr, Features: wire.NewPeerFeatures()}
		return nil
	case rpc.ANRemove:
		if _, exists := m.peers[addr]; !exists {
			return fmt.Errorf("node %s has not been added", addr)
		}
		delete(m.peers, addr)
		return nil
	default:
		return fmt.Errorf("invalid subcommand %q for addnode", subCmd)
	}
}

// NetTotals implements NetworkView.
func (m *MemNetworkView) NetTotals() NetTotals {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	return NetTotals{TotalBytesRecv: m.recv, TotalBytesSent: m.sent}
}

// AddBytes lets a test or daemon wiring record traffic counters
// surfaced by getnettotals.
func (m *MemNetworkView) AddBytes(sent, recv uint64) {
	m.mtx.Lock()
	defer m.mtx.Unlock()
	m.sent += sent
	m.recv += recv
}
