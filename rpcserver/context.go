// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package rpcserver implements spec §4.5's JSON-RPC transport: a TCP
// (optionally TLS) listener, HTTP Basic auth with a CIDR allow-list, a
// bounded worker pool, a static command table carrying the
// (ok_in_safe_mode, thread_safe, needs_wallet) triple, and request
// batching. It never holds a registry/chain-view singleton itself —
// every handler receives the node's state through an explicit
// *Context argument (spec §9, "Global singletons... -> a process-wide
// context value passed explicitly to handlers").
package rpcserver

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/SCL-BSG/BSGold/chaincfg"
	"github.com/SCL-BSG/BSGold/internal/banlist"
	"github.com/SCL-BSG/BSGold/masternode"
	"github.com/SCL-BSG/BSGold/masternode/mnpeer"
)

// Context bundles every piece of node state a command handler may
// touch. It is constructed once at daemon startup and passed by
// pointer into every request; handlers never reach for a package-level
// global.
type Context struct {
	Params     *chaincfg.Params
	Registry   *masternode.Registry
	Chain      masternode.ChainView
	Dispatcher *mnpeer.Dispatcher
	Network    NetworkView
	Bans       *banlist.List

	StartTime int64

	// Shutdown is invoked by the stop command; the daemon supplies a
	// closure that stops the accept loop and begins the drain
	// described in spec §5 ("Cancellation").
	Shutdown func()

	safeMode int32

	// ChainLock and WalletLock are the chain_state_lock and
	// wallet_lock of spec §5's lock ordering
	// (rpc_method_lock -> chain_state_lock -> wallet_lock ->
	// registry_lock -> peer_vector_lock). This core has no wallet of
	// its own, so WalletLock only exists to preserve the ordering
	// contract for any needs_wallet handler a future collaborator
	// registers.
	ChainLock  sync.Mutex
	WalletLock sync.Mutex
}

// NewContext returns a Context with StartTime set to now.
func NewContext(params *chaincfg.Params, registry *masternode.Registry, chain masternode.ChainView, dispatcher *mnpeer.Dispatcher, network NetworkView, bans *banlist.List) *Context {
	return &Context{
		Params:     params,
		Registry:   registry,
		Chain:      chain,
		Dispatcher: dispatcher,
		Network:    network,
		Bans:       bans,
		StartTime:  time.Now().Unix(),
	}
}

// SafeMode reports whether the command table's safe-mode gate is
// currently engaged.
func (c *Context) SafeMode() bool {
	return atomic.LoadInt32(&c.safeMode) != 0
}

// SetSafeMode flips the safe-mode gate (SPEC_FULL.md §4,
// "command-table safe-mode gating"), mirroring the original's
// alert-driven safe mode without reproducing the alert system itself.
func (c *Context) SetSafeMode(enabled bool) {
	var v int32
	if enabled {
		v = 1
	}
	atomic.StoreInt32(&c.safeMode, v)
}
