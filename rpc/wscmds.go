// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2014-2015 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// NOTE: This file houses the RPC commands that are only usable over
// the websocket upgrade path (rpcserver/ws.go), mirroring the
// teacher's rpc/jsonrpc/types/chainsvrwscmds.go NotifyBlocksCmd /
// StopNotifyBlocksCmd pair, generalized to one push-notification
// stream over registry state transitions (SPEC_FULL.md §3.7).

package rpc

// NotifyMasternodeListCmd defines the notifymasternodelist JSON-RPC
// command: once issued over a websocket connection, the caller
// receives a push notification each time the dispatcher commits an
// announce or a heartbeat (including a heartbeat that marks the record
// removed). Expiry and collateral-spent transitions applied by
// Registry.Sweep are not pushed.
type NotifyMasternodeListCmd struct{}

// NewNotifyMasternodeListCmd returns a new instance which can be used
// to issue a notifymasternodelist JSON-RPC command.
func NewNotifyMasternodeListCmd() *NotifyMasternodeListCmd {
	return &NotifyMasternodeListCmd{}
}

// StopNotifyMasternodeListCmd defines the
// stopnotifymasternodelist JSON-RPC command.
type StopNotifyMasternodeListCmd struct{}

// NewStopNotifyMasternodeListCmd returns a new instance which can be
// used to issue a stopnotifymasternodelist JSON-RPC command.
func NewStopNotifyMasternodeListCmd() *StopNotifyMasternodeListCmd {
	return &StopNotifyMasternodeListCmd{}
}

// MasternodeListNotification is the payload pushed to a subscribed
// websocket connection for each notified record.
type MasternodeListNotification struct {
	Collateral string `json:"collateral"`
	State      string `json:"state"`
	Endpoint   string `json:"endpoint"`
}
