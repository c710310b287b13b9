// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2014-2015 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// NOTE: This file houses the RPC commands exposed by the peer-to-peer
// networking layer (spec §6: "getconnectioncount, getpeerinfo, ping,
// addnode, getnettotals, listbanned, setban, clearbanned").

package rpc

// GetConnectionCountCmd defines the getconnectioncount JSON-RPC
// command.
type GetConnectionCountCmd struct{}

// NewGetConnectionCountCmd returns a new instance which can be used to
// issue a getconnectioncount JSON-RPC command.
func NewGetConnectionCountCmd() *GetConnectionCountCmd {
	return &GetConnectionCountCmd{}
}

// GetPeerInfoCmd defines the getpeerinfo JSON-RPC command.
type GetPeerInfoCmd struct{}

// NewGetPeerInfoCmd returns a new instance which can be used to issue
// a getpeerinfo JSON-RPC command.
func NewGetPeerInfoCmd() *GetPeerInfoCmd {
	return &GetPeerInfoCmd{}
}

// PingCmd defines the ping JSON-RPC command.
type PingCmd struct{}

// NewPingCmd returns a new instance which can be used to issue a ping
// JSON-RPC command.
func NewPingCmd() *PingCmd {
	return &PingCmd{}
}

// AddNodeSubCmd defines the type of addnode subcommand, restricted to
// the three the original's rpcnet.cpp recognizes.
type AddNodeSubCmd string

const (
	// ANAdd indicates the specified host should be added as a
	// persistent peer.
	ANAdd AddNodeSubCmd = "add"

	// ANRemove indicates the specified persistent peer should be
	// removed.
	ANRemove AddNodeSubCmd = "remove"

	// ANOneTry indicates the specified host should be connected to
	// once, without persisting it.
	ANOneTry AddNodeSubCmd = "onetry"
)

// AddNodeCmd defines the addnode JSON-RPC command.
type AddNodeCmd struct {
	Addr   string
	SubCmd AddNodeSubCmd
}

// NewAddNodeCmd returns a new instance which can be used to issue an
// addnode JSON-RPC command.
func NewAddNodeCmd(addr string, subCmd AddNodeSubCmd) *AddNodeCmd {
	return &AddNodeCmd{Addr: addr, SubCmd: subCmd}
}

// GetNetTotalsCmd defines the getnettotals JSON-RPC command.
type GetNetTotalsCmd struct{}

// NewGetNetTotalsCmd returns a new instance which can be used to issue
// a getnettotals JSON-RPC command.
func NewGetNetTotalsCmd() *GetNetTotalsCmd {
	return &GetNetTotalsCmd{}
}

// ListBannedCmd defines the listbanned JSON-RPC command.
type ListBannedCmd struct{}

// NewListBannedCmd returns a new instance which can be used to issue a
// listbanned JSON-RPC command.
func NewListBannedCmd() *ListBannedCmd {
	return &ListBannedCmd{}
}

// SetBanCmd defines the setban JSON-RPC command.
type SetBanCmd struct {
	Addr     string
	Command  string // "add" or "remove"
	BanTime  *int64 `jsonrpcdefault:"0"`
	Absolute *bool  `jsonrpcdefault:"false"`
}

// NewSetBanCmd returns a new instance which can be used to issue a
// setban JSON-RPC command.
func NewSetBanCmd(addr, command string, banTime *int64, absolute *bool) *SetBanCmd {
	return &SetBanCmd{Addr: addr, Command: command, BanTime: banTime, Absolute: absolute}
}

// ClearBannedCmd defines the clearbanned JSON-RPC command.
type ClearBannedCmd struct{}

// NewClearBannedCmd returns a new instance which can be used to issue
// a clearbanned JSON-RPC command.
func NewClearBannedCmd() *ClearBannedCmd {
	return &ClearBannedCmd{}
}

// HelpCmd defines the help JSON-RPC command.
type HelpCmd struct {
	Command *string
}

// NewHelpCmd returns a new instance which can be used to issue a help
// JSON-RPC command.
func NewHelpCmd(command *string) *HelpCmd {
	return &HelpCmd{Command: command}
}

// StopCmd defines the stop JSON-RPC command.
type StopCmd struct{}

// NewStopCmd returns a new instance which can be used to issue a stop
// JSON-RPC command.
func NewStopCmd() *StopCmd {
	return &StopCmd{}
}
