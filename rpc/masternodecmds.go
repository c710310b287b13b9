// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// NOTE: This file houses the masternode-specific RPC commands (spec
// §6: "masternode <subcommand>, masternodelist [filter]"), expanded
// per SPEC_FULL.md §4 with the subcommand/filter-mode detail the
// distillation dropped: original_source/src/rpcserver.cpp's
// `masternode` and `masternodelist` handlers recognize a mode switch
// this package restates as typed subcommand/filter-mode strings
// instead of the original's bare string compares.

package rpc

// MasternodeSubCmd identifies which masternode subcommand a
// MasternodeCmd invokes.
type MasternodeSubCmd string

const (
	// MNCount reports the enabled/total/by-protocol breakdown (§4 of
	// SPEC_FULL.md, "getmasternodecount-equivalent breakdown").
	MNCount MasternodeSubCmd = "count"

	// MNCurrent reports the record that would win elect_payee for the
	// current chain tip.
	MNCurrent MasternodeSubCmd = "current"

	// MNWinner is an alias for current, matching the original's
	// naming.
	MNWinner MasternodeSubCmd = "winner"

	// MNList is the bare masternode list subcommand, equivalent to the
	// masternodelist RPC without a typed filter mode.
	MNList MasternodeSubCmd = "list"

	// MNDebug reports the number of stored records; ask-table and
	// throttle state are not included.
	MNDebug MasternodeSubCmd = "debug"
)

// MasternodeCmd defines the masternode JSON-RPC command.
type MasternodeCmd struct {
	SubCmd MasternodeSubCmd
	Args   []string `jsonrpcdefault:"[]"`
}

// NewMasternodeCmd returns a new instance which can be used to issue a
// masternode JSON-RPC command.
func NewMasternodeCmd(subCmd MasternodeSubCmd, args []string) *MasternodeCmd {
	return &MasternodeCmd{SubCmd: subCmd, Args: args}
}

// MasternodeListFilterMode identifies which field of a masternode
// record masternodelist's filter argument matches against
// (SPEC_FULL.md §4: "collateral, endpoint, status, and rank").
type MasternodeListFilterMode string

const (
	MNFilterCollateral MasternodeListFilterMode = "collateral"
	MNFilterEndpoint   MasternodeListFilterMode = "endpoint"
	MNFilterStatus     MasternodeListFilterMode = "status"
	MNFilterRank       MasternodeListFilterMode = "rank"
)

// MasternodeListCmd defines the masternodelist JSON-RPC command.
type MasternodeListCmd struct {
	Mode   *MasternodeListFilterMode `jsonrpcdefault:"\"status\""`
	Filter *string
}

// NewMasternodeListCmd returns a new instance which can be used to
// issue a masternodelist JSON-RPC command.
func NewMasternodeListCmd(mode *MasternodeListFilterMode, filter *string) *MasternodeListCmd {
	return &MasternodeListCmd{Mode: mode, Filter: filter}
}
