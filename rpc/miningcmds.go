// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2014-2015 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// NOTE: This file houses the RPC commands that report mining/staking
// status (spec §6: "getmininginfo, getstakinginfo"). The miner loop
// and stake-ticket logic themselves are collaborator-only (spec §1);
// these commands only surface the collaborator's self-reported
// summary fields.

package rpc

// GetMiningInfoCmd defines the getmininginfo JSON-RPC command.
type GetMiningInfoCmd struct{}

// NewGetMiningInfoCmd returns a new instance which can be used to
// issue a getmininginfo JSON-RPC command.
func NewGetMiningInfoCmd() *GetMiningInfoCmd {
	return &GetMiningInfoCmd{}
}

// GetStakingInfoCmd defines the getstakinginfo JSON-RPC command.
type GetStakingInfoCmd struct{}

// NewGetStakingInfoCmd returns a new instance which can be used to
// issue a getstakinginfo JSON-RPC command.
func NewGetStakingInfoCmd() *GetStakingInfoCmd {
	return &GetStakingInfoCmd{}
}
