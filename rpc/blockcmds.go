// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2014-2015 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// NOTE: This file houses the RPC commands that read from the chain
// view collaborator (spec §3.2, §6): getblockcount, getbestblockhash,
// getblock, getblockhash, getdifficulty. This node answers these from
// the ChainView interface rather than performing any consensus work
// itself (spec §1 Non-goals: "full consensus rule reproduction").

package rpc

// GetBlockCountCmd defines the getblockcount JSON-RPC command.
type GetBlockCountCmd struct{}

// NewGetBlockCountCmd returns a new instance which can be used to
// issue a getblockcount JSON-RPC command.
func NewGetBlockCountCmd() *GetBlockCountCmd {
	return &GetBlockCountCmd{}
}

// GetBestBlockHashCmd defines the getbestblockhash JSON-RPC command.
type GetBestBlockHashCmd struct{}

// NewGetBestBlockHashCmd returns a new instance which can be used to
// issue a getbestblockhash JSON-RPC command.
func NewGetBestBlockHashCmd() *GetBestBlockHashCmd {
	return &GetBestBlockHashCmd{}
}

// GetBlockCmd defines the getblock JSON-RPC command.
type GetBlockCmd struct {
	Hash    string
	Verbose *bool `jsonrpcdefault:"true"`
}

// NewGetBlockCmd returns a new instance which can be used to issue a
// getblock JSON-RPC command.
func NewGetBlockCmd(hash string, verbose *bool) *GetBlockCmd {
	return &GetBlockCmd{Hash: hash, Verbose: verbose}
}

// GetBlockHashCmd defines the getblockhash JSON-RPC command.
type GetBlockHashCmd struct {
	Height int64
}

// NewGetBlockHashCmd returns a new instance which can be used to issue
// a getblockhash JSON-RPC command.
func NewGetBlockHashCmd(height int64) *GetBlockHashCmd {
	return &GetBlockHashCmd{Height: height}
}

// GetDifficultyCmd defines the getdifficulty JSON-RPC command.
type GetDifficultyCmd struct{}

// NewGetDifficultyCmd returns a new instance which can be used to
// issue a getdifficulty JSON-RPC command.
func NewGetDifficultyCmd() *GetDifficultyCmd {
	return &GetDifficultyCmd{}
}
