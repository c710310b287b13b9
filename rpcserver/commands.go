// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcserver

import "github.com/SCL-BSG/BSGold/rpc"

// Handler services one decoded JSON-RPC request against ctx, returning
// either a JSON-marshalable result or a typed *rpc.Error.
type Handler func(ctx *Context, req rpc.Request) (interface{}, *rpc.Error)

// command is one command table entry: the handler plus the
// (ok_in_safe_mode, thread_safe, needs_wallet) triple spec §4.5 names.
type command struct {
	handler     Handler
	okSafeMode  bool
	threadSafe  bool
	needsWallet bool
}

// commandTable maps a JSON-RPC method name to its command table entry,
// mirroring the original's vRPCCommands array
// (original_source/src/rpcserver.cpp) restated as a Go map instead of
// a linear-scanned C array.
var commandTable = map[string]*command{
	"help": {handler: handleHelp, okSafeMode: true, threadSafe: true},
	"stop": {handler: handleStop, okSafeMode: true, threadSafe: true},

	"getconnectioncount": {handler: handleGetConnectionCount, okSafeMode: true, threadSafe: true},
	"getpeerinfo":        {handler: handleGetPeerInfo, okSafeMode: true, threadSafe: true},
	"ping":               {handler: handlePing, okSafeMode: true, threadSafe: true},
	"addnode":            {handler: handleAddNode, okSafeMode: true, threadSafe: false},
	"getnettotals":       {handler: handleGetNetTotals, okSafeMode: true, threadSafe: true},
	"listbanned":         {handler: handleListBanned, okSafeMode: true, threadSafe: true},
	"setban":             {handler: handleSetBan, okSafeMode: true, threadSafe: false},
	"clearbanned":        {handler: handleClearBanned, okSafeMode: true, threadSafe: false},

	"getblockcount":     {handler: handleGetBlockCount, okSafeMode: true, threadSafe: true},
	"getbestblockhash":  {handler: handleGetBestBlockHash, okSafeMode: true, threadSafe: true},
	"getblock":          {handler: handleGetBlock, okSafeMode: false, threadSafe: true},
	"getblockhash":      {handler: handleGetBlockHash, okSafeMode: false, threadSafe: true},
	"getdifficulty":     {handler: handleGetDifficulty, okSafeMode: true, threadSafe: true},

	"masternode":     {handler: handleMasternode, okSafeMode: true, threadSafe: true},
	"masternodelist": {handler: handleMasternodeList, okSafeMode: true, threadSafe: true},

	"getmininginfo":  {handler: handleGetMiningInfo, okSafeMode: true, threadSafe: true},
	"getstakinginfo": {handler: handleGetStakingInfo, okSafeMode: true, threadSafe: true},
}
