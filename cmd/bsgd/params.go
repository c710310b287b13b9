// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"github.com/SCL-BSG/BSGold/chaincfg"
	"github.com/SCL-BSG/BSGold/wire"
)

// activeNetParams is a pointer to the parameters specific to the
// currently active BSGold network.
var activeNetParams = &mainNetParams

// params groups the chain-level parameters with the RPC port this
// daemon listens on, which is intentionally distinct from the wallet
// process's well-known port since this core never handles wallet
// requests directly (spec §1).
type params struct {
	*chaincfg.Params
	rpcPort string
}

// mainNetParams contains parameters specific to the main network
// (wire.MainNet).
var mainNetParams = params{
	Params:  chaincfg.MainNetParams(),
	rpcPort: "9667",
}

// testNetParams contains parameters specific to the test network
// (wire.TestNet).
var testNetParams = params{
	Params:  chaincfg.TestNetParams(),
	rpcPort: "19667",
}

// simNetParams contains parameters specific to the simulation test
// network (wire.SimNet).
var simNetParams = params{
	Params:  chaincfg.SimNetParams(),
	rpcPort: "19766",
}

// regNetParams contains parameters specific to the regression test
// network (wire.RegNet).
var regNetParams = params{
	Params:  chaincfg.RegNetParams(),
	rpcPort: "19867",
}

// netName returns the name used when referring to a BSGold network in
// log and error messages.
func netName(chainParams *params) string {
	switch chainParams.Net {
	case wire.TestNet:
		return "testnet"
	default:
		return chainParams.Name
	}
}
