// Package chaincfg defines the per-network masternode parameters: the
// magic bytes identifying the wire network, default listener and RPC
// ports, DNS seeds for cold-start peer discovery, the genesis hash a
// peer's network must agree on before its announces are trusted, the
// collateral amount and confirmation depth a valid announce's outpoint
// must satisfy, the minimum protocol version accepted at the current
// height, and the timing constants governing announce/heartbeat/dseg
// throttling (§4 and §6).
//
// A (typically global) var is assigned the address of one of the
// standard Params vars for use as the application's active network.
//
//	package main
//
//	import (
//	        "flag"
//
//	        "github.com/SCL-BSG/BSGold/chaincfg"
//	)
//
//	var testnet = flag.Bool("testnet", false, "operate on the test network")
//
//	// By default (without -testnet), use mainnet.
//	var activeNetParams = chaincfg.MainNetParams()
//
//	func main() {
//	        flag.Parse()
//	        if *testnet {
//	                activeNetParams = chaincfg.TestNetParams()
//	        }
//	}
package chaincfg
