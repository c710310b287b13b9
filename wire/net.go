// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// BSGNet represents which BSGold network a message belongs to.
type BSGNet uint32

// Constants used to indicate the message BSGold network.
const (
	// MainNet represents the main BSGold network.
	MainNet BSGNet = 0xb5d90001

	// TestNet represents the test network.
	TestNet BSGNet = 0xb5d90002

	// SimNet represents the simulation test network.
	SimNet BSGNet = 0xb5d90003

	// RegNet represents the regression test network.
	RegNet BSGNet = 0xb5d90004
)

var bsNetStrings = map[BSGNet]string{
	MainNet: "MainNet",
	TestNet: "TestNet",
	SimNet:  "SimNet",
	RegNet:  "RegNet",
}

// String returns the BSGNet in human-readable form.
func (n BSGNet) String() string {
	if s, ok := bsNetStrings[n]; ok {
		return s
	}
	return "Unknown BSGNet"
}
