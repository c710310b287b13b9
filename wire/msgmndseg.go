// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// MsgMNDseg is the DirectorySync request described in spec §6: a
// request for one registry entry, or for the entire registry when
// Collateral is the null outpoint.
type MsgMNDseg struct {
	Collateral OutPoint
}

// Command returns the peer-protocol command string for the message.
func (msg *MsgMNDseg) Command() string { return "dseg" }

// BtcDecode decodes r into the receiver using the wire encoding.
func (msg *MsgMNDseg) BtcDecode(r io.Reader) error {
	return readOutPoint(r, &msg.Collateral)
}

// BtcEncode encodes the receiver to w using the wire encoding.
func (msg *MsgMNDseg) BtcEncode(w io.Writer) error {
	return writeOutPoint(w, msg.Collateral)
}
