// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// MaxPingSigSize bounds the signature field of a MsgMNPing.
const MaxPingSigSize = 128

// MsgMNPing is the compact masternode heartbeat described in spec §6.
type MsgMNPing struct {
	Collateral OutPoint
	Signature  []byte
	SigTime    int64
	Stop       bool
}

// Command returns the peer-protocol command string for the message.
func (msg *MsgMNPing) Command() string { return "mnp" }

// BtcDecode decodes r into the receiver using the wire encoding.
func (msg *MsgMNPing) BtcDecode(r io.Reader) error {
	if err := readOutPoint(r, &msg.Collateral); err != nil {
		return err
	}
	sig, err := ReadVarBytes(r, MaxPingSigSize, "ping signature")
	if err != nil {
		return err
	}
	msg.Signature = sig
	if err := readElement(r, &msg.SigTime); err != nil {
		return err
	}
	return readElement(r, &msg.Stop)
}

// BtcEncode encodes the receiver to w using the wire encoding.
func (msg *MsgMNPing) BtcEncode(w io.Writer) error {
	if err := writeOutPoint(w, msg.Collateral); err != nil {
		return err
	}
	if len(msg.Signature) > MaxPingSigSize {
		return messageError("MsgMNPing.BtcEncode", "signature too large")
	}
	if err := WriteVarBytes(w, msg.Signature); err != nil {
		return err
	}
	if err := writeElement(w, msg.SigTime); err != nil {
		return err
	}
	return writeElement(w, msg.Stop)
}
