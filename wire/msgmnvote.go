// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// MaxVoteSigSize bounds the signature field of a MsgMNVote.
const MaxVoteSigSize = 128

// MsgMNVote is the masternode governance vote message described in
// spec §6.
type MsgMNVote struct {
	Collateral OutPoint
	Signature  []byte
	Vote       int32
}

// Command returns the peer-protocol command string for the message.
func (msg *MsgMNVote) Command() string { return "mnv" }

// BtcDecode decodes r into the receiver using the wire encoding.
func (msg *MsgMNVote) BtcDecode(r io.Reader) error {
	if err := readOutPoint(r, &msg.Collateral); err != nil {
		return err
	}
	sig, err := ReadVarBytes(r, MaxVoteSigSize, "vote signature")
	if err != nil {
		return err
	}
	msg.Signature = sig
	return readElement(r, &msg.Vote)
}

// BtcEncode encodes the receiver to w using the wire encoding.
func (msg *MsgMNVote) BtcEncode(w io.Writer) error {
	if err := writeOutPoint(w, msg.Collateral); err != nil {
		return err
	}
	if len(msg.Signature) > MaxVoteSigSize {
		return messageError("MsgMNVote.BtcEncode", "signature too large")
	}
	if err := WriteVarBytes(w, msg.Signature); err != nil {
		return err
	}
	return writeElement(w, msg.Vote)
}
