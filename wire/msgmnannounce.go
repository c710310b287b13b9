// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"
)

// MaxAnnounceSigSize bounds the signature field of a MsgMNAnnounce.
// Real ECDSA-secp256k1 signatures never exceed this; the bound exists
// only to keep a corrupt size prefix from causing an unbounded read.
const MaxAnnounceSigSize = 128

// MaxAnnounceKeySize bounds the serialized pubkey fields of a
// MsgMNAnnounce (33 bytes compressed, 65 uncompressed, with headroom).
const MaxAnnounceKeySize = 130

// MaxRewardScriptSize bounds the optional reward redirection script of
// a rewarded MsgMNAnnounce.
const MaxRewardScriptSize = 256

// MsgMNAnnounce is the masternode advertisement message described in
// spec §6.  Rewarded is false for the legacy (pre-reward-address)
// variant; RewardScript/RewardPercent are only meaningful, and only
// encoded on the wire, when Rewarded is true.
type MsgMNAnnounce struct {
	Collateral       OutPoint
	Endpoint         NetAddress
	Signature        []byte
	AnnounceTime     int64
	CollateralPubKey []byte
	OperatorPubKey   []byte
	Count            int32
	Current          int32
	LastUpdated      int64
	Protocol         int32

	Rewarded        bool
	RewardScript    []byte
	RewardPercent   int32
}

// BtcDecode decodes r into the receiver using the wire encoding.  The
// Rewarded flag must already be set by the caller: the outer
// peer-protocol command string ("mnb" vs "mnbr", say) is what
// distinguishes the two variants, and that framing lives outside this
// package (see spec §6, "outer peer-protocol envelope ... not
// specified here").
func (msg *MsgMNAnnounce) BtcDecode(r io.Reader) error {
	if err := readOutPoint(r, &msg.Collateral); err != nil {
		return err
	}
	if err := readNetAddress(r, &msg.Endpoint); err != nil {
		return err
	}
	sig, err := ReadVarBytes(r, MaxAnnounceSigSize, "announce signature")
	if err != nil {
		return err
	}
	msg.Signature = sig

	if err := readElement(r, &msg.AnnounceTime); err != nil {
		return err
	}

	collPK, err := ReadVarBytes(r, MaxAnnounceKeySize, "collateral pubkey")
	if err != nil {
		return err
	}
	msg.CollateralPubKey = collPK

	opPK, err := ReadVarBytes(r, MaxAnnounceKeySize, "operator pubkey")
	if err != nil {
		return err
	}
	msg.OperatorPubKey = opPK

	if err := readElement(r, &msg.Count); err != nil {
		return err
	}
	if err := readElement(r, &msg.Current); err != nil {
		return err
	}
	if err := readElement(r, &msg.LastUpdated); err != nil {
		return err
	}
	if err := readElement(r, &msg.Protocol); err != nil {
		return err
	}

	if !msg.Rewarded {
		return nil
	}

	script, err := ReadVarBytes(r, MaxRewardScriptSize, "reward script")
	if err != nil {
		return err
	}
	msg.RewardScript = script
	return readElement(r, &msg.RewardPercent)
}

// BtcEncode encodes the receiver to w using the wire encoding.
func (msg *MsgMNAnnounce) BtcEncode(w io.Writer) error {
	if err := writeOutPoint(w, msg.Collateral); err != nil {
		return err
	}
	if err := writeNetAddress(w, msg.Endpoint); err != nil {
		return err
	}
	if len(msg.Signature) > MaxAnnounceSigSize {
		return messageError("MsgMNAnnounce.BtcEncode", "signature too large")
	}
	if err := WriteVarBytes(w, msg.Signature); err != nil {
		return err
	}
	if err := writeElement(w, msg.AnnounceTime); err != nil {
		return err
	}
	if err := WriteVarBytes(w, msg.CollateralPubKey); err != nil {
		return err
	}
	if err := WriteVarBytes(w, msg.OperatorPubKey); err != nil {
		return err
	}
	if err := writeElement(w, msg.Count); err != nil {
		return err
	}
	if err := writeElement(w, msg.Current); err != nil {
		return err
	}
	if err := writeElement(w, msg.LastUpdated); err != nil {
		return err
	}
	if err := writeElement(w, msg.Protocol); err != nil {
		return err
	}

	if !msg.Rewarded {
		return nil
	}
	if len(msg.RewardScript) > MaxRewardScriptSize {
		return messageError("MsgMNAnnounce.BtcEncode", "reward script too large")
	}
	if err := WriteVarBytes(w, msg.RewardScript); err != nil {
		return err
	}
	return writeElement(w, msg.RewardPercent)
}

// Command returns the peer-protocol command string for the message,
// which is how the outer envelope (not part of this package) picks
// the legacy/rewarded variant apart before calling BtcDecode.
func (msg *MsgMNAnnounce) Command() string {
	if msg.Rewarded {
		return "mnbr"
	}
	return "mnb"
}
