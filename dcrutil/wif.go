// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package dcrutil holds the handful of address/key encoding helpers
// this core needs directly: decoding the `operator_private_key`
// configuration value (§6) from its Wallet Import Format text into the
// keypair used to sign heartbeats and votes, and to recognize our own
// announces for local hot-activation (§4.2 item 10).
package dcrutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/decred/base58"
	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

var (
	// ErrMalformedPrivateKey describes an error where a WIF-encoded
	// private key cannot be decoded due to being improperly formatted.
	ErrMalformedPrivateKey = errors.New("malformed private key")

	// ErrChecksumMismatch describes an error where decoding failed due
	// to a bad checksum.
	ErrChecksumMismatch = errors.New("checksum mismatch")
)

const (
	// privKeyBytesLen is size of a secp256k1 private key in bytes.
	privKeyBytesLen = 32

	// cksumBytesLen is size of the WIF checksum in bytes.
	cksumBytesLen = 4

	// compressMagic is appended after the private key bytes to signal
	// that the paired public key was serialized compressed.
	compressMagic = 0x01
)

// WIF contains the private/public keypair decoded from a Wallet
// Import Format string.  This core only ever deals in ECDSA-secp256k1
// masternode operator keys, so unlike a full wallet's WIF type this
// one carries no alternate signature scheme.
type WIF struct {
	PrivKey        *secp256k1.PrivateKey
	CompressPubKey bool
	netID          byte
}

// NewWIF creates a new WIF structure for the given private key and
// network identifier byte.  The associated address is always treated
// as having been derived from the compressed serialization of the
// public key.
func NewWIF(privKey *secp256k1.PrivateKey, netID byte) *WIF {
	return &WIF{PrivKey: privKey, CompressPubKey: true, netID: netID}
}

// PubKey returns the compressed serialization of the WIF's public key.
func (w *WIF) PubKey() []byte {
	return w.PrivKey.PubKey().SerializeCompressed()
}

// IsForNetID returns whether the decoded WIF is associated with the
// given network identifier byte.
func (w *WIF) IsForNetID(netID byte) bool {
	return w.netID == netID
}

// DecodeWIF creates a new WIF structure by decoding the base58-encoded
// string. The byte sequence is:
//
//   - 1 byte network identifier
//   - 32 bytes of a binary-encoded, big-endian, zero-padded private key
//   - optional 1 byte (0x01) marking a compressed public key
//   - 4 bytes of checksum, the first four bytes of the double BLAKE-256
//     (chainhash.DoubleHashB) of every byte before the checksum
func DecodeWIF(wif string) (*WIF, error) {
	decoded := base58.Decode(wif)
	decodedLen := len(decoded)

	var compress bool
	switch decodedLen {
	case 1 + privKeyBytesLen + 1 + cksumBytesLen:
		if decoded[1+privKeyBytesLen] != compressMagic {
			return nil, ErrMalformedPrivateKey
		}
		compress = true
	case 1 + privKeyBytesLen + cksumBytesLen:
		compress = false
	default:
		return nil, ErrMalformedPrivateKey
	}

	var toSum []byte
	if compress {
		toSum = decoded[:1+privKeyBytesLen+1]
	} else {
		toSum = decoded[:1+privKeyBytesLen]
	}
	cksum := chainhash.DoubleHashB(toSum)[:cksumBytesLen]
	if !bytes.Equal(cksum, decoded[decodedLen-cksumBytesLen:]) {
		return nil, ErrChecksumMismatch
	}

	privKeyBytes := decoded[1 : 1+privKeyBytesLen]
	privKey := secp256k1.PrivKeyFromBytes(privKeyBytes)

	return &WIF{
		PrivKey:        privKey,
		CompressPubKey: compress,
		netID:          decoded[0],
	}, nil
}

// String returns the Wallet Import Format string encoding of w.
func (w *WIF) String() string {
	encodeLen := 1 + privKeyBytesLen + cksumBytesLen
	if w.CompressPubKey {
		encodeLen++
	}

	a := make([]byte, 0, encodeLen)
	a = append(a, w.netID)
	a = append(a, w.PrivKey.Serialize()...)
	if w.CompressPubKey {
		a = append(a, compressMagic)
	}

	cksum := chainhash.DoubleHashB(a)
	a = append(a, cksum[:cksumBytesLen]...)
	return base58.Encode(a)
}

// fmtDecodeError wraps err with the name of the operator_private_key
// setting. Nothing in the tree calls it.
func fmtDecodeError(err error) error {
	return fmt.Errorf("operator_private_key: %w", err)
}
