// Copyright (c) 2013, 2014 The btcsuite developers
// Copyright (c) 2015-2019 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package dcrutil

import (
	"bytes"
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	mainNetID = 0x80
	testNetID = 0xef
)

func TestEncodeDecodeWIF(t *testing.T) {
	priv1 := []byte{
		0x0c, 0x28, 0xfc, 0xa3, 0x86, 0xc7, 0xa2, 0x27,
		0x60, 0x0b, 0x2f, 0xe5, 0x0b, 0x7c, 0xae, 0x11,
		0xec, 0x86, 0xd3, 0xbf, 0x1f, 0xbe, 0x47, 0x1b,
		0xe8, 0x98, 0x27, 0xe1, 0x9d, 0x72, 0xaa, 0x1d}

	priv2 := []byte{
		0xdd, 0xa3, 0x5a, 0x14, 0x88, 0xfb, 0x97, 0xb6,
		0xeb, 0x3f, 0xe6, 0xe9, 0xef, 0x2a, 0x25, 0x81,
		0x4e, 0x39, 0x6f, 0xb5, 0xdc, 0x29, 0x5f, 0xe9,
		0x94, 0xb9, 0x67, 0x89, 0xb2, 0x1a, 0x03, 0x98}

	for _, test := range []struct {
		name     string
		priv     []byte
		netID    byte
		compress bool
	}{
		{"mainnet compressed", priv1, mainNetID, true},
		{"mainnet uncompressed", priv1, mainNetID, false},
		{"testnet compressed", priv2, testNetID, true},
	} {
		t.Run(test.name, func(t *testing.T) {
			privKey := secp256k1.PrivKeyFromBytes(test.priv)
			wif := NewWIF(privKey, test.netID)
			wif.CompressPubKey = test.compress

			encoded := wif.String()

			decoded, err := DecodeWIF(encoded)
			if err != nil {
				t.Fatalf("DecodeWIF: %v", err)
			}
			if !decoded.IsForNetID(test.netID) {
				t.Fatalf("IsForNetID(%x) = false, want true", test.netID)
			}
			if decoded.CompressPubKey != test.compress {
				t.Fatalf("CompressPubKey = %v, want %v", decoded.CompressPubKey, test.compress)
			}
			if !bytes.Equal(decoded.PrivKey.Serialize(), privKey.Serialize()) {
				t.Fatal("decoded private key does not match original")
			}
		})
	}
}

func TestDecodeWIFChecksumMismatch(t *testing.T) {
	privKey := secp256k1.PrivKeyFromBytes(bytes.Repeat([]byte{0x01}, 32))
	wif := NewWIF(privKey, mainNetID)
	encoded := wif.String()

	corrupted := []byte(encoded)
	corrupted[len(corrupted)-1]++

	if _, err := DecodeWIF(string(corrupted)); err != ErrChecksumMismatch {
		t.Fatalf("DecodeWIF corrupted = %v, want ErrChecksumMismatch", err)
	}
}

func TestDecodeWIFMalformed(t *testing.T) {
	if _, err := DecodeWIF("not-a-wif"); err == nil {
		t.Fatal("DecodeWIF accepted garbage input")
	}
}
