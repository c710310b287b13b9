// Copyright (c) 2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stdscript

// ExtractPubKeyHashV0 extracts the public key hash from the passed
// script if it is a standard version 0 pay-to-pubkey-hash-ecdsa-
// secp256k1 script.  It returns nil otherwise.
func ExtractPubKeyHashV0(script []byte) []byte {
	// A pay-to-pubkey-hash script is of the form:
	//  OP_DUP OP_HASH160 <20-byte hash> OP_EQUALVERIFY OP_CHECKSIG
	if len(script) == 25 &&
		script[0] == opDUP &&
		script[1] == opHASH160 &&
		script[2] == opDATA20 &&
		script[23] == opEQUALVERIFY &&
		script[24] == opCHECKSIG {

		return script[3:23]
	}
	return nil
}

// IsPubKeyHashScriptV0 returns whether or not the passed script is a
// standard version 0 pay-to-pubkey-hash-ecdsa-secp256k1 script, i.e.
// the 25-byte P2PKH shape required by §4.2 item 5.
func IsPubKeyHashScriptV0(script []byte) bool {
	return ExtractPubKeyHashV0(script) != nil
}

// ExtractScriptHashV0 extracts the script hash from the passed script
// if it is a standard version 0 pay-to-script-hash script.  It returns
// nil otherwise.
func ExtractScriptHashV0(script []byte) []byte {
	// A pay-to-script-hash script is of the form:
	//  OP_HASH160 <20-byte hash> OP_EQUAL
	if len(script) == 23 &&
		script[0] == opHASH160 &&
		script[1] == opDATA20 &&
		script[22] == opEQUAL {

		return script[2:22]
	}
	return nil
}

// IsScriptHashScriptV0 returns whether or not the passed script is a
// standard version 0 pay-to-script-hash script.  Reward scripts taking
// this shape are silently cleared per spec §3.
func IsScriptHashScriptV0(script []byte) bool {
	return ExtractScriptHashV0(script) != nil
}

// NewPubKeyHashScriptV0 builds the canonical 25-byte P2PKH script for
// the given 20-byte public key hash.  It is the inverse of
// ExtractPubKeyHashV0; only tests in this tree call it.
func NewPubKeyHashScriptV0(pkHash []byte) []byte {
	script := make([]byte, 0, 25)
	script = append(script, opDUP, opHASH160, opDATA20)
	script = append(script, pkHash...)
	script = append(script, opEQUALVERIFY, opCHECKSIG)
	return script
}
