// Copyright (c) 2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package stdscript recognizes the small set of standard script shapes
// this core needs to judge: ECDSA-secp256k1 pay-to-pubkey-hash (P2PKH,
// the shape §4.2 item 5 requires of an announce's collateral output
// script) and pay-to-script-hash (P2SH, the reward-script shape the
// dispatcher clears from an accepted announce).  It is
// trimmed from a much larger standard-script-recognition package that
// also covered Ed25519/Schnorr alt-signature scripts and multisig,
// none of which this core's masternode protocol ever produces or
// consumes.
package stdscript

// Version 0 script opcodes relevant to P2PKH/P2SH recognition.  These
// are a small, fixed subset of the consensus opcode table; they are
// declared locally because the full opcode table lives in a
// general-purpose script-execution package this core does not carry
// (script execution is an external collaborator, see spec §1).
const (
	opDATA20      = 0x14
	opDUP         = 0x76
	opEQUAL       = 0x87
	opEQUALVERIFY = 0x88
	opHASH160     = 0xa9
	opCHECKSIG    = 0xac
)

// ScriptType identifies the shape of a recognized script.
type ScriptType byte

const (
	// STNonStandard indicates a script matched none of the recognized
	// shapes.
	STNonStandard ScriptType = iota

	// STPubKeyHashEcdsaSecp256k1 identifies a standard P2PKH script.
	STPubKeyHashEcdsaSecp256k1

	// STScriptHash identifies a standard P2SH script.
	STScriptHash
)

// DetermineScriptType returns the recognized type of script, or
// STNonStandard if it does not match a recognized shape.
func DetermineScriptType(script []byte) ScriptType {
	switch {
	case IsPubKeyHashScriptV0(script):
		return STPubKeyHashEcdsaSecp256k1
	case IsScriptHashScriptV0(script):
		return STScriptHash
	default:
		return STNonStandard
	}
}
