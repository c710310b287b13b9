// Copyright (c) 2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package stdscript

import (
	"bytes"
	"testing"
)

func TestPubKeyHashScriptV0RoundTrip(t *testing.T) {
	t.Parallel()

	pkHash := bytes.Repeat([]byte{0xAB}, 20)
	script := NewPubKeyHashScriptV0(pkHash)

	if len(script) != 25 {
		t.Fatalf("script length = %d, want 25", len(script))
	}
	if !IsPubKeyHashScriptV0(script) {
		t.Fatal("IsPubKeyHashScriptV0 = false, want true")
	}
	if got := ExtractPubKeyHashV0(script); !bytes.Equal(got, pkHash) {
		t.Fatalf("ExtractPubKeyHashV0 = %x, want %x", got, pkHash)
	}
	if DetermineScriptType(script) != STPubKeyHashEcdsaSecp256k1 {
		t.Fatal("DetermineScriptType did not recognize P2PKH")
	}
}

func TestScriptHashScriptV0(t *testing.T) {
	t.Parallel()

	scriptHash := bytes.Repeat([]byte{0xCD}, 20)
	script := make([]byte, 0, 23)
	script = append(script, opHASH160, opDATA20)
	script = append(script, scriptHash...)
	script = append(script, opEQUAL)

	if !IsScriptHashScriptV0(script) {
		t.Fatal("IsScriptHashScriptV0 = false, want true")
	}
	if IsPubKeyHashScriptV0(script) {
		t.Fatal("P2SH script misrecognized as P2PKH")
	}
	if DetermineScriptType(script) != STScriptHash {
		t.Fatal("DetermineScriptType did not recognize P2SH")
	}
}

func TestNonStandardScript(t *testing.T) {
	t.Parallel()

	script := []byte{0x00, 0x01, 0x02}
	if IsPubKeyHashScriptV0(script) || IsScriptHashScriptV0(script) {
		t.Fatal("garbage script misrecognized as standard")
	}
	if DetermineScriptType(script) != STNonStandard {
		t.Fatal("DetermineScriptType did not return STNonStandard")
	}
}
