// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpeer

import (
	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// verifySignature reports whether sigBytes is a valid DER-encoded
// ECDSA-secp256k1 signature over the BLAKE-256 digest of message
// (chainhash.HashB),
// under the compressed or uncompressed public key pubKeyBytes. A
// malformed signature or public key is treated as a verification
// failure rather than an error, matching the dispatcher's
// fail-silently-and-misbehave policy (spec §4.2 item 6).
func verifySignature(pubKeyBytes, sigBytes, message []byte) bool {
	pubKey, err := secp256k1.ParsePubKey(pubKeyBytes)
	if err != nil {
		return false
	}
	sig, err := ecdsa.ParseDERSignature(sigBytes)
	if err != nil {
		return false
	}
	digest := chainhash.HashB(message)
	return sig.Verify(digest, pubKey)
}

// parsePubKey parses a compressed or uncompressed secp256k1 public key.
func parsePubKey(b []byte) (*secp256k1.PublicKey, error) {
	return secp256k1.ParsePubKey(b)
}

// parseDERSignature parses a DER-encoded ECDSA signature.
func parseDERSignature(b []byte) (*ecdsa.Signature, error) {
	return ecdsa.ParseDERSignature(b)
}

// sigVerifyKey returns the hash used to key a cached verification
// result, binding the signature to both the signed message and the
// claimed public key so that a cache hit can never be replayed against
// a different message or key.
func sigVerifyKey(pubKeyBytes, sigBytes, message []byte) chainhash.Hash {
	buf := make([]byte, 0, len(pubKeyBytes)+len(sigBytes)+len(message))
	buf = append(buf, pubKeyBytes...)
	buf = append(buf, sigBytes...)
	buf = append(buf, message...)
	return chainhash.HashH(buf)
}
