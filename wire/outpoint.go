// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"

	"github.com/decred/dcrd/chaincfg/chainhash"
)

// OutPoint identifies a collateral transaction output: the txid of the
// transaction locking the collateral and the index of the output
// within it.  It is the primary key of the masternode registry.
type OutPoint struct {
	Hash  chainhash.Hash
	Index uint32
}

// NewOutPoint returns a new OutPoint for the given hash and index.
func NewOutPoint(hash *chainhash.Hash, index uint32) OutPoint {
	return OutPoint{Hash: *hash, Index: index}
}

// String returns the canonical "hash:index" representation of the
// outpoint, used inside the Vote canonical signed-message string and
// as the collateral tag of SigCache entries.
func (o OutPoint) String() string {
	return fmt.Sprintf("%s:%d", o.Hash, o.Index)
}

// IsNull reports whether the outpoint is the null outpoint used by
// MsgMNDseg to request the full registry rather than a single entry.
func (o OutPoint) IsNull() bool {
	return o.Index == ^uint32(0) && o.Hash == (chainhash.Hash{})
}

// NullOutPoint is the sentinel value meaning "the whole registry" in a
// Dseg request.
var NullOutPoint = OutPoint{Index: ^uint32(0)}

func readOutPoint(r io.Reader, op *OutPoint) error {
	if _, err := io.ReadFull(r, op.Hash[:]); err != nil {
		return err
	}
	return readElement(r, &op.Index)
}

func writeOutPoint(w io.Writer, op OutPoint) error {
	if _, err := w.Write(op.Hash[:]); err != nil {
		return err
	}
	return writeElement(w, op.Index)
}
