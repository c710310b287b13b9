// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2021 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package wire implements the peer-to-peer wire encoding for the
// masternode gossip messages: Announce, Ping (heartbeat), Vote, and
// Dseg (directory sync).  The encoding style -- explicit BtcEncode /
// BtcDecode methods operating on an io.Reader/io.Writer, a compact
// variable-length size prefix ahead of every variable field, and a
// single messageError type for malformed input -- mirrors the rest of
// the protocol family this node speaks; only the message catalog
// itself is specific to the masternode overlay.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// MessageError describes an issue encoding or decoding a wire message.
type MessageError struct {
	Func        string
	Description string
}

func (e *MessageError) Error() string {
	if e.Func != "" {
		return fmt.Sprintf("%s: %s", e.Func, e.Description)
	}
	return e.Description
}

func messageError(fn, desc string) *MessageError {
	return &MessageError{Func: fn, Description: desc}
}

// MaxVarIntPayload is the maximum payload size for a variable length
// integer.
const MaxVarIntPayload = 9

// MaxVarBytesLen is a sane upper bound on any single variable-length
// byte field carried by a masternode gossip message.  It exists purely
// to keep a corrupt or adversarial size prefix from causing an
// unbounded allocation.
const MaxVarBytesLen = 1024 * 1024

// ReadVarInt reads a variable length integer from r and returns it as a
// uint64, using the same compact-size convention as the rest of the
// protocol family: values under 0xfd are a single byte, 0xfd/0xfe/0xff
// prefix a 2/4/8 byte little-endian value.
func ReadVarInt(r io.Reader) (uint64, error) {
	var b [9]byte
	if _, err := io.ReadFull(r, b[:1]); err != nil {
		return 0, err
	}

	switch b[0] {
	case 0xff:
		if _, err := io.ReadFull(r, b[1:9]); err != nil {
			return 0, err
		}
		return binary.LittleEndian.Uint64(b[1:9]), nil
	case 0xfe:
		if _, err := io.ReadFull(r, b[1:5]); err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint32(b[1:5])), nil
	case 0xfd:
		if _, err := io.ReadFull(r, b[1:3]); err != nil {
			return 0, err
		}
		return uint64(binary.LittleEndian.Uint16(b[1:3])), nil
	default:
		return uint64(b[0]), nil
	}
}

// WriteVarInt writes val to w using the compact-size convention
// described in ReadVarInt.
func WriteVarInt(w io.Writer, val uint64) error {
	switch {
	case val < 0xfd:
		_, err := w.Write([]byte{byte(val)})
		return err
	case val <= 0xffff:
		var b [3]byte
		b[0] = 0xfd
		binary.LittleEndian.PutUint16(b[1:], uint16(val))
		_, err := w.Write(b[:])
		return err
	case val <= 0xffffffff:
		var b [5]byte
		b[0] = 0xfe
		binary.LittleEndian.PutUint32(b[1:], uint32(val))
		_, err := w.Write(b[:])
		return err
	default:
		var b [9]byte
		b[0] = 0xff
		binary.LittleEndian.PutUint64(b[1:], val)
		_, err := w.Write(b[:])
		return err
	}
}

// ReadVarBytes reads a variable length byte array, prefixed with its
// length as a compact size int.  fieldName is used only in error
// messages to identify the offending field.
func ReadVarBytes(r io.Reader, maxAllowed uint64, fieldName string) ([]byte, error) {
	count, err := ReadVarInt(r)
	if err != nil {
		return nil, err
	}
	if count > maxAllowed {
		str := fmt.Sprintf("%s is larger than the max allowed size [count %d, max %d]",
			fieldName, count, maxAllowed)
		return nil, messageError("ReadVarBytes", str)
	}

	b := make([]byte, count)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// WriteVarBytes writes a variable length byte array, prefixed with its
// length as a compact size int.
func WriteVarBytes(w io.Writer, b []byte) error {
	if err := WriteVarInt(w, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func readElement(r io.Reader, element interface{}) error {
	switch e := element.(type) {
	case *int8:
		var b [1]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return err
		}
		*e = int8(b[0])
		return nil
	case *uint8:
		var b [1]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return err
		}
		*e = b[0]
		return nil
	case *bool:
		var b [1]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return err
		}
		*e = b[0] != 0
		return nil
	case *int32:
		var b [4]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return err
		}
		*e = int32(binary.LittleEndian.Uint32(b[:]))
		return nil
	case *uint32:
		var b [4]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return err
		}
		*e = binary.LittleEndian.Uint32(b[:])
		return nil
	case *int64:
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return err
		}
		*e = int64(binary.LittleEndian.Uint64(b[:]))
		return nil
	case *uint64:
		var b [8]byte
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return err
		}
		*e = binary.LittleEndian.Uint64(b[:])
		return nil
	default:
		return fmt.Errorf("unsupported type for readElement: %T", element)
	}
}

func writeElement(w io.Writer, element interface{}) error {
	switch e := element.(type) {
	case int8:
		_, err := w.Write([]byte{byte(e)})
		return err
	case uint8:
		_, err := w.Write([]byte{e})
		return err
	case bool:
		var b byte
		if e {
			b = 1
		}
		_, err := w.Write([]byte{b})
		return err
	case int32:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], uint32(e))
		_, err := w.Write(b[:])
		return err
	case uint32:
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], e)
		_, err := w.Write(b[:])
		return err
	case int64:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], uint64(e))
		_, err := w.Write(b[:])
		return err
	case uint64:
		var b [8]byte
		binary.LittleEndian.PutUint64(b[:], e)
		_, err := w.Write(b[:])
		return err
	default:
		return fmt.Errorf("unsupported type for writeElement: %T", element)
	}
}
