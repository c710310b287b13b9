// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package masternode

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/SCL-BSG/BSGold/wire"
	"github.com/decred/dcrd/chaincfg/chainhash"
)

// Typed snapshot errors, matching spec §4.4's documented error
// taxonomy (FileError | IncorrectHash | IncorrectMagicMessage |
// IncorrectMagicNumber | IncorrectFormat). Only these or a wrapped
// filesystem error ever come back from Load; callers treat every one
// of them as advisory (log and recreate), per spec §4.4: "Persistence
// is advisory ... only unknown errors abort the process."
var (
	ErrFileError             = errors.New("masternode snapshot: file error")
	ErrIncorrectHash         = errors.New("masternode snapshot: checksum mismatch")
	ErrIncorrectMagicMessage = errors.New("masternode snapshot: incorrect magic message")
	ErrIncorrectMagicNumber  = errors.New("masternode snapshot: incorrect network magic number")
	ErrIncorrectFormat       = errors.New("masternode snapshot: incorrect format")
)

const hashLen = chainhash.HashSize

// Save writes records to path as a checksummed snapshot: magic string,
// four-byte network identifier, length-prefixed records, then a
// 32-byte hash over everything written so far. The write is atomic —
// serialize to a temp file in the same directory, fsync, then rename
// over path — so a crash mid-write never leaves a half-written
// snapshot in place (spec §4.4).
func Save(path string, magic string, net wire.BSGNet, records []Record) error {
	var body bytes.Buffer
	if err := writeVarString(&body, magic); err != nil {
		return err
	}
	if err := binary.Write(&body, binary.LittleEndian, uint32(net)); err != nil {
		return err
	}
	if err := writeVarUint(&body, uint64(len(records))); err != nil {
		return err
	}
	for _, rec := range records {
		if err := writeRecord(&body, rec); err != nil {
			return err
		}
	}

	hash := chainhash.HashH(body.Bytes())

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".mncache-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFileError, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(body.Bytes()); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrFileError, err)
	}
	if _, err := tmp.Write(hash[:]); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrFileError, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %v", ErrFileError, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %v", ErrFileError, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("%w: %v", ErrFileError, err)
	}
	return nil
}

// Load reads a snapshot previously written by Save, verifying the
// checksum, magic string, and network tag in that order, then adds
// every record into reg and runs one Sweep against chain to discard
// already-expired entries before returning (spec §4.4: "After load,
// run one sweep(now) to discard expired entries"). reg should already
// be constructed with the network's timing constants. sigs is threaded
// through to Sweep so any signature cached against a record the load
// sweep discards is evicted too; it may be nil.
func Load(path string, magic string, net wire.BSGNet, reg *Registry, chain ChainView, sigs *SigCache) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFileError, err)
	}
	if len(raw) < hashLen {
		return ErrIncorrectFormat
	}

	body := raw[:len(raw)-hashLen]
	wantHash := raw[len(raw)-hashLen:]

	gotHash := chainhash.HashH(body)
	if !bytes.Equal(gotHash[:], wantHash) {
		return ErrIncorrectHash
	}

	r := bytes.NewReader(body)

	gotMagic, err := readVarString(r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIncorrectFormat, err)
	}
	if gotMagic != magic {
		return ErrIncorrectMagicMessage
	}

	var gotNet uint32
	if err := binary.Read(r, binary.LittleEndian, &gotNet); err != nil {
		return fmt.Errorf("%w: %v", ErrIncorrectFormat, err)
	}
	if wire.BSGNet(gotNet) != net {
		return ErrIncorrectMagicNumber
	}

	count, err := readVarUint(r)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrIncorrectFormat, err)
	}
	for i := uint64(0); i < count; i++ {
		rec, err := readRecord(r)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrIncorrectFormat, err)
		}
		reg.Add(rec)
	}

	reg.Sweep(chain, sigs)
	return nil
}

func writeVarString(w io.Writer, s string) error {
	if err := writeVarUint(w, uint64(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readVarString(r io.Reader) (string, error) {
	n, err := readVarUint(r)
	if err != nil {
		return "", err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

func writeVarUint(w io.Writer, n uint64) error {
	return binary.Write(w, binary.LittleEndian, n)
}

func readVarUint(r io.Reader) (uint64, error) {
	var n uint64
	err := binary.Read(r, binary.LittleEndian, &n)
	return n, err
}

func writeVarBytes(w io.Writer, b []byte) error {
	if err := writeVarUint(w, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

func readVarBytes(r io.Reader) ([]byte, error) {
	n, err := readVarUint(r)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, err
	}
	return buf, nil
}

func writeRecord(w io.Writer, rec Record) error {
	fields := []interface{}{
		rec.Collateral.Hash,
		rec.Collateral.Index,
		rec.AnnounceTime,
		rec.LastSeen,
		rec.LastHeartbeat,
		rec.LastPaid,
		rec.ProtocolVer,
		int32(rec.State),
		rec.PortOpen,
		rec.LegacyFlag,
		rec.RewardPercent,
	}
	for _, f := range fields {
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return err
		}
	}

	var ipLen uint8
	if rec.Endpoint.IP != nil {
		ipLen = uint8(len(rec.Endpoint.IP))
	}
	if err := binary.Write(w, binary.LittleEndian, ipLen); err != nil {
		return err
	}
	if ipLen > 0 {
		if _, err := w.Write(rec.Endpoint.IP); err != nil {
			return err
		}
	}
	if err := binary.Write(w, binary.LittleEndian, rec.Endpoint.Port); err != nil {
		return err
	}

	for _, b := range [][]byte{rec.OperatorPubKey, rec.CollateralPubKey, rec.AnnounceSig, rec.RewardScript} {
		if err := writeVarBytes(w, b); err != nil {
			return err
		}
	}
	return nil
}

func readRecord(r io.Reader) (Record, error) {
	var rec Record

	if err := binary.Read(r, binary.LittleEndian, &rec.Collateral.Hash); err != nil {
		return rec, err
	}
	if err := binary.Read(r, binary.LittleEndian, &rec.Collateral.Index); err != nil {
		return rec, err
	}
	for _, dst := range []interface{}{
		&rec.AnnounceTime, &rec.LastSeen, &rec.LastHeartbeat, &rec.LastPaid,
	} {
		if err := binary.Read(r, binary.LittleEndian, dst); err != nil {
			return rec, err
		}
	}
	if err := binary.Read(r, binary.LittleEndian, &rec.ProtocolVer); err != nil {
		return rec, err
	}
	var state int32
	if err := binary.Read(r, binary.LittleEndian, &state); err != nil {
		return rec, err
	}
	rec.State = State(state)
	if err := binary.Read(r, binary.LittleEndian, &rec.PortOpen); err != nil {
		return rec, err
	}
	if err := binary.Read(r, binary.LittleEndian, &rec.LegacyFlag); err != nil {
		return rec, err
	}
	if err := binary.Read(r, binary.LittleEndian, &rec.RewardPercent); err != nil {
		return rec, err
	}

	var ipLen uint8
	if err := binary.Read(r, binary.LittleEndian, &ipLen); err != nil {
		return rec, err
	}
	if ipLen > 0 {
		ip := make([]byte, ipLen)
		if _, err := io.ReadFull(r, ip); err != nil {
			return rec, err
		}
		rec.Endpoint.IP = ip
	}
	if err := binary.Read(r, binary.LittleEndian, &rec.Endpoint.Port); err != nil {
		return rec, err
	}

	var err error
	if rec.OperatorPubKey, err = readVarBytes(r); err != nil {
		return rec, err
	}
	if rec.CollateralPubKey, err = readVarBytes(r); err != nil {
		return rec, err
	}
	if rec.AnnounceSig, err = readVarBytes(r); err != nil {
		return rec, err
	}
	if rec.RewardScript, err = readVarBytes(r); err != nil {
		return rec, err
	}
	return rec, nil
}
