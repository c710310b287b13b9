// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
	"net"
)

// NetAddress is the IP address and port of a masternode endpoint or a
// peer.  Its canonical string form -- the dotted-quad followed by a
// colon and the decimal port, with no separators elsewhere -- is used
// verbatim inside the Announce and Heartbeat signed messages (see the
// canonical forms in the masternode/mnpeer package).
type NetAddress struct {
	IP   net.IP
	Port uint16
}

// String returns the canonical "a.b.c.d:port" form of the address.
// Non-IPv4 addresses are rendered with net.IP's default formatting,
// which callers must not feed into a signed message (the collateral
// proof and signature schemes in this protocol are IPv4-only).
func (na NetAddress) String() string {
	ip4 := na.IP.To4()
	if ip4 == nil {
		return fmt.Sprintf("[%s]:%d", na.IP.String(), na.Port)
	}
	return fmt.Sprintf("%d.%d.%d.%d:%d", ip4[0], ip4[1], ip4[2], ip4[3], na.Port)
}

// IsRoutable returns false for the zero address, loopback, and the
// RFC1918/RFC4193-style link-local and private ranges.  The dispatcher
// uses this to decide whether a record is eligible for relay and
// DirectorySync replies (§4.2: "relay unless the endpoint is
// link-local").
func (na NetAddress) IsRoutable() bool {
	ip := na.IP
	if ip == nil || ip.IsUnspecified() || ip.IsLoopback() || ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() || ip.IsPrivate() {
		return false
	}
	return true
}

// readNetAddress reads an encoded NetAddress from r.
func readNetAddress(r io.Reader, na *NetAddress) error {
	var ipLen uint8
	if err := readElement(r, &ipLen); err != nil {
		return err
	}
	ip := make(net.IP, ipLen)
	if ipLen > 0 {
		if _, err := io.ReadFull(r, ip); err != nil {
			return err
		}
	}
	var port uint32
	if err := readElement(r, &port); err != nil {
		return err
	}
	na.IP = ip
	na.Port = uint16(port)
	return nil
}

// writeNetAddress writes na to w.
func writeNetAddress(w io.Writer, na NetAddress) error {
	ip := na.IP.To4()
	if ip == nil {
		ip = na.IP
	}
	if err := writeElement(w, uint8(len(ip))); err != nil {
		return err
	}
	if len(ip) > 0 {
		if _, err := w.Write(ip); err != nil {
			return err
		}
	}
	return writeElement(w, uint32(na.Port))
}
