// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpeer

import "github.com/SCL-BSG/BSGold/wire"

// Peer is the thin slice of a connected peer the dispatcher needs: an
// address for throttle-table keying and misbehavior reporting, and
// the ability to send the five gossip message kinds back out over the
// wire. Connection management, handshakes, and the address manager
// that discovers peers in the first place are all external
// collaborators (spec §1) — this package only reacts to messages
// already decoded off an established connection.
type Peer interface {
	// Addr returns the peer's "ip:port" string, used as the registry's
	// ask-table key.
	Addr() string

	// IsLoopback reports whether the peer connected over loopback,
	// exempting it from the DirectorySync(null) throttle (spec §4.2).
	IsLoopback() bool

	SendAnnounce(msg *wire.MsgMNAnnounce) error
	SendPing(msg *wire.MsgMNPing) error
	SendVote(msg *wire.MsgMNVote) error
	SendDseg(msg *wire.MsgMNDseg) error
}

// PeerSet is the connected-peer population the dispatcher relays
// gossip to. Relay is always best-effort: a peer a message cannot be
// enqueued to is simply skipped (spec §5, "Backpressure").
type PeerSet interface {
	ForEach(func(Peer))
}

// MisbehaviorSink is the external reputation system the dispatcher
// reports rule violations to. The dispatcher never disconnects a peer
// itself (spec §4.2: "the dispatcher itself never disconnects").
type MisbehaviorSink interface {
	Misbehave(peerAddr string, weight int)
}
