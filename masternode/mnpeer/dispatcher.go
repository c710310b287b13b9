// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mnpeer implements the gossip message dispatcher: the state
// machine that authenticates, deduplicates, relays, and applies the
// five masternode registry messages (spec §4.2) as they arrive from
// connected peers.
package mnpeer

import (
	"github.com/SCL-BSG/BSGold/internal/apbf"
	"github.com/SCL-BSG/BSGold/masternode"
	"github.com/SCL-BSG/BSGold/txscript/stdscript"
	"github.com/SCL-BSG/BSGold/wire"
)

// Config bundles the per-network and per-node values the dispatcher
// needs that don't belong on the registry itself.
type Config struct {
	MinProtocol          uint32
	MinConfirmations     int64
	MasternodeCollateral int64
	EpochFloor           int64
	MinAnnounceInterval  int64
	HeartbeatExpiry      int64

	// OperatorPubKey, if non-nil, is this node's own operator public
	// key. An accepted announce whose OperatorPubKey matches triggers
	// ActivateLocal (spec §4.2 item 10).
	OperatorPubKey []byte
	ActivateLocal  func(wire.OutPoint)

	// Notify, if non-nil, is called with the resulting record every
	// time HandleAnnounce or HandleHeartbeat commits a registry state
	// transition, driving the RPC transport's notifymasternodelist
	// push (SPEC_FULL.md §3.7). It is never called for a message that
	// was dropped.
	Notify func(masternode.Record)
}

// Dispatcher applies peer messages to a Registry, using a ChainView
// for collateral proof and a SigCache to avoid re-verifying a
// signature this process has already checked once. It never owns a
// peer connection; callers feed it decoded messages and a Peer handle
// identifying the sender.
type Dispatcher struct {
	cfg       Config
	registry  *masternode.Registry
	chain     masternode.ChainView
	sigs      *masternode.SigCache
	seen      *apbf.Filter
	misbehave MisbehaviorSink
	nowFn     func() int64
}

// New returns a Dispatcher wired to registry and chain, reporting rule
// violations to sink.
func New(cfg Config, registry *masternode.Registry, chain masternode.ChainView, sigs *masternode.SigCache, sink MisbehaviorSink, nowFn func() int64) *Dispatcher {
	return &Dispatcher{
		cfg:       cfg,
		registry:  registry,
		chain:     chain,
		sigs:      sigs,
		seen:      apbf.NewFilter(50000, 4, 0.001),
		misbehave: sink,
		nowFn:     nowFn,
	}
}

func (d *Dispatcher) now() int64 { return d.nowFn() }

// HandleAnnounce applies an Announce message (legacy or rewarded per
// msg.Rewarded) from peer, relaying it to peers on success when its
// endpoint is routable.
func (d *Dispatcher) HandleAnnounce(peer Peer, peers PeerSet, msg *wire.MsgMNAnnounce) {
	now := d.now()

	if d.seen.Contains(msg.Signature) {
		return
	}

	if msg.AnnounceTime < d.cfg.EpochFloor || msg.AnnounceTime > msg.LastUpdated || msg.AnnounceTime > now+3600 {
		return
	}
	if msg.Endpoint.Port == 0 {
		return
	}
	if msg.Rewarded && (msg.RewardPercent < 0 || msg.RewardPercent > 100) {
		return
	}
	if uint32(msg.Protocol) < d.cfg.MinProtocol {
		return
	}
	// These are raw SEC1-encoded EC public keys, not scripts; parsePubKey
	// needs a valid encoding length before it can even attempt to parse
	// one. The 25-byte P2PKH shape required by spec item 5 applies to
	// the collateral output's scriptPubKey, checked below once the
	// output itself is looked up.
	if len(msg.CollateralPubKey) != 33 && len(msg.CollateralPubKey) != 65 {
		log.Warnf("announce from %s: malformed collateral pubkey", peer.Addr())
		d.misbehave.Misbehave(peer.Addr(), 100)
		return
	}
	if len(msg.OperatorPubKey) != 33 && len(msg.OperatorPubKey) != 65 {
		log.Warnf("announce from %s: malformed operator pubkey", peer.Addr())
		d.misbehave.Misbehave(peer.Addr(), 100)
		return
	}

	signed := announceCanonical(msg.Endpoint, msg.AnnounceTime, msg.OperatorPubKey, msg.CollateralPubKey, msg.Protocol, msg.Rewarded, msg.RewardScript, msg.RewardPercent)
	if !d.verifyCached(msg.CollateralPubKey, msg.Signature, signed, msg.Collateral) {
		log.Warnf("announce from %s: signature verification failed for %s", peer.Addr(), msg.Collateral)
		d.misbehave.Misbehave(peer.Addr(), 100)
		return
	}

	existing, exists := d.registry.FindByCollateral(msg.Collateral)
	if exists {
		if msg.Count != -1 {
			return
		}
		if string(existing.CollateralPubKey) != string(msg.CollateralPubKey) {
			return
		}
		if now-existing.AnnounceTime < d.cfg.MinAnnounceInterval {
			return
		}
		d.registry.Update(msg.Collateral, func(r *masternode.Record) {
			applyAnnounce(r, msg, now)
		})
	} else {
		value, height, script, unspent := d.chain.UTXODetails(msg.Collateral)
		if !unspent || value != d.cfg.MasternodeCollateral {
			d.misbehave.Misbehave(peer.Addr(), 20)
			return
		}
		if !stdscript.IsPubKeyHashScriptV0(script) {
			log.Warnf("announce from %s: collateral %s does not pay a P2PKH output", peer.Addr(), msg.Collateral)
			d.misbehave.Misbehave(peer.Addr(), 100)
			return
		}
		tip := d.chain.BestHeight()
		if tip-height+1 < d.cfg.MinConfirmations {
			d.misbehave.Misbehave(peer.Addr(), 20)
			return
		}
		floorTime, ok := d.chain.TimeByHeight(height + d.cfg.MinConfirmations - 1)
		if ok && msg.AnnounceTime < floorTime {
			return
		}

		rec := masternode.Record{}
		applyAnnounce(&rec, msg, now)
		rec.State = masternode.Enabled
		d.registry.Add(rec)
		log.Infof("new masternode %s at %s", msg.Collateral, msg.Endpoint)
	}

	d.seen.Add(msg.Signature)
	d.notifyCollateral(msg.Collateral)

	if d.cfg.OperatorPubKey != nil && string(d.cfg.OperatorPubKey) == string(msg.OperatorPubKey) && d.cfg.ActivateLocal != nil {
		d.cfg.ActivateLocal(msg.Collateral)
	}

	if msg.Endpoint.IsRoutable() {
		d.relayAnnounce(peers, msg)
	}
}

// notifyCollateral invokes cfg.Notify, if set, with the freshly
// committed record for collateral. It is a no-op when Notify is nil.
func (d *Dispatcher) notifyCollateral(collateral wire.OutPoint) {
	if d.cfg.Notify == nil {
		return
	}
	if rec, ok := d.registry.FindByCollateral(collateral); ok {
		d.cfg.Notify(rec)
	}
}

func applyAnnounce(r *masternode.Record, msg *wire.MsgMNAnnounce, now int64) {
	r.Collateral = msg.Collateral
	r.Endpoint = msg.Endpoint
	r.AnnounceSig = msg.Signature
	r.AnnounceTime = msg.AnnounceTime
	r.CollateralPubKey = msg.CollateralPubKey
	r.OperatorPubKey = msg.OperatorPubKey
	r.ProtocolVer = msg.Protocol
	r.LastSeen = now
	r.RewardScript = nil
	r.RewardPercent = 0
	r.LegacyFlag = !msg.Rewarded
	if msg.Rewarded && !stdscript.IsScriptHashScriptV0(msg.RewardScript) {
		r.RewardScript = msg.RewardScript
		r.RewardPercent = msg.RewardPercent
	}
}

// HandleHeartbeat applies a compact Heartbeat (MsgMNPing) message.
func (d *Dispatcher) HandleHeartbeat(peer Peer, peers PeerSet, msg *wire.MsgMNPing) {
	now := d.now()

	if d.seen.Contains(msg.Signature) {
		return
	}
	if msg.SigTime < now-3600 || msg.SigTime > now+3600 {
		return
	}

	rec, ok := d.registry.FindByCollateral(msg.Collateral)
	if !ok {
		if d.registry.AskForEntry(peer.Addr(), msg.Collateral) {
			peer.SendDseg(&wire.MsgMNDseg{Collateral: msg.Collateral})
		}
		return
	}
	if msg.SigTime <= rec.LastHeartbeat {
		return
	}

	signed := heartbeatCanonical(rec.Endpoint, msg.SigTime, msg.Stop)
	if !d.verifyCached(rec.OperatorPubKey, msg.Signature, signed, msg.Collateral) {
		d.misbehave.Misbehave(peer.Addr(), 100)
		return
	}

	d.registry.Update(msg.Collateral, func(r *masternode.Record) {
		if msg.Stop {
			r.State = masternode.Removed
			return
		}
		r.LastHeartbeat = msg.SigTime
		r.LastSeen = now
		r.Check(now, d.cfg.HeartbeatExpiry, true)
	})

	d.seen.Add(msg.Signature)
	d.notifyCollateral(msg.Collateral)
	d.relayPing(peers, msg)
}

// HandleVote applies a Vote message, rate-limited to one accepted vote
// per hour per record.
func (d *Dispatcher) HandleVote(peer Peer, peers PeerSet, msg *wire.MsgMNVote) {
	now := d.now()

	if d.seen.Contains(msg.Signature) {
		return
	}

	rec, ok := d.registry.FindByCollateral(msg.Collateral)
	if !ok {
		return
	}

	signed := voteCanonical(msg.Collateral, msg.Vote)
	if !d.verifyCached(rec.OperatorPubKey, msg.Signature, signed, msg.Collateral) {
		d.misbehave.Misbehave(peer.Addr(), 100)
		return
	}

	accepted := false
	d.registry.Update(msg.Collateral, func(r *masternode.Record) {
		if now-r.LastVoteTime < 3600 {
			return
		}
		r.LastVoteTime = now
		r.Vote = msg.Vote
		accepted = true
	})
	if !accepted {
		return
	}
	d.seen.Add(msg.Signature)
	d.relayVote(peers, msg)
}

// HandleDirectorySync applies a DirectorySync (MsgMNDseg) request from
// peer, replying with the matching record(s).
func (d *Dispatcher) HandleDirectorySync(peer Peer, msg *wire.MsgMNDseg) {
	if msg.Collateral.IsNull() {
		if !d.registry.AllowFullSyncRequestFrom(peer.Addr(), peer.IsLoopback()) {
			d.misbehave.Misbehave(peer.Addr(), 34)
			return
		}
		for _, rec := range d.registry.Snapshot() {
			if rec.State != masternode.Enabled || !rec.Endpoint.IsRoutable() {
				continue
			}
			peer.SendAnnounce(recordToAnnounce(rec))
		}
		return
	}

	rec, ok := d.registry.FindByCollateral(msg.Collateral)
	if !ok || rec.State != masternode.Enabled {
		return
	}
	peer.SendAnnounce(recordToAnnounce(rec))
}

// ColdStartSync issues one opportunistic full DirectorySync request on
// a newly connected peer (spec §4.2, "Cold start").
func (d *Dispatcher) ColdStartSync(peer Peer) {
	if d.registry.AnnounceSyncTo(peer.Addr()) {
		peer.SendDseg(&wire.MsgMNDseg{Collateral: wire.NullOutPoint})
	}
}

func (d *Dispatcher) relayAnnounce(peers PeerSet, msg *wire.MsgMNAnnounce) {
	if peers == nil {
		return
	}
	peers.ForEach(func(p Peer) {
		p.SendAnnounce(msg)
	})
}

func (d *Dispatcher) relayPing(peers PeerSet, msg *wire.MsgMNPing) {
	if peers == nil {
		return
	}
	peers.ForEach(func(p Peer) {
		p.SendPing(msg)
	})
}

func (d *Dispatcher) relayVote(peers PeerSet, msg *wire.MsgMNVote) {
	if peers == nil {
		return
	}
	peers.ForEach(func(p Peer) {
		p.SendVote(msg)
	})
}

func recordToAnnounce(rec masternode.Record) *wire.MsgMNAnnounce {
	return &wire.MsgMNAnnounce{
		Collateral:       rec.Collateral,
		Endpoint:         rec.Endpoint,
		Signature:        rec.AnnounceSig,
		AnnounceTime:     rec.AnnounceTime,
		CollateralPubKey: rec.CollateralPubKey,
		OperatorPubKey:   rec.OperatorPubKey,
		Count:            -1,
		Current:          0,
		LastUpdated:      rec.AnnounceTime,
		Protocol:         rec.ProtocolVer,
		Rewarded:         !rec.LegacyFlag,
		RewardScript:     rec.RewardScript,
		RewardPercent:    rec.RewardPercent,
	}
}

// verifyCached reports whether sig is a valid signature by the key
// pubKey over message, consulting and populating the signature cache;
// each cached entry is tagged with collateral so a later
// EvictCollateral can drop every cached result tied to that record.
func (d *Dispatcher) verifyCached(pubKey, sig, message []byte, collateral wire.OutPoint) bool {
	key := sigVerifyKey(pubKey, sig, message)
	parsedPubKey, err := parsePubKey(pubKey)
	if err != nil {
		return false
	}
	parsedSig, err := parseDERSignature(sig)
	if err != nil {
		return false
	}
	if d.sigs.Exists(key, parsedSig, parsedPubKey) {
		return true
	}
	if !verifySignature(pubKey, sig, message) {
		return false
	}
	d.sigs.Add(key, parsedSig, parsedPubKey, collateral.String())
	return true
}
