// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpeer

import (
	"bytes"
	"testing"

	"github.com/decred/dcrd/chaincfg/chainhash"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/SCL-BSG/BSGold/masternode"
	"github.com/SCL-BSG/BSGold/txscript/stdscript"
	"github.com/SCL-BSG/BSGold/wire"
)

type fakeKey struct {
	priv *secp256k1.PrivateKey
	pub  []byte
}

func newFakeKey(t *testing.T) fakeKey {
	t.Helper()
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		t.Fatalf("GeneratePrivateKey: %v", err)
	}
	return fakeKey{priv: priv, pub: priv.PubKey().SerializeCompressed()}
}

func (k fakeKey) sign(message []byte) []byte {
	digest := chainhash.HashB(message)
	sig := ecdsa.Sign(k.priv, digest)
	return sig.Serialize()
}

type fakePeer struct {
	addr      string
	loopback  bool
	announces []*wire.MsgMNAnnounce
	pings     []*wire.MsgMNPing
	votes     []*wire.MsgMNVote
	dsegs     []*wire.MsgMNDseg
}

func (p *fakePeer) Addr() string      { return p.addr }
func (p *fakePeer) IsLoopback() bool  { return p.loopback }
func (p *fakePeer) SendAnnounce(msg *wire.MsgMNAnnounce) error {
	p.announces = append(p.announces, msg)
	return nil
}
func (p *fakePeer) SendPing(msg *wire.MsgMNPing) error {
	p.pings = append(p.pings, msg)
	return nil
}
func (p *fakePeer) SendVote(msg *wire.MsgMNVote) error {
	p.votes = append(p.votes, msg)
	return nil
}
func (p *fakePeer) SendDseg(msg *wire.MsgMNDseg) error {
	p.dsegs = append(p.dsegs, msg)
	return nil
}

type fakePeerSet struct {
	peers []Peer
}

func (s *fakePeerSet) ForEach(f func(Peer)) {
	for _, p := range s.peers {
		f(p)
	}
}

type fakeMisbehaviorSink struct {
	weights map[string]int
}

func newFakeMisbehaviorSink() *fakeMisbehaviorSink {
	return &fakeMisbehaviorSink{weights: make(map[string]int)}
}

func (s *fakeMisbehaviorSink) Misbehave(peerAddr string, weight int) {
	s.weights[peerAddr] += weight
}

const testAnnounceTime = int64(1700000000)

func testDispatcher(t *testing.T, collateralAtoms int64) (*Dispatcher, *masternode.Registry, *masternode.MemChainView, *fakeMisbehaviorSink) {
	t.Helper()
	registry := masternode.NewRegistry(70015, 3600, 60, 180)
	chain := masternode.NewMemChainView()
	chain.Height = 100
	sigs, err := masternode.NewSigCache(1000)
	if err != nil {
		t.Fatalf("NewSigCache: %v", err)
	}
	sink := newFakeMisbehaviorSink()
	cfg := Config{
		MinProtocol:          70015,
		MinConfirmations:     15,
		MasternodeCollateral: collateralAtoms,
		EpochFloor:           1511159400,
		MinAnnounceInterval:  3600,
		HeartbeatExpiry:      3600,
	}
	d := New(cfg, registry, chain, sigs, sink, func() int64 { return testAnnounceTime })
	return d, registry, chain, sink
}

// testP2PKHScript returns a well-formed 25-byte P2PKH script for use as
// a collateral UTXO's scriptPubKey in tests, so collateral-proof tests
// exercise the same stdscript.IsPubKeyHashScriptV0 shape check
// HandleAnnounce applies to a real chain collaborator's output.
func testP2PKHScript(b byte) []byte {
	return stdscript.NewPubKeyHashScriptV0(bytes.Repeat([]byte{b}, 20))
}

func testOutPoint(b byte) wire.OutPoint {
	var h chainhash.Hash
	h[0] = b
	return wire.OutPoint{Hash: h, Index: 0}
}

func testAnnounce(t *testing.T, collateral wire.OutPoint, collateralKey, operatorKey fakeKey) *wire.MsgMNAnnounce {
	t.Helper()
	endpoint := wire.NetAddress{IP: []byte{203, 0, 113, 1}, Port: 9666}
	msg := &wire.MsgMNAnnounce{
		Collateral:       collateral,
		Endpoint:         endpoint,
		AnnounceTime:     testAnnounceTime,
		CollateralPubKey: collateralKey.pub,
		OperatorPubKey:   operatorKey.pub,
		Count:            -1,
		Current:          0,
		LastUpdated:      testAnnounceTime,
		Protocol:         70015,
		Rewarded:         false,
	}
	signed := announceCanonical(msg.Endpoint, msg.AnnounceTime, msg.OperatorPubKey, msg.CollateralPubKey, msg.Protocol, msg.Rewarded, msg.RewardScript, msg.RewardPercent)
	msg.Signature = collateralKey.sign(signed)
	return msg
}

// S1: a fresh, well-formed, well-signed announce with proven collateral
// is admitted into the registry.
func TestHandleAnnounceAdmitsFreshRecord(t *testing.T) {
	collateralKey := newFakeKey(t)
	operatorKey := newFakeKey(t)
	d, registry, chain, sink := testDispatcher(t, 100000*1e8)

	collateral := testOutPoint(1)
	chain.SetUTXO(collateral, 100000*1e8, 50, testP2PKHScript(0xAB), true)

	msg := testAnnounce(t, collateral, collateralKey, operatorKey)
	peer := &fakePeer{addr: "203.0.113.1:9666"}
	peers := &fakePeerSet{}

	d.HandleAnnounce(peer, peers, msg)

	rec, ok := registry.FindByCollateral(collateral)
	if !ok {
		t.Fatalf("expected record to be admitted")
	}
	if rec.State != masternode.Enabled {
		t.Fatalf("expected Enabled state, got %v", rec.State)
	}
	if len(sink.weights) != 0 {
		t.Fatalf("expected no misbehavior, got %v", sink.weights)
	}
}

// A committed Announce and a committed Heartbeat each invoke
// cfg.Notify exactly once with the resulting record, driving the RPC
// transport's notifymasternodelist push (SPEC_FULL.md §3.7). A dropped
// message (unproven collateral) must not call Notify at all.
func TestHandleAnnounceAndHeartbeatNotifyOnCommit(t *testing.T) {
	collateralKey := newFakeKey(t)
	operatorKey := newFakeKey(t)

	registry := masternode.NewRegistry(70015, 3600, 60, 180)
	chain := masternode.NewMemChainView()
	chain.Height = 100
	sigs, err := masternode.NewSigCache(1000)
	if err != nil {
		t.Fatalf("NewSigCache: %v", err)
	}
	sink := newFakeMisbehaviorSink()

	var notified []masternode.Record
	cfg := Config{
		MinProtocol:          70015,
		MinConfirmations:     15,
		MasternodeCollateral: 100000 * 1e8,
		EpochFloor:           1511159400,
		MinAnnounceInterval:  3600,
		HeartbeatExpiry:      3600,
		Notify: func(rec masternode.Record) {
			notified = append(notified, rec)
		},
	}
	d := New(cfg, registry, chain, sigs, sink, func() int64 { return testAnnounceTime })

	collateral := testOutPoint(9)
	chain.SetUTXO(collateral, 100000*1e8, 50, testP2PKHScript(0xAB), true)

	msg := testAnnounce(t, collateral, collateralKey, operatorKey)
	peer := &fakePeer{addr: "203.0.113.9:9666"}
	peers := &fakePeerSet{}
	d.HandleAnnounce(peer, peers, msg)

	if len(notified) != 1 {
		t.Fatalf("Notify called %d times on Announce commit, want 1", len(notified))
	}
	if notified[0].Collateral != collateral || notified[0].State != masternode.Enabled {
		t.Fatalf("Notify payload = %+v, want Enabled record for %v", notified[0], collateral)
	}

	ping := &wire.MsgMNPing{Collateral: collateral, SigTime: testAnnounceTime + 1}
	signed := heartbeatCanonical(msg.Endpoint, ping.SigTime, ping.Stop)
	ping.Signature = operatorKey.sign(signed)
	d.HandleHeartbeat(peer, peers, ping)

	if len(notified) != 2 {
		t.Fatalf("Notify called %d times after Heartbeat commit, want 2", len(notified))
	}

	// An announce with unprovable collateral is dropped and must not
	// reach Notify.
	badCollateral := testOutPoint(10)
	badMsg := testAnnounce(t, badCollateral, collateralKey, operatorKey)
	d.HandleAnnounce(peer, peers, badMsg)
	if len(notified) != 2 {
		t.Fatalf("Notify called on a dropped announce, count = %d, want 2", len(notified))
	}
}

// S2: an announce whose signature does not match the claimed
// collateral key is rejected and the sender is penalized.
func TestHandleAnnounceRejectsBadSignature(t *testing.T) {
	collateralKey := newFakeKey(t)
	operatorKey := newFakeKey(t)
	wrongKey := newFakeKey(t)
	d, registry, chain, sink := testDispatcher(t, 100000*1e8)

	collateral := testOutPoint(2)
	chain.SetUTXO(collateral, 100000*1e8, 50, testP2PKHScript(0xAB), true)

	msg := testAnnounce(t, collateral, collateralKey, operatorKey)
	// Re-sign with the wrong key so the signature no longer matches
	// CollateralPubKey.
	signed := announceCanonical(msg.Endpoint, msg.AnnounceTime, msg.OperatorPubKey, msg.CollateralPubKey, msg.Protocol, msg.Rewarded, msg.RewardScript, msg.RewardPercent)
	msg.Signature = wrongKey.sign(signed)

	peer := &fakePeer{addr: "198.51.100.1:9666"}
	d.HandleAnnounce(peer, &fakePeerSet{}, msg)

	if _, ok := registry.FindByCollateral(collateral); ok {
		t.Fatalf("expected record to be rejected")
	}
	if sink.weights[peer.addr] != 100 {
		t.Fatalf("expected misbehavior weight 100, got %d", sink.weights[peer.addr])
	}
}

// An announce whose collateral outpoint exists at the right value but
// does not pay a P2PKH output is rejected at the ban-triggering tier
// (spec §4.2 item 5).
func TestHandleAnnounceRejectsNonP2PKHCollateral(t *testing.T) {
	collateralKey := newFakeKey(t)
	operatorKey := newFakeKey(t)
	d, registry, chain, sink := testDispatcher(t, 100000*1e8)

	collateral := testOutPoint(11)
	p2sh := make([]byte, 23)
	p2sh[0], p2sh[1], p2sh[22] = 0xa9, 0x14, 0x87
	chain.SetUTXO(collateral, 100000*1e8, 50, p2sh, true)

	msg := testAnnounce(t, collateral, collateralKey, operatorKey)
	peer := &fakePeer{addr: "198.51.100.11:9666"}
	d.HandleAnnounce(peer, &fakePeerSet{}, msg)

	if _, ok := registry.FindByCollateral(collateral); ok {
		t.Fatalf("expected record to be rejected")
	}
	if sink.weights[peer.addr] != 100 {
		t.Fatalf("expected misbehavior weight 100, got %d", sink.weights[peer.addr])
	}
}

// An announce whose collateral outpoint has no matching UTXO of the
// required value is rejected with the lighter unproven-collateral
// penalty.
func TestHandleAnnounceRejectsUnprovenCollateral(t *testing.T) {
	collateralKey := newFakeKey(t)
	operatorKey := newFakeKey(t)
	d, registry, _, sink := testDispatcher(t, 100000*1e8)

	collateral := testOutPoint(3)
	// No SetUTXO call: the chain view reports it unknown/spent.

	msg := testAnnounce(t, collateral, collateralKey, operatorKey)
	peer := &fakePeer{addr: "198.51.100.2:9666"}
	d.HandleAnnounce(peer, &fakePeerSet{}, msg)

	if _, ok := registry.FindByCollateral(collateral); ok {
		t.Fatalf("expected record to be rejected")
	}
	if sink.weights[peer.addr] != 20 {
		t.Fatalf("expected misbehavior weight 20, got %d", sink.weights[peer.addr])
	}
}

// Re-announcing the identical message twice only admits the record
// once and is not treated as a replay-worthy offense; the duplicate is
// silently dropped by the seen-message filter.
func TestHandleAnnounceDeduplicatesIdenticalMessage(t *testing.T) {
	collateralKey := newFakeKey(t)
	operatorKey := newFakeKey(t)
	d, registry, chain, sink := testDispatcher(t, 100000*1e8)

	collateral := testOutPoint(4)
	chain.SetUTXO(collateral, 100000*1e8, 50, testP2PKHScript(0xAB), true)

	msg := testAnnounce(t, collateral, collateralKey, operatorKey)
	peer := &fakePeer{addr: "203.0.113.4:9666"}

	d.HandleAnnounce(peer, &fakePeerSet{}, msg)
	d.HandleAnnounce(peer, &fakePeerSet{}, msg)

	if len(sink.weights) != 0 {
		t.Fatalf("expected no misbehavior from a duplicate, got %v", sink.weights)
	}
	if _, ok := registry.FindByCollateral(collateral); !ok {
		t.Fatalf("expected record to remain admitted")
	}
}

// A heartbeat for an unknown collateral triggers a throttled
// DirectorySync request rather than being silently dropped.
func TestHandleHeartbeatUnknownCollateralRequestsSync(t *testing.T) {
	d, _, _, _ := testDispatcher(t, 100000*1e8)

	collateral := testOutPoint(5)
	operatorKey := newFakeKey(t)
	endpoint := wire.NetAddress{IP: []byte{203, 0, 113, 5}, Port: 9666}
	signed := heartbeatCanonical(endpoint, testAnnounceTime, false)
	msg := &wire.MsgMNPing{
		Collateral: collateral,
		SigTime:    testAnnounceTime,
		Signature:  operatorKey.sign(signed),
	}

	peer := &fakePeer{addr: "203.0.113.5:9666"}
	d.HandleHeartbeat(peer, &fakePeerSet{}, msg)

	if len(peer.dsegs) != 1 {
		t.Fatalf("expected one DirectorySync request, got %d", len(peer.dsegs))
	}
	if peer.dsegs[0].Collateral != collateral {
		t.Fatalf("DirectorySync requested wrong collateral")
	}
}

// A heartbeat that validly refreshes an existing record moves it out
// of an Expired state and relays the ping to connected peers.
func TestHandleHeartbeatRefreshesExpiredRecord(t *testing.T) {
	collateralKey := newFakeKey(t)
	operatorKey := newFakeKey(t)
	d, registry, chain, sink := testDispatcher(t, 100000*1e8)

	collateral := testOutPoint(6)
	chain.SetUTXO(collateral, 100000*1e8, 50, testP2PKHScript(0xAB), true)
	announce := testAnnounce(t, collateral, collateralKey, operatorKey)
	peer := &fakePeer{addr: "203.0.113.6:9666"}
	d.HandleAnnounce(peer, &fakePeerSet{}, announce)

	registry.Update(collateral, func(r *masternode.Record) {
		r.State = masternode.Expired
		r.LastHeartbeat = testAnnounceTime - 7200
	})

	endpoint := announce.Endpoint
	pingTime := testAnnounceTime + 10
	signed := heartbeatCanonical(endpoint, pingTime, false)
	ping := &wire.MsgMNPing{
		Collateral: collateral,
		SigTime:    pingTime,
		Signature:  operatorKey.sign(signed),
	}

	relayTarget := &fakePeer{addr: "198.51.100.9:9666"}
	peers := &fakePeerSet{peers: []Peer{relayTarget}}
	d.HandleHeartbeat(peer, peers, ping)

	rec, _ := registry.FindByCollateral(collateral)
	if rec.State != masternode.Enabled {
		t.Fatalf("expected Enabled after fresh heartbeat, got %v", rec.State)
	}
	if len(relayTarget.pings) != 1 {
		t.Fatalf("expected heartbeat to be relayed")
	}
	if len(sink.weights) != 0 {
		t.Fatalf("expected no misbehavior, got %v", sink.weights)
	}
}

// A vote signed under the wrong operator key is rejected and the
// sender is penalized at the heavyweight replay tier.
func TestHandleVoteRejectsWrongKey(t *testing.T) {
	collateralKey := newFakeKey(t)
	operatorKey := newFakeKey(t)
	wrongKey := newFakeKey(t)
	d, registry, chain, sink := testDispatcher(t, 100000*1e8)

	collateral := testOutPoint(7)
	chain.SetUTXO(collateral, 100000*1e8, 50, testP2PKHScript(0xAB), true)
	announce := testAnnounce(t, collateral, collateralKey, operatorKey)
	peer := &fakePeer{addr: "203.0.113.7:9666"}
	d.HandleAnnounce(peer, &fakePeerSet{}, announce)

	signed := voteCanonical(collateral, 1)
	vote := &wire.MsgMNVote{
		Collateral: collateral,
		Vote:       1,
		Signature:  wrongKey.sign(signed),
	}
	d.HandleVote(peer, &fakePeerSet{}, vote)

	rec, _ := registry.FindByCollateral(collateral)
	if rec.Vote != 0 {
		t.Fatalf("expected vote to be rejected")
	}
	if sink.weights[peer.addr] != 100 {
		t.Fatalf("expected misbehavior weight 100, got %d", sink.weights[peer.addr])
	}
}

// The first vote is accepted and a second vote within the one-hour
// window is dropped.
func TestHandleVoteRateLimited(t *testing.T) {
	collateralKey := newFakeKey(t)
	operatorKey := newFakeKey(t)
	d, registry, chain, _ := testDispatcher(t, 100000*1e8)

	collateral := testOutPoint(8)
	chain.SetUTXO(collateral, 100000*1e8, 50, testP2PKHScript(0xAB), true)
	announce := testAnnounce(t, collateral, collateralKey, operatorKey)
	peer := &fakePeer{addr: "203.0.113.8:9666"}
	d.HandleAnnounce(peer, &fakePeerSet{}, announce)

	signed1 := voteCanonical(collateral, 1)
	vote1 := &wire.MsgMNVote{Collateral: collateral, Vote: 1, Signature: operatorKey.sign(signed1)}
	d.HandleVote(peer, &fakePeerSet{}, vote1)

	signed2 := voteCanonical(collateral, 2)
	vote2 := &wire.MsgMNVote{Collateral: collateral, Vote: 2, Signature: operatorKey.sign(signed2)}
	d.HandleVote(peer, &fakePeerSet{}, vote2)

	rec, _ := registry.FindByCollateral(collateral)
	if rec.Vote != 1 {
		t.Fatalf("expected second vote within the window to be dropped, got vote=%d", rec.Vote)
	}
}

// A full DirectorySync(null) request from a non-loopback peer is
// throttled on repeat and penalized for violating the throttle.
func TestHandleDirectorySyncThrottlesFullRequests(t *testing.T) {
	d, _, _, sink := testDispatcher(t, 100000*1e8)

	peer := &fakePeer{addr: "203.0.113.10:9666"}
	d.HandleDirectorySync(peer, &wire.MsgMNDseg{Collateral: wire.NullOutPoint})
	d.HandleDirectorySync(peer, &wire.MsgMNDseg{Collateral: wire.NullOutPoint})

	if sink.weights[peer.addr] != 34 {
		t.Fatalf("expected misbehavior weight 34 on repeat, got %d", sink.weights[peer.addr])
	}
}

// A loopback peer is exempt from the full-sync throttle.
func TestHandleDirectorySyncLoopbackExempt(t *testing.T) {
	d, _, _, sink := testDispatcher(t, 100000*1e8)

	peer := &fakePeer{addr: "127.0.0.1:9666", loopback: true}
	d.HandleDirectorySync(peer, &wire.MsgMNDseg{Collateral: wire.NullOutPoint})
	d.HandleDirectorySync(peer, &wire.MsgMNDseg{Collateral: wire.NullOutPoint})

	if len(sink.weights) != 0 {
		t.Fatalf("expected no misbehavior for loopback peer, got %v", sink.weights)
	}
}

// A freshly connected peer gets exactly one opportunistic full
// DirectorySync request; a second call within the dsegCooldown window
// is throttled by the same AnnounceSyncTo bookkeeping a normal
// DirectorySync ask would use (spec §4.2, "Cold start").
func TestColdStartSyncSendsOneFullRequest(t *testing.T) {
	d, _, _, _ := testDispatcher(t, 100000*1e8)

	peer := &fakePeer{addr: "203.0.113.50:9666"}
	d.ColdStartSync(peer)
	d.ColdStartSync(peer)

	if len(peer.dsegs) != 1 {
		t.Fatalf("ColdStartSync sent %d requests, want exactly 1", len(peer.dsegs))
	}
	if !peer.dsegs[0].Collateral.IsNull() {
		t.Fatalf("ColdStartSync request collateral = %v, want the null outpoint", peer.dsegs[0].Collateral)
	}
}
