// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package banlist implements the reputation/ban-list layer the
// message dispatcher reports rule violations into (spec §4.2:
// "misbehavior(peer, weight)... the dispatcher itself never
// disconnects") and that the setban/listbanned/clearbanned RPC
// commands manage directly (spec §6). Reaching the threshold given to
// New in misbehavior points bans the offending address until its expiry;
// this package never closes a socket itself, matching the collaborator
// boundary the dispatcher observes.
//
// Grounded on original_source/src/rpcnet.cpp's setban/listbanned/
// clearbanned handlers (ip/netmask keying, banned_until reporting) and
// the teacher's sync.RWMutex-guarded map idiom used throughout
// masternode/registry.go.
package banlist

import (
	"sync"
	"time"
)

// DefaultBanThreshold is the cumulative misbehavior score (spec §4.2,
// §7: "100" on signature/shape failures) at which an address is
// automatically banned. It mirrors the classic bitcoind default of
// 100 discouragement points per ban.
const DefaultBanThreshold = 100

// DefaultBanDuration is how long an automatic ban lasts once the
// threshold is crossed, absent an explicit bantime from setban.
const DefaultBanDuration = 24 * time.Hour

// Entry describes one banned address, as reported by listbanned.
type Entry struct {
	Address    string
	BannedUntil int64 // Unix seconds; zero means "forever" (absolute)
}

// List is a concurrency-safe ban/misbehavior tracker. The zero value
// is not usable; construct with New.
type List struct {
	mtx sync.Mutex

	scores map[string]int
	bans   map[string]int64 // address -> ban-until unix seconds, 0 = forever

	threshold int
	duration  time.Duration
	now       func() time.Time
}

// New returns an empty List using threshold misbehavior points to
// trigger an automatic ban lasting duration.
func New(threshold int, duration time.Duration) *List {
	return &List{
		scores:    make(map[string]int),
		bans:      make(map[string]int64),
		threshold: threshold,
		duration:  duration,
		now:       time.Now,
	}
}

// Misbehave implements mnpeer.MisbehaviorSink: it accumulates weight
// onto addr's running score and bans addr once the score crosses the
// configured threshold. The dispatcher never sees the ban decision; it
// only ever calls this method.
func (l *List) Misbehave(addr string, weight int) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	l.scores[addr] += weight
	if l.scores[addr] >= l.threshold {
		log.Warnf("banning %s for %s (misbehavior score %d reached threshold %d)", addr, l.duration, l.scores[addr], l.threshold)
		l.banLocked(addr, l.duration, false)
		delete(l.scores, addr)
	}
}

// IsBanned reports whether addr is currently banned.
func (l *List) IsBanned(addr string) bool {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	return l.isBannedLocked(addr)
}

func (l *List) isBannedLocked(addr string) bool {
	until, ok := l.bans[addr]
	if !ok {
		return false
	}
	if until == 0 {
		return true
	}
	if until <= l.now().Unix() {
		delete(l.bans, addr)
		return false
	}
	return true
}

// SetBan implements the setban RPC command: "add" bans addr for
// banTime seconds (0 meaning the duration given to New, unless absolute is
// true in which case banTime is an absolute Unix deadline and 0 means
// forever); "remove" clears any existing ban.
func (l *List) SetBan(addr string, add bool, banTime int64, absolute bool) {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	if !add {
		delete(l.bans, addr)
		delete(l.scores, addr)
		return
	}

	if absolute {
		l.bans[addr] = banTime
		return
	}

	dur := l.duration
	if banTime > 0 {
		dur = time.Duration(banTime) * time.Second
	}
	l.banLocked(addr, dur, false)
}

func (l *List) banLocked(addr string, dur time.Duration, forever bool) {
	if forever || dur <= 0 {
		l.bans[addr] = 0
		return
	}
	l.bans[addr] = l.now().Add(dur).Unix()
}

// ListBanned returns every currently active ban, pruning expired ones.
func (l *List) ListBanned() []Entry {
	l.mtx.Lock()
	defer l.mtx.Unlock()

	out := make([]Entry, 0, len(l.bans))
	for addr, until := range l.bans {
		if until != 0 && until <= l.now().Unix() {
			delete(l.bans, addr)
			continue
		}
		out = append(out, Entry{Address: addr, BannedUntil: until})
	}
	return out
}

// Clear removes every ban (spec §6 clearbanned). Accumulated
// misbehavior scores not yet over threshold are left untouched.
func (l *List) Clear() {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	l.bans = make(map[string]int64)
}
