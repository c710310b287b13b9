// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package banlist

import (
	"testing"
	"time"
)

func TestMisbehaveBansAtThreshold(t *testing.T) {
	l := New(100, time.Hour)

	l.Misbehave("1.2.3.4:9666", 34)
	if l.IsBanned("1.2.3.4:9666") {
		t.Fatal("banned before crossing threshold")
	}

	l.Misbehave("1.2.3.4:9666", 100)
	if !l.IsBanned("1.2.3.4:9666") {
		t.Fatal("not banned after crossing threshold")
	}
}

func TestSetBanAddRemove(t *testing.T) {
	l := New(100, time.Hour)

	l.SetBan("5.6.7.8:9666", true, 0, false)
	if !l.IsBanned("5.6.7.8:9666") {
		t.Fatal("SetBan add did not ban")
	}

	l.SetBan("5.6.7.8:9666", false, 0, false)
	if l.IsBanned("5.6.7.8:9666") {
		t.Fatal("SetBan remove did not unban")
	}
}

func TestSetBanAbsoluteForever(t *testing.T) {
	l := New(100, time.Hour)

	l.SetBan("9.9.9.9:9666", true, 0, true)
	entries := l.ListBanned()
	if len(entries) != 1 || entries[0].BannedUntil != 0 {
		t.Fatalf("ListBanned = %+v, want one forever entry", entries)
	}
}

func TestListBannedPrunesExpired(t *testing.T) {
	l := New(100, time.Hour)
	l.now = func() time.Time { return time.Unix(1000, 0) }

	l.SetBan("1.1.1.1:9666", true, 10, false)
	if len(l.ListBanned()) != 1 {
		t.Fatal("expected one active ban")
	}

	l.now = func() time.Time { return time.Unix(2000, 0) }
	if got := l.ListBanned(); len(got) != 0 {
		t.Fatalf("ListBanned after expiry = %+v, want empty", got)
	}
}

func TestClearRemovesAllBans(t *testing.T) {
	l := New(100, time.Hour)
	l.SetBan("1.1.1.1:9666", true, 0, false)
	l.SetBan("2.2.2.2:9666", true, 0, false)

	l.Clear()
	if got := l.ListBanned(); len(got) != 0 {
		t.Fatalf("ListBanned after Clear = %+v, want empty", got)
	}
}
