// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcserver

import "github.com/decred/slog"

// log is the package-level logger for the listener, auth, and
// websocket layers. Disabled until cmd/bsgd wires a backend in with
// UseLogger, matching the teacher's per-package logging convention.
var log = slog.Disabled

// UseLogger sets the package-wide logger used by this package.
func UseLogger(logger slog.Logger) {
	log = logger
}
