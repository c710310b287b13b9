// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package masternode

import "github.com/decred/slog"

// log is the package-level logger used by Sweep to report evicted
// records at Debug level (SPEC_FULL.md §3.3). It is disabled by
// default; cmd/bsgd wires in a real backend at startup via UseLogger,
// matching the teacher's per-package logging convention.
var log = slog.Disabled

// UseLogger sets the package-wide logger used by this package.
// Calling this function is safe even before the package is used; it
// simply has no effect until SetLevel is also called, or the supplied
// logger is itself enabled.
func UseLogger(logger slog.Logger) {
	log = logger
}
