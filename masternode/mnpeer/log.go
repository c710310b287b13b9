// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package mnpeer

import "github.com/decred/slog"

// log is the package-level logger the dispatcher uses to report
// malformed or badly signed announces at Warn level and newly admitted
// masternodes at Info level.
var log = slog.Disabled

// UseLogger sets the package-wide logger used by this package.
func UseLogger(logger slog.Logger) {
	log = logger
}
