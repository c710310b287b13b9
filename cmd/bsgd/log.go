// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/decred/slog"
	"github.com/jrick/logrotate/rotator"

	"github.com/SCL-BSG/BSGold/internal/banlist"
	"github.com/SCL-BSG/BSGold/masternode"
	"github.com/SCL-BSG/BSGold/masternode/mnpeer"
	"github.com/SCL-BSG/BSGold/rpcserver"
)

// logWriter wraps a rotating file handle and stdout, so every log
// line goes to both, matching the teacher's logWriter idiom.
type logWriter struct {
	file *rotator.Rotator
}

func (w logWriter) Write(p []byte) (int, error) {
	os.Stdout.Write(p)
	return w.file.Write(p)
}

var (
	backendLog *slog.Backend
	logRotator *rotator.Rotator

	log     = slog.Disabled
	mstrLog = slog.Disabled
	mnpLog  = slog.Disabled
	rpcsLog = slog.Disabled
	banLog  = slog.Disabled
)

// initLogRotator initializes the logging rotator to write to logFile
// and create roll files in the same directory. It must be called
// before the package-global log rotator variables are used.
func initLogRotator(logFile string) error {
	logDir, _ := filepath.Split(logFile)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	r, err := rotator.New(logFile, 10*1024, false, 3)
	if err != nil {
		return fmt.Errorf("failed to create file rotator: %w", err)
	}

	logRotator = r
	backendLog = slog.NewBackend(logWriter{file: r})
	return nil
}

// useLogger returns a new logger for subsystemID with level
// initialized from debugLevel.
func useLogger(subsystemID string, debugLevel string) slog.Logger {
	l := backendLog.Logger(subsystemID)
	level, ok := slog.LevelFromString(debugLevel)
	if !ok {
		level = slog.LevelInfo
	}
	l.SetLevel(level)
	return l
}

// initLoggers wires a real logger into every package that exposes a
// UseLogger hook (the teacher's per-package logging convention), at
// the debug level cfg.DebugLevel names.
func initLoggers(debugLevel string) {
	log = useLogger("BSGD", debugLevel)
	mstrLog = useLogger("MNRG", debugLevel)
	mnpLog = useLogger("MNPR", debugLevel)
	rpcsLog = useLogger("RPCS", debugLevel)
	banLog = useLogger("BANL", debugLevel)

	masternode.UseLogger(mstrLog)
	mnpeer.UseLogger(mnpLog)
	rpcserver.UseLogger(rpcsLog)
	banlist.UseLogger(banLog)
}
