// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"testing"

	"github.com/SCL-BSG/BSGold/rpcserver"
)

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.DebugLevel != defaultLogLevel {
		t.Errorf("DebugLevel = %q, want %q", cfg.DebugLevel, defaultLogLevel)
	}
	if cfg.RPCMaxClients != rpcserver.DefaultWorkers {
		t.Errorf("RPCMaxClients = %d, want %d", cfg.RPCMaxClients, rpcserver.DefaultWorkers)
	}
	if cfg.ConfigFile == "" || cfg.DataDir == "" || cfg.LogDir == "" {
		t.Error("defaultConfig left a directory/file default empty")
	}
}

func TestParseAllowedNets(t *testing.T) {
	tests := []struct {
		name    string
		cidrs   []string
		wantErr bool
		wantLen int
	}{
		{"empty", nil, false, 0},
		{"single v4", []string{"10.0.0.0/8"}, false, 1},
		{"multiple", []string{"10.0.0.0/8", "192.168.1.0/24"}, false, 2},
		{"malformed", []string{"not-a-cidr"}, true, 0},
		{"bare ip no mask", []string{"10.0.0.1"}, true, 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := parseAllowedNets(test.cidrs)
			if (err != nil) != test.wantErr {
				t.Fatalf("parseAllowedNets(%v) error = %v, wantErr %v", test.cidrs, err, test.wantErr)
			}
			if err == nil && len(got) != test.wantLen {
				t.Errorf("parseAllowedNets(%v) returned %d nets, want %d", test.cidrs, len(got), test.wantLen)
			}
		})
	}
}

func TestAppDataDirNotEmpty(t *testing.T) {
	dir := AppDataDir("bsgd-test", false)
	if dir == "" {
		t.Fatal("AppDataDir returned an empty path")
	}
}
