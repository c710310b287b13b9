// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net"
	"os"
	"path/filepath"

	flags "github.com/jessevdk/go-flags"

	"github.com/SCL-BSG/BSGold/rpcserver"
)

const (
	defaultConfigFilename = "bsgd.conf"
	defaultDataDirname    = "data"
	defaultLogLevel       = "info"
	defaultLogDirname     = "logs"
	defaultLogFilename    = "bsgd.log"
)

var (
	bsgdHomeDir    = AppDataDir("bsgd", false)
	defaultConfigFile = filepath.Join(bsgdHomeDir, defaultConfigFilename)
	defaultDataDir    = filepath.Join(bsgdHomeDir, defaultDataDirname)
	defaultLogDir     = filepath.Join(bsgdHomeDir, defaultLogDirname)
)

// config defines the configuration options for bsgd, loaded from the
// command line and an optional ini-style config file, mirroring the
// teacher's flags-then-ini-then-flags-again loading convention so
// command line arguments always take precedence over the file.
type config struct {
	ConfigFile string `short:"C" long:"configfile" description:"Path to configuration file"`
	DataDir    string `short:"b" long:"datadir" description:"Directory to store snapshot data"`
	LogDir     string `long:"logdir" description:"Directory to log output"`
	DebugLevel string `short:"d" long:"debuglevel" description:"Logging level {trace, debug, info, warn, error, critical}"`

	TestNet bool `long:"testnet" description:"Use the test network"`
	SimNet  bool `long:"simnet" description:"Use the simulation test network"`
	RegNet  bool `long:"regnet" description:"Use the regression test network"`

	RPCListeners []string `long:"rpclisten" description:"Add an interface/port to listen for RPC connections (default port is network-specific)"`
	RPCUser      string   `long:"rpcuser" description:"Username for RPC connections"`
	RPCPass      string   `long:"rpcpass" description:"Password for RPC connections"`
	RPCMaxClients int     `long:"rpcmaxclients" description:"Max number of concurrent RPC worker goroutines"`
	RPCCert       string  `long:"rpccert" description:"File containing the certificate file"`
	RPCKey        string  `long:"rpckey" description:"File containing the certificate key"`
	DisableTLS    bool    `long:"norpctls" description:"Disable TLS for the RPC server"`
	RPCAllowNets  []string `long:"rpccidr" description:"CIDR network allowed to connect to the RPC server, in addition to loopback"`

	OperatorPrivKey string `long:"operatorkey" description:"WIF-encoded operator private key this node announces masternodes under"`

	DNSSeed []string `long:"dnsseed" description:"Additional DNS seed to use for cold-start peer discovery"`

	allowedRPCNets []*net.IPNet
}

// defaultConfig returns a config populated with defaults matching the
// teacher's own default-then-override loading order.
func defaultConfig() *config {
	return &config{
		ConfigFile:    defaultConfigFile,
		DataDir:       defaultDataDir,
		LogDir:        defaultLogDir,
		DebugLevel:    defaultLogLevel,
		RPCMaxClients: rpcserver.DefaultWorkers,
	}
}

// parseAllowedNets parses every rpccidr value into a *net.IPNet,
// rejecting the whole set on the first malformed entry.
func parseAllowedNets(cidrs []string) ([]*net.IPNet, error) {
	nets := make([]*net.IPNet, 0, len(cidrs))
	for _, cidr := range cidrs {
		_, ipnet, err := net.ParseCIDR(cidr)
		if err != nil {
			return nil, fmt.Errorf("invalid rpccidr %q: %w", cidr, err)
		}
		nets = append(nets, ipnet)
	}
	return nets, nil
}

// loadConfig reads command-line arguments twice (once to discover an
// overridden -C configfile, once more after the file is parsed) so
// that explicit flags always win over the file, per the teacher's own
// config-loading idiom.
func loadConfig() (*config, []string, error) {
	cfg := defaultConfig()

	preCfg := *cfg
	preParser := flags.NewParser(&preCfg, flags.Default)
	_, err := preParser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return nil, nil, err
		}
		return nil, nil, err
	}

	if preCfg.ConfigFile != "" {
		cfg.ConfigFile = preCfg.ConfigFile
	}

	if _, err := os.Stat(cfg.ConfigFile); err == nil {
		parser := flags.NewParser(cfg, flags.Default)
		if err := flags.NewIniParser(parser).ParseFile(cfg.ConfigFile); err != nil {
			if _, ok := err.(*os.PathError); !ok {
				return nil, nil, fmt.Errorf("error parsing config file: %w", err)
			}
		}
	}

	parser := flags.NewParser(cfg, flags.Default)
	remainingArgs, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			return nil, nil, err
		}
		return nil, nil, err
	}

	numNets := 0
	if cfg.TestNet {
		numNets++
		activeNetParams = &testNetParams
	}
	if cfg.SimNet {
		numNets++
		activeNetParams = &simNetParams
	}
	if cfg.RegNet {
		numNets++
		activeNetParams = &regNetParams
	}
	if numNets > 1 {
		return nil, nil, fmt.Errorf("testnet, simnet, and regnet cannot be used together")
	}

	// A daemon with no RPC credentials has no way to authenticate an
	// operator and must refuse to start rather than bind an
	// unauthenticated RPC surface (spec §4.5, "Auth").
	if cfg.RPCUser == "" || cfg.RPCPass == "" {
		return nil, nil, fmt.Errorf("rpcuser and rpcpass must both be set")
	}

	if len(cfg.RPCListeners) == 0 {
		cfg.RPCListeners = []string{net.JoinHostPort("127.0.0.1", activeNetParams.rpcPort)}
	}

	allowedNets, err := parseAllowedNets(cfg.RPCAllowNets)
	if err != nil {
		return nil, nil, err
	}
	cfg.allowedRPCNets = allowedNets

	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, nil, fmt.Errorf("unable to create data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.LogDir, 0700); err != nil {
		return nil, nil, fmt.Errorf("unable to create log directory: %w", err)
	}

	return cfg, remainingArgs, nil
}
