// Copyright (c) 2018 The ExchangeCoin team
// Copyright (c) 2013-2016 The btcsuite developers
// Copyright (c) 2015-2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"crypto/tls"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/SCL-BSG/BSGold/dcrutil"
	"github.com/SCL-BSG/BSGold/internal/banlist"
	"github.com/SCL-BSG/BSGold/masternode"
	"github.com/SCL-BSG/BSGold/masternode/mnpeer"
	"github.com/SCL-BSG/BSGold/rpc"
	"github.com/SCL-BSG/BSGold/rpcserver"
	"github.com/SCL-BSG/BSGold/wire"
)

// snapshotInterval is how often the running registry is flushed to
// disk between the load-at-startup and save-at-shutdown snapshots
// (spec §4.4).
const snapshotInterval = 15 * time.Minute

// sweepInterval is how often the registry re-evaluates every record's
// lifecycle state against the chain view (spec §4.1).
const sweepInterval = 1 * time.Minute

func bsgdMain() error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}

	if err := initLogRotator(filepath.Join(cfg.LogDir, defaultLogFilename)); err != nil {
		return err
	}
	initLoggers(cfg.DebugLevel)

	params := activeNetParams
	log.Infof("bsgd starting on %s", netName(params))

	registry := masternode.NewRegistry(
		params.MinProtocolVersion,
		params.HeartbeatExpiry,
		params.MinPingInterval,
		params.DsegCooldown,
	)
	chain := masternode.NewMemChainView()
	sigs, err := masternode.NewSigCache(10000)
	if err != nil {
		return fmt.Errorf("unable to create signature cache: %w", err)
	}
	bans := banlist.New(banlist.DefaultBanThreshold, banlist.DefaultBanDuration)

	snapshotPath := filepath.Join(cfg.DataDir, "mncache.dat")
	// Persistence is advisory: any Load failure (including a first run
	// with no snapshot file yet) just starts the registry empty.
	if err := masternode.Load(snapshotPath, params.SnapshotMagic, params.Net, registry, chain, sigs); err != nil {
		log.Debugf("starting with an empty masternode registry: %v", err)
	}

	// servers is populated below, once every configured RPC listener is
	// built; dispatcherCfg.Notify closes over it (guarded by serversMu)
	// so a registry state transition observed during gossip processing
	// still reaches every listener's websocket subscribers regardless
	// of how the listener startup and peer-I/O goroutines interleave.
	var serversMu sync.Mutex
	var servers []*rpcserver.Server

	dispatcherCfg := mnpeer.Config{
		MinProtocol:          params.MinProtocolVersion,
		MinConfirmations:     params.MinConfirmations,
		MasternodeCollateral: params.MasternodeCollateral,
		EpochFloor:           params.EpochFloor,
		MinAnnounceInterval:  params.MinAnnounceInterval,
		HeartbeatExpiry:      params.HeartbeatExpiry,
		Notify: func(rec masternode.Record) {
			note := rpc.MasternodeListNotification{
				Collateral: rec.Collateral.String(),
				State:      rec.State.String(),
				Endpoint:   rec.Endpoint.String(),
			}
			serversMu.Lock()
			defer serversMu.Unlock()
			for _, srv := range servers {
				srv.Notify(note)
			}
		},
	}
	if cfg.OperatorPrivKey != "" {
		wif, err := dcrutil.DecodeWIF(cfg.OperatorPrivKey)
		if err != nil {
			return fmt.Errorf("invalid operatorkey: %w", err)
		}
		if !wif.IsForNetID(params.PrivateKeyID) {
			return fmt.Errorf("operatorkey is not valid for %s", netName(params))
		}
		dispatcherCfg.OperatorPubKey = wif.PubKey()
		dispatcherCfg.ActivateLocal = func(op wire.OutPoint) {
			log.Infof("local masternode %s activated", op)
		}
	}
	dispatcher := mnpeer.New(dispatcherCfg, registry, chain, sigs, bans, func() int64 { return time.Now().Unix() })

	network := rpcserver.NewMemNetworkView()
	rpcCtx := rpcserver.NewContext(params.Params, registry, chain, dispatcher, network, bans)

	auth := &rpcserver.AuthConfig{
		Username:    cfg.RPCUser,
		Password:    cfg.RPCPass,
		AllowedNets: cfg.allowedRPCNets,
		TLS:         !cfg.DisableTLS,
	}

	var tlsConfig *tls.Config
	if !cfg.DisableTLS {
		tlsConfig, err = loadServerTLSConfig(cfg.RPCCert, cfg.RPCKey)
		if err != nil {
			return fmt.Errorf("unable to load RPC TLS credentials: %w", err)
		}
	}

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	shutdownCh := make(chan struct{})
	var shutdownOnce sync.Once
	rpcCtx.Shutdown = func() {
		shutdownOnce.Do(func() { close(shutdownCh) })
	}

	for _, listenAddr := range cfg.RPCListeners {
		srv := rpcserver.NewServer(rpcCtx, auth, listenAddr, cfg.RPCMaxClients, tlsConfig)
		serversMu.Lock()
		servers = append(servers, srv)
		serversMu.Unlock()
		go func(s *rpcserver.Server) {
			if err := s.ListenAndServe(); err != nil {
				log.Errorf("RPC listener error: %v", err)
			}
		}(srv)
	}

	sweepTicker := time.NewTicker(sweepInterval)
	snapshotTicker := time.NewTicker(snapshotInterval)
	defer sweepTicker.Stop()
	defer snapshotTicker.Stop()

loop:
	for {
		select {
		case <-sweepTicker.C:
			registry.Sweep(chain, sigs)
		case <-snapshotTicker.C:
			if err := masternode.Save(snapshotPath, params.SnapshotMagic, params.Net, registry.Snapshot()); err != nil {
				log.Warnf("unable to save masternode snapshot: %v", err)
			}
		case <-interrupt:
			log.Info("received interrupt, shutting down")
			break loop
		case <-shutdownCh:
			log.Info("stop requested over RPC, shutting down")
			break loop
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	for _, srv := range servers {
		srv.Shutdown(shutdownCtx)
	}

	if err := masternode.Save(snapshotPath, params.SnapshotMagic, params.Net, registry.Snapshot()); err != nil {
		log.Warnf("unable to save masternode snapshot on shutdown: %v", err)
	}
	return nil
}

func main() {
	if err := bsgdMain(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
