// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"crypto/tls"
	"fmt"
)

// loadServerTLSConfig loads the RPC server's certificate/key pair
// (spec §4.5, "TLS is optional but recommended"). certgen-style
// self-signed certificate generation is out of scope for this core;
// an operator enabling RPC TLS supplies cert/key files the way any
// other HTTPS service would.
func loadServerTLSConfig(certFile, keyFile string) (*tls.Config, error) {
	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		return nil, fmt.Errorf("unable to load RPC certificate pair: %w", err)
	}
	return &tls.Config{
		Certificates: []tls.Certificate{cert},
		MinVersion:   tls.VersionTLS12,
	}, nil
}
