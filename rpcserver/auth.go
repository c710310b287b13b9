// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcserver

import (
	"crypto/sha256"
	"crypto/subtle"
	"net"
	"net/http"
	"time"
)

// shortPasswordDelay is the extra delay imposed on a failed auth
// attempt when the configured password is shorter than 20 characters,
// per spec §4.5 "Auth", to blunt online brute force against an
// operator who chose a weak rpc_password.
const shortPasswordDelay = 250 * time.Millisecond
const shortPasswordThreshold = 20

// AuthConfig is the listener's authentication and origin policy,
// loaded once from cmd/bsgd's configuration and shared read-only
// across every accepted connection.
type AuthConfig struct {
	Username string
	Password string

	// AllowedNets is the CIDR allow-list (spec §4.5 "Origin check");
	// loopback is always implicitly allowed regardless of this list.
	AllowedNets []*net.IPNet

	// TLS reports whether the listener is serving HTTPS. It changes
	// how an origin violation is handled: plaintext responds 403,
	// TLS drops the connection silently (spec §4.5).
	TLS bool
}

// checkAuth validates r's HTTP Basic credentials against cfg. A
// too-short configured password adds shortPasswordDelay to a failed
// attempt's response time.
func (cfg *AuthConfig) checkAuth(r *http.Request) bool {
	user, pass, ok := r.BasicAuth()
	if !ok {
		cfg.maybeDelay()
		return false
	}

	userHash := sha256.Sum256([]byte(user))
	cfgUserHash := sha256.Sum256([]byte(cfg.Username))
	passHash := sha256.Sum256([]byte(pass))
	cfgPassHash := sha256.Sum256([]byte(cfg.Password))

	userMatch := subtle.ConstantTimeCompare(userHash[:], cfgUserHash[:]) == 1
	passMatch := subtle.ConstantTimeCompare(passHash[:], cfgPassHash[:]) == 1
	if userMatch && passMatch {
		return true
	}

	cfg.maybeDelay()
	return false
}

func (cfg *AuthConfig) maybeDelay() {
	if len(cfg.Password) < shortPasswordThreshold {
		time.Sleep(shortPasswordDelay)
	}
}

// checkOrigin reports whether remoteAddr (host:port, as reported by
// http.Request.RemoteAddr) is permitted to reach the RPC surface:
// loopback is always allowed, otherwise the address must fall within
// one of cfg.AllowedNets.
func (cfg *AuthConfig) checkOrigin(remoteAddr string) bool {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		host = remoteAddr
	}
	ip := net.ParseIP(host)
	if ip == nil {
		return false
	}
	if ip.IsLoopback() {
		return true
	}
	for _, n := range cfg.AllowedNets {
		if n.Contains(ip) {
			return true
		}
	}
	return false
}
