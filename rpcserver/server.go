// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcserver

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"sync"

	"github.com/SCL-BSG/BSGold/rpc"
	"github.com/gorilla/websocket"
)

// DefaultWorkers is the worker pool size spec §4.5 names as the
// default bound on concurrently serviced requests.
const DefaultWorkers = 20

// maxRequestBody bounds the size of a single HTTP request body, a
// defensive limit the original's RPC server also applies
// (original_source/src/rpcserver.cpp's MAX_SIZE).
const maxRequestBody = 16 * 1024 * 1024

// Server is the JSON-RPC transport of spec §4.5: an HTTP(S) listener
// in front of the command table in commands.go, gated by AuthConfig
// and bounded by a worker-pool semaphore.
type Server struct {
	ctx  *Context
	auth *AuthConfig
	hub  *Hub

	httpServer *http.Server
	sem        chan struct{}
}

// NewServer returns a Server listening on addr. tlsConfig may be nil
// for a plaintext listener; workers <= 0 defaults to DefaultWorkers.
func NewServer(ctx *Context, auth *AuthConfig, addr string, workers int, tlsConfig *tls.Config) *Server {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	s := &Server{
		ctx:  ctx,
		auth: auth,
		hub:  NewHub(),
		sem:  make(chan struct{}, workers),
	}
	s.httpServer = &http.Server{
		Addr:      addr,
		Handler:   s,
		TLSConfig: tlsConfig,
	}
	return s
}

// Notify pushes note to every connection subscribed via
// notifymasternodelist.
func (s *Server) Notify(note rpc.MasternodeListNotification) {
	s.hub.Broadcast(note)
}

// ListenAndServe starts the listener; it blocks until Shutdown is
// called or a fatal listener error occurs, mirroring net/http's own
// convention (http.ErrServerClosed is not an error).
func (s *Server) ListenAndServe() error {
	log.Infof("RPC server listening on %s", s.httpServer.Addr)
	var err error
	if s.httpServer.TLSConfig != nil {
		err = s.httpServer.ListenAndServeTLS("", "")
	} else {
		err = s.httpServer.ListenAndServe()
	}
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown stops accepting new connections and waits for in-flight
// requests to finish before returning (spec §5, "Cancellation: ...
// handlers already running are allowed to finish; no in-flight
// request is aborted").
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP implements http.Handler: origin check, then Basic auth,
// then request parsing/dispatch.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !s.auth.checkOrigin(r.RemoteAddr) {
		if s.auth.TLS {
			// Under TLS the connection is dropped silently rather than
			// telling an unauthorized caller anything at all (spec
			// §4.5).
			hj, ok := w.(http.Hijacker)
			if ok {
				if conn, _, err := hj.Hijack(); err == nil {
					conn.Close()
					return
				}
			}
		}
		w.WriteHeader(http.StatusForbidden)
		return
	}

	if websocket.IsWebSocketUpgrade(r) {
		s.hub.ServeWS(s.ctx, s.auth, w, r)
		return
	}

	if !s.auth.checkAuth(r) {
		w.Header().Set("WWW-Authenticate", `Basic realm="bsgd RPC"`)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody+1))
	if err != nil {
		s.writeSingleError(w, nil, rpc.NewError(rpc.ErrRPCParseError, "error reading request body"))
		return
	}
	if len(body) > maxRequestBody {
		s.writeSingleError(w, nil, rpc.NewError(rpc.ErrRPCParseError, "request body too large"))
		return
	}

	reqs, batch, err := rpc.ParseRequestBody(body)
	if err != nil {
		s.writeSingleError(w, nil, rpc.NewError(rpc.ErrRPCParseError, "invalid JSON-RPC request"))
		return
	}

	responses := s.dispatchAll(reqs)

	if !batch {
		resp := responses[0]
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusForResponse(resp))
		json.NewEncoder(w).Encode(resp)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(responses)
}

// dispatchAll runs every request in reqs through the worker-pool
// semaphore concurrently and returns their responses in the same
// order, preserving positional correspondence for batched callers.
func (s *Server) dispatchAll(reqs []rpc.Request) []*rpc.Response {
	responses := make([]*rpc.Response, len(reqs))

	var wg sync.WaitGroup
	for i, req := range reqs {
		i, req := i, req
		wg.Add(1)
		s.sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-s.sem }()
			responses[i] = s.dispatchOne(req)
		}()
	}
	wg.Wait()

	return responses
}

// dispatchOne resolves req against the command table, honoring the
// safe-mode gate. Thread-safe handlers run without a lock; the others
// run under ChainLock, plus WalletLock when needsWallet, taken in that
// order (the chain_state_lock -> wallet_lock links of spec §5's
// ordering; registry_lock/peer_vector_lock are acquired further down,
// by the masternode/mnpeer packages themselves).
func (s *Server) dispatchOne(req rpc.Request) *rpc.Response {
	if req.Method == "" {
		return rpc.NewErrorResponse(req.ID, rpc.NewError(rpc.ErrRPCInvalidRequest, "missing method"))
	}

	cmd, ok := commandTable[req.Method]
	if !ok {
		return rpc.NewErrorResponse(req.ID, rpc.NewError(rpc.ErrRPCMethodNotFound, "method not found: "+req.Method))
	}

	if s.ctx.SafeMode() && !cmd.okSafeMode {
		return rpc.NewErrorResponse(req.ID, rpc.NewError(rpc.ErrRPCMisc, "safe mode: "+req.Method+" is disabled"))
	}

	var result interface{}
	var rpcErr *rpc.Error
	if cmd.threadSafe {
		result, rpcErr = cmd.handler(s.ctx, req)
	} else {
		s.ctx.ChainLock.Lock()
		if cmd.needsWallet {
			s.ctx.WalletLock.Lock()
		}
		result, rpcErr = cmd.handler(s.ctx, req)
		if cmd.needsWallet {
			s.ctx.WalletLock.Unlock()
		}
		s.ctx.ChainLock.Unlock()
	}

	if rpcErr != nil {
		return rpc.NewErrorResponse(req.ID, rpcErr)
	}
	return rpc.NewResultResponse(req.ID, result)
}

func (s *Server) writeSingleError(w http.ResponseWriter, id interface{}, rpcErr *rpc.Error) {
	resp := rpc.NewErrorResponse(id, rpcErr)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusForResponse(resp))
	json.NewEncoder(w).Encode(resp)
}

// statusForResponse maps a response's error, if any, to an HTTP
// status per spec §4.5 "Errors": invalid request -> 400, method not
// found -> 404, everything else (including success) -> 200/500.
func statusForResponse(resp *rpc.Response) int {
	if resp.Error == nil {
		return http.StatusOK
	}
	switch {
	case resp.Error.IsInvalidRequest():
		return http.StatusBadRequest
	case resp.Error.IsMethodNotFound():
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
