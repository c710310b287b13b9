// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcserver

import (
	"net/http"
	"sync"

	"github.com/SCL-BSG/BSGold/rpc"
	"github.com/gorilla/websocket"
)

// wsUpgrader mirrors the teacher's websocket upgrade configuration:
// origin checking is already handled by AuthConfig.checkOrigin before
// the upgrade is attempted, so the upgrader itself accepts any origin
// that reached this far.
var wsUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans registry state-transition notifications out to every
// websocket connection that issued notifymasternodelist (spec
// SPEC_FULL.md §3.7), and drops a connection from the fanout once it
// issues stopnotifymasternodelist or disconnects.
type Hub struct {
	mtx   sync.Mutex
	conns map[*websocket.Conn]bool
}

// NewHub returns an empty Hub.
func NewHub() *Hub {
	return &Hub{conns: make(map[*websocket.Conn]bool)}
}

// ServeWS upgrades r to a websocket connection and services
// notifymasternodelist/stopnotifymasternodelist commands sent over
// it until the connection closes.
func (h *Hub) ServeWS(ctx *Context, auth *AuthConfig, w http.ResponseWriter, r *http.Request) {
	if !auth.checkOrigin(r.RemoteAddr) {
		w.WriteHeader(http.StatusForbidden)
		return
	}
	if !auth.checkAuth(r) {
		w.Header().Set("WWW-Authenticate", `Basic realm="bsgd RPC"`)
		w.WriteHeader(http.StatusUnauthorized)
		return
	}

	conn, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warnf("websocket upgrade from %s failed: %v", r.RemoteAddr, err)
		return
	}
	defer h.unsubscribe(conn)
	defer conn.Close()

	for {
		var req rpc.Request
		if err := conn.ReadJSON(&req); err != nil {
			return
		}
		switch req.Method {
		case "notifymasternodelist":
			h.subscribe(conn)
			conn.WriteJSON(rpc.NewResultResponse(req.ID, nil))
		case "stopnotifymasternodelist":
			h.unsubscribe(conn)
			conn.WriteJSON(rpc.NewResultResponse(req.ID, nil))
		default:
			conn.WriteJSON(rpc.NewErrorResponse(req.ID, rpc.NewError(rpc.ErrRPCMethodNotFound, "method not found: "+req.Method)))
		}
	}
}

func (h *Hub) subscribe(conn *websocket.Conn) {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	h.conns[conn] = true
}

func (h *Hub) unsubscribe(conn *websocket.Conn) {
	h.mtx.Lock()
	defer h.mtx.Unlock()
	delete(h.conns, conn)
}

// Broadcast pushes note to every subscribed connection, dropping any
// connection whose write fails (a closed or stalled peer).
func (h *Hub) Broadcast(note rpc.MasternodeListNotification) {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	for conn := range h.conns {
		if err := conn.WriteJSON(note); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}
