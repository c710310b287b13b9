// Copyright (c) 2018 The ExchangeCoin team
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpcserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SCL-BSG/BSGold/rpc"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	ctx, _, _ := testContext(t)
	auth := &AuthConfig{Username: "user", Password: "averylongpasswordindeed12345"}
	return NewServer(ctx, auth, "127.0.0.1:0", 4, nil)
}

func doRequest(t *testing.T, s *Server, body []byte, user, pass string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	req.RemoteAddr = "127.0.0.1:54321"
	if user != "" {
		req.SetBasicAuth(user, pass)
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestServeHTTPRejectsMissingAuth(t *testing.T) {
	s := testServer(t)
	rec := doRequest(t, s, []byte(`{"id":1,"method":"help","params":[]}`), "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", rec.Code)
	}
}

func TestServeHTTPRejectsWrongCredentials(t *testing.T) {
	s := testServer(t)
	rec := doRequest(t, s, []byte(`{"id":1,"method":"help","params":[]}`), "user", "wrong")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", rec.Code)
	}
}

func TestServeHTTPSingleRequest(t *testing.T) {
	s := testServer(t)
	rec := doRequest(t, s, []byte(`{"id":7,"method":"getconnectioncount","params":[]}`), "user", "averylongpasswordindeed12345")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp rpc.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != nil {
		t.Fatalf("unexpected error: %v", resp.Error)
	}
}

func TestServeHTTPUnknownMethod(t *testing.T) {
	s := testServer(t)
	rec := doRequest(t, s, []byte(`{"id":1,"method":"nosuchmethod","params":[]}`), "user", "averylongpasswordindeed12345")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("got status %d, want 404", rec.Code)
	}
}

func TestServeHTTPBatch(t *testing.T) {
	s := testServer(t)
	body := []byte(`[{"id":1,"method":"getconnectioncount","params":[]},{"id":2,"method":"ping","params":[]}]`)
	rec := doRequest(t, s, body, "user", "averylongpasswordindeed12345")
	if rec.Code != http.StatusOK {
		t.Fatalf("got status %d, want 200", rec.Code)
	}
	var resps []rpc.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resps); err != nil {
		t.Fatalf("decode batch response: %v", err)
	}
	if len(resps) != 2 {
		t.Fatalf("got %d responses, want 2", len(resps))
	}
}

func TestServeHTTPSafeModeBlocksUnsafeCommand(t *testing.T) {
	s := testServer(t)
	s.ctx.SetSafeMode(true)
	rec := doRequest(t, s, []byte(`{"id":1,"method":"getblock","params":["x"]}`), "user", "averylongpasswordindeed12345")
	var resp rpc.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error == nil {
		t.Fatalf("expected safe-mode error")
	}
}

func TestCheckOriginAllowsLoopback(t *testing.T) {
	auth := &AuthConfig{}
	if !auth.checkOrigin("127.0.0.1:1234") {
		t.Fatalf("loopback should always be allowed")
	}
}
