package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"pulsechat/internal/core"
)

func doJSON(t *testing.T, server *http.Server, method, path, identity, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if identity != "" {
		req.Header.Set(IdentityHeader, identity)
	}

	resp := httptest.NewRecorder()
	server.Handler.ServeHTTP(resp, req)
	return resp
}

func TestPing(t *testing.T) {
	server, _ := newTestServer(t, core.Options{})

	resp := doJSON(t, server, http.MethodGet, "/ping", "", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body EchoResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body.Response != "pong" {
		t.Errorf("expected pong, got %q", body.Response)
	}
}

func TestEcho(t *testing.T) {
	server, _ := newTestServer(t, core.Options{})

	resp := doJSON(t, server, http.MethodPost, "/echo", "", `{"text":"hello"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body EchoResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body.Response != "hello" {
		t.Errorf("expected hello, got %q", body.Response)
	}
}

func TestLogin(t *testing.T) {
	server, engine := newTestServer(t, core.Options{})

	// Valid login.
	resp := doJSON(t, server, http.MethodPost, "/login", "", `{"username":"alice"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if !engine.IsActive("alice") {
		t.Error("expected alice to be active after login")
	}

	// Missing username.
	resp = doJSON(t, server, http.MethodPost, "/login", "", `{}`)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", resp.Code)
	}

	// Duplicate login.
	resp = doJSON(t, server, http.MethodPost, "/login", "", `{"username":"alice"}`)
	if resp.Code != http.StatusBadRequest {
		t.Errorf("expected status 400 for duplicate, got %d", resp.Code)
	}
}

func TestLogout(t *testing.T) {
	server, engine := newTestServer(t, core.Options{})

	doJSON(t, server, http.MethodPost, "/login", "", `{"username":"alice"}`)

	resp := doJSON(t, server, http.MethodPost, "/logout", "alice", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if engine.IsActive("alice") {
		t.Error("expected alice to be inactive after logout")
	}

	// Logging out again is unauthenticated.
	resp = doJSON(t, server, http.MethodPost, "/logout", "alice", "")
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", resp.Code)
	}
}

func TestListUsers(t *testing.T) {
	server, _ := newTestServer(t, core.Options{})

	doJSON(t, server, http.MethodPost, "/login", "", `{"username":"alice"}`)
	doJSON(t, server, http.MethodPost, "/login", "", `{"username":"bob"}`)

	resp := doJSON(t, server, http.MethodGet, "/users", "alice", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", resp.Code)
	}

	var body UsersResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if len(body.Users) != 2 {
		t.Errorf("expected 2 users, got %d", len(body.Users))
	}

	// No identity header.
	resp = doJSON(t, server, http.MethodGet, "/users", "", "")
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", resp.Code)
	}

	// Unknown identity header.
	resp = doJSON(t, server, http.MethodGet, "/users", "mallory", "")
	if resp.Code != http.StatusUnauthorized {
		t.Errorf("expected status 401 for unknown identity, got %d", resp.Code)
	}
}
