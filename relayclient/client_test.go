package relayclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/xiaot623/embeddemo/domain"
)

func TestGenerateSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != generateSessionPath {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Fatalf("client must not send credentials")
		}
		var req domain.GenerateSessionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if req.DeploymentID != 32 || req.ExternalID != "u1" {
			t.Fatalf("unexpected request: %+v", req)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"sessionId":"abc123"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	session, err := client.GenerateSession(context.Background(), &domain.GenerateSessionRequest{DeploymentID: 32, ExternalID: "u1"})
	if err != nil {
		t.Fatalf("GenerateSession failed: %v", err)
	}
	if session.SessionID != "abc123" {
		t.Fatalf("unexpected session: %+v", session)
	}
}

func TestGenerateSessionUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"message":"unknown deployment"}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.GenerateSession(context.Background(), &domain.GenerateSessionRequest{DeploymentID: 1})

	var upErr *UpstreamError
	if !errors.As(err, &upErr) {
		t.Fatalf("expected UpstreamError, got %v", err)
	}
	if upErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("unexpected status: %d", upErr.StatusCode)
	}
	if err.Error() != `{"message":"unknown deployment"}` {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestGenerateSessionEmptyErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.GenerateSession(context.Background(), &domain.GenerateSessionRequest{DeploymentID: 1})
	if err == nil || err.Error() != "session request failed with status 502" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGenerateSessionMissingSessionID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.GenerateSession(context.Background(), &domain.GenerateSessionRequest{DeploymentID: 1})
	if !errors.Is(err, ErrMissingSessionID) {
		t.Fatalf("expected ErrMissingSessionID, got %v", err)
	}
}
