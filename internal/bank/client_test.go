package bank

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestAuthorizeSuccess(t *testing.T) {
	var received Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/payments" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode request: %v", err)
		}
		json.NewEncoder(w).Encode(Response{Authorized: true, AuthorizationCode: "auth-123"})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, 0)
	verdict, err := client.Authorize(context.Background(), Request{
		CardNumber: "12345678901234",
		ExpiryDate: "04/2030",
		Currency:   "GBP",
		Amount:     100,
		CVV:        "123",
	})
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}

	if !verdict.Authorized || verdict.AuthorizationCode != "auth-123" {
		t.Fatalf("unexpected verdict: %+v", verdict)
	}
	if received.CardNumber != "12345678901234" || received.ExpiryDate != "04/2030" || received.CVV != "123" {
		t.Fatalf("unexpected wire request: %+v", received)
	}
}

func TestAuthorizeDeclinedIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(Response{Authorized: false})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, 0)
	verdict, err := client.Authorize(context.Background(), Request{})
	if err != nil {
		t.Fatalf("decline should not error: %v", err)
	}
	if verdict.Authorized {
		t.Fatal("expected authorized=false")
	}
}

func TestAuthorizeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, 0)
	if _, err := client.Authorize(context.Background(), Request{}); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestAuthorizeConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	client := NewHTTPClient(srv.URL, 0)
	if _, err := client.Authorize(context.Background(), Request{}); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestAuthorizeTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		json.NewEncoder(w).Encode(Response{Authorized: true})
	}))
	defer srv.Close()

	client := NewHTTPClient(srv.URL, 20*time.Millisecond)
	if _, err := client.Authorize(context.Background(), Request{}); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
