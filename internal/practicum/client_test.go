package practicum

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hwbot/pkg/logx"
)

func newTestClient(endpoint string) *Client {
	return New(Config{Endpoint: endpoint, Token: "secret", Timeout: 2 * time.Second}, logx.Nop())
}

func TestFetchSuccess(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "OAuth secret" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.URL.Query().Get("from_date"); got != "1681635226" {
			t.Errorf("from_date = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"homeworks":[{"homework_name":"proj1","status":"approved"}],"current_date":1700000000}`))
	}))
	defer srv.Close()

	doc, err := newTestClient(srv.URL).Fetch(context.Background(), 1681635226)
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}
	hws, err := Homeworks(doc)
	if err != nil {
		t.Fatalf("Homeworks error: %v", err)
	}
	if len(hws) != 1 {
		t.Fatalf("len(homeworks) = %d, want 1", len(hws))
	}
	cur, err := CurrentDate(doc)
	if err != nil {
		t.Fatalf("CurrentDate error: %v", err)
	}
	if cur != 1700000000 {
		t.Fatalf("current_date = %d, want 1700000000", cur)
	}
}

func TestFetchUnexpectedStatus(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background(), 0)
	if KindOf(err) != KindUnexpectedStatus {
		t.Fatalf("KindOf = %v, want KindUnexpectedStatus (err=%v)", KindOf(err), err)
	}
	var pe *Error
	if !errors.As(err, &pe) || pe.Status != http.StatusServiceUnavailable {
		t.Fatalf("expected HTTP 503 in error, got %+v", pe)
	}
}

func TestFetchMalformedResponse(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"homeworks": [`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background(), 0)
	if KindOf(err) != KindMalformedResponse {
		t.Fatalf("KindOf = %v, want KindMalformedResponse (err=%v)", KindOf(err), err)
	}
}

func TestFetchServerRejected(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":"not_authenticated","error":"credentials not provided"}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background(), 0)
	if KindOf(err) != KindServerRejected {
		t.Fatalf("KindOf = %v, want KindServerRejected (err=%v)", KindOf(err), err)
	}
	var pe *Error
	if !errors.As(err, &pe) || pe.Code != "not_authenticated" {
		t.Fatalf("expected rejection code in error, got %+v", pe)
	}
}

func TestFetchInvalidCursorSkipsNetwork(t *testing.T) {
	t.Parallel()
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background(), -1)
	if KindOf(err) != KindInvalidCursor {
		t.Fatalf("KindOf = %v, want KindInvalidCursor (err=%v)", KindOf(err), err)
	}
	if hits.Load() != 0 {
		t.Fatalf("expected no network call, got %d", hits.Load())
	}
}

func TestFetchConnectionFailure(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing is listening anymore

	_, err := newTestClient(srv.URL).Fetch(context.Background(), 0)
	if KindOf(err) != KindConnection {
		t.Fatalf("KindOf = %v, want KindConnection (err=%v)", KindOf(err), err)
	}
}
