package httputil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/graphwalk/pkg/errors"
)

func init() {
	retryDelay = time.Millisecond
}

func TestIsURL(t *testing.T) {
	for loc, want := range map[string]bool{
		"https://example.com/g.json": true,
		"http://localhost:8080/g":    true,
		"graph.json":                 false,
		"/tmp/http.json":             false,
		"ftp://example.com/g.json":   false,
	} {
		if got := IsURL(loc); got != want {
			t.Errorf("IsURL(%q) = %v, want %v", loc, got, want)
		}
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("User-Agent"), "graphwalk/") {
			t.Errorf("User-Agent = %q", r.Header.Get("User-Agent"))
		}
		_, _ = w.Write([]byte(`{"nodes":[]}`))
	}))
	defer srv.Close()

	data, err := Fetch(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != `{"nodes":[]}` {
		t.Errorf("body = %q", data)
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	data, err := Fetch(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if string(data) != "ok" || calls.Load() != 3 {
		t.Errorf("body = %q after %d calls", data, calls.Load())
	}
}

func TestFetchErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		code   errors.Code
		calls  int32
	}{
		{"not found", http.StatusNotFound, errors.ErrCodeFileNotFound, 1},
		{"forbidden", http.StatusForbidden, errors.ErrCodeNetwork, 1},
		{"server down", http.StatusBadGateway, errors.ErrCodeNetwork, fetchAttempts},
		{"rate limited", http.StatusTooManyRequests, errors.ErrCodeNetwork, fetchAttempts},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			_, err := Fetch(context.Background(), srv.Client(), srv.URL)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want %s", err, tt.code)
			}
			if isRetryable(err) {
				t.Error("returned error should be unwrapped from RetryableError")
			}
			if calls.Load() != tt.calls {
				t.Errorf("calls = %d, want %d", calls.Load(), tt.calls)
			}
		})
	}
}

func TestFetchBodyLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, MaxBodySize+1))
	}))
	defer srv.Close()

	_, err := Fetch(context.Background(), srv.Client(), srv.URL)
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v, want INVALID_INPUT", err)
	}
}
