package goproxy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kojioka/kojioka-go/pkg/cache"
	"github.com/kojioka/kojioka-go/pkg/errors"
	"github.com/kojioka/kojioka-go/pkg/integrations"
)

func TestClient_LatestVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/github.com/kojioka/kojioka-go/@latest":
			json.NewEncoder(w).Encode(latestResponse{Version: "v1.2.0", Time: "2026-01-02T15:04:05Z"})
		case "/github.com/!kojioka/!upper/@latest":
			json.NewEncoder(w).Encode(latestResponse{Version: "v0.1.0"})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := testClient(t, server.URL, cache.NewNullCache())

	tests := []struct {
		mod  string
		want string
	}{
		{"github.com/kojioka/kojioka-go", "v1.2.0"},
		{"  github.com/kojioka/kojioka-go  ", "v1.2.0"},
		{"github.com/Kojioka/Upper", "v0.1.0"},
	}
	for _, tt := range tests {
		t.Run(tt.mod, func(t *testing.T) {
			got, err := c.LatestVersion(context.Background(), tt.mod)
			if err != nil {
				t.Fatalf("LatestVersion() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("LatestVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClient_LatestVersion_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	c := testClient(t, server.URL, nil)

	_, err := c.LatestVersion(context.Background(), "github.com/missing/module")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
	var apiErr *errors.APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != 404 {
		t.Errorf("error should carry the 404 APIError, got %v", err)
	}
}

func TestClient_LatestVersion_InvalidPath(t *testing.T) {
	c := testClient(t, "http://127.0.0.1:0", nil)

	for _, mod := range []string{"", "../etc/passwd"} {
		if _, err := c.LatestVersion(context.Background(), mod); !errors.Is(err, errors.ErrCodeInvalidPackage) {
			t.Errorf("LatestVersion(%q) error = %v, want INVALID_PACKAGE", mod, err)
		}
	}
}

func TestClient_LatestVersion_EmptyVersion(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c := testClient(t, server.URL, nil)
	if _, err := c.LatestVersion(context.Background(), "example.com/mod"); !errors.Is(err, errors.ErrCodeInvalidResponse) {
		t.Errorf("error = %v, want INVALID_RESPONSE", err)
	}
}

func TestClient_LatestVersion_Cached(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		json.NewEncoder(w).Encode(latestResponse{Version: "v1.0.0"})
	}))
	defer server.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	c := testClient(t, server.URL, fc)

	for range 3 {
		if _, err := c.LatestVersion(context.Background(), "example.com/mod"); err != nil {
			t.Fatalf("LatestVersion() error: %v", err)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("proxy hits = %d, want 1", hits.Load())
	}
}

func TestNewClient(t *testing.T) {
	c := NewClient(nil, time.Hour)
	if c.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q", c.baseURL)
	}
	if c.Name() != "goproxy" {
		t.Errorf("Name() = %q", c.Name())
	}
}

func testClient(t *testing.T, serverURL string, backend cache.Cache) *Client {
	t.Helper()
	return &Client{
		Client:  integrations.NewClient(backend, "goproxy:", time.Hour, nil, integrations.WithRetry(1, 0)),
		baseURL: serverURL,
	}
}
