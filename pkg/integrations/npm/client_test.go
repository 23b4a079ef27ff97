package npm

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kojioka/kojioka-go/pkg/errors"
	"github.com/kojioka/kojioka-go/pkg/integrations"
)

func TestClient_LatestVersion(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		switch r.URL.Path {
		case "/kojioka", "/@kojioka/client":
			w.Write([]byte(`{"name":"kojioka","dist-tags":{"latest":"1.2.0","beta":"2.0.0-beta.1"}}`))
		case "/empty":
			w.Write([]byte(`{"name":"empty","dist-tags":{}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Not found"}`))
		}
	}))
	defer server.Close()

	c := testClient(server.URL)

	tests := []struct {
		name     string
		pkg      string
		want     string
		wantPath string
		wantCode errors.Code
	}{
		{name: "latest tag", pkg: "kojioka", want: "1.2.0", wantPath: "/kojioka"},
		{name: "normalized", pkg: " Kojioka ", want: "1.2.0", wantPath: "/kojioka"},
		{name: "scoped", pkg: "@kojioka/client", want: "1.2.0", wantPath: "/@kojioka%2Fclient"},
		{name: "not found", pkg: "missing", wantCode: errors.ErrCodeNotFound},
		{name: "no latest tag", pkg: "empty", wantCode: errors.ErrCodeInvalidResponse},
		{name: "invalid name", pkg: "bad name!", wantCode: errors.ErrCodeInvalidPackage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.LatestVersion(context.Background(), tt.pkg)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Errorf("LatestVersion() error = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("LatestVersion() error: %v", err)
			}
			if got != tt.want {
				t.Errorf("LatestVersion() = %q, want %q", got, tt.want)
			}
			if gotPath != tt.wantPath {
				t.Errorf("request path = %q, want %q", gotPath, tt.wantPath)
			}
		})
	}
}

func TestClient_LatestVersion_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	c := testClient(url)
	_, err := c.LatestVersion(context.Background(), "kojioka")
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("error = %v, want NETWORK_ERROR", err)
	}
}

func testClient(serverURL string) *Client {
	return &Client{
		Client:  integrations.NewClient(nil, "npm:", time.Hour, nil, integrations.WithRetry(1, 0)),
		baseURL: serverURL,
	}
}

func TestClient_SetBaseURL(t *testing.T) {
	c := NewClient(nil, 0)
	c.SetBaseURL("https://npm.example.com/ ")
	if c.baseURL != "https://npm.example.com" {
		t.Errorf("baseURL = %q", c.baseURL)
	}
	c.SetBaseURL("")
	if c.baseURL != "https://npm.example.com" {
		t.Errorf("empty SetBaseURL should be ignored, baseURL = %q", c.baseURL)
	}
}
