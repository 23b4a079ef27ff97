// Package mockapi is a fake Kojioka API for local development and tests.
//
// It serves the three public endpoints from an in-memory catalog:
//
//	srv := mockapi.NewServer(mockapi.DefaultCatalog())
//	http.ListenAndServe(":8080", srv.Router(middleware.Logger))
//
// /get-stream tries the YouTube stream first and falls back to the next
// source that has one, the way the hosted service does.
package mockapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server holds the catalog.
type Server struct {
	tracks  []Track
	started time.Time
}

// NewServer creates a Server. A nil catalog serves [DefaultCatalog].
func NewServer(tracks []Track) *Server {
	if tracks == nil {
		tracks = DefaultCatalog()
	}
	return &Server{tracks: tracks, started: time.Now()}
}

// Router returns the HTTP handler with the given middlewares applied after
// request-ID propagation and panic recovery.
func (s *Server) Router(middlewares ...func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(echoRequestID)
	r.Use(middleware.Recoverer)
	for _, mw := range middlewares {
		r.Use(mw)
	}

	r.Get("/status", s.handleStatus)
	r.Get("/search", s.handleSearch)
	r.Get("/get-stream", s.handleGetStream)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	return r
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, StatusResponse{
		Status:  "ok",
		Service: "kojioka-api",
		Uptime:  int64(time.Since(s.started).Seconds()),
		Sources: sources,
	})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q, ok := queryParam(w, r)
	if !ok {
		return
	}
	t, found := s.match(q)
	if !found {
		writeError(w, http.StatusNotFound, "No results found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleGetStream(w http.ResponseWriter, r *http.Request) {
	q, ok := queryParam(w, r)
	if !ok {
		return
	}
	t, found := s.match(q)
	if !found {
		writeError(w, http.StatusNotFound, "No results found")
		return
	}
	for i, src := range sources {
		if u, ok := t.Streams[src]; ok {
			writeJSON(w, http.StatusOK, StreamResponse{
				Track:     t,
				Source:    src,
				StreamURL: u,
				Fallback:  i > 0,
			})
			return
		}
	}
	writeError(w, http.StatusBadGateway, "All stream sources failed")
}

// match finds a track by page URL, ID or case-insensitive title substring.
func (s *Server) match(q string) (Track, bool) {
	needle := strings.ToLower(strings.TrimSpace(q))
	for _, t := range s.tracks {
		for _, u := range t.URLs {
			if strings.EqualFold(u, strings.TrimSpace(q)) {
				return t, true
			}
		}
		if t.ID == q {
			return t, true
		}
	}
	if needle == "" {
		return Track{}, false
	}
	for _, t := range s.tracks {
		if strings.Contains(strings.ToLower(t.Title), needle) {
			return t, true
		}
	}
	return Track{}, false
}

func queryParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeError(w, http.StatusBadRequest, "Query parameter 'q' is required")
		return "", false
	}
	return q, true
}

func echoRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			w.Header().Set(middleware.RequestIDHeader, id)
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
