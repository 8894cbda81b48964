// Package server exposes the verse lookup pipeline over HTTP and
// WebSocket. It is a thin collaborator around the core: every request
// reduces to one of the two core entry points.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	lecterrors "lectern/core/errors"
	"lectern/internal/library"
	"lectern/internal/logging"
)

// Server serves reference lookups against a Library.
type Server struct {
	lib *library.Library
	hub *Hub
	mux *http.ServeMux
}

// New creates a Server for the given library and starts its hub.
func New(lib *library.Library) *Server {
	s := &Server{
		lib: lib,
		hub: NewHub(),
		mux: http.NewServeMux(),
	}
	s.mux.HandleFunc("GET /api/verse", s.handleVerse)
	s.mux.HandleFunc("GET /api/line", s.handleLine)
	s.mux.HandleFunc("GET /api/versions", s.handleVersions)
	s.mux.HandleFunc("POST /api/versions/use", s.handleUseVersion)
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
	go s.hub.Run()
	return s
}

// Handler returns the server's HTTP handler with request logging.
func (s *Server) Handler() http.Handler {
	return s.logRequests(s.mux)
}

// ListenAndServe serves on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	logging.ServerStartup(addr)
	return http.ListenAndServe(addr, s.Handler())
}

// LookupResult is the JSON shape of a lookup response.
type LookupResult struct {
	Reference string `json:"reference"`
	Version   string `json:"version,omitempty"`
	Text      string `json:"text,omitempty"`
	Line      *int   `json:"line,omitempty"`
	Found     bool   `json:"found"`
}

// lookup resolves a query against the named version, or the current one.
func (s *Server) lookup(q wsQuery) LookupResult {
	result := LookupResult{Reference: q.Reference}

	var v *library.Version
	var ok bool
	if q.Version != "" {
		v, ok = s.lib.Get(q.Version)
	} else {
		v, ok = s.lib.Current()
	}
	if !ok {
		return result
	}
	result.Version = v.Name

	resolver := v.Resolver()
	if q.Line {
		line, ok := resolver.SourceLine(q.Reference)
		if ok {
			result.Line = &line
			result.Found = true
		}
	} else {
		text, ok := resolver.VerseText(q.Reference)
		if ok {
			result.Text = text
			result.Found = true
		}
	}

	logging.LookupEvent(q.Reference, result.Found, "version", result.Version)
	return result
}

func (s *Server) handleVerse(w http.ResponseWriter, r *http.Request) {
	q := wsQuery{
		Reference: r.URL.Query().Get("ref"),
		Version:   r.URL.Query().Get("version"),
	}
	writeJSON(w, s.lookup(q))
}

func (s *Server) handleLine(w http.ResponseWriter, r *http.Request) {
	q := wsQuery{
		Reference: r.URL.Query().Get("ref"),
		Version:   r.URL.Query().Get("version"),
		Line:      true,
	}
	writeJSON(w, s.lookup(q))
}

// versionInfo is the JSON shape of one library version.
type versionInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Hash    string `json:"hash"`
	Books   int    `json:"books"`
	Current bool   `json:"current"`
}

func (s *Server) handleVersions(w http.ResponseWriter, r *http.Request) {
	current, _ := s.lib.Current()

	infos := []versionInfo{}
	for _, v := range s.lib.List() {
		infos = append(infos, versionInfo{
			ID:      v.ID,
			Name:    v.Name,
			Hash:    v.Hash,
			Books:   v.Index.BookCount(),
			Current: current != nil && v.Name == current.Name,
		})
	}
	writeJSON(w, infos)
}

func (s *Server) handleUseVersion(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if err := s.lib.Use(name); err != nil {
		status := http.StatusInternalServerError
		if lecterrors.IsNotFound(err) {
			status = http.StatusNotFound
		}
		http.Error(w, err.Error(), status)
		return
	}
	s.hub.Broadcast(VersionEvent{Type: "version_selected", Version: name})
	writeJSON(w, map[string]string{"current": name})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Error("failed to encode response", "error", err)
	}
}

// statusRecorder captures the response status for request logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/ws" {
			// The upgrader needs the raw ResponseWriter to hijack the
			// connection; wrapping it would hide http.Hijacker.
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.HTTPRequest(r.Method, r.URL.Path, r.RemoteAddr, rec.status, time.Since(start))
	})
}
