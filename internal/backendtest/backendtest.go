// Package backendtest provides a fake AgroAide backend for package tests.
//
// Routes are registered with chi patterns relative to the /api prefix, and
// every request is recorded so tests can assert on what the client sent.
package backendtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// Request is one recorded call.
type Request struct {
	Method string
	Path   string
	Query  string
	Token  string
	Body   []byte
}

// Server is a running fake backend.
type Server struct {
	*httptest.Server

	api chi.Router

	mu       sync.Mutex
	requests []Request
}

// New starts a fake backend that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	s := &Server{}
	r := chi.NewRouter()
	r.Use(s.record)
	r.Route("/api", func(r chi.Router) {
		s.api = r
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		Error(w, http.StatusNotFound, "Not found.")
	})

	s.Server = httptest.NewServer(r)
	t.Cleanup(s.Close)
	return s
}

// BaseURL is the value a client should use as its API base.
func (s *Server) BaseURL() string {
	return s.URL + "/api"
}

// Handle registers h for method and pattern (e.g. "/farm/fields/{id}").
func (s *Server) Handle(method, pattern string, h http.HandlerFunc) {
	s.api.MethodFunc(method, pattern, h)
}

// Reply registers a handler that always answers with status and v.
func (s *Server) Reply(method, pattern string, status int, v any) {
	s.Handle(method, pattern, func(w http.ResponseWriter, _ *http.Request) {
		JSON(w, status, v)
	})
}

// Requests returns every recorded call in arrival order.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.requests))
	copy(out, s.requests)
	return out
}

// Count returns how many calls matched method and the concrete path.
func (s *Server) Count(method, path string) int {
	n := 0
	for _, req := range s.Requests() {
		if req.Method == method && req.Path == path {
			n++
		}
	}
	return n
}

// Last returns the most recent call to method and path.
func (s *Server) Last(method, path string) (Request, bool) {
	reqs := s.Requests()
	for i := len(reqs) - 1; i >= 0; i-- {
		if reqs[i].Method == method && reqs[i].Path == path {
			return reqs[i], true
		}
	}
	return Request{}, false
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(body))

		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method: r.Method,
			Path:   strings.TrimPrefix(r.URL.Path, "/api"),
			Query:  r.URL.RawQuery,
			Token:  BearerToken(r),
			Body:   body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// BearerToken extracts the token from an Authorization header.
func BearerToken(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}

// RequireToken wraps h so calls without the expected token get a 401.
func RequireToken(token string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if BearerToken(r) != token {
			Error(w, http.StatusUnauthorized, "Unauthenticated.")
			return
		}
		h(w, r)
	}
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"message": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Raw writes body verbatim, for payloads whose key order matters.
func Raw(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// Error writes a backend-style error body.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}
