package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// EventServer is an in-memory event API for tests. It serves GET /event
// and records POST /entries bodies.
type EventServer struct {
	*httptest.Server

	mu          sync.Mutex
	event       any
	eventStatus int
	entryStatus int
	entries     []json.RawMessage
	requestIDs  []string
	eventHits   int
}

// NewEventServer starts an EventServer answering GET /event with event,
// which may be a struct, a slice of them, or raw JSON. It is closed with t.
func NewEventServer(t testing.TB, event any) *EventServer {
	t.Helper()

	s := &EventServer{
		event:       event,
		eventStatus: http.StatusOK,
		entryStatus: http.StatusCreated,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /event", s.handleEvent)
	mux.HandleFunc("POST /entries", s.handleEntry)

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// SetEvent replaces the served event.
func (s *EventServer) SetEvent(event any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.event = event
}

// FailEvent makes GET /event answer with status.
func (s *EventServer) FailEvent(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventStatus = status
}

// FailEntries makes POST /entries answer with status.
func (s *EventServer) FailEntries(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entryStatus = status
}

// Entries returns the raw bodies of accepted submissions.
func (s *EventServer) Entries() []json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]json.RawMessage, len(s.entries))
	copy(out, s.entries)
	return out
}

// RequestIDs returns the X-Request-ID header of every submission attempt.
func (s *EventServer) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requestIDs))
	copy(out, s.requestIDs)
	return out
}

// EventHits returns how many times GET /event was served.
func (s *EventServer) EventHits() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.eventHits
}

func (s *EventServer) handleEvent(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	s.eventHits++
	status, event := s.eventStatus, s.event
	s.mu.Unlock()

	if status != http.StatusOK {
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if raw, ok := event.(string); ok {
		_, _ = w.Write([]byte(raw))
		return
	}
	_ = json.NewEncoder(w).Encode(event)
}

func (s *EventServer) handleEntry(w http.ResponseWriter, r *http.Request) {
	var body json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	s.requestIDs = append(s.requestIDs, r.Header.Get("X-Request-ID"))
	status := s.entryStatus
	if status < http.StatusBadRequest {
		s.entries = append(s.entries, body)
	}
	s.mu.Unlock()

	if status >= http.StatusBadRequest {
		http.Error(w, http.StatusText(status), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}
