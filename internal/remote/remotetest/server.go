package remotetest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/nibzard/tasklist-go/internal/task"
)

// Server is an in-memory tasklist service on an httptest listener.
type Server struct {
	*httptest.Server

	mu        sync.Mutex
	tasks     []task.Task
	nextID    int
	failNext  int
	failMsg   string
	requestID []string
}

// NewServer starts a server seeded with tasks and closes it when the test ends.
func NewServer(t testing.TB, tasks ...task.Task) *Server {
	t.Helper()

	s := &Server{
		tasks:  append([]task.Task(nil), tasks...),
		nextID: 1,
	}
	for _, tk := range tasks {
		if tk.ID >= s.nextID {
			s.nextID = tk.ID + 1
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/tasklist/{$}", s.list)
	mux.HandleFunc("POST /api/tasklist/{$}", s.create)
	mux.HandleFunc("PUT /api/tasklist/{id}/{$}", s.update)
	mux.HandleFunc("DELETE /api/tasklist/{id}/{$}", s.delete)

	s.Server = httptest.NewServer(s.intercept(mux))
	t.Cleanup(s.Close)
	return s
}

// FailNext makes the next request answer status with {"message": msg}.
func (s *Server) FailNext(status int, msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failNext = status
	s.failMsg = msg
}

// Tasks returns the stored tasks.
func (s *Server) Tasks() []task.Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]task.Task(nil), s.tasks...)
}

// RequestIDs returns the X-Request-ID headers seen so far.
func (s *Server) RequestIDs() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requestID...)
}

func (s *Server) intercept(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requestID = append(s.requestID, r.Header.Get("X-Request-ID"))
		status, msg := s.failNext, s.failMsg
		s.failNext, s.failMsg = 0, ""
		s.mu.Unlock()

		if status != 0 {
			writeJSON(w, status, map[string]string{"message": msg})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	tasks := s.Tasks()
	if tasks == nil {
		tasks = []task.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (s *Server) create(w http.ResponseWriter, r *http.Request) {
	var in task.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid JSON"})
		return
	}
	if strings.TrimSpace(in.Title) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "title: This field may not be blank."})
		return
	}

	s.mu.Lock()
	created := in.WithID(s.nextID)
	s.nextID++
	s.tasks = append(s.tasks, created)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	var body task.Task
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": "invalid JSON"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			body.ID = id
			s.tasks[i] = body
			writeJSON(w, http.StatusOK, body)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
