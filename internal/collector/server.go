package collector

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"time"
)

// maxRecordBytes bounds a posted record
const maxRecordBytes = 64 * 1024

// Server serves session IDs and stores results
type Server struct {
	store Store
	now   func() time.Time
}

// NewServer creates a server on top of a store
func NewServer(store Store) *Server {
	return &Server{store: store, now: time.Now}
}

// Handler returns the HTTP routes of the collector
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/session", s.handleSession)
	mux.HandleFunc("/q", s.handleQuery)
	return mux
}

// handleIndex accepts posted records
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	switch r.Method {
	case http.MethodPost:
		s.handleSubmit(w, r)
	case http.MethodGet:
		s.handleSession(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRecordBytes))
	if err != nil {
		http.Error(w, "Failed to read body", http.StatusBadRequest)
		return
	}
	rec, err := ParseRecord(string(body), s.now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.store.Save(rec); err != nil {
		log.Printf("Failed to save record of %s: %v", rec.TestID, err)
		http.Error(w, "Failed to save", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// handleSession hands out the next test ID and its skin set
func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id, err := s.store.NextID()
	if err != nil {
		log.Printf("Failed to allocate test ID: %v", err)
		http.Error(w, "Failed to allocate test ID", http.StatusInternalServerError)
		return
	}

	set := r.URL.Query().Get("set")
	if set == "" {
		set = DefaultSet(id)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(map[string]string{
		"testID": Alnum4(id),
		"set":    set,
	}); err != nil {
		log.Printf("Failed to write session: %v", err)
	}
}

// handleQuery exports the stored records of one test, or of all public tests
func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	testID := r.FormValue("ID")

	recs, err := s.store.Query(testID)
	if err != nil {
		log.Printf("Failed to query records: %v", err)
		http.Error(w, "Failed to query", http.StatusInternalServerError)
		return
	}

	filename := "allResults"
	if testID != "" {
		filename = "testID-" + testID + ".txt"
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)

	for _, rec := range recs {
		if _, err := io.WriteString(w, rec.Value+"\n"); err != nil {
			log.Printf("Failed to write records: %v", err)
			return
		}
	}
}
