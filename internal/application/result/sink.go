package result

import (
	"log"
	"sync"
)

// Sink receives finished round records. Submit must not block the frame
// loop; delivery is best effort.
type Sink interface {
	Submit(rec Record)
}

// LogSink writes every record to the standard logger
type LogSink struct {
	Prefix string
}

// Submit logs the encoded record
func (s LogSink) Submit(rec Record) {
	log.Printf("%sround %d %s: %s", s.Prefix, rec.Round, rec.Outcome, rec.Encode())
}

// MemorySink keeps records in memory
type MemorySink struct {
	mu      sync.Mutex
	records []Record
}

// Submit stores the record
func (s *MemorySink) Submit(rec Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
}

// Records returns a copy of the stored records
func (s *MemorySink) Records() []Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of stored records
func (s *MemorySink) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// MultiSink submits to every sink in order
type MultiSink []Sink

// Submit forwards rec to all sinks
func (m MultiSink) Submit(rec Record) {
	for _, s := range m {
		if s != nil {
			s.Submit(rec)
		}
	}
}
