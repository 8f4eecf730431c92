// Package transport delivers result records to the collector and asks it
// for a session.
package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/younwookim/stm/internal/application/result"
)

// DefaultTimeout of a single request
const DefaultTimeout = 5 * time.Second

// SessionInfo is the collector's answer to GET /session
type SessionInfo struct {
	TestID string `json:"testID"`
	Set    string `json:"set"`
}

// HTTPSink posts each record as one text/plain line. Submissions run on
// their own goroutine; failures are logged and not retried.
type HTTPSink struct {
	client *http.Client
	url    string
	wg     sync.WaitGroup
}

// NewHTTPSink creates a sink posting to baseURL
func NewHTTPSink(client *http.Client, baseURL string) *HTTPSink {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPSink{
		client: client,
		url:    strings.TrimRight(baseURL, "/") + "/",
	}
}

// Submit sends the record without blocking the caller
func (s *HTTPSink) Submit(rec result.Record) {
	line := rec.Encode()
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.post(line); err != nil {
			log.Printf("Failed to submit result: %v", err)
		}
	}()
}

func (s *HTTPSink) post(line string) error {
	resp, err := s.client.Post(s.url, "text/plain; charset=utf-8", strings.NewReader(line))
	if err != nil {
		return fmt.Errorf("failed to post result: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("collector answered %s", resp.Status)
	}
	return nil
}

// Wait blocks until all submissions have finished
func (s *HTTPSink) Wait() {
	s.wg.Wait()
}

// FetchSession asks the collector for a test ID and skin set
func FetchSession(ctx context.Context, client *http.Client, baseURL string) (*SessionInfo, error) {
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}
	url := strings.TrimRight(baseURL, "/") + "/session"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch session: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch session: %s", resp.Status)
	}

	var info SessionInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &info, nil
}
