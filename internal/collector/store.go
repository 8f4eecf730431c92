package collector

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"
)

// ErrBadRecord is returned for posted lines without testID, index and set
var ErrBadRecord = errors.New("malformed record")

// MinPublicID is the lowest test ID included in the full export
const MinPublicID = "S-0000"

// TimestampLayout is appended to every stored record
const TimestampLayout = "2006-01-02 15:04:05.000000"

// StoredRecord is one received line with its index fields
type StoredRecord struct {
	TestID    string
	TestIndex string
	TestSet   string
	Time      time.Time
	Value     string // the received line plus the timestamp field
}

// Store persists the ID counter and received records
type Store interface {
	NextID() (int64, error)
	Save(rec StoredRecord) error
	Query(testID string) ([]StoredRecord, error)
}

// ParseRecord extracts the index fields of a posted line and stamps it
func ParseRecord(line string, now time.Time) (StoredRecord, error) {
	line = strings.TrimRight(line, "\r\n")
	parts := strings.Split(line, "\t")
	if len(parts) < 3 || parts[0] == "" {
		return StoredRecord{}, fmt.Errorf("%d fields: %w", len(parts), ErrBadRecord)
	}
	return StoredRecord{
		TestID:    parts[0],
		TestIndex: parts[1],
		TestSet:   parts[2],
		Time:      now,
		Value:     line + "\t" + now.Format(TimestampLayout),
	}, nil
}

// sortRecords orders by test ID, then numerically by test index
func sortRecords(recs []StoredRecord) {
	sort.SliceStable(recs, func(i, j int) bool {
		if recs[i].TestID != recs[j].TestID {
			return recs[i].TestID < recs[j].TestID
		}
		a, errA := strconv.Atoi(recs[i].TestIndex)
		b, errB := strconv.Atoi(recs[j].TestIndex)
		if errA == nil && errB == nil {
			return a < b
		}
		return recs[i].TestIndex < recs[j].TestIndex
	})
}

// filterRecords selects one test, or every public test when testID is empty
func filterRecords(all []StoredRecord, testID string) []StoredRecord {
	var out []StoredRecord
	for _, r := range all {
		if testID != "" && r.TestID == testID ||
			testID == "" && r.TestID >= MinPublicID {
			out = append(out, r)
		}
	}
	sortRecords(out)
	return out
}

// MemoryStore keeps everything in memory
type MemoryStore struct {
	mu      sync.Mutex
	counter int64
	records []StoredRecord
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{counter: FirstCounter}
}

func (s *MemoryStore) NextID() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counter++
	return s.counter, nil
}

func (s *MemoryStore) Save(rec StoredRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, rec)
	return nil
}

func (s *MemoryStore) Query(testID string) ([]StoredRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filterRecords(s.records, testID), nil
}

// FileStore keeps an append-only TSV of records and a counter file in a
// directory
type FileStore struct {
	mu          sync.Mutex
	counterPath string
	recordsPath string
}

const (
	counterFile = "counter"
	recordsFile = "records.tsv"
)

// NewFileStore opens or creates a store in dir
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &FileStore{
		counterPath: filepath.Join(dir, counterFile),
		recordsPath: filepath.Join(dir, recordsFile),
	}, nil
}

func (s *FileStore) NextID() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := int64(FirstCounter)
	data, err := os.ReadFile(s.counterPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return 0, fmt.Errorf("failed to read counter: %w", err)
	default:
		n, err = strconv.ParseInt(strings.TrimSpace(string(data)), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("failed to parse counter: %w", err)
		}
	}
	n++

	tmp := s.counterPath + ".tmp"
	if err := os.WriteFile(tmp, []byte(strconv.FormatInt(n, 10)), 0o644); err != nil {
		return 0, fmt.Errorf("failed to write counter: %w", err)
	}
	if err := os.Rename(tmp, s.counterPath); err != nil {
		return 0, fmt.Errorf("failed to write counter: %w", err)
	}
	return n, nil
}

// Each line is testID, testIndex, testSet, unix nanos, then the value
func (s *FileStore) Save(rec StoredRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.recordsPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open records: %w", err)
	}
	defer func() { _ = f.Close() }()

	line := strings.Join([]string{
		rec.TestID, rec.TestIndex, rec.TestSet,
		strconv.FormatInt(rec.Time.UnixNano(), 10),
		strings.ReplaceAll(rec.Value, "\n", " "),
	}, "\t")
	if _, err := f.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to append record: %w", err)
	}
	return nil
}

func (s *FileStore) Query(testID string) ([]StoredRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.recordsPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open records: %w", err)
	}
	defer func() { _ = f.Close() }()

	var all []StoredRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		parts := strings.SplitN(scanner.Text(), "\t", 5)
		if len(parts) != 5 {
			continue
		}
		nanos, _ := strconv.ParseInt(parts[3], 10, 64)
		all = append(all, StoredRecord{
			TestID:    parts[0],
			TestIndex: parts[1],
			TestSet:   parts[2],
			Time:      time.Unix(0, nanos),
			Value:     parts[4],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read records: %w", err)
	}
	return filterRecords(all, testID), nil
}
