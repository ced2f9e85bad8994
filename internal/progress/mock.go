package progress

import (
	"context"
	"sync"
	"time"
)

// MockStore is an in-memory Store for testing
type MockStore struct {
	mu      sync.Mutex
	records map[string]*Record
}

var _ Store = (*MockStore)(nil)

// NewMockStore creates an empty mock progress store
func NewMockStore() *MockStore {
	return &MockStore{records: make(map[string]*Record)}
}

func (m *MockStore) record(participantCode string) *Record {
	r, ok := m.records[participantCode]
	if !ok {
		r = &Record{}
		m.records[participantCode] = r
	}
	return r
}

func (m *MockStore) AddWordLearned(ctx context.Context, participantCode, word, definition string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.record(participantCode)
	r.WordsLearned = append(r.WordsLearned, Entry{Query: word, Feedback: definition, Timestamp: time.Now()})
	return nil
}

func (m *MockStore) AddWritingFeedback(ctx context.Context, participantCode, text, feedback string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.record(participantCode)
	r.WritingFeedback = append(r.WritingFeedback, Entry{Query: text, Feedback: feedback, Timestamp: time.Now()})
	return nil
}

func (m *MockStore) Get(ctx context.Context, participantCode string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := m.record(participantCode)
	cp := *r
	return &cp, nil
}

func (m *MockStore) Clear(ctx context.Context, participantCode string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, participantCode)
	return nil
}
