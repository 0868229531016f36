package repository

import (
	"sync"

	"ryloze-converter/internal/domain"
)

// MemoryHistoryRepository keeps history records in memory. Used when
// Supabase is not configured, and by tests.
type MemoryHistoryRepository struct {
	mu      sync.Mutex
	records []*domain.ConversionHistory
}

// NewMemoryHistoryRepository creates an empty in-memory history repository
func NewMemoryHistoryRepository() *MemoryHistoryRepository {
	return &MemoryHistoryRepository{}
}

// Append stores a copy of the record
func (r *MemoryHistoryRepository) Append(record *domain.ConversionHistory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *record
	r.records = append(r.records, &stored)
	return nil
}

// Ping always succeeds for the in-memory store
func (r *MemoryHistoryRepository) Ping() error {
	return nil
}

// Records returns a snapshot of everything appended so far
func (r *MemoryHistoryRepository) Records() []*domain.ConversionHistory {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*domain.ConversionHistory, len(r.records))
	copy(out, r.records)
	return out
}
