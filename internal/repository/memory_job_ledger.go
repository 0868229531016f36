package repository

import (
	"sync"

	"ryloze-converter/internal/domain"
)

// MemoryJobLedger implements domain.JobLedger with an in-process map.
// Entries live for the process lifetime; there is no durable backing
// store, so a restart forgets all jobs.
type MemoryJobLedger struct {
	mu   sync.RWMutex
	jobs map[string]*domain.ConversionJob
}

// NewMemoryJobLedger creates an empty in-memory job ledger
func NewMemoryJobLedger() *MemoryJobLedger {
	return &MemoryJobLedger{
		jobs: make(map[string]*domain.ConversionJob),
	}
}

// Create inserts a new job entry
func (l *MemoryJobLedger) Create(job *domain.ConversionJob) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.jobs[job.ID]; exists {
		return domain.ErrJobExists
	}
	stored := *job
	l.jobs[job.ID] = &stored
	return nil
}

// Get returns a snapshot copy of the job, safe to read while the
// job's worker keeps writing to the ledger entry.
func (l *MemoryJobLedger) Get(jobID string) (*domain.ConversionJob, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	job, exists := l.jobs[jobID]
	if !exists {
		return nil, domain.ErrJobNotFound
	}
	snapshot := *job
	return &snapshot, nil
}

// Update applies the mutator to the stored entry under the ledger lock
func (l *MemoryJobLedger) Update(jobID string, mutate func(*domain.ConversionJob)) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	job, exists := l.jobs[jobID]
	if !exists {
		return domain.ErrJobNotFound
	}
	mutate(job)
	return nil
}
