package repository

import (
	"errors"
	"sync"
	"testing"
	"time"

	"ryloze-converter/internal/domain"
)

func newTestJob(id string) *domain.ConversionJob {
	return &domain.ConversionJob{
		ID:        id,
		FileID:    "file-" + id,
		FileType:  domain.CategoryImage,
		Status:    domain.JobStatusProcessing,
		Progress:  0,
		Message:   "Starting conversion...",
		CreatedAt: time.Now().UTC(),
	}
}

func TestMemoryJobLedger_CreateAndGet(t *testing.T) {
	ledger := NewMemoryJobLedger()

	if err := ledger.Create(newTestJob("a")); err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}

	job, err := ledger.Get("a")
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if job.FileID != "file-a" {
		t.Fatalf("expected file-a, got %s", job.FileID)
	}

	if err := ledger.Create(newTestJob("a")); !errors.Is(err, domain.ErrJobExists) {
		t.Fatalf("expected ErrJobExists for duplicate create, got %v", err)
	}
}

func TestMemoryJobLedger_GetUnknown(t *testing.T) {
	ledger := NewMemoryJobLedger()

	if _, err := ledger.Get("missing"); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
	if err := ledger.Update("missing", func(j *domain.ConversionJob) {}); !errors.Is(err, domain.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound on update, got %v", err)
	}
}

func TestMemoryJobLedger_GetReturnsSnapshot(t *testing.T) {
	ledger := NewMemoryJobLedger()
	if err := ledger.Create(newTestJob("a")); err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}

	snapshot, err := ledger.Get("a")
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}

	// Mutating the snapshot must not affect the stored entry.
	snapshot.Status = domain.JobStatusFailed
	snapshot.Progress = 100

	stored, err := ledger.Get("a")
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if stored.Status != domain.JobStatusProcessing || stored.Progress != 0 {
		t.Fatalf("snapshot mutation leaked into ledger: %+v", stored)
	}
}

func TestMemoryJobLedger_Update(t *testing.T) {
	ledger := NewMemoryJobLedger()
	if err := ledger.Create(newTestJob("a")); err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}

	err := ledger.Update("a", func(j *domain.ConversionJob) {
		j.Status = domain.JobStatusCompleted
		j.Progress = 100
		j.OutputFileID = "out-1"
	})
	if err != nil {
		t.Fatalf("unexpected update error: %v", err)
	}

	job, err := ledger.Get("a")
	if err != nil {
		t.Fatalf("unexpected get error: %v", err)
	}
	if job.Status != domain.JobStatusCompleted || job.Progress != 100 || job.OutputFileID != "out-1" {
		t.Fatalf("update not applied: %+v", job)
	}
}

func TestMemoryJobLedger_ConcurrentReadersAndWriter(t *testing.T) {
	ledger := NewMemoryJobLedger()
	if err := ledger.Create(newTestJob("a")); err != nil {
		t.Fatalf("unexpected create error: %v", err)
	}

	var wg sync.WaitGroup
	done := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for p := 1; p <= 100; p++ {
			_ = ledger.Update("a", func(j *domain.ConversionJob) {
				j.Progress = p
			})
		}
		close(done)
	}()

	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			last := 0
			for {
				job, err := ledger.Get("a")
				if err != nil {
					t.Errorf("unexpected get error: %v", err)
					return
				}
				if job.Progress < last {
					t.Errorf("progress went backwards: %d -> %d", last, job.Progress)
					return
				}
				last = job.Progress
				select {
				case <-done:
					return
				default:
				}
			}
		}()
	}

	wg.Wait()
}
