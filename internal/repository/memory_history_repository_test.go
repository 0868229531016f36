package repository

import (
	"testing"

	"ryloze-converter/internal/domain"
)

func TestMemoryHistoryRepository_AppendCopies(t *testing.T) {
	repo := NewMemoryHistoryRepository()

	record := &domain.ConversionHistory{
		ID:           "h1",
		InputFormat:  "png",
		OutputFormat: "jpg",
		Status:       domain.JobStatusCompleted,
	}
	if err := repo.Append(record); err != nil {
		t.Fatalf("unexpected append error: %v", err)
	}

	// Mutating the caller's record must not reach the stored copy.
	record.Status = domain.JobStatusFailed

	records := repo.Records()
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].Status != domain.JobStatusCompleted {
		t.Fatalf("stored record was mutated: %+v", records[0])
	}
}

func TestMemoryHistoryRepository_Ping(t *testing.T) {
	if err := NewMemoryHistoryRepository().Ping(); err != nil {
		t.Fatalf("in-memory ping must always succeed, got %v", err)
	}
}
