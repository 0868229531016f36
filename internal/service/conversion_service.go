package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"ryloze-converter/internal/domain"

	"github.com/google/uuid"
)

// progress checkpoints a job moves through. A job's own task is its
// only writer, so progress is monotonic per job.
const (
	progressQueued     = 0
	progressProcessing = 25
	progressDone       = 100
)

// ConversionService orchestrates conversion jobs: it admits requests,
// tracks their lifecycle in the ledger and runs the conversions on a
// bounded worker pool so submissions never block and concurrency stays
// capped.
type ConversionService struct {
	store     *ArtifactStore
	converter *Converter
	ledger    domain.JobLedger
	history   domain.HistoryRepository
	logger    domain.Logger

	workers int
	tasks   chan string
	wg      sync.WaitGroup
}

// NewConversionService creates the orchestrator with a task queue of
// queueSize and workerCount conversion workers.
func NewConversionService(
	store *ArtifactStore,
	converter *Converter,
	ledger domain.JobLedger,
	history domain.HistoryRepository,
	logger domain.Logger,
	workerCount int,
	queueSize int,
) *ConversionService {
	if workerCount < 1 {
		workerCount = 1
	}
	if queueSize < 1 {
		queueSize = 1
	}
	return &ConversionService{
		store:     store,
		converter: converter,
		ledger:    ledger,
		history:   history,
		logger:    logger,
		workers:   workerCount,
		tasks:     make(chan string, queueSize),
	}
}

// Start launches the worker pool. Workers drain the queue until ctx is
// cancelled.
func (s *ConversionService) Start(ctx context.Context) {
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case jobID, ok := <-s.tasks:
					if !ok {
						return
					}
					s.runJob(jobID)
				}
			}
		}()
	}
	s.logger.Info("Conversion workers started", "workers", s.workers, "queue_size", cap(s.tasks))
}

// Wait blocks until all workers have exited
func (s *ConversionService) Wait() {
	s.wg.Wait()
}

// Submit validates the request against the registered conversion
// capabilities, creates a ledger entry and enqueues the job. It
// returns the job id immediately; when the queue is saturated the
// request is rejected with domain.ErrQueueFull rather than queued
// unboundedly.
func (s *ConversionService) Submit(req domain.ConversionRequest) (string, error) {
	if err := s.converter.Supports(req.FileType, req.OriginalFilename, req.TargetFormat); err != nil {
		return "", err
	}

	job := &domain.ConversionJob{
		ID:               uuid.New().String(),
		FileID:           req.FileID,
		OriginalFilename: req.OriginalFilename,
		FileType:         req.FileType,
		TargetFormat:     req.TargetFormat,
		Options:          req.Options,
		Status:           domain.JobStatusProcessing,
		Progress:         progressQueued,
		Message:          "Starting conversion...",
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.ledger.Create(job); err != nil {
		return "", err
	}

	select {
	case s.tasks <- job.ID:
	default:
		s.failJob(job.ID, "conversion queue is full")
		return "", domain.ErrQueueFull
	}

	s.logger.Info("Conversion job submitted", "job_id", job.ID, "file_id", req.FileID, "target", req.TargetFormat)
	return job.ID, nil
}

// Status returns a snapshot of the job
func (s *ConversionService) Status(jobID string) (*domain.ConversionJob, error) {
	return s.ledger.Get(jobID)
}

// runJob is the unit of work for one conversion. It is a hard fault
// boundary: whatever goes wrong, the job ends in a terminal state with
// a non-empty message.
func (s *ConversionService) runJob(jobID string) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Conversion job panicked", fmt.Errorf("%v", r), "job_id", jobID)
			s.failJob(jobID, fmt.Sprintf("error: %v", r))
		}
	}()

	job, err := s.ledger.Get(jobID)
	if err != nil {
		s.logger.Error("Job vanished from ledger before execution", err, "job_id", jobID)
		return
	}
	start := time.Now()

	sourcePath, err := s.store.Resolve(job.FileID, job.FileType)
	if err != nil {
		s.logger.Error("Source file not found", err, "job_id", jobID, "file_id", job.FileID)
		s.failJob(jobID, "source file not found")
		s.appendHistory(job, domain.ConversionOutcome{Message: "source file not found"}, time.Since(start))
		return
	}

	if err := s.ledger.Update(jobID, func(j *domain.ConversionJob) {
		j.Progress = progressProcessing
		j.Message = "Processing file..."
	}); err != nil {
		s.logger.Error("Failed to update job progress", err, "job_id", jobID)
	}

	outcome := s.converter.Convert(sourcePath, job.FileType, job.TargetFormat, job.Options)
	elapsed := time.Since(start)

	if outcome.Success {
		now := time.Now().UTC()
		if err := s.ledger.Update(jobID, func(j *domain.ConversionJob) {
			j.Status = domain.JobStatusCompleted
			j.Progress = progressDone
			j.Message = outcome.Message
			j.OutputFileID = outcome.OutputFileID
			j.CompletedAt = &now
		}); err != nil {
			s.logger.Error("Failed to record job completion", err, "job_id", jobID)
		}
		s.logger.Info("Conversion completed", "job_id", jobID, "output_id", outcome.OutputFileID, "elapsed_ms", elapsed.Milliseconds())
	} else {
		s.failJob(jobID, outcome.Message)
		s.logger.Warn("Conversion failed", "job_id", jobID, "reason", outcome.Message)
	}

	s.appendHistory(job, outcome, elapsed)
}

// failJob moves a job to the failed terminal state
func (s *ConversionService) failJob(jobID, message string) {
	if message == "" {
		message = "conversion failed"
	}
	now := time.Now().UTC()
	if err := s.ledger.Update(jobID, func(j *domain.ConversionJob) {
		j.Status = domain.JobStatusFailed
		j.Progress = progressDone
		j.Message = message
		j.CompletedAt = &now
	}); err != nil {
		s.logger.Error("Failed to record job failure", err, "job_id", jobID)
	}
}

// appendHistory writes the audit record. Failures are logged and
// swallowed so the history collaborator can never change how a
// finished job appears to the polling client.
func (s *ConversionService) appendHistory(job *domain.ConversionJob, outcome domain.ConversionOutcome, elapsed time.Duration) {
	record := &domain.ConversionHistory{
		ID:               uuid.New().String(),
		OriginalFilename: job.OriginalFilename,
		FileType:         job.FileType,
		InputFormat:      strings.TrimPrefix(strings.ToLower(filepath.Ext(job.OriginalFilename)), "."),
		OutputFormat:     job.TargetFormat,
		ConversionTimeMs: elapsed.Milliseconds(),
		Options:          job.Options,
		CreatedAt:        time.Now().UTC(),
	}

	if outcome.Success {
		record.Status = domain.JobStatusCompleted
		record.OutputFilename = outcome.OutputFileID
		if info, err := os.Stat(outcome.OutputPath); err == nil {
			record.OutputSize = info.Size()
		}
	} else {
		record.Status = domain.JobStatusFailed
		record.ErrorMessage = outcome.Message
	}

	if err := s.history.Append(record); err != nil {
		s.logger.Error("Failed to save conversion history", err, "job_id", job.ID)
	}
}
