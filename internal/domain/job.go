package domain

import "time"

// JobStatus is the lifecycle state of a conversion job.
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether no further transition can occur.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// ConversionOptions are the client-tunable conversion parameters.
// Quality applies to lossy image targets only; Width and Height are
// honored when Resize is set and both are positive.
type ConversionOptions struct {
	Quality int  `json:"quality"`
	Resize  bool `json:"resize"`
	Width   int  `json:"width"`
	Height  int  `json:"height"`
}

// ConversionRequest is what a client submits to start a conversion.
type ConversionRequest struct {
	FileID           string            `json:"file_id"`
	OriginalFilename string            `json:"original_filename"`
	FileType         FileCategory      `json:"file_type"`
	TargetFormat     string            `json:"target_format"`
	Options          ConversionOptions `json:"options"`
}

// ConversionJob tracks one in-flight or completed conversion. After
// creation only the job's own worker task mutates it; status polls
// read snapshots through the ledger.
type ConversionJob struct {
	ID               string            `json:"conversion_id"`
	FileID           string            `json:"file_id"`
	OriginalFilename string            `json:"original_filename"`
	FileType         FileCategory      `json:"file_type"`
	TargetFormat     string            `json:"target_format"`
	Options          ConversionOptions `json:"options"`
	Status           JobStatus         `json:"status"`
	Progress         int               `json:"progress"`
	Message          string            `json:"message"`
	OutputFileID     string            `json:"output_file_id,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
	CompletedAt      *time.Time        `json:"completed_at,omitempty"`
}

// ConversionOutcome is the value a converter hands back to the
// orchestrator. On success OutputFileID and OutputPath reference the
// produced artifact; on failure both are empty and Message explains why.
type ConversionOutcome struct {
	Success      bool
	Message      string
	OutputFileID string
	OutputPath   string
}
