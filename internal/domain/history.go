package domain

import "time"

// ConversionHistory is the append-only audit record written after a
// job reaches a terminal state. Persistence failures are logged and
// swallowed; the job outcome never depends on this write.
type ConversionHistory struct {
	ID               string            `json:"id"`
	OriginalFilename string            `json:"original_filename"`
	FileType         FileCategory      `json:"file_type"`
	InputFormat      string            `json:"input_format"`
	OutputFormat     string            `json:"output_format"`
	OutputFilename   string            `json:"output_filename,omitempty"`
	OutputSize       int64             `json:"output_size"`
	Status           JobStatus         `json:"status"`
	ErrorMessage     string            `json:"error_message,omitempty"`
	ConversionTimeMs int64             `json:"conversion_time_ms"`
	Options          ConversionOptions `json:"options"`
	CreatedAt        time.Time         `json:"created_at"`
}
