package domain

// JobLedger is the concurrency-safe table of conversion jobs. Get
// returns a snapshot copy; Update applies the mutator under the
// ledger's lock. The single-terminal-transition discipline is the
// orchestrator's contract, not the ledger's.
type JobLedger interface {
	Create(job *ConversionJob) error
	Get(jobID string) (*ConversionJob, error)
	Update(jobID string, mutate func(*ConversionJob)) error
}

// HistoryRepository appends completed/failed conversion records for audit.
type HistoryRepository interface {
	Append(record *ConversionHistory) error
	Ping() error
}

// Logger defines the interface for logging operations
type Logger interface {
	Info(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
	Debug(msg string, fields ...interface{})
	Warn(msg string, fields ...interface{})
}

// Config defines the interface for configuration management
type Config interface {
	GetServerPort() string
	GetUploadDir() string
	GetConvertedDir() string
	GetMaxFileSize() int64
	GetRetentionDays() int
	GetWorkerCount() int
	GetQueueSize() int
	GetLogLevel() string
	GetCORSOrigins() []string
	GetSupabaseURL() string
	GetSupabaseKey() string
}
