package config

import (
	"os"
	"strconv"
	"strings"

	"ryloze-converter/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort    string
	UploadDir     string
	ConvertedDir  string
	MaxFileSize   int64
	RetentionDays int
	WorkerCount   int
	QueueSize     int
	LogLevel      string
	CORSOrigins   []string
	SupabaseURL   string
	SupabaseKey   string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:    getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		UploadDir:     getEnvOrDefault("UPLOAD_DIR", "./uploads"),
		ConvertedDir:  getEnvOrDefault("CONVERTED_DIR", "./converted"),
		MaxFileSize:   getEnvInt64OrDefault("MAX_FILE_SIZE", 2*1024*1024*1024), // 2GiB default
		RetentionDays: getEnvIntOrDefault("RETENTION_DAYS", 7),
		WorkerCount:   getEnvIntOrDefault("WORKER_COUNT", 4),
		QueueSize:     getEnvIntOrDefault("QUEUE_SIZE", 100),
		LogLevel:      getEnvOrDefault("LOG_LEVEL", "info"),
		CORSOrigins:   splitAndTrim(getEnvOrDefault("CORS_ORIGINS", "*")),
		SupabaseURL:   getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:   getEnvOrDefault("SUPABASE_ANON_KEY", ""),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetUploadDir returns the upload root directory
func (c *AppConfig) GetUploadDir() string {
	return c.UploadDir
}

// GetConvertedDir returns the conversion output root directory
func (c *AppConfig) GetConvertedDir() string {
	return c.ConvertedDir
}

// GetMaxFileSize returns the maximum allowed upload size in bytes
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetRetentionDays returns the retention age for stored files, in days.
// A single value is used for both the periodic and post-download sweeps.
func (c *AppConfig) GetRetentionDays() int {
	return c.RetentionDays
}

// GetWorkerCount returns the number of conversion workers
func (c *AppConfig) GetWorkerCount() int {
	return c.WorkerCount
}

// GetQueueSize returns the conversion queue capacity
func (c *AppConfig) GetQueueSize() int {
	return c.QueueSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetCORSOrigins returns the allowed CORS origins
func (c *AppConfig) GetCORSOrigins() []string {
	return c.CORSOrigins
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil && intValue > 0 {
			return intValue
		}
	}
	return defaultValue
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
