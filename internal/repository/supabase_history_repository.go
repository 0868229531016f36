package repository

import (
	"fmt"

	"ryloze-converter/internal/domain"
)

const historyTable = "conversion_history"

// SupabaseHistoryRepository persists conversion history records to the
// conversion_history table. It is append-only; callers treat failures
// as non-fatal.
type SupabaseHistoryRepository struct {
	supabaseClient *SupabaseClient
	logger         domain.Logger
}

// NewSupabaseHistoryRepository creates a new Supabase history repository
func NewSupabaseHistoryRepository(supabaseClient *SupabaseClient, logger domain.Logger) domain.HistoryRepository {
	return &SupabaseHistoryRepository{
		supabaseClient: supabaseClient,
		logger:         logger,
	}
}

// Append inserts one terminal-state record
func (r *SupabaseHistoryRepository) Append(record *domain.ConversionHistory) error {
	client := r.supabaseClient.GetSupabaseClient()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	_, _, err := client.From(historyTable).
		Insert(record, false, "", "minimal", "").
		Execute()
	if err != nil {
		return fmt.Errorf("failed to insert history record: %w", err)
	}

	r.logger.Debug("Conversion history saved", "history_id", record.ID, "status", record.Status)
	return nil
}

// Ping checks that the history table is reachable
func (r *SupabaseHistoryRepository) Ping() error {
	client := r.supabaseClient.GetSupabaseClient()
	if client == nil {
		return fmt.Errorf("supabase client not initialized")
	}

	_, _, err := client.From(historyTable).
		Select("id", "exact", false).
		Limit(1, "").
		Execute()
	if err != nil {
		return fmt.Errorf("history store unreachable: %w", err)
	}
	return nil
}
