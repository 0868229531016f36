package handler

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"ryloze-converter/internal/config"
	"ryloze-converter/internal/repository"
	"ryloze-converter/internal/service"
)

func newTestContainer(t *testing.T) *config.Container {
	t.Helper()
	t.Setenv("UPLOAD_DIR", filepath.Join(t.TempDir(), "uploads"))
	t.Setenv("CONVERTED_DIR", filepath.Join(t.TempDir(), "converted"))
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")

	cfg := config.NewConfig()
	logger := NewMockHandlerLogger()

	store, err := service.NewArtifactStore(cfg.GetUploadDir(), cfg.GetConvertedDir(), cfg.GetMaxFileSize(), logger)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	converter := service.NewConverter(store, logger)
	ledger := repository.NewMemoryJobLedger()
	history := repository.NewMemoryHistoryRepository()
	conversions := service.NewConversionService(store, converter, ledger, history, logger, 1, 4)
	cleanup := service.NewCleanupService(store, logger, cfg.GetRetentionDays())

	return &config.Container{
		Config:            cfg,
		Logger:            logger,
		HistoryRepository: history,
		JobLedger:         ledger,
		ArtifactStore:     store,
		Converter:         converter,
		ConversionService: conversions,
		CleanupService:    cleanup,
	}
}

func TestNewRouter_Root(t *testing.T) {
	router := NewRouter(newTestContainer(t))

	req := httptest.NewRequest(http.MethodGet, "/api/", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"message":"Ryloze Converter API"`) {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
}

func TestNewRouter_Health(t *testing.T) {
	router := NewRouter(newTestContainer(t))

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"status":"healthy"`) {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), `"database":"connected"`) {
		t.Fatalf("expected in-memory history to report connected: %s", rr.Body.String())
	}
}

func TestNewRouter_UnknownRoute(t *testing.T) {
	router := NewRouter(newTestContainer(t))

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}
