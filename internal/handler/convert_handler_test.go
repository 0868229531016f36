package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ryloze-converter/internal/domain"
)

func (f *handlerFixture) uploadPNG(t *testing.T) string {
	t.Helper()
	fileID, err := f.store.Store(smallPNG(t), "src.png", domain.CategoryImage)
	if err != nil {
		t.Fatalf("failed to store fixture image: %v", err)
	}
	return fileID
}

func (f *handlerFixture) startConversion(t *testing.T, payload string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/convert", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func TestConvertHandler_StartAndPollToCompletion(t *testing.T) {
	f := newHandlerFixture(t, 1<<20)
	fileID := f.uploadPNG(t)

	payload, _ := json.Marshal(map[string]interface{}{
		"file_id":           fileID,
		"original_filename": "src.png",
		"file_type":         "image",
		"target_format":     "jpg",
	})
	rr := f.startConversion(t, string(payload))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var started struct {
		ConversionID string `json:"conversion_id"`
		Status       string `json:"status"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &started); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if started.ConversionID == "" || started.Status != "processing" {
		t.Fatalf("unexpected start response: %+v", started)
	}

	var job domain.ConversionJob
	deadline := time.Now().Add(10 * time.Second)
	for {
		if time.Now().After(deadline) {
			t.Fatalf("conversion never finished: %+v", job)
		}
		statusReq := httptest.NewRequest(http.MethodGet, "/api/convert/status/"+started.ConversionID, nil)
		statusRR := httptest.NewRecorder()
		f.router.ServeHTTP(statusRR, statusReq)
		if statusRR.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, statusRR.Code)
		}
		if err := json.Unmarshal(statusRR.Body.Bytes(), &job); err != nil {
			t.Fatalf("failed to decode status: %v", err)
		}
		if job.Status.Terminal() {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	if job.Status != domain.JobStatusCompleted {
		t.Fatalf("expected completed, got %s (%s)", job.Status, job.Message)
	}
	if job.OutputFileID == "" {
		t.Fatal("completed job must expose an output file id")
	}

	// The output must be downloadable straight away.
	downloadReq := httptest.NewRequest(http.MethodGet, "/api/download/"+job.OutputFileID, nil)
	downloadRR := httptest.NewRecorder()
	f.router.ServeHTTP(downloadRR, downloadReq)
	if downloadRR.Code != http.StatusOK {
		t.Fatalf("expected downloadable output, got %d", downloadRR.Code)
	}
}

func TestConvertHandler_RejectsInvalidBody(t *testing.T) {
	f := newHandlerFixture(t, 1<<20)

	rr := f.startConversion(t, "{not json")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestConvertHandler_RequiresFields(t *testing.T) {
	f := newHandlerFixture(t, 1<<20)

	cases := []struct {
		name    string
		payload string
	}{
		{"missing file_id", `{"file_type":"image","target_format":"jpg"}`},
		{"missing target_format", `{"file_id":"abc","file_type":"image"}`},
		{"invalid file_type", `{"file_id":"abc","file_type":"video","target_format":"jpg"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := f.startConversion(t, tc.payload)
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d, got %d: %s", http.StatusBadRequest, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestConvertHandler_RejectsUnsupportedTarget(t *testing.T) {
	f := newHandlerFixture(t, 1<<20)
	fileID := f.uploadPNG(t)

	payload, _ := json.Marshal(map[string]interface{}{
		"file_id":           fileID,
		"original_filename": "src.png",
		"file_type":         "image",
		"target_format":     "heic",
	})
	rr := f.startConversion(t, string(payload))

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d: %s", http.StatusBadRequest, rr.Code, rr.Body.String())
	}
}

func TestConvertHandler_StatusUnknownJob(t *testing.T) {
	f := newHandlerFixture(t, 1<<20)

	req := httptest.NewRequest(http.MethodGet, "/api/convert/status/missing", nil)
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
	if !bytes.Contains(rr.Body.Bytes(), []byte("not found")) {
		t.Fatalf("unexpected body: %s", rr.Body.String())
	}
}
