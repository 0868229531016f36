package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "ryloze-converter/pkg/errors"
)

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()

	writeJSON(rr, http.StatusCreated, map[string]string{"key": "value"})

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %s", ct)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["key"] != "value" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "something went wrong")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode body: %v", err)
	}
	if body["error"] != "something went wrong" {
		t.Fatalf("unexpected body: %v", body)
	}
}

func TestWriteAppError_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", apperrors.NewValidationError("bad input"), http.StatusBadRequest},
		{"too large", apperrors.NewTooLargeError("file too big"), http.StatusRequestEntityTooLarge},
		{"not found", apperrors.NewNotFoundError("missing"), http.StatusNotFound},
		{"conversion", apperrors.NewConversionError("cannot convert", nil), http.StatusUnprocessableEntity},
		{"storage", apperrors.NewStorageError("disk failed", nil), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			writeAppError(rr, tc.err)
			if rr.Code != tc.want {
				t.Fatalf("expected status %d, got %d", tc.want, rr.Code)
			}
		})
	}
}
