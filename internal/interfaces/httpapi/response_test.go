package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/no-draw-tracker/internal/usecase"
)

func decodeErrorBody(t *testing.T, rec *httptest.ResponseRecorder) errorBody {
	t.Helper()

	var body errorEnvelope
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return body.Error
}

func TestWriteError_InvalidInput(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, fmt.Errorf("%w: minGames must be >= 0", usecase.ErrInvalidInput))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	body := decodeErrorBody(t, rec)
	if body.Code != http.StatusBadRequest || body.Status != "INVALID_ARGUMENT" {
		t.Fatalf("unexpected error body: %+v", body)
	}
	if body.Message == "" {
		t.Fatalf("expected message")
	}
}

func TestWriteError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, errors.New("dial tcp 10.0.0.7:443: connection refused"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	body := decodeErrorBody(t, rec)
	if body.Message != internalErrorMessage || body.Status != "INTERNAL" {
		t.Fatalf("unexpected error body: %+v", body)
	}
}

func TestWriteError_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	writeError(context.Background(), rec, errMethodNotAllowed)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected status 405, got %d", rec.Code)
	}
}
