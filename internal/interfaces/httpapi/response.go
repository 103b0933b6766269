package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/no-draw-tracker/internal/usecase"
)

const internalErrorMessage = "internal server error"

var errMethodNotAllowed = errors.New("method not allowed")

type errorEnvelope struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Status     string
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	_, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

// writeError maps err to a status. Server-side failures only expose a generic message.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(err)
	message := err.Error()
	if mapped.HTTPStatus >= http.StatusInternalServerError {
		message = internalErrorMessage
		if mapped.HTTPStatus == http.StatusServiceUnavailable {
			message = "upstream data source unavailable"
		}
	}
	writeJSON(ctx, w, mapped.HTTPStatus, errorEnvelope{Error: errorBody{
		Code:    mapped.HTTPStatus,
		Status:  mapped.Status,
		Message: message,
	}})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeJSON(ctx, w, http.StatusInternalServerError, errorEnvelope{Error: errorBody{
		Code:    http.StatusInternalServerError,
		Status:  "INTERNAL",
		Message: internalErrorMessage,
	}})
}

func mapError(err error) mappedError {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return mappedError{HTTPStatus: http.StatusBadRequest, Status: "INVALID_ARGUMENT"}
	case errors.Is(err, errMethodNotAllowed):
		return mappedError{HTTPStatus: http.StatusMethodNotAllowed, Status: "METHOD_NOT_ALLOWED"}
	case errors.Is(err, usecase.ErrDependencyUnavailable):
		return mappedError{HTTPStatus: http.StatusServiceUnavailable, Status: "UNAVAILABLE"}
	default:
		return mappedError{HTTPStatus: http.StatusInternalServerError, Status: "INTERNAL"}
	}
}
