package auth

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/tousif31/simple-to-do-list/apperror"
)

const maxBodyBytes = 1 << 20

// Success returns the bare success envelope.
func Success() StatusResponse {
	return StatusResponse{Status: apperror.StatusSuccess}
}

// WriteJSON writes data as the response body. Every envelope, success or
// error, goes out with 200; clients branch on the Status field.
func WriteJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// WriteError converts err to the error envelope and logs it. Errors that are
// not AppErrors are reported to the client as a generic server error.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := apperror.FromError(err)
	if !ok {
		appErr = apperror.NewInternalError("Server error", err)
	}

	attrs := []any{
		"request_id", middleware.GetReqID(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"type", appErr.Type.String(),
		"error", appErr.Error(),
	}
	if appErr.IsServerFault() {
		slog.ErrorContext(r.Context(), "request failed", attrs...)
	} else {
		slog.WarnContext(r.Context(), "request rejected", attrs...)
	}

	WriteJSON(w, appErr.ToResponse())
}

// DecodeJSON reads the request body into dst. An empty body decodes as an
// empty object so that field validation reports what is missing.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperror.NewBadRequestError("Invalid request body", err)
	}
	return nil
}
