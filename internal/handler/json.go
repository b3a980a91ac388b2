package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/msomdec/victim-store/internal/domain"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

type fieldErrorDTO struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type errorDTO struct {
	Error  string          `json:"error"`
	Fields []fieldErrorDTO `json:"fields,omitempty"`
}

// writeJSON sends a JSON response with the given status code and data.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("write JSON response", "error", err)
	}
}

// writeError sends a JSON error response with the given status code and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorDTO{Error: message})
}

// writeValidationError reports every violated field. Errors that are not a
// *domain.ValidationError are sent with their message only.
func writeValidationError(w http.ResponseWriter, status int, err error) {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		writeError(w, status, err.Error())
		return
	}

	body := errorDTO{Error: "Validation failed.", Fields: make([]fieldErrorDTO, len(verr.Fields))}
	for i, f := range verr.Fields {
		body.Fields[i] = fieldErrorDTO{Field: f.Field, Message: f.Message}
	}
	writeJSON(w, status, body)
}

var errTrailingData = errors.New("request body must contain a single JSON value")

// readJSON decodes the request body into the given destination. The body must
// hold exactly one JSON value.
func readJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}
