package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sagarc03/gallery"
)

// WriteJSON writes data as JSON indented with two spaces. HTML characters are
// written as they are.
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		WriteText(w, http.StatusInternalServerError, "Error encoding response: "+err.Error())
		return err
	}

	WriteContent(w, code, gallery.JSONContentType, bytes.TrimRight(buf.Bytes(), "\n"))
	return nil
}

// WriteText writes a plain-text response.
func WriteText(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", gallery.DefaultContentType)
	w.WriteHeader(code)
	if _, err := io.WriteString(w, message); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}

// WriteContent writes raw bytes with the given content type.
func WriteContent(w http.ResponseWriter, code int, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	if _, err := w.Write(data); err != nil {
		slog.Warn("failed to write response", "error", err)
	}
}

// HandleListError answers a failed directory or image listing with 500 and
// the error text in a plain-text body.
func HandleListError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gallery.ErrIllegalPath):
		slog.Warn("rejected folder outside root", "error", err)
	case errors.Is(err, gallery.ErrNotFound), errors.Is(err, gallery.ErrInvalidInput):
		slog.Info("listing failed", "error", err)
	default:
		slog.Error("listing failed", "error", err)
	}

	WriteText(w, http.StatusInternalServerError, "Error reading directory: "+err.Error())
}
