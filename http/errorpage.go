package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sagarc03/gallery"
)

// writeFileNotFound answers every failed static read with 404. filePath is
// the decoded path including its "./" prefix.
func writeFileNotFound(w http.ResponseWriter, filePath string, err error) {
	if errors.Is(err, gallery.ErrNotFound) {
		slog.Debug("file not found", "path", filePath)
	} else {
		slog.Warn("file read failed", "path", filePath, "error", err)
	}

	WriteText(w, http.StatusNotFound, fmt.Sprintf("File %s not found!", filePath))
}
