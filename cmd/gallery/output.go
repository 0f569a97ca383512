package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/sagarc03/gallery"
	"github.com/sagarc03/gallery/client"
)

// ListKind selects what a listing contains.
type ListKind string

const (
	ListDirectories ListKind = "directories"
	ListImages      ListKind = "images"
)

// ListResult is the outcome of an ls run.
type ListResult struct {
	Kind   ListKind `json:"kind"`
	Folder string   `json:"folder"`
	Items  []string `json:"items"`
}

// Formatter formats results for output.
type Formatter interface {
	FormatList(w io.Writer, result *ListResult) error
	FormatDownload(w io.Writer, result *client.DownloadResult) error
	FormatError(w io.Writer, err error) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput, quiet bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{Quiet: quiet}
}

// HumanFormatter outputs human-readable text.
type HumanFormatter struct {
	Quiet bool
}

// FormatList prints one entry per line. Image paths of a named folder are
// printed decoded.
func (f *HumanFormatter) FormatList(w io.Writer, result *ListResult) error {
	for _, item := range result.Items {
		name := item
		if result.Kind == ListImages && result.Folder != "" {
			if decoded, err := decodeImagePath(item); err == nil {
				name = decoded
			}
		}
		_, _ = fmt.Fprintln(w, name)
	}

	if !f.Quiet {
		where := "gallery root"
		if result.Folder != "" {
			where = result.Folder
		}
		_, _ = fmt.Fprintf(w, "%s %s in %s\n", humanize.Comma(int64(len(result.Items))), result.Kind, where)
	}
	return nil
}

// FormatDownload prints where a fetched file was written.
func (f *HumanFormatter) FormatDownload(w io.Writer, result *client.DownloadResult) error {
	if f.Quiet {
		return nil
	}
	_, _ = fmt.Fprintf(w, "%s -> %s (%s)\n", result.RemotePath, result.LocalPath, humanize.Bytes(uint64(max(result.Size, 0))))
	return nil
}

// FormatError formats an error as human-readable text.
func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

// FormatList writes the items as the same JSON array the HTTP API returns.
func (f *JSONFormatter) FormatList(w io.Writer, result *ListResult) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(result.Items)
}

// FormatDownload writes the download result as JSON.
func (f *JSONFormatter) FormatDownload(w io.Writer, result *client.DownloadResult) error {
	return json.NewEncoder(w).Encode(result)
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	return json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}

// decodeImagePath turns "enc(folder)/enc(name)" back into "folder/name".
func decodeImagePath(item string) (string, error) {
	encFolder, encName, ok := strings.Cut(item, "/")
	if !ok {
		return gallery.DecodeURIComponent(item)
	}

	folder, err := gallery.DecodeURIComponent(encFolder)
	if err != nil {
		return "", err
	}
	name, err := gallery.DecodeURIComponent(encName)
	if err != nil {
		return "", err
	}
	return folder + "/" + name, nil
}
