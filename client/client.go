package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sagarc03/gallery"
	galleryhttp "github.com/sagarc03/gallery/http"
)

// DefaultTimeout is the default HTTP client timeout.
const DefaultTimeout = 30 * time.Second

// Client performs requests against a gallery server.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// New creates a Client for the server at endpoint.
func New(endpoint string, opts ...Option) (*Client, error) {
	endpoint = strings.TrimSuffix(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return nil, ErrEndpointRequired
	}

	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("parse endpoint: unsupported scheme %q", u.Scheme)
	}

	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ListDirectories lists the folders directly under the gallery root.
func (c *Client) ListDirectories(ctx context.Context) ([]string, error) {
	return c.list(ctx, galleryhttp.DirectoriesPath)
}

// ListSubdirectories lists the folders under folder. folder is URI encoded,
// the way it appears in the API path.
func (c *Client) ListSubdirectories(ctx context.Context, folder string) ([]string, error) {
	return c.list(ctx, galleryhttp.SubdirectoriesPrefix+folder)
}

// ListImages lists the image files directly under the gallery root.
func (c *Client) ListImages(ctx context.Context) ([]string, error) {
	return c.list(ctx, galleryhttp.ImagesPath)
}

// ListFolderImages lists the image files under the URI-encoded folder.
func (c *Client) ListFolderImages(ctx context.Context, folder string) ([]string, error) {
	return c.list(ctx, galleryhttp.ImagesPrefix+folder)
}

func (c *Client) list(ctx context.Context, escapedPath string) ([]string, error) {
	body, err := c.get(ctx, escapedPath)
	if err != nil {
		return nil, err
	}

	var items []string
	if err := json.Unmarshal(body, &items); err != nil {
		return nil, fmt.Errorf("parse response: %w", err)
	}
	if items == nil {
		items = []string{}
	}
	return items, nil
}

func (c *Client) get(ctx context.Context, escapedPath string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+escapedPath, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return body, nil
}

// DownloadOptions configures a download.
type DownloadOptions struct {
	// RemotePath is the plain, unencoded path below the gallery root,
	// e.g. "旅行/海边 1.webp". Each segment is encoded on the wire.
	RemotePath string
	// LocalPath is where the file is written. Empty derives the name from
	// RemotePath; "-" hands the body back to the caller instead.
	LocalPath string
}

// DownloadResult describes a finished download.
type DownloadResult struct {
	RemotePath  string `json:"remote_path"`
	LocalPath   string `json:"local_path"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size_bytes"`
}

// Download fetches a file served by the gallery.
// If opts.LocalPath is "-", the content is returned via the io.ReadCloser and must be closed by the caller.
// Otherwise, the content is written to the file and the io.ReadCloser is nil.
func (c *Client) Download(ctx context.Context, opts DownloadOptions) (*DownloadResult, io.ReadCloser, error) {
	remotePath := strings.Trim(opts.RemotePath, "/")
	if remotePath == "" {
		return nil, nil, fmt.Errorf("download: %w", ErrEmptyPath)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+EscapePath(remotePath), http.NoBody)
	if err != nil {
		return nil, nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("do request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		return nil, nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	result := &DownloadResult{
		RemotePath:  remotePath,
		ContentType: resp.Header.Get("Content-Type"),
		Size:        resp.ContentLength,
	}

	if opts.LocalPath == "-" {
		result.LocalPath = "-"
		return result, resp.Body, nil
	}

	localPath := opts.LocalPath
	if localPath == "" {
		localPath = filepath.Base(filepath.FromSlash(remotePath))
	}
	result.LocalPath = localPath

	if dir := filepath.Dir(localPath); dir != "" && dir != "." {
		if mkdirErr := os.MkdirAll(dir, 0o750); mkdirErr != nil {
			_ = resp.Body.Close()
			return nil, nil, fmt.Errorf("create directory: %w", mkdirErr)
		}
	}

	file, createErr := os.Create(localPath) //#nosec G304 -- localPath is user-provided input
	if createErr != nil {
		_ = resp.Body.Close()
		return nil, nil, fmt.Errorf("create file: %w", createErr)
	}

	written, copyErr := io.Copy(file, resp.Body)
	_ = resp.Body.Close()
	if copyErr != nil {
		_ = file.Close()
		return nil, nil, fmt.Errorf("write file: %w", copyErr)
	}

	if closeErr := file.Close(); closeErr != nil {
		return nil, nil, fmt.Errorf("close file: %w", closeErr)
	}

	result.Size = written
	return result, nil, nil
}

// EscapePath encodes every segment of a slash-separated path and returns it
// with a leading slash, ready to append to the endpoint.
func EscapePath(p string) string {
	segments := strings.Split(strings.Trim(p, "/"), "/")
	for i, s := range segments {
		segments[i] = gallery.EncodeURIComponent(s)
	}
	return "/" + strings.Join(segments, "/")
}
