package http

import (
	"context"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sagarc03/gallery"
)

// API paths. The two prefixes take the folder from the rest of the path.
const (
	DirectoriesPath      = "/api/directories"
	SubdirectoriesPrefix = "/api/subdirectories/"
	ImagesPath           = "/api/images"
	ImagesPrefix         = "/api/images/"
)

// DefaultDocument is served for requests to the site root.
const DefaultDocument = "000.html"

type Service interface {
	ListDirectories(ctx context.Context) ([]string, error)
	ListSubdirectories(ctx context.Context, folder string) ([]string, error)
	ListImages(ctx context.Context) ([]string, error)
	ListFolderImages(ctx context.Context, folder string) ([]string, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled" yaml:"enabled"`
	AllowedOrigins   []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	AllowedMethods   []string `mapstructure:"allowed_methods" yaml:"allowed_methods"`
	AllowedHeaders   []string `mapstructure:"allowed_headers" yaml:"allowed_headers"`
	ExposedHeaders   []string `mapstructure:"exposed_headers" yaml:"exposed_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials" yaml:"allow_credentials"`
	MaxAge           int      `mapstructure:"max_age" yaml:"max_age"`
}

type HandlerConfig struct {
	// DefaultDocument is the file served for "/". Defaults to 000.html.
	DefaultDocument string
	CORS            CORSConfig
}

// Handler provides the HTTP handlers of the gallery.
type Handler struct {
	config  HandlerConfig
	service Service
}

// NewHandler creates a new Handler with the given configuration and service.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	cfg := *config
	if cfg.DefaultDocument == "" {
		cfg.DefaultDocument = DefaultDocument
	}
	return &Handler{
		config:  cfg,
		service: service,
	}
}

// Router returns an http.Handler with the gallery routes. Routes accept every
// method; the first matching rule wins:
//
//  1. "/" serves the default document
//  2. /api/directories lists directories under the root
//  3. /api/subdirectories/{folder} lists directories under folder
//  4. /api/images/{folder} lists images under folder
//  5. /api/images lists images under the root
//  6. anything else is read as a static file
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)

	if h.config.CORS.Enabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   h.config.CORS.AllowedOrigins,
			AllowedMethods:   h.config.CORS.AllowedMethods,
			AllowedHeaders:   h.config.CORS.AllowedHeaders,
			ExposedHeaders:   h.config.CORS.ExposedHeaders,
			AllowCredentials: h.config.CORS.AllowCredentials,
			MaxAge:           h.config.CORS.MaxAge,
		}))
	}

	r.HandleFunc("/", h.handleIndex)
	r.HandleFunc(DirectoriesPath, h.handleDirectories)
	r.HandleFunc(SubdirectoriesPrefix+"*", h.handleSubdirectories)
	r.HandleFunc(ImagesPrefix+"*", h.handleFolderImages)
	r.HandleFunc(ImagesPath, h.handleImages)
	r.HandleFunc("/*", h.handleStatic)

	return r
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	doc := url.URL{Path: "/" + h.config.DefaultDocument}
	h.serveFile(w, r, doc.EscapedPath())
}

func (h *Handler) handleDirectories(w http.ResponseWriter, r *http.Request) {
	dirs, err := h.service.ListDirectories(r.Context())
	if err != nil {
		HandleListError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, dirs)
}

func (h *Handler) handleSubdirectories(w http.ResponseWriter, r *http.Request) {
	folder := strings.TrimPrefix(r.URL.EscapedPath(), SubdirectoriesPrefix)

	dirs, err := h.service.ListSubdirectories(r.Context(), folder)
	if err != nil {
		HandleListError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, dirs)
}

func (h *Handler) handleImages(w http.ResponseWriter, r *http.Request) {
	images, err := h.service.ListImages(r.Context())
	if err != nil {
		HandleListError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, images)
}

func (h *Handler) handleFolderImages(w http.ResponseWriter, r *http.Request) {
	folder := strings.TrimPrefix(r.URL.EscapedPath(), ImagesPrefix)

	images, err := h.service.ListFolderImages(r.Context(), folder)
	if err != nil {
		HandleListError(w, err)
		return
	}
	_ = WriteJSON(w, http.StatusOK, images)
}

func (h *Handler) handleStatic(w http.ResponseWriter, r *http.Request) {
	h.serveFile(w, r, r.URL.EscapedPath())
}

// serveFile reads the file named by the escaped URL path and writes it with
// the content type registered for its extension. The extension is taken from
// the path before decoding.
func (h *Handler) serveFile(w http.ResponseWriter, r *http.Request, escaped string) {
	rawPath := "." + escaped

	filePath, err := gallery.DecodeURIComponent(rawPath)
	if err != nil {
		writeFileNotFound(w, rawPath, err)
		return
	}

	data, err := h.service.ReadFile(r.Context(), filePath)
	if err != nil {
		writeFileNotFound(w, filePath, err)
		return
	}

	WriteContent(w, http.StatusOK, gallery.ContentTypeByExtension(path.Ext(rawPath)), data)
}
