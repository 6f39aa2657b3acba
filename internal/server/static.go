package server

import (
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/wadespear/outlook-chatgpt-addin/internal/logging"
)

// DefaultIndex is the asset served for "/".
const DefaultIndex = "/src/taskpane.html"

// defaultContentType is used for extensions missing from mimeTypes.
const defaultContentType = "application/octet-stream"

// mimeTypes maps lower-case file extensions to the content types Office
// expects for add-in assets.
var mimeTypes = map[string]string{
	".html": "text/html",
	".css":  "text/css",
	".js":   "application/javascript",
	".json": "application/json",
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
}

// ContentType returns the content type for a file name.
func ContentType(name string) string {
	if ct, ok := mimeTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return defaultContentType
}

// setCORSHeaders allows the Office host, which loads the add-in from another
// origin, to fetch assets.
func setCORSHeaders(h http.Header) {
	h.Set("Access-Control-Allow-Origin", "*")
	h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	h.Set("Access-Control-Allow-Headers", "Content-Type")
}

// StaticHandler serves add-in assets from a directory.
type StaticHandler struct {
	root   string
	index  string
	logger *slog.Logger
}

// NewStaticHandler returns a handler serving files under root. Requests for
// "/" are answered with index. If logger is nil, slog.Default() is used.
func NewStaticHandler(root, index string, logger *slog.Logger) *StaticHandler {
	if root == "" {
		root = "."
	}
	if index == "" {
		index = DefaultIndex
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &StaticHandler{
		root:   root,
		index:  index,
		logger: logging.WithComponent(logger, "static"),
	}
}

// resolve maps a request path to a file below root. Cleaning the path as an
// absolute URL path removes any ".." segments before it is joined.
func (h *StaticHandler) resolve(urlPath string) string {
	if urlPath == "/" || urlPath == "" {
		urlPath = h.index
	}
	cleaned := path.Clean("/" + urlPath)
	return filepath.Join(h.root, filepath.FromSlash(cleaned))
}

func (h *StaticHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	setCORSHeaders(w.Header())

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	filePath := h.resolve(r.URL.Path)
	content, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		h.logger.Warn("failed to read asset", logging.Path(filePath), logging.Err(err))
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", ContentType(filePath))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}
