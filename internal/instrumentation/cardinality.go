package instrumentation

import (
	"path"
	"strconv"
	"strings"
)

// Cardinality management helpers for metrics.
// Request paths and icon sizes come from clients, so they are collapsed into
// a bounded set of label values unless detailed labels are enabled.

// knownSizes are the icon sizes that keep their own label value.
var knownSizes = map[int]bool{16: true, 32: true, 64: true, 80: true, 128: true}

// SizeLabel returns the metric label for an icon size.
//
// Example:
//
//	SizeLabel(64)   // "64"
//	SizeLabel(100)  // "other"
func SizeLabel(size int) string {
	if knownSizes[size] {
		return strconv.Itoa(size)
	}
	return "other"
}

// PathLabel returns the metric label for a request path.
//
// Example:
//
//	PathLabel("/")                      // "/"
//	PathLabel("/healthz/detailed")      // "/healthz"
//	PathLabel("/icons/icon-64.png")     // "/icons"
//	PathLabel("/src/taskpane.js")       // "/static/js"
//	PathLabel("/README")                // "/static/none"
func PathLabel(p string) string {
	switch {
	case p == "" || p == "/":
		return "/"
	case p == "/healthz" || strings.HasPrefix(p, "/healthz/"):
		return "/healthz"
	case p == "/readyz":
		return "/readyz"
	case strings.HasPrefix(p, "/icons/"):
		return "/icons"
	}
	ext := strings.TrimPrefix(strings.ToLower(path.Ext(p)), ".")
	switch ext {
	case "html", "css", "js", "json", "png", "jpg", "svg", "ico", "xml":
		return "/static/" + ext
	case "":
		return "/static/none"
	default:
		return "/static/other"
	}
}
