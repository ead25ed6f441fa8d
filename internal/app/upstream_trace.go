package app

import (
	"net/http"
	"strings"
)

const maxTracedPathLength = 128

// formatUpstreamSpanName names client spans after the upstream resource, e.g. "vbdb GET /results".
// The query string is dropped so division values do not fan out span names.
func formatUpstreamSpanName(_ string, r *http.Request) string {
	path := "/"
	if r.URL != nil {
		path = strings.TrimSpace(r.URL.Path)
	}
	if path == "" {
		path = "/"
	}
	if len(path) > maxTracedPathLength {
		path = path[:maxTracedPathLength] + "..."
	}

	return "vbdb " + r.Method + " " + path
}
