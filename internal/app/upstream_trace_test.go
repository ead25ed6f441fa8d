package app

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFormatUpstreamSpanName(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   string
	}{
		{name: "drops query", target: "https://api.example.com/results?division=D-II", want: "vbdb GET /results"},
		{name: "root", target: "https://api.example.com", want: "vbdb GET /"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if got := formatUpstreamSpanName("", req); got != tt.want {
				t.Fatalf("formatUpstreamSpanName()=%q want=%q", got, tt.want)
			}
		})
	}
}

func TestFormatUpstreamSpanName_TruncatesLongPath(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "https://api.example.com/"+strings.Repeat("a", 300), nil)
	got := formatUpstreamSpanName("", req)
	if !strings.HasSuffix(got, "...") {
		t.Fatalf("expected truncated span name, got %q", got)
	}
	if len(got) > len("vbdb GET ")+maxTracedPathLength+3 {
		t.Fatalf("span name too long: %d", len(got))
	}
}
