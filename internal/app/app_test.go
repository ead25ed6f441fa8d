package app

import (
	"testing"
	"time"

	"github.com/riskibarqy/volleyball-feed/internal/config"
)

func TestUpstreamLoadBudget(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want time.Duration
	}{
		{name: "single attempt", cfg: config.Config{VBDBTimeout: 15 * time.Second}, want: 15 * time.Second},
		{
			name: "retries with linear backoff",
			cfg:  config.Config{VBDBTimeout: 15 * time.Second, VBDBMaxRetries: 2, VBDBRetryBackoff: 500 * time.Millisecond},
			want: 45*time.Second + 1500*time.Millisecond,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := upstreamLoadBudget(tt.cfg); got != tt.want {
				t.Fatalf("upstreamLoadBudget()=%s want=%s", got, tt.want)
			}
		})
	}
}
