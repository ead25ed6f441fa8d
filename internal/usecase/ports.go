package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/volleyball-feed/internal/domain/match"
	"github.com/riskibarqy/volleyball-feed/internal/domain/news"
	"github.com/riskibarqy/volleyball-feed/internal/domain/team"
)

// FeedProvider fetches raw feeds from the upstream volleyball API.
type FeedProvider interface {
	FetchLive(ctx context.Context) ([]match.Match, error)
	FetchResults(ctx context.Context, division string) ([]match.Match, error)
	FetchSchedule(ctx context.Context) ([]match.Match, error)
	FetchTeams(ctx context.Context, division string) ([]team.Team, error)
	FetchNews(ctx context.Context) ([]news.Article, error)
}

// SnapshotStore is a shared cache tier behind the in-process store.
// Load reports false when the key is missing or expired.
type SnapshotStore interface {
	Load(ctx context.Context, key string, target any) (time.Time, bool, error)
	Save(ctx context.Context, key string, value any, fetchedAt time.Time) error
}

// FeedMetrics records feed outcomes. Implementations must be safe for concurrent use.
type FeedMetrics interface {
	ObserveFeedLoad(resource, source string)
	ObserveFeedFailure(resource string)
	ObserveSkippedRecords(resource string, count int)
}

type noopFeedMetrics struct{}

func (noopFeedMetrics) ObserveFeedLoad(string, string)    {}
func (noopFeedMetrics) ObserveFeedFailure(string)         {}
func (noopFeedMetrics) ObserveSkippedRecords(string, int) {}
