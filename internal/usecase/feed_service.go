package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/volleyball-feed/internal/domain/match"
	"github.com/riskibarqy/volleyball-feed/internal/domain/news"
	"github.com/riskibarqy/volleyball-feed/internal/domain/team"
	"github.com/riskibarqy/volleyball-feed/internal/platform/cache"
	"github.com/riskibarqy/volleyball-feed/internal/platform/logging"
)

const (
	ResourceLive     = "live"
	ResourceResults  = "results"
	ResourceSchedule = "schedule"
	ResourceTeams    = "teams"
	ResourceNews     = "news"

	DefaultDivision = "D-I"
)

const (
	sourceMemory   = "memory"
	sourceSnapshot = "snapshot"
	sourceUpstream = "upstream"
)

// FeedResult is a derived view over one feed snapshot.
// Stale is set when the feed could not be fetched and Items is empty.
// Skipped counts records left out because their scores could not be parsed.
type FeedResult[T any] struct {
	Items     []T
	FetchedAt time.Time
	Stale     bool
	Skipped   int
}

type snapshot[T any] struct {
	Items     []T       `json:"items"`
	FetchedAt time.Time `json:"fetched_at"`
}

type FeedServiceOption func(*FeedService)

// WithSnapshotStore adds a shared cache tier consulted before the upstream API.
func WithSnapshotStore(store SnapshotStore) FeedServiceOption {
	return func(s *FeedService) {
		s.snapshots = store
	}
}

func WithFeedMetrics(metrics FeedMetrics) FeedServiceOption {
	return func(s *FeedService) {
		if metrics != nil {
			s.metrics = metrics
		}
	}
}

// FeedService serves filtered views over the upstream feeds through an explicit cache.
type FeedService struct {
	provider  FeedProvider
	store     *cache.Store
	snapshots SnapshotStore
	metrics   FeedMetrics
	logger    *logging.Logger
	now       func() time.Time
}

func NewFeedService(provider FeedProvider, store *cache.Store, logger *logging.Logger, opts ...FeedServiceOption) *FeedService {
	if logger == nil {
		logger = logging.Default()
	}
	if store == nil {
		store = cache.NewStore(0)
	}

	s := &FeedService{
		provider: provider,
		store:    store,
		metrics:  noopFeedMetrics{},
		logger:   logger,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FeedService) Live(ctx context.Context, criteria match.Criteria) FeedResult[match.Match] {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedService.Live")
	defer span.End()

	return s.filterMatches(ctx, ResourceLive, s.liveFeed(ctx), criteria)
}

func (s *FeedService) Results(ctx context.Context, division string, criteria match.Criteria) FeedResult[match.Match] {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedService.Results")
	defer span.End()

	return s.filterMatches(ctx, ResourceResults, s.resultsFeed(ctx, division), criteria)
}

// ResultsByDate keeps results whose date equals date exactly.
func (s *FeedService) ResultsByDate(ctx context.Context, division, date string) FeedResult[match.Match] {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedService.ResultsByDate")
	defer span.End()

	feed := s.resultsFeed(ctx, division)
	feed.Items = match.ByDate(feed.Items, date)
	return s.filterMatches(ctx, ResourceResults, feed, match.Criteria{})
}

func (s *FeedService) ResultsByTeam(ctx context.Context, division, teamID string) FeedResult[match.Match] {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedService.ResultsByTeam")
	defer span.End()

	feed := s.resultsFeed(ctx, division)
	feed.Items = match.ByTeam(feed.Items, teamID)
	return s.filterMatches(ctx, ResourceResults, feed, match.Criteria{})
}

func (s *FeedService) Schedule(ctx context.Context, criteria match.Criteria) FeedResult[match.Match] {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedService.Schedule")
	defer span.End()

	return s.filterMatches(ctx, ResourceSchedule, s.scheduleFeed(ctx), criteria)
}

// ScheduleByDate keeps scheduled matches whose date starts with date, since schedule dates carry a time.
func (s *FeedService) ScheduleByDate(ctx context.Context, date string) FeedResult[match.Match] {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedService.ScheduleByDate")
	defer span.End()

	feed := s.scheduleFeed(ctx)
	feed.Items = match.ByDatePrefix(feed.Items, date)
	return s.filterMatches(ctx, ResourceSchedule, feed, match.Criteria{})
}

func (s *FeedService) ScheduleByTeam(ctx context.Context, teamID string) FeedResult[match.Match] {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedService.ScheduleByTeam")
	defer span.End()

	feed := s.scheduleFeed(ctx)
	feed.Items = match.ByTeam(feed.Items, teamID)
	return s.filterMatches(ctx, ResourceSchedule, feed, match.Criteria{})
}

func (s *FeedService) Teams(ctx context.Context, division string) FeedResult[team.Team] {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedService.Teams")
	defer span.End()

	return s.teamsFeed(ctx, division)
}

// Conferences lists conferences from the teams feed of division, narrowed to
// teams in filterDivision when it is set.
func (s *FeedService) Conferences(ctx context.Context, division, filterDivision string) FeedResult[string] {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedService.Conferences")
	defer span.End()

	feed := s.teamsFeed(ctx, division)
	return deriveResult(feed, team.Conferences(feed.Items, filterDivision))
}

func (s *FeedService) Divisions(ctx context.Context, division string) FeedResult[string] {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedService.Divisions")
	defer span.End()

	feed := s.teamsFeed(ctx, division)
	return deriveResult(feed, team.Divisions(feed.Items))
}

func (s *FeedService) TeamsByConference(ctx context.Context, division, conference string) FeedResult[team.Team] {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedService.TeamsByConference")
	defer span.End()

	feed := s.teamsFeed(ctx, division)
	feed.Items = team.ByConference(feed.Items, conference)
	return feed
}

// News returns the news feed, narrowed to one division key when division is set.
func (s *FeedService) News(ctx context.Context, division string) FeedResult[news.Article] {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedService.News")
	defer span.End()

	feed := load(ctx, s, ResourceNews, nil, s.provider.FetchNews)
	if division = strings.TrimSpace(division); division != "" {
		feed.Items = news.ByDivision(feed.Items, division)
	}
	return feed
}

// Refresh re-fetches one feed from upstream and replaces the cached entry.
// It returns the error so background jobs can report it.
func (s *FeedService) Refresh(ctx context.Context, resource, division string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.FeedService.Refresh")
	defer span.End()

	division = divisionOrDefault(division)
	switch resource {
	case ResourceLive:
		return refresh(ctx, s, resource, nil, s.provider.FetchLive)
	case ResourceSchedule:
		return refresh(ctx, s, resource, nil, s.provider.FetchSchedule)
	case ResourceNews:
		return refresh(ctx, s, resource, nil, s.provider.FetchNews)
	case ResourceResults:
		return refresh(ctx, s, resource, []string{division}, func(ctx context.Context) ([]match.Match, error) {
			return s.provider.FetchResults(ctx, division)
		})
	case ResourceTeams:
		return refresh(ctx, s, resource, []string{division}, func(ctx context.Context) ([]team.Team, error) {
			return s.provider.FetchTeams(ctx, division)
		})
	default:
		return fmt.Errorf("%w: unknown resource %q", ErrInvalidInput, resource)
	}
}

// Invalidate drops every cached entry of resource.
func (s *FeedService) Invalidate(ctx context.Context, resource string) {
	s.store.Delete(ctx, resource)
	s.store.DeletePrefix(ctx, resource+":")
}

func (s *FeedService) CacheStats() cache.Stats {
	return s.store.Stats()
}

func (s *FeedService) liveFeed(ctx context.Context) FeedResult[match.Match] {
	return load(ctx, s, ResourceLive, nil, s.provider.FetchLive)
}

func (s *FeedService) scheduleFeed(ctx context.Context) FeedResult[match.Match] {
	return load(ctx, s, ResourceSchedule, nil, s.provider.FetchSchedule)
}

func (s *FeedService) resultsFeed(ctx context.Context, division string) FeedResult[match.Match] {
	division = divisionOrDefault(division)
	return load(ctx, s, ResourceResults, []string{division}, func(ctx context.Context) ([]match.Match, error) {
		return s.provider.FetchResults(ctx, division)
	})
}

func (s *FeedService) teamsFeed(ctx context.Context, division string) FeedResult[team.Team] {
	division = divisionOrDefault(division)
	return load(ctx, s, ResourceTeams, []string{division}, func(ctx context.Context) ([]team.Team, error) {
		return s.provider.FetchTeams(ctx, division)
	})
}

// filterMatches applies criteria and classifies every record it serves, so a
// malformed record is always left out and counted even without a status stage.
func (s *FeedService) filterMatches(ctx context.Context, resource string, feed FeedResult[match.Match], criteria match.Criteria) FeedResult[match.Match] {
	if criteria.Status == nil {
		all := match.AllStatuses()
		criteria.Status = &all
	}

	filtered, err := match.Filter(feed.Items, criteria)
	if err != nil {
		skipped := countJoined(err)
		s.metrics.ObserveSkippedRecords(resource, skipped)
		s.logger.WarnContext(ctx, "skipped matches with malformed scores",
			"resource", resource,
			"skipped", skipped,
			"error", err,
		)
		feed.Skipped = skipped
	}
	feed.Items = filtered
	return feed
}

// load returns the cached feed or fetches it. A failed fetch yields an empty, stale result.
func load[T any](ctx context.Context, s *FeedService, resource string, parts []string, fetch func(context.Context) ([]T, error)) FeedResult[T] {
	key := cache.Key(resource, parts...)

	source := sourceMemory
	value, err := s.store.GetOrLoadAt(ctx, key, func(ctx context.Context) (any, time.Time, error) {
		if snap, ok := loadSnapshot[T](ctx, s, key); ok {
			source = sourceSnapshot
			return snap, snap.FetchedAt, nil
		}

		source = sourceUpstream
		items, err := fetch(ctx)
		if err != nil {
			return nil, time.Time{}, err
		}
		snap := snapshot[T]{Items: items, FetchedAt: s.now().UTC()}
		saveSnapshot(ctx, s, key, snap)
		return snap, snap.FetchedAt, nil
	})
	if err != nil {
		s.metrics.ObserveFeedFailure(resource)
		s.logger.WarnContext(ctx, "feed fetch failed, serving empty collection",
			"resource", resource,
			"key", key,
			"error", err,
		)
		return FeedResult[T]{Items: []T{}, Stale: true}
	}
	s.metrics.ObserveFeedLoad(resource, source)

	snap, ok := value.(snapshot[T])
	if !ok {
		s.logger.ErrorContext(ctx, "unexpected cached feed type", "key", key, "type", fmt.Sprintf("%T", value))
		return FeedResult[T]{Items: []T{}, Stale: true}
	}

	items := make([]T, len(snap.Items))
	copy(items, snap.Items)
	return FeedResult[T]{Items: items, FetchedAt: snap.FetchedAt}
}

func refresh[T any](ctx context.Context, s *FeedService, resource string, parts []string, fetch func(context.Context) ([]T, error)) error {
	items, err := fetch(ctx)
	if err != nil {
		s.metrics.ObserveFeedFailure(resource)
		return err
	}

	key := cache.Key(resource, parts...)
	snap := snapshot[T]{Items: items, FetchedAt: s.now().UTC()}
	s.store.SetAt(ctx, key, snap, snap.FetchedAt)
	saveSnapshot(ctx, s, key, snap)
	s.metrics.ObserveFeedLoad(resource, sourceUpstream)
	return nil
}

func loadSnapshot[T any](ctx context.Context, s *FeedService, key string) (snapshot[T], bool) {
	if s.snapshots == nil {
		return snapshot[T]{}, false
	}

	var items []T
	fetchedAt, ok, err := s.snapshots.Load(ctx, key, &items)
	if err != nil {
		s.logger.WarnContext(ctx, "snapshot load failed", "key", key, "error", err)
		return snapshot[T]{}, false
	}
	if !ok {
		return snapshot[T]{}, false
	}
	return snapshot[T]{Items: items, FetchedAt: fetchedAt}, true
}

func saveSnapshot[T any](ctx context.Context, s *FeedService, key string, snap snapshot[T]) {
	if s.snapshots == nil {
		return
	}
	if err := s.snapshots.Save(ctx, key, snap.Items, snap.FetchedAt); err != nil {
		s.logger.WarnContext(ctx, "snapshot save failed", "key", key, "error", err)
	}
}

func deriveResult[T, U any](feed FeedResult[T], items []U) FeedResult[U] {
	return FeedResult[U]{
		Items:     items,
		FetchedAt: feed.FetchedAt,
		Stale:     feed.Stale,
		Skipped:   feed.Skipped,
	}
}

func countJoined(err error) int {
	if err == nil {
		return 0
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return len(joined.Unwrap())
	}
	return 1
}

func divisionOrDefault(division string) string {
	division = strings.TrimSpace(division)
	if division == "" {
		return DefaultDivision
	}
	return division
}
