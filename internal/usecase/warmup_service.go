package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/volleyball-feed/internal/platform/id"
	"github.com/riskibarqy/volleyball-feed/internal/platform/logging"
)

const (
	warmupStatusSuccess = "success"
	warmupStatusFailed  = "failed"
)

type feedRefresher interface {
	Refresh(ctx context.Context, resource, division string) error
}

type WarmupTaskResult struct {
	Resource   string
	Division   string
	Status     string
	Message    string
	DurationMs int64
}

type WarmupResult struct {
	RunID        string
	Tasks        []WarmupTaskResult
	SuccessCount int
	FailedCount  int
}

type warmupTask struct {
	resource string
	division string
}

// WarmupService pre-fetches every feed so request paths hit a warm cache.
type WarmupService struct {
	refresher feedRefresher
	divisions []string
	workers   int
	ids       id.Generator
	logger    *logging.Logger
}

func NewWarmupService(refresher feedRefresher, divisions []string, workers int, logger *logging.Logger) *WarmupService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers < 1 {
		workers = 1
	}
	if len(divisions) == 0 {
		divisions = []string{DefaultDivision}
	}

	return &WarmupService{
		refresher: refresher,
		divisions: append([]string(nil), divisions...),
		workers:   workers,
		ids:       id.NewRandomGenerator("wu-"),
		logger:    logger,
	}
}

func (s *WarmupService) tasks() []warmupTask {
	tasks := []warmupTask{
		{resource: ResourceLive},
		{resource: ResourceSchedule},
		{resource: ResourceNews},
	}
	for _, division := range s.divisions {
		tasks = append(tasks,
			warmupTask{resource: ResourceResults, division: division},
			warmupTask{resource: ResourceTeams, division: division},
		)
	}
	return tasks
}

// RunOnce refreshes every feed on a bounded worker pool. Individual failures are
// reported in the result, not returned.
func (s *WarmupService) RunOnce(ctx context.Context) (WarmupResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.WarmupService.RunOnce")
	defer span.End()

	runID, err := s.ids.NewID()
	if err != nil {
		return WarmupResult{}, fmt.Errorf("generate warmup run id: %w", err)
	}

	tasks := s.tasks()
	results := make(chan WarmupTaskResult, len(tasks))

	var successCount atomic.Int32
	var failedCount atomic.Int32

	pool, err := ants.NewPool(s.workers)
	if err != nil {
		return WarmupResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var workers sync.WaitGroup
	for _, task := range tasks {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := WarmupTaskResult{
				Resource: task.resource,
				Division: task.division,
				Status:   warmupStatusSuccess,
			}
			if err := s.refresher.Refresh(ctx, task.resource, task.division); err != nil {
				row.Status = warmupStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			} else {
				successCount.Add(1)
			}
			row.DurationMs = time.Since(start).Milliseconds()
			results <- row
		}); err != nil {
			workers.Done()
			return WarmupResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	out := WarmupResult{RunID: runID, Tasks: make([]WarmupTaskResult, 0, len(tasks))}
	for row := range results {
		out.Tasks = append(out.Tasks, row)
	}
	sort.SliceStable(out.Tasks, func(i, j int) bool {
		if out.Tasks[i].Resource != out.Tasks[j].Resource {
			return out.Tasks[i].Resource < out.Tasks[j].Resource
		}
		return out.Tasks[i].Division < out.Tasks[j].Division
	})
	out.SuccessCount = int(successCount.Load())
	out.FailedCount = int(failedCount.Load())

	return out, nil
}

// Run warms the cache immediately and then every interval until ctx is cancelled.
func (s *WarmupService) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.runAndLog(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (s *WarmupService) runAndLog(ctx context.Context) {
	result, err := s.RunOnce(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "feed warmup failed", "error", err)
		return
	}
	if result.FailedCount > 0 {
		for _, row := range result.Tasks {
			if row.Status == warmupStatusFailed {
				s.logger.WarnContext(ctx, "feed warmup task failed",
					"run_id", result.RunID,
					"resource", row.Resource,
					"division", row.Division,
					"error", row.Message,
				)
			}
		}
	}
	s.logger.InfoContext(ctx, "feed warmup finished",
		"run_id", result.RunID,
		"success", result.SuccessCount,
		"failed", result.FailedCount,
	)
}
