package aggregator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aquarion/docket-sub000/internal/business/calsets"
	"github.com/aquarion/docket-sub000/internal/database"
	"github.com/aquarion/docket-sub000/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service is the event aggregation engine. It fetches raw events from
// every source of a calendar set, folds matching occurrences into merged
// events and resolves their display styling.
type Service struct {
	logger    *zap.SugaredLogger
	db        database.PGX
	calendars calendarsRepository
	fetchers  map[model.SourceKind]Fetcher
	cache     eventsCache
}

// Fetcher returns all occurrences of one source inside a window, or a
// *model.FetchError. Partial results alongside an error are not allowed.
type Fetcher interface {
	Fetch(ctx context.Context, source *model.Source, from, to time.Time) ([]*model.RawEvent, error)
}

type calendarsRepository interface {
	GetSources(ctx context.Context, q database.Queryable) ([]*model.Source, error)
	GetCalendarSetByName(ctx context.Context, q database.Queryable, name string) (*model.CalendarSet, error)
	GetMergeOverrides(ctx context.Context, q database.Queryable) ([]*model.MergeOverride, error)
}

type eventsCache interface {
	Get(ctx context.Context, key string) ([]*model.MergedEvent, error)
	Put(ctx context.Context, key string, events []*model.MergedEvent) error
}

func NewService(
	logger *zap.SugaredLogger,
	db database.PGX,
	calendars calendarsRepository,
	fetchers map[model.SourceKind]Fetcher,
	cache eventsCache,
) *Service {
	return &Service{
		logger:    logger,
		db:        db,
		calendars: calendars,
		fetchers:  fetchers,
		cache:     cache,
	}
}

// Request describes one aggregation run.
type Request struct {
	SetName     string
	From        time.Time
	To          time.Time
	Theme       model.Theme
	BypassCache bool
}

// Aggregate runs the full pipeline: resolve the set, serve from cache
// when possible, fetch, merge, color, cache. The returned list carries no
// ordering guarantee.
func (s *Service) Aggregate(ctx context.Context, req Request) ([]*model.MergedEvent, error) {
	runID := uuid.NewString()

	sources, overrides, err := s.resolveSet(ctx, req.SetName)
	if err != nil {
		return nil, err
	}

	key := cacheKey(sources, overrides, req)
	if !req.BypassCache {
		cached, err := s.cache.Get(ctx, key)
		switch {
		case err == nil:
			s.logger.Debugw("events served from cache", "run", runID, "set", req.SetName, "key", key)
			return cached, nil
		case !errors.Is(err, model.ErrNoRecord):
			s.logger.Warnw("cache read failed", "run", runID, "key", key, "err", err)
		}
	}

	results, failures := s.fetchAll(ctx, runID, sources, req.From, req.To)

	if len(sources) > 0 && len(failures) == len(sources) {
		// An empty calendar and a broken integration must stay
		// distinguishable.
		return nil, &model.RunError{Failures: failures}
	}
	for _, f := range failures {
		s.logger.Warnw("source skipped for this run", "run", runID, "source", f.SourceID, "err", f.Err)
	}

	events := merge(sources, results, overrides, req.Theme)

	s.logger.Infow("aggregated events",
		"run", runID,
		"set", req.SetName,
		"sources", len(sources),
		"failed", len(failures),
		"events", len(events),
	)

	if err := s.cache.Put(ctx, key, events); err != nil {
		// Best-effort side channel only.
		s.logger.Warnw("cache write failed", "run", runID, "key", key, "err", err)
	}

	return events, nil
}

func (s *Service) resolveSet(ctx context.Context, name string) ([]*model.Source, []*model.MergeOverride, error) {
	sources, err := s.calendars.GetSources(ctx, s.db)
	if err != nil {
		return nil, nil, fmt.Errorf("calendars.GetSources: %w", err)
	}

	overrides, err := s.calendars.GetMergeOverrides(ctx, s.db)
	if err != nil {
		return nil, nil, fmt.Errorf("calendars.GetMergeOverrides: %w", err)
	}

	set, err := s.calendars.GetCalendarSetByName(ctx, s.db, name)
	if err != nil {
		if !errors.Is(err, model.ErrNoRecord) {
			return nil, nil, fmt.Errorf("calendars.GetCalendarSetByName: %w", err)
		}
		// Unknown set names include everything; hiding data would mask
		// the configuration mistake.
		s.logger.Warnw("unknown calendar set, including all sources", "set", name)
		set = nil
	}

	filteredSources, filteredOverrides := calsets.Filter(sources, overrides, set)
	return filteredSources, filteredOverrides, nil
}

type fetchResult struct {
	events []*model.RawEvent
	err    *model.FetchError
}

// fetchAll runs the fetch phase with one fetch in flight per distinct
// credential. Results land in per-source slots, so the merge phase folds
// them in declared order no matter how the fetches interleave.
func (s *Service) fetchAll(ctx context.Context, runID string, sources []*model.Source, from, to time.Time) (map[string][]*model.RawEvent, []*model.FetchError) {
	slots := make([]fetchResult, len(sources))

	groups := map[string][]int{}
	for i, src := range sources {
		key := credentialKey(src)
		groups[key] = append(groups[key], i)
	}

	var wg sync.WaitGroup
	for _, indexes := range groups {
		wg.Add(1)
		go func(indexes []int) {
			defer wg.Done()
			for _, i := range indexes {
				slots[i] = s.fetchOne(ctx, runID, sources[i], from, to)
			}
		}(indexes)
	}
	wg.Wait()

	results := make(map[string][]*model.RawEvent, len(sources))
	var failures []*model.FetchError
	for i, src := range sources {
		if slots[i].err != nil {
			failures = append(failures, slots[i].err)
			continue
		}
		results[src.ID] = slots[i].events
	}

	return results, failures
}

func (s *Service) fetchOne(ctx context.Context, runID string, source *model.Source, from, to time.Time) fetchResult {
	fetcher, ok := s.fetchers[source.Kind]
	if !ok {
		return fetchResult{err: &model.FetchError{
			SourceID: source.ID,
			Err:      fmt.Errorf("no fetcher for kind %q", source.Kind),
		}}
	}

	events, err := fetcher.Fetch(ctx, source, from, to)
	if err != nil {
		fetchErr := &model.FetchError{}
		if !errors.As(err, &fetchErr) {
			fetchErr = &model.FetchError{SourceID: source.ID, Err: err}
		}
		return fetchResult{err: fetchErr}
	}

	s.logger.Debugw("source fetched", "run", runID, "source", source.ID, "events", len(events))
	return fetchResult{events: events}
}

// credentialKey groups sources that share an upstream credential, so
// their fetches run sequentially against the same rate limit.
func credentialKey(src *model.Source) string {
	if src.Kind == model.SourceKindGoogle {
		return "google/" + src.Account
	}
	return string(src.Kind) + "/" + src.ID
}
