package aggregator

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/aquarion/docket-sub000/internal/database"
	"github.com/aquarion/docket-sub000/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCalendars struct {
	sources   []*model.Source
	sets      map[string]*model.CalendarSet
	overrides []*model.MergeOverride
}

func (s *stubCalendars) GetSources(context.Context, database.Queryable) ([]*model.Source, error) {
	return s.sources, nil
}

func (s *stubCalendars) GetCalendarSetByName(_ context.Context, _ database.Queryable, name string) (*model.CalendarSet, error) {
	if set, ok := s.sets[name]; ok {
		return set, nil
	}
	return nil, model.ErrNoRecord
}

func (s *stubCalendars) GetMergeOverrides(context.Context, database.Queryable) ([]*model.MergeOverride, error) {
	return s.overrides, nil
}

type stubFetcher struct {
	events map[string][]*model.RawEvent
	errs   map[string]error

	mu    sync.Mutex
	calls []string
}

func (f *stubFetcher) Fetch(_ context.Context, source *model.Source, _, _ time.Time) ([]*model.RawEvent, error) {
	f.mu.Lock()
	f.calls = append(f.calls, source.ID)
	f.mu.Unlock()
	if err, ok := f.errs[source.ID]; ok {
		return nil, err
	}
	return f.events[source.ID], nil
}

type memoryCache struct {
	values   map[string][]*model.MergedEvent
	puts     int
	putErr   error
	disabled bool
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]*model.MergedEvent{}}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]*model.MergedEvent, error) {
	if c.disabled {
		return nil, errors.New("cache down")
	}
	if v, ok := c.values[key]; ok {
		return v, nil
	}
	return nil, model.ErrNoRecord
}

func (c *memoryCache) Put(_ context.Context, key string, events []*model.MergedEvent) error {
	c.puts++
	if c.putErr != nil {
		return c.putErr
	}
	if !c.disabled {
		c.values[key] = events
	}
	return nil
}

func newTestService(calendars *stubCalendars, fetcher Fetcher, cache eventsCache) *Service {
	fetchers := map[model.SourceKind]Fetcher{
		model.SourceKindGoogle: fetcher,
		model.SourceKindICal:   fetcher,
	}
	return NewService(zap.NewNop().Sugar(), nil, calendars, fetchers, cache)
}

func window() (time.Time, time.Time) {
	return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
}

func TestAggregatePartialFailureSucceeds(t *testing.T) {
	third := &model.Source{ID: "broken", Kind: model.SourceKindICal, Location: "https://example.com/broken.ics", Color: "#112233"}
	calendars := &stubCalendars{sources: []*model.Source{holidaysSource, teamSource, third}}

	fetcher := &stubFetcher{
		events: map[string][]*model.RawEvent{
			"holidays": {launchDay("Holiday")},
			"team":     {launchDay("Standup")},
		},
		errs: map[string]error{
			"broken": &model.FetchError{SourceID: "broken", Err: errors.New("connection refused")},
		},
	}

	svc := newTestService(calendars, fetcher, newMemoryCache())

	from, to := window()
	events, err := svc.Aggregate(context.Background(), Request{SetName: "all", From: from, To: to, Theme: model.ThemeDay})

	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestAggregateTotalFailureErrors(t *testing.T) {
	calendars := &stubCalendars{sources: []*model.Source{teamSource}}
	fetcher := &stubFetcher{
		errs: map[string]error{
			"team": &model.FetchError{SourceID: "team", Auth: true, Err: errors.New("token expired")},
		},
	}

	svc := newTestService(calendars, fetcher, newMemoryCache())

	from, to := window()
	_, err := svc.Aggregate(context.Background(), Request{SetName: "all", From: from, To: to})

	var runErr *model.RunError
	require.ErrorAs(t, err, &runErr)
	require.Len(t, runErr.Failures, 1)
	assert.Equal(t, "team", runErr.Failures[0].SourceID)
	assert.True(t, runErr.Failures[0].Auth)
}

func TestAggregateServesFromCache(t *testing.T) {
	calendars := &stubCalendars{sources: []*model.Source{teamSource}}
	fetcher := &stubFetcher{events: map[string][]*model.RawEvent{"team": {launchDay("Standup")}}}
	cache := newMemoryCache()

	svc := newTestService(calendars, fetcher, cache)

	from, to := window()
	req := Request{SetName: "all", From: from, To: to, Theme: model.ThemeDay}

	first, err := svc.Aggregate(context.Background(), req)
	require.NoError(t, err)

	second, err := svc.Aggregate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, fetcher.calls, 1, "second run must not hit the fetcher")
}

func TestAggregateBypassCacheRefetches(t *testing.T) {
	calendars := &stubCalendars{sources: []*model.Source{teamSource}}
	fetcher := &stubFetcher{events: map[string][]*model.RawEvent{"team": {launchDay("Standup")}}}
	cache := newMemoryCache()

	svc := newTestService(calendars, fetcher, cache)

	from, to := window()
	req := Request{SetName: "all", From: from, To: to, Theme: model.ThemeDay, BypassCache: true}

	first, err := svc.Aggregate(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Aggregate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical inputs give identical output")
	assert.Len(t, fetcher.calls, 2)
}

func TestAggregateCacheWriteFailureIsNotFatal(t *testing.T) {
	calendars := &stubCalendars{sources: []*model.Source{teamSource}}
	fetcher := &stubFetcher{events: map[string][]*model.RawEvent{"team": {launchDay("Standup")}}}
	cache := newMemoryCache()
	cache.putErr = errors.New("redis down")

	svc := newTestService(calendars, fetcher, cache)

	from, to := window()
	events, err := svc.Aggregate(context.Background(), Request{SetName: "all", From: from, To: to})

	require.NoError(t, err)
	assert.Len(t, events, 1)
	assert.Equal(t, 1, cache.puts)
}

func TestAggregateAppliesCalendarSet(t *testing.T) {
	calendars := &stubCalendars{
		sources: []*model.Source{holidaysSource, teamSource},
		sets: map[string]*model.CalendarSet{
			"work": {Name: "work", SourceIDs: []string{"team"}},
		},
	}
	fetcher := &stubFetcher{
		events: map[string][]*model.RawEvent{
			"holidays": {launchDay("Holiday")},
			"team":     {launchDay("Standup")},
		},
	}

	svc := newTestService(calendars, fetcher, newMemoryCache())

	from, to := window()
	events, err := svc.Aggregate(context.Background(), Request{SetName: "work", From: from, To: to})

	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Standup", events[0].Title)
	assert.Equal(t, []string{"team"}, fetcher.calls, "filtered-out sources are never fetched")
}

func TestAggregateUnknownSetIncludesEverything(t *testing.T) {
	calendars := &stubCalendars{sources: []*model.Source{holidaysSource, teamSource}}
	fetcher := &stubFetcher{
		events: map[string][]*model.RawEvent{
			"holidays": {launchDay("Holiday")},
			"team":     {launchDay("Standup")},
		},
	}

	svc := newTestService(calendars, fetcher, newMemoryCache())

	from, to := window()
	events, err := svc.Aggregate(context.Background(), Request{SetName: "no-such-set", From: from, To: to})

	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestAggregateNoSourcesYieldsEmpty(t *testing.T) {
	svc := newTestService(&stubCalendars{}, &stubFetcher{}, newMemoryCache())

	from, to := window()
	events, err := svc.Aggregate(context.Background(), Request{SetName: "all", From: from, To: to})

	require.NoError(t, err)
	assert.Empty(t, events)
}
