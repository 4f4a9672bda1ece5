package prewarm

import (
	"context"
	"time"

	"github.com/aquarion/docket-sub000/internal/business/aggregator"
	"github.com/aquarion/docket-sub000/internal/config"
	"github.com/aquarion/docket-sub000/internal/database"
	"github.com/aquarion/docket-sub000/internal/model"
	"github.com/robfig/cron/v3"
	"github.com/xlab/closer"
	"go.uber.org/zap"
)

// Warmer periodically refreshes the events cache for every configured
// calendar set so dashboard requests hit warm entries.
type Warmer struct {
	db        database.PGX
	logger    *zap.SugaredLogger
	calendars calendarsRepository
	events    aggregatorService
}

type calendarsRepository interface {
	GetCalendarSets(ctx context.Context, q database.Queryable) ([]*model.CalendarSet, error)
}

type aggregatorService interface {
	Aggregate(ctx context.Context, req aggregator.Request) ([]*model.MergedEvent, error)
}

func NewWarmer(
	db database.PGX,
	logger *zap.SugaredLogger,
	calendars calendarsRepository,
	events aggregatorService,
) *Warmer {
	return &Warmer{
		db:        db,
		logger:    logger,
		calendars: calendars,
		events:    events,
	}
}

func (w *Warmer) Start(ctx context.Context) {
	c := cron.New()

	if _, err := c.AddFunc(config.PrewarmSchedule(), func() {
		w.warmAll(ctx)
	}); err != nil {
		w.logger.Errorw("failed to schedule cache prewarm", "schedule", config.PrewarmSchedule(), "err", err)
		return
	}

	closer.Bind(func() {
		stopCtx := c.Stop()
		<-stopCtx.Done()
	})

	// initial warm
	go w.warmAll(ctx)

	c.Start()
}

func (w *Warmer) warmAll(ctx context.Context) {
	w.logger.Debugw("prewarming events cache")

	names := []string{model.WildcardSet}

	sets, err := w.calendars.GetCalendarSets(ctx, w.db)
	if err != nil {
		w.logger.Errorw("failed to get calendar sets", "err", err)
	} else {
		for _, set := range sets {
			names = append(names, set.Name)
		}
	}

	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := now.AddDate(0, 1, 0)

	for _, name := range names {
		req := aggregator.Request{
			SetName:     name,
			From:        from,
			To:          to,
			Theme:       model.ThemeDay,
			BypassCache: true,
		}

		if _, err := w.events.Aggregate(ctx, req); err != nil {
			w.logger.Errorw("failed to prewarm calendar set", "set", name, "err", err)
		}
	}
}
