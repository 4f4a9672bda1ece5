package api

import (
	"context"
	"net/http"

	"github.com/aquarion/docket-sub000/internal/business/aggregator"
	"github.com/aquarion/docket-sub000/internal/database"
	"github.com/aquarion/docket-sub000/internal/model"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Api struct {
	handler http.Handler
	logger  *zap.SugaredLogger

	jwts jwtManager

	db        database.PGX
	calendars calendarsRepository
	events    aggregatorService
}

type jwtManager interface {
	CreateToken(subject string) (string, error)
	GetSubjectFromToken(token string) (string, error)
}

type aggregatorService interface {
	Aggregate(ctx context.Context, req aggregator.Request) ([]*model.MergedEvent, error)
}

type calendarsRepository interface {
	GetSources(ctx context.Context, q database.Queryable) ([]*model.Source, error)
	GetSourceByID(ctx context.Context, q database.Queryable, id string) (*model.Source, error)
	CreateSource(ctx context.Context, q database.Queryable, source *model.Source) error
	UpdateSource(ctx context.Context, q database.Queryable, source *model.Source) error
	DeleteSource(ctx context.Context, q database.Queryable, id string) error

	GetCalendarSets(ctx context.Context, q database.Queryable) ([]*model.CalendarSet, error)
	CreateCalendarSet(ctx context.Context, q database.Queryable, set *model.CalendarSet) error
	UpdateCalendarSet(ctx context.Context, q database.Queryable, set *model.CalendarSet) error
	DeleteCalendarSet(ctx context.Context, q database.Queryable, name string) error

	GetMergeOverrides(ctx context.Context, q database.Queryable) ([]*model.MergeOverride, error)
	CreateMergeOverride(ctx context.Context, q database.Queryable, override *model.MergeOverride) error
	UpdateMergeOverride(ctx context.Context, q database.Queryable, override *model.MergeOverride) error
	DeleteMergeOverride(ctx context.Context, q database.Queryable, key string) error
}

func NewApi(
	logger *zap.SugaredLogger,
	jwts jwtManager,
	db database.PGX,
	calendars calendarsRepository,
	events aggregatorService,
) *Api {
	a := &Api{
		logger:    logger,
		jwts:      jwts,
		db:        db,
		calendars: calendars,
		events:    events,
	}
	a.setupHandler()

	return a
}

func (a *Api) setupHandler() {
	middleware.DefaultLogger = func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			a.logger.Debugw(r.URL.RequestURI(),
				"addr", r.RemoteAddr,
				"protocol", r.Proto,
				"method", r.Method,
			)
			next.ServeHTTP(w, r)
		})
	}

	r := chi.NewMux()

	r.Use(middleware.Logger, middleware.Recoverer, middleware.StripSlashes)
	r.NotFound(a.notFoundResponse)
	r.MethodNotAllowed(a.methodNotAllowedResponse)

	r.Get("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	r.Post("/auth/token", a.createTokenHandler)

	r.With(a.auth).Route("/", func(r chi.Router) {
		r.Get("/events", a.getEventsHandler)

		r.Route("/sources", func(r chi.Router) {
			r.Get("/", a.listSourcesHandler)
			r.Post("/", a.createSourceHandler)
			r.Put("/{sourceID}", a.updateSourceHandler)
			r.Delete("/{sourceID}", a.deleteSourceHandler)
		})

		r.Route("/sets", func(r chi.Router) {
			r.Get("/", a.listCalendarSetsHandler)
			r.Post("/", a.createCalendarSetHandler)
			r.Put("/{setName}", a.updateCalendarSetHandler)
			r.Delete("/{setName}", a.deleteCalendarSetHandler)
		})

		r.Route("/merges", func(r chi.Router) {
			r.Get("/", a.listMergeOverridesHandler)
			r.Post("/", a.createMergeOverrideHandler)
			r.Put("/{mergeKey}", a.updateMergeOverrideHandler)
			r.Delete("/{mergeKey}", a.deleteMergeOverrideHandler)
		})
	})

	a.handler = r
}

func (a *Api) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.handler.ServeHTTP(w, r)
}
