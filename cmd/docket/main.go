package main

import (
	"context"
	"log"
	"net/http"

	"github.com/aquarion/docket-sub000/internal/api"
	"github.com/aquarion/docket-sub000/internal/business/aggregator"
	"github.com/aquarion/docket-sub000/internal/calendar/google"
	"github.com/aquarion/docket-sub000/internal/calendar/ics"
	"github.com/aquarion/docket-sub000/internal/config"
	"github.com/aquarion/docket-sub000/internal/database"
	"github.com/aquarion/docket-sub000/internal/database/calendars"
	"github.com/aquarion/docket-sub000/internal/model"
	"github.com/aquarion/docket-sub000/internal/pkg/jwt"
	"github.com/aquarion/docket-sub000/internal/prewarm"
	"github.com/aquarion/docket-sub000/internal/redis"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx := context.Background()

	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initialize logger: %v", err)
	}

	jwts := jwt.NewManager()

	redisPool := redis.NewRedisPool(logger)
	eventsCache := redis.NewEventsCacheRepository(redisPool, logger)

	db, err := database.NewPGX(ctx)
	if err != nil {
		log.Fatalf("unable to initialize db: %v", err)
	}
	calendarsRepository := calendars.NewRepository()

	fetchers := map[model.SourceKind]aggregator.Fetcher{
		model.SourceKindGoogle: google.NewFetcher(logger),
		model.SourceKindICal:   ics.NewFetcher(logger, config.FetchTimeout()),
	}

	eventsService := aggregator.NewService(logger, db, calendarsRepository, fetchers, eventsCache)

	warmer := prewarm.NewWarmer(db, logger, calendarsRepository, eventsService)
	go warmer.Start(ctx)

	api := api.NewApi(logger, jwts, db, calendarsRepository, eventsService)

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:     ":" + config.Port(),
		Handler:  api,
		ErrorLog: errLogger,
	}

	logger.Infow("Started server", "port", config.Port())
	logger.Fatalw("server error", "err", server.ListenAndServe())
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
