// Package ics fetches iCal feeds over HTTP and expands them into
// concrete occurrences for the aggregation window.
package ics

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/aquarion/docket-sub000/internal/model"
	"go.uber.org/zap"
)

type Fetcher struct {
	logger *zap.SugaredLogger
	client *http.Client
}

func NewFetcher(logger *zap.SugaredLogger, timeout time.Duration) *Fetcher {
	return &Fetcher{
		logger: logger,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch downloads the feed at source.Location and returns its occurrences
// inside [from, to). Any HTTP or parse problem yields a FetchError and no
// events.
func (f *Fetcher) Fetch(ctx context.Context, source *model.Source, from, to time.Time) ([]*model.RawEvent, error) {
	body, err := f.download(ctx, source.Location)
	if err != nil {
		return nil, &model.FetchError{SourceID: source.ID, Err: err}
	}

	parsed, err := parseCalendar(body)
	if err != nil {
		return nil, &model.FetchError{SourceID: source.ID, Parse: true, Err: err}
	}

	events, err := expandOccurrences(parsed, from, to)
	if err != nil {
		return nil, &model.FetchError{SourceID: source.ID, Parse: true, Err: err}
	}

	f.logger.Debugw("fetched ics events",
		"source", source.ID,
		"vevents", len(parsed),
		"occurrences", len(events),
	)

	return events, nil
}

func (f *Fetcher) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return body, nil
}
