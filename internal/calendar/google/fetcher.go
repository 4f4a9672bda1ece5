package google

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/aquarion/docket-sub000/internal/config"
	"github.com/aquarion/docket-sub000/internal/model"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// Fetcher retrieves events from the Google Calendar API. One calendar
// service is built per credential account and reused across fetches.
type Fetcher struct {
	logger *zap.SugaredLogger

	mu       sync.Mutex
	services map[string]*calendar.Service
}

func NewFetcher(logger *zap.SugaredLogger) *Fetcher {
	return &Fetcher{
		logger:   logger,
		services: map[string]*calendar.Service{},
	}
}

// Fetch lists the occurrences of a single Google calendar within the
// window, recurrence-expanded by the API itself.
func (f *Fetcher) Fetch(ctx context.Context, source *model.Source, from, to time.Time) ([]*model.RawEvent, error) {
	account := source.Account
	if account == "" {
		account = config.DefaultAccount()
	}

	service, err := f.serviceForAccount(ctx, account)
	if err != nil {
		return nil, &model.FetchError{SourceID: source.ID, Auth: true, Err: err}
	}

	list, err := service.Events.List(source.Location).
		ShowDeleted(false).
		SingleEvents(true).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		Context(ctx).
		Do()
	if err != nil {
		return nil, &model.FetchError{SourceID: source.ID, Auth: isAuthError(err), Err: err}
	}

	f.logger.Debugw("fetched google events",
		"source", source.ID,
		"account", account,
		"count", len(list.Items),
	)

	events := make([]*model.RawEvent, 0, len(list.Items))
	for _, item := range list.Items {
		ev, err := mapToRawEvent(item)
		if err != nil {
			return nil, &model.FetchError{SourceID: source.ID, Parse: true, Err: err}
		}
		events = append(events, ev)
	}

	return events, nil
}

func (f *Fetcher) serviceForAccount(ctx context.Context, account string) (*calendar.Service, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if service, ok := f.services[account]; ok {
		return service, nil
	}

	conf, err := oauthConfig()
	if err != nil {
		return nil, err
	}

	token, err := tokenForAccount(account)
	if err != nil {
		return nil, err
	}

	service, err := calendar.NewService(ctx,
		option.WithHTTPClient(conf.Client(ctx, token)),
	)
	if err != nil {
		return nil, fmt.Errorf("creating calendar service: %w", err)
	}

	f.services[account] = service
	return service, nil
}

type clientSecrets map[string]creds

type creds struct {
	ClientId     string   `json:"client_id"`
	ProjectId    string   `json:"project_id"`
	AuthUri      string   `json:"auth_uri"`
	TokenUri     string   `json:"token_uri"`
	ClientSecret string   `json:"client_secret"`
	RedirectUris []string `json:"redirect_uris"`
}

func oauthConfig() (*oauth2.Config, error) {
	file, err := os.Open(config.ClientSecretPath())
	if err != nil {
		return nil, fmt.Errorf("can't open client secret: %w", err)
	}
	defer file.Close()

	cs := make(clientSecrets)
	if err := json.NewDecoder(file).Decode(&cs); err != nil {
		return nil, fmt.Errorf("can't parse secrets: %w", err)
	}

	secret := cs[config.ClientType()]
	return &oauth2.Config{
		ClientID:     secret.ClientId,
		ClientSecret: secret.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{calendar.CalendarReadonlyScope},
	}, nil
}

func tokenForAccount(account string) (*oauth2.Token, error) {
	path := filepath.Join(config.TokenDir(), fmt.Sprintf("token-%s.json", account))

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("can't load token for account %q: %w", account, err)
	}
	defer file.Close()

	token := &oauth2.Token{}
	if err := json.NewDecoder(file).Decode(token); err != nil {
		return nil, fmt.Errorf("can't parse token for account %q: %w", account, err)
	}

	return token, nil
}

func mapToRawEvent(item *calendar.Event) (*model.RawEvent, error) {
	from, allDay, err := parseEventTime(item.Start)
	if err != nil {
		return nil, fmt.Errorf("event %q start: %w", item.Id, err)
	}

	to, _, err := parseEventTime(item.End)
	if err != nil {
		return nil, fmt.Errorf("event %q end: %w", item.Id, err)
	}

	attendees := make([]model.Attendee, 0, len(item.Attendees))
	for _, a := range item.Attendees {
		attendees = append(attendees, model.Attendee{
			Email:          a.Email,
			ResponseStatus: a.ResponseStatus,
		})
	}

	return &model.RawEvent{
		Title:         item.Summary,
		From:          from,
		To:            to,
		AllDay:        allDay,
		Kind:          item.EventType,
		SourceEventID: item.Id,
		Attendees:     attendees,
	}, nil
}

// parseEventTime handles the two shapes the API uses: date-only for
// whole-day entries and RFC3339 for timed ones.
func parseEventTime(t *calendar.EventDateTime) (time.Time, bool, error) {
	if t == nil {
		return time.Time{}, false, nil
	}

	if t.Date != "" {
		parsed, err := time.Parse("2006-01-02", t.Date)
		return parsed, true, err
	}

	parsed, err := time.Parse(time.RFC3339, t.DateTime)
	return parsed, false, err
}

func isAuthError(err error) bool {
	if apiErr, ok := err.(*googleapi.Error); ok {
		return apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden
	}
	return false
}
