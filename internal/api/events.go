package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aquarion/docket-sub000/internal/business/aggregator"
	"github.com/aquarion/docket-sub000/internal/model"
)

const dateFormat = "2006-01-02"

func (a *Api) getEventsHandler(w http.ResponseWriter, r *http.Request) {
	req, err := parseEventsQuery(r)
	if err != nil {
		a.badRequestResponse(w, r, err)
		return
	}

	events, err := a.events.Aggregate(r.Context(), *req)
	if err != nil {
		runErr := &model.RunError{}
		switch {
		case errors.As(err, &runErr):
			a.badGatewayResponse(w, r, runErr)
		default:
			a.serverErrorResponse(w, r, fmt.Errorf("aggregate events: %w", err))
		}
		return
	}

	resp, _ := mapSlice(events, mapToEventResp)

	if err := a.writeJSON(w, http.StatusOK, resp, nil); err != nil {
		a.serverErrorResponse(w, r, err)
	}
}

func parseEventsQuery(r *http.Request) (*aggregator.Request, error) {
	query := r.URL.Query()

	res := &aggregator.Request{
		SetName: model.WildcardSet,
		Theme:   model.ThemeDay,
	}

	if v := query.Get("set"); v != "" {
		res.SetName = v
	}

	now := time.Now()
	res.From = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	res.To = now.AddDate(0, 1, 0)

	if v := query.Get("from"); v != "" {
		from, err := time.Parse(dateFormat, v)
		if err != nil {
			return nil, fmt.Errorf("invalid from date: %w", err)
		}
		res.From = from
	}

	if v := query.Get("to"); v != "" {
		to, err := time.Parse(dateFormat, v)
		if err != nil {
			return nil, fmt.Errorf("invalid to date: %w", err)
		}
		res.To = to
	}

	if res.To.Before(res.From) {
		return nil, fmt.Errorf("to must not precede from")
	}

	switch theme := query.Get("theme"); theme {
	case "", string(model.ThemeDay):
		res.Theme = model.ThemeDay
	case string(model.ThemeNight):
		res.Theme = model.ThemeNight
	default:
		return nil, fmt.Errorf("unknown theme %q", theme)
	}

	res.BypassCache = query.Get("refresh") == "1" || query.Get("refresh") == "true"

	return res, nil
}

type eventResp struct {
	Title           string   `json:"title"`
	AllDay          bool     `json:"allDay"`
	ID              string   `json:"id"`
	Start           string   `json:"start"`
	End             string   `json:"end"`
	Calendars       []string `json:"calendars"`
	BackgroundColor string   `json:"backgroundColor"`
	BorderColor     string   `json:"borderColor"`
	Badge           string   `json:"badge,omitempty"`
}

func mapToEventResp(ev *model.MergedEvent) (*eventResp, error) {
	return &eventResp{
		Title:           ev.Title,
		AllDay:          ev.AllDay,
		ID:              ev.SourceEventID,
		Start:           ev.From.Format(time.RFC3339),
		End:             ev.To.Format(time.RFC3339),
		Calendars:       ev.SourceIDs,
		BackgroundColor: ev.BackgroundColor,
		BorderColor:     ev.BorderColor,
		Badge:           ev.Emoji,
	}, nil
}
