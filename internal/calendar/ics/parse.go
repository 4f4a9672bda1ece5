package ics

import (
	"bytes"
	"errors"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// parsedEvent is one VEVENT before recurrence expansion.
type parsedEvent struct {
	UID     string
	Summary string

	Start  time.Time
	End    time.Time
	AllDay bool

	RawRRule string
	ExDates  []time.Time

	// RecurrenceID marks an override of one instance of a recurring
	// event with the same UID.
	RecurrenceID *time.Time
}

func parseCalendar(body []byte) ([]parsedEvent, error) {
	if len(body) == 0 {
		return nil, errors.New("empty ICS body")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	events := make([]parsedEvent, 0, len(cal.Events()))
	for _, ve := range cal.Events() {
		ev, err := parseVEvent(ve)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	return events, nil
}

func parseVEvent(ve *ical.VEvent) (parsedEvent, error) {
	var out parsedEvent

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		return out, errors.New("VEVENT missing UID")
	}
	out.UID = uid.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Summary = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return out, err
	}
	out.Start = start

	// DTEND is optional; a missing end means a zero-length marker.
	if end, err := ve.GetEndAt(); err == nil {
		out.End = end
	} else {
		out.End = start
	}

	out.AllDay = isAllDay(ve.GetProperty(ical.ComponentPropertyDtStart))
	if out.AllDay {
		// Whole-day entries span [date, next date) regardless of DTEND
		// quirks in the wild.
		date := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		out.Start = date
		if !out.End.After(date) {
			out.End = date.Add(24 * time.Hour)
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.RawRRule = p.Value
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, err := parseICSTime(part); err == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}

	if p := ve.GetProperty("RECURRENCE-ID"); p != nil {
		if t, err := parseICSTime(p.Value); err == nil {
			out.RecurrenceID = &t
		}
	}

	return out, nil
}

// isAllDay reports whether DTSTART is date-only (VALUE=DATE or no
// time-of-day component).
func isAllDay(dtStart *ical.IANAProperty) bool {
	if dtStart == nil {
		return false
	}

	if params := dtStart.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}

	return !strings.Contains(dtStart.Value, "T")
}

// parseICSTime decodes the basic DATE/DATE-TIME forms used by EXDATE and
// RECURRENCE-ID values.
func parseICSTime(v string) (time.Time, error) {
	v = strings.TrimSpace(v)
	switch {
	case v == "":
		return time.Time{}, errors.New("empty time value")
	case strings.HasSuffix(v, "Z"):
		return time.Parse("20060102T150405Z", v)
	case strings.Contains(v, "T"):
		return time.ParseInLocation("20060102T150405", v, time.UTC)
	default:
		return time.ParseInLocation("20060102", v, time.UTC)
	}
}
