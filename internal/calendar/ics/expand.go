package ics

import (
	"fmt"
	"time"

	"github.com/aquarion/docket-sub000/internal/model"
	"github.com/teambition/rrule-go"
)

// occurrenceCap bounds expansion of pathological rules.
const occurrenceCap = 1000

// expandOccurrences turns parsed VEVENTs into concrete occurrences inside
// [from, to). RECURRENCE-ID overrides replace the matching instance of
// their base event.
func expandOccurrences(events []parsedEvent, from, to time.Time) ([]*model.RawEvent, error) {
	overrides := map[string][]parsedEvent{}
	for _, ev := range events {
		if ev.RecurrenceID != nil {
			overrides[ev.UID] = append(overrides[ev.UID], ev)
		}
	}

	var res []*model.RawEvent

	for _, ev := range events {
		if ev.RecurrenceID != nil {
			// Emitted through its base event below, or standalone if the
			// override itself intersects the window.
			if overlaps(ev.Start, ev.End, from, to) {
				res = append(res, makeRawEvent(ev, ev.Start, ev.End))
			}
			continue
		}

		if ev.RawRRule == "" {
			if overlaps(ev.Start, ev.End, from, to) && !isOverridden(ev, overrides[ev.UID], ev.Start) {
				res = append(res, makeRawEvent(ev, ev.Start, ev.End))
			}
			continue
		}

		starts, err := recurrenceStarts(ev, from, to)
		if err != nil {
			return nil, err
		}

		duration := ev.End.Sub(ev.Start)
		for _, start := range starts {
			if isOverridden(ev, overrides[ev.UID], start) {
				continue
			}
			res = append(res, makeRawEvent(ev, start, start.Add(duration)))
		}
	}

	return res, nil
}

func recurrenceStarts(ev parsedEvent, from, to time.Time) ([]time.Time, error) {
	r, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		return nil, fmt.Errorf("RRULE %q: %w", ev.RawRRule, err)
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	starts := set.Between(from.In(ev.Start.Location()), to.In(ev.Start.Location()), true)
	if len(starts) > occurrenceCap {
		starts = starts[:occurrenceCap]
	}

	return starts, nil
}

// isOverridden reports whether an override claims the instance starting
// at start.
func isOverridden(base parsedEvent, overrides []parsedEvent, start time.Time) bool {
	for _, ov := range overrides {
		if ov.RecurrenceID != nil && ov.RecurrenceID.In(start.Location()).Equal(start) {
			return true
		}
	}
	return false
}

func makeRawEvent(ev parsedEvent, start, end time.Time) *model.RawEvent {
	return &model.RawEvent{
		Title:         ev.Summary,
		From:          start,
		To:            end,
		AllDay:        ev.AllDay,
		SourceEventID: fmt.Sprintf("%s_%d", ev.UID, start.Unix()),
	}
}

func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return !aEnd.Before(bStart) && !bEnd.Before(aStart)
}
