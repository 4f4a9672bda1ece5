package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(lines ...string) []byte {
	all := append([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//EN",
	}, lines...)
	all = append(all, "END:VCALENDAR")
	return []byte(strings.Join(all, "\r\n") + "\r\n")
}

func TestParseSimpleEvent(t *testing.T) {
	body := fixture(
		"BEGIN:VEVENT",
		"UID:simple-1",
		"SUMMARY:Launch Day",
		"DTSTART:20260301T090000Z",
		"DTEND:20260301T100000Z",
		"END:VEVENT",
	)

	events, err := parseCalendar(body)
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.Equal(t, "simple-1", ev.UID)
	assert.Equal(t, "Launch Day", ev.Summary)
	assert.False(t, ev.AllDay)
	assert.True(t, ev.Start.Equal(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)))
	assert.True(t, ev.End.Equal(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)))
}

func TestParseAllDayEvent(t *testing.T) {
	body := fixture(
		"BEGIN:VEVENT",
		"UID:allday-1",
		"SUMMARY:Bank Holiday",
		"DTSTART;VALUE=DATE:20260305",
		"DTEND;VALUE=DATE:20260306",
		"END:VEVENT",
	)

	events, err := parseCalendar(body)
	require.NoError(t, err)
	require.Len(t, events, 1)

	ev := events[0]
	assert.True(t, ev.AllDay)
	assert.Equal(t, 24*time.Hour, ev.End.Sub(ev.Start))
}

func TestParseMissingUIDFails(t *testing.T) {
	body := fixture(
		"BEGIN:VEVENT",
		"SUMMARY:No identity",
		"DTSTART:20260301T090000Z",
		"DTEND:20260301T100000Z",
		"END:VEVENT",
	)

	_, err := parseCalendar(body)
	assert.Error(t, err)
}

func TestParseEmptyBodyFails(t *testing.T) {
	_, err := parseCalendar(nil)
	assert.Error(t, err)
}

func TestExpandWeeklyRecurrenceWithExDate(t *testing.T) {
	body := fixture(
		"BEGIN:VEVENT",
		"UID:weekly-1",
		"SUMMARY:Standup",
		"DTSTART:20260302T100000Z",
		"DTEND:20260302T101500Z",
		"RRULE:FREQ=WEEKLY",
		"EXDATE:20260316T100000Z",
		"END:VEVENT",
	)

	parsed, err := parseCalendar(body)
	require.NoError(t, err)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	events, err := expandOccurrences(parsed, from, to)
	require.NoError(t, err)

	// Mondays 2026-03-02 .. 2026-03-30, minus the excluded 16th.
	require.Len(t, events, 4)
	for _, ev := range events {
		assert.Equal(t, "Standup", ev.Title)
		assert.Equal(t, 15*time.Minute, ev.To.Sub(ev.From))
		assert.NotEqual(t, time.Date(2026, 3, 16, 10, 0, 0, 0, time.UTC), ev.From.UTC())
	}
}

func TestExpandWindowExcludesOutsideEvents(t *testing.T) {
	body := fixture(
		"BEGIN:VEVENT",
		"UID:outside-1",
		"SUMMARY:Old meeting",
		"DTSTART:20250301T090000Z",
		"DTEND:20250301T100000Z",
		"END:VEVENT",
	)

	parsed, err := parseCalendar(body)
	require.NoError(t, err)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	events, err := expandOccurrences(parsed, from, to)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestExpandRecurrenceOverrideReplacesInstance(t *testing.T) {
	body := fixture(
		"BEGIN:VEVENT",
		"UID:weekly-2",
		"SUMMARY:Standup",
		"DTSTART:20260302T100000Z",
		"DTEND:20260302T101500Z",
		"RRULE:FREQ=WEEKLY",
		"END:VEVENT",
		"BEGIN:VEVENT",
		"UID:weekly-2",
		"SUMMARY:Standup (moved)",
		"DTSTART:20260309T140000Z",
		"DTEND:20260309T141500Z",
		"RECURRENCE-ID:20260309T100000Z",
		"END:VEVENT",
	)

	parsed, err := parseCalendar(body)
	require.NoError(t, err)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	events, err := expandOccurrences(parsed, from, to)
	require.NoError(t, err)
	require.Len(t, events, 5)

	var moved int
	for _, ev := range events {
		if ev.Title == "Standup (moved)" {
			moved++
			assert.True(t, ev.From.Equal(time.Date(2026, 3, 9, 14, 0, 0, 0, time.UTC)))
		}
		assert.False(t, ev.From.Equal(time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)), "overridden instance must not appear")
	}
	assert.Equal(t, 1, moved)
}
