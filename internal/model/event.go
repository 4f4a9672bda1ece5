package model

import "time"

// Attendee is one attendee entry of a raw occurrence, as exposed by
// sources that carry attendee status (Google).
type Attendee struct {
	Email          string
	ResponseStatus string
}

const ResponseStatusDeclined = "declined"

// RawEvent is the normalized shape returned by a source fetcher,
// independent of origin. Occurrences are already recurrence-expanded.
type RawEvent struct {
	Title  string
	From   time.Time
	To     time.Time
	AllDay bool
	// Kind is the origin system's event type ("workingLocation" entries
	// carry no displayable occurrence and are skipped by the aggregator).
	Kind string
	// SourceEventID is the origin system's own identifier, kept for
	// traceability only; it never participates in merge identity.
	SourceEventID string
	Attendees     []Attendee
}

// MergedEvent represents 1..N raw occurrences across sources that share
// an identity key. All fields except SourceIDs are fixed when the first
// occurrence is seen.
type MergedEvent struct {
	IdentityKey string
	Title       string
	From        time.Time
	To          time.Time
	AllDay      bool
	// SourceEventID is the first-seen occurrence's origin identifier.
	SourceEventID string
	// SourceIDs lists contributing sources in merge order.
	SourceIDs       []string
	BackgroundColor string
	BorderColor     string
	// Emoji is the concatenated badge of contributing sources' glyphs,
	// present only on merged events.
	Emoji string
}
