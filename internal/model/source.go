package model

import "regexp"

type SourceKind string

const (
	SourceKindGoogle SourceKind = "google"
	SourceKindICal   SourceKind = "ical"
)

// ColorPattern matches the only color format accepted in configuration.
var ColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Source is the configuration of one calendar input.
type Source struct {
	// ID is unique across the active configuration.
	ID   string
	Kind SourceKind
	// Location is a Google calendar ID for google sources
	// or an HTTP(S) URL for ical sources.
	Location string
	// Color is the base display color, "#RRGGBB".
	Color string
	// Emoji is an optional glyph used when several sources
	// contribute to one merged event.
	Emoji string
	// Account selects the credential set for google sources.
	// Empty means the configured default account.
	Account string
	// Position is the declared configuration order; it decides which
	// source seeds a merged event's fields.
	Position int
}

// CalendarSet is a named grouping of sources shown together.
// SourceIDs of ["*"] includes every configured source.
type CalendarSet struct {
	Name      string
	SourceIDs []string
}

const WildcardSet = "*"

// Wildcard reports whether the set includes all sources.
func (s *CalendarSet) Wildcard() bool {
	for _, id := range s.SourceIDs {
		if id == WildcardSet {
			return true
		}
	}
	return false
}

// MergeOverride assigns a background color to a specific combination of
// sources. Key is the lexicographically sorted source ids joined with "-".
type MergeOverride struct {
	Key   string
	Color string
}
