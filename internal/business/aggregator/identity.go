package aggregator

import (
	"crypto/sha1"
	"encoding/hex"
	"time"

	"github.com/aquarion/docket-sub000/internal/model"
	"github.com/aquarion/docket-sub000/internal/pkg/textutil"
)

// identityTimeFormat is the canonical form both timestamps take inside
// the identity hash: UTC, second precision, explicit Z designator.
const identityTimeFormat = "2006-01-02T15:04:05Z"

const strikeMarker = "~~"

// identityKey hashes the occurrence bounds and the cleaned title. Two
// occurrences from different sources merge exactly when their keys match;
// there is no cross-system event id, so identity is structural. Two
// genuinely different events sharing bounds and cleaned title will merge
// silently — a known limitation.
func identityKey(from, to time.Time, cleanTitle string) string {
	h := sha1.New()
	h.Write([]byte(from.UTC().Format(identityTimeFormat)))
	h.Write([]byte(to.UTC().Format(identityTimeFormat)))
	h.Write([]byte(cleanTitle))
	return hex.EncodeToString(h.Sum(nil))
}

// displayTitle wraps declined occurrences in the strike-through marker.
// The marker is applied before identity hashing, so a declined and a
// non-declined copy of the same occurrence keep separate identities.
func displayTitle(title string, declined bool) string {
	if declined {
		return strikeMarker + title + strikeMarker
	}
	return title
}

// isDeclined reports whether the calendar's own identity appears in the
// attendee list with a declined response. The comparison target is the
// source's location (the calendar id), which assumes each source is one
// person's own calendar.
func isDeclined(ev *model.RawEvent, source *model.Source) bool {
	for _, a := range ev.Attendees {
		if a.Email == source.Location && a.ResponseStatus == model.ResponseStatusDeclined {
			return true
		}
	}
	return false
}

// cleanTitle is the identity form of a display title.
func cleanTitle(title string) string {
	return textutil.CleanTitle(title)
}
