package aggregator

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The canonical hash input form is part of the wire-level contract: other
// implementations must produce the same keys for regression comparison.
func TestIdentityKeyCanonicalForm(t *testing.T) {
	from := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	// sha1("2026-03-01T09:00:00Z" + "2026-03-01T10:00:00Z" + "Launch Day")
	assert.Equal(t, "5286bb7c1bef66d6421e4d9d94a3cab221b8e151", identityKey(from, to, "Launch Day"))
}

func TestIdentityKeyNormalizesToUTC(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	from := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t,
		identityKey(from, to, "Launch Day"),
		identityKey(from.In(loc), to.In(loc), "Launch Day"),
	)
}

func TestIdentityKeyIgnoresSubSecondPrecision(t *testing.T) {
	from := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t,
		identityKey(from, to, "Launch Day"),
		identityKey(from.Add(500*time.Millisecond), to, "Launch Day"),
	)
}

func TestDisplayTitleStrikeMarker(t *testing.T) {
	assert.Equal(t, "~~Standup~~", displayTitle("Standup", true))
	assert.Equal(t, "Standup", displayTitle("Standup", false))
}
