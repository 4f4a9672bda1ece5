package textutil_test

import (
	"testing"

	"github.com/aquarion/docket-sub000/internal/pkg/textutil"
	"github.com/stretchr/testify/assert"
)

func TestStripEmoji(t *testing.T) {
	assert.Equal(t, " Launch Day", textutil.StripEmoji("🎉 Launch Day"))
	assert.Equal(t, "Launch Day", textutil.StripEmoji("Launch Day"))
	assert.Equal(t, "Standup ", textutil.StripEmoji("Standup ☕"))
	assert.Equal(t, "Flight ", textutil.StripEmoji("Flight 🇬🇧✈️"))
	assert.Equal(t, "день рождения", textutil.StripEmoji("день рождения🎂"))
	assert.Equal(t, "", textutil.StripEmoji("🧑‍🤝‍🧑"))
}

func TestStripEmojiKeepsPunctuation(t *testing.T) {
	assert.Equal(t, "1:1 w/ Sam - notes & plans", textutil.StripEmoji("1:1 w/ Sam - notes & plans"))
}

func TestCleanTitle(t *testing.T) {
	assert.Equal(t, "Launch Day", textutil.CleanTitle("🎉 Launch Day"))
	assert.Equal(t, "Launch Day", textutil.CleanTitle("  Launch Day  "))
	assert.Equal(t, "", textutil.CleanTitle(" 🎉 "))
}
