package model

// Theme selects the neutral color used for events whose title is blank
// after normalization. It is threaded into each aggregation call rather
// than read from ambient state.
type Theme string

const (
	ThemeDay   Theme = "day"
	ThemeNight Theme = "night"
)
