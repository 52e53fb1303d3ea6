// ABOUTME: Mood enum with emoji, label, score, and color lookup tables.
// ABOUTME: Unrecognized tags collapse into MoodUnknown instead of failing.
package models

import "strings"

// Mood is one of the six moods a user can pick.
type Mood string

const (
	MoodExcited   Mood = "excited"
	MoodHappy     Mood = "happy"
	MoodCalm      Mood = "calm"
	MoodSad       Mood = "sad"
	MoodAnxious   Mood = "anxious"
	MoodEnergetic Mood = "energetic"

	// MoodUnknown stands in for any tag outside the six moods above.
	MoodUnknown Mood = "unknown"
)

// DefaultMood is used when nothing better is known (empty week, no selection).
const DefaultMood = MoodHappy

// AllMoods lists the selectable moods in picker order.
var AllMoods = []Mood{
	MoodExcited, MoodHappy, MoodCalm, MoodSad, MoodAnxious, MoodEnergetic,
}

// Color is a display color tag for a mood.
type Color string

const (
	ColorYellow  Color = "yellow"
	ColorGreen   Color = "green"
	ColorPurple  Color = "purple"
	ColorBlue    Color = "blue"
	ColorRed     Color = "red"
	ColorGray    Color = "gray"
	ColorNeutral Color = "neutral"
)

var moodScores = map[Mood]int{
	MoodExcited:   100,
	MoodEnergetic: 90,
	MoodHappy:     80,
	MoodCalm:      60,
	MoodAnxious:   40,
	MoodSad:       30,
}

// UnknownMoodScore is the score given to unrecognized moods.
const UnknownMoodScore = 50

var moodColors = map[Mood]Color{
	MoodExcited:   ColorYellow,
	MoodHappy:     ColorGreen,
	MoodEnergetic: ColorPurple,
	MoodCalm:      ColorBlue,
	MoodAnxious:   ColorRed,
	MoodSad:       ColorGray,
}

var moodEmojis = map[Mood]string{
	MoodExcited:   "🤩",
	MoodHappy:     "😊",
	MoodCalm:      "😌",
	MoodSad:       "😢",
	MoodAnxious:   "😰",
	MoodEnergetic: "⚡",
}

var moodLabels = map[string]map[Mood]string{
	"fr": {
		MoodExcited:   "Excité",
		MoodHappy:     "Heureux",
		MoodCalm:      "Calme",
		MoodSad:       "Triste",
		MoodAnxious:   "Anxieux",
		MoodEnergetic: "Énergique",
	},
	"en": {
		MoodExcited:   "Excited",
		MoodHappy:     "Happy",
		MoodCalm:      "Calm",
		MoodSad:       "Sad",
		MoodAnxious:   "Anxious",
		MoodEnergetic: "Energetic",
	},
}

// IsValidMood reports whether s names one of the six moods.
func IsValidMood(s string) bool {
	_, ok := moodScores[Mood(strings.ToLower(strings.TrimSpace(s)))]
	return ok
}

// ParseMood maps s onto the closed mood set. The second result is false
// when s was not recognized and MoodUnknown was returned.
func ParseMood(s string) (Mood, bool) {
	m := Mood(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := moodScores[m]; ok {
		return m, true
	}
	return MoodUnknown, false
}

// Normalize returns m itself when it is one of the six moods, MoodUnknown otherwise.
func (m Mood) Normalize() Mood {
	n, _ := ParseMood(string(m))
	return n
}

// Known reports whether m is one of the six moods.
func (m Mood) Known() bool {
	_, ok := moodScores[m]
	return ok
}

// Score returns the 30-100 intensity used for the weekly chart.
func (m Mood) Score() int {
	if s, ok := moodScores[m.Normalize()]; ok {
		return s
	}
	return UnknownMoodScore
}

// Color returns the chart color for m; unknown moods are gray.
func (m Mood) Color() Color {
	if c, ok := moodColors[m.Normalize()]; ok {
		return c
	}
	return ColorGray
}

// Emoji returns the mood's emoji, falling back to the default mood's.
func (m Mood) Emoji() string {
	if e, ok := moodEmojis[m.Normalize()]; ok {
		return e
	}
	return moodEmojis[DefaultMood]
}

// Label returns the display name of m in lang ("fr" or "en").
// Unknown languages use English, unknown moods the default mood's label.
func (m Mood) Label(lang string) string {
	labels, ok := moodLabels[lang]
	if !ok {
		labels = moodLabels["en"]
	}
	if l, ok := labels[m.Normalize()]; ok {
		return l
	}
	return labels[DefaultMood]
}

// IsPositive reports whether m counts as a good mood for the weekly peak.
func (m Mood) IsPositive() bool {
	n := m.Normalize()
	return n == MoodExcited || n == MoodHappy
}
