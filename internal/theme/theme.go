// ABOUTME: Color palettes chosen from the current mood or time of day.
// ABOUTME: Resolve applies the user's theme preference.
package theme

import "github.com/harperreed/mood/internal/models"

// Auto lets the current mood pick the palette.
const Auto = "auto"

// Palette is a set of display colors.
type Palette struct {
	Name      string `json:"name"`
	Bg        string `json:"bg"`
	Primary   string `json:"primary"`
	Secondary string `json:"secondary"`
	Accent    string `json:"accent"`
	Text      string `json:"text"`
}

var moodPalettes = map[models.Mood]Palette{
	models.MoodExcited: {
		Bg:        "bg-gradient-to-br from-red-400 via-red-500 to-orange-500",
		Primary:   "#FF5E5B",
		Secondary: "#FFD166",
		Accent:    "#FFFFFF",
		Text:      "text-white",
	},
	models.MoodHappy: {
		Bg:        "bg-gradient-to-br from-yellow-300 via-yellow-400 to-yellow-500",
		Primary:   "#FFE66D",
		Secondary: "#4ECDC4",
		Accent:    "#FFFFFF",
		Text:      "text-gray-800",
	},
	models.MoodCalm: {
		Bg:        "bg-gradient-to-br from-blue-200 via-blue-300 to-blue-400",
		Primary:   "#A8DADC",
		Secondary: "#457B9D",
		Accent:    "#FFFFFF",
		Text:      "text-gray-800",
	},
	models.MoodSad: {
		Bg:        "bg-gradient-to-br from-purple-400 via-purple-500 to-purple-600",
		Primary:   "#5C5470",
		Secondary: "#B8B8FF",
		Accent:    "#FFFFFF",
		Text:      "text-white",
	},
	models.MoodAnxious: {
		Bg:        "bg-gradient-to-br from-gray-700 via-gray-800 to-gray-900",
		Primary:   "#2B2D42",
		Secondary: "#EF233C",
		Accent:    "#FFFFFF",
		Text:      "text-white",
	},
	models.MoodEnergetic: {
		Bg:        "bg-gradient-to-br from-green-400 via-green-500 to-cyan-500",
		Primary:   "#06D6A0",
		Secondary: "#118AB2",
		Accent:    "#FFFFFF",
		Text:      "text-white",
	},
}

var timePalettes = map[models.TimeOfDay]Palette{
	models.Morning: {
		Bg:        "bg-gradient-to-br from-navy-700 via-blue-800 to-indigo-900",
		Primary:   "hsl(20, 79%, 58%)",
		Secondary: "hsl(51, 100%, 63%)",
		Accent:    "hsl(195, 100%, 79%)",
		Text:      "text-orange-100",
	},
	models.Afternoon: {
		Bg:        "bg-gradient-to-br from-navy-800 via-blue-900 to-indigo-900",
		Primary:   "hsl(207, 90%, 54%)",
		Secondary: "hsl(145, 63%, 49%)",
		Accent:    "hsl(0, 0%, 100%)",
		Text:      "text-blue-100",
	},
	models.Evening: {
		Bg:        "bg-gradient-to-br from-navy-900 via-purple-900 to-indigo-900",
		Primary:   "hsl(236, 72%, 79%)",
		Secondary: "hsl(291, 95%, 84%)",
		Accent:    "hsl(14, 100%, 86%)",
		Text:      "text-purple-100",
	},
	models.Night: {
		Bg:        "bg-gradient-to-br from-navy-900 via-gray-900 to-slate-900",
		Primary:   "hsl(208, 25%, 23%)",
		Secondary: "hsl(259, 46%, 58%)",
		Accent:    "hsl(208, 22%, 28%)",
		Text:      "text-gray-100",
	},
}

// ForMood returns the palette of a known mood.
func ForMood(m models.Mood) (Palette, bool) {
	p, ok := moodPalettes[m.Normalize()]
	if ok {
		p.Name = string(m.Normalize())
	}
	return p, ok
}

// ForTime returns the palette for tod, morning when tod is unknown.
func ForTime(tod models.TimeOfDay) Palette {
	p, ok := timePalettes[tod]
	if !ok {
		tod = models.Morning
		p = timePalettes[tod]
	}
	p.Name = string(tod)
	return p
}

// Resolve picks the palette to display. A preference naming a time of day
// pins that palette. Otherwise a known mood wins over the time of day.
func Resolve(pref string, mood models.Mood, tod models.TimeOfDay) Palette {
	if models.IsValidTimeOfDay(pref) {
		return ForTime(models.TimeOfDay(pref))
	}
	if p, ok := ForMood(mood); ok {
		return p
	}
	return ForTime(tod)
}
